// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/theme"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var palettes = map[theme.Theme]Palette{
	theme.Dark: { // tokyo-night
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	theme.Light: { // tokyo-night day
		Primary:    lipgloss.Color("#2e7de9"),
		Secondary:  lipgloss.Color("#007197"),
		Foreground: lipgloss.Color("#3760bf"),
		Muted:      lipgloss.Color("#8990b3"),
		Background: lipgloss.Color("#e1e2e7"),
		Surface:    lipgloss.Color("#c4c8da"),
		Success:    lipgloss.Color("#587539"),
		Warning:    lipgloss.Color("#8c6c3e"),
		Error:      lipgloss.Color("#f52a65"),
	},
}

// PaletteFor returns the palette for t, defaulting to dark.
func PaletteFor(t theme.Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[theme.Dark]
}

// Current is the active theme; CurrentPalette its colors.
var (
	Current        theme.Theme
	CurrentPalette Palette
)

// Style exports.
var (
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style

	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	HeaderTitleStyle lipgloss.Style
	HeaderStatStyle  lipgloss.Style
	SearchStyle      lipgloss.Style
	FilterChipStyle  lipgloss.Style

	ColumnStyle           lipgloss.Style
	ColumnFocusedStyle    lipgloss.Style
	ColumnDropTargetStyle lipgloss.Style

	CardStyle          lipgloss.Style
	CardSelectedStyle  lipgloss.Style
	CardDraggingStyle  lipgloss.Style
	DropIndicatorStyle lipgloss.Style
	OverdueStyle       lipgloss.Style

	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style

	FormLabelStyle        lipgloss.Style
	FormLabelFocusedStyle lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormErrorStyle        lipgloss.Style

	ToastInfoStyle    lipgloss.Style
	ToastSuccessStyle lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ToastActionStyle  lipgloss.Style
	ToastPausedStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(t theme.Theme) {
	p := PaletteFor(t)
	Current = t
	if !t.IsValid() {
		Current = theme.Dark
	}
	CurrentPalette = p

	TextForegroundStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TextForegroundBoldStyle = TextForegroundStyle.Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	TextWarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	CommandHeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	DividerStyle = lipgloss.NewStyle().Foreground(p.Muted)

	HeaderTitleStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)
	HeaderStatStyle = lipgloss.NewStyle().Foreground(p.Muted).PaddingLeft(1)
	SearchStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	FilterChipStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Padding(0, 1)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	ColumnFocusedStyle = ColumnStyle.BorderForeground(p.Primary)
	ColumnDropTargetStyle = ColumnStyle.
		Border(lipgloss.DoubleBorder()).
		BorderForeground(p.Success)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Muted).
		Foreground(p.Foreground).
		Padding(0, 1)
	CardSelectedStyle = CardStyle.
		Border(lipgloss.ThickBorder()).
		BorderForeground(p.Primary)
	CardDraggingStyle = CardStyle.
		BorderForeground(p.Surface).
		Foreground(p.Muted).
		Faint(true)
	DropIndicatorStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	OverdueStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Foreground)
	ModalHelpStyle = lipgloss.NewStyle().Foreground(p.Muted).MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)

	HelpDialogModalStyle = ModalStyle
	HelpDialogSectionStyle = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	HelpDialogHelpStyle = ModalHelpStyle

	FormLabelStyle = lipgloss.NewStyle().Foreground(p.Muted)
	FormLabelFocusedStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Muted).
		PaddingLeft(1)
	FormFieldFocusedStyle = FormFieldStyle.BorderForeground(p.Primary)
	FormErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Foreground(p.Foreground).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(p.Primary)
	ToastSuccessStyle = toast.BorderForeground(p.Success)
	ToastWarningStyle = toast.BorderForeground(p.Warning)
	ToastErrorStyle = toast.BorderForeground(p.Error)
	ToastActionStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)
	ToastPausedStyle = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
}

// StatusColor returns the accent color of a column.
func StatusColor(s task.Status) lipgloss.Color {
	switch s {
	case task.StatusProgress:
		return CurrentPalette.Warning
	case task.StatusDone:
		return CurrentPalette.Success
	default:
		return CurrentPalette.Secondary
	}
}

// PriorityStyle returns the badge style for a priority.
func PriorityStyle(p task.Priority) lipgloss.Style {
	var c lipgloss.Color
	switch p {
	case task.PriorityHigh:
		c = CurrentPalette.Error
	case task.PriorityLow:
		c = CurrentPalette.Success
	default:
		c = CurrentPalette.Warning
	}
	return lipgloss.NewStyle().Foreground(c).Bold(p == task.PriorityHigh)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(theme.Dark)
}

func colorPtr(c lipgloss.Color) *string {
	s := string(c)
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	if Current == theme.Light {
		cfg = glamourstyles.LightStyleConfig
	}

	p := CurrentPalette
	fg := colorPtr(p.Foreground)
	primary := colorPtr(p.Primary)
	secondary := colorPtr(p.Secondary)
	muted := colorPtr(p.Muted)

	cfg.Document.Color = fg
	cfg.Document.Margin = nil
	cfg.Paragraph.Color = fg
	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = colorPtr(p.Surface)
	cfg.H2.Color = primary
	cfg.H3.Color = primary
	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted
	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary
	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted
	cfg.Item.Color = fg

	return cfg
}

// FormTheme returns a huh theme in the current palette for CLI prompts.
func FormTheme() *huh.Theme {
	p := CurrentPalette
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Primary)
	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Secondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Success)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Secondary)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Secondary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted).Bold(false)

	return t
}
