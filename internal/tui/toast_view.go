package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/kanban/internal/core/notify"
	"github.com/hay-kot/kanban/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

const closeGlyph = "✕"

// toastBox is the on-screen extent of one rendered toast.
type toastBox struct {
	id     uint64
	x, y   int
	w, h   int
	action *notify.Action
}

// toastHit is what a pointer position lands on inside the stack.
type toastHit int

const (
	hitNone toastHit = iota
	hitBody
	hitClose
	hitAction
)

// ToastView renders toast notifications and composites them as an overlay
// in the lower-right corner.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

func renderToast(t toast, paused bool) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case notify.LevelError:
		icon, style = styles.IconNotifyError, styles.ToastErrorStyle
	case notify.LevelWarning:
		icon, style = styles.IconNotifyWarning, styles.ToastWarningStyle
	case notify.LevelSuccess:
		icon, style = styles.IconNotifySuccess, styles.ToastSuccessStyle
	default:
		icon, style = styles.IconNotifyInfo, styles.ToastInfoStyle
	}

	inner := toastWidth - style.GetHorizontalFrameSize()
	msg := ansi.Truncate(icon+" "+t.notification.Message, inner-2, "…")
	first := msg + strings.Repeat(" ", max(inner-ansi.StringWidth(msg)-1, 1)) + closeGlyph

	lines := []string{first}
	if a := t.notification.Action; a != nil {
		second := styles.ToastActionStyle.Render(a.Label)
		if a.Kind == notify.ActionUndo {
			second += styles.TextMutedStyle.Render("  or press u")
		}
		lines = append(lines, second)
	}
	if paused {
		lines = append(lines, styles.ToastPausedStyle.Render("paused"))
	}

	return style.Width(toastWidth - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

// layout positions every toast for a screen of the given size, stacking
// upward from bottom. The newest toast sits lowest.
func (v *ToastView) layout(width, bottom int) ([]toastBox, []string) {
	toasts := v.controller.Toasts()
	boxes := make([]toastBox, len(toasts))
	rendered := make([]string, len(toasts))

	y := bottom
	for i := len(toasts) - 1; i >= 0; i-- {
		r := renderToast(toasts[i], v.controller.Paused())
		h := lipgloss.Height(r)
		w := lipgloss.Width(r)
		y -= h
		boxes[i] = toastBox{
			id:     toasts[i].id,
			x:      max(width-w-1, 0),
			y:      y,
			w:      w,
			h:      h,
			action: toasts[i].notification.Action,
		}
		rendered[i] = r
	}
	return boxes, rendered
}

// HitTest reports which toast and which part of it lies under (x, y).
func (v *ToastView) HitTest(x, y, width, bottom int) (toastBox, toastHit) {
	boxes, _ := v.layout(width, bottom)
	for _, b := range boxes {
		if x < b.x || x >= b.x+b.w || y < b.y || y >= b.y+b.h {
			continue
		}
		row := y - b.y
		switch {
		case row == 1 && x >= b.x+b.w-4:
			return b, hitClose
		case row == 2 && b.action != nil:
			return b, hitAction
		default:
			return b, hitBody
		}
	}
	return toastBox{}, hitNone
}

// Overlay composites the toast stack over background.
func (v *ToastView) Overlay(background string, width, bottom int) string {
	if !v.controller.HasToasts() {
		return background
	}
	boxes, rendered := v.layout(width, bottom)
	for i, b := range boxes {
		background = placeOverlay(b.x, b.y, rendered[i], background)
	}
	return background
}
