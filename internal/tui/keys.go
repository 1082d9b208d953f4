package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/hay-kot/kanban/internal/tui/components"
)

// KeyMap holds the board key bindings.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Open      key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Clear     key.Binding
	Undo      key.Binding
	Pin       key.Binding
	Sort      key.Binding
	Priority  key.Binding
	Search    key.Binding
	Theme     key.Binding
	Reload    key.Binding
	History   key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "previous column")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next column")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous card")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next card")),
		MoveLeft:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "move card left")),
		MoveRight: key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "move card right")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open details")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		Delete:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete task")),
		Clear:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear board")),
		Undo:      key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Pin:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin/unpin")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle due-date sort")),
		Priority:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle priority filter")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Theme:     key.NewBinding(key.WithKeys("t", "alt+t"), key.WithHelp("t", "toggle theme")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		History:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notifications")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// HelpSections groups the bindings for the help dialog.
func (k KeyMap) HelpSections() []components.HelpDialogSection {
	entries := func(bs ...key.Binding) []components.HelpEntry {
		out := make([]components.HelpEntry, 0, len(bs))
		for _, b := range bs {
			h := b.Help()
			out = append(out, components.HelpEntry{Key: h.Key, Desc: h.Desc})
		}
		return out
	}

	return []components.HelpDialogSection{
		{Title: "Navigate", Entries: entries(k.Left, k.Right, k.Up, k.Down, k.Open)},
		{Title: "Tasks", Entries: entries(k.New, k.Edit, k.MoveLeft, k.MoveRight, k.Pin, k.Delete, k.Clear, k.Undo)},
		{Title: "View", Entries: entries(k.Search, k.Sort, k.Priority, k.Theme, k.Reload, k.History)},
		{Title: "General", Entries: entries(k.Help, k.Close, k.Quit)},
	}
}
