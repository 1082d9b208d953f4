package tui

import (
	"github.com/hay-kot/kanban/internal/core/drag"
	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/view"
)

// Screen geometry. Rendering and pointer hit-testing both derive positions
// from these values, so a card is always hit where it is drawn.
const (
	headerHeight = 2
	footerHeight = 1
	cardHeight   = 4 // border, title, meta, border
	columnChrome = 2 // top and bottom border
	columnTitle  = 1

	fallbackWidth  = 80
	fallbackHeight = 24
)

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}
	return w, h
}

func (m Model) columnWidth(i int) int {
	w, _ := m.size()
	base := w / len(task.Statuses)
	if i == len(task.Statuses)-1 {
		return w - base*(len(task.Statuses)-1)
	}
	return base
}

func (m Model) columnX(i int) int {
	w, _ := m.size()
	return i * (w / len(task.Statuses))
}

func (m Model) columnHeight() int {
	_, h := m.size()
	return max(h-headerHeight-footerHeight, columnChrome+columnTitle+cardHeight)
}

// visibleCards is how many cards fit in a column.
func (m Model) visibleCards() int {
	return max((m.columnHeight()-columnChrome-columnTitle)/cardHeight, 1)
}

// cardsTop is the screen row of the first card's top border.
func cardsTop() int {
	return headerHeight + 1 + columnTitle
}

// columnAt returns the column under (x, y).
func (m Model) columnAt(x, y int) (int, bool) {
	w, _ := m.size()
	if x < 0 || x >= w || y < headerHeight || y >= headerHeight+m.columnHeight() {
		return 0, false
	}
	i := x / (w / len(task.Statuses))
	return min(i, len(task.Statuses)-1), true
}

// cardAt returns the column and projected index of the card under (x, y).
func (m Model) cardAt(cols view.Columns, x, y int) (int, int, bool) {
	col, ok := m.columnAt(x, y)
	if !ok {
		return 0, 0, false
	}
	row := y - cardsTop()
	if row < 0 {
		return 0, 0, false
	}
	slot := row / cardHeight
	if slot >= m.visibleCards() {
		return 0, 0, false
	}
	idx := m.offsets[col] + slot
	if idx >= len(cols[task.Statuses[col]]) {
		return 0, 0, false
	}
	return col, idx, true
}

// slots returns the on-screen extent of every visible card in column col.
func (m Model) slots(cols view.Columns, col int) []drag.Slot {
	tasks := cols[task.Statuses[col]]
	start := m.offsets[col]
	end := min(start+m.visibleCards(), len(tasks))

	out := make([]drag.Slot, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		out = append(out, drag.Slot{
			ID:     tasks[i].ID,
			Top:    cardsTop() + (i-start)*cardHeight,
			Height: cardHeight,
		})
	}
	return out
}

// clampSelection keeps the focused column, selections, and scroll offsets
// inside the current projection.
func (m *Model) clampSelection(cols view.Columns) {
	m.focusCol = min(max(m.focusCol, 0), len(task.Statuses)-1)
	visible := m.visibleCards()
	for i, s := range task.Statuses {
		n := len(cols[s])
		m.selected[i] = min(max(m.selected[i], 0), max(n-1, 0))

		off := m.offsets[i]
		if m.selected[i] < off {
			off = m.selected[i]
		}
		if m.selected[i] >= off+visible {
			off = m.selected[i] - visible + 1
		}
		m.offsets[i] = min(max(off, 0), max(n-visible, 0))
	}
}

// selectTask focuses the card with id wherever the projection placed it.
func (m *Model) selectTask(cols view.Columns, id string) bool {
	for i, s := range task.Statuses {
		for j, t := range cols[s] {
			if t.ID == id {
				m.focusCol, m.selected[i] = i, j
				m.clampSelection(cols)
				return true
			}
		}
	}
	return false
}

// selectedTask returns the card under the keyboard cursor.
func (m Model) selectedTask(cols view.Columns) (task.Task, bool) {
	tasks := cols[task.Statuses[m.focusCol]]
	i := m.selected[m.focusCol]
	if i < 0 || i >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[i], true
}
