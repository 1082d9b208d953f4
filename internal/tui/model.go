package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/kanban/internal/core/logging"
	"github.com/hay-kot/kanban/internal/core/notify"
	"github.com/hay-kot/kanban/internal/core/styles"
	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/theme"
	"github.com/hay-kot/kanban/internal/core/view"
	"github.com/hay-kot/kanban/internal/kanban"
	"github.com/hay-kot/kanban/internal/tui/components"
)

// modalKind identifies what is drawn above the board. Modals stack; the last
// one receives input.
type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalForm
	modalDetail
	modalConfirm
	modalNotifications
)

// Options configures the TUI behavior.
type Options struct {
	Theme    theme.Theme      // Theme to start with
	Warnings []string         // Startup warnings to display as toasts
	Clock    func() time.Time // Overrides time.Now for rendering (optional)
}

type loadedMsg struct {
	result kanban.LoadResult
}

type themeSavedMsg struct {
	theme theme.Theme
	err   error
}

// Model is the main Bubble Tea model for the board.
type Model struct {
	app   *kanban.App
	board *kanban.Board
	keys  KeyMap
	ctx   context.Context
	log   zerolog.Logger
	clock func() time.Time

	width    int
	height   int
	focusCol int
	selected [3]int
	offsets  [3]int

	// Modals
	modals        []modalKind
	help          *components.HelpDialog
	form          *TaskForm
	detail        *DetailView
	confirm       *components.ConfirmModal
	notifications *NotificationModal

	// Search
	search    textinput.Model
	searching bool

	// Toasts
	toasts    *ToastController
	toastView *ToastView
	inbox     *NotificationBuffer

	jobs     *jobRunner
	spinner  spinner.Model
	loading  bool
	theme    theme.Theme
	quitting bool
}

// New creates the board model. Remote writes run on a background runner
// bound to ctx; call Flush after the program exits to wait for them.
func New(ctx context.Context, app *kanban.App, opts Options) Model {
	toasts := NewToastController(app.Config.Toast.TTL, app.Config.Toast.Max)
	inbox := NewNotificationBuffer()
	app.Notify.Subscribe(inbox.Push)

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "search title or description"
	ti.Width = 32

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	t := opts.Theme
	if !t.IsValid() {
		t = styles.Current
	}
	styles.SetTheme(t)

	m := Model{
		app:       app,
		board:     app.Board,
		keys:      DefaultKeyMap(),
		ctx:       ctx,
		log:       logging.Component("tui"),
		clock:     opts.Clock,
		search:    ti,
		toasts:    toasts,
		toastView: NewToastView(toasts),
		inbox:     inbox,
		jobs:      newJobRunner(ctx, func(r kanban.Result) { app.Sync.Report(ctx, r) }),
		spinner:   sp,
		loading:   true,
		theme:     t,
	}

	for _, w := range opts.Warnings {
		app.Notify.Warnf("%s", w)
	}

	return m
}

// Flush stops accepting remote writes and waits for the queued ones to
// finish or for ctx to end.
func (m Model) Flush(ctx context.Context) error {
	m.jobs.Close()
	return m.jobs.Wait(ctx)
}

// Init starts the initial load and the background listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(),
		m.jobs.listen(),
		m.inbox.WaitForSignal(),
		m.spinner.Tick,
	)
}

func (m Model) loadCmd() tea.Cmd {
	ctx := m.ctx
	b := m.board
	return func() tea.Msg {
		return loadedMsg{result: b.LoadJob(ctx)}
	}
}

func (m Model) saveThemeCmd(t theme.Theme) tea.Cmd {
	ctx := m.ctx
	app := m.app
	return func() tea.Msg {
		return themeSavedMsg{theme: t, err: app.SaveTheme(ctx, t)}
	}
}

// ensureToastTick starts the countdown when toasts are showing and no tick
// is scheduled.
func (m Model) ensureToastTick() tea.Cmd {
	if !m.toasts.HasToasts() || m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

// submit hands jobs to the background runner.
func (m Model) submit(jobs []kanban.Job) {
	m.jobs.Submit(jobs)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.drainNotifications()
	return next, tea.Batch(cmd, next.ensureToastTick())
}

// drainNotifications moves published notifications onto the toast stack.
func (m Model) drainNotifications() {
	for _, n := range m.inbox.Drain() {
		m.toasts.Push(n)
	}
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.help != nil {
			m.help.SetWidth(msg.Width)
		}
		if m.detail != nil {
			m.detail.SetSize(msg.Width, msg.Height)
		}
		m.clampSelection(m.board.Columns())
		return m, nil

	case loadedMsg:
		m.loading = false
		m.board.ApplyLoad(msg.result)
		m.clampSelection(m.board.Columns())
		m.refreshDetail()
		return m, nil

	case jobResultMsg:
		m.board.HandleResult(m.ctx, msg.result)
		return m, m.jobs.listen()

	case themeSavedMsg:
		if msg.err != nil {
			m.app.Notify.Warnf("Could not save theme preference: %v", msg.err)
		}
		return m, nil

	case drainNotificationsMsg:
		return m, m.inbox.WaitForSignal()

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateModal(msg)
}

func (m Model) topModal() modalKind {
	if len(m.modals) == 0 {
		return modalNone
	}
	return m.modals[len(m.modals)-1]
}

func (m *Model) pushModal(k modalKind) {
	m.modals = append(m.modals, k)
}

// popModal closes the top modal and releases its state.
func (m *Model) popModal() {
	if len(m.modals) == 0 {
		return
	}
	top := m.modals[len(m.modals)-1]
	m.modals = m.modals[:len(m.modals)-1]
	switch top {
	case modalHelp:
		m.help = nil
	case modalForm:
		m.form = nil
	case modalDetail:
		m.detail = nil
	case modalConfirm:
		m.confirm = nil
	case modalNotifications:
		m.notifications = nil
	}
}

// CloseModal closes the top modal, if any.
func (m Model) CloseModal() Model {
	m.popModal()
	return m
}

// ToggleHelp opens or closes the key binding reference.
func (m Model) ToggleHelp() Model {
	if m.topModal() == modalHelp {
		m.popModal()
		return m
	}
	w, _ := m.size()
	m.help = components.NewHelpDialog("Keyboard Shortcuts", m.keys.HelpSections(), w)
	m.pushModal(modalHelp)
	return m
}

// OpenCreate opens the new task form for the focused column.
func (m Model) OpenCreate() (Model, tea.Cmd) {
	m.form = NewCreateForm(task.Statuses[m.focusCol])
	m.pushModal(modalForm)
	return m, textinput.Blink
}

func (m Model) openEdit(t task.Task) (Model, tea.Cmd) {
	m.form = NewEditForm(t)
	m.pushModal(modalForm)
	return m, textinput.Blink
}

func (m Model) openDetail(t task.Task) Model {
	w, h := m.size()
	m.detail = NewDetailView(t, w, h, m.now)
	m.pushModal(modalDetail)
	return m
}

func (m Model) openNotifications() Model {
	w, h := m.size()
	m.notifications = NewNotificationModal(m.app.Notify, w, h)
	m.pushModal(modalNotifications)
	return m
}

// FocusSearch starts editing the search query.
func (m Model) FocusSearch() (Model, tea.Cmd) {
	m.searching = true
	m.search.SetValue(m.board.State().Criteria.Query)
	m.search.CursorEnd()
	return m, m.search.Focus()
}

// ToggleTheme switches between light and dark and stores the choice.
func (m Model) ToggleTheme() (Model, tea.Cmd) {
	m.theme = m.theme.Toggle()
	styles.SetTheme(m.theme)
	if m.detail != nil {
		m.detail.SetTask(m.detail.Task())
	}
	m.log.Debug().Str("theme", m.theme.String()).Msg("theme toggled")
	return m, m.saveThemeCmd(m.theme)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.board.Drag().Cancel()
	return m, tea.Quit
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.topModal() != modalNone {
		return m.updateModal(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.board.State().SetQuery("")
	case "enter":
		m.searching = false
		m.search.Blur()
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.board.State().SetQuery(m.search.Value())
		m.clampSelection(m.board.Columns())
		return m, cmd
	}
	m.clampSelection(m.board.Columns())
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cols := m.board.Columns()
	selected, hasSelected := m.selectedTask(cols)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Left):
		m.focusCol--
	case key.Matches(msg, m.keys.Right):
		m.focusCol++
	case key.Matches(msg, m.keys.Up):
		m.selected[m.focusCol]--
	case key.Matches(msg, m.keys.Down):
		m.selected[m.focusCol]++

	case key.Matches(msg, m.keys.MoveLeft), key.Matches(msg, m.keys.MoveRight):
		if !hasSelected {
			return m, nil
		}
		delta := 1
		if key.Matches(msg, m.keys.MoveLeft) {
			delta = -1
		}
		m.submit(m.board.Shift(selected.ID, delta))
		m.selectTask(m.board.Columns(), selected.ID)
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if hasSelected {
			return m.openDetail(selected), nil
		}
	case key.Matches(msg, m.keys.New):
		return m.OpenCreate()
	case key.Matches(msg, m.keys.Edit):
		if hasSelected {
			return m.openEdit(selected)
		}

	case key.Matches(msg, m.keys.Delete):
		if !hasSelected {
			return m, nil
		}
		_, jobs, err := m.board.Delete(selected.ID)
		if err != nil {
			m.log.Debug().Err(err).Str("task_id", selected.ID).Msg("delete ignored")
			return m, nil
		}
		m.submit(jobs)

	case key.Matches(msg, m.keys.Clear):
		if m.board.State().Tasks.Len() == 0 {
			return m, nil
		}
		n := m.board.State().Tasks.Len()
		c := components.NewConfirmModal("Clear board", fmt.Sprintf("Delete all %d %s?", n, plural(n, "task", "tasks")))
		m.confirm = &c
		m.pushModal(modalConfirm)
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		m = m.undo()

	case key.Matches(msg, m.keys.Pin):
		if hasSelected {
			_, jobs, err := m.board.TogglePin(selected.ID)
			if err == nil {
				m.submit(jobs)
				m.selectTask(m.board.Columns(), selected.ID)
				return m, nil
			}
		}

	case key.Matches(msg, m.keys.Sort):
		m.board.State().CycleSort()
		if hasSelected {
			m.selectTask(m.board.Columns(), selected.ID)
			return m, nil
		}
	case key.Matches(msg, m.keys.Priority):
		m.board.State().SetPriorityFilter(nextPriorityFilter(m.board.State().Criteria.Priority))
	case key.Matches(msg, m.keys.Search):
		return m.FocusSearch()
	case key.Matches(msg, m.keys.Theme):
		return m.ToggleTheme()
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
	case key.Matches(msg, m.keys.History):
		return m.openNotifications(), nil
	case key.Matches(msg, m.keys.Help):
		return m.ToggleHelp(), nil

	case key.Matches(msg, m.keys.Close):
		switch {
		case m.board.Drag().Dragging():
			m.board.Drag().Cancel()
		case m.board.State().Criteria.Query != "":
			m.search.SetValue("")
			m.board.State().SetQuery("")
		default:
			m.toasts.Dismiss()
		}
	}

	m.clampSelection(m.board.Columns())
	return m, nil
}

// undo reverses the last delete or clear and retires its toast.
func (m Model) undo() Model {
	entry, jobs, ok := m.board.Undo()
	if !ok {
		return m
	}
	m.toasts.CloseUndo(entry.ID)
	m.submit(jobs)
	if len(entry.Snapshot) > 0 {
		m.selectTask(m.board.Columns(), entry.Snapshot[0].ID)
	}
	return m
}

func (m Model) updateModal(msg tea.Msg) (Model, tea.Cmd) {
	switch m.topModal() {
	case modalHelp:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(k, m.keys.Close), key.Matches(k, m.keys.Help), key.Matches(k, m.keys.Quit):
				m.popModal()
			}
		}
		return m, nil

	case modalForm:
		return m.updateForm(msg)

	case modalDetail:
		return m.updateDetail(msg)

	case modalConfirm:
		c, cmd := m.confirm.Update(msg)
		m.confirm = &c
		switch {
		case c.Confirmed():
			m.popModal()
			if _, jobs, ok := m.board.Clear(); ok {
				m.submit(jobs)
			}
			m.clampSelection(m.board.Columns())
		case c.Cancelled():
			m.popModal()
		}
		return m, cmd

	case modalNotifications:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "esc", "q", "N":
				m.popModal()
			case "j", "down":
				m.notifications.ScrollDown()
			case "k", "up":
				m.notifications.ScrollUp()
			case "D":
				m.notifications.Clear()
			}
		}
		return m, nil
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	switch {
	case m.form.Cancelled():
		m.popModal()
		return m, nil

	case m.form.Submitted():
		f := m.form
		m.popModal()

		if f.Editing() {
			updated, jobs, err := m.board.Edit(f.TaskID(), f.Patch())
			if errors.Is(err, task.ErrNotFound) {
				m.log.Debug().Str("task_id", f.TaskID()).Msg("edit ignored")
				return m, nil
			}
			if err != nil {
				m.app.Notify.Warnf("Could not save task: %v", err)
				return m, nil
			}
			m.submit(jobs)
			m.selectTask(m.board.Columns(), updated.ID)
			m.refreshDetail()
			return m, nil
		}

		created, jobs, err := m.board.Create(f.Task())
		if err != nil {
			m.app.Notify.Warnf("Could not create task: %v", err)
			return m, nil
		}
		m.submit(jobs)
		m.selectTask(m.board.Columns(), created.ID)
		return m, nil
	}

	return m, cmd
}

func (m Model) updateDetail(msg tea.Msg) (Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	id := m.detail.TaskID()
	switch s := k.String(); {
	case key.Matches(k, m.keys.Close), s == "q":
		m.popModal()
		return m, nil
	case key.Matches(k, m.keys.Edit):
		return m.openEdit(m.detail.Task())
	case key.Matches(k, m.keys.Pin):
		if _, jobs, err := m.board.TogglePin(id); err == nil {
			m.submit(jobs)
		}
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		if _, jobs, err := m.board.ToggleSubtask(id, int(s[0]-'1')); err == nil {
			m.submit(jobs)
		}
	default:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	m.refreshDetail()
	return m, nil
}

// refreshDetail re-reads the task shown in the detail view. The view closes
// when the task is gone.
func (m *Model) refreshDetail() {
	if m.detail == nil {
		return
	}
	t, ok := m.board.Find(m.detail.TaskID())
	if !ok {
		for i, k := range m.modals {
			if k == modalDetail {
				m.modals = append(m.modals[:i], m.modals[i+1:]...)
				break
			}
		}
		m.detail = nil
		return
	}
	m.detail.SetTask(t)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	w, h := m.size()
	bottom := h - footerHeight
	box, hit := m.toastView.HitTest(msg.X, msg.Y, w, bottom)

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.toasts.HasToasts() {
			if hit != hitNone {
				m.toasts.Pause()
			} else {
				m.toasts.Resume()
			}
		}
		if m.board.Drag().Dragging() {
			m.dragOver(msg.X, msg.Y)
		}
		return m, nil

	case tea.MouseActionRelease:
		if !m.board.Drag().Dragging() {
			return m, nil
		}
		id := m.board.Drag().TaskID()
		m.dragOver(msg.X, msg.Y)
		if res, ok := m.board.Drag().Drop(); ok {
			m.submit(m.board.ApplyDrop(res))
		}
		m.selectTask(m.board.Columns(), id)
		return m, nil
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if m.topModal() != modalNone {
			return m.updateModal(msg)
		}
		if col, ok := m.columnAt(msg.X, msg.Y); ok {
			delta := 1
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -1
			}
			m.focusCol = col
			m.selected[col] += delta
			m.clampSelection(m.board.Columns())
		}
		return m, nil

	case tea.MouseButtonLeft:
		switch hit {
		case hitClose:
			m.toasts.Close(box.id)
			return m, nil
		case hitAction:
			if box.action != nil && box.action.Kind == notify.ActionUndo {
				m.toasts.Close(box.id)
				if entry, jobs, ok := m.board.UndoEntry(box.action.EntryID); ok {
					m.toasts.CloseUndo(entry.ID)
					m.submit(jobs)
				}
			}
			return m, nil
		case hitBody:
			return m, nil
		}

		if m.topModal() != modalNone || m.searching {
			return m, nil
		}

		cols := m.board.Columns()
		col, idx, ok := m.cardAt(cols, msg.X, msg.Y)
		if !ok {
			if c, inCol := m.columnAt(msg.X, msg.Y); inCol {
				m.focusCol = c
			}
			return m, nil
		}
		m.focusCol, m.selected[col] = col, idx
		t := cols[task.Statuses[col]][idx]
		m.board.Drag().Begin(t.ID, t.Status)
		m.clampSelection(cols)
	}

	return m, nil
}

// dragOver moves the drop target to the column under the pointer.
func (m Model) dragOver(x, y int) {
	col, ok := m.columnAt(x, y)
	if !ok {
		m.board.Drag().Leave()
		return
	}
	m.board.Drag().Over(task.Statuses[col], y, m.slots(m.board.Columns(), col))
}

// nextPriorityFilter cycles all → high → medium → low → all.
func nextPriorityFilter(current string) string {
	switch current {
	case string(task.PriorityHigh):
		return string(task.PriorityMedium)
	case string(task.PriorityMedium):
		return string(task.PriorityLow)
	case string(task.PriorityLow):
		return view.PriorityAll
	default:
		return string(task.PriorityHigh)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
