package kanban

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/kanban/internal/core/board"
	"github.com/hay-kot/kanban/internal/core/drag"
	"github.com/hay-kot/kanban/internal/core/export"
	"github.com/hay-kot/kanban/internal/core/logging"
	"github.com/hay-kot/kanban/internal/core/notify"
	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/core/undo"
	"github.com/hay-kot/kanban/internal/core/view"
)

// Board applies user actions to the board state and turns them into remote
// jobs. Every method must be called from the goroutine that owns the state;
// the returned jobs may run anywhere.
type Board struct {
	state *board.State
	sync  *SyncAdapter
	undo  *undo.Log
	drag  *drag.Controller
	bus   *notify.Bus
	log   zerolog.Logger
	now   func() time.Time

	pending []Job
}

// NewBoard wires a board service around state.
func NewBoard(state *board.State, sync *SyncAdapter, bus *notify.Bus, log zerolog.Logger) *Board {
	return &Board{
		state: state,
		sync:  sync,
		undo:  undo.NewLog(),
		drag:  drag.NewController(),
		bus:   bus,
		log:   logging.Sub(log, "board"),
		now:   time.Now,
	}
}

// WithClock replaces the clock used for statistics.
func (b *Board) WithClock(now func() time.Time) *Board {
	b.now = now
	return b
}

// State returns the owned board state.
func (b *Board) State() *board.State { return b.state }

// Drag returns the gesture controller shared by pointer and keyboard moves.
func (b *Board) Drag() *drag.Controller { return b.drag }

func (b *Board) UndoLog() *undo.Log { return b.undo }

func (b *Board) Notifications() *notify.Bus { return b.bus }

// Columns projects the board through the current criteria.
func (b *Board) Columns() view.Columns {
	return b.state.Columns()
}

// Stats summarizes the current projection.
func (b *Board) Stats() view.Stats {
	return b.Columns().Summarize(b.now())
}

// Find returns the task with id.
func (b *Board) Find(id string) (task.Task, bool) {
	return b.state.Tasks.Find(id)
}

// LoadJob fetches every remote document. It does not touch the state.
func (b *Board) LoadJob(ctx context.Context) LoadResult {
	return b.sync.Load(ctx)
}

// ApplyLoad replaces the board with a finished load. A failed load leaves the
// board as it is. A load that lands after local edits overwrites them.
func (b *Board) ApplyLoad(res LoadResult) {
	if res.Err != nil {
		b.log.Warn().Err(res.Err).Msg("load failed")
		b.bus.Warnf("Could not load tasks: %v", res.Err)
		return
	}
	b.state.Tasks.ReplaceAll(res.Tasks)
	b.log.Debug().Int("count", b.state.Tasks.Len()).Msg("board loaded")
}

// Load runs a load synchronously and applies it.
func (b *Board) Load(ctx context.Context) error {
	res := b.LoadJob(ctx)
	b.ApplyLoad(res)
	return res.Err
}

// Create adds t to the board and returns the stored copy with the job that
// persists it. A blank title becomes the default title.
func (b *Board) Create(t task.Task) (task.Task, []Job, error) {
	added, err := b.state.Tasks.Add(t)
	if err != nil {
		return task.Task{}, nil, err
	}
	b.log.Debug().Str("task_id", added.ID).Msg("task created")
	b.queue(b.sync.PersistCreate(added))
	return added, b.drain(), nil
}

// Edit merges p into the task with id. An unknown id is a no-op that reports
// task.ErrNotFound.
func (b *Board) Edit(id string, p task.Patch) (task.Task, []Job, error) {
	if p.IsEmpty() {
		t, ok := b.state.Tasks.Find(id)
		if !ok {
			return task.Task{}, nil, task.ErrNotFound
		}
		return t, nil, nil
	}

	updated, err := b.state.Tasks.Update(id, p)
	if err != nil {
		return task.Task{}, nil, err
	}
	b.queue(b.sync.PersistUpdate(updated))
	return updated, b.drain(), nil
}

// Move sets the status of the task with id. Moving into the current column
// changes nothing.
func (b *Board) Move(id string, to task.Status) ([]Job, error) {
	t, ok := b.state.Tasks.Find(id)
	if !ok {
		return nil, task.ErrNotFound
	}
	if !to.IsValid() {
		return nil, fmt.Errorf("move %q: invalid status %q", id, to)
	}
	if t.Status == to {
		return nil, nil
	}
	_, jobs, err := b.Edit(id, task.StatusPatch(to))
	return jobs, err
}

// ApplyDrop commits a finished drag. Only the status is persisted; the
// insertion index is a visual hint.
func (b *Board) ApplyDrop(res drag.Result) []Job {
	if !res.StatusChanged() {
		return nil
	}
	jobs, err := b.Move(res.TaskID, res.To)
	if err != nil {
		b.log.Debug().Err(err).Str("task_id", res.TaskID).Msg("drop ignored")
		return nil
	}
	return jobs
}

// Shift moves the task one column left (delta < 0) or right (delta > 0)
// using the same gesture protocol as a pointer drag.
func (b *Board) Shift(id string, delta int) []Job {
	t, ok := b.state.Tasks.Find(id)
	if !ok {
		return nil
	}

	i := slices.Index(task.Statuses, t.Status) + delta
	if i < 0 || i >= len(task.Statuses) {
		return nil
	}
	to := task.Statuses[i]

	b.drag.Begin(id, t.Status)
	b.drag.Over(to, 0, slotsFor(b.Columns()[to]))
	res, ok := b.drag.Drop()
	if !ok {
		return nil
	}
	return b.ApplyDrop(res)
}

// TogglePin flips the pinned flag of the task with id.
func (b *Board) TogglePin(id string) (task.Task, []Job, error) {
	t, ok := b.state.Tasks.Find(id)
	if !ok {
		return task.Task{}, nil, task.ErrNotFound
	}
	pinned := !t.Pinned
	return b.Edit(id, task.Patch{Pinned: &pinned})
}

// ToggleSubtask flips completion of the subtask at idx.
func (b *Board) ToggleSubtask(id string, idx int) (task.Task, []Job, error) {
	t, ok := b.state.Tasks.Find(id)
	if !ok {
		return task.Task{}, nil, task.ErrNotFound
	}
	if idx < 0 || idx >= len(t.Subtasks) {
		return t, nil, nil
	}
	subs := slices.Clone(t.Subtasks)
	subs[idx].Completed = !subs[idx].Completed
	return b.Edit(id, task.Patch{Subtasks: &subs})
}

// Delete removes the task with id and captures an undo that puts it back.
func (b *Board) Delete(id string) (undo.Entry, []Job, error) {
	removed, err := b.state.Tasks.Remove(id)
	if err != nil {
		return undo.Entry{}, nil, err
	}

	entry := b.undo.Capture(undo.KindDelete, []task.Task{removed}, func() {
		restored := b.state.Tasks.Restore(removed)
		b.queue(b.sync.PersistCreate(restored))
	})
	b.bus.Publish(notify.Undo(entry.Label(), entry.ID))
	b.log.Debug().Str("task_id", id).Uint64("undo_id", entry.ID).Msg("task deleted")

	b.queue(b.sync.PersistDelete(id))
	return entry, b.drain(), nil
}

// Clear removes every task and captures an undo that restores all of them.
// Clearing an empty board captures nothing.
func (b *Board) Clear() (undo.Entry, []Job, bool) {
	removed := b.state.Tasks.Clear()
	if len(removed) == 0 {
		return undo.Entry{}, nil, false
	}

	entry := b.undo.Capture(undo.KindClear, removed, func() {
		b.state.Tasks.RestoreAll(removed)
		for _, t := range removed {
			b.queue(b.sync.PersistCreate(t))
		}
	})
	b.bus.Publish(notify.Undo(fmt.Sprintf("%s (%d tasks)", entry.Label(), len(removed)), entry.ID))

	for _, t := range removed {
		b.queue(b.sync.PersistDelete(t.ID))
	}
	return entry, b.drain(), true
}

// Undo reverses the captured action. It stays available after the toast
// advertising it has expired.
func (b *Board) Undo() (undo.Entry, []Job, bool) {
	entry, ok := b.undo.Restore()
	if !ok {
		return undo.Entry{}, nil, false
	}
	b.bus.Successf("Restored %d %s", len(entry.Snapshot), plural(len(entry.Snapshot), "task", "tasks"))
	return entry, b.drain(), true
}

// UndoEntry reverses the action only when id still names the captured entry.
// A toast for an overwritten action does nothing.
func (b *Board) UndoEntry(id uint64) (undo.Entry, []Job, bool) {
	if !b.undo.IsCurrent(id) {
		return undo.Entry{}, nil, false
	}
	return b.Undo()
}

// HandleResult logs a failed remote write and raises a warning. The board is
// not rolled back.
func (b *Board) HandleResult(ctx context.Context, r Result) {
	if !b.sync.Report(ctx, r) {
		return
	}
	b.bus.Warnf("Could not %s task: %v", r.Op, r.Err)
}

// Export writes the current board as an export document.
func (b *Board) Export(w io.Writer, theme string) error {
	return export.Encode(w, export.New(b.state.Tasks.All(), theme, b.now()))
}

// Import replaces the board with the tasks of an export document. Documents
// for tasks that are not in the import are deleted remotely.
func (b *Board) Import(r io.Reader) (export.Document, []Job, error) {
	doc, err := export.Decode(r)
	if err != nil {
		return export.Document{}, nil, err
	}

	keep := make(map[string]struct{}, len(doc.Tasks))
	for _, t := range doc.Tasks {
		keep[t.ID] = struct{}{}
	}
	for _, t := range b.state.Tasks.All() {
		if _, ok := keep[t.ID]; !ok {
			b.queue(b.sync.PersistDelete(t.ID))
		}
	}

	b.state.Tasks.ReplaceAll(doc.Tasks)
	for _, t := range b.state.Tasks.All() {
		b.queue(b.sync.PersistCreate(t))
	}

	b.log.Info().Int("count", len(doc.Tasks)).Msg("board imported")
	return doc, b.drain(), nil
}

// Resolve finds a task by exact id or by unique id prefix.
func (b *Board) Resolve(ref string) (task.Task, error) {
	if t, ok := b.state.Tasks.Find(ref); ok {
		return t, nil
	}

	var match []task.Task
	for _, t := range b.state.Tasks.All() {
		if strings.HasPrefix(t.ID, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return task.Task{}, fmt.Errorf("task %q: %w", ref, task.ErrNotFound)
	case 1:
		return match[0], nil
	default:
		return task.Task{}, fmt.Errorf("task %q: %w", ref, ErrAmbiguous)
	}
}

// ErrAmbiguous is returned when an id prefix matches more than one task.
var ErrAmbiguous = errors.New("ambiguous task id")

func (b *Board) queue(j Job) {
	b.pending = append(b.pending, j)
}

func (b *Board) drain() []Job {
	jobs := b.pending
	b.pending = nil
	return jobs
}

func slotsFor(tasks []task.Task) []drag.Slot {
	slots := make([]drag.Slot, len(tasks))
	for i, t := range tasks {
		slots[i] = drag.Slot{ID: t.ID, Top: i, Height: 1}
	}
	return slots
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
