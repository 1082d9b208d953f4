package kanban

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/kanban/internal/core/logging"
	"github.com/hay-kot/kanban/internal/core/remote"
	"github.com/hay-kot/kanban/internal/core/task"
	"github.com/hay-kot/kanban/internal/data/stores"
)

// Op names a remote operation.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Result is the outcome of one remote write.
type Result struct {
	Op     Op
	TaskID string
	Err    error
}

// Job is a deferred fire-and-forget remote write. The TUI runs jobs as
// tea.Cmds; the CLI runs them inline. A Job never retries and its failure
// never rolls back the board.
type Job func(ctx context.Context) Result

// LoadResult is the outcome of a full fetch.
type LoadResult struct {
	Tasks []task.Task
	Err   error
}

// DefaultJobTimeout bounds a single remote call.
const DefaultJobTimeout = 30 * time.Second

// SyncAdapter translates board changes into calls on the remote collection.
type SyncAdapter struct {
	coll    remote.Collection
	log     zerolog.Logger
	timeout time.Duration
}

// NewSyncAdapter creates an adapter for coll.
func NewSyncAdapter(coll remote.Collection, log zerolog.Logger) *SyncAdapter {
	return &SyncAdapter{
		coll:    coll,
		log:     logging.Sub(log, "sync"),
		timeout: DefaultJobTimeout,
	}
}

// LoadAll fetches every document and maps it to a task. The caller replaces
// the store with the result.
func (s *SyncAdapter) LoadAll(ctx context.Context) ([]task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.coll.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, remote.FromRecord(r))
	}

	s.log.Debug().Int("count", len(tasks)).Msg("loaded tasks")
	return tasks, nil
}

// Load is LoadAll packaged as a LoadResult.
func (s *SyncAdapter) Load(ctx context.Context) LoadResult {
	tasks, err := s.LoadAll(ctx)
	return LoadResult{Tasks: tasks, Err: err}
}

// PersistCreate returns a job that stores t under its local id.
func (s *SyncAdapter) PersistCreate(t task.Task) Job {
	doc := remote.ToDocument(t)
	id := t.ID
	return func(ctx context.Context) Result {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		// Collections store a supplied id as given, so the returned id is t.ID.
		_, err := s.coll.Create(ctx, id, doc)
		return Result{Op: OpCreate, TaskID: id, Err: err}
	}
}

// PersistUpdate returns a job that overwrites the stored document for t.
// A missing document is re-created so a write that raced a failed create
// still lands.
func (s *SyncAdapter) PersistUpdate(t task.Task) Job {
	doc := remote.ToDocument(t)
	id := t.ID
	return func(ctx context.Context) Result {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		err := s.coll.Update(ctx, id, doc)
		if errors.Is(err, remote.ErrNotFound) {
			_, err = s.coll.Create(ctx, id, doc)
		}
		return Result{Op: OpUpdate, TaskID: id, Err: err}
	}
}

// PersistDelete returns a job that removes the document with id.
func (s *SyncAdapter) PersistDelete(id string) Job {
	return func(ctx context.Context) Result {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		return Result{Op: OpDelete, TaskID: id, Err: s.coll.Delete(ctx, id)}
	}
}

// Report logs a failed result. It returns true when r carried an error.
func (s *SyncAdapter) Report(ctx context.Context, r Result) bool {
	if r.Err == nil {
		return false
	}

	ctx = logging.WithOp(logging.WithTaskID(ctx, r.TaskID), string(r.Op))
	s.log.Warn().Ctx(ctx).Err(r.Err).Bool("busy", stores.IsBusyError(r.Err)).Msg("remote write failed")
	return true
}

// RunAll executes jobs sequentially and returns their results. It is used by
// the CLI, where there is no event loop to hand jobs to.
func RunAll(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		results = append(results, j(ctx))
	}
	return results
}
