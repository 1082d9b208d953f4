package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/kanban/internal/kanban"
)

type jobResultMsg struct {
	result kanban.Result
}

// jobRunner executes remote jobs on one background goroutine in submission
// order, so a delete and the undo that re-creates the same document never
// overtake each other. Submit never blocks the event loop.
type jobRunner struct {
	mu      sync.Mutex
	queue   []kanban.Job
	closed  bool
	wake    chan struct{}
	stop    chan struct{}
	results chan kanban.Result
	done    chan struct{}

	// orphan receives results produced after Close, when no listener is
	// left to turn them into messages.
	orphan func(kanban.Result)
}

func newJobRunner(ctx context.Context, orphan func(kanban.Result)) *jobRunner {
	r := &jobRunner{
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		results: make(chan kanban.Result, 64),
		done:    make(chan struct{}),
		orphan:  orphan,
	}
	go r.loop(ctx)
	return r
}

// Submit queues jobs behind everything submitted earlier.
func (r *jobRunner) Submit(jobs []kanban.Job) {
	if len(jobs) == 0 {
		return
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.queue = append(r.queue, jobs...)

	// wake is closed by Close under the same lock.
	select {
	case r.wake <- struct{}{}:
	default:
	}
	r.mu.Unlock()
}

// Close stops accepting jobs. Queued jobs still run; Wait blocks until they
// have.
func (r *jobRunner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.stop)
	close(r.wake)
}

// Wait blocks until the runner has drained after Close, or ctx ends.
func (r *jobRunner) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *jobRunner) loop(ctx context.Context) {
	defer close(r.done)

	for {
		_, open := <-r.wake
		for {
			job, ok := r.next()
			if !ok {
				break
			}
			r.deliver(job(ctx))
		}
		if !open {
			return
		}
	}
}

func (r *jobRunner) next() (kanban.Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return nil, false
	}
	job := r.queue[0]
	r.queue = r.queue[1:]
	return job, true
}

func (r *jobRunner) deliver(res kanban.Result) {
	select {
	case <-r.stop:
		r.drop(res)
		return
	default:
	}

	select {
	case r.results <- res:
	case <-r.stop:
		r.drop(res)
	}
}

func (r *jobRunner) drop(res kanban.Result) {
	if r.orphan != nil {
		r.orphan(res)
	}
}

// listen returns a command that waits for the next job result.
func (r *jobRunner) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case res := <-r.results:
			return jobResultMsg{result: res}
		case <-r.stop:
			return nil
		}
	}
}
