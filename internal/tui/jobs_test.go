package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/kanban"
)

func recordJob(mu *sync.Mutex, order *[]string, id string, err error) kanban.Job {
	return func(context.Context) kanban.Result {
		mu.Lock()
		*order = append(*order, id)
		mu.Unlock()
		return kanban.Result{Op: kanban.OpCreate, TaskID: id, Err: err}
	}
}

func TestJobRunner_runs_in_submission_order(t *testing.T) {
	var mu sync.Mutex
	var order []string

	r := newJobRunner(context.Background(), nil)
	r.Submit([]kanban.Job{recordJob(&mu, &order, "delete", nil)})
	r.Submit([]kanban.Job{recordJob(&mu, &order, "restore", nil), recordJob(&mu, &order, "edit", nil)})

	for _, want := range []string{"delete", "restore", "edit"} {
		msg := r.listen()()
		res, ok := msg.(jobResultMsg)
		require.True(t, ok)
		assert.Equal(t, want, res.result.TaskID)
	}

	r.Close()
	require.NoError(t, r.Wait(context.Background()))
	assert.Equal(t, []string{"delete", "restore", "edit"}, order)
}

func TestJobRunner_Close_drains_queue_to_orphan(t *testing.T) {
	var mu sync.Mutex
	var order []string
	var orphaned []kanban.Result

	block := make(chan struct{})
	r := newJobRunner(context.Background(), func(res kanban.Result) {
		mu.Lock()
		orphaned = append(orphaned, res)
		mu.Unlock()
	})

	r.Submit([]kanban.Job{func(context.Context) kanban.Result {
		<-block
		return kanban.Result{Op: kanban.OpDelete, TaskID: "slow"}
	}})
	r.Submit([]kanban.Job{recordJob(&mu, &order, "failing", errors.New("offline"))})

	r.Close()
	close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))

	assert.Equal(t, []string{"failing"}, order, "queued jobs still run after Close")
	require.Len(t, orphaned, 2)
	assert.Equal(t, "slow", orphaned[0].TaskID)
	assert.EqualError(t, orphaned[1].Err, "offline")
}

func TestJobRunner_Submit_after_Close_is_ignored(t *testing.T) {
	var mu sync.Mutex
	var order []string

	r := newJobRunner(context.Background(), nil)
	r.Close()
	r.Submit([]kanban.Job{recordJob(&mu, &order, "late", nil)})

	require.NoError(t, r.Wait(context.Background()))
	assert.Empty(t, order)
	assert.Nil(t, r.listen()())
}
