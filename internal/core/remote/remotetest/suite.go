// Package remotetest holds a behavioural test suite shared by every
// remote.Collection implementation.
package remotetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/core/remote"
	"github.com/hay-kot/kanban/internal/core/task"
)

// Factory returns an empty collection for a single subtest.
type Factory func(t *testing.T) remote.Collection

// Doc builds a document with the given title created at base+offset.
func Doc(title string, offset time.Duration) remote.Document {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return remote.Document{
		Title:     title,
		Status:    string(task.StatusTodo),
		Priority:  string(task.PriorityMedium),
		CreatedAt: base.Add(offset),
	}
}

// Run exercises the collection contract.
func Run(t *testing.T, newCollection Factory) {
	t.Helper()

	t.Run("CreateGeneratesID", func(t *testing.T) {
		c := newCollection(t)
		ctx := context.Background()

		id, err := c.Create(ctx, "", Doc("a", 0))
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		other, err := c.Create(ctx, "", Doc("b", time.Second))
		require.NoError(t, err)
		assert.NotEqual(t, id, other)
	})

	t.Run("CreateHonorsID", func(t *testing.T) {
		c := newCollection(t)
		ctx := context.Background()

		id, err := c.Create(ctx, "fixed-id", Doc("a", 0))
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", id)

		records, err := c.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "fixed-id", records[0].ID)
		assert.Equal(t, "a", records[0].Doc.Title)
	})

	t.Run("CreateReplacesExisting", func(t *testing.T) {
		c := newCollection(t)
		ctx := context.Background()

		_, err := c.Create(ctx, "x", Doc("first", 0))
		require.NoError(t, err)
		_, err = c.Create(ctx, "x", Doc("second", 0))
		require.NoError(t, err)

		records, err := c.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "second", records[0].Doc.Title)
	})

	t.Run("ListAllRoundTripsFields", func(t *testing.T) {
		c := newCollection(t)
		ctx := context.Background()

		updated := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
		doc := remote.Document{
			Title:       "Write report",
			Status:      string(task.StatusProgress),
			DueDate:     "2024-03-10",
			Description: "quarterly",
			Priority:    string(task.PriorityHigh),
			CreatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			Pinned:      true,
			Subtasks:    []task.Subtask{{Text: "outline", Completed: true}},
			Files:       []task.Attachment{{Name: "a.pdf", Size: 10, Type: "application/pdf"}},
			UpdatedAt:   &updated,
		}

		id, err := c.Create(ctx, "", doc)
		require.NoError(t, err)

		records, err := c.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)

		got := records[0]
		assert.Equal(t, id, got.ID)
		assert.Equal(t, doc.Title, got.Doc.Title)
		assert.Equal(t, doc.Status, got.Doc.Status)
		assert.Equal(t, doc.DueDate, got.Doc.DueDate)
		assert.Equal(t, doc.Description, got.Doc.Description)
		assert.Equal(t, doc.Priority, got.Doc.Priority)
		assert.True(t, doc.CreatedAt.Equal(got.Doc.CreatedAt))
		assert.True(t, got.Doc.Pinned)
		assert.Equal(t, doc.Subtasks, got.Doc.Subtasks)
		assert.Equal(t, doc.Files, got.Doc.Files)
		require.NotNil(t, got.Doc.UpdatedAt)
		assert.True(t, updated.Equal(*got.Doc.UpdatedAt))
	})

	t.Run("UpdateOverwrites", func(t *testing.T) {
		c := newCollection(t)
		ctx := context.Background()

		id, err := c.Create(ctx, "", Doc("before", 0))
		require.NoError(t, err)

		next := Doc("after", 0)
		next.Status = string(task.StatusDone)
		require.NoError(t, c.Update(ctx, id, next))

		records, err := c.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "after", records[0].Doc.Title)
		assert.Equal(t, string(task.StatusDone), records[0].Doc.Status)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		c := newCollection(t)

		err := c.Update(context.Background(), "missing", Doc("x", 0))
		require.ErrorIs(t, err, remote.ErrNotFound)
	})

	t.Run("DeleteRemoves", func(t *testing.T) {
		c := newCollection(t)
		ctx := context.Background()

		keep, err := c.Create(ctx, "", Doc("keep", 0))
		require.NoError(t, err)
		drop, err := c.Create(ctx, "", Doc("drop", time.Second))
		require.NoError(t, err)

		require.NoError(t, c.Delete(ctx, drop))

		records, err := c.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, keep, records[0].ID)
	})

	t.Run("DeleteMissingIsNoop", func(t *testing.T) {
		c := newCollection(t)
		assert.NoError(t, c.Delete(context.Background(), "missing"))
	})

	t.Run("EmptyCollection", func(t *testing.T) {
		c := newCollection(t)

		records, err := c.ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
