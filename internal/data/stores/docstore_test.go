package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/core/remote"
	"github.com/hay-kot/kanban/internal/core/remote/remotetest"
)

func TestDocumentStore_Contract(t *testing.T) {
	remotetest.Run(t, func(t *testing.T) remote.Collection {
		return NewDocumentStore(openTestDB(t), "")
	})
}

func TestDocumentStore_ListsInCreationOrder(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(openTestDB(t), "")

	_, err := store.Create(ctx, "late", remotetest.Doc("late", 2*time.Hour))
	require.NoError(t, err)
	_, err = store.Create(ctx, "early", remotetest.Doc("early", 0))
	require.NoError(t, err)

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "early", records[0].ID)
	assert.Equal(t, "late", records[1].ID)
}

func TestDocumentStore_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	tasks := NewDocumentStore(database, "")
	archive := NewDocumentStore(database, "archive")

	_, err := tasks.Create(ctx, "a", remotetest.Doc("a", 0))
	require.NoError(t, err)

	records, err := archive.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.ErrorIs(t, archive.Update(ctx, "a", remotetest.Doc("a", 0)), remote.ErrNotFound)
}

func TestDocumentStore_GeneratedIDLength(t *testing.T) {
	store := NewDocumentStore(openTestDB(t), "")

	id, err := store.Create(context.Background(), "", remotetest.Doc("a", 0))
	require.NoError(t, err)
	assert.Len(t, id, remote.GeneratedIDLength)
}
