package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corekv "github.com/hay-kot/kanban/internal/core/kv"
)

func TestKV_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewKV()

	require.NoError(t, s.Set(ctx, "theme", "dark"))

	var got string
	require.NoError(t, s.Get(ctx, "theme", &got))
	assert.Equal(t, "dark", got)

	has, err := s.Has(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestKV_Missing(t *testing.T) {
	var got string
	err := NewKV().Get(context.Background(), "nope", &got)
	require.ErrorIs(t, err, corekv.ErrNotFound)
}

func TestKV_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	s := NewKV()
	require.NoError(t, s.Set(ctx, "b", 1))
	require.NoError(t, s.Set(ctx, "a", 2))
	require.NoError(t, s.Set(ctx, "c", 3))
	require.NoError(t, s.Delete(ctx, "c"))

	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestKV_ScopedTyped(t *testing.T) {
	ctx := context.Background()
	typed := corekv.Scoped[int](NewKV(), "counters")

	require.NoError(t, typed.Set(ctx, "hits", 7))
	got, err := typed.Get(ctx, "hits")
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
