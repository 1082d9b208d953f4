package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	corekv "github.com/hay-kot/kanban/internal/core/kv"
	"github.com/hay-kot/kanban/pkg/kv"
)

// KV is an in-process corekv.KV. Values are stored as JSON so behaviour
// matches the SQLite sidecar.
type KV struct {
	values *kv.Store[string, []byte]
}

var _ corekv.KV = (*KV)(nil)

// NewKV creates an empty store.
func NewKV() *KV {
	return &KV{values: kv.New[string, []byte]()}
}

func (s *KV) Get(_ context.Context, key string, dest any) error {
	raw, ok := s.values.Get(key)
	if !ok {
		return fmt.Errorf("get %q: %w", key, corekv.ErrNotFound)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func (s *KV) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	s.values.Set(key, raw)
	return nil
}

func (s *KV) Delete(_ context.Context, key string) error {
	s.values.Delete(key)
	return nil
}

func (s *KV) Has(_ context.Context, key string) (bool, error) {
	_, ok := s.values.Get(key)
	return ok, nil
}

// ListKeys returns every key in sorted order.
func (s *KV) ListKeys(_ context.Context) ([]string, error) {
	snap := s.values.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
