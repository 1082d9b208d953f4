// Package memstore is an in-process remote.Collection used by the memory
// backend and by tests.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/hay-kot/kanban/internal/core/remote"
	"github.com/hay-kot/kanban/pkg/kv"
)

type entry struct {
	seq uint64
	doc remote.Document
}

// Collection keeps documents in memory. It is safe for concurrent use.
type Collection struct {
	docs *kv.Store[string, entry]
	seq  atomic.Uint64

	// FailWith, when set, is returned by every operation. Tests use it to
	// simulate an unreachable backend.
	FailWith error
}

var _ remote.Collection = (*Collection)(nil)

// New creates an empty collection.
func New() *Collection {
	return &Collection{docs: kv.New[string, entry]()}
}

// Seed creates documents with generated ids and returns the ids in order.
func (c *Collection) Seed(docs ...remote.Document) []string {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		id := uuid.NewString()
		c.docs.Set(id, entry{seq: c.seq.Add(1), doc: d})
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of stored documents.
func (c *Collection) Len() int {
	return c.docs.Len()
}

// Get returns a single document.
func (c *Collection) Get(id string) (remote.Document, bool) {
	e, ok := c.docs.Get(id)
	return e.doc, ok
}

func (c *Collection) Create(_ context.Context, id string, doc remote.Document) (string, error) {
	if c.FailWith != nil {
		return "", c.FailWith
	}
	if id == "" {
		id = uuid.NewString()
	}
	c.docs.Set(id, entry{seq: c.seq.Add(1), doc: doc})
	return id, nil
}

func (c *Collection) ListAll(_ context.Context) ([]remote.Record, error) {
	if c.FailWith != nil {
		return nil, c.FailWith
	}

	snap := c.docs.Snapshot()
	type keyed struct {
		id string
		e  entry
	}
	items := make([]keyed, 0, len(snap))
	for id, e := range snap {
		items = append(items, keyed{id: id, e: e})
	}
	slices.SortFunc(items, func(a, b keyed) int {
		if c := a.e.doc.CreatedAt.Compare(b.e.doc.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.e.seq < b.e.seq:
			return -1
		case a.e.seq > b.e.seq:
			return 1
		}
		return 0
	})

	records := make([]remote.Record, 0, len(items))
	for _, it := range items {
		records = append(records, remote.Record{ID: it.id, Doc: it.e.doc})
	}
	return records, nil
}

func (c *Collection) Update(_ context.Context, id string, doc remote.Document) error {
	if c.FailWith != nil {
		return c.FailWith
	}
	ok := c.docs.Update(id, func(cur entry, exists bool) (entry, bool) {
		cur.doc = doc
		return cur, exists
	})
	if !ok {
		return fmt.Errorf("update document %q: %w", id, remote.ErrNotFound)
	}
	return nil
}

func (c *Collection) Delete(_ context.Context, id string) error {
	if c.FailWith != nil {
		return c.FailWith
	}
	c.docs.Delete(id)
	return nil
}
