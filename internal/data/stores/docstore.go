package stores

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hay-kot/kanban/internal/core/remote"
	"github.com/hay-kot/kanban/internal/data/db"
	"github.com/hay-kot/kanban/pkg/randid"
)

// DocumentStore implements remote.Collection on the local SQLite database.
// Each document is stored as a JSON body keyed by collection and id.
type DocumentStore struct {
	db         *db.DB
	collection string
}

var _ remote.Collection = (*DocumentStore)(nil)

// NewDocumentStore creates a SQLite-backed collection. An empty name uses
// remote.CollectionName.
func NewDocumentStore(db *db.DB, collection string) *DocumentStore {
	if collection == "" {
		collection = remote.CollectionName
	}
	return &DocumentStore{db: db, collection: collection}
}

// Create inserts doc, generating an id when none is given.
func (s *DocumentStore) Create(ctx context.Context, id string, doc remote.Document) (string, error) {
	if id == "" {
		id = randid.Generate(remote.GeneratedIDLength)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document %q: %w", id, err)
	}

	_, err = s.db.Conn().ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		s.collection, id, body, doc.CreatedAt.UnixNano(), updatedAtNanos(doc),
	)
	if err != nil {
		return "", fmt.Errorf("create document %q: %w", id, err)
	}
	return id, nil
}

// ListAll returns every document in creation order.
func (s *DocumentStore) ListAll(ctx context.Context) ([]remote.Record, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, body FROM documents WHERE collection = ? ORDER BY created_at, rowid`,
		s.collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []remote.Record
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}

		var doc remote.Document
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode document %q: %w", id, err)
		}
		records = append(records, remote.Record{ID: id, Doc: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return records, nil
}

// Update overwrites an existing document.
func (s *DocumentStore) Update(ctx context.Context, id string, doc remote.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", id, err)
	}

	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		body, updatedAtNanos(doc), s.collection, id,
	)
	if err != nil {
		return fmt.Errorf("update document %q: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update document %q: %w", id, remote.ErrNotFound)
	}
	return nil
}

// Delete removes a document. Missing documents are ignored.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, s.collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete document %q: %w", id, err)
	}
	return nil
}

func updatedAtNanos(doc remote.Document) int64 {
	if doc.UpdatedAt != nil {
		return doc.UpdatedAt.UnixNano()
	}
	return doc.CreatedAt.UnixNano()
}
