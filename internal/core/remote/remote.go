// Package remote defines the contract of the external "tasks" document
// collection and the mapping between documents and board tasks.
package remote

import (
	"context"
	"errors"
	"time"

	"github.com/hay-kot/kanban/internal/core/task"
)

// CollectionName is the name of the document collection holding tasks.
const CollectionName = "tasks"

// GeneratedIDLength is the length of ids minted by collections for documents
// created without one.
const GeneratedIDLength = 20

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is the stored shape of a task. The first six fields are the core
// document; the rest are optional extensions that older documents may lack.
type Document struct {
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	DueDate     string    `json:"dueDate"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`

	Pinned    bool              `json:"pinned,omitempty"`
	Subtasks  []task.Subtask    `json:"subtasks,omitempty"`
	Files     []task.Attachment `json:"files,omitempty"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// Record is a document together with its collection id.
type Record struct {
	ID  string
	Doc Document
}

// Collection is the persistence collaborator. It makes no transactional or
// ordering guarantees and supports no queries: ListAll returns everything.
type Collection interface {
	// Create stores doc and returns its id. When id is non-empty the
	// collection uses it and replaces any document already stored under it,
	// otherwise it generates one.
	Create(ctx context.Context, id string, doc Document) (string, error)

	// ListAll returns every document in the collection.
	ListAll(ctx context.Context) ([]Record, error)

	// Update overwrites the fields of an existing document.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, id string, doc Document) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error
}

// ToDocument maps a task to its stored shape.
func ToDocument(t task.Task) Document {
	doc := Document{
		Title:       t.Title,
		Status:      string(t.Status),
		Description: t.Description,
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		Pinned:      t.Pinned,
		Subtasks:    t.Subtasks,
		Files:       t.Files,
	}
	if t.DueDate != nil {
		doc.DueDate = t.DueDate.String()
	}
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		doc.UpdatedAt = &u
	}
	return doc
}

// FromRecord maps a stored document to a task, defaulting missing or invalid
// fields the same way the board does for user input. An unparsable due date
// is treated as absent. A missing updatedAt falls back to createdAt.
func FromRecord(r Record) task.Task {
	t := task.Task{
		ID:          r.ID,
		Title:       r.Doc.Title,
		Description: r.Doc.Description,
		Status:      task.Status(r.Doc.Status),
		Priority:    task.Priority(r.Doc.Priority),
		Pinned:      r.Doc.Pinned,
		Subtasks:    r.Doc.Subtasks,
		Files:       r.Doc.Files,
		CreatedAt:   r.Doc.CreatedAt,
		UpdatedAt:   r.Doc.CreatedAt,
	}
	if r.Doc.UpdatedAt != nil {
		t.UpdatedAt = *r.Doc.UpdatedAt
	}
	if r.Doc.DueDate != "" {
		if d, err := task.ParseDate(r.Doc.DueDate); err == nil {
			t.DueDate = &d
		}
	}
	t = t.Clone()
	t.Normalize()
	return t
}
