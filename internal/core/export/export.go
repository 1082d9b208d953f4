// Package export reads and writes the board export document, the one file
// format the board persists. The shape is stable: anything Encode writes,
// Decode accepts and reproduces.
package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hay-kot/kanban/internal/core/task"
)

// Version is the current export format version.
const Version = 1

var (
	// ErrUnsupportedVersion is returned for documents newer than Version.
	ErrUnsupportedVersion = errors.New("unsupported export version")
	// ErrInvalid is returned when a document fails schema validation.
	ErrInvalid = errors.New("invalid export document")
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("kanban-export.json", schemaJSON)

// Document is the export file.
type Document struct {
	Version    int         `json:"version"`
	Tasks      []task.Task `json:"tasks"`
	Theme      string      `json:"theme,omitempty"`
	ExportedAt time.Time   `json:"exportedAt"`
}

// New builds an export document for the given board contents.
func New(tasks []task.Task, theme string, now time.Time) Document {
	out := make([]task.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return Document{
		Version:    Version,
		Tasks:      out,
		Theme:      theme,
		ExportedAt: now,
	}
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	if doc.Tasks == nil {
		doc.Tasks = []task.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// Decode reads and validates an export document. Tasks are normalized and
// later duplicates of an id are rejected.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read export: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := schema.Validate(raw); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalid, flattenSchemaError(err))
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if doc.Version > Version {
		return Document{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	seen := make(map[string]struct{}, len(doc.Tasks))
	for i := range doc.Tasks {
		id := doc.Tasks[i].ID
		if _, dup := seen[id]; dup {
			return Document{}, fmt.Errorf("%w: duplicate task id %q", ErrInvalid, id)
		}
		seen[id] = struct{}{}
		doc.Tasks[i].Normalize()
	}

	return doc, nil
}

func flattenSchemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var msgs []string
	collectCauses(ve, &msgs)
	if len(msgs) == 0 {
		return err
	}
	return errors.New(strings.Join(msgs, "; "))
}

func collectCauses(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectCauses(c, msgs)
	}
}
