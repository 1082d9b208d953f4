package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/core/task"
)

func sampleTasks() []task.Task {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	due := task.MustDate("2024-06-01")
	return []task.Task{
		{
			ID:          "1704164645000000000",
			Title:       "Plan sprint",
			Description: "pick **three** goals",
			Status:      task.StatusTodo,
			Priority:    task.PriorityHigh,
			DueDate:     &due,
			Pinned:      true,
			Subtasks:    []task.Subtask{{Text: "backlog"}, {Text: "capacity", Completed: true}},
			Files:       []task.Attachment{{Name: "plan.pdf", Size: 2048, Type: "application/pdf", LastModified: 1704164645000, URL: "#"}},
			CreatedAt:   created,
			UpdatedAt:   created.Add(time.Hour),
		},
		{
			ID:        "doc-2",
			Title:     "Retro",
			Status:    task.StatusDone,
			Priority:  task.PriorityLow,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	doc := New(sampleTasks(), "dark", now)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	got, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, Version, got.Version)
	assert.Equal(t, "dark", got.Theme)
	assert.True(t, now.Equal(got.ExportedAt))
	require.Len(t, got.Tasks, 2)
	for i, want := range sampleTasks() {
		gotTask := got.Tasks[i]
		assert.Equal(t, want.ID, gotTask.ID)
		assert.True(t, want.CreatedAt.Equal(gotTask.CreatedAt))
		assert.True(t, want.UpdatedAt.Equal(gotTask.UpdatedAt))
		gotTask.CreatedAt, gotTask.UpdatedAt = want.CreatedAt, want.UpdatedAt
		assert.Equal(t, want, gotTask)
	}
}

func TestEncode_Shape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, New(nil, "light", time.Unix(0, 0).UTC())))

	out := buf.String()
	for _, key := range []string{`"version": 1`, `"tasks": []`, `"theme": "light"`, `"exportedAt"`} {
		assert.Contains(t, out, key)
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"not json", `{`, ErrInvalid},
		{"missing tasks", `{"version":1}`, ErrInvalid},
		{"bad status", `{"version":1,"tasks":[{"id":"a","title":"x","status":"blocked"}]}`, ErrInvalid},
		{"bad due date", `{"version":1,"tasks":[{"id":"a","title":"x","status":"todo","dueDate":"01/02/2024"}]}`, ErrInvalid},
		{"empty id", `{"version":1,"tasks":[{"id":"","title":"x","status":"todo"}]}`, ErrInvalid},
		{"duplicate id", `{"version":1,"tasks":[{"id":"a","title":"x","status":"todo"},{"id":"a","title":"y","status":"done"}]}`, ErrInvalid},
		{"bad theme", `{"version":1,"tasks":[],"theme":"sepia"}`, ErrInvalid},
		{"future version", `{"version":99,"tasks":[]}`, ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecode_NormalizesTasks(t *testing.T) {
	input := `{"version":1,"tasks":[{"id":"a","title":"","status":"todo","dueDate":null}]}`

	doc, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, task.DefaultTitle, doc.Tasks[0].Title)
	assert.Equal(t, task.PriorityMedium, doc.Tasks[0].Priority)
	assert.Nil(t, doc.Tasks[0].DueDate)
}
