package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Task
		want Task
	}{
		{
			name: "empty title gets placeholder",
			in:   Task{Title: "   ", Status: StatusDone, Priority: PriorityHigh},
			want: Task{Title: DefaultTitle, Status: StatusDone, Priority: PriorityHigh},
		},
		{
			name: "unknown status falls back to todo",
			in:   Task{Title: "a", Status: "archived", Priority: PriorityLow},
			want: Task{Title: "a", Status: StatusTodo, Priority: PriorityLow},
		},
		{
			name: "missing priority defaults to medium",
			in:   Task{Title: "a", Status: StatusTodo},
			want: Task{Title: "a", Status: StatusTodo, Priority: PriorityMedium},
		},
		{
			name: "case is folded",
			in:   Task{Title: "a", Status: "Progress", Priority: "HIGH"},
			want: Task{Title: "a", Status: StatusProgress, Priority: PriorityHigh},
		},
		{
			name: "empty slices collapse to nil",
			in:   Task{Title: "a", Status: StatusTodo, Priority: PriorityLow, Subtasks: []Subtask{}, Files: []Attachment{}},
			want: Task{Title: "a", Status: StatusTodo, Priority: PriorityLow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.Normalize()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	due := MustDate("2024-03-01")
	base := Task{ID: "1", Title: "write docs", Status: StatusTodo, Priority: PriorityMedium, DueDate: &due}

	t.Run("merges only set fields", func(t *testing.T) {
		got := base.Clone()
		title := "write more docs"
		got.Apply(Patch{Title: &title})

		assert.Equal(t, "write more docs", got.Title)
		assert.Equal(t, StatusTodo, got.Status)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, due, *got.DueDate)
	})

	t.Run("clears due date", func(t *testing.T) {
		got := base.Clone()
		got.Apply(Patch{ClearDueDate: true})
		assert.Nil(t, got.DueDate)
	})

	t.Run("invalid status cannot escape the columns", func(t *testing.T) {
		got := base.Clone()
		got.Apply(StatusPatch("blocked"))
		assert.Equal(t, StatusTodo, got.Status)
	})

	t.Run("empty title is coerced", func(t *testing.T) {
		got := base.Clone()
		empty := ""
		got.Apply(Patch{Title: &empty})
		assert.Equal(t, DefaultTitle, got.Title)
	})
}

func TestClone_IsDeep(t *testing.T) {
	due := MustDate("2024-01-01")
	orig := Task{
		DueDate:  &due,
		Subtasks: []Subtask{{Text: "a"}},
		Files:    []Attachment{{Name: "f.txt"}},
	}

	c := orig.Clone()
	c.Subtasks[0].Completed = true
	c.Files[0].Name = "g.txt"
	c.DueDate.Day = 9

	assert.False(t, orig.Subtasks[0].Completed)
	assert.Equal(t, "f.txt", orig.Files[0].Name)
	assert.Equal(t, 1, orig.DueDate.Day)
}

func TestMatches(t *testing.T) {
	tk := Task{Title: "Fix Login", Description: "OAuth redirect loop"}

	assert.True(t, tk.Matches(""))
	assert.True(t, tk.Matches("login"))
	assert.True(t, tk.Matches("REDIRECT"))
	assert.False(t, tk.Matches("signup"))
}

func TestOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	past := MustDate("2024-05-09")
	today := MustDate("2024-05-10")

	assert.True(t, Task{Status: StatusTodo, DueDate: &past}.Overdue(now))
	assert.False(t, Task{Status: StatusTodo, DueDate: &today}.Overdue(now))
	assert.False(t, Task{Status: StatusDone, DueDate: &past}.Overdue(now))
	assert.False(t, Task{Status: StatusTodo}.Overdue(now))
}

func TestSubtaskProgress(t *testing.T) {
	tk := Task{Subtasks: []Subtask{{Completed: true}, {}, {Completed: true}}}
	done, total := tk.SubtaskProgress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
}

func TestDate_JSON(t *testing.T) {
	due := MustDate("2024-06-01")
	data, err := json.Marshal(Task{DueDate: &due})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dueDate":"2024-06-01"`)

	var got Task
	require.NoError(t, json.Unmarshal(data, &got))
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)

	data, err = json.Marshal(Task{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dueDate":null`)
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("06/01/2024")
	assert.Error(t, err)
}
