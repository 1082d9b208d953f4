package validate

import (
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "Write docs", false},
		{"blank is allowed", "   ", false},
		{"at limit", strings.Repeat("a", MaxTitleLength), false},
		{"over limit", strings.Repeat("a", MaxTitleLength+1), true},
		{"multibyte at limit", strings.Repeat("é", MaxTitleLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Title(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Title(%q) error = %v", tt.input, err)
		})
	}
}

func TestDueDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"spaces", "  ", false},
		{"valid", "2026-03-01", false},
		{"padded", " 2026-03-01 ", false},
		{"bad month", "2026-13-01", true},
		{"wrong layout", "03/01/2026", true},
		{"word", "tomorrow", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DueDate(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "DueDate(%q) error = %v", tt.input, err)
		})
	}
}

func TestStatusAndPriority(t *testing.T) {
	assert.NoError(t, Status("Progress"))
	assert.Error(t, Status("later"))
	assert.NoError(t, Priority("HIGH"))
	assert.Error(t, Priority("urgent"))
}

func TestTaskInput(t *testing.T) {
	require.NoError(t, TaskInput("ok", "todo", "medium", ""))

	err := TaskInput("ok", "later", "urgent", "soon")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 3)
	assert.Equal(t, "status", fieldErrs[0].Field)
	assert.Equal(t, "priority", fieldErrs[1].Field)
	assert.Equal(t, "due", fieldErrs[2].Field)
}
