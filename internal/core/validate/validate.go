// Package validate provides shared validation for task input coming from
// the board form and the CLI.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/kanban/internal/core/task"
)

// MaxTitleLength caps titles typed into the board and the CLI.
const MaxTitleLength = 200

// Title checks the title length. A blank title is allowed; the board
// replaces it with task.DefaultTitle.
func Title(s string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(s)); n > MaxTitleLength {
		return fmt.Errorf("title is %d characters, max %d", n, MaxTitleLength)
	}
	return nil
}

// DueDate accepts an empty string or a YYYY-MM-DD date.
func DueDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := task.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func Status(s string) error {
	if _, ok := task.ParseStatus(s); !ok {
		return fmt.Errorf("must be one of todo, progress, done")
	}
	return nil
}

func Priority(s string) error {
	if _, ok := task.ParsePriority(s); !ok {
		return fmt.Errorf("must be one of low, medium, high")
	}
	return nil
}

// TaskInput validates raw task fields and reports every failing field.
func TaskInput(title, status, priority, due string) error {
	return criterio.ValidateStruct(
		criterio.Run("title", title, Title),
		criterio.Run("status", status, Status),
		criterio.Run("priority", priority, Priority),
		criterio.Run("due", due, DueDate),
	)
}
