package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies task_id and op from the event context onto the log event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := GetTaskID(ctx); id != "" {
		e.Str("task_id", id)
	}
	if op := GetOp(ctx); op != "" {
		e.Str("op", op)
	}
}
