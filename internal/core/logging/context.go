package logging

import "context"

type contextKey string

const (
	taskIDKey contextKey = "task_id"
	opKey     contextKey = "op"
)

// WithTaskID adds the id of the task being persisted to the context.
func WithTaskID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, taskIDKey, id)
}

// WithOp adds the persistence operation name (create, update, delete, load).
func WithOp(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, opKey, op)
}

// GetTaskID returns the task id, or "" when absent.
func GetTaskID(ctx context.Context) string {
	if id, ok := ctx.Value(taskIDKey).(string); ok {
		return id
	}
	return ""
}

// GetOp returns the operation name, or "" when absent.
func GetOp(ctx context.Context) string {
	if op, ok := ctx.Value(opKey).(string); ok {
		return op
	}
	return ""
}
