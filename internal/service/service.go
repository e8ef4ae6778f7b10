package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no task carries the requested ID.
var ErrNotFound = errors.New("task not found")

// Service defines the interface for task backend operations.
// Commands never touch the persisted representation directly.
type Service interface {
	// ListTasks returns the tasks in store order.
	// It never persists anything.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask appends a task with ID = len+1 and Done = false and persists
	// the store. Returns the created task.
	CreateTask(ctx context.Context, title string) (Task, error)

	// CompleteTask marks the first task with the given ID as done and persists
	// the store. Returns ErrNotFound without persisting if no task matches.
	CompleteTask(ctx context.Context, id uint64) error

	// DeleteTask removes the first task with the given ID and persists the
	// store. Returns ErrNotFound without persisting if no task matches.
	DeleteTask(ctx context.Context, id uint64) error
}
