// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"fmt"
)

// Service defines the interface for task backend operations.
// All REST calls go through this interface.
// Views and the state container never talk HTTP directly.
type Service interface {
	// ListTasks returns every task in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask sends a candidate (ID 0) and returns the stored task.
	// A nil task with a nil error means the server answered without a body.
	CreateTask(ctx context.Context, task Task) (*Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id int) error
}

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Code   int
	Status string // reason phrase, e.g. "Not Found"
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.Code, e.Status)
}
