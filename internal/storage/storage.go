// Package storage defines the persistence contract of the reference task
// backend.
package storage

import (
	"context"
	"errors"

	"taskmgr/internal/service"
)

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// Interface is the contract every task store implements.
type Interface interface {
	// Tasks returns all tasks ordered by ID.
	Tasks(ctx context.Context) ([]service.Task, error)

	// TaskByID returns the task with the given ID or ErrNotFound.
	TaskByID(ctx context.Context, id int) (service.Task, error)

	// AddTask stores t (its ID is ignored) and returns the new ID.
	AddTask(ctx context.Context, t service.Task) (int, error)

	// UpdateTask replaces title, description and priority of t.ID.
	// Returns ErrNotFound if it does not exist.
	UpdateTask(ctx context.Context, t service.Task) error

	// DeleteTask removes a task. Deleting a missing ID is not an error.
	DeleteTask(ctx context.Context, id int) error

	// Close releases resources.
	Close()
}
