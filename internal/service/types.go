// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"errors"
	"strings"
)

// Priority bounds, inclusive.
const (
	MinPriority = 1
	MaxPriority = 10
)

// ErrInvalidTask is returned when a task fails local validation.
var ErrInvalidTask = errors.New("invalid input: check the form fields")

// Task represents a single task item.
// A Task is a value: a changed task is a new Task, never an edited one.
type Task struct {
	ID          int    `json:"id" yaml:"id"` // 0 until the server assigns one
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Priority    int    `json:"priority" yaml:"priority"`
}

// NewTask builds an unsaved task candidate after validating the input.
func NewTask(title, description string, priority int) (Task, error) {
	if err := Validate(title, description, priority); err != nil {
		return Task{}, err
	}
	return Task{Title: title, Description: description, Priority: priority}, nil
}

// Validate checks task input. Title and description must be non-blank and
// priority must lie in [MinPriority, MaxPriority]. Any failure yields
// ErrInvalidTask; it does not report which field was wrong.
func Validate(title, description string, priority int) error {
	if strings.TrimSpace(title) == "" ||
		strings.TrimSpace(description) == "" ||
		priority < MinPriority || priority > MaxPriority {
		return ErrInvalidTask
	}
	return nil
}
