// Package state owns the UI-observable task state and turns user intents
// (fetch, add, delete) into repository calls and state transitions.
package state

import (
	"slices"

	"taskmgr/internal/repository"
	"taskmgr/internal/service"
)

// UIState is an immutable snapshot of what a view renders. Snapshots are
// replaced whole; the Tasks slice of a published snapshot is never
// modified afterwards.
type UIState struct {
	Tasks   []service.Task
	Loading bool

	// Error is the message of the most recent failure, or "" when none is
	// surfaced. ErrorKind classifies it.
	Error     string
	ErrorKind repository.Kind

	inflight int
}

// HasError reports whether an error is surfaced.
func (s UIState) HasError() bool { return s.Error != "" }

func (s UIState) begin() UIState {
	s.inflight++
	s.Loading = true
	s.Error = ""
	s.ErrorKind = 0
	return s
}

func (s UIState) settle() UIState {
	if s.inflight > 0 {
		s.inflight--
	}
	s.Loading = s.inflight > 0
	return s
}

func (s UIState) succeed(tasks []service.Task) UIState {
	s = s.settle()
	s.Tasks = tasks
	s.Error = ""
	s.ErrorKind = 0
	return s
}

func (s UIState) fail(err *repository.Error) UIState {
	s = s.settle()
	s.Error = err.Error()
	s.ErrorKind = err.Kind
	return s
}

func (s UIState) reject(err *repository.Error) UIState {
	s.Error = err.Error()
	s.ErrorKind = err.Kind
	return s
}

// appended returns a new slice; the receiver's slice is shared with
// earlier snapshots and must stay untouched.
func appended(tasks []service.Task, t service.Task) []service.Task {
	out := make([]service.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, t)
}

func without(tasks []service.Task, id int) []service.Task {
	return slices.DeleteFunc(slices.Clone(tasks), func(t service.Task) bool {
		return t.ID == id
	})
}
