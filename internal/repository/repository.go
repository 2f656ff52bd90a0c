// Package repository adapts a service.Service into uniform Outcome values,
// hiding transport detail behind a single descriptive message.
package repository

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"taskmgr/internal/service"
)

// Repository wraps an API client. Every method blocks until the network
// call finishes; callers that must stay responsive run it on their own
// goroutine.
type Repository struct {
	svc service.Service
	log logr.Logger
}

// New creates a repository over svc.
func New(svc service.Service, log logr.Logger) *Repository {
	return &Repository{svc: svc, log: log.WithName("repository")}
}

// FetchAll returns every task. A missing body yields an empty list.
func (r *Repository) FetchAll(ctx context.Context) (out Outcome[[]service.Task]) {
	defer guard(r.log, "fetch", &out)

	tasks, err := r.svc.ListTasks(ctx)
	if err != nil {
		return failure[[]service.Task](r.log, "fetch", err)
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	r.log.V(1).Info("fetched tasks", "count", len(tasks))
	return Success(tasks)
}

// Create sends candidate and returns the task as stored by the server.
func (r *Repository) Create(ctx context.Context, candidate service.Task) (out Outcome[service.Task]) {
	defer guard(r.log, "create", &out)

	candidate.ID = 0
	created, err := r.svc.CreateTask(ctx, candidate)
	if err != nil {
		return failure[service.Task](r.log, "create", err)
	}
	if created == nil {
		return failure[service.Task](r.log, "create", &Error{
			Kind: KindContract,
			Msg:  "server returned no task",
		})
	}
	r.log.V(1).Info("created task", "id", created.ID)
	return Success(*created)
}

// Delete removes the task with the given id.
func (r *Repository) Delete(ctx context.Context, id int) (out Outcome[struct{}]) {
	defer guard(r.log, "delete", &out)

	if err := r.svc.DeleteTask(ctx, id); err != nil {
		return failure[struct{}](r.log, "delete", err)
	}
	r.log.V(1).Info("deleted task", "id", id)
	return Success(struct{}{})
}

func failure[T any](log logr.Logger, op string, err error) Outcome[T] {
	e := classify(err)
	log.V(1).Info("operation failed", "op", op, "kind", e.Kind.String(), "error", e.Msg)
	return Failure[T](e)
}

// guard converts a panic in the API client into a failed outcome.
func guard[T any](log logr.Logger, op string, out *Outcome[T]) {
	if p := recover(); p != nil {
		*out = failure[T](log, op, &Error{
			Kind: KindTransport,
			Msg:  fmt.Sprintf("%s failed: %v", op, p),
		})
	}
}
