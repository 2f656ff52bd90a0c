package state

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"taskmgr/internal/repository"
	"taskmgr/internal/service"
)

// Repository is the subset of *repository.Repository the container needs.
type Repository interface {
	FetchAll(ctx context.Context) repository.Outcome[[]service.Task]
	Create(ctx context.Context, candidate service.Task) repository.Outcome[service.Task]
	Delete(ctx context.Context, id int) repository.Outcome[struct{}]
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the container's logger.
func WithLogger(log logr.Logger) Option {
	return func(c *Container) { c.log = log }
}

// Container is the single authority over UIState for one session.
//
// Intents return immediately; the repository call runs on its own
// goroutine. Intents are not queued against each other: each transition
// is applied to the latest state at the moment it happens.
type Container struct {
	repo   Repository
	cell   *Cell[UIState]
	log    logr.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a container for a session bound to ctx and immediately
// issues a Fetch.
func New(ctx context.Context, repo Repository, opts ...Option) *Container {
	ctx, cancel := context.WithCancel(ctx)
	c := &Container{
		repo:   repo,
		cell:   NewCell(UIState{Tasks: []service.Task{}}),
		log:    logr.Discard(),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithName("state")
	c.Fetch()
	return c
}

// Snapshot returns the current state.
func (c *Container) Snapshot() UIState {
	return c.cell.Load()
}

// Subscribe delivers the current snapshot and every later one, in order.
func (c *Container) Subscribe() (<-chan UIState, func()) {
	return c.cell.Subscribe()
}

// Fetch reloads the task list. On failure the previous list is kept.
func (c *Container) Fetch() {
	c.launch("fetch", func(ctx context.Context) {
		out := c.repo.FetchAll(ctx)
		c.cell.Update(func(s UIState) UIState {
			if !out.Ok() {
				return s.fail(out.Err())
			}
			return s.succeed(out.Value())
		})
	})
}

// Add validates the input locally and, if valid, creates the task and
// appends the server's copy to the list. Invalid input only sets the
// error; no request is made and Loading is untouched.
func (c *Container) Add(title, description string, priority int) {
	candidate, err := service.NewTask(title, description, priority)
	if err != nil {
		c.log.V(1).Info("rejected task input", "title", title, "priority", priority)
		c.cell.Update(func(s UIState) UIState {
			return s.reject(repository.ValidationError())
		})
		return
	}

	c.launch("add", func(ctx context.Context) {
		out := c.repo.Create(ctx, candidate)
		c.cell.Update(func(s UIState) UIState {
			if !out.Ok() {
				return s.fail(out.Err())
			}
			return s.succeed(appended(s.Tasks, out.Value()))
		})
	})
}

// Delete removes the task with id on the server and then locally.
// Deleting an id that is not in the list leaves the list unchanged.
func (c *Container) Delete(id int) {
	c.launch("delete", func(ctx context.Context) {
		out := c.repo.Delete(ctx, id)
		c.cell.Update(func(s UIState) UIState {
			if !out.Ok() {
				return s.fail(out.Err())
			}
			return s.succeed(without(s.Tasks, id))
		})
	})
}

// Wait blocks until every issued intent has settled.
func (c *Container) Wait() {
	c.wg.Wait()
}

// Close ends the session: in-flight requests are cancelled, Wait is
// honoured and subscriptions are closed.
func (c *Container) Close() {
	c.cancel()
	c.wg.Wait()
	c.cell.Close()
}

// launch moves the state to Loading and runs fn on a new goroutine.
func (c *Container) launch(op string, fn func(ctx context.Context)) {
	c.cell.Update(UIState.begin)
	c.wg.Add(1)
	c.log.V(1).Info("intent started", "op", op)
	go func() {
		defer c.wg.Done()
		fn(c.ctx)
		c.log.V(1).Info("intent settled", "op", op)
	}()
}
