// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskmgr/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int
	calls  map[string]int

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	DeleteTaskErr error

	// CreateNoBody makes CreateTask succeed without returning a task.
	CreateNoBody bool

	// Gates, when set, block the named operation ("list", "create",
	// "delete") until the channel yields or is closed.
	Gates map[string]chan struct{}
}

// NewFakeService creates an empty FakeService. IDs start at 1.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		calls:  make(map[string]int),
		Gates:  make(map[string]chan struct{}),
	}
}

// AddTask seeds a task and returns it with its assigned ID.
func (f *FakeService) AddTask(title, description string, priority int) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: f.nextID, Title: title, Description: description, Priority: priority}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks...)
}

// Calls returns how many times op was invoked.
func (f *FakeService) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Gate installs and returns a gate for op.
func (f *FakeService) Gate(op string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.Gates[op] = ch
	return ch
}

func (f *FakeService) enter(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	gate := f.Gates[op]
	f.mu.Unlock()

	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	if err := f.enter(ctx, "list"); err != nil {
		return nil, err
	}
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.Task) (*service.Task, error) {
	if err := f.enter(ctx, "create"); err != nil {
		return nil, err
	}
	if f.CreateTaskErr != nil {
		return nil, f.CreateTaskErr
	}
	t := f.AddTask(task.Title, task.Description, task.Priority)
	if f.CreateNoBody {
		return nil, nil
	}
	return &t, nil
}

// DeleteTask implements service.Service. Unknown IDs succeed.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	if err := f.enter(ctx, "delete"); err != nil {
		return err
	}
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}
