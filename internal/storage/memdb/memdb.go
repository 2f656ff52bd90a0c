// Package memdb is an in-memory storage.Interface.
package memdb

import (
	"context"
	"sort"
	"sync"

	"taskmgr/internal/service"
	"taskmgr/internal/storage"
)

// Store keeps tasks in a map guarded by a mutex.
type Store struct {
	mu     sync.RWMutex
	tasks  map[int]service.Task
	nextID int
}

// New creates an empty store. IDs start at 1.
func New() *Store {
	return &Store{
		tasks:  make(map[int]service.Task),
		nextID: 1,
	}
}

// Tasks returns all tasks ordered by ID.
func (s *Store) Tasks(ctx context.Context) ([]service.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]service.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// TaskByID returns one task.
func (s *Store) TaskByID(ctx context.Context, id int) (service.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return service.Task{}, storage.ErrNotFound
	}
	return t, nil
}

// AddTask stores a task under a fresh ID.
func (s *Store) AddTask(ctx context.Context, t service.Task) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextID
	s.nextID++
	s.tasks[t.ID] = t
	return t.ID, nil
}

// UpdateTask replaces an existing task.
func (s *Store) UpdateTask(ctx context.Context, t service.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return storage.ErrNotFound
	}
	s.tasks[t.ID] = t
	return nil
}

// DeleteTask removes a task if present.
func (s *Store) DeleteTask(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

// Close is a no-op.
func (s *Store) Close() {}
