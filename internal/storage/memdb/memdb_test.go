package memdb_test

import (
	"context"
	"errors"
	"testing"

	"taskmgr/internal/service"
	"taskmgr/internal/storage"
	"taskmgr/internal/storage/memdb"
)

func TestStore_AddAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	s := memdb.New()
	defer s.Close()

	for want := 1; want <= 3; want++ {
		id, err := s.AddTask(ctx, service.Task{ID: 99, Title: "t", Description: "d", Priority: 1})
		if err != nil {
			t.Fatalf("AddTask: %v", err)
		}
		if id != want {
			t.Errorf("expected id %d, got %d", want, id)
		}
	}
}

func TestStore_TasksOrderedByID(t *testing.T) {
	ctx := context.Background()
	s := memdb.New()
	for _, title := range []string{"a", "b", "c", "d"} {
		s.AddTask(ctx, service.Task{Title: title, Description: "x", Priority: 2})
	}
	s.DeleteTask(ctx, 2)

	tasks, err := s.Tasks(ctx)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	var got []int
	for _, task := range tasks {
		got = append(got, task.ID)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 4 {
		t.Errorf("expected [1 3 4], got %v", got)
	}
}

func TestStore_EmptyTasksIsNotNil(t *testing.T) {
	tasks, err := memdb.New().Tasks(context.Background())
	if err != nil || tasks == nil {
		t.Errorf("expected empty list, got %#v, %v", tasks, err)
	}
}

func TestStore_TaskByIDAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := memdb.New()
	id, _ := s.AddTask(ctx, service.Task{Title: "a", Description: "b", Priority: 3})

	if _, err := s.TaskByID(ctx, id+1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	updated := service.Task{ID: id, Title: "A", Description: "B", Priority: 9}
	if err := s.UpdateTask(ctx, updated); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	got, err := s.TaskByID(ctx, id)
	if err != nil || got != updated {
		t.Errorf("expected %+v, got %+v (%v)", updated, got, err)
	}

	if err := s.UpdateTask(ctx, service.Task{ID: 42}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_DeleteUnknownID(t *testing.T) {
	if err := memdb.New().DeleteTask(context.Background(), 7); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
