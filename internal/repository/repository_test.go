package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"

	"taskmgr/internal/repository"
	"taskmgr/internal/service"
	"taskmgr/internal/testutil"
)

func newRepo(svc service.Service) *repository.Repository {
	return repository.New(svc, logr.Discard())
}

func TestFetchAll_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	t1 := svc.AddTask("one", "first", 1)
	t2 := svc.AddTask("two", "second", 2)

	out := newRepo(svc).FetchAll(context.Background())
	if !out.Ok() {
		t.Fatalf("expected success, got %q", out.Reason())
	}
	got := out.Value()
	if len(got) != 2 || got[0] != t1 || got[1] != t2 {
		t.Errorf("unexpected tasks %+v", got)
	}
	if out.Err() != nil {
		t.Errorf("expected nil Err on success")
	}
}

type nilListService struct{ testutil.FakeService }

func (*nilListService) ListTasks(ctx context.Context) ([]service.Task, error) { return nil, nil }

func TestFetchAll_NilBodyIsEmptyList(t *testing.T) {
	out := newRepo(&nilListService{}).FetchAll(context.Background())
	if !out.Ok() {
		t.Fatalf("expected success, got %q", out.Reason())
	}
	if out.Value() == nil || len(out.Value()) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", out.Value())
	}
}

func TestFetchAll_Rejected(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = &service.StatusError{Code: 500, Status: "Internal Server Error"}

	out := newRepo(svc).FetchAll(context.Background())
	if out.Ok() {
		t.Fatal("expected failure")
	}
	if out.Reason() != "server error: 500 - Internal Server Error" {
		t.Errorf("unexpected reason %q", out.Reason())
	}
	if out.Err().Kind != repository.KindRejected || out.Err().Status != 500 {
		t.Errorf("unexpected error %+v", out.Err())
	}
}

func TestFetchAll_Transport(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("dial tcp: connection refused")

	out := newRepo(svc).FetchAll(context.Background())
	if out.Ok() {
		t.Fatal("expected failure")
	}
	if out.Reason() != "dial tcp: connection refused" {
		t.Errorf("unexpected reason %q", out.Reason())
	}
	if out.Err().Kind != repository.KindTransport {
		t.Errorf("expected transport kind, got %v", out.Err().Kind)
	}
	if !errors.Is(out.Err(), svc.ListTasksErr) {
		t.Error("expected the cause to be unwrappable")
	}
}

func TestCreate_ReturnsServerTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("existing", "x", 1)

	out := newRepo(svc).Create(context.Background(), service.Task{ID: 99, Title: "A", Description: "B", Priority: 3})
	if !out.Ok() {
		t.Fatalf("expected success, got %q", out.Reason())
	}
	got := out.Value()
	if got.ID != 2 || got.Title != "A" || got.Description != "B" || got.Priority != 3 {
		t.Errorf("unexpected task %+v", got)
	}
}

func TestCreate_NoBodyIsContractFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateNoBody = true

	out := newRepo(svc).Create(context.Background(), service.Task{Title: "A", Description: "B", Priority: 3})
	if out.Ok() {
		t.Fatal("expected failure")
	}
	if out.Err().Kind != repository.KindContract {
		t.Errorf("expected contract kind, got %v", out.Err().Kind)
	}
	if out.Reason() != "server returned no task" {
		t.Errorf("unexpected reason %q", out.Reason())
	}
}

func TestCreate_Rejected(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = &service.StatusError{Code: 400, Status: "Bad Request"}

	out := newRepo(svc).Create(context.Background(), service.Task{Title: "A", Description: "B", Priority: 3})
	if out.Reason() != "server error: 400 - Bad Request" {
		t.Errorf("unexpected reason %q", out.Reason())
	}
}

func TestDelete(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("a", "b", 1)
	repo := newRepo(svc)

	if out := repo.Delete(context.Background(), task.ID); !out.Ok() {
		t.Fatalf("expected success, got %q", out.Reason())
	}
	if len(svc.Tasks()) != 0 {
		t.Errorf("expected task removed, got %+v", svc.Tasks())
	}

	svc.DeleteTaskErr = &service.StatusError{Code: 404, Status: "Not Found"}
	out := repo.Delete(context.Background(), 42)
	if out.Reason() != "server error: 404 - Not Found" {
		t.Errorf("unexpected reason %q", out.Reason())
	}
}

type panicService struct{ testutil.FakeService }

func (*panicService) ListTasks(ctx context.Context) ([]service.Task, error) {
	panic("boom")
}

func TestFetchAll_PanicBecomesFailure(t *testing.T) {
	out := newRepo(&panicService{}).FetchAll(context.Background())
	if out.Ok() {
		t.Fatal("expected failure")
	}
	if out.Reason() != "fetch failed: boom" {
		t.Errorf("unexpected reason %q", out.Reason())
	}
}

func TestOutcome_Unwrap(t *testing.T) {
	v, err := repository.Success(7).Unwrap()
	if v != 7 || err != nil {
		t.Errorf("unexpected (%v, %v)", v, err)
	}

	f := repository.Failure[int](&repository.Error{Kind: repository.KindTransport, Msg: "down"})
	if _, err := f.Unwrap(); err == nil || err.Error() != "down" {
		t.Errorf("unexpected error %v", err)
	}

	var zero repository.Outcome[int]
	if _, err := zero.Unwrap(); err == nil {
		t.Error("expected zero outcome to be a failure")
	}
}

func TestKind_String(t *testing.T) {
	kinds := map[repository.Kind]string{
		repository.KindValidation: "validation",
		repository.KindRejected:   "rejected",
		repository.KindTransport:  "transport",
		repository.KindContract:   "contract",
		repository.Kind(0):        "unknown",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), k.String(), want)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := repository.ValidationError()
	if err.Kind != repository.KindValidation {
		t.Errorf("unexpected kind %v", err.Kind)
	}
	if !errors.Is(err, service.ErrInvalidTask) {
		t.Error("expected ErrInvalidTask in chain")
	}
}
