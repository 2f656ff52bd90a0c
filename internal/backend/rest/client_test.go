package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"taskmgr/internal/backend/rest"
	"taskmgr/internal/config"
	"taskmgr/internal/service"
)

func newClient(t *testing.T, h http.HandlerFunc) *rest.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := rest.NewWithHTTPClient(srv.Client(), srv.URL+"/api", logr.Discard())
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	return c
}

func TestNewWithHTTPClient_RejectsBadBaseURL(t *testing.T) {
	for _, base := range []string{"ftp://example.com", "localhost:8080", "::"} {
		if _, err := rest.NewWithHTTPClient(http.DefaultClient, base, logr.Discard()); err == nil {
			t.Errorf("expected error for %q", base)
		}
	}
}

func TestListTasks(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(rest.RequestIDHeader) == "" {
			t.Error("expected request id header")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1,"title":"t","description":"d","priority":4}]`)
	})

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := service.Task{ID: 1, Title: "t", Description: "d", Priority: 4}
	if len(tasks) != 1 || tasks[0] != want {
		t.Errorf("expected [%+v], got %+v", want, tasks)
	}
}

func TestListTasks_EmptyBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", tasks)
	}
}

func TestListTasks_StatusError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.ListTasks(context.Background())
	var se *service.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != 500 || se.Status != "Internal Server Error" {
		t.Errorf("unexpected status error %+v", se)
	}
}

func TestListTasks_MalformedBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	})

	_, err := c.ListTasks(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decoding response") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestListTasks_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.ListTasks(ctx)
	if err == nil || err.Error() != "request timed out" {
		t.Errorf("expected timeout, got %v", err)
	}
}

func TestCreateTask(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if _, ok := body["id"]; ok {
			t.Error("request body must not carry an id")
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":7,"title":"A","description":"B","priority":3}`)
	})

	created, err := c.CreateTask(context.Background(), service.Task{ID: 99, Title: "A", Description: "B", Priority: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := service.Task{ID: 7, Title: "A", Description: "B", Priority: 3}
	if created == nil || *created != want {
		t.Errorf("expected %+v, got %+v", want, created)
	}
}

func TestCreateTask_NoBody(t *testing.T) {
	for _, body := range []string{"", "null", "  \n"} {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, body)
		})

		created, err := c.CreateTask(context.Background(), service.Task{Title: "A", Description: "B", Priority: 3})
		if err != nil || created != nil {
			t.Errorf("body %q: expected (nil, nil), got (%+v, %v)", body, created, err)
		}
	}
}

func TestCreateTask_BadRequest(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.CreateTask(context.Background(), service.Task{Title: "A", Description: "B", Priority: 3})
	var se *service.StatusError
	if !errors.As(err, &se) || se.Code != 400 || se.Status != "Bad Request" {
		t.Errorf("expected 400 Bad Request, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/tasks/42" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteTask(context.Background(), 42); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_SendsBearerToken(t *testing.T) {
	auth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	cfg := &config.Config{
		Dir:     t.TempDir(),
		BaseURL: srv.URL,
		Timeout: time.Second,
		Token:   "secret",
	}
	c, err := rest.New(context.Background(), cfg, logr.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.ListTasks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := <-auth; got != "Bearer secret" {
		t.Errorf("expected bearer token, got %q", got)
	}
}

func TestNew_NoTokenSendsNoAuthorization(t *testing.T) {
	auth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	cfg := &config.Config{Dir: t.TempDir(), BaseURL: srv.URL, Timeout: time.Second}
	c, err := rest.New(context.Background(), cfg, logr.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.ListTasks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := <-auth; got != "" {
		t.Errorf("expected no Authorization header, got %q", got)
	}
}
