// Package server is a reference implementation of the task REST API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"taskmgr/internal/storage"
)

// DefaultPrefix is where the task routes are mounted.
const DefaultPrefix = "/api"

const requestIDHeader = "X-Request-Id"

// Server serves the task API over a store.
type Server struct {
	store storage.Interface
	log   logr.Logger
}

// New creates a server over store.
func New(store storage.Interface, log logr.Logger) *Server {
	return &Server{store: store, log: log.WithName("server")}
}

// Router returns the HTTP handler with every route mounted under prefix.
func (s *Server) Router(prefix string) *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog)

	api := r.PathPrefix(prefix).Subrouter()
	api.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}", s.getTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id:[0-9]+}", s.updateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id:[0-9]+}", s.deleteTask).Methods(http.MethodDelete)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK\n"))
	}).Methods(http.MethodGet)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr, prefix string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(prefix),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "prefix", prefix)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// requestID echoes the caller's X-Request-Id or assigns a new one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request", "method", r.Method, "path", r.URL.Path, "status", rec.status,
			"requestID", r.Header.Get(requestIDHeader), "elapsed", time.Since(start))
	})
}
