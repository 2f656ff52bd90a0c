package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"taskmgr/internal/service"
	"taskmgr/internal/storage"
)

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.Tasks(r.Context())
	if err != nil {
		s.internalError(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	t, err := s.store.TaskByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.internalError(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTask(w, r)
	if !ok {
		return
	}
	t := service.Task{Title: req.Title, Description: req.Description, Priority: req.Priority}
	id, err := s.store.AddTask(r.Context(), t)
	if err != nil {
		s.internalError(w, "create", err)
		return
	}
	t.ID = id
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	req, ok := decodeTask(w, r)
	if !ok {
		return
	}
	t := service.Task{ID: id, Title: req.Title, Description: req.Description, Priority: req.Priority}
	err := s.store.UpdateTask(r.Context(), t)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.internalError(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteTask(r.Context(), id); err != nil {
		s.internalError(w, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(err, "store failure", "op", op)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func taskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeTask reads and validates a task body.
func decodeTask(w http.ResponseWriter, r *http.Request) (taskRequest, bool) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed task body", http.StatusBadRequest)
		return req, false
	}
	if err := service.Validate(req.Title, req.Description, req.Priority); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
