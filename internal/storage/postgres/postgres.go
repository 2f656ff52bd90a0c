// Package postgres is a storage.Interface backed by PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskmgr/internal/service"
	"taskmgr/internal/storage"
)

const schema = `
	CREATE TABLE IF NOT EXISTS tasks (
		id          SERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		priority    INTEGER NOT NULL CHECK (priority BETWEEN 1 AND 10)
	);
`

// Storage is a task store over a connection pool.
type Storage struct {
	pool *pgxpool.Pool
}

// New connects using the connection string and creates the tasks table
// if needed.
func New(ctx context.Context, constr string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, constr)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Storage{pool: pool}, nil
}

// Tasks returns all tasks ordered by ID.
func (s *Storage) Tasks(ctx context.Context) ([]service.Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description, priority
		FROM tasks
		ORDER BY id;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []service.Task{}
	for rows.Next() {
		var t service.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// TaskByID returns one task.
func (s *Storage) TaskByID(ctx context.Context, id int) (service.Task, error) {
	var t service.Task
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, description, priority
		FROM tasks
		WHERE id = $1;
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.Priority)
	if errors.Is(err, pgx.ErrNoRows) {
		return service.Task{}, storage.ErrNotFound
	}
	return t, err
}

// AddTask inserts a task and returns its ID.
func (s *Storage) AddTask(ctx context.Context, t service.Task) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, priority)
		VALUES ($1, $2, $3) RETURNING id;
	`, t.Title, t.Description, t.Priority).Scan(&id)
	return id, err
}

// UpdateTask replaces the fields of an existing task.
func (s *Storage) UpdateTask(ctx context.Context, t service.Task) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tasks
		SET (title, description, priority) = ($2, $3, $4)
		WHERE id = $1;
	`, t.ID, t.Title, t.Description, t.Priority)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteTask deletes a task by ID.
func (s *Storage) DeleteTask(ctx context.Context, id int) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM tasks
		WHERE id = $1;
	`, id)
	return err
}

// Close closes the pool.
func (s *Storage) Close() {
	s.pool.Close()
}
