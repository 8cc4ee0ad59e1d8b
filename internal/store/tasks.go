package store

import (
	"database/sql"
	"fmt"
	"strings"

	"estatekeeper/internal/logging"
	"estatekeeper/internal/types"
)

const taskColumns = `id, title, description, category, tags, status, due_date,
	assigned_to, related_ids, created_at, updated_at, template_key`

func scanTask(row interface{ Scan(...interface{}) error }) (types.Task, error) {
	var task types.Task
	var tags, assigned, related string
	var category, status string
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &category, &tags, &status,
		&task.DueDate, &assigned, &related, &task.CreatedAt, &task.UpdatedAt,
		&task.TemplateKey,
	)
	if err != nil {
		return task, err
	}
	task.Category = types.TaskCategory(category)
	task.Status = types.TaskStatus(status)
	if task.Tags, err = decodeStrings(tags); err != nil {
		return task, err
	}
	if task.AssignedTo, err = decodeStrings(assigned); err != nil {
		return task, err
	}
	if len(task.AssignedTo) == 0 {
		task.AssignedTo = nil
	}
	if task.RelatedIDs, err = decodeLinkedIDs(related); err != nil {
		return task, err
	}
	return task, nil
}

// InsertTask adds a task inside the transaction. Inserting a second task
// with an already-used template key violates the unique index and fails the
// whole transaction.
func (t *Tx) InsertTask(task types.Task) error {
	_, err := t.tx.Exec(
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, string(task.Category),
		encodeStrings(task.Tags), string(task.Status), task.DueDate,
		encodeStrings(task.AssignedTo), encodeLinkedIDs(task.RelatedIDs),
		task.CreatedAt, task.UpdatedAt, task.TemplateKey,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task %s: %w", task.ID, err)
	}
	t.touch(Tasks)
	return nil
}

// UpdateTask replaces the stored row for task.ID.
func (t *Tx) UpdateTask(task types.Task) error {
	res, err := t.tx.Exec(
		`UPDATE tasks SET title = ?, description = ?, category = ?, tags = ?,
			status = ?, due_date = ?, assigned_to = ?, related_ids = ?,
			created_at = ?, updated_at = ?, template_key = ?
		 WHERE id = ?`,
		task.Title, task.Description, string(task.Category),
		encodeStrings(task.Tags), string(task.Status), task.DueDate,
		encodeStrings(task.AssignedTo), encodeLinkedIDs(task.RelatedIDs),
		task.CreatedAt, task.UpdatedAt, task.TemplateKey, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", task.ID)
	}
	t.touch(Tasks)
	return nil
}

// DeleteTask removes a task. Deleting a missing id is a no-op.
func (t *Tx) DeleteTask(id string) error {
	if _, err := t.tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	t.touch(Tasks)
	return nil
}

// TaskByID fetches one task inside the transaction; nil when absent.
func (t *Tx) TaskByID(id string) (*types.Task, error) {
	row := t.tx.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task %s: %w", id, err)
	}
	return &task, nil
}

// TasksByTemplateKeys fetches all tasks whose template key is in keys.
func (t *Tx) TasksByTemplateKeys(keys []string) ([]types.Task, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	rows, err := t.tx.Query(
		`SELECT `+taskColumns+` FROM tasks WHERE template_key IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks by template key: %w", err)
	}
	defer rows.Close()

	var tasks []types.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// ListTasks returns all tasks ordered by creation time.
func (s *Store) ListTasks() ([]types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []types.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// GetTask returns one task by id; nil when absent.
func (s *Store) GetTask(id string) (*types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task %s: %w", id, err)
	}
	return &task, nil
}

// AddTask inserts a single task in its own transaction.
func (s *Store) AddTask(task types.Task) error {
	logging.StoreDebug("Adding task %s (%s)", task.ID, task.Title)
	return s.RunInTx(func(tx *Tx) error { return tx.InsertTask(task) })
}

// UpdateTask replaces a single task in its own transaction.
func (s *Store) UpdateTask(task types.Task) error {
	return s.RunInTx(func(tx *Tx) error { return tx.UpdateTask(task) })
}

// DeleteTask removes a single task in its own transaction.
func (s *Store) DeleteTask(id string) error {
	return s.RunInTx(func(tx *Tx) error { return tx.DeleteTask(id) })
}
