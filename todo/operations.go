package todo

import (
	"database/sql"
	"errors"
	"fmt"
)

const taskColumns = `id, title, description, status, priority, due_date, project_path, created_at, tags`

// AddTask stores a new task and returns its assigned id. The id is also
// written back into t. Missing status, priority, creation time and tags are
// filled with their defaults. Tags are stored as given.
func (s *Store) AddTask(t *Task) (int64, error) {
	if t.ID != 0 {
		return 0, fmt.Errorf("%w: %d", ErrAlreadyPersisted, t.ID)
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	if t.Priority == 0 {
		t.Priority = DefaultPriority
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if err := ValidateTask(t); err != nil {
		return 0, err
	}

	tags, err := encodeTags(t.Tags)
	if err != nil {
		return 0, err
	}

	result, err := s.db.NamedExec(`
		INSERT INTO tasks (title, description, status, priority, due_date, project_path, created_at, tags)
		VALUES (:title, :description, :status, :priority, :due_date, :project_path, :created_at, :tags)
	`, taskRow{
		Title:       t.Title,
		Description: nullString(t.Description),
		Status:      string(t.Status),
		Priority:    t.Priority.String(),
		DueDate:     nullTime(t.DueDate),
		ProjectPath: nullString(t.ProjectPath),
		CreatedAt:   encodeTime(t.CreatedAt),
		Tags:        sql.NullString{String: tags, Valid: true},
	})
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read task id: %w", err)
	}
	t.ID = id
	return id, nil
}

// ListTasks returns the tasks matching filter in insertion order.
func (s *Store) ListTasks(filter Filter) ([]Task, error) {
	var rows []taskRow
	var err error
	if filter.Scope == nil {
		err = s.db.Select(&rows, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	} else {
		err = s.db.Select(&rows, `SELECT `+taskColumns+` FROM tasks WHERE project_path = ? ORDER BY id`, *filter.Scope)
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	d := newDecoder(s.now())
	tasks := make([]Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, d.task(row))
	}
	s.collect(d)
	return tasks, nil
}

// GetTask returns a single task. It returns ErrTaskNotFound if the id does
// not exist, regardless of the missing-id policy.
func (s *Store) GetTask(id int64) (Task, error) {
	var row taskRow
	err := s.db.Get(&row, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	if err != nil {
		return Task{}, fmt.Errorf("get task %d: %w", id, err)
	}

	d := newDecoder(s.now())
	task := d.task(row)
	s.collect(d)
	return task, nil
}

// CompleteTask marks a task done.
func (s *Store) CompleteTask(id int64) error {
	return s.setTaskStatus(id, StatusDone)
}

// StartTask marks a task in progress.
func (s *Store) StartTask(id int64) error {
	return s.setTaskStatus(id, StatusInProgress)
}

// ReopenTask moves a task back to todo.
func (s *Store) ReopenTask(id int64) error {
	return s.setTaskStatus(id, StatusTodo)
}

func (s *Store) setTaskStatus(id int64, status Status) error {
	result, err := s.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("set task %d status: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set task %d status: %w", id, err)
	}
	return s.checkAffected(affected, ErrTaskNotFound, id)
}

// DeleteTask permanently removes a task.
func (s *Store) DeleteTask(id int64) error {
	result, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return s.checkAffected(affected, ErrTaskNotFound, id)
}
