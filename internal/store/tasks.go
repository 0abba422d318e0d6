package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"kanban-cli/internal/model"
)

const taskColumns = `id, list_id, name, description, finished, position, created_at_unixms, updated_at_unixms`

// CreateTask appends an unfinished task to the end of listID.
func (db *DB) CreateTask(ctx context.Context, listID, name, description string) (model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Task{}, errors.New("task name is empty")
	}
	if _, err := db.List(ctx, listID); err != nil {
		return model.Task{}, err
	}
	id, err := newID(ctx, db.sql, "tasks", taskIDPrefix)
	if err != nil {
		return model.Task{}, err
	}
	pos, err := nextTaskPosition(ctx, db.sql, listID)
	if err != nil {
		return model.Task{}, err
	}
	now := time.Now().UTC()
	t := model.Task{
		ID:          id,
		ListID:      listID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Position:    pos,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = db.sql.ExecContext(ctx,
		`INSERT INTO tasks(`+taskColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ListID, t.Name, t.Description, boolToInt(t.Finished), t.Position,
		t.CreatedAt.UnixMilli(), t.UpdatedAt.UnixMilli())
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func nextTaskPosition(ctx context.Context, q querier, listID string) (int, error) {
	var pos int
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE list_id = ?`, listID).Scan(&pos)
	return pos, err
}

func (db *DB) Task(ctx context.Context, id string) (model.Task, error) {
	row := db.sql.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, strings.TrimSpace(id))
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, notFound("task", id)
	}
	return t, err
}

func (db *DB) TasksByList(ctx context.Context, listID string) ([]model.Task, error) {
	return db.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE list_id = ? ORDER BY position, id`, listID)
}

// TasksByBoard returns every task on the board, grouped by list order then task position.
func (db *DB) TasksByBoard(ctx context.Context, boardID string) ([]model.Task, error) {
	return db.queryTasks(ctx, `
		SELECT t.id, t.list_id, t.name, t.description, t.finished, t.position, t.created_at_unixms, t.updated_at_unixms
		FROM tasks t JOIN lists l ON l.id = t.list_id
		WHERE l.board_id = ?
		ORDER BY l.position, l.id, t.position, t.id`, boardID)
}

func (db *DB) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TaskPatch carries optional field updates; nil fields are left alone.
type TaskPatch struct {
	Name        *string
	Description *string
}

func (db *DB) UpdateTask(ctx context.Context, id string, p TaskPatch) (model.Task, error) {
	t, err := db.Task(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return model.Task{}, errors.New("task name is empty")
		}
		t.Name = name
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	t.UpdatedAt = time.Now().UTC()
	_, err = db.sql.ExecContext(ctx,
		`UPDATE tasks SET name = ?, description = ?, updated_at_unixms = ? WHERE id = ?`,
		t.Name, t.Description, t.UpdatedAt.UnixMilli(), t.ID)
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (db *DB) SetTaskFinished(ctx context.Context, id string, finished bool) (model.Task, error) {
	now := time.Now().UTC()
	res, err := db.sql.ExecContext(ctx,
		`UPDATE tasks SET finished = ?, updated_at_unixms = ? WHERE id = ?`, boolToInt(finished), now.UnixMilli(), id)
	if err != nil {
		return model.Task{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Task{}, notFound("task", id)
	}
	return db.Task(ctx, id)
}

// MoveTask re-parents a task to listID, appending it at the end. Moving a task onto
// the list it is already in is a no-op. Both lists must be on the same board.
func (db *DB) MoveTask(ctx context.Context, taskID, listID string) (model.Task, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return model.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	t, err := scanTask(tx.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, taskID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, notFound("task", taskID)
	}
	if err != nil {
		return model.Task{}, err
	}
	if t.ListID == listID {
		return t, nil
	}

	var fromBoard, toBoard string
	if err := tx.QueryRowContext(ctx, `SELECT board_id FROM lists WHERE id = ?`, t.ListID).Scan(&fromBoard); err != nil {
		return model.Task{}, err
	}
	err = tx.QueryRowContext(ctx, `SELECT board_id FROM lists WHERE id = ?`, listID).Scan(&toBoard)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, notFound("list", listID)
	}
	if err != nil {
		return model.Task{}, err
	}
	if fromBoard != toBoard {
		return model.Task{}, errors.New("cannot move a task to a list on another board")
	}

	pos, err := nextTaskPosition(ctx, tx, listID)
	if err != nil {
		return model.Task{}, err
	}
	t.ListID = listID
	t.Position = pos
	t.UpdatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE tasks SET list_id = ?, position = ?, updated_at_unixms = ? WHERE id = ?`,
		t.ListID, t.Position, t.UpdatedAt.UnixMilli(), t.ID)
	if err != nil {
		return model.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func scanTask(r rowScanner) (model.Task, error) {
	var t model.Task
	var finished int
	var created, updated int64
	if err := r.Scan(&t.ID, &t.ListID, &t.Name, &t.Description, &finished, &t.Position, &created, &updated); err != nil {
		return model.Task{}, err
	}
	t.Finished = finished != 0
	t.CreatedAt = time.UnixMilli(created).UTC()
	t.UpdatedAt = time.UnixMilli(updated).UTC()
	return t, nil
}
