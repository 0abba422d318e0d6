package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"kanban-cli/internal/model"
)

func (db *DB) CreateBoard(ctx context.Context, name, description string) (model.Board, error) {
	return insertBoard(ctx, db.sql, name, description)
}

func insertBoard(ctx context.Context, q querier, name, description string) (model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Board{}, errors.New("board name is empty")
	}
	id, err := newID(ctx, q, "boards", boardIDPrefix)
	if err != nil {
		return model.Board{}, err
	}
	b := model.Board{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO boards(id, name, description, created_at_unixms) VALUES(?, ?, ?, ?)`,
		b.ID, b.Name, b.Description, b.CreatedAt.UnixMilli())
	if err != nil {
		return model.Board{}, err
	}
	return b, nil
}

// CreateBoardFromTemplate creates a board and its template lists in one transaction.
// Empty name or description fall back to the template's.
func (db *DB) CreateBoardFromTemplate(ctx context.Context, name, description string, tmpl model.BoardTemplate) (model.Board, []model.List, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return model.Board{}, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if strings.TrimSpace(name) == "" {
		name = tmpl.Name
	}
	if strings.TrimSpace(description) == "" {
		description = tmpl.Description
	}
	b, err := insertBoard(ctx, tx, name, description)
	if err != nil {
		return model.Board{}, nil, err
	}
	lists := make([]model.List, 0, len(tmpl.Lists))
	for _, lt := range tmpl.Lists {
		l, err := insertList(ctx, tx, b.ID, lt.Name, lt.Color)
		if err != nil {
			return model.Board{}, nil, err
		}
		lists = append(lists, l)
	}
	if err := tx.Commit(); err != nil {
		return model.Board{}, nil, err
	}
	return b, lists, nil
}

func (db *DB) Boards(ctx context.Context) ([]model.Board, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, name, description, created_at_unixms FROM boards ORDER BY created_at_unixms, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (db *DB) Board(ctx context.Context, id string) (model.Board, error) {
	row := db.sql.QueryRowContext(ctx,
		`SELECT id, name, description, created_at_unixms FROM boards WHERE id = ?`, strings.TrimSpace(id))
	b, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Board{}, notFound("board", id)
	}
	return b, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(r rowScanner) (model.Board, error) {
	var b model.Board
	var created int64
	if err := r.Scan(&b.ID, &b.Name, &b.Description, &created); err != nil {
		return model.Board{}, err
	}
	b.CreatedAt = time.UnixMilli(created).UTC()
	return b, nil
}

// BoardState is everything the board screen renders: a board, its ordered lists and
// the tasks in those lists.
type BoardState struct {
	Board model.Board  `json:"board"`
	Lists []model.List `json:"lists"`
	Tasks []model.Task `json:"tasks"`
}

// TasksInList returns the tasks of listID in stored order.
func (s *BoardState) TasksInList(listID string) []model.Task {
	out := []model.Task{}
	for _, t := range s.Tasks {
		if t.ListID == listID {
			out = append(out, t)
		}
	}
	return out
}

func (s *BoardState) FindTask(id string) (model.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s *BoardState) FindList(id string) (model.List, bool) {
	for _, l := range s.Lists {
		if l.ID == id {
			return l, true
		}
	}
	return model.List{}, false
}

func (db *DB) LoadBoard(ctx context.Context, boardID string) (*BoardState, error) {
	b, err := db.Board(ctx, boardID)
	if err != nil {
		return nil, err
	}
	lists, err := db.ListsByBoard(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	tasks, err := db.TasksByBoard(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &BoardState{Board: b, Lists: lists, Tasks: tasks}, nil
}
