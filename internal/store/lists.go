package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"kanban-cli/internal/model"
)

const defaultListColor = "#3b82f6"

// CreateList appends a list to the end of boardID.
func (db *DB) CreateList(ctx context.Context, boardID, name, color string) (model.List, error) {
	if _, err := db.Board(ctx, boardID); err != nil {
		return model.List{}, err
	}
	return insertList(ctx, db.sql, boardID, name, color)
}

func insertList(ctx context.Context, q querier, boardID, name, color string) (model.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.List{}, errors.New("list name is empty")
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = defaultListColor
	}
	id, err := newID(ctx, q, "lists", listIDPrefix)
	if err != nil {
		return model.List{}, err
	}
	var pos int
	if err := q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM lists WHERE board_id = ?`, boardID).Scan(&pos); err != nil {
		return model.List{}, err
	}
	l := model.List{
		ID:        id,
		BoardID:   boardID,
		Name:      name,
		Color:     color,
		Position:  pos,
		CreatedAt: time.Now().UTC(),
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO lists(id, board_id, name, color, position, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		l.ID, l.BoardID, l.Name, l.Color, l.Position, l.CreatedAt.UnixMilli())
	if err != nil {
		return model.List{}, err
	}
	return l, nil
}

func (db *DB) List(ctx context.Context, id string) (model.List, error) {
	row := db.sql.QueryRowContext(ctx,
		`SELECT id, board_id, name, color, position, created_at_unixms FROM lists WHERE id = ?`, strings.TrimSpace(id))
	l, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.List{}, notFound("list", id)
	}
	return l, err
}

func (db *DB) ListsByBoard(ctx context.Context, boardID string) ([]model.List, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, board_id, name, color, position, created_at_unixms FROM lists WHERE board_id = ? ORDER BY position, id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.List{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (db *DB) RenameList(ctx context.Context, id, name string) (model.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.List{}, errors.New("list name is empty")
	}
	res, err := db.sql.ExecContext(ctx, `UPDATE lists SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return model.List{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.List{}, notFound("list", id)
	}
	return db.List(ctx, id)
}

// DeleteList removes a list and every task in it.
func (db *DB) DeleteList(ctx context.Context, id string) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE list_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("list", id)
	}
	return tx.Commit()
}

func scanList(r rowScanner) (model.List, error) {
	var l model.List
	var created int64
	if err := r.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color, &l.Position, &created); err != nil {
		return model.List{}, err
	}
	l.CreatedAt = time.UnixMilli(created).UTC()
	return l, nil
}
