package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// table is the uniform query surface shared by the per-table accessors:
// ordered select, select by id, insert, update by id and delete by id.
type table struct {
	db   *DB
	name string
}

func (t table) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.db.db.QueryContext(ctx, t.db.rebind(query), args...)
}

func (t table) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.db.db.QueryRowContext(ctx, t.db.rebind(query), args...)
}

func (t table) insert(ctx context.Context, cols []string, vals []any) error {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	q := "INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" + marks + ")"
	_, err := t.db.db.ExecContext(ctx, t.db.rebind(q), vals...)
	return err
}

// updateByID sets cols on the row with id. It reports ErrNotFound when no
// row matched.
func (t table) updateByID(ctx context.Context, id string, cols []string, vals []any) error {
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	q := "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := t.db.db.ExecContext(ctx, t.db.rebind(q), append(vals, id)...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// deleteByID removes the row with id. Deleting a missing row is not an error.
func (t table) deleteByID(ctx context.Context, id string) error {
	_, err := t.db.db.ExecContext(ctx, t.db.rebind("DELETE FROM "+t.name+" WHERE id = ?"), id)
	return err
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// nullable maps a nil *string to SQL NULL.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
