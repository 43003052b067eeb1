package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"isafari/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// Cond is a single equality condition on a whitelisted column.
type Cond struct {
	Column string
	Value  interface{}
}

// Filter is an ordered list of equality conditions joined with AND.
type Filter []Cond

func Where(column string, value interface{}) Filter {
	return Filter{{Column: column, Value: value}}
}

func (f Filter) And(column string, value interface{}) Filter {
	return append(f, Cond{Column: column, Value: value})
}

// Fields is a column -> value set for inserts and updates.
type Fields map[string]interface{}

// table describes a relation and the columns callers may reference.
type table struct {
	name    string
	columns []string
	allowed map[string]struct{}
}

func newTable(name string, columns ...string) table {
	allowed := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		allowed[c] = struct{}{}
	}
	return table{name: name, columns: columns, allowed: allowed}
}

func (t table) check(columns ...string) error {
	for _, c := range columns {
		if _, ok := t.allowed[c]; !ok {
			return fmt.Errorf("%w: %s.%s", models.ErrUnknownColumn, t.name, c)
		}
	}
	return nil
}

func (t table) where(f Filter) (sq.And, error) {
	cond := make(sq.And, 0, len(f))
	for _, c := range f {
		if err := t.check(c.Column); err != nil {
			return nil, err
		}
		cond = append(cond, sq.Eq{c.Column: c.Value})
	}
	return cond, nil
}

// selectAll builds SELECT <all columns> FROM t WHERE f.
func (t table) selectAll(f Filter) (sq.SelectBuilder, error) {
	cond, err := t.where(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	b := psql.Select(t.columns...).From(t.name)
	if len(cond) > 0 {
		b = b.Where(cond)
	}
	return b, nil
}

func (t table) insert(fields Fields) (sq.InsertBuilder, error) {
	if len(fields) == 0 {
		return sq.InsertBuilder{}, errors.New("insert without fields")
	}
	cols := sortedKeys(fields)
	if err := t.check(cols...); err != nil {
		return sq.InsertBuilder{}, err
	}
	vals := make([]interface{}, len(cols))
	for i, c := range cols {
		vals[i] = fields[c]
	}
	return psql.Insert(t.name).Columns(cols...).Values(vals...).
		Suffix("RETURNING " + strings.Join(t.columns, ", ")), nil
}

func (t table) updateByID(id int, fields Fields) (sq.UpdateBuilder, error) {
	if len(fields) == 0 {
		return sq.UpdateBuilder{}, errors.New("update without fields")
	}
	cols := sortedKeys(fields)
	if err := t.check(cols...); err != nil {
		return sq.UpdateBuilder{}, err
	}
	b := psql.Update(t.name)
	for _, c := range cols {
		b = b.Set(c, fields[c])
	}
	return b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + strings.Join(t.columns, ", ")), nil
}

func sortedKeys(fields Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// queryAll runs b and scans every row with scan.
func queryAll[T any](ctx context.Context, db DBTX, b sq.Sqlizer, scan func(scanner) (T, error)) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// queryOne runs b and scans a single row, mapping sql.ErrNoRows to models.ErrNoRecord.
func queryOne[T any](ctx context.Context, db DBTX, b sq.Sqlizer, scan func(scanner) (T, error)) (T, error) {
	var zero T
	query, args, err := b.ToSql()
	if err != nil {
		return zero, err
	}
	item, err := scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, models.ErrNoRecord
	}
	if err != nil {
		return zero, err
	}
	return item, nil
}

func execAffected(ctx context.Context, db DBTX, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// execOne is execAffected that reports models.ErrNoRecord when nothing changed.
func execOne(ctx context.Context, db DBTX, b sq.Sqlizer) error {
	n, err := execAffected(ctx, db, b)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNoRecord
	}
	return nil
}

func countRows(ctx context.Context, db DBTX, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// withTx runs fn inside a transaction and commits when fn returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func qualify(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// nullIfBlank trims s and maps the empty result to NULL.
func nullIfBlank(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func nullIfBlankPtr(s *string) interface{} {
	if s == nil {
		return nil
	}
	return nullIfBlank(*s)
}

func jsonOrDefault(b []byte, def string) interface{} {
	if len(b) == 0 {
		return def
	}
	return string(b)
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
