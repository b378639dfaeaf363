package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"rideshare/internal/domain"
)

// table implements the scan-based record operations on top of one
// PostgreSQL table. Every table carries a seq BIGSERIAL column that
// records insertion order; a replaced record gets a fresh seq and so
// moves to the end.
//
// Field searches load the table in seq order and filter with the same
// accessor table the in-memory store uses, so rendered-value matching is
// identical across backends.
type table[T any] struct {
	db      *sql.DB
	name    string
	columns []string
	fields  domain.FieldTable[T]
	scan    func(rowScanner) (int64, T, error)
	values  func(T) ([]any, error)
}

type row[T any] struct {
	seq int64
	rec T
}

func (t *table[T]) insertSQL() string {
	placeholders := make([]string, len(t.columns))
	for i := range t.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		t.name, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))
}

func (t *table[T]) selectSQL() string {
	return fmt.Sprintf(`SELECT seq, %s FROM %s ORDER BY seq`, strings.Join(t.columns, ", "), t.name)
}

func (t *table[T]) updateSQL() string {
	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	return fmt.Sprintf(`UPDATE %s SET %s WHERE seq = $%d`, t.name, strings.Join(sets, ", "), len(t.columns)+1)
}

// lockSQL serialises writers on the table while still admitting readers.
func (t *table[T]) lockSQL() string {
	return fmt.Sprintf(`LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE`, t.name)
}

func (t *table[T]) insert(ctx context.Context, q Querier, rec T) error {
	args, err := t.values(rec)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, t.insertSQL(), args...)
	return err
}

func (t *table[T]) load(ctx context.Context, q Querier) ([]row[T], error) {
	rows, err := q.QueryContext(ctx, t.selectSQL())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []row[T]
	for rows.Next() {
		seq, rec, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row[T]{seq: seq, rec: rec})
	}
	return out, rows.Err()
}

// firstMatch returns the index of the first row matching field == value, or -1.
func (t *table[T]) firstMatch(rows []row[T], field, value string) (int, error) {
	for i, r := range rows {
		ok, err := t.fields.Matches(r.rec, field, value)
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}

// Create appends a record.
func (t *table[T]) Create(ctx context.Context, rec T) error {
	return t.insert(ctx, t.db, rec)
}

// GetAll returns every record in seq order.
func (t *table[T]) GetAll(ctx context.Context) ([]T, error) {
	rows, err := t.load(ctx, t.db)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.rec
	}
	return out, nil
}

// SearchFirst returns the earliest matching record, or nil.
func (t *table[T]) SearchFirst(ctx context.Context, field, value string) (*T, error) {
	if err := t.fields.Validate(field); err != nil {
		return nil, err
	}
	rows, err := t.load(ctx, t.db)
	if err != nil {
		return nil, err
	}
	i, err := t.firstMatch(rows, field, value)
	if err != nil || i < 0 {
		return nil, err
	}
	rec := rows[i].rec
	return &rec, nil
}

// SearchAll returns every matching record in seq order.
func (t *table[T]) SearchAll(ctx context.Context, field, value string) ([]T, error) {
	if err := t.fields.Validate(field); err != nil {
		return nil, err
	}
	rows, err := t.load(ctx, t.db)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for _, r := range rows {
		ok, err := t.fields.Matches(r.rec, field, value)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r.rec)
		}
	}
	return out, nil
}

// UpdateField assigns value to field on every matching record.
func (t *table[T]) UpdateField(ctx context.Context, matchField, matchValue, field, value string) (int, error) {
	if err := t.fields.Validate(field); err != nil {
		return 0, err
	}
	return t.UpdateWhere(ctx, matchField, matchValue, func(rec *T) error {
		return t.fields.Assign(rec, field, value)
	})
}

// ClearField resets field on every matching record.
func (t *table[T]) ClearField(ctx context.Context, matchField, matchValue, field string) (int, error) {
	if err := t.fields.Validate(field); err != nil {
		return 0, err
	}
	return t.UpdateWhere(ctx, matchField, matchValue, func(rec *T) error {
		return t.fields.Reset(rec, field)
	})
}

// UpdateWhere applies fn to every matching record inside one transaction.
func (t *table[T]) UpdateWhere(ctx context.Context, matchField, matchValue string, fn func(*T) error) (int, error) {
	if err := t.fields.Validate(matchField); err != nil {
		return 0, err
	}

	updated := 0
	err := withTx(ctx, t.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, t.lockSQL()); err != nil {
			return err
		}
		rows, err := t.load(ctx, tx)
		if err != nil {
			return err
		}
		for _, r := range rows {
			ok, err := t.fields.Matches(r.rec, matchField, matchValue)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			rec := r.rec
			if err := fn(&rec); err != nil {
				return err
			}
			args, err := t.values(rec)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, t.updateSQL(), append(args, r.seq)...); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// ReplaceFirst deletes the first matching record, if any, and appends rec.
func (t *table[T]) ReplaceFirst(ctx context.Context, matchField, matchValue string, rec T) error {
	if err := t.fields.Validate(matchField); err != nil {
		return err
	}
	return withTx(ctx, t.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, t.lockSQL()); err != nil {
			return err
		}
		if _, err := t.deleteFirst(ctx, tx, matchField, matchValue); err != nil {
			return err
		}
		return t.insert(ctx, tx, rec)
	})
}

// RemoveFirst deletes the first matching record.
func (t *table[T]) RemoveFirst(ctx context.Context, field, value string) (bool, error) {
	if err := t.fields.Validate(field); err != nil {
		return false, err
	}
	var removed bool
	err := withTx(ctx, t.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, t.lockSQL()); err != nil {
			return err
		}
		var err error
		removed, err = t.deleteFirst(ctx, tx, field, value)
		return err
	})
	return removed, err
}

func (t *table[T]) deleteFirst(ctx context.Context, tx *sql.Tx, field, value string) (bool, error) {
	rows, err := t.load(ctx, tx)
	if err != nil {
		return false, err
	}
	i, err := t.firstMatch(rows, field, value)
	if err != nil || i < 0 {
		return false, err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE seq = $1`, t.name)
	_, err = tx.ExecContext(ctx, query, rows[i].seq)
	return err == nil, err
}
