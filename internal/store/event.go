package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builders over database/sql.
type eventRepo struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// seedSequence creates the single counter row if it is missing.
func seedSequence(ctx context.Context, db *sql.DB) error {
	query, args := builder().Insert(tableSequence).
		Columns(colID, colNextVal).
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// nextSequence takes the next number from the counter every event table
// shares, so rows of different kinds can be ordered against each other.
func nextSequence(ctx context.Context, q queryRower) (int64, error) {
	query, args := builder().Update(tableSequence).
		Add(colNextVal, 1).
		Where(entsql.EQ(colID, 1)).
		Returning(colNextVal).
		Query()
	var next int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}

// insert appends one row to table, stamping sequence and timestamp. The
// counter bump and the row land in one transaction.
func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals []any) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s insert: %w", table, err)
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(table).
		Columns(append([]string{colSequence, colTimestamp}, cols...)...).
		Values(append([]any{seq, time.Now().UTC()}, vals...)...).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return tx.Commit()
}
