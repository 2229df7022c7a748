package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "paymentapi/internal/config"
	"paymentapi/internal/domain"
	"paymentapi/internal/metrics"
	"paymentapi/internal/query"
)

// Executor runs composed plans against the store. Every failure comes back
// as domain.QueryError tagged with op.
type Executor struct {
	DB      *sql.DB
	Metrics *metrics.Collector
}

func (e Executor) db() *sql.DB {
	if e.DB != nil {
		return e.DB
	}
	return intconfig.DB
}

// Select runs plan and calls scan once per row.
func (e Executor) Select(ctx context.Context, op string, plan query.Plan, scan func(*sql.Rows) error) (err error) {
	start := time.Now()
	defer func() { e.Metrics.ObserveQuery(op, time.Since(start), err) }()

	db, args, err := e.prepare(op, plan)
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, plan.Text, args...)
	if err != nil {
		return domain.QueryError{Op: op, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return domain.QueryError{Op: op, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return domain.QueryError{Op: op, Err: err}
	}
	return nil
}

// Count runs a single-value COUNT/SUM style plan into an int64.
func (e Executor) Count(ctx context.Context, op string, plan query.Plan) (n int64, err error) {
	start := time.Now()
	defer func() { e.Metrics.ObserveQuery(op, time.Since(start), err) }()

	db, args, err := e.prepare(op, plan)
	if err != nil {
		return 0, err
	}

	var out sql.NullInt64
	if err := db.QueryRowContext(ctx, plan.Text, args...).Scan(&out); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, domain.QueryError{Op: op, Err: err}
	}
	return out.Int64, nil
}

// QueryRow runs plan and scans the first row into dest. sql.ErrNoRows is
// returned unwrapped so callers can map it to NotFoundError.
func (e Executor) QueryRow(ctx context.Context, op string, plan query.Plan, dest ...any) (err error) {
	start := time.Now()
	defer func() {
		observed := err
		if errors.Is(err, sql.ErrNoRows) {
			observed = nil
		}
		e.Metrics.ObserveQuery(op, time.Since(start), observed)
	}()

	db, args, err := e.prepare(op, plan)
	if err != nil {
		return err
	}
	if err := db.QueryRowContext(ctx, plan.Text, args...).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return domain.QueryError{Op: op, Err: err}
	}
	return nil
}

// Exec runs a mutation.
func (e Executor) Exec(ctx context.Context, op string, plan query.Plan) (res sql.Result, err error) {
	start := time.Now()
	defer func() { e.Metrics.ObserveQuery(op, time.Since(start), err) }()

	db, args, err := e.prepare(op, plan)
	if err != nil {
		return nil, err
	}
	res, err = db.ExecContext(ctx, plan.Text, args...)
	if err != nil {
		return nil, domain.QueryError{Op: op, Err: err}
	}
	return res, nil
}

func (e Executor) prepare(op string, plan query.Plan) (*sql.DB, []any, error) {
	db := e.db()
	if db == nil {
		return nil, nil, domain.QueryError{Op: op, Err: fmt.Errorf("database not connected")}
	}
	args, err := plan.Args()
	if err != nil {
		return nil, nil, domain.QueryError{Op: op, Err: err}
	}
	return db, args, nil
}
