package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"paymentapi/internal/domain"
	"paymentapi/internal/metrics"
	"paymentapi/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestSelectBindsTypedArgs(t *testing.T) {
	db, mock := newMock(t)
	plan := query.Plan{
		Text: "SELECT id FROM merchant WHERE status = ? AND id > ?",
		Bindings: []query.Binding{
			{Position: 1, Value: query.String("ACTIVE")},
			{Position: 2, Value: query.Long(10)},
		},
	}

	mock.ExpectQuery("SELECT id FROM merchant").
		WithArgs("ACTIVE", int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	var ids []string
	err := Executor{DB: db, Metrics: metrics.NewCollector(nil)}.Select(context.Background(), "merchant.search", plan, func(rows *sql.Rows) error {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 rows, got %v", ids)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSelectRejectsMisalignedPlanWithoutQuerying(t *testing.T) {
	db, mock := newMock(t)
	plan := query.Plan{Text: "SELECT id FROM merchant WHERE a = ? AND b = ?", Bindings: []query.Binding{
		{Position: 1, Value: query.String("x")},
	}}

	err := Executor{DB: db}.Select(context.Background(), "merchant.search", plan, func(*sql.Rows) error { return nil })
	if !domain.IsQuery(err) {
		t.Fatalf("expected QueryError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store should not be touched: %v", err)
	}
}

func TestCountWrapsDriverError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("connection reset"))

	_, err := Executor{DB: db}.Count(context.Background(), "merchant.count", query.Plan{Text: "SELECT COUNT(*) FROM merchant WHERE 1=1"})
	var qe domain.QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %v", err)
	}
	if qe.Op != "merchant.count" {
		t.Fatalf("unexpected op %q", qe.Op)
	}
	if qe.Error() != "query merchant.count failed" {
		t.Fatalf("store detail leaked into message: %q", qe.Error())
	}
}

func TestCountReadsValue(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := Executor{DB: db}.Count(context.Background(), "merchant.count", query.Plan{Text: "SELECT COUNT(*) FROM merchant WHERE 1=1"})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 42 {
		t.Fatalf("expected 42, got %d", n)
	}
}

func TestQueryRowNoRows(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT name FROM merchant").WithArgs("m-1").WillReturnRows(sqlmock.NewRows([]string{"name"}))

	var name string
	plan := query.Plan{Text: "SELECT name FROM merchant WHERE id = ?", Bindings: []query.Binding{{Position: 1, Value: query.String("m-1")}}}
	err := Executor{DB: db}.QueryRow(context.Background(), "merchant.get", plan, &name)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestExecWithoutDatabase(t *testing.T) {
	_, err := Executor{}.Exec(context.Background(), "merchant.insert", query.Plan{Text: "INSERT INTO merchant (id) VALUES ('x')"})
	if !domain.IsQuery(err) {
		t.Fatalf("expected QueryError, got %v", err)
	}
}
