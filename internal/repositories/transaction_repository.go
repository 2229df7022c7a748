package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intdb "paymentapi/internal/db"
	"paymentapi/internal/domain/models"
	"paymentapi/internal/metrics"
	"paymentapi/internal/query"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	transactionTable   = "transaction_master"
	transactionColumns = `txn_id,
		       COALESCE(merchant_id,''),
		       COALESCE(amount,0),
		       COALESCE(currency,''),
		       COALESCE(status,''),
		       local_txn_date_time,
		       COALESCE(card_type,''),
		       COALESCE(card_last4,''),
		       gp_acquirer_id,
		       gp_issuer_id`

	timestampLayout = "2006-01-02 15:04:05"
)

// TransactionFilter is the predicate set shared by the page, count and
// summary queries of one listing.
type TransactionFilter struct {
	MerchantID string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     string
}

func (f TransactionFilter) predicates() query.Predicates {
	var p query.Predicates
	p.And("merchant_id = ?", query.String(f.MerchantID))
	if f.StartDate != nil {
		p.And("local_txn_date_time >= ?", query.String(f.StartDate.UTC().Format(timestampLayout)))
	}
	if f.EndDate != nil {
		p.And("local_txn_date_time <= ?", query.String(f.EndDate.UTC().Format(timestampLayout)))
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		p.And("status = ?", query.String(s))
	}
	return p
}

type TransactionRepository struct {
	DB      *sql.DB
	Metrics *metrics.Collector
}

func (r TransactionRepository) exec() intdb.Executor {
	return intdb.Executor{DB: r.DB, Metrics: r.Metrics}
}

// FindPage returns the 0-based page of transactions matching f, newest first,
// together with the total number of matches. size 0 returns every match.
func (r TransactionRepository) FindPage(ctx context.Context, f TransactionFilter, page, size int) ([]models.Transaction, int64, error) {
	preds := f.predicates()
	criteria := query.Criteria{
		// txn_id breaks timestamp ties so pages stay stable
		SortField:  "local_txn_date_time DESC, txn_id",
		SortOrder:  query.Desc,
		PageNumber: page + 1,
		PageSize:   size,
	}
	pagePlan := query.ComposeOn(criteria, preds.Apply(`SELECT `+transactionColumns+` FROM `+transactionTable+` WHERE 1=1`), "")
	countPlan := query.ComposeOn(criteria.FilterOnly(), preds.Apply(`SELECT COUNT(*) FROM `+transactionTable+` WHERE 1=1`), "")

	var (
		items = []models.Transaction{}
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.exec().Select(gctx, "transaction.page", pagePlan, func(rows *sql.Rows) error {
			t, err := scanTransaction(rows)
			if err != nil {
				return err
			}
			items = append(items, t)
			return nil
		})
	})
	g.Go(func() error {
		n, err := r.exec().Count(gctx, "transaction.count", countPlan)
		total = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CountByStatus groups every transaction matching f by status.
func (r TransactionRepository) CountByStatus(ctx context.Context, f TransactionFilter) ([]models.StatusCount, error) {
	preds := f.predicates()
	plan := preds.Apply(`SELECT COALESCE(status,''), COUNT(*) FROM ` + transactionTable + ` WHERE 1=1`).Append(" GROUP BY status")

	out := []models.StatusCount{}
	err := r.exec().Select(ctx, "transaction.count_by_status", plan, func(rows *sql.Rows) error {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return err
		}
		out = append(out, sc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TotalAmount sums the amount of every transaction matching f.
func (r TransactionRepository) TotalAmount(ctx context.Context, f TransactionFilter) (decimal.Decimal, error) {
	preds := f.predicates()
	plan := preds.Apply(`SELECT COALESCE(SUM(amount),0) FROM ` + transactionTable + ` WHERE 1=1`)

	var total decimal.NullDecimal
	if err := r.exec().QueryRow(ctx, "transaction.total_amount", plan, &total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var (
		t        models.Transaction
		acquirer sql.NullInt64
		issuer   sql.NullInt64
	)
	if err := rows.Scan(
		&t.ID,
		&t.MerchantID,
		&t.Amount,
		&t.Currency,
		&t.Status,
		&t.Timestamp,
		&t.CardType,
		&t.CardLast4,
		&acquirer,
		&issuer,
	); err != nil {
		return t, err
	}
	t.Timestamp = t.Timestamp.UTC()
	t.AcquirerID = nullInt64Ptr(acquirer)
	t.IssuerID = nullInt64Ptr(issuer)
	return t, nil
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
