package repositories

import (
	"context"
	"database/sql"

	intdb "paymentapi/internal/db"
	"paymentapi/internal/domain/models"
	"paymentapi/internal/metrics"
	"paymentapi/internal/query"
)

type TransactionDetailRepository struct {
	DB      *sql.DB
	Metrics *metrics.Collector
}

func (r TransactionDetailRepository) exec() intdb.Executor {
	return intdb.Executor{DB: r.DB, Metrics: r.Metrics}
}

// FindByTransactionIDs loads the details of every listed transaction in one
// round trip per query.MaxInSize ids.
func (r TransactionDetailRepository) FindByTransactionIDs(ctx context.Context, ids []int64) ([]models.TransactionDetail, error) {
	out := []models.TransactionDetail{}
	for _, batch := range query.Batches(ids, query.MaxInSize) {
		var preds query.Predicates
		preds.In("master_txn_id", batch)
		plan := preds.Apply(`SELECT txn_detail_id,
			       master_txn_id,
			       COALESCE(detail_type,''),
			       COALESCE(amount,0),
			       COALESCE(description,'')
			FROM transaction_detail
			WHERE 1=1`).Append(" ORDER BY master_txn_id, txn_detail_id")

		err := r.exec().Select(ctx, "transaction_detail.by_transaction", plan, func(rows *sql.Rows) error {
			var d models.TransactionDetail
			if err := rows.Scan(&d.ID, &d.TransactionID, &d.Type, &d.Amount, &d.Description); err != nil {
				return err
			}
			out = append(out, d)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
