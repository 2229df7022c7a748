package repositories

import (
	"context"
	"database/sql"

	intdb "paymentapi/internal/db"
	"paymentapi/internal/domain/models"
	"paymentapi/internal/metrics"
	"paymentapi/internal/query"
)

const memberColumns = "member_id, COALESCE(member_name,'')"

type MemberRepository struct {
	DB      *sql.DB
	Metrics *metrics.Collector
}

func (r MemberRepository) exec() intdb.Executor {
	return intdb.Executor{DB: r.DB, Metrics: r.Metrics}
}

// FindByIDs resolves a set of member ids in one round trip per
// query.MaxInSize ids. Ids with no row are simply missing from the result.
func (r MemberRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]models.Member, error) {
	out := map[int64]models.Member{}
	for _, batch := range query.Batches(ids, query.MaxInSize) {
		var preds query.Predicates
		preds.In("member_id", batch)
		plan := preds.Apply(`SELECT ` + memberColumns + ` FROM member WHERE 1=1`)

		err := r.exec().Select(ctx, "member.by_ids", plan, func(rows *sql.Rows) error {
			var m models.Member
			if err := rows.Scan(&m.ID, &m.Name); err != nil {
				return err
			}
			out[m.ID] = m
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
