package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intdb "paymentapi/internal/db"
	"paymentapi/internal/domain"
	"paymentapi/internal/domain/models"
	"paymentapi/internal/metrics"
	"paymentapi/internal/query"

	"github.com/go-sql-driver/mysql"
)

const (
	merchantTable   = "merchant"
	merchantColumns = `id,
		       COALESCE(name,''),
		       COALESCE(email,''),
		       COALESCE(phone,''),
		       COALESCE(status,''),
		       COALESCE(address,''),
		       COALESCE(business_name,'')`

	// merchantSearchable is matched against the lower-cased search term.
	// CONCAT_WS skips NULL columns where CONCAT would null the whole value.
	merchantSearchable = "LOWER(CONCAT_WS('',id,name,email,phone,status))"

	mysqlDuplicateEntry = 1062
)

type MerchantRepository struct {
	DB      *sql.DB
	Metrics *metrics.Collector
}

func (r MerchantRepository) exec() intdb.Executor {
	return intdb.Executor{DB: r.DB, Metrics: r.Metrics}
}

// Search returns one page of merchants matching c. Sort fields must already
// be mapped to columns by the caller.
func (r MerchantRepository) Search(ctx context.Context, c query.Criteria) ([]models.Merchant, error) {
	plan := query.Compose(c, `SELECT `+merchantColumns+` FROM `+merchantTable+` WHERE 1=1`, merchantSearchable)

	out := []models.Merchant{}
	err := r.exec().Select(ctx, "merchant.search", plan, func(rows *sql.Rows) error {
		m, err := scanMerchant(rows)
		if err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountSearch counts every merchant matching the search predicate of c.
func (r MerchantRepository) CountSearch(ctx context.Context, c query.Criteria) (int64, error) {
	plan := query.Compose(c.FilterOnly(), `SELECT COUNT(*) FROM `+merchantTable+` WHERE 1=1`, merchantSearchable)
	return r.exec().Count(ctx, "merchant.count", plan)
}

func (r MerchantRepository) GetByID(ctx context.Context, id string) (models.Merchant, error) {
	var preds query.Predicates
	preds.And("id = ?", query.String(strings.TrimSpace(id)))
	plan := preds.Apply(`SELECT ` + merchantColumns + ` FROM ` + merchantTable + ` WHERE 1=1`).Append(" LIMIT 1")

	var m models.Merchant
	err := r.exec().QueryRow(ctx, "merchant.get", plan,
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Status, &m.Address, &m.BusinessName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Merchant{}, domain.NotFoundError{Resource: "Merchant", Err: err}
	}
	if err != nil {
		return models.Merchant{}, err
	}
	return m, nil
}

// FindIDByEmail is a single targeted, case-insensitive lookup. A non-blank
// excludeID is filtered out in SQL, so rows sharing an email are still
// reported for an update. found is false when no other merchant uses the email.
func (r MerchantRepository) FindIDByEmail(ctx context.Context, email, excludeID string) (id string, found bool, err error) {
	var preds query.Predicates
	preds.And("LOWER(email) = LOWER(?)", query.String(strings.TrimSpace(email)))
	if ex := strings.TrimSpace(excludeID); ex != "" {
		preds.And("id <> ?", query.String(ex))
	}
	plan := preds.Apply(`SELECT id FROM ` + merchantTable + ` WHERE 1=1`).Append(" LIMIT 1")

	err = r.exec().QueryRow(ctx, "merchant.find_by_email", plan, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (r MerchantRepository) Create(ctx context.Context, m models.Merchant) error {
	plan := query.NewPlan(`INSERT INTO `+merchantTable+` (id, name, email, phone, status, address, business_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		query.String(m.ID),
		query.String(m.Name),
		query.String(m.Email),
		query.String(m.Phone),
		query.String(m.Status),
		query.String(m.Address),
		query.String(m.BusinessName),
	)
	_, err := r.exec().Exec(ctx, "merchant.insert", plan)
	return mapDuplicate(err)
}

func (r MerchantRepository) Update(ctx context.Context, m models.Merchant) error {
	plan := query.NewPlan(`UPDATE `+merchantTable+`
		SET name=?, email=?, phone=?, status=?, address=?, business_name=?
		WHERE id=?`,
		query.String(m.Name),
		query.String(m.Email),
		query.String(m.Phone),
		query.String(m.Status),
		query.String(m.Address),
		query.String(m.BusinessName),
		query.String(m.ID),
	)
	_, err := r.exec().Exec(ctx, "merchant.update", plan)
	return mapDuplicate(err)
}

// mapDuplicate turns a unique-index violation that slipped past validation
// (concurrent writers) into the same ValidationError validation would report.
func mapDuplicate(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return domain.ValidationError{Field: "email", Msg: "Merchant email already exists", Err: err}
	}
	return err
}

func scanMerchant(rows *sql.Rows) (models.Merchant, error) {
	var m models.Merchant
	err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Status, &m.Address, &m.BusinessName)
	return m, err
}
