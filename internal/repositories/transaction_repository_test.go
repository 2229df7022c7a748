package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"paymentapi/internal/domain"
	"paymentapi/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

var transactionRowColumns = []string{
	"txn_id", "merchant_id", "amount", "currency", "status", "local_txn_date_time",
	"card_type", "card_last4", "gp_acquirer_id", "gp_issuer_id",
}

func TestTransactionFindPageSharesPredicatesWithCount(t *testing.T) {
	db, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)

	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 16, 23, 59, 59, 0, time.UTC)
	ts := time.Date(2025, 11, 10, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("AND status = ? ORDER BY local_txn_date_time DESC, txn_id DESC LIMIT 2 OFFSET 2")).
		WithArgs("M1", "2025-11-01 00:00:00", "2025-11-16 23:59:59", "SETTLED").
		WillReturnRows(sqlmock.NewRows(transactionRowColumns).
			AddRow(int64(7), "M1", "12.50", "USD", "SETTLED", ts, "VISA", "4242", int64(3), nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM transaction_master WHERE 1=1 AND merchant_id = ?")).
		WithArgs("M1", "2025-11-01 00:00:00", "2025-11-16 23:59:59", "SETTLED").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))

	filter := TransactionFilter{MerchantID: "M1", StartDate: &start, EndDate: &end, Status: "SETTLED"}
	items, total, err := TransactionRepository{DB: db}.FindPage(context.Background(), filter, 1, 2)
	if err != nil {
		t.Fatalf("FindPage: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.ID != 7 || !got.Amount.Equal(decimal.RequireFromString("12.50")) || !got.Timestamp.Equal(ts) {
		t.Fatalf("unexpected transaction: %+v", got)
	}
	if got.AcquirerID == nil || *got.AcquirerID != 3 || got.IssuerID != nil {
		t.Fatalf("unexpected member refs: acquirer=%v issuer=%v", got.AcquirerID, got.IssuerID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransactionFindPagePropagatesStoreError(t *testing.T) {
	db, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT txn_id").WillReturnError(errors.New("connection refused"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	_, _, err := TransactionRepository{DB: db}.FindPage(context.Background(), TransactionFilter{MerchantID: "M1"}, 0, 20)
	if !domain.IsQuery(err) {
		t.Fatalf("expected QueryError, got %v", err)
	}
}

func TestTransactionCountByStatusGroups(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("AND merchant_id = ? GROUP BY status")).
		WithArgs("M1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "n"}).
			AddRow("SETTLED", 10).AddRow("PENDING", 5).AddRow("FAILED", 2))

	got, err := TransactionRepository{DB: db}.CountByStatus(context.Background(), TransactionFilter{MerchantID: "M1"})
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	var sum int64
	for _, sc := range got {
		sum += sc.Count
	}
	if len(got) != 3 || sum != 17 {
		t.Fatalf("unexpected status counts: %+v", got)
	}
}

func TestTransactionTotalAmountNullIsZero(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount),0)")).
		WithArgs("M1").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount),0)")).
		WithArgs("M1").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("1234.56"))

	repo := TransactionRepository{DB: db}
	total, err := repo.TotalAmount(context.Background(), TransactionFilter{MerchantID: "M1"})
	if err != nil || !total.IsZero() {
		t.Fatalf("expected zero, got %s err=%v", total, err)
	}
	total, err = repo.TotalAmount(context.Background(), TransactionFilter{MerchantID: "M1"})
	if err != nil || total.StringFixed(2) != "1234.56" {
		t.Fatalf("expected 1234.56, got %s err=%v", total, err)
	}
}

func TestTransactionDetailsBatchLookup(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("master_txn_id IN (?, ?) ORDER BY master_txn_id, txn_detail_id")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"txn_detail_id", "master_txn_id", "detail_type", "amount", "description"}).
			AddRow(int64(10), int64(1), "FEE", "1.00", "processing").
			AddRow(int64(11), int64(1), "TAX", "0.10", "vat").
			AddRow(int64(12), int64(2), "FEE", "1.00", "processing"))

	got, err := TransactionDetailRepository{DB: db}.FindByTransactionIDs(context.Background(), []int64{1, 2})
	if err != nil {
		t.Fatalf("FindByTransactionIDs: %v", err)
	}
	if len(got) != 3 || got[2].TransactionID != 2 {
		t.Fatalf("unexpected details: %+v", got)
	}
}

func TestTransactionDetailsEmptyIDsSkipsStore(t *testing.T) {
	db, mock := newMock(t)

	got, err := TransactionDetailRepository{DB: db}.FindByTransactionIDs(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v err=%v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store should not be touched: %v", err)
	}
}

func TestMemberFindByIDsMissingRowsAreAbsent(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("member_id IN (?, ?)")).
		WithArgs(int64(3), int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"member_id", "member_name"}).AddRow(int64(3), "Bank A"))

	got, err := MemberRepository{DB: db}.FindByIDs(context.Background(), []int64{3, 4})
	if err != nil {
		t.Fatalf("FindByIDs: %v", err)
	}
	if got[3].Name != "Bank A" {
		t.Fatalf("expected Bank A, got %+v", got[3])
	}
	if _, ok := got[4]; ok {
		t.Fatalf("member 4 should be absent")
	}
}

func TestTransactionDetailsSplitsLargeIDSets(t *testing.T) {
	db, mock := newMock(t)
	ids := make([]int64, query.MaxInSize+1)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	cols := []string{"txn_detail_id", "master_txn_id", "detail_type", "amount", "description"}
	mock.ExpectQuery("FROM transaction_detail").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(10), int64(1), "FEE", "1.00", "processing"))
	mock.ExpectQuery(regexp.QuoteMeta("master_txn_id IN (?) ORDER BY")).
		WithArgs(int64(query.MaxInSize + 1)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(20), int64(query.MaxInSize+1), "FEE", "2.00", "processing"))

	got, err := TransactionDetailRepository{DB: db}.FindByTransactionIDs(context.Background(), ids)
	if err != nil {
		t.Fatalf("FindByTransactionIDs: %v", err)
	}
	if len(got) != 2 || got[1].ID != 20 {
		t.Fatalf("expected details from both batches, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
