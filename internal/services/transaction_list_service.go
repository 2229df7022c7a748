package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"paymentapi/internal/domain"
	"paymentapi/internal/domain/dto"
	"paymentapi/internal/domain/models"
	"paymentapi/internal/metrics"
	"paymentapi/internal/query"
	"paymentapi/internal/repositories"
	"paymentapi/internal/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MaxListSize bounds an explicit page size. Size 0 still lists every match.
const MaxListSize = 100

type TransactionStore interface {
	FindPage(ctx context.Context, f repositories.TransactionFilter, page, size int) ([]models.Transaction, int64, error)
	CountByStatus(ctx context.Context, f repositories.TransactionFilter) ([]models.StatusCount, error)
	TotalAmount(ctx context.Context, f repositories.TransactionFilter) (decimal.Decimal, error)
}

type DetailStore interface {
	FindByTransactionIDs(ctx context.Context, ids []int64) ([]models.TransactionDetail, error)
}

type MemberStore interface {
	FindByIDs(ctx context.Context, ids []int64) (map[int64]models.Member, error)
}

// TransactionListService builds the enriched, paginated transaction listing
// of one merchant.
type TransactionListService struct {
	Transactions TransactionStore
	Details      DetailStore
	Members      MemberStore
	Currency     string
	Metrics      *metrics.Collector
	RequestID    string
}

// List runs the page query alongside the summary queries, then loads the
// page's details and members together. Any store failure aborts the whole
// listing.
func (s TransactionListService) List(ctx context.Context, req dto.TransactionListRequest) (resp dto.TransactionListResponse, err error) {
	start := time.Now()
	result := metrics.ResultPage
	defer func() {
		if err != nil {
			result = metrics.ResultError
		}
		s.Metrics.ObserveAggregation(result, time.Since(start))
	}()

	if err := validateListRequest(req); err != nil {
		return dto.TransactionListResponse{}, err
	}

	filter := repositories.TransactionFilter{
		MerchantID: strings.TrimSpace(req.MerchantID),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     req.Status,
	}

	var (
		page     []models.Transaction
		total    int64
		byStatus []models.StatusCount
		amount   decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, total, err = s.Transactions.FindPage(gctx, filter, req.Page, req.Size)
		return err
	})
	g.Go(func() error {
		var err error
		byStatus, err = s.Transactions.CountByStatus(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		amount, err = s.Transactions.TotalAmount(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		utils.LogEvent(s.RequestID, "transactions", "list", "page/summary failed: "+err.Error())
		return dto.TransactionListResponse{}, err
	}

	if len(page) == 0 {
		result = metrics.ResultEmpty
		utils.LogEvent(s.RequestID, "transactions", "list", "merchant_id="+filter.MerchantID+" empty page")
		return emptyTransactionList(req, s.currency()), nil
	}

	txnIDs, memberIDs := collectIDs(page)
	var (
		details []models.TransactionDetail
		members map[int64]models.Member
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = s.Details.FindByTransactionIDs(gctx, txnIDs)
		return err
	})
	g.Go(func() error {
		if len(memberIDs) == 0 {
			members = map[int64]models.Member{}
			return nil
		}
		var err error
		members, err = s.Members.FindByIDs(gctx, memberIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		utils.LogEvent(s.RequestID, "transactions", "list", "details/members failed: "+err.Error())
		return dto.TransactionListResponse{}, err
	}

	utils.LogEvent(s.RequestID, "transactions", "list", fmt.Sprintf("merchant_id=%s page=%d size=%d rows=%d total=%d",
		filter.MerchantID, req.Page, req.Size, len(page), total))

	return assembleTransactionList(req, page, total, groupDetails(details), members, summarize(byStatus, amount, s.currency())), nil
}

func (s TransactionListService) currency() string {
	if c := strings.TrimSpace(s.Currency); c != "" {
		return c
	}
	return domain.DefaultCurrency
}

func validateListRequest(req dto.TransactionListRequest) error {
	if utils.IsBlank(req.MerchantID) {
		return domain.ValidationError{Field: "merchantId", Msg: "merchantId is required"}
	}
	if req.Page < 0 {
		return domain.ValidationError{Field: "page", Msg: "page must not be negative"}
	}
	if req.Size < 0 {
		return domain.ValidationError{Field: "size", Msg: "size must not be negative"}
	}
	if req.Size > MaxListSize {
		return domain.ValidationError{Field: "size", Msg: fmt.Sprintf("size must not exceed %d", MaxListSize)}
	}
	// the store addresses pages 1-based
	if req.Page == math.MaxInt || !query.OffsetInRange(req.Page+1, req.Size) {
		return domain.ValidationError{Field: "page", Msg: "page is out of range"}
	}
	return nil
}

// collectIDs returns the page's transaction ids in page order and the
// distinct member ids referenced as acquirer or issuer.
func collectIDs(page []models.Transaction) (txnIDs, memberIDs []int64) {
	seen := map[int64]struct{}{}
	addMember := func(id *int64) {
		if id == nil {
			return
		}
		if _, ok := seen[*id]; ok {
			return
		}
		seen[*id] = struct{}{}
		memberIDs = append(memberIDs, *id)
	}
	for _, t := range page {
		txnIDs = append(txnIDs, t.ID)
		addMember(t.AcquirerID)
		addMember(t.IssuerID)
	}
	return txnIDs, memberIDs
}

func groupDetails(details []models.TransactionDetail) map[int64][]models.TransactionDetail {
	out := make(map[int64][]models.TransactionDetail)
	for _, d := range details {
		out[d.TransactionID] = append(out[d.TransactionID], d)
	}
	return out
}
