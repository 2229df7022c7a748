package services

import (
	"time"

	"paymentapi/internal/domain/dto"
	"paymentapi/internal/domain/models"
	"paymentapi/internal/query"

	"github.com/shopspring/decimal"
)

func assembleTransactionList(
	req dto.TransactionListRequest,
	page []models.Transaction,
	total int64,
	details map[int64][]models.TransactionDetail,
	members map[int64]models.Member,
	summary dto.Summary,
) dto.TransactionListResponse {
	items := make([]dto.TransactionItem, 0, len(page))
	for _, t := range page {
		items = append(items, toTransactionItem(t, details[t.ID], members))
	}
	return dto.TransactionListResponse{
		MerchantID:   req.MerchantID,
		DateRange:    inferDateRange(req, page),
		Summary:      summary,
		Transactions: items,
		Pagination:   newPagination(req.Page, req.Size, total),
	}
}

// emptyTransactionList keeps the caller's bounds and reports zero totals.
func emptyTransactionList(req dto.TransactionListRequest, currency string) dto.TransactionListResponse {
	return dto.TransactionListResponse{
		MerchantID: req.MerchantID,
		DateRange:  dto.DateRange{Start: req.StartDate, End: req.EndDate},
		Summary: dto.Summary{
			TotalAmount: dto.Money(decimal.Zero),
			Currency:    currency,
			ByStatus:    map[string]int64{},
		},
		Transactions: []dto.TransactionItem{},
		Pagination:   newPagination(req.Page, req.Size, 0),
	}
}

func toTransactionItem(t models.Transaction, details []models.TransactionDetail, members map[int64]models.Member) dto.TransactionItem {
	item := dto.TransactionItem{
		ID:           t.ID,
		Amount:       dto.Money(t.Amount),
		Currency:     t.Currency,
		Status:       t.Status,
		Timestamp:    t.Timestamp,
		CardType:     t.CardType,
		CardLast4:    t.CardLast4,
		AcquirerName: memberName(t.AcquirerID, members),
		IssuerName:   memberName(t.IssuerID, members),
		Details:      make([]dto.DetailItem, 0, len(details)),
	}
	for _, d := range details {
		item.Details = append(item.Details, dto.DetailItem{
			ID:          d.ID,
			Type:        d.Type,
			Amount:      dto.Money(d.Amount),
			Description: d.Description,
		})
	}
	return item
}

// memberName is nil for a missing reference or an unresolved id.
func memberName(id *int64, members map[int64]models.Member) *string {
	if id == nil {
		return nil
	}
	m, ok := members[*id]
	if !ok {
		return nil
	}
	name := m.Name
	return &name
}

func summarize(byStatus []models.StatusCount, amount decimal.Decimal, currency string) dto.Summary {
	s := dto.Summary{
		TotalAmount: dto.Money(amount),
		Currency:    currency,
		ByStatus:    make(map[string]int64, len(byStatus)),
	}
	for _, sc := range byStatus {
		s.ByStatus[sc.Status] += sc.Count
		s.TotalTransactions += sc.Count
	}
	return s
}

// inferDateRange uses the caller's bounds when given. A missing bound falls
// back to the earliest or latest timestamp on the current page only.
func inferDateRange(req dto.TransactionListRequest, page []models.Transaction) dto.DateRange {
	r := dto.DateRange{Start: req.StartDate, End: req.EndDate}
	if (r.Start != nil && r.End != nil) || len(page) == 0 {
		return r
	}
	minTS, maxTS := page[0].Timestamp, page[0].Timestamp
	for _, t := range page[1:] {
		if t.Timestamp.Before(minTS) {
			minTS = t.Timestamp
		}
		if t.Timestamp.After(maxTS) {
			maxTS = t.Timestamp
		}
	}
	if r.Start == nil {
		r.Start = timePtr(minTS)
	}
	if r.End == nil {
		r.End = timePtr(maxTS)
	}
	return r
}

func newPagination(page, size int, total int64) dto.Pagination {
	return dto.Pagination{
		Page:          page,
		Size:          size,
		TotalPages:    query.TotalPages(total, size),
		TotalElements: total,
	}
}

// NewSearchResponse wraps one page of a search listing.
func NewSearchResponse[T any](c query.Criteria, total int64, data []T) dto.SearchResponse[T] {
	if data == nil {
		data = []T{}
	}
	return dto.SearchResponse[T]{
		CurrentPage: c.PageNumber,
		TotalRecord: total,
		PageSize:    c.PageSize,
		TotalPage:   query.TotalPages(total, c.PageSize),
		Data:        data,
	}
}

func timePtr(t time.Time) *time.Time { return &t }
