// Package dto holds the request and response shapes of the HTTP API.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Envelope wraps merchant responses and every error: code "0" with message
// "SUCCESS" on success, a non-zero code otherwise.
type Envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	CodeSuccess    = "0"
	MessageSuccess = "SUCCESS"
)

func Success(data any) Envelope {
	return Envelope{Code: CodeSuccess, Message: MessageSuccess, Data: data}
}

func Failure(code, message string) Envelope {
	return Envelope{Code: code, Message: message}
}

// SearchRequest is the body of POST /merchants/search. PageNumber is 1-based.
type SearchRequest struct {
	PageNumber      int    `json:"pageNumber"`
	PageSize        int    `json:"pageSize"`
	SortField       string `json:"sortField"`
	SortOrder       string `json:"sortOrder"`
	SearchParameter string `json:"searchParameter"`
}

type SearchResponse[T any] struct {
	CurrentPage int   `json:"currentPage"`
	TotalRecord int64 `json:"totalRecord"`
	PageSize    int   `json:"pageSize"`
	TotalPage   int   `json:"totalPage"`
	Data        []T   `json:"data"`
}

// MerchantPayload is used for both create and update; ID is ignored on create.
type MerchantPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Status       string `json:"status"`
	Address      string `json:"address"`
	BusinessName string `json:"businessName"`
}

type MerchantIDResponse struct {
	ID string `json:"id"`
}

// TransactionListRequest is built by the handler after defaults and date
// parsing. Page is 0-based.
type TransactionListRequest struct {
	MerchantID string
	Page       int
	Size       int
	StartDate  *time.Time
	EndDate    *time.Time
	Status     string
}

type TransactionListResponse struct {
	MerchantID   string            `json:"merchantId"`
	DateRange    DateRange         `json:"dateRange"`
	Summary      Summary           `json:"summary"`
	Transactions []TransactionItem `json:"transactions"`
	Pagination   Pagination        `json:"pagination"`
}

type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

type Summary struct {
	TotalTransactions int64            `json:"totalTransactions"`
	TotalAmount       Money            `json:"totalAmount"`
	Currency          string           `json:"currency"`
	ByStatus          map[string]int64 `json:"byStatus"`
}

type TransactionItem struct {
	ID           int64        `json:"id"`
	Amount       Money        `json:"amount"`
	Currency     string       `json:"currency"`
	Status       string       `json:"status"`
	Timestamp    time.Time    `json:"timestamp"`
	CardType     string       `json:"cardType"`
	CardLast4    string       `json:"cardLast4"`
	AcquirerName *string      `json:"acquirerName,omitempty"`
	IssuerName   *string      `json:"issuerName,omitempty"`
	Details      []DetailItem `json:"details"`
}

type DetailItem struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Amount      Money  `json:"amount"`
	Description string `json:"description"`
}

type Pagination struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// Money renders a decimal as a JSON number with two fraction digits.
type Money decimal.Decimal

func (m Money) Decimal() decimal.Decimal { return decimal.Decimal(m) }

func (m Money) String() string { return decimal.Decimal(m).StringFixed(2) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}
