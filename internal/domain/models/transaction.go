package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of transaction_master. AcquirerID and IssuerID are
// weak references to member rows and may be nil.
type Transaction struct {
	ID         int64
	MerchantID string
	Amount     decimal.Decimal
	Currency   string
	Status     string
	Timestamp  time.Time
	CardType   string
	CardLast4  string
	AcquirerID *int64
	IssuerID   *int64
}

// TransactionDetail belongs to exactly one Transaction.
type TransactionDetail struct {
	ID            int64
	TransactionID int64
	Type          string
	Amount        decimal.Decimal
	Description   string
}

// Member is a counterparty referenced by transactions (acquirer or issuer).
type Member struct {
	ID   int64
	Name string
}

// StatusCount is one row of a status-grouped count.
type StatusCount struct {
	Status string
	Count  int64
}
