package handlers

import (
	"paymentapi/internal/metrics"
	"paymentapi/internal/services"
)

// API holds the stores and settings the handlers build their per-request
// services from.
type API struct {
	Merchants    services.MerchantStore
	Transactions services.TransactionStore
	Details      services.DetailStore
	Members      services.MemberStore
	Currency     string
	Metrics      *metrics.Collector
}

func (a API) merchantService(requestID string) services.MerchantService {
	return services.MerchantService{Repo: a.Merchants, RequestID: requestID}
}

func (a API) transactionListService(requestID string) services.TransactionListService {
	return services.TransactionListService{
		Transactions: a.Transactions,
		Details:      a.Details,
		Members:      a.Members,
		Currency:     a.Currency,
		Metrics:      a.Metrics,
		RequestID:    requestID,
	}
}

func (a API) statementService(requestID string) services.StatementService {
	return services.StatementService{Listing: a.transactionListService(requestID), RequestID: requestID}
}
