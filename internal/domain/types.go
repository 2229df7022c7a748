package domain

// DefaultCurrency is reported on summaries when no currency is configured.
const DefaultCurrency = "USD"

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
}
