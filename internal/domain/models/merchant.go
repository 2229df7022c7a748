package models

// Merchant mirrors the merchant table.
type Merchant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Status       string `json:"status"`
	Address      string `json:"address"`
	BusinessName string `json:"businessName"`
}
