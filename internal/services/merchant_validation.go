package services

import (
	"context"
	"strings"

	"paymentapi/internal/domain"
	"paymentapi/internal/domain/dto"
	"paymentapi/internal/utils"
)

type EmailLookup interface {
	FindIDByEmail(ctx context.Context, email, excludeID string) (id string, found bool, err error)
}

type requiredField struct {
	name  string
	value string
	msg   string
}

// ValidateMerchant reports the first violation only. The email uniqueness
// check runs before the required-field checks; selfID excludes the record
// being updated from the uniqueness check.
func ValidateMerchant(ctx context.Context, p dto.MerchantPayload, selfID string, lookup EmailLookup) error {
	if email := strings.TrimSpace(p.Email); email != "" && lookup != nil {
		_, found, err := lookup.FindIDByEmail(ctx, email, selfID)
		if err != nil {
			return err
		}
		if found {
			return domain.ValidationError{Field: "email", Msg: "Merchant email already exists"}
		}
	}

	for _, f := range []requiredField{
		{"name", p.Name, "Name is required"},
		{"email", p.Email, "Email is required"},
		{"phone", p.Phone, "Phone is required"},
		{"status", p.Status, "Status is required"},
		{"address", p.Address, "Address is required"},
		{"businessName", p.BusinessName, "Business name is required"},
	} {
		if utils.IsBlank(f.value) {
			return domain.ValidationError{Field: f.name, Msg: f.msg}
		}
	}
	return nil
}
