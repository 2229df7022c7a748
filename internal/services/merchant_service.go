package services

import (
	"context"
	"strings"

	"paymentapi/internal/domain"
	"paymentapi/internal/domain/dto"
	"paymentapi/internal/domain/models"
	"paymentapi/internal/query"
	"paymentapi/internal/utils"

	"github.com/google/uuid"
)

type MerchantStore interface {
	EmailLookup
	Search(ctx context.Context, c query.Criteria) ([]models.Merchant, error)
	CountSearch(ctx context.Context, c query.Criteria) (int64, error)
	GetByID(ctx context.Context, id string) (models.Merchant, error)
	Create(ctx context.Context, m models.Merchant) error
	Update(ctx context.Context, m models.Merchant) error
}

// merchantSortColumns is the only set of sort fields a caller may request.
var merchantSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"phone":      "phone",
	"status":     "status",
	"created_at": "created_at",
	"createdat":  "created_at",
}

type MerchantService struct {
	Repo      MerchantStore
	RequestID string
	NewID     func() string
}

func (s MerchantService) Search(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse[models.Merchant], error) {
	c, err := merchantCriteria(req)
	if err != nil {
		return dto.SearchResponse[models.Merchant]{}, err
	}

	rows, err := s.Repo.Search(ctx, c)
	if err != nil {
		utils.LogEvent(s.RequestID, "merchant", "search", "search failed: "+err.Error())
		return dto.SearchResponse[models.Merchant]{}, err
	}
	total, err := s.Repo.CountSearch(ctx, c)
	if err != nil {
		utils.LogEvent(s.RequestID, "merchant", "search", "count failed: "+err.Error())
		return dto.SearchResponse[models.Merchant]{}, err
	}
	return NewSearchResponse(c, total, rows), nil
}

// merchantCriteria maps the request onto Criteria, resolving the sort field
// through the allow-list.
func merchantCriteria(req dto.SearchRequest) (query.Criteria, error) {
	c := query.Criteria{
		SearchTerm: strings.TrimSpace(req.SearchParameter),
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
	}
	if f := strings.ToLower(strings.TrimSpace(req.SortField)); f != "" {
		col, ok := merchantSortColumns[f]
		if !ok {
			return query.Criteria{}, domain.ValidationError{Field: "sortField", Msg: "sortField is not sortable"}
		}
		c.SortField = col
	}
	order, ok := query.ParseSortOrder(req.SortOrder)
	if !ok {
		return query.Criteria{}, domain.ValidationError{Field: "sortOrder", Msg: "sortOrder must be asc or desc"}
	}
	c.SortOrder = order
	if err := c.Validate(); err != nil {
		return query.Criteria{}, err
	}
	return c, nil
}

func (s MerchantService) Create(ctx context.Context, p dto.MerchantPayload) (dto.MerchantIDResponse, error) {
	if err := ValidateMerchant(ctx, p, "", s.Repo); err != nil {
		return dto.MerchantIDResponse{}, err
	}
	m := toMerchant(p)
	m.ID = s.newID()
	if err := s.Repo.Create(ctx, m); err != nil {
		utils.LogEvent(s.RequestID, "merchant", "create", "insert failed: "+err.Error())
		return dto.MerchantIDResponse{}, err
	}
	utils.LogEvent(s.RequestID, "merchant", "create", "merchant_id="+m.ID)
	return dto.MerchantIDResponse{ID: m.ID}, nil
}

func (s MerchantService) Update(ctx context.Context, id string, p dto.MerchantPayload) (dto.MerchantIDResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dto.MerchantIDResponse{}, domain.ValidationError{Field: "id", Msg: "Merchant id is required"}
	}
	if err := ValidateMerchant(ctx, p, id, s.Repo); err != nil {
		return dto.MerchantIDResponse{}, err
	}
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return dto.MerchantIDResponse{}, err
	}
	m := toMerchant(p)
	m.ID = id
	if err := s.Repo.Update(ctx, m); err != nil {
		utils.LogEvent(s.RequestID, "merchant", "update", "update failed: "+err.Error())
		return dto.MerchantIDResponse{}, err
	}
	utils.LogEvent(s.RequestID, "merchant", "update", "merchant_id="+id)
	return dto.MerchantIDResponse{ID: id}, nil
}

func (s MerchantService) Detail(ctx context.Context, id string) (models.Merchant, error) {
	if strings.TrimSpace(id) == "" {
		return models.Merchant{}, domain.ValidationError{Field: "id", Msg: "Merchant id is required"}
	}
	return s.Repo.GetByID(ctx, id)
}

func (s MerchantService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func toMerchant(p dto.MerchantPayload) models.Merchant {
	return models.Merchant{
		Name:         strings.TrimSpace(p.Name),
		Email:        strings.TrimSpace(p.Email),
		Phone:        strings.TrimSpace(p.Phone),
		Status:       strings.TrimSpace(p.Status),
		Address:      strings.TrimSpace(p.Address),
		BusinessName: strings.TrimSpace(p.BusinessName),
	}
}
