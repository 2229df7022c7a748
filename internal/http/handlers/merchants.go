package handlers

import (
	"net/http"
	"strings"

	"paymentapi/internal/domain/dto"
	"paymentapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/v1/merchants/search
func (a API) SearchMerchants(c *gin.Context) {
	var req dto.SearchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	resp, err := a.merchantService(middleware.GetRequestID(c)).Search(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

// POST /api/v1/merchants
func (a API) CreateMerchant(c *gin.Context) {
	var req dto.MerchantPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	resp, err := a.merchantService(middleware.GetRequestID(c)).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

// PUT /api/v1/merchants and PUT /api/v1/merchants/:id. The path id wins over
// the body id.
func (a API) UpdateMerchant(c *gin.Context) {
	var req dto.MerchantPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		id = req.ID
	}
	resp, err := a.merchantService(middleware.GetRequestID(c)).Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

// GET /api/v1/merchants/:id
func (a API) GetMerchant(c *gin.Context) {
	m, err := a.merchantService(middleware.GetRequestID(c)).Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(m))
}
