package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"paymentapi/internal/domain"
	"paymentapi/internal/domain/dto"
	"paymentapi/internal/http/middleware"
	"paymentapi/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage = 0
	defaultSize = 20
)

// GET /api/v1/transactions/:merchantId/transactions
//
// The listing is returned as is on success; failures use the envelope.
func (a API) ListTransactions(c *gin.Context) {
	req, err := parseListRequest(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	resp, err := a.transactionListService(middleware.GetRequestID(c)).List(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/v1/transactions/:merchantId/statement.pdf
func (a API) TransactionStatement(c *gin.Context) {
	req, err := parseListRequest(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pdf, filename, err := a.statementService(middleware.GetRequestID(c)).Generate(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func parseListRequest(c *gin.Context) (dto.TransactionListRequest, error) {
	req := dto.TransactionListRequest{
		MerchantID: strings.TrimSpace(c.Param("merchantId")),
		Status:     strings.TrimSpace(c.Query("status")),
	}

	var err error
	if req.Page, err = intQuery(c, "page", defaultPage); err != nil {
		return req, err
	}
	if req.Size, err = intQuery(c, "size", defaultSize); err != nil {
		return req, err
	}
	if req.StartDate, err = utils.ParseFlexibleDate("startDate", c.Query("startDate"), true); err != nil {
		return req, err
	}
	if req.EndDate, err = utils.ParseFlexibleDate("endDate", c.Query("endDate"), false); err != nil {
		return req, err
	}
	return req, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.ValidationError{Field: key, Msg: key + " must be a non-negative integer", Err: err}
	}
	return n, nil
}
