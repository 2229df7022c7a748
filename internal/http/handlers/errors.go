package handlers

import (
	"errors"
	"net/http"

	"paymentapi/internal/domain"
	"paymentapi/internal/domain/dto"
	"paymentapi/internal/http/middleware"
	"paymentapi/internal/utils"

	"github.com/gin-gonic/gin"
)

const messageUnsuccessful = "UNSUCCESSFUL"

// RespondDomainError maps domain errors onto the response envelope. Store
// failures are logged with their cause and rendered generically.
func RespondDomainError(c *gin.Context, err error) {
	var ve domain.ValidationError
	switch {
	case errors.As(err, &ve):
		msg := ve.Msg
		if msg == "" {
			msg = ve.Error()
		}
		c.JSON(http.StatusBadRequest, dto.Failure("400", msg))
	case domain.IsDateParse(err):
		c.JSON(http.StatusBadRequest, dto.Failure("400", err.Error()))
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.Failure("404", err.Error()))
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", c.Request.Method+" "+c.FullPath(), "internal error: "+causeOf(err))
		c.JSON(http.StatusInternalServerError, dto.Failure("500", "internal server error"))
	}
}

// respondBadRequest is used for bodies and parameters that never reach a service.
func respondBadRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, dto.Failure("400", messageUnsuccessful))
}

func causeOf(err error) string {
	if err == nil {
		return ""
	}
	if inner := errors.Unwrap(err); inner != nil {
		return err.Error() + ": " + inner.Error()
	}
	return err.Error()
}
