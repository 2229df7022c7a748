package handlers

import (
	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondBadRequest(c)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c)
		return false
	}
	return true
}
