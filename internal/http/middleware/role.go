package middleware

import (
	"net/http"
	"strings"

	"paymentapi/internal/domain/dto"

	"github.com/gin-gonic/gin"
)

// RequireRoles lets the request through only when the role stored by Auth is
// one of allowedRoles. With auth disabled (enabled false) it passes through.
func RequireRoles(enabled bool, allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		role := strings.ToLower(strings.TrimSpace(c.GetString(userRoleKey)))
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("401", "role missing from token"))
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure("403", "role not allowed"))
			return
		}
		c.Next()
	}
}
