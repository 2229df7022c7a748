package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"paymentapi/internal/domain"
	"paymentapi/internal/domain/dto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userRoleKey = "userRole"
	userIDKey   = "userID"
)

// Auth verifies an HS256 bearer token signed with secret and stores the
// subject and role on the context for RequireRoles. An empty secret disables
// the check.
func Auth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if len(key) == 0 {
			c.Next()
			return
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		rc := requestContext(claims)
		c.Set(userIDKey, rc.Subject)
		c.Set(userRoleKey, rc.Role)
		c.Next()
	}
}

// CurrentUser returns what Auth stored for the request.
func CurrentUser(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{Subject: c.GetString(userIDKey), Role: c.GetString(userRoleKey)}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func requestContext(claims jwt.MapClaims) domain.RequestContext {
	var rc domain.RequestContext
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		rc.Subject = sub
	} else if id, ok := claims["user_id"]; ok {
		rc.Subject = fmt.Sprint(id)
	}
	if role, ok := claims["role"].(string); ok {
		rc.Role = role
	}
	return rc
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("401", msg))
}
