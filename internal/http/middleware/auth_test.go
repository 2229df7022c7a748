package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func newAuthEngine(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(secret), func(c *gin.Context) {
		u := CurrentUser(c)
		c.String(http.StatusOK, u.Subject+"|"+u.Role)
	})
	return r
}

func sign(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func get(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthDisabledWithoutSecret(t *testing.T) {
	w := get(newAuthEngine(""), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", w.Code)
	}
}

func TestAuthStoresClaims(t *testing.T) {
	token := sign(t, "s3cret", jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 42,
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	w := get(newAuthEngine("s3cret"), "Bearer "+token)
	if w.Code != http.StatusOK || w.Body.String() != "42|admin" {
		t.Fatalf("unexpected response %d %q", w.Code, w.Body.String())
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	r := newAuthEngine("s3cret")
	expired := sign(t, "s3cret", jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Hour).Unix()})
	wrongKey := sign(t, "other", jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"})
	wrongAlg := sign(t, "s3cret", jwt.SigningMethodHS512, jwt.MapClaims{"role": "admin"})

	for name, header := range map[string]string{
		"missing":   "",
		"no scheme": expired,
		"expired":   "Bearer " + expired,
		"wrong key": "Bearer " + wrongKey,
		"wrong alg": "Bearer " + wrongAlg,
	} {
		if w := get(r, header); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, w.Code)
		}
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(userRoleKey, c.GetHeader("X-Role"))
		c.Next()
	}, RequireRoles(true, "Admin"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for role, want := range map[string]int{
		"":       http.StatusUnauthorized,
		"viewer": http.StatusForbidden,
		"ADMIN":  http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Role", role)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("role %q: expected %d, got %d", role, want, w.Code)
		}
	}
}
