package api

import (
	"log"
	stdhttp "net/http"
	"strings"

	intconfig "paymentapi/internal/config"
	"paymentapi/internal/domain/dto"
	h "paymentapi/internal/http/handlers"
	"paymentapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route under /api/v1. Merchant mutations require an
// admin token when a JWT secret is configured.
func NewRouter(env intconfig.Env, a h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, dto.Failure("404", "route not found"))
	})

	authEnabled := strings.TrimSpace(env.JWTSecret) != ""
	auth := middleware.Auth(env.JWTSecret)
	admin := middleware.RequireRoles(authEnabled, "admin")

	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		if env.MetricsEnabled && a.Metrics != nil {
			api.GET("/metrics", gin.WrapH(a.Metrics.Handler()))
		}

		merchants := api.Group("/merchants")
		merchants.POST("/search", a.SearchMerchants)
		merchants.GET("/:id", a.GetMerchant)
		merchants.POST("", auth, admin, a.CreateMerchant)
		merchants.PUT("", auth, admin, a.UpdateMerchant)
		merchants.PUT("/:id", auth, admin, a.UpdateMerchant)

		transactions := api.Group("/transactions")
		transactions.GET("/:merchantId/transactions", a.ListTransactions)
		transactions.GET("/:merchantId/statement.pdf", a.TransactionStatement)
	}

	return r
}
