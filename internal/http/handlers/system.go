package handlers

import (
	"net/http"

	intconfig "paymentapi/internal/config"
	"paymentapi/internal/http/middleware"
	"paymentapi/internal/utils"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": utils.NowUTC()})
}

// DBCheck pings the shared connection without touching any table.
func DBCheck(c *gin.Context) {
	if err := intconfig.PingDB(c.Request.Context()); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "system", "db_check", "ping failed: "+err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
