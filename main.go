package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "paymentapi/internal/config"
	router "paymentapi/internal/http"
	h "paymentapi/internal/http/handlers"
	"paymentapi/internal/metrics"
	"paymentapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer intconfig.CloseDB()

	var collector *metrics.Collector
	if env.MetricsEnabled {
		collector = metrics.NewCollector(nil)
	}

	api := h.API{
		Merchants:    repositories.MerchantRepository{DB: db, Metrics: collector},
		Transactions: repositories.TransactionRepository{DB: db, Metrics: collector},
		Details:      repositories.TransactionDetailRepository{DB: db, Metrics: collector},
		Members:      repositories.MemberRepository{DB: db, Metrics: collector},
		Currency:     env.DefaultCurrency,
		Metrics:      collector,
	}
	r := router.NewRouter(env, api)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
