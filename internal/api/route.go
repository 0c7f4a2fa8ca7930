package api

import (
	"time"

	"github.com/Behyna/credit-ledger/internal/api/middleware"
	v1 "github.com/Behyna/credit-ledger/internal/api/v1"
	"github.com/Behyna/credit-ledger/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const prefixV1 = "/api/v1"

type RouteConfig struct {
	ServiceName          string
	AuthSecret           []byte
	Gatherer             prometheus.Gatherer
	Health               middleware.HealthChecker
	Metrics              *metrics.Metrics
	SlowRequestThreshold time.Duration
	Logger               *zap.Logger
}

func SetupRoutes(app *fiber.App, handler *v1.Handler, cfg RouteConfig) {
	app.Use(middleware.TrackID())
	if cfg.Metrics != nil {
		app.Use(metrics.HTTPMetricsMiddleware(cfg.Metrics, cfg.Logger, cfg.SlowRequestThreshold))
	}
	app.Use(middleware.HealthCheck(cfg.ServiceName, cfg.Health))

	app.Get("/ping", handler.Pong)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group(prefixV1, middleware.Auth(cfg.AuthSecret))

	api.Post("/sellers", handler.CreateSeller)

	seller := api.Group("/seller")
	seller.Get("/credit", handler.GetCredit)
	seller.Get("/transactions", handler.ListTransactions)
	seller.Get("/reconciliation", handler.GetOwnReconciliation)
	seller.Post("/deposit", handler.Deposit)
	seller.Post("/sell-charge", handler.ChargeSale)
	seller.Post("/credit-requests", handler.SubmitCreditRequest)
	seller.Get("/credit-requests", handler.ListOwnCreditRequests)

	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.Get("/credit-requests", handler.ListCreditRequests)
	admin.Post("/credit-requests/:id/decision", handler.DecideCreditRequest)
	admin.Get("/sellers/:id/reconciliation", handler.GetReconciliation)
}
