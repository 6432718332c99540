// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gamevault/backoffice/internal/integration/entrypoint/controller"
	"github.com/gamevault/backoffice/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	financialsController *controller.FinancialsController
	pricingController    *controller.PricingController
	rateLimiter          *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
// A nil rate limiter leaves the API unthrottled.
func NewRouter(
	healthController *controller.HealthController,
	financialsController *controller.FinancialsController,
	pricingController *controller.PricingController,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:     healthController,
		financialsController: financialsController,
		pricingController:    pricingController,
		rateLimiter:          rateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}

	if r.financialsController != nil {
		v1.GET("/financials", r.financialsController.GetFinancials)
	}

	if r.pricingController != nil {
		pricing := v1.Group("/pricing")
		{
			pricing.POST("/rental-quote", r.pricingController.QuoteRental)
			pricing.POST("/trade-quote", r.pricingController.QuoteTrade)
			pricing.POST("/order-quote", r.pricingController.QuoteOrder)
		}
	}
}
