// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gamevault/backoffice/config"
	"github.com/gamevault/backoffice/internal/application/adapter"
	"github.com/gamevault/backoffice/internal/application/usecase/financials"
	"github.com/gamevault/backoffice/internal/application/usecase/pricing"
	"github.com/gamevault/backoffice/internal/infra/server/router"
	"github.com/gamevault/backoffice/internal/integration/adapters"
	"github.com/gamevault/backoffice/internal/integration/cache"
	"github.com/gamevault/backoffice/internal/integration/entrypoint/controller"
	"github.com/gamevault/backoffice/internal/integration/entrypoint/middleware"
	"github.com/gamevault/backoffice/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  redis.UniversalClient

	GetFinancials *financials.GetFinancialsUseCase
	QuoteRental   *pricing.QuoteRentalUseCase
	QuoteTrade    *pricing.QuoteTradeUseCase
	QuoteOrder    *pricing.QuoteOrderUseCase

	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// Option overrides a default collaborator of the injector.
type Option func(*options)

type options struct {
	clock adapter.Clock
}

// WithClock replaces the system clock used to resolve the report as-of instant.
func WithClock(clock adapter.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// NewInjector wires repositories, use cases and controllers.
// redisClient may be nil, in which case reports are never cached.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, opts ...Option) (*Injector, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	policy, err := config.LoadPricingPolicy(cfg.Pricing.PolicyFile)
	if err != nil {
		return nil, err
	}
	rentalPlan, err := policy.RentalPlan(cfg.Pricing.MoneyScale)
	if err != nil {
		return nil, fmt.Errorf("invalid rental plan: %w", err)
	}
	tradePolicy, err := policy.TradePolicy()
	if err != nil {
		return nil, fmt.Errorf("invalid trade policy: %w", err)
	}

	// Create repositories
	financialsRepo := persistence.NewFinancialsRepository(db)
	gameRepo := persistence.NewGameRepository(db)

	var reportCache adapter.ReportCache
	if redisClient != nil {
		reportCache = cache.NewReportCache(redisClient)
	}

	location := cfg.Report.Location()
	clock := o.clock
	if clock == nil {
		clock = adapters.NewSystemClock(location)
	}
	builder := financials.NewReportBuilder(financials.BuilderConfig{
		Location:              location,
		CartridgeOnlyDiscount: cfg.Pricing.CartridgeOnlyDiscount,
		ProjectionWindowDays:  cfg.Report.ProjectionWindowDays,
		DefaultTopGames:       cfg.Report.DefaultTopGames,
	})

	inj := &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		GetFinancials: financials.NewGetFinancialsUseCase(
			financialsRepo,
			gameRepo,
			reportCache,
			clock,
			builder,
			cfg.Report.CacheTTL,
		),
		QuoteRental: pricing.NewQuoteRentalUseCase(gameRepo, rentalPlan),
		QuoteTrade:  pricing.NewQuoteTradeUseCase(gameRepo, tradePolicy),
		QuoteOrder:  pricing.NewQuoteOrderUseCase(gameRepo, cfg.Pricing.CartridgeOnlyDiscount, cfg.Pricing.MoneyScale),
	}

	if cfg.RateLimit.Enabled {
		inj.RateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Create controllers
	healthController := controller.NewHealthController(databaseChecker(db), redisChecker(redisClient))
	financialsController := controller.NewFinancialsController(inj.GetFinancials, location)
	pricingController := controller.NewPricingController(inj.QuoteRental, inj.QuoteTrade, inj.QuoteOrder)

	inj.Router = router.NewRouter(healthController, financialsController, pricingController, inj.RateLimiter)

	return inj, nil
}

func databaseChecker(db *gorm.DB) controller.HealthChecker {
	return func(ctx context.Context) bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.PingContext(ctx) == nil
	}
}

func redisChecker(client redis.UniversalClient) controller.HealthChecker {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) bool {
		return client.Ping(ctx).Err() == nil
	}
}
