package financials

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/gamevault/backoffice/internal/application/adapter"
	"github.com/gamevault/backoffice/internal/domain/entity"
	domainerror "github.com/gamevault/backoffice/internal/domain/error"
)

// MaxTopGamesLimit caps the top games a single request may ask for.
const MaxTopGamesLimit = 100

// MaxSeriesPeriods caps the buckets a single report may span, ten years of days.
const MaxSeriesPeriods = 3660

// cacheKeyPrefix namespaces report entries in the cache.
const cacheKeyPrefix = "financials:report:"

// GetFinancialsInput represents the input for building a financial report.
type GetFinancialsInput struct {
	StartDate         *time.Time
	EndDate           *time.Time
	Granularity       Granularity
	Platform          string
	OperatingExpenses decimal.Decimal
	TopGames          int
	AsOf              *time.Time
}

// GetFinancialsUseCase loads a snapshot of source records and builds the financial report.
type GetFinancialsUseCase struct {
	financialsRepo adapter.FinancialsRepository
	gameRepo       adapter.GameRepository
	cache          adapter.ReportCache
	clock          adapter.Clock
	builder        *ReportBuilder
	cacheTTL       time.Duration
	tracer         trace.Tracer
}

// NewGetFinancialsUseCase creates a new GetFinancialsUseCase instance.
// cache may be nil, in which case every request is computed.
func NewGetFinancialsUseCase(
	financialsRepo adapter.FinancialsRepository,
	gameRepo adapter.GameRepository,
	cache adapter.ReportCache,
	clock adapter.Clock,
	builder *ReportBuilder,
	cacheTTL time.Duration,
) *GetFinancialsUseCase {
	return &GetFinancialsUseCase{
		financialsRepo: financialsRepo,
		gameRepo:       gameRepo,
		cache:          cache,
		clock:          clock,
		builder:        builder,
		cacheTTL:       cacheTTL,
		tracer:         otel.Tracer("backoffice/financials"),
	}
}

// Execute validates the request, loads the snapshot and builds the report.
func (uc *GetFinancialsUseCase) Execute(ctx context.Context, input GetFinancialsInput) (*Report, error) {
	if input.Granularity == "" {
		input.Granularity = GranularityMonth
	}

	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	req := uc.toRequest(input)

	ctx, span := uc.tracer.Start(ctx, "financials.get_report",
		trace.WithAttributes(
			attribute.String("report.granularity", string(req.Granularity)),
			attribute.String("report.platform", req.Platform),
			attribute.String("report.as_of", req.AsOf.Format(time.RFC3339)),
		),
	)
	defer span.End()

	cacheKey := reportCacheKey(req)
	if report, ok := uc.readCache(ctx, cacheKey); ok {
		span.SetAttributes(attribute.Bool("report.cache_hit", true))
		return report, nil
	}

	snapshot, err := uc.loadSnapshot(ctx, req.AsOf)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot load failed")
		return nil, err
	}

	report := uc.builder.Build(snapshot, req)

	uc.writeCache(ctx, cacheKey, report)

	return report, nil
}

// loadSnapshot reads the five source collections concurrently and waits for all of them.
// Records whose milestone falls after asOf are left out. The first failure cancels the remaining reads.
func (uc *GetFinancialsUseCase) loadSnapshot(ctx context.Context, asOf time.Time) (*Snapshot, error) {
	ctx, span := uc.tracer.Start(ctx, "financials.load_snapshot")
	defer span.End()

	completedUpTo := func(status string) adapter.SourceFilter {
		return adapter.SourceFilter{Statuses: []string{status}, To: &asOf}
	}

	snapshot := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		buyings, err := uc.financialsRepo.ListBuyings(gctx, completedUpTo(string(entity.BuyingStatusCompleted)))
		if err != nil {
			return fmt.Errorf("failed to list buyings: %w", err)
		}
		snapshot.Buyings = buyings
		return nil
	})

	g.Go(func() error {
		// Every status is needed for the status breakdown.
		orders, err := uc.financialsRepo.ListOrders(gctx, adapter.SourceFilter{To: &asOf})
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		snapshot.Orders = orders
		return nil
	})

	g.Go(func() error {
		rentals, err := uc.financialsRepo.ListRentals(gctx, completedUpTo(string(entity.RentalStatusCompleted)))
		if err != nil {
			return fmt.Errorf("failed to list rentals: %w", err)
		}
		snapshot.Rentals = rentals
		return nil
	})

	g.Go(func() error {
		trades, err := uc.financialsRepo.ListTrades(gctx, completedUpTo(string(entity.TradeStatusCompleted)))
		if err != nil {
			return fmt.Errorf("failed to list trades: %w", err)
		}
		snapshot.Trades = trades
		return nil
	})

	g.Go(func() error {
		games, err := uc.gameRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to list games: %w", err)
		}
		snapshot.Games = games
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, domainerror.NewFinancialsError(
			domainerror.ErrCodeSnapshotUnavailable,
			"failed to load source records",
			fmt.Errorf("%w: %w", domainerror.ErrSnapshotUnavailable, err),
		)
	}

	span.SetAttributes(
		attribute.Int("snapshot.buyings", len(snapshot.Buyings)),
		attribute.Int("snapshot.orders", len(snapshot.Orders)),
		attribute.Int("snapshot.rentals", len(snapshot.Rentals)),
		attribute.Int("snapshot.trades", len(snapshot.Trades)),
		attribute.Int("snapshot.games", len(snapshot.Games)),
	)

	return snapshot, nil
}

func (uc *GetFinancialsUseCase) toRequest(input GetFinancialsInput) ReportRequest {
	loc := uc.builder.Location()

	req := ReportRequest{
		Granularity:       input.Granularity,
		Platform:          strings.TrimSpace(input.Platform),
		OperatingExpenses: input.OperatingExpenses,
		TopGames:          input.TopGames,
	}

	if input.StartDate != nil && input.EndDate != nil {
		rng := NewDateRange(*input.StartDate, *input.EndDate, loc)
		req.DateRange = &rng
	}

	if input.AsOf != nil {
		req.AsOf = input.AsOf.In(loc)
	} else {
		// Truncated so repeated requests within the same minute share a cache entry.
		req.AsOf = uc.clock.Now().In(loc).Truncate(time.Minute)
	}

	return req
}

func (uc *GetFinancialsUseCase) readCache(ctx context.Context, key string) (*Report, bool) {
	if uc.cache == nil {
		return nil, false
	}

	payload, found, err := uc.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "report cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		slog.WarnContext(ctx, "report cache entry is corrupt", "key", key, "error", err)
		return nil, false
	}
	return &report, true
}

func (uc *GetFinancialsUseCase) writeCache(ctx context.Context, key string, report *Report) {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		slog.WarnContext(ctx, "report could not be encoded for cache", "key", key, "error", err)
		return
	}
	if err := uc.cache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
		slog.WarnContext(ctx, "report cache write failed", "key", key, "error", err)
	}
}

// reportCacheKey hashes every request parameter that changes the report.
func reportCacheKey(req ReportRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "g=%s|p=%s|opex=%s|top=%d|asof=%s",
		req.Granularity,
		strings.ToLower(req.Platform),
		req.OperatingExpenses.String(),
		req.TopGames,
		req.AsOf.UTC().Format(time.RFC3339Nano),
	)
	if req.DateRange != nil {
		fmt.Fprintf(&b, "|from=%s|to=%s",
			req.DateRange.Start.Format("2006-01-02"),
			req.DateRange.End.Format("2006-01-02"),
		)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// validateInput validates the input parameters.
func (uc *GetFinancialsUseCase) validateInput(input GetFinancialsInput) error {
	if !input.Granularity.IsValid() {
		return domainerror.NewFinancialsError(
			domainerror.ErrCodeInvalidGranularity,
			"invalid granularity",
			domainerror.ErrInvalidGranularity,
		)
	}

	if (input.StartDate == nil) != (input.EndDate == nil) {
		return domainerror.NewFinancialsError(
			domainerror.ErrCodeIncompleteDateRange,
			"incomplete date range",
			domainerror.ErrIncompleteDateRange,
		)
	}

	if input.StartDate != nil && input.EndDate.Before(*input.StartDate) {
		return domainerror.NewFinancialsError(
			domainerror.ErrCodeInvalidDateRange,
			"invalid date range",
			domainerror.ErrInvalidDateRange,
		)
	}

	if input.StartDate != nil {
		rng := NewDateRange(*input.StartDate, *input.EndDate, uc.builder.Location())
		if CountPeriods(rng.Start, rng.End, input.Granularity) > MaxSeriesPeriods {
			return domainerror.NewFinancialsError(
				domainerror.ErrCodeReportRangeTooWide,
				"date range too wide",
				domainerror.ErrReportRangeTooWide,
			)
		}
	}

	if input.OperatingExpenses.IsNegative() {
		return domainerror.NewFinancialsError(
			domainerror.ErrCodeNegativeOperatingExpenses,
			"invalid operating expenses",
			domainerror.ErrNegativeOperatingExpenses,
		)
	}

	if input.TopGames < 0 || input.TopGames > MaxTopGamesLimit {
		return domainerror.NewFinancialsError(
			domainerror.ErrCodeInvalidTopGamesLimit,
			"invalid top games limit",
			domainerror.ErrInvalidTopGamesLimit,
		)
	}

	return nil
}
