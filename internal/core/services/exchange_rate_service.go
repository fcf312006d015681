package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/obveznik/obveznik_backend/internal/apperrors"
	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/obveznik/obveznik_backend/internal/core/ports"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

var ErrRateUnavailable = errors.New("exchange rate unavailable")

const (
	// rateCacheTTL keeps daily rates long enough for the seven-day fallback
	// walk; freshness comes from the per-day cache key, not the TTL.
	rateCacheTTL = 8 * 24 * time.Hour

	// rateFallbackDays is how far back GetRate looks when the requested day's
	// list is not available (weekends, holidays, source outages).
	rateFallbackDays = 7
)

// exchangeRateService resolves official middle rates, caching each published
// daily list and falling back to recent cached days when the source is silent.
type exchangeRateService struct {
	source ports.RateSource
	cache  ports.RateCache
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(source ports.RateSource, cache ports.RateCache) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{source: source, cache: cache}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// GetRate returns the mid-rate for the currency on the given date.
func (s *exchangeRateService) GetRate(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsForeignCurrency(currencyCode) {
		return decimal.Zero, fmt.Errorf("%w: no exchange rate for currency %s", apperrors.ErrValidation, currencyCode)
	}
	day := date.Truncate(24 * time.Hour)

	if s.cache != nil {
		if rate, ok := s.cache.Get(ctx, currencyCode, day); ok {
			return rate, nil
		}
	}

	rates, err := s.source.FetchDailyRates(ctx, day)
	if err != nil {
		logger.Warn("Rate source fetch failed, trying cached fallback", slog.String("error", err.Error()), slog.String("currency", currencyCode))
		return s.fallback(ctx, currencyCode, day)
	}

	if s.cache != nil {
		for ccy, rate := range rates {
			s.cache.Set(ctx, ccy, day, rate, rateCacheTTL)
		}
	}

	rate, ok := rates[currencyCode]
	if !ok {
		logger.Warn("Currency missing from the day's rate list, trying cached fallback", slog.String("currency", currencyCode))
		return s.fallback(ctx, currencyCode, day)
	}
	return rate, nil
}

// fallback walks backwards through the cache, most recent day first.
func (s *exchangeRateService) fallback(ctx context.Context, currencyCode string, day time.Time) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		for i := 1; i <= rateFallbackDays; i++ {
			prev := day.AddDate(0, 0, -i)
			if rate, ok := s.cache.Get(ctx, currencyCode, prev); ok {
				logger.Info("Using fallback exchange rate",
					slog.String("currency", currencyCode),
					slog.String("requested", day.Format("2006-01-02")),
					slog.String("used", prev.Format("2006-01-02")))
				return rate, nil
			}
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %s on %s", ErrRateUnavailable, currencyCode, day.Format("2006-01-02"))
}
