package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	portsrepo "github.com/obveznik/obveznik_backend/internal/core/ports/repositories"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/middleware"
)

// projectionHorizons are the forward windows, in days, reported to the caller.
var projectionHorizons = []int{7, 15, 30}

// limitService computes a firm's position against the lump-sum revenue limits
// from the reporting repository's revenue aggregates.
type limitService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	firmRepo      portsrepo.FirmRepositoryFacade
}

// NewLimitService creates a new LimitService.
func NewLimitService(reportingRepo portsrepo.ReportingRepositoryFacade, firmRepo portsrepo.FirmRepositoryFacade) portssvc.LimitSvcFacade {
	return &limitService{reportingRepo: reportingRepo, firmRepo: firmRepo}
}

var _ portssvc.LimitSvcFacade = (*limitService)(nil)

// GetLimitStatus reports calendar-year and trailing-365-day revenue along with
// sliding-window projections, evaluated as of the given instant.
//
// A projection for horizon h asks: how much room is left in the 365-day window
// that ends h days from now? That window spans [asOf-(365-h), asOf+h], so
// already-issued invoices dated inside the horizon count against it.
func (s *limitService) GetLimitStatus(ctx context.Context, firmID string, asOf time.Time) (*domain.LimitStatus, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.firmRepo.FindFirmByID(ctx, firmID); err != nil {
		return nil, err
	}

	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearRevenue, err := s.reportingRepo.SumIssuedRevenue(ctx, firmID, yearStart, asOf)
	if err != nil {
		logger.Error("Failed to sum calendar-year revenue", slog.String("error", err.Error()), slog.String("firm_id", firmID))
		return nil, fmt.Errorf("failed to sum calendar-year revenue: %w", err)
	}

	trailingStart := asOf.AddDate(0, 0, -365)
	trailingRevenue, err := s.reportingRepo.SumIssuedRevenue(ctx, firmID, trailingStart, asOf)
	if err != nil {
		logger.Error("Failed to sum trailing revenue", slog.String("error", err.Error()), slog.String("firm_id", firmID))
		return nil, fmt.Errorf("failed to sum trailing revenue: %w", err)
	}

	status := &domain.LimitStatus{
		FirmID:               firmID,
		YearRevenue:          yearRevenue,
		YearRemaining:        domain.YearlyLimit.Sub(yearRevenue),
		Trailing365Revenue:   trailingRevenue,
		Trailing365Remaining: domain.RollingLimit365.Sub(trailingRevenue),
		Projections:          make([]domain.LimitProjection, 0, len(projectionHorizons)),
	}

	for _, h := range projectionHorizons {
		windowStart := asOf.AddDate(0, 0, -(365 - h))
		windowEnd := asOf.AddDate(0, 0, h)
		windowRevenue, err := s.reportingRepo.SumIssuedRevenue(ctx, firmID, windowStart, windowEnd)
		if err != nil {
			logger.Error("Failed to sum projection window revenue", slog.String("error", err.Error()), slog.String("firm_id", firmID), slog.Int("horizon_days", h))
			return nil, fmt.Errorf("failed to sum projection window revenue: %w", err)
		}
		remaining := domain.RollingLimit365.Sub(windowRevenue)
		status.Projections = append(status.Projections, domain.LimitProjection{
			HorizonDays: h,
			Remaining:   remaining,
			OverLimit:   remaining.IsNegative(),
		})
	}

	return status, nil
}
