package services

import (
	"context"
	"time"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
)

// LimitSvcFacade computes a firm's position against the lump-sum revenue
// limits.
type LimitSvcFacade interface {
	// GetLimitStatus reports calendar-year and trailing-365-day revenue along
	// with sliding-window projections, evaluated as of the given instant.
	GetLimitStatus(ctx context.Context, firmID string, asOf time.Time) (*domain.LimitStatus, error)
}
