package dto

import (
	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LimitProjectionResponse is the forward-looking remaining room for one horizon.
type LimitProjectionResponse struct {
	HorizonDays int             `json:"horizonDays"`
	Remaining   decimal.Decimal `json:"remaining"`
	OverLimit   bool            `json:"overLimit"`
}

// LimitStatusResponse reports a firm's position against both revenue limits.
type LimitStatusResponse struct {
	FirmID               string                    `json:"firmID"`
	YearRevenue          decimal.Decimal           `json:"yearRevenue"`
	YearRemaining        decimal.Decimal           `json:"yearRemaining"`
	Trailing365Revenue   decimal.Decimal           `json:"trailing365Revenue"`
	Trailing365Remaining decimal.Decimal           `json:"trailing365Remaining"`
	Projections          []LimitProjectionResponse `json:"projections"`
}

// ToLimitStatusResponse converts a domain.LimitStatus to its response DTO.
func ToLimitStatusResponse(s *domain.LimitStatus) LimitStatusResponse {
	resp := LimitStatusResponse{
		FirmID:               s.FirmID,
		YearRevenue:          s.YearRevenue,
		YearRemaining:        s.YearRemaining,
		Trailing365Revenue:   s.Trailing365Revenue,
		Trailing365Remaining: s.Trailing365Remaining,
		Projections:          make([]LimitProjectionResponse, len(s.Projections)),
	}
	for i, p := range s.Projections {
		resp.Projections[i] = LimitProjectionResponse{
			HorizonDays: p.HorizonDays,
			Remaining:   p.Remaining,
			OverLimit:   p.OverLimit,
		}
	}
	return resp
}
