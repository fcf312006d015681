package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/obveznik/obveznik_backend/internal/apperrors"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/core/services"
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchDailyRates(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Mock RateCache ---
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) Get(ctx context.Context, currency string, date time.Time) (decimal.Decimal, bool) {
	args := m.Called(ctx, currency, date)
	return args.Get(0).(decimal.Decimal), args.Bool(1)
}

func (m *MockRateCache) Set(ctx context.Context, currency string, date time.Time, rate decimal.Decimal, ttl time.Duration) {
	m.Called(ctx, currency, date, rate, ttl)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockSource *MockRateSource
	mockCache  *MockRateCache
	service    portssvc.ExchangeRateSvcFacade

	day time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.mockCache = new(MockRateCache)
	suite.service = services.NewExchangeRateService(suite.mockSource, suite.mockCache)
	suite.day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_CacheHit() {
	ctx := context.Background()
	rate := decimal.RequireFromString("117.5432")

	suite.mockCache.On("Get", ctx, "EUR", suite.day).Return(rate, true).Once()

	got, err := suite.service.GetRate(ctx, "EUR", suite.day)

	suite.Require().NoError(err)
	suite.True(rate.Equal(got))
	suite.mockSource.AssertNotCalled(suite.T(), "FetchDailyRates", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_FetchCachesWholeList() {
	ctx := context.Background()
	eur := decimal.RequireFromString("117.5432")
	usd := decimal.RequireFromString("108.2000")
	rates := map[string]decimal.Decimal{"EUR": eur, "USD": usd}

	suite.mockCache.On("Get", ctx, "EUR", suite.day).Return(decimal.Zero, false).Once()
	suite.mockSource.On("FetchDailyRates", ctx, suite.day).Return(rates, nil).Once()
	suite.mockCache.On("Set", ctx, "EUR", suite.day, eur, mock.AnythingOfType("time.Duration")).Return().Once()
	suite.mockCache.On("Set", ctx, "USD", suite.day, usd, mock.AnythingOfType("time.Duration")).Return().Once()

	got, err := suite.service.GetRate(ctx, "EUR", suite.day)

	suite.Require().NoError(err)
	suite.True(eur.Equal(got))
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_FallbackWalk() {
	ctx := context.Background()
	rate := decimal.RequireFromString("117.2100")

	suite.mockCache.On("Get", ctx, "EUR", suite.day).Return(decimal.Zero, false).Once()
	suite.mockSource.On("FetchDailyRates", ctx, suite.day).Return(nil, assert.AnError).Once()
	// Saturday and Sunday miss, Friday hits.
	suite.mockCache.On("Get", ctx, "EUR", suite.day.AddDate(0, 0, -1)).Return(decimal.Zero, false).Once()
	suite.mockCache.On("Get", ctx, "EUR", suite.day.AddDate(0, 0, -2)).Return(decimal.Zero, false).Once()
	suite.mockCache.On("Get", ctx, "EUR", suite.day.AddDate(0, 0, -3)).Return(rate, true).Once()

	got, err := suite.service.GetRate(ctx, "EUR", suite.day)

	suite.Require().NoError(err)
	suite.True(rate.Equal(got))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_UnavailableAfterFullWalk() {
	ctx := context.Background()

	suite.mockCache.On("Get", ctx, "EUR", suite.day).Return(decimal.Zero, false).Once()
	suite.mockSource.On("FetchDailyRates", ctx, suite.day).Return(nil, assert.AnError).Once()
	for i := 1; i <= 7; i++ {
		suite.mockCache.On("Get", ctx, "EUR", suite.day.AddDate(0, 0, -i)).Return(decimal.Zero, false).Once()
	}

	_, err := suite.service.GetRate(ctx, "EUR", suite.day)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRateUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_CurrencyMissingFromList() {
	ctx := context.Background()
	rates := map[string]decimal.Decimal{"EUR": decimal.RequireFromString("117.5432")}

	suite.mockCache.On("Get", ctx, "CHF", suite.day).Return(decimal.Zero, false).Once()
	suite.mockSource.On("FetchDailyRates", ctx, suite.day).Return(rates, nil).Once()
	suite.mockCache.On("Set", ctx, "EUR", suite.day, rates["EUR"], mock.AnythingOfType("time.Duration")).Return().Once()
	for i := 1; i <= 7; i++ {
		suite.mockCache.On("Get", ctx, "CHF", suite.day.AddDate(0, 0, -i)).Return(decimal.Zero, false).Once()
	}

	_, err := suite.service.GetRate(ctx, "CHF", suite.day)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRateUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_UnsupportedCurrencyRejectedBeforeIO() {
	ctx := context.Background()

	_, err := suite.service.GetRate(ctx, "JPY", suite.day)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSource.AssertNotCalled(suite.T(), "FetchDailyRates", mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_DomesticCurrencyRejected() {
	ctx := context.Background()

	_, err := suite.service.GetRate(ctx, "RSD", suite.day)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
