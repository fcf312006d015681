package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/obveznik/obveznik_backend/internal/apperrors"
	"github.com/obveznik/obveznik_backend/internal/core/domain"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumIssuedRevenue(ctx context.Context, firmID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, firmID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type LimitServiceTestSuite struct {
	suite.Suite
	mockReporting *MockReportingRepository
	mockFirmRepo  *MockFirmRepository
	service       portssvc.LimitSvcFacade

	firmID string
	asOf   time.Time
}

func (suite *LimitServiceTestSuite) SetupTest() {
	suite.mockReporting = new(MockReportingRepository)
	suite.mockFirmRepo = new(MockFirmRepository)
	suite.service = services.NewLimitService(suite.mockReporting, suite.mockFirmRepo)
	suite.firmID = uuid.NewString()
	suite.asOf = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func (suite *LimitServiceTestSuite) TestGetLimitStatus_Success() {
	ctx := context.Background()
	yearStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearRevenue := decimal.NewFromInt(2_500_000)
	trailingRevenue := decimal.NewFromInt(4_000_000)

	suite.mockFirmRepo.On("FindFirmByID", ctx, suite.firmID).Return(&domain.Firm{FirmID: suite.firmID, IsActive: true}, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, yearStart, suite.asOf).Return(yearRevenue, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, suite.asOf.AddDate(0, 0, -365), suite.asOf).Return(trailingRevenue, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, suite.asOf.AddDate(0, 0, -(365-7)), suite.asOf.AddDate(0, 0, 7)).Return(decimal.NewFromInt(3_900_000), nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, suite.asOf.AddDate(0, 0, -(365-15)), suite.asOf.AddDate(0, 0, 15)).Return(decimal.NewFromInt(3_800_000), nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, suite.asOf.AddDate(0, 0, -(365-30)), suite.asOf.AddDate(0, 0, 30)).Return(decimal.NewFromInt(3_500_000), nil).Once()

	status, err := suite.service.GetLimitStatus(ctx, suite.firmID, suite.asOf)

	suite.Require().NoError(err)
	suite.Equal(suite.firmID, status.FirmID)
	suite.True(yearRevenue.Equal(status.YearRevenue))
	suite.True(decimal.NewFromInt(3_500_000).Equal(status.YearRemaining))
	suite.True(trailingRevenue.Equal(status.Trailing365Revenue))
	suite.True(decimal.NewFromInt(4_000_000).Equal(status.Trailing365Remaining))

	suite.Require().Len(status.Projections, 3)
	suite.Equal(7, status.Projections[0].HorizonDays)
	suite.True(decimal.NewFromInt(4_100_000).Equal(status.Projections[0].Remaining))
	suite.False(status.Projections[0].OverLimit)
	suite.Equal(15, status.Projections[1].HorizonDays)
	suite.True(decimal.NewFromInt(4_200_000).Equal(status.Projections[1].Remaining))
	suite.Equal(30, status.Projections[2].HorizonDays)
	suite.True(decimal.NewFromInt(4_500_000).Equal(status.Projections[2].Remaining))

	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *LimitServiceTestSuite) TestGetLimitStatus_OverLimitProjection() {
	ctx := context.Background()
	yearStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	over := decimal.NewFromInt(8_200_000)

	suite.mockFirmRepo.On("FindFirmByID", ctx, suite.firmID).Return(&domain.Firm{FirmID: suite.firmID, IsActive: true}, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, yearStart, suite.asOf).Return(decimal.NewFromInt(5_000_000), nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, suite.asOf.AddDate(0, 0, -365), suite.asOf).Return(over, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(over, nil).Times(3)

	status, err := suite.service.GetLimitStatus(ctx, suite.firmID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(status.Trailing365Remaining.IsNegative())
	for _, p := range status.Projections {
		suite.True(p.OverLimit)
		suite.True(decimal.NewFromInt(-200_000).Equal(p.Remaining))
	}
}

func (suite *LimitServiceTestSuite) TestGetLimitStatus_FutureInvoiceCountsInProjection() {
	ctx := context.Background()
	yearStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	trailingRevenue := decimal.NewFromInt(4_000_000)
	// An issued invoice dated three days ahead of asOf adds 50,000 to every
	// projection window but not to the trailing window.
	withFuture := decimal.NewFromInt(4_050_000)

	suite.mockFirmRepo.On("FindFirmByID", ctx, suite.firmID).Return(&domain.Firm{FirmID: suite.firmID, IsActive: true}, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, yearStart, suite.asOf).Return(trailingRevenue, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, suite.asOf.AddDate(0, 0, -365), suite.asOf).Return(trailingRevenue, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, suite.asOf.AddDate(0, 0, -(365-7)), suite.asOf.AddDate(0, 0, 7)).Return(withFuture, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, suite.asOf.AddDate(0, 0, -(365-15)), suite.asOf.AddDate(0, 0, 15)).Return(withFuture, nil).Once()
	suite.mockReporting.On("SumIssuedRevenue", ctx, suite.firmID, suite.asOf.AddDate(0, 0, -(365-30)), suite.asOf.AddDate(0, 0, 30)).Return(withFuture, nil).Once()

	status, err := suite.service.GetLimitStatus(ctx, suite.firmID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(4_000_000).Equal(status.Trailing365Remaining))
	suite.Require().Len(status.Projections, 3)
	for _, p := range status.Projections {
		suite.True(decimal.NewFromInt(3_950_000).Equal(p.Remaining), "horizon %d got %s", p.HorizonDays, p.Remaining)
	}
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *LimitServiceTestSuite) TestGetLimitStatus_FirmNotFound() {
	ctx := context.Background()

	suite.mockFirmRepo.On("FindFirmByID", ctx, suite.firmID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetLimitStatus(ctx, suite.firmID, suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReporting.AssertNotCalled(suite.T(), "SumIssuedRevenue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLimitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LimitServiceTestSuite))
}
