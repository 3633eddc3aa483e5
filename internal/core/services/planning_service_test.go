package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/core/planning"
	portssvc "github.com/finsight/backend/internal/core/ports/services"
	"github.com/finsight/backend/internal/core/services"
	"github.com/finsight/backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock StreamReader ---
type MockStreamReader struct {
	mock.Mock
}

func (m *MockStreamReader) FindStreamByID(ctx context.Context, streamID string) (*domain.CashFlowStream, error) {
	args := m.Called(ctx, streamID)
	var stream *domain.CashFlowStream
	if args.Get(0) != nil {
		stream = args.Get(0).(*domain.CashFlowStream)
	}
	return stream, args.Error(1)
}

func (m *MockStreamReader) ListStreamsByUser(ctx context.Context, userID string, limit int, nextToken *string, includeInactive bool) ([]domain.CashFlowStream, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken, includeInactive)
	var streams []domain.CashFlowStream
	if args.Get(0) != nil {
		streams = args.Get(0).([]domain.CashFlowStream)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return streams, token, args.Error(2)
}

func (m *MockStreamReader) FindActiveStreamsInWindow(ctx context.Context, userID string, asOf time.Time) ([]domain.CashFlowStream, error) {
	args := m.Called(ctx, userID, asOf)
	var streams []domain.CashFlowStream
	if args.Get(0) != nil {
		streams = args.Get(0).([]domain.CashFlowStream)
	}
	return streams, args.Error(1)
}

// --- Mock EntryReader ---
type MockEntryReader struct {
	mock.Mock
}

func (m *MockEntryReader) FindEntryByID(ctx context.Context, entryID string) (*domain.OneTimeEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.OneTimeEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.OneTimeEntry)
	}
	return entry, args.Error(1)
}

func (m *MockEntryReader) ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.OneTimeEntry, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var entries []domain.OneTimeEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.OneTimeEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockEntryReader) FindEntriesUpTo(ctx context.Context, userID string, asOf time.Time) ([]domain.OneTimeEntry, error) {
	args := m.Called(ctx, userID, asOf)
	var entries []domain.OneTimeEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.OneTimeEntry)
	}
	return entries, args.Error(1)
}

// --- Mock SnapshotRepository ---
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) FindSnapshot(ctx context.Context, userID string, month time.Time) (*domain.MonthlySnapshot, error) {
	args := m.Called(ctx, userID, month)
	var snapshot *domain.MonthlySnapshot
	if args.Get(0) != nil {
		snapshot = args.Get(0).(*domain.MonthlySnapshot)
	}
	return snapshot, args.Error(1)
}

func (m *MockSnapshotRepository) ListSnapshotsByUser(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlySnapshot, error) {
	args := m.Called(ctx, userID, from, to)
	var snapshots []domain.MonthlySnapshot
	if args.Get(0) != nil {
		snapshots = args.Get(0).([]domain.MonthlySnapshot)
	}
	return snapshots, args.Error(1)
}

func (m *MockSnapshotRepository) FindLatestSnapshotBefore(ctx context.Context, userID string, month time.Time) (*domain.MonthlySnapshot, error) {
	args := m.Called(ctx, userID, month)
	var snapshot *domain.MonthlySnapshot
	if args.Get(0) != nil {
		snapshot = args.Get(0).(*domain.MonthlySnapshot)
	}
	return snapshot, args.Error(1)
}

func (m *MockSnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot domain.MonthlySnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// --- Test Suite ---
type PlanningServiceTestSuite struct {
	suite.Suite
	mockStreamRepo   *MockStreamReader
	mockEntryRepo    *MockEntryReader
	mockGoalRepo     *MockGoalRepository
	mockSnapshotRepo *MockSnapshotRepository
	service          portssvc.PlanningSvcFacade
}

func (suite *PlanningServiceTestSuite) SetupTest() {
	suite.mockStreamRepo = new(MockStreamReader)
	suite.mockEntryRepo = new(MockEntryReader)
	suite.mockGoalRepo = new(MockGoalRepository)
	suite.mockSnapshotRepo = new(MockSnapshotRepository)
	suite.service = services.NewPlanningService(
		suite.mockStreamRepo,
		suite.mockEntryRepo,
		suite.mockGoalRepo,
		suite.mockSnapshotRepo,
	)
}

// --- GetBalance Tests ---
func (suite *PlanningServiceTestSuite) TestGetBalance_EntriesAndContributions() {
	ctx := context.Background()
	userID := uuid.NewString()
	asOf := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	entries := []domain.OneTimeEntry{
		{
			EntryID: uuid.NewString(), UserID: userID, Kind: domain.FlowIncome,
			Amount: decimal.NewFromInt(5000), Date: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			EntryID: uuid.NewString(), UserID: userID, Kind: domain.FlowExpense,
			Amount: decimal.NewFromInt(1200), Date: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	contributions := []domain.GoalContribution{
		{
			ContributionID: uuid.NewString(), GoalID: uuid.NewString(),
			Amount: decimal.NewFromInt(300), Month: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	suite.mockStreamRepo.On("FindActiveStreamsInWindow", ctx, userID, asOf).Return([]domain.CashFlowStream{}, nil).Once()
	suite.mockEntryRepo.On("FindEntriesUpTo", ctx, userID, asOf).Return(entries, nil).Once()
	suite.mockGoalRepo.On("FindContributionsByUserUpTo", ctx, userID, asOf).Return(contributions, nil).Once()

	balance, err := suite.service.GetBalance(ctx, userID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(3500)), "expected 3500, got %s", balance)
	suite.mockStreamRepo.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *PlanningServiceTestSuite) TestGetBalance_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()
	asOf := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	suite.mockStreamRepo.On("FindActiveStreamsInWindow", ctx, userID, asOf).Return(nil, assert.AnError).Once()

	balance, err := suite.service.GetBalance(ctx, userID, asOf)

	suite.Require().Error(err)
	suite.True(balance.IsZero())
	suite.ErrorIs(err, assert.AnError)
	suite.mockStreamRepo.AssertExpectations(suite.T())
}

// --- ComputeSnapshot Tests ---
func (suite *PlanningServiceTestSuite) TestComputeSnapshot_FirstMonth() {
	ctx := context.Background()
	userID := uuid.NewString()
	month := time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	streams := []domain.CashFlowStream{
		{
			StreamID: uuid.NewString(), UserID: userID, Name: "Salary",
			Kind: domain.FlowIncome, Amount: decimal.NewFromInt(5000),
			Frequency:  domain.FrequencyMonthly,
			ActiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:   true,
		},
	}
	entries := []domain.OneTimeEntry{
		{
			EntryID: uuid.NewString(), UserID: userID, Kind: domain.FlowExpense,
			Amount: decimal.NewFromInt(2000), Date: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		},
	}
	goals := []domain.Goal{
		{
			GoalID: uuid.NewString(), UserID: userID,
			TargetAmount:  decimal.NewFromInt(1000),
			CurrentAmount: decimal.NewFromInt(500),
		},
	}

	suite.mockStreamRepo.On("FindActiveStreamsInWindow", ctx, userID, mock.AnythingOfType("time.Time")).Return(streams, nil).Once()
	suite.mockEntryRepo.On("FindEntriesUpTo", ctx, userID, mock.AnythingOfType("time.Time")).Return(entries, nil).Once()
	suite.mockGoalRepo.On("FindGoalsByUser", ctx, userID).Return(goals, nil).Once()
	suite.mockSnapshotRepo.On("FindLatestSnapshotBefore", ctx, userID, monthStart).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.MatchedBy(func(s domain.MonthlySnapshot) bool {
		return s.UserID == userID && s.Month.Equal(monthStart)
	})).Return(nil).Once()

	snapshot, err := suite.service.ComputeSnapshot(ctx, userID, month)

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.True(snapshot.TotalIncome.Equal(decimal.NewFromInt(5000)))
	suite.True(snapshot.TotalExpenses.Equal(decimal.NewFromInt(2000)))
	suite.True(snapshot.TotalSavings.Equal(decimal.NewFromInt(3000)))
	suite.InDelta(40.0, snapshot.BurnRate, 0.0001)
	suite.InDelta(60.0, snapshot.SavingsRate, 0.0001)
	// 0.5*60 + 0.3*(100-40) + 0.2*50 = 58
	suite.InDelta(58.0, snapshot.HealthScore, 0.0001)
	suite.Nil(snapshot.IncomeChangePercent)
	suite.Nil(snapshot.ExpensesChangePercent)
	suite.Nil(snapshot.SavingsChangePercent)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *PlanningServiceTestSuite) TestComputeSnapshot_WithPreviousMonth() {
	ctx := context.Background()
	userID := uuid.NewString()
	month := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	entries := []domain.OneTimeEntry{
		{
			EntryID: uuid.NewString(), UserID: userID, Kind: domain.FlowIncome,
			Amount: decimal.NewFromInt(5000), Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			EntryID: uuid.NewString(), UserID: userID, Kind: domain.FlowExpense,
			Amount: decimal.NewFromInt(2000), Date: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		},
	}
	previous := &domain.MonthlySnapshot{
		UserID:        userID,
		Month:         time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		TotalIncome:   decimal.NewFromInt(4000),
		TotalExpenses: decimal.NewFromInt(2000),
		TotalSavings:  decimal.NewFromInt(2000),
	}

	suite.mockStreamRepo.On("FindActiveStreamsInWindow", ctx, userID, mock.AnythingOfType("time.Time")).Return([]domain.CashFlowStream{}, nil).Once()
	suite.mockEntryRepo.On("FindEntriesUpTo", ctx, userID, mock.AnythingOfType("time.Time")).Return(entries, nil).Once()
	suite.mockGoalRepo.On("FindGoalsByUser", ctx, userID).Return([]domain.Goal{}, nil).Once()
	suite.mockSnapshotRepo.On("FindLatestSnapshotBefore", ctx, userID, month).Return(previous, nil).Once()
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.AnythingOfType("domain.MonthlySnapshot")).Return(nil).Once()

	snapshot, err := suite.service.ComputeSnapshot(ctx, userID, month)

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.Require().NotNil(snapshot.IncomeChangePercent)
	suite.InDelta(25.0, *snapshot.IncomeChangePercent, 0.0001)
	suite.Require().NotNil(snapshot.ExpensesChangePercent)
	suite.InDelta(0.0, *snapshot.ExpensesChangePercent, 0.0001)
	suite.Require().NotNil(snapshot.SavingsChangePercent)
	suite.InDelta(50.0, *snapshot.SavingsChangePercent, 0.0001)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *PlanningServiceTestSuite) TestComputeSnapshot_RecomputeIsIdempotent() {
	ctx := context.Background()
	userID := uuid.NewString()
	month := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	entries := []domain.OneTimeEntry{
		{
			EntryID: uuid.NewString(), UserID: userID, Kind: domain.FlowIncome,
			Amount: decimal.NewFromInt(5000), Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			EntryID: uuid.NewString(), UserID: userID, Kind: domain.FlowExpense,
			Amount: decimal.NewFromInt(2000), Date: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		},
	}
	previous := &domain.MonthlySnapshot{
		UserID:        userID,
		Month:         time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		TotalIncome:   decimal.NewFromInt(4000),
		TotalExpenses: decimal.NewFromInt(2000),
		TotalSavings:  decimal.NewFromInt(2000),
	}

	suite.mockStreamRepo.On("FindActiveStreamsInWindow", ctx, userID, mock.AnythingOfType("time.Time")).Return([]domain.CashFlowStream{}, nil).Twice()
	suite.mockEntryRepo.On("FindEntriesUpTo", ctx, userID, mock.AnythingOfType("time.Time")).Return(entries, nil).Twice()
	suite.mockGoalRepo.On("FindGoalsByUser", ctx, userID).Return([]domain.Goal{}, nil).Twice()
	// Each recompute reads the stored prior month, never the earlier run's output.
	suite.mockSnapshotRepo.On("FindLatestSnapshotBefore", ctx, userID, month).Return(previous, nil).Twice()

	var upserted []domain.MonthlySnapshot
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.MatchedBy(func(s domain.MonthlySnapshot) bool {
		return s.UserID == userID && s.Month.Equal(month)
	})).Run(func(args mock.Arguments) {
		upserted = append(upserted, args.Get(1).(domain.MonthlySnapshot))
	}).Return(nil).Twice()

	first, err := suite.service.ComputeSnapshot(ctx, userID, month)
	suite.Require().NoError(err)
	second, err := suite.service.ComputeSnapshot(ctx, userID, month)
	suite.Require().NoError(err)

	// Same (user, month) key both times, so the upsert replaces the row.
	suite.Require().Len(upserted, 2)
	suite.True(upserted[0].Month.Equal(upserted[1].Month))
	suite.True(upserted[0].TotalIncome.Equal(upserted[1].TotalIncome))
	suite.True(upserted[0].TotalExpenses.Equal(upserted[1].TotalExpenses))
	suite.True(upserted[0].TotalSavings.Equal(upserted[1].TotalSavings))
	suite.InDelta(upserted[0].BurnRate, upserted[1].BurnRate, 1e-9)
	suite.InDelta(upserted[0].SavingsRate, upserted[1].SavingsRate, 1e-9)
	suite.InDelta(upserted[0].HealthScore, upserted[1].HealthScore, 1e-9)

	// Change percents come from the stored July snapshot on both runs.
	suite.Require().NotNil(first.IncomeChangePercent)
	suite.Require().NotNil(second.IncomeChangePercent)
	suite.InDelta(25.0, *first.IncomeChangePercent, 0.0001)
	suite.InDelta(25.0, *second.IncomeChangePercent, 0.0001)
	suite.True(first.TotalSavings.Equal(second.TotalSavings))
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

// --- ProjectBalance Tests ---
func (suite *PlanningServiceTestSuite) TestProjectBalance_InvalidHorizon() {
	ctx := context.Background()

	points, err := suite.service.ProjectBalance(ctx, uuid.NewString(), 0)

	suite.Require().Error(err)
	suite.Nil(points)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStreamRepo.AssertNotCalled(suite.T(), "FindActiveStreamsInWindow", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PlanningServiceTestSuite) TestProjectBalance_LinearWithDecay() {
	ctx := context.Background()
	userID := uuid.NewString()

	// One income entry in the current month: balance 3000, monthly net +3000.
	entries := []domain.OneTimeEntry{
		{
			EntryID: uuid.NewString(), UserID: userID, Kind: domain.FlowIncome,
			Amount: decimal.NewFromInt(3000), Date: planning.MonthStart(time.Now()),
		},
	}

	suite.mockStreamRepo.On("FindActiveStreamsInWindow", ctx, userID, mock.AnythingOfType("time.Time")).Return([]domain.CashFlowStream{}, nil)
	suite.mockEntryRepo.On("FindEntriesUpTo", ctx, userID, mock.AnythingOfType("time.Time")).Return(entries, nil)
	suite.mockGoalRepo.On("FindContributionsByUserUpTo", ctx, userID, mock.AnythingOfType("time.Time")).Return([]domain.GoalContribution{}, nil)

	points, err := suite.service.ProjectBalance(ctx, userID, 3)

	suite.Require().NoError(err)
	suite.Require().Len(points, 3)
	suite.True(points[0].ProjectedBalance.Equal(decimal.NewFromInt(6000)))
	suite.True(points[1].ProjectedBalance.Equal(decimal.NewFromInt(9000)))
	suite.True(points[2].ProjectedBalance.Equal(decimal.NewFromInt(12000)))
	suite.InDelta(0.92, points[0].ConfidenceLevel, 0.0001)
	suite.InDelta(0.89, points[1].ConfidenceLevel, 0.0001)
	suite.InDelta(0.86, points[2].ConfidenceLevel, 0.0001)
	suite.GreaterOrEqual(points[0].ConfidenceLevel, points[2].ConfidenceLevel)
}

// --- GenerateScenarios Tests ---
func (suite *PlanningServiceTestSuite) TestGenerateScenarios_RecommendsClosestTimeline() {
	ctx := context.Background()
	userID := uuid.NewString()
	goalID := uuid.NewString()
	goal := &domain.Goal{
		GoalID:        goalID,
		UserID:        userID,
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(1000),
	}
	entries := []domain.OneTimeEntry{
		{
			EntryID: uuid.NewString(), UserID: userID, Kind: domain.FlowIncome,
			Amount: decimal.NewFromInt(5000), Date: planning.MonthStart(time.Now()),
		},
	}

	suite.mockGoalRepo.On("FindGoalByID", ctx, goalID).Return(goal, nil).Once()
	suite.mockStreamRepo.On("FindActiveStreamsInWindow", ctx, userID, mock.AnythingOfType("time.Time")).Return([]domain.CashFlowStream{}, nil).Once()
	suite.mockEntryRepo.On("FindEntriesUpTo", ctx, userID, mock.AnythingOfType("time.Time")).Return(entries, nil).Once()

	req := dto.ScenarioRequest{DesiredTimelineMonths: 9}
	resp, err := suite.service.GenerateScenarios(ctx, goalID, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.Scenarios)
	// Remaining 9000 at 20% of 5000 income is 1000/month, exactly 9 months.
	suite.Require().NotNil(resp.Recommended)
	suite.InDelta(0.20, resp.Recommended.SavingsRate, 0.0001)
	suite.Equal(9, resp.Recommended.TimelineMonths)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *PlanningServiceTestSuite) TestGenerateScenarios_Forbidden() {
	ctx := context.Background()
	goalID := uuid.NewString()
	goal := &domain.Goal{GoalID: goalID, UserID: uuid.NewString()}

	suite.mockGoalRepo.On("FindGoalByID", ctx, goalID).Return(goal, nil).Once()

	resp, err := suite.service.GenerateScenarios(ctx, goalID, dto.ScenarioRequest{DesiredTimelineMonths: 12}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

// --- ForecastGoalAsset Tests ---
func (suite *PlanningServiceTestSuite) TestForecastGoalAsset_NoAssetParams() {
	ctx := context.Background()
	userID := uuid.NewString()
	goalID := uuid.NewString()
	goal := &domain.Goal{GoalID: goalID, UserID: userID, TargetAmount: decimal.NewFromInt(1000)}

	suite.mockGoalRepo.On("FindGoalByID", ctx, goalID).Return(goal, nil).Once()

	forecast, err := suite.service.ForecastGoalAsset(ctx, goalID, 12, userID)

	suite.Require().Error(err)
	suite.Nil(forecast)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestPlanningService(t *testing.T) {
	suite.Run(t, new(PlanningServiceTestSuite))
}
