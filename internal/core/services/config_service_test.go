package services_test

import (
	"context"
	"testing"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/core/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FinanceConfigRepository ---
type MockFinanceConfigRepository struct {
	mock.Mock
}

func (m *MockFinanceConfigRepository) FindConfig(ctx context.Context, organizationID string) (*domain.OrgFinanceConfig, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgFinanceConfig), args.Error(1)
}

func (m *MockFinanceConfigRepository) SaveConfig(ctx context.Context, config domain.OrgFinanceConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockFinanceConfigRepository) UpdateConfig(ctx context.Context, config domain.OrgFinanceConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// --- Test Suite ---
type ConfigServiceTestSuite struct {
	suite.Suite
	mockRepo *MockFinanceConfigRepository
	service  portssvc.ConfigSvcFacade
	actor    domain.Actor
}

func (suite *ConfigServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFinanceConfigRepository)
	suite.service = services.NewConfigService(suite.mockRepo)
	suite.actor = newActor(domain.RoleAdmin)
}

// --- Test Cases ---

func (suite *ConfigServiceTestSuite) TestGetConfig_Existing() {
	ctx := context.Background()
	expected := defaultConfig(suite.actor.OrganizationID)

	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(expected, nil).Once()

	cfg, err := suite.service.GetConfig(ctx, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(expected, cfg)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveConfig", mock.Anything, mock.Anything)
}

func (suite *ConfigServiceTestSuite) TestGetConfig_SeedsDefaultsOnFirstAccess() {
	ctx := context.Background()
	seeded := defaultConfig(suite.actor.OrganizationID)

	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveConfig", ctx, mock.MatchedBy(func(c domain.OrgFinanceConfig) bool {
		return c.OrganizationID == suite.actor.OrganizationID &&
			len(c.FundingSources) == len(domain.DefaultFundingSources) &&
			len(c.CostCenters) == len(domain.DefaultCostCenters) &&
			c.DirectorThreshold.Equal(domain.DefaultDirectorThreshold) &&
			c.CreatedBy == suite.actor.UserID
	})).Return(nil).Once()
	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(seeded, nil).Once()

	cfg, err := suite.service.GetConfig(ctx, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultFundingSources, cfg.FundingSources)
	suite.Equal(domain.DefaultCostCenters, cfg.CostCenters)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConfigServiceTestSuite) TestGetConfig_ConcurrentSeedLosesGracefully() {
	ctx := context.Background()
	winner := defaultConfig(suite.actor.OrganizationID)

	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(nil, apperrors.ErrNotFound).Once()
	// The concurrent insert is a repository no-op; the follow-up read returns
	// whichever row won.
	suite.mockRepo.On("SaveConfig", ctx, mock.AnythingOfType("domain.OrgFinanceConfig")).
		Return(nil).Once()
	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(winner, nil).Once()

	cfg, err := suite.service.GetConfig(ctx, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(winner, cfg)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_ReplacesListsWholesale() {
	ctx := context.Background()
	sources := []string{"World Bank", "GIZ"}
	centers := []string{"Field Work"}

	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(defaultConfig(suite.actor.OrganizationID), nil).Once()
	suite.mockRepo.On("UpdateConfig", ctx, mock.MatchedBy(func(c domain.OrgFinanceConfig) bool {
		return len(c.FundingSources) == 2 && c.FundingSources[1] == "GIZ" &&
			len(c.CostCenters) == 1 && c.CostCenters[0] == "Field Work" &&
			c.LastUpdatedBy == suite.actor.UserID
	})).Return(nil).Once()

	cfg, err := suite.service.UpdateConfig(ctx, suite.actor, dto.UpdateFinanceConfigRequest{
		FundingSources: &sources,
		CostCenters:    &centers,
	})

	suite.Require().NoError(err)
	suite.Equal([]string{"World Bank", "GIZ"}, cfg.FundingSources)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_TrimsEntries() {
	ctx := context.Background()
	sources := []string{"  World Bank  ", "GIZ"}

	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(defaultConfig(suite.actor.OrganizationID), nil).Once()
	suite.mockRepo.On("UpdateConfig", ctx, mock.MatchedBy(func(c domain.OrgFinanceConfig) bool {
		return c.FundingSources[0] == "World Bank"
	})).Return(nil).Once()

	cfg, err := suite.service.UpdateConfig(ctx, suite.actor, dto.UpdateFinanceConfigRequest{FundingSources: &sources})

	suite.Require().NoError(err)
	suite.Equal("World Bank", cfg.FundingSources[0])
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_RejectsDuplicates() {
	ctx := context.Background()
	sources := []string{"USAID", "USAID"}

	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(defaultConfig(suite.actor.OrganizationID), nil).Once()

	cfg, err := suite.service.UpdateConfig(ctx, suite.actor, dto.UpdateFinanceConfigRequest{FundingSources: &sources})

	suite.Require().Error(err)
	suite.Nil(cfg)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateConfig", mock.Anything, mock.Anything)
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_RejectsEmptyEntry() {
	ctx := context.Background()
	centers := []string{"Programs", "  "}

	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(defaultConfig(suite.actor.OrganizationID), nil).Once()

	cfg, err := suite.service.UpdateConfig(ctx, suite.actor, dto.UpdateFinanceConfigRequest{CostCenters: &centers})

	suite.Require().Error(err)
	suite.Nil(cfg)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_RejectsNegativeThreshold() {
	ctx := context.Background()
	threshold := decimal.NewFromInt(-1)

	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(defaultConfig(suite.actor.OrganizationID), nil).Once()

	cfg, err := suite.service.UpdateConfig(ctx, suite.actor, dto.UpdateFinanceConfigRequest{DirectorThreshold: &threshold})

	suite.Require().Error(err)
	suite.Nil(cfg)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateConfig", mock.Anything, mock.Anything)
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_RejectsNegativeAllocation() {
	ctx := context.Background()
	allocations := map[string]decimal.Decimal{"USAID": decimal.NewFromInt(-500)}

	suite.mockRepo.On("FindConfig", ctx, suite.actor.OrganizationID).
		Return(defaultConfig(suite.actor.OrganizationID), nil).Once()

	cfg, err := suite.service.UpdateConfig(ctx, suite.actor, dto.UpdateFinanceConfigRequest{FundingAllocations: &allocations})

	suite.Require().Error(err)
	suite.Nil(cfg)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestConfigServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigServiceTestSuite))
}
