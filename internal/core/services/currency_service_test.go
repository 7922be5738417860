package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
	"github.com/bizrecords/ledger_backend/internal/core/services"
	"github.com/bizrecords/ledger_backend/internal/dto"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.CurrencySvcFacade
	userID           string
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.userID = uuid.NewString()
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_UppercasesCode() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "usd", Symbol: "$", Name: "US Dollar"}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCurrencyRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "USD"
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("USD", currency.CurrencyCode)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}
	existing := domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&existing, nil).Once()

	_, err := suite.service.CreateCurrency(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_Uppercases() {
	ctx := context.Background()
	existing := domain.Currency{CurrencyCode: "EUR", Symbol: "€", Name: "Euro"}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&existing, nil).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "eur")

	suite.Require().NoError(err)
	suite.Equal("EUR", currency.CurrencyCode)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
