package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
	"github.com/bizrecords/ledger_backend/internal/core/services"
	"github.com/bizrecords/ledger_backend/internal/dto"
)

type ReceivableServiceTestSuite struct {
	suite.Suite
	mockReceivableRepo *MockReceivableRepository
	mockAccountRepo    *MockAccountRepository
	service            portssvc.ReceivableSvcFacade
	contactAccount     domain.Account
	cashAccount        domain.Account
	userID             string
}

func (suite *ReceivableServiceTestSuite) SetupTest() {
	suite.mockReceivableRepo = new(MockReceivableRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReceivableService(suite.mockReceivableRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.contactAccount = domain.Account{
		AccountID:       uuid.NewString(),
		Name:            "Acme Corp",
		AccountableType: domain.Contact,
		CurrencyCode:    "USD",
		IsActive:        true,
	}
	suite.cashAccount = domain.Account{
		AccountID:       uuid.NewString(),
		Name:            "Cash",
		AccountableType: domain.MoneyStore,
		CurrencyCode:    "USD",
		IsActive:        true,
	}
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_Success() {
	ctx := context.Background()
	req := dto.CreateReceivableRequest{
		Name:         "I-0001",
		ContactID:    suite.contactAccount.AccountID,
		CurrencyCode: "USD",
		Total:        decimal.NewFromInt(120),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.contactAccount.AccountID).Return(&suite.contactAccount, nil).Once()
	suite.mockReceivableRepo.On("SaveReceivable", ctx, mock.AnythingOfType("domain.Receivable")).Return(nil).Once()

	receivable, err := suite.service.CreateReceivable(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(receivable.ReceivableID)
	suite.Equal(domain.ReceivableApproved, receivable.State)
	suite.True(receivable.Balance.Equal(receivable.Total))
	suite.True(receivable.Outstanding())
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_NonContactRejected() {
	ctx := context.Background()
	req := dto.CreateReceivableRequest{
		Name:         "I-0002",
		ContactID:    suite.cashAccount.AccountID,
		CurrencyCode: "USD",
		Total:        decimal.NewFromInt(120),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()

	_, err := suite.service.CreateReceivable(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var errs apperrors.ValidationErrors
	suite.Require().ErrorAs(err, &errs)
	code, ok := errs.ForField("contactID")
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeInclusion, code)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "SaveReceivable", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_NonPositiveTotal() {
	ctx := context.Background()
	req := dto.CreateReceivableRequest{
		Name:         "I-0003",
		ContactID:    suite.contactAccount.AccountID,
		CurrencyCode: "USD",
		Total:        decimal.Zero,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.contactAccount.AccountID).Return(&suite.contactAccount, nil).Once()

	_, err := suite.service.CreateReceivable(ctx, req, suite.userID)

	suite.Require().Error(err)
	var errs apperrors.ValidationErrors
	suite.Require().ErrorAs(err, &errs)
	code, ok := errs.ForField("total")
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeInclusion, code)
}

func TestReceivableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceivableServiceTestSuite))
}
