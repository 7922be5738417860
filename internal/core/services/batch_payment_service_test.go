package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	portsrepo "github.com/bizrecords/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
	"github.com/bizrecords/ledger_backend/internal/core/services"
	"github.com/bizrecords/ledger_backend/internal/dto"
)

// --- Mock ReceivableRepository ---
type MockReceivableRepository struct {
	mock.Mock
}

var _ portsrepo.ReceivableRepositoryFacade = (*MockReceivableRepository)(nil)

func (m *MockReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindReceivablesByIDs(ctx context.Context, receivableIDs []string) (map[string]domain.Receivable, error) {
	args := m.Called(ctx, receivableIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ListReceivables(ctx context.Context, limit int, offset int) ([]domain.Receivable, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	args := m.Called(ctx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) SettleInTx(ctx context.Context, tx pgx.Tx, receivableID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, receivableID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type BatchPaymentServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo     *MockLedgerRepository
	mockReceivableRepo *MockReceivableRepository
	mockAccountSvc     *MockAccountReader
	service            portssvc.BatchPaymentSvcFacade
	cashAccount        domain.Account
	contactAccount     domain.Account
	userID             string
}

func (suite *BatchPaymentServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockReceivableRepo = new(MockReceivableRepository)
	suite.mockAccountSvc = new(MockAccountReader)
	suite.service = services.NewBatchPaymentService(suite.mockLedgerRepo, suite.mockReceivableRepo, suite.mockAccountSvc)

	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:       uuid.NewString(),
		Name:            "Cash",
		AccountableType: domain.MoneyStore,
		CurrencyCode:    "USD",
		IsActive:        true,
	}
	suite.contactAccount = domain.Account{
		AccountID:       uuid.NewString(),
		Name:            "Acme Corp",
		AccountableType: domain.Contact,
		CurrencyCode:    "USD",
		IsActive:        true,
	}
}

func (suite *BatchPaymentServiceTestSuite) outstandingReceivable(name string, balance int64) domain.Receivable {
	return domain.Receivable{
		ReceivableID: uuid.NewString(),
		Name:         name,
		ContactID:    suite.contactAccount.AccountID,
		CurrencyCode: "USD",
		Total:        decimal.NewFromInt(balance),
		Balance:      decimal.NewFromInt(balance),
		State:        domain.ReceivableApproved,
	}
}

func (suite *BatchPaymentServiceTestSuite) TestProcessPayments_SettlesAll() {
	ctx := context.Background()
	rec1 := suite.outstandingReceivable("I-0001", 100)
	rec2 := suite.outstandingReceivable("I-0002", 40)
	req := dto.BatchPaymentRequest{
		IDs:       []string{rec1.ReceivableID, rec2.ReceivableID},
		AccountID: suite.cashAccount.AccountID,
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockReceivableRepo.On("FindReceivablesByIDs", ctx, req.IDs).Return(map[string]domain.Receivable{
		rec1.ReceivableID: rec1,
		rec2.ReceivableID: rec2,
	}, nil).Once()

	var savedTxns []domain.LedgerTransaction
	suite.mockLedgerRepo.On("SaveTransactionWithSettlement", ctx, mock.AnythingOfType("domain.LedgerTransaction"), mock.AnythingOfType("[]domain.LedgerDetail"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			savedTxns = append(savedTxns, args.Get(1).(domain.LedgerTransaction))
		}).
		Return(nil).Twice()

	resp, err := suite.service.ProcessPayments(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, resp.Settled)
	suite.Equal(0, resp.Failed)
	suite.Require().Len(resp.Results, 2)
	suite.True(resp.Results[0].Settled)
	suite.True(resp.Results[1].Settled)
	suite.Equal(rec1.ReceivableID, resp.Results[0].ReceivableID)
	suite.NotEmpty(resp.Results[0].TransactionID)

	suite.Require().Len(savedTxns, 2)
	first := savedTxns[0]
	suite.Equal(rec1.ReceivableID, first.AccountID)
	suite.Equal(suite.cashAccount.AccountID, first.ToID)
	suite.Equal(domain.OperationIn, first.Operation)
	suite.False(first.IsMoney)
	suite.True(first.Amount.Equal(decimal.NewFromInt(100)))
	suite.Contains(first.Reference, "I-0001")
	suite.Require().Len(first.Details, 2)
	suite.True(first.Details[0].Amount.Equal(decimal.NewFromInt(100)))
	suite.True(first.Details[1].Amount.Equal(decimal.NewFromInt(-100)))
	suite.True(first.DetailsBalance().IsZero())

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *BatchPaymentServiceTestSuite) TestProcessPayments_PartialFailureContinues() {
	ctx := context.Background()
	recOK := suite.outstandingReceivable("I-0003", 30)
	recPaid := suite.outstandingReceivable("I-0004", 50)
	recPaid.Balance = decimal.Zero
	recPaid.State = domain.ReceivablePaid
	missingID := uuid.NewString()

	req := dto.BatchPaymentRequest{
		IDs:       []string{missingID, recPaid.ReceivableID, recOK.ReceivableID},
		AccountID: suite.cashAccount.AccountID,
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockReceivableRepo.On("FindReceivablesByIDs", ctx, req.IDs).Return(map[string]domain.Receivable{
		recPaid.ReceivableID: recPaid,
		recOK.ReceivableID:   recOK,
	}, nil).Once()
	suite.mockLedgerRepo.On("SaveTransactionWithSettlement", ctx, mock.Anything, mock.Anything, recOK.ReceivableID).Return(nil).Once()

	resp, err := suite.service.ProcessPayments(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Settled)
	suite.Equal(2, resp.Failed)
	suite.Require().Len(resp.Results, 3)
	suite.Equal("receivable not found", resp.Results[0].Error)
	suite.Equal("receivable has no outstanding balance", resp.Results[1].Error)
	suite.True(resp.Results[2].Settled)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BatchPaymentServiceTestSuite) TestProcessPayments_SettlementWriteFailure() {
	ctx := context.Background()
	rec := suite.outstandingReceivable("I-0005", 10)
	req := dto.BatchPaymentRequest{
		IDs:       []string{rec.ReceivableID},
		AccountID: suite.cashAccount.AccountID,
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockReceivableRepo.On("FindReceivablesByIDs", ctx, req.IDs).Return(map[string]domain.Receivable{
		rec.ReceivableID: rec,
	}, nil).Once()
	suite.mockLedgerRepo.On("SaveTransactionWithSettlement", ctx, mock.Anything, mock.Anything, rec.ReceivableID).Return(apperrors.NewAppError(500, "write failed", apperrors.ErrInternal)).Once()

	resp, err := suite.service.ProcessPayments(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Settled)
	suite.Equal(1, resp.Failed)
	suite.Require().Len(resp.Results, 1)
	suite.Equal("settlement failed", resp.Results[0].Error)
}

func (suite *BatchPaymentServiceTestSuite) TestProcessPayments_NonMoneyStoreRefused() {
	ctx := context.Background()
	req := dto.BatchPaymentRequest{
		IDs:       []string{uuid.NewString()},
		AccountID: suite.contactAccount.AccountID,
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.contactAccount.AccountID).Return(&suite.contactAccount, nil).Once()

	_, err := suite.service.ProcessPayments(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotMoneyStore)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "FindReceivablesByIDs", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransactionWithSettlement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BatchPaymentServiceTestSuite) TestProcessPayments_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.BatchPaymentRequest{
		IDs:       []string{uuid.NewString()},
		AccountID: accountID,
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ProcessPayments(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBatchPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BatchPaymentServiceTestSuite))
}
