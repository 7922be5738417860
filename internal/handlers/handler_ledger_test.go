package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
	"github.com/bizrecords/ledger_backend/internal/core/services"
	"github.com/bizrecords/ledger_backend/internal/dto"
	"github.com/bizrecords/ledger_backend/internal/handlers"
	"github.com/bizrecords/ledger_backend/internal/middleware"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateMoney(ctx context.Context, req dto.CreateMoneyRequest, creatorUserID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}
func (m *MockLedgerService) Conciliate(ctx context.Context, transactionID string, approverUserID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, transactionID, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}
func (m *MockLedgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockLedgerService) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLedgerRoutes(v1, suite.mockLedgerService)
}

func (suite *LedgerHandlerTestSuite) authorizedRequest(method, url string, body []byte, userID string) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")
	return req
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestCreateMoney_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	toID := uuid.NewString()

	created := &domain.LedgerTransaction{
		TransactionID: uuid.NewString(),
		Operation:     domain.OperationIn,
		AccountID:     accountID,
		ToID:          toID,
		Amount:        decimal.NewFromInt(100),
		Description:   "Deposit from Acme Corp",
		CurrencyCode:  "USD",
		Status:        domain.StatusActive,
		IsMoney:       true,
		CreatorID:     userID,
	}

	suite.mockLedgerService.On("CreateMoney",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(r dto.CreateMoneyRequest) bool {
			return r.Operation == "in" && r.AccountID == accountID && r.Amount.Equal(decimal.NewFromInt(100))
		}),
		userID,
	).Return(created, nil).Once()

	body, _ := json.Marshal(map[string]any{
		"operation":  "in",
		"account_id": accountID,
		"to_id":      toID,
		"amount":     "100",
	})
	req := suite.authorizedRequest(http.MethodPost, "/api/v1/ledgers", body, userID)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.LedgerTransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal("Deposit from Acme Corp", resp.Description)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateMoney_UnknownFieldRejected() {
	userID := uuid.NewString()

	body, _ := json.Marshal(map[string]any{
		"operation":    "in",
		"account_id":   uuid.NewString(),
		"to_id":        uuid.NewString(),
		"amount":       "100",
		"conciliation": true,
	})
	req := suite.authorizedRequest(http.MethodPost, "/api/v1/ledgers", body, userID)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Errors, "conciliation")
	suite.mockLedgerService.AssertNotCalled(suite.T(), "CreateMoney", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestCreateMoney_ValidationErrorFromService() {
	userID := uuid.NewString()
	errs := apperrors.ValidationErrors{}.Add("to_id", apperrors.CodeInclusion)

	suite.mockLedgerService.On("CreateMoney", mock.Anything, mock.Anything, userID).Return(nil, errs).Once()

	body, _ := json.Marshal(map[string]any{
		"operation":  "in",
		"account_id": uuid.NewString(),
		"to_id":      uuid.NewString(),
		"amount":     "100",
	})
	req := suite.authorizedRequest(http.MethodPost, "/api/v1/ledgers", body, userID)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Errors, "to_id")
}

func (suite *LedgerHandlerTestSuite) TestCreateMoney_Unauthorized() {
	body, _ := json.Marshal(map[string]any{"operation": "in"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/ledgers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "CreateMoney", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestGetTransactionByID_NotFound() {
	userID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockLedgerService.On("GetTransactionByID", mock.Anything, txnID).Return(nil, apperrors.ErrNotFound).Once()

	req := suite.authorizedRequest(http.MethodGet, "/api/v1/ledgers/"+txnID, nil, userID)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_PassesQueryParams() {
	userID := uuid.NewString()
	limit := 5

	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.LedgerTransactionResponse{
			{TransactionID: uuid.NewString(), Operation: "in", Amount: decimal.NewFromInt(10)},
		},
	}

	suite.mockLedgerService.On("ListTransactions",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit
		}),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/ledgers?limit=%d", limit)
	req := suite.authorizedRequest(http.MethodGet, url, nil, userID)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestConciliate_Success() {
	userID := uuid.NewString()
	txnID := uuid.NewString()

	conciliated := &domain.LedgerTransaction{
		TransactionID: txnID,
		Operation:     domain.OperationIn,
		Amount:        decimal.NewFromInt(10),
		Status:        domain.StatusActive,
		Conciliation:  true,
		ApproverID:    userID,
	}

	suite.mockLedgerService.On("Conciliate", mock.Anything, txnID, userID).Return(conciliated, nil).Once()

	req := suite.authorizedRequest(http.MethodPost, "/api/v1/ledgers/"+txnID+"/conciliate", nil, userID)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LedgerTransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Conciliation)
	suite.Equal(userID, resp.ApproverID)
}

func (suite *LedgerHandlerTestSuite) TestConciliate_AlreadyConciliated() {
	userID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockLedgerService.On("Conciliate", mock.Anything, txnID, userID).Return(nil, services.ErrAlreadyConciliated).Once()

	req := suite.authorizedRequest(http.MethodPost, "/api/v1/ledgers/"+txnID+"/conciliate", nil, userID)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestConciliate_ConcurrentStateChange() {
	userID := uuid.NewString()
	txnID := uuid.NewString()

	// A concurrent conciliation wins at the repository's state guard and the
	// repo reports the conflict.
	conflict := apperrors.NewAppError(409, "transaction not in a conciliatable state", apperrors.ErrConflict)
	suite.mockLedgerService.On("Conciliate", mock.Anything, txnID, userID).Return(nil, conflict).Once()

	req := suite.authorizedRequest(http.MethodPost, "/api/v1/ledgers/"+txnID+"/conciliate", nil, userID)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestConciliate_NotActive() {
	userID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockLedgerService.On("Conciliate", mock.Anything, txnID, userID).Return(nil, services.ErrNotActive).Once()

	req := suite.authorizedRequest(http.MethodPost, "/api/v1/ledgers/"+txnID+"/conciliate", nil, userID)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
