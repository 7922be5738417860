package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/bizrecords/ledger_backend/internal/dto"
)

func TestParseCreateMoneyRequest(t *testing.T) {
	t.Run("accepts whitelisted fields", func(t *testing.T) {
		raw := map[string]any{
			"operation":  "in",
			"account_id": "acc_1",
			"to_id":      "acc_2",
			"amount":     "150.25",
			"reference":  "INV-7",
			"date":       "2026-03-15",
		}

		req, err := dto.ParseCreateMoneyRequest(raw)

		require.NoError(t, err)
		assert.Equal(t, "in", req.Operation)
		assert.Equal(t, "acc_1", req.AccountID)
		assert.Equal(t, "acc_2", req.ToID)
		assert.True(t, req.Amount.Equal(decimal.RequireFromString("150.25")))
		assert.Equal(t, "INV-7", req.Reference)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), req.Date)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		raw := map[string]any{
			"operation":    "in",
			"account_id":   "acc_1",
			"to_id":        "acc_2",
			"amount":       10.0,
			"conciliation": true,
			"status":       "act",
		}

		_, err := dto.ParseCreateMoneyRequest(raw)

		require.Error(t, err)
		var errs apperrors.ValidationErrors
		require.ErrorAs(t, err, &errs)
		code, ok := errs.ForField("conciliation")
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeUnknownField, code)
		code, ok = errs.ForField("status")
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeUnknownField, code)
	})

	t.Run("malformed date reported as date error not unknown field", func(t *testing.T) {
		raw := map[string]any{
			"operation":  "in",
			"account_id": "acc_1",
			"to_id":      "acc_2",
			"amount":     10.0,
			"date":       "15/03/2026",
		}

		_, err := dto.ParseCreateMoneyRequest(raw)

		require.Error(t, err)
		var errs apperrors.ValidationErrors
		require.ErrorAs(t, err, &errs)
		code, ok := errs.ForField("date")
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidDate, code)
	})

	t.Run("amount accepted from number", func(t *testing.T) {
		raw := map[string]any{
			"operation":  "out",
			"account_id": "acc_1",
			"to_id":      "acc_2",
			"amount":     42.5,
		}

		req, err := dto.ParseCreateMoneyRequest(raw)

		require.NoError(t, err)
		assert.True(t, req.Amount.Equal(decimal.NewFromFloat(42.5)))
	})

	t.Run("unparseable amount string rejected", func(t *testing.T) {
		raw := map[string]any{
			"operation":  "in",
			"account_id": "acc_1",
			"to_id":      "acc_2",
			"amount":     "ten",
		}

		_, err := dto.ParseCreateMoneyRequest(raw)

		require.Error(t, err)
		var errs apperrors.ValidationErrors
		require.ErrorAs(t, err, &errs)
		code, ok := errs.ForField("amount")
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInclusion, code)
	})

	t.Run("missing optional fields leave zero values", func(t *testing.T) {
		raw := map[string]any{
			"operation":  "in",
			"account_id": "acc_1",
			"to_id":      "acc_2",
			"amount":     "10",
		}

		req, err := dto.ParseCreateMoneyRequest(raw)

		require.NoError(t, err)
		assert.Empty(t, req.Reference)
		assert.True(t, req.Date.IsZero())
	})
}

func TestLedgerTransactionResponse_RoundTrip(t *testing.T) {
	now := time.Now().UTC()
	txn := domain.LedgerTransaction{
		TransactionID: "txn_1",
		Operation:     domain.OperationTrans,
		AccountID:     "acc_cash",
		ToID:          "acc_bank",
		Amount:        decimal.NewFromInt(40),
		Description:   "Transfer to Bank",
		Date:          now,
		CurrencyCode:  "USD",
		Status:        domain.StatusActive,
		IsMoney:       true,
		CreatorID:     "user_1",
	}
	require.True(t, txn.BuildDetails("USD", now))
	txn.Details[0].DetailID = "det_1"
	txn.Details[1].DetailID = "det_2"
	txn.NormalizeAmount()

	payload, err := json.Marshal(dto.ToLedgerTransactionResponse(&txn))
	require.NoError(t, err)

	var decoded dto.LedgerTransactionResponse
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "trans", decoded.Operation)
	assert.True(t, decoded.Amount.Equal(decimal.NewFromInt(-40)), "stored amount keeps the transfer sign, got %s", decoded.Amount)
	require.Len(t, decoded.Details, 2)
	assert.Equal(t, "acc_cash", decoded.Details[0].AccountID)
	assert.Equal(t, "acc_bank", decoded.Details[1].AccountID)
	assert.True(t, decoded.Details[0].Amount.Equal(decimal.NewFromInt(-40)))
	assert.True(t, decoded.Details[1].Amount.Equal(decimal.NewFromInt(40)))
	assert.True(t, decoded.Details[0].Amount.Add(decoded.Details[1].Amount).IsZero())
	assert.Equal(t, string(domain.DetailUnconciled), decoded.Details[0].State)
}
