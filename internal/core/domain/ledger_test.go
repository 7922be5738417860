package domain_test

import (
	"testing"
	"time"

	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name      string
		operation domain.OperationType
		amount    decimal.Decimal
		want      decimal.Decimal
	}{
		{
			name:      "deposit keeps the positive sign",
			operation: domain.OperationIn,
			amount:    decimal.NewFromInt(100),
			want:      decimal.NewFromInt(100),
		},
		{
			name:      "withdrawal negates the magnitude",
			operation: domain.OperationOut,
			amount:    decimal.NewFromInt(100),
			want:      decimal.NewFromInt(-100),
		},
		{
			name:      "transfer negates the magnitude",
			operation: domain.OperationTrans,
			amount:    decimal.NewFromInt(25),
			want:      decimal.NewFromInt(-25),
		},
		{
			name:      "entered sign is ignored",
			operation: domain.OperationIn,
			amount:    decimal.NewFromInt(-100),
			want:      decimal.NewFromInt(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.LedgerTransaction{Operation: tt.operation, Amount: tt.amount}
			assert.True(t, txn.SignedAmount().Equal(tt.want), "got %s, want %s", txn.SignedAmount(), tt.want)
		})
	}
}

func TestLedgerTransaction_BuildDetails(t *testing.T) {
	now := time.Now().UTC()

	t.Run("generates a balanced pair", func(t *testing.T) {
		txn := domain.LedgerTransaction{
			TransactionID: "txn_1",
			Operation:     domain.OperationOut,
			AccountID:     "acc_cash",
			ToID:          "acc_contact",
			Amount:        decimal.NewFromInt(40),
			CreatorID:     "user_1",
		}

		built := txn.BuildDetails("USD", now)

		require.True(t, built)
		require.Len(t, txn.Details, 2)
		assert.Equal(t, "acc_cash", txn.Details[0].AccountID)
		assert.Equal(t, "acc_contact", txn.Details[1].AccountID)
		assert.True(t, txn.Details[0].Amount.Equal(decimal.NewFromInt(-40)))
		assert.True(t, txn.Details[1].Amount.Equal(decimal.NewFromInt(40)))
		assert.True(t, txn.DetailsBalance().IsZero())
		assert.Equal(t, domain.DetailUnconciled, txn.Details[0].State)
		assert.Equal(t, domain.DetailUnconciled, txn.Details[1].State)
		assert.Equal(t, "USD", txn.Details[0].CurrencyCode)
		assert.Equal(t, "USD", txn.CurrencyCode)
	})

	t.Run("runs at most once", func(t *testing.T) {
		txn := domain.LedgerTransaction{
			TransactionID: "txn_1",
			Operation:     domain.OperationIn,
			AccountID:     "acc_cash",
			ToID:          "acc_contact",
			Amount:        decimal.NewFromInt(10),
		}

		require.True(t, txn.BuildDetails("USD", now))
		assert.False(t, txn.BuildDetails("USD", now))
		assert.Len(t, txn.Details, 2)
	})

	tests := []struct {
		name string
		txn  domain.LedgerTransaction
	}{
		{
			name: "missing primary account",
			txn:  domain.LedgerTransaction{ToID: "acc_contact", Amount: decimal.NewFromInt(10)},
		},
		{
			name: "missing destination",
			txn:  domain.LedgerTransaction{AccountID: "acc_cash", Amount: decimal.NewFromInt(10)},
		},
		{
			name: "zero amount",
			txn:  domain.LedgerTransaction{AccountID: "acc_cash", ToID: "acc_contact"},
		},
	}
	for _, tt := range tests {
		t.Run("skipped when "+tt.name, func(t *testing.T) {
			assert.False(t, tt.txn.BuildDetails("USD", now))
			assert.Empty(t, tt.txn.Details)
		})
	}
}

func TestLedgerTransaction_NormalizeAmount(t *testing.T) {
	txn := domain.LedgerTransaction{Operation: domain.OperationTrans, Amount: decimal.NewFromInt(30)}
	txn.NormalizeAmount()
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(-30)))

	// safe to repeat
	txn.NormalizeAmount()
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(-30)))

	txn.Operation = domain.OperationIn
	txn.NormalizeAmount()
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(30)))
}

func TestLedgerTransaction_Conciliate(t *testing.T) {
	now := time.Now().UTC()

	newActive := func() domain.LedgerTransaction {
		txn := domain.LedgerTransaction{
			TransactionID: "txn_1",
			Operation:     domain.OperationIn,
			AccountID:     "acc_cash",
			ToID:          "acc_contact",
			Amount:        decimal.NewFromInt(100),
			Status:        domain.StatusActive,
			CreatorID:     "user_1",
		}
		txn.BuildDetails("USD", now)
		return txn
	}

	t.Run("marks transaction and postings", func(t *testing.T) {
		txn := newActive()

		require.True(t, txn.Conciliate("approver_1", now))

		assert.True(t, txn.Conciliation)
		assert.Equal(t, "approver_1", txn.ApproverID)
		for _, d := range txn.Details {
			assert.Equal(t, domain.DetailConciled, d.State)
		}
	})

	t.Run("refused when already conciliated", func(t *testing.T) {
		txn := newActive()
		require.True(t, txn.Conciliate("approver_1", now))

		assert.False(t, txn.Conciliate("approver_2", now))
		assert.Equal(t, "approver_1", txn.ApproverID)
	})

	t.Run("refused when not active", func(t *testing.T) {
		txn := newActive()
		txn.Status = domain.StatusNulled

		assert.False(t, txn.Conciliate("approver_1", now))
		assert.False(t, txn.Conciliation)
		for _, d := range txn.Details {
			assert.Equal(t, domain.DetailUnconciled, d.State)
		}
	})
}

func TestReceivable_Outstanding(t *testing.T) {
	tests := []struct {
		name       string
		receivable domain.Receivable
		want       bool
	}{
		{
			name:       "approved with positive balance",
			receivable: domain.Receivable{State: domain.ReceivableApproved, Balance: decimal.NewFromInt(50)},
			want:       true,
		},
		{
			name:       "approved but zero balance",
			receivable: domain.Receivable{State: domain.ReceivableApproved, Balance: decimal.Zero},
			want:       false,
		},
		{
			name:       "paid",
			receivable: domain.Receivable{State: domain.ReceivablePaid, Balance: decimal.NewFromInt(50)},
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.receivable.Outstanding())
		})
	}
}
