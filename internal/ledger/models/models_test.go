package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	dErrors "ledger/pkg/domain-errors"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(1500)

	t.Run("credits are positive", func(t *testing.T) {
		assert.True(t, TypeDeposit.SignedAmount(amount).Equal(amount))
		assert.True(t, TypePayment.SignedAmount(amount).Equal(amount))
	})

	t.Run("debits are negative", func(t *testing.T) {
		assert.True(t, TypeWithdrawal.SignedAmount(amount).Equal(amount.Neg()))
		assert.True(t, TypeFee.SignedAmount(amount).Equal(amount.Neg()))
	})

	t.Run("neutral types contribute zero", func(t *testing.T) {
		for _, typ := range []TransactionType{TypeInterest, TypeRefund, TypeAdjustment, TypePenalty} {
			assert.True(t, typ.SignedAmount(amount).IsZero(), "type %s", typ)
		}
	})
}

func TestParseTransactionType(t *testing.T) {
	t.Run("recognized", func(t *testing.T) {
		typ, err := ParseTransactionType("WITHDRAWAL")
		assert.NoError(t, err)
		assert.Equal(t, TypeWithdrawal, typ)
	})

	t.Run("unrecognized", func(t *testing.T) {
		_, err := ParseTransactionType("TRANSFER")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseTransactionType("")
		assert.Error(t, err)
	})
}

func TestParseCurrency(t *testing.T) {
	t.Run("empty defaults to home currency", func(t *testing.T) {
		c, err := ParseCurrency("")
		assert.NoError(t, err)
		assert.Equal(t, CurrencyXAF, c)
	})

	t.Run("foreign currencies accepted", func(t *testing.T) {
		for _, s := range []string{"EUR", "USD"} {
			_, err := ParseCurrency(s)
			assert.NoError(t, err)
		}
	})

	t.Run("unrecognized rejected", func(t *testing.T) {
		_, err := ParseCurrency("GBP")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestContractStatusAcceptsTransactions(t *testing.T) {
	assert.True(t, ContractDraft.AcceptsTransactions())
	assert.True(t, ContractActive.AcceptsTransactions())
	assert.False(t, ContractClosed.AcceptsTransactions())
	assert.False(t, ContractCancelled.AcceptsTransactions())
}
