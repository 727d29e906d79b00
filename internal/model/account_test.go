package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalBalance(t *testing.T) {
	tests := []struct {
		typ  AccountType
		want NormalBalance
	}{
		{AccountTypeAsset, NormalDebit},
		{AccountTypeExpense, NormalDebit},
		{AccountTypeLiability, NormalCredit},
		{AccountTypeEquity, NormalCredit},
		{AccountTypeIncome, NormalCredit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.NormalBalance(), "NormalBalance(%q)", tt.typ)
	}
}

func TestAccountTypesAreValid(t *testing.T) {
	require.Len(t, AccountTypes, 5)
	for _, at := range AccountTypes {
		assert.True(t, at.Valid(), "%q should be valid", at)
	}
	assert.False(t, AccountType("revenue").Valid())
	assert.False(t, AccountType("").Valid())
}

func TestParseAccountType(t *testing.T) {
	got, err := ParseAccountType("  Expense ")
	require.NoError(t, err)
	assert.Equal(t, AccountTypeExpense, got)

	_, err = ParseAccountType("nominal")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	cash := Account{Type: AccountTypeAsset, Balance: decimal.NewFromInt(100)}
	assert.Equal(t, "150.00", cash.Apply(decimal.NewFromInt(50), decimal.Zero).StringFixed(2))
	assert.Equal(t, "70.00", cash.Apply(decimal.Zero, decimal.NewFromInt(30)).StringFixed(2))

	payable := Account{Type: AccountTypeLiability, Balance: decimal.NewFromInt(100)}
	assert.Equal(t, "150.00", payable.Apply(decimal.Zero, decimal.NewFromInt(50)).StringFixed(2))
	assert.Equal(t, "70.00", payable.Apply(decimal.NewFromInt(30), decimal.Zero).StringFixed(2))
}
