package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists the canonical account types in chart order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeIncome,
	AccountTypeExpense,
}

// Valid reports whether t is one of the canonical account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// ParseAccountType parses a canonical account type, ignoring case and
// surrounding whitespace.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return t, nil
}

// NormalBalance is the side on which increases to an account are recorded.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "debit"
	NormalCredit NormalBalance = "credit"
)

// NormalBalance returns debit for assets and expenses, credit otherwise.
func (t AccountType) NormalBalance() NormalBalance {
	if t == AccountTypeAsset || t == AccountTypeExpense {
		return NormalDebit
	}
	return NormalCredit
}

// Account is a persisted chart-of-accounts entry.
type Account struct {
	ID            string
	OwnerID       string
	Code          string
	Name          string
	Type          AccountType
	ParentID      string // empty = top-level
	Level         int
	Balance       decimal.Decimal
	IsActive      bool
	NormalBalance NormalBalance
	AllowPosting  bool
	Description   string
}

// IsRoot reports whether the account has no parent.
func (a Account) IsRoot() bool {
	return a.ParentID == ""
}

// Apply returns the account balance after posting debit and credit
// amounts against it, signed by the account's normal balance.
func (a Account) Apply(debit, credit decimal.Decimal) decimal.Decimal {
	if a.Type.NormalBalance() == NormalDebit {
		return a.Balance.Add(debit).Sub(credit)
	}
	return a.Balance.Add(credit).Sub(debit)
}
