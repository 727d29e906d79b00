package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

// DefaultTolerance is the largest debit/credit difference an entry may
// carry and still post.
var DefaultTolerance = decimal.RequireFromString("0.01")

var (
	// ErrUnbalanced matches every *UnbalancedError.
	ErrUnbalanced = errors.New("entry is not balanced")
	// ErrNoLines is returned when no line survives filtering.
	ErrNoLines = errors.New("entry has no lines with an account and an amount")
)

// LineInput is one journal line as typed into a form. Amounts are text;
// empty or unparsable amounts count as zero.
type LineInput struct {
	AccountID   string
	Description string
	Debit       string
	Credit      string
}

// UnbalancedError reports the totals of an entry whose sides differ by
// more than the tolerance.
type UnbalancedError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("debits (%s) != credits (%s), difference %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Difference().StringFixed(2))
}

// Is makes errors.Is(err, ErrUnbalanced) match.
func (e *UnbalancedError) Is(target error) bool {
	return target == ErrUnbalanced
}

// Difference returns |debit - credit|.
func (e *UnbalancedError) Difference() decimal.Decimal {
	return e.TotalDebit.Sub(e.TotalCredit).Abs()
}

// ValidationError describes a single line that cannot be posted. Line is
// the 1-based position among the submitted lines.
type ValidationError struct {
	Line        int
	AccountID   string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("line %d [%s]: %s", e.Line, e.AccountID, e.Description)
}

// AccountChecker tests accounts referenced by journal lines.
type AccountChecker interface {
	Exists(id string) bool
	CanPost(id string) bool
}

// ParseAmount reads a form amount. Empty or unparsable text is zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Totals sums the debit and credit amounts of lines.
func Totals(lines []LineInput) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(ParseAmount(l.Debit))
		credit = credit.Add(ParseAmount(l.Credit))
	}
	return debit, credit
}

// CheckBalance returns an *UnbalancedError when the totals of lines
// differ by more than tolerance.
func CheckBalance(lines []LineInput, tolerance decimal.Decimal) error {
	debit, credit := Totals(lines)
	if debit.Sub(credit).Abs().GreaterThan(tolerance) {
		return &UnbalancedError{TotalDebit: debit, TotalCredit: credit}
	}
	return nil
}

// FilterLines keeps the lines that name an account and carry a nonzero
// debit or credit. Other lines are unused form rows and are dropped.
func FilterLines(lines []LineInput) []LineInput {
	var kept []LineInput
	for _, l := range lines {
		if strings.TrimSpace(l.AccountID) == "" {
			continue
		}
		if ParseAmount(l.Debit).IsZero() && ParseAmount(l.Credit).IsZero() {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// ValidateLines checks each line against the chart of accounts.
func ValidateLines(lines []LineInput, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	for i, l := range lines {
		acct := strings.TrimSpace(l.AccountID)
		debit, credit := ParseAmount(l.Debit), ParseAmount(l.Credit)

		if debit.IsNegative() || credit.IsNegative() {
			errs = append(errs, ValidationError{Line: i + 1, AccountID: acct, Description: "amounts must not be negative"})
		}
		if !debit.IsZero() && !credit.IsZero() {
			errs = append(errs, ValidationError{Line: i + 1, AccountID: acct, Description: "line must have exactly one of debit or credit"})
		}
		switch {
		case !accounts.Exists(acct):
			errs = append(errs, ValidationError{Line: i + 1, AccountID: acct, Description: "unknown account"})
		case !accounts.CanPost(acct):
			errs = append(errs, ValidationError{Line: i + 1, AccountID: acct, Description: "account does not accept postings"})
		}
	}
	return errs
}

// ToLines converts validated inputs into journal lines.
func ToLines(lines []LineInput) []model.JournalLine {
	out := make([]model.JournalLine, len(lines))
	for i, l := range lines {
		out[i] = model.JournalLine{
			AccountID:    strings.TrimSpace(l.AccountID),
			Description:  strings.TrimSpace(l.Description),
			DebitAmount:  ParseAmount(l.Debit),
			CreditAmount: ParseAmount(l.Credit),
		}
	}
	return out
}
