// Package store persists accounts and journal entries. It is the record
// store the importer, the account manager and the journal service write
// through.
package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key (account code or entry
	// number within an owner) is already taken.
	ErrDuplicate = errors.New("duplicate record")
	// ErrUnavailable wraps backend failures. A read that fails this way
	// never returns an empty result in its place.
	ErrUnavailable = errors.New("record store unavailable")
)

// Accounts is the chart-of-accounts half of the record store.
type Accounts interface {
	CreateAccount(ctx context.Context, ownerID string, acct model.Account) (model.Account, error)
	Accounts(ctx context.Context, ownerID string) ([]model.Account, error)
	UpdateAccount(ctx context.Context, acct model.Account) (model.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// Entries is the journal half of the record store.
type Entries interface {
	// CreateEntryWithLines stores an entry and its lines in one call.
	CreateEntryWithLines(ctx context.Context, ownerID string, entry model.JournalEntry) (model.JournalEntry, error)
	// PostEntry stores an entry with its lines and applies every line to
	// the balance of its account. Nothing is written when any step fails.
	PostEntry(ctx context.Context, ownerID string, entry model.JournalEntry) (model.JournalEntry, error)
	Entries(ctx context.Context, ownerID string) ([]model.JournalEntry, error)
}

// Store is the full record store.
type Store interface {
	Accounts
	Entries
	Close() error
}

type sides struct{ debit, credit decimal.Decimal }

// postings sums lines per account, accounts in first-seen order.
func postings(lines []model.JournalLine) ([]string, map[string]sides) {
	var order []string
	sums := make(map[string]sides)
	for _, l := range lines {
		cur, seen := sums[l.AccountID]
		if !seen {
			order = append(order, l.AccountID)
		}
		sums[l.AccountID] = sides{cur.debit.Add(l.DebitAmount), cur.credit.Add(l.CreditAmount)}
	}
	return order, sums
}
