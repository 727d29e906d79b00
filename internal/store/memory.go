package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

// Memory is an in-process Store. Accounts are listed by code and entries
// by date, like the SQL store.
type Memory struct {
	mu       sync.Mutex
	accounts []model.Account
	entries  []model.JournalEntry
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// CreateAccount assigns an id and stores acct under ownerID.
func (m *Memory) CreateAccount(_ context.Context, ownerID string, acct model.Account) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.OwnerID == ownerID && a.Code == acct.Code {
			return model.Account{}, fmt.Errorf("account code %q: %w", acct.Code, ErrDuplicate)
		}
	}
	acct.ID = uuid.NewString()
	acct.OwnerID = ownerID
	m.accounts = append(m.accounts, acct)
	return acct, nil
}

// Accounts returns every account of ownerID.
func (m *Memory) Accounts(_ context.Context, ownerID string) ([]model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []model.Account{}
	for _, a := range m.accounts {
		if a.OwnerID == ownerID {
			result = append(result, a)
		}
	}
	slices.SortStableFunc(result, func(a, b model.Account) int { return strings.Compare(a.Code, b.Code) })
	return result, nil
}

// UpdateAccount replaces the stored account with the same id.
func (m *Memory) UpdateAccount(_ context.Context, acct model.Account) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.accounts, func(a model.Account) bool { return a.ID == acct.ID })
	if i < 0 {
		return model.Account{}, fmt.Errorf("account %s: %w", acct.ID, ErrNotFound)
	}
	for _, a := range m.accounts {
		if a.ID != acct.ID && a.OwnerID == m.accounts[i].OwnerID && a.Code == acct.Code {
			return model.Account{}, fmt.Errorf("account code %q: %w", acct.Code, ErrDuplicate)
		}
	}
	acct.OwnerID = m.accounts[i].OwnerID
	m.accounts[i] = acct
	return acct, nil
}

// DeleteAccount removes the account with the given id.
func (m *Memory) DeleteAccount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.accounts, func(a model.Account) bool { return a.ID == id })
	if i < 0 {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	m.accounts = slices.Delete(m.accounts, i, i+1)
	return nil
}

// CreateEntryWithLines stores entry and its lines.
func (m *Memory) CreateEntryWithLines(_ context.Context, ownerID string, entry model.JournalEntry) (model.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.OwnerID == ownerID && e.EntryNumber == entry.EntryNumber {
			return model.JournalEntry{}, fmt.Errorf("entry number %q: %w", entry.EntryNumber, ErrDuplicate)
		}
	}
	entry.ID = uuid.NewString()
	entry.OwnerID = ownerID
	entry.Lines = slices.Clone(entry.Lines)
	m.entries = append(m.entries, entry)
	return entry, nil
}

// PostEntry stores entry and moves the balances of the accounts its lines
// reference. Every account is checked before anything is written.
func (m *Memory) PostEntry(_ context.Context, ownerID string, entry model.JournalEntry) (model.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.OwnerID == ownerID && e.EntryNumber == entry.EntryNumber {
			return model.JournalEntry{}, fmt.Errorf("entry number %q: %w", entry.EntryNumber, ErrDuplicate)
		}
	}

	order, sums := postings(entry.Lines)
	updated := make(map[int]model.Account, len(order))
	for _, accountID := range order {
		i := slices.IndexFunc(m.accounts, func(a model.Account) bool { return a.ID == accountID && a.OwnerID == ownerID })
		if i < 0 {
			return model.JournalEntry{}, fmt.Errorf("posting entry %q: account %s: %w", entry.EntryNumber, accountID, ErrNotFound)
		}
		acct := m.accounts[i]
		acct.Balance = acct.Apply(sums[accountID].debit, sums[accountID].credit)
		updated[i] = acct
	}

	entry.ID = uuid.NewString()
	entry.OwnerID = ownerID
	entry.Lines = slices.Clone(entry.Lines)
	m.entries = append(m.entries, entry)
	for i, acct := range updated {
		m.accounts[i] = acct
	}
	return entry, nil
}

// Entries returns every journal entry of ownerID with its lines.
func (m *Memory) Entries(_ context.Context, ownerID string) ([]model.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []model.JournalEntry{}
	for _, e := range m.entries {
		if e.OwnerID == ownerID {
			e.Lines = slices.Clone(e.Lines)
			result = append(result, e)
		}
	}
	slices.SortStableFunc(result, func(a, b model.JournalEntry) int {
		if c := a.EntryDate.Compare(b.EntryDate); c != 0 {
			return c
		}
		return strings.Compare(a.EntryNumber, b.EntryNumber)
	})
	return result, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
