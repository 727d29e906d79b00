package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
	"github.com/mrwhyte0520/billsdr-sub004/internal/store"
)

var (
	// ErrNonzeroBalance is returned when deleting an account that still
	// carries a balance.
	ErrNonzeroBalance = errors.New("account has a nonzero balance")
	// ErrHasChildren is returned when deleting an account that has
	// sub-accounts.
	ErrHasChildren = errors.New("account has sub-accounts")
	// ErrUnknownAccount is returned for an id that is not in the chart.
	ErrUnknownAccount = errors.New("unknown account")
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
	byCode   map[string]model.Account
	children map[string][]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	s := &Service{
		accounts: accounts,
		byID:     make(map[string]model.Account, len(accounts)),
		byCode:   make(map[string]model.Account, len(accounts)),
		children: make(map[string][]model.Account),
	}
	for _, a := range accounts {
		s.byID[a.ID] = a
		s.byCode[a.Code] = a
		if a.ParentID != "" {
			s.children[a.ParentID] = append(s.children[a.ParentID], a)
		}
	}
	return s
}

// Load reads the chart of accounts of ownerID from the store.
func Load(ctx context.Context, st store.Accounts, ownerID string) (*Service, error) {
	accts, err := st.Accounts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByCode returns the account with the given code.
func (s *Service) ByCode(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Children returns the direct sub-accounts of id.
func (s *Service) Children(id string) []model.Account {
	return s.children[id]
}

// HasChildren reports whether any account names id as its parent.
func (s *Service) HasChildren(id string) bool {
	return len(s.children[id]) > 0
}

// CanPost reports whether journal lines may be posted to id.
func (s *Service) CanPost(id string) bool {
	a, ok := s.byID[id]
	return ok && a.AllowPosting && a.IsActive
}

// Level returns the hierarchy level for an account whose parent is
// parentID: 1 for a root or a dangling parent, otherwise one below the
// parent.
func (s *Service) Level(parentID string) int {
	if parentID == "" {
		return 1
	}
	parent, ok := s.byID[parentID]
	if !ok {
		return 1
	}
	return parent.Level + 1
}

// CheckDelete reports why id cannot be deleted, or nil if it can.
// Sub-accounts are checked even when the balance is already nonzero.
func (s *Service) CheckDelete(id string) error {
	a, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, ErrUnknownAccount)
	}
	hasChildren := s.HasChildren(id)
	switch {
	case !a.Balance.IsZero() && hasChildren:
		return fmt.Errorf("account %s (%s): %w: %w", a.Code, a.Balance.StringFixed(2), ErrNonzeroBalance, ErrHasChildren)
	case !a.Balance.IsZero():
		return fmt.Errorf("account %s (%s): %w", a.Code, a.Balance.StringFixed(2), ErrNonzeroBalance)
	case hasChildren:
		return fmt.Errorf("account %s: %w (%d)", a.Code, ErrHasChildren, len(s.children[id]))
	}
	return nil
}
