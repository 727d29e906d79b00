package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
	"github.com/mrwhyte0520/billsdr-sub004/internal/store"
)

// Input describes an account to create or the new state of one to update.
type Input struct {
	Code         string
	Name         string
	Type         string
	ParentCode   string
	Description  string
	Balance      decimal.Decimal
	AllowPosting bool
}

// ValidationError describes an account field that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Manager creates, updates and deletes accounts of one owner in the
// record store. Derived fields (normal balance, level) are always
// recomputed from type and parent.
type Manager struct {
	store   store.Accounts
	ownerID string
}

// NewManager creates a Manager for ownerID's chart.
func NewManager(st store.Accounts, ownerID string) *Manager {
	return &Manager{store: st, ownerID: ownerID}
}

// Create validates in and stores a new account.
func (m *Manager) Create(ctx context.Context, in Input) (model.Account, error) {
	svc, err := Load(ctx, m.store, m.ownerID)
	if err != nil {
		return model.Account{}, err
	}
	if _, taken := svc.ByCode(strings.TrimSpace(in.Code)); taken {
		return model.Account{}, ValidationError{Field: "code", Message: fmt.Sprintf("code %q already exists", in.Code)}
	}

	acct, err := build(svc, in)
	if err != nil {
		return model.Account{}, err
	}
	acct.IsActive = true
	created, err := m.store.CreateAccount(ctx, m.ownerID, acct)
	if err != nil {
		return model.Account{}, fmt.Errorf("creating account %s: %w", acct.Code, err)
	}
	return created, nil
}

// Update replaces the account id with in. The stored balance is kept.
func (m *Manager) Update(ctx context.Context, id string, in Input) (model.Account, error) {
	svc, err := Load(ctx, m.store, m.ownerID)
	if err != nil {
		return model.Account{}, err
	}
	existing, ok := svc.Get(id)
	if !ok {
		return model.Account{}, fmt.Errorf("account %s: %w", id, ErrUnknownAccount)
	}
	if other, taken := svc.ByCode(strings.TrimSpace(in.Code)); taken && other.ID != id {
		return model.Account{}, ValidationError{Field: "code", Message: fmt.Sprintf("code %q already exists", in.Code)}
	}

	acct, err := build(svc, in)
	if err != nil {
		return model.Account{}, err
	}
	if acct.ParentID == id {
		return model.Account{}, ValidationError{Field: "parent", Message: "an account cannot be its own parent"}
	}
	if isDescendant(svc, acct.ParentID, id) {
		return model.Account{}, ValidationError{Field: "parent", Message: fmt.Sprintf("%s is a sub-account of %s", in.ParentCode, existing.Code)}
	}
	acct.ID = existing.ID
	acct.Balance = existing.Balance
	acct.IsActive = existing.IsActive

	updated, err := m.store.UpdateAccount(ctx, acct)
	if err != nil {
		return model.Account{}, fmt.Errorf("updating account %s: %w", acct.Code, err)
	}
	return updated, nil
}

// Delete removes the account id after the deletion guard passes.
func (m *Manager) Delete(ctx context.Context, id string) error {
	svc, err := Load(ctx, m.store, m.ownerID)
	if err != nil {
		return err
	}
	if err := svc.CheckDelete(id); err != nil {
		return err
	}
	if err := m.store.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("deleting account %s: %w", id, err)
	}
	return nil
}

// DeleteByCode resolves code and deletes that account.
func (m *Manager) DeleteByCode(ctx context.Context, code string) error {
	svc, err := Load(ctx, m.store, m.ownerID)
	if err != nil {
		return err
	}
	acct, ok := svc.ByCode(code)
	if !ok {
		return fmt.Errorf("account code %q: %w", code, ErrUnknownAccount)
	}
	return m.Delete(ctx, acct.ID)
}

func build(svc *Service, in Input) (model.Account, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return model.Account{}, ValidationError{Field: "code", Message: "required"}
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Account{}, ValidationError{Field: "name", Message: "required"}
	}
	typ, err := model.ParseAccountType(in.Type)
	if err != nil {
		return model.Account{}, ValidationError{Field: "type", Message: err.Error()}
	}

	var parentID string
	if pc := strings.TrimSpace(in.ParentCode); pc != "" {
		parent, ok := svc.ByCode(pc)
		if !ok {
			return model.Account{}, ValidationError{Field: "parent", Message: fmt.Sprintf("no account with code %q", pc)}
		}
		parentID = parent.ID
	}

	return model.Account{
		Code:          code,
		Name:          name,
		Type:          typ,
		ParentID:      parentID,
		Level:         svc.Level(parentID),
		Balance:       in.Balance,
		NormalBalance: typ.NormalBalance(),
		AllowPosting:  in.AllowPosting,
		Description:   strings.TrimSpace(in.Description),
	}, nil
}

// isDescendant reports whether id appears on the parent chain of start.
func isDescendant(svc *Service, start, id string) bool {
	seen := map[string]bool{}
	for cur := start; cur != "" && !seen[cur]; {
		if cur == id {
			return true
		}
		seen[cur] = true
		a, ok := svc.Get(cur)
		if !ok {
			return false
		}
		cur = a.ParentID
	}
	return false
}
