package accounts

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
	"github.com/mrwhyte0520/billsdr-sub004/internal/store"
)

func TestManagerCreate(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemory(), "owner-1")

	root, err := m.Create(ctx, Input{Code: "2000", Name: "PASIVOS", Type: "Liability"})
	require.NoError(t, err)
	assert.Equal(t, model.AccountTypeLiability, root.Type)
	assert.Equal(t, model.NormalCredit, root.NormalBalance)
	assert.Equal(t, 1, root.Level)
	assert.True(t, root.IsActive)
	assert.False(t, root.AllowPosting)

	child, err := m.Create(ctx, Input{Code: "2100", Name: "Cuentas por Pagar", Type: "liability", ParentCode: "2000", AllowPosting: true})
	require.NoError(t, err)
	assert.Equal(t, root.ID, child.ParentID)
	assert.Equal(t, 2, child.Level)
	assert.True(t, child.AllowPosting)
}

func TestManagerCreate_Rejects(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemory(), "owner-1")
	_, err := m.Create(ctx, Input{Code: "1000", Name: "ACTIVOS", Type: "asset"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"duplicate code", Input{Code: " 1000 ", Name: "Otra", Type: "asset"}, "code"},
		{"missing code", Input{Name: "Sin codigo", Type: "asset"}, "code"},
		{"missing name", Input{Code: "1001", Type: "asset"}, "name"},
		{"unknown type", Input{Code: "1002", Name: "Rara", Type: "bank"}, "type"},
		{"unknown parent", Input{Code: "1003", Name: "Huerfana", Type: "asset", ParentCode: "9999"}, "parent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Create(ctx, tt.in)
			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestManagerUpdate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	m := NewManager(st, "owner-1")

	assets, err := m.Create(ctx, Input{Code: "1000", Name: "ACTIVOS", Type: "asset"})
	require.NoError(t, err)
	cash, err := m.Create(ctx, Input{Code: "1110", Name: "Caja", Type: "asset", Balance: decimal.NewFromInt(50), AllowPosting: true})
	require.NoError(t, err)

	updated, err := m.Update(ctx, cash.ID, Input{Code: "1110", Name: "Caja General", Type: "expense", ParentCode: "1000", Balance: decimal.NewFromInt(999)})
	require.NoError(t, err)
	assert.Equal(t, "Caja General", updated.Name)
	assert.Equal(t, assets.ID, updated.ParentID)
	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, model.NormalDebit, updated.NormalBalance)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(50)), "balance is kept")

	_, err = m.Update(ctx, assets.ID, Input{Code: "1000", Name: "ACTIVOS", Type: "asset", ParentCode: "1110"})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "parent", ve.Field)

	_, err = m.Update(ctx, assets.ID, Input{Code: "1110", Name: "ACTIVOS", Type: "asset"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "code", ve.Field)

	_, err = m.Update(ctx, "missing", Input{Code: "9", Name: "x", Type: "asset"})
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestManagerDelete(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	m := NewManager(st, "owner-1")

	parent, err := m.Create(ctx, Input{Code: "5000", Name: "GASTOS", Type: "expense"})
	require.NoError(t, err)
	child, err := m.Create(ctx, Input{Code: "5100", Name: "Oficina", Type: "expense", ParentCode: "5000", Balance: decimal.NewFromInt(20)})
	require.NoError(t, err)

	assert.ErrorIs(t, m.Delete(ctx, parent.ID), ErrHasChildren)
	assert.ErrorIs(t, m.Delete(ctx, child.ID), ErrNonzeroBalance)

	all, err := st.Accounts(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, all, 2, "guarded deletes never reach the store")

	child.Balance = decimal.Zero
	_, err = st.UpdateAccount(ctx, child)
	require.NoError(t, err)

	require.NoError(t, m.DeleteByCode(ctx, "5100"))
	require.NoError(t, m.Delete(ctx, parent.ID))
	all, err = st.Accounts(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, m.DeleteByCode(ctx, "5100"), ErrUnknownAccount)
}

func TestSeedDefaultChart(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	m := NewManager(st, "owner-1")

	n, err := m.Seed(ctx, DefaultChart("basic"))
	require.NoError(t, err)
	assert.Equal(t, len(DefaultChart("basic")), n)

	svc, err := Load(ctx, st, "owner-1")
	require.NoError(t, err)
	cash, ok := svc.ByCode("1110")
	require.True(t, ok)
	assert.Equal(t, 3, cash.Level)
	assert.True(t, svc.CanPost(cash.ID))

	top, ok := svc.ByCode("1000")
	require.True(t, ok)
	assert.False(t, svc.CanPost(top.ID))

	assert.Empty(t, DefaultChart("none"))

	_, err = m.Seed(ctx, DefaultChart("basic"))
	assert.Error(t, err, "seeding twice collides on codes")
}
