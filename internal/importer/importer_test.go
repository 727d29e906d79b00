package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mrwhyte0520/billsdr-sub004/internal/formats"
	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
	"github.com/mrwhyte0520/billsdr-sub004/internal/store"
)

// flakyStore fails CreateAccount for the listed codes and can fail reads.
type flakyStore struct {
	*store.Memory
	failCodes map[string]bool
	failReads bool
}

func (f *flakyStore) CreateAccount(ctx context.Context, ownerID string, acct model.Account) (model.Account, error) {
	if f.failCodes[acct.Code] {
		return model.Account{}, fmt.Errorf("account code %q: %w", acct.Code, store.ErrUnavailable)
	}
	return f.Memory.CreateAccount(ctx, ownerID, acct)
}

func (f *flakyStore) Accounts(ctx context.Context, ownerID string) ([]model.Account, error) {
	if f.failReads {
		return nil, store.ErrUnavailable
	}
	return f.Memory.Accounts(ctx, ownerID)
}

func byCode(accts []model.Account) map[string]model.Account {
	m := make(map[string]model.Account, len(accts))
	for _, a := range accts {
		m[a.Code] = a
	}
	return m
}

func TestImport_CSVTemplateLinked(t *testing.T) {
	content, err := os.ReadFile("testdata/chart.csv")
	require.NoError(t, err)

	im := New(store.NewMemory(), zaptest.NewLogger(t))
	res, err := im.Import(context.Background(), Request{Owner: "owner-1", Format: "csv", Filename: "chart.csv", Content: content})
	require.NoError(t, err)

	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, 9, res.Parsed)
	assert.Equal(t, 9, res.Imported)
	assert.Equal(t, 4, res.Linked)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Accounts, 9)

	accts := byCode(res.Accounts)
	assert.Equal(t, 1, accts["1000"].Level)
	assert.Equal(t, 2, accts["1100"].Level)
	assert.Equal(t, 3, accts["1110"].Level)
	assert.Equal(t, accts["1100"].ID, accts["1110"].ParentID)
	assert.Equal(t, accts["5000"].ID, accts["5100"].ParentID)
	assert.Equal(t, "5000.00", accts["1110"].Balance.StringFixed(2))

	for _, a := range res.Accounts {
		assert.True(t, a.IsActive)
		assert.True(t, a.AllowPosting)
		assert.Equal(t, a.Type.NormalBalance(), a.NormalBalance)
	}
}

func TestImport_FlatKeepsEveryAccountAtLevelOne(t *testing.T) {
	content, err := os.ReadFile("testdata/chart.csv")
	require.NoError(t, err)

	im := New(store.NewMemory(), zaptest.NewLogger(t), WithFlatImport())
	res, err := im.Import(context.Background(), Request{Owner: "owner-1", Format: "csv", Content: content})
	require.NoError(t, err)

	assert.Equal(t, StatusOK, res.Status)
	assert.Zero(t, res.Linked)
	for _, a := range res.Accounts {
		assert.Equal(t, 1, a.Level, a.Code)
		assert.True(t, a.IsRoot(), a.Code)
	}
}

func TestImport_ChainLevels(t *testing.T) {
	// Children listed before their parents still resolve.
	content := "code,name,type,parentCode\n" +
		"4,Nivel 4,expense,3\n" +
		"3,Nivel 3,expense,2\n" +
		"2,Nivel 2,expense,1\n" +
		"1,Nivel 1,expense,\n"

	im := New(store.NewMemory(), zaptest.NewLogger(t))
	res, err := im.Import(context.Background(), Request{Owner: "o", Format: "csv", Content: []byte(content)})
	require.NoError(t, err)

	accts := byCode(res.Accounts)
	for i := 1; i <= 4; i++ {
		assert.Equal(t, i, accts[fmt.Sprint(i)].Level)
	}
	assert.Equal(t, 3, res.Linked)
}

func TestImport_LinkErrors(t *testing.T) {
	content := "code,name,type,parentCode\n" +
		"A,Cuenta A,asset,B\n" +
		"B,Cuenta B,asset,A\n" +
		"C,Cuenta C,asset,ZZZ\n" +
		"D,Cuenta D,asset,D\n"

	im := New(store.NewMemory(), zaptest.NewLogger(t))
	res, err := im.Import(context.Background(), Request{Owner: "o", Format: "csv", Content: []byte(content)})
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, res.Status)
	assert.Equal(t, 4, res.Imported)
	assert.Equal(t, 1, res.Linked, "A links to B, B -> A would close a cycle")
	require.Len(t, res.Errors, 3)
	assert.Equal(t, 2, res.Errors[0].Line)
	assert.Contains(t, res.Errors[0].Reason, "cycle")
	assert.Equal(t, 3, res.Errors[1].Line)
	assert.Contains(t, res.Errors[1].Reason, "not found")
	assert.Equal(t, 4, res.Errors[2].Line)
	assert.Contains(t, res.Errors[2].Reason, "cycle")

	accts := byCode(res.Accounts)
	assert.Equal(t, accts["B"].ID, accts["A"].ParentID)
	assert.Equal(t, 2, accts["A"].Level)
	assert.True(t, accts["B"].IsRoot())
	assert.True(t, accts["C"].IsRoot(), "a missing parent leaves the account a root")
	assert.Equal(t, 1, accts["C"].Level)
}

func TestImport_SkipsAndPartialFailure(t *testing.T) {
	st := &flakyStore{Memory: store.NewMemory(), failCodes: map[string]bool{"2000": true}}
	content := "code,name,type\n" +
		"1000,ACTIVOS,asset\n" +
		",Sin codigo,asset\n" +
		"1500,,asset\n" +
		"2000,PASIVOS,liability\n" +
		"3000,PATRIMONIO,equity\n"

	var progress [][2]int
	im := New(st, zaptest.NewLogger(t), WithProgress(func(done, total int) {
		progress = append(progress, [2]int{done, total})
	}))
	res, err := im.Import(context.Background(), Request{Owner: "o", Format: "csv", Content: []byte(content)})
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, res.Status)
	assert.Equal(t, 5, res.Parsed)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 4, res.Errors[0].Line)
	assert.Equal(t, "2000", res.Errors[0].Record.Code)
	assert.Len(t, res.Accounts, 2, "accounts are reloaded from the store")

	assert.Equal(t, [][2]int{{1, 5}, {2, 5}, {3, 5}, {4, 5}, {5, 5}}, progress)
}

func TestImport_DuplicateCodes(t *testing.T) {
	st := store.NewMemory()
	im := New(st, zaptest.NewLogger(t))
	content := []byte("code,name,type\n1000,ACTIVOS,asset\n")

	res, err := im.Import(context.Background(), Request{Owner: "o", Format: "csv", Content: content})
	require.NoError(t, err)
	assert.Equal(t, StatusOK, res.Status)

	res, err = im.Import(context.Background(), Request{Owner: "o", Format: "csv", Content: content})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, 1, res.Parsed)
	assert.Zero(t, res.Imported)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Reason, store.ErrDuplicate.Error())
	assert.Len(t, res.Accounts, 1)
}

func TestImport_EmptyAndUnparsable(t *testing.T) {
	im := New(store.NewMemory(), zaptest.NewLogger(t))
	ctx := context.Background()

	res, err := im.Import(ctx, Request{Owner: "o", Format: "json", Content: []byte("[]")})
	require.NoError(t, err)
	assert.Equal(t, StatusEmpty, res.Status)
	assert.NoError(t, res.ParseError)

	res, err = im.Import(ctx, Request{Owner: "o", Format: "json", Content: []byte(`{"code":"1"}`)})
	require.NoError(t, err)
	assert.Equal(t, StatusUnparsable, res.Status)
	assert.ErrorIs(t, res.ParseError, formats.ErrNotArray)
	assert.Zero(t, res.Parsed)

	res, err = im.Import(ctx, Request{Owner: "o", Format: "csv", Content: []byte("code,name,type\n")})
	require.NoError(t, err)
	assert.Equal(t, StatusEmpty, res.Status)
}

func TestImport_QuickBooksIIF(t *testing.T) {
	content, err := os.ReadFile("testdata/chart.iif")
	require.NoError(t, err)

	im := New(store.NewMemory(), zaptest.NewLogger(t))
	res, err := im.Import(context.Background(), Request{Owner: "o", Format: "quickbooks", Filename: "chart.iif", Content: content})
	require.NoError(t, err)

	require.Equal(t, StatusOK, res.Status)
	accts := byCode(res.Accounts)
	assert.Equal(t, model.AccountTypeAsset, accts["1111"].Type)
	assert.Equal(t, "Caja General", accts["1111"].Name)
	assert.Equal(t, "5000.00", accts["1111"].Balance.StringFixed(2))
	assert.Equal(t, model.AccountTypeLiability, accts["2100"].Type)
	assert.Equal(t, model.NormalCredit, accts["2100"].NormalBalance)
	assert.Equal(t, model.AccountTypeIncome, accts["4100"].Type)
}

func TestImport_SageVocabulary(t *testing.T) {
	content := "code,name,type\n1100,Debtors Control,Debtors\n2100,Creditors Control,CREDITORS\n7100,Rent,Overheads\n"

	im := New(store.NewMemory(), zaptest.NewLogger(t))
	res, err := im.Import(context.Background(), Request{Owner: "o", Format: "sage", Content: []byte(content)})
	require.NoError(t, err)

	accts := byCode(res.Accounts)
	assert.Equal(t, model.AccountTypeAsset, accts["1100"].Type)
	assert.Equal(t, model.AccountTypeLiability, accts["2100"].Type)
	assert.Equal(t, model.AccountTypeExpense, accts["7100"].Type)
}

func TestImport_EveryTemplate(t *testing.T) {
	for _, f := range formats.All() {
		t.Run(string(f.ID), func(t *testing.T) {
			content, err := f.Template()
			require.NoError(t, err)

			im := New(store.NewMemory(), zaptest.NewLogger(t))
			res, err := im.Import(context.Background(), Request{Owner: "o", Format: string(f.ID), Filename: f.TemplateName, Content: content})
			require.NoError(t, err)
			assert.Equal(t, StatusOK, res.Status)
			assert.Equal(t, res.Parsed, res.Imported)
			assert.NotZero(t, res.Imported)
		})
	}
}

func TestImport_BadRequests(t *testing.T) {
	im := New(store.NewMemory(), nil)
	ctx := context.Background()

	_, err := im.Import(ctx, Request{Format: "csv"})
	assert.ErrorIs(t, err, ErrNoOwner)

	_, err = im.Import(ctx, Request{Owner: "o", Format: "lotus123"})
	assert.Error(t, err)
}

func TestImport_ReloadFailure(t *testing.T) {
	st := &flakyStore{Memory: store.NewMemory(), failReads: true}
	im := New(st, zaptest.NewLogger(t))

	res, err := im.Import(context.Background(), Request{Owner: "o", Format: "csv", Content: []byte("code,name,type\n1,Caja,asset\n")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUnavailable))
	assert.Equal(t, 1, res.Imported)
	assert.Nil(t, res.Accounts, "an unavailable store is never reported as an empty chart")
}

func TestImport_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im := New(store.NewMemory(), zaptest.NewLogger(t))
	_, err := im.Import(ctx, Request{Owner: "o", Format: "csv", Content: []byte("code,name,type\n1,Caja,asset\n")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveLevels(t *testing.T) {
	levels := resolveLevels(map[string]string{
		"root":  "",
		"child": "root",
		"grand": "child",
		"orph":  "gone",
		"x":     "y",
		"y":     "x",
	})
	assert.Equal(t, 1, levels["root"])
	assert.Equal(t, 2, levels["child"])
	assert.Equal(t, 3, levels["grand"])
	assert.Equal(t, 1, levels["orph"])
	assert.Positive(t, levels["x"], "a stored cycle still terminates")
}
