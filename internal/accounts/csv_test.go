package accounts

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

func TestExportCSV(t *testing.T) {
	accts := chart()
	accts[3].Balance = decimal.RequireFromString("-120.5")

	var buf bytes.Buffer
	err := ExportCSV(&buf, "Ferreteria Central", time.Date(2025, 3, 9, 14, 0, 0, 0, time.UTC), accts)
	require.NoError(t, err)

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Chart of Accounts"}, rows[0])
	assert.Equal(t, []string{"owner", "Ferreteria Central"}, rows[1])
	assert.Equal(t, []string{"generated", "2025-03-09"}, rows[2])
	assert.Equal(t, exportHeader, rows[3], "blank lines are skipped by the reader")

	cash := rows[6]
	assert.Equal(t, "1110", cash[colCode])
	assert.Equal(t, "1100", cash[colParent])
	assert.Equal(t, "3", cash[colLevel])
	assert.Equal(t, "true", cash[colPosting])
	assert.Equal(t, "5000.00", cash[colBalance])
	assert.Equal(t, "", rows[4][colParent], "roots have no parent code")

	summary := rows[4+len(accts):]
	require.Len(t, summary, 2+len(model.AccountTypes)+1)
	assert.Equal(t, []string{"summary"}, summary[0])
	assert.Equal(t, []string{"asset", "3", "5000.00"}, summary[2])
	assert.Equal(t, []string{"liability", "1", "-120.50"}, summary[3])
	assert.Equal(t, []string{"income", "0", "0.00"}, summary[5])
	assert.Equal(t, []string{"total", "5", ""}, summary[len(summary)-1])
}

func TestMarshalAccount(t *testing.T) {
	row := MarshalAccount(model.Account{
		Code:          "3000",
		Name:          "PATRIMONIO",
		Type:          model.AccountTypeEquity,
		Level:         1,
		NormalBalance: model.NormalCredit,
		IsActive:      true,
		Description:   "Capital, reservas y resultados",
	}, "")
	require.Len(t, row, numFields)
	assert.Equal(t, "credit", row[colNormal])
	assert.Equal(t, "false", row[colPosting])
	assert.Equal(t, "0.00", row[colBalance])
	assert.Equal(t, "Capital, reservas y resultados", row[colDesc])
}
