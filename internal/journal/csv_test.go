package journal

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestExportCSV(t *testing.T) {
	accts := []model.Account{
		{ID: "id-cash", Code: "1110", Name: "Caja General"},
		{ID: "id-rent", Code: "5200", Name: "Alquiler"},
	}
	entries := []model.JournalEntry{
		{
			EntryNumber: "JE-000001",
			EntryDate:   date(2025, 1, 3),
			Description: "Pago de alquiler",
			Reference:   "FAC-1",
			Status:      model.StatusPosted,
			Lines: []model.JournalLine{
				{AccountID: "id-rent", Description: "Enero", DebitAmount: dec("1200")},
				{AccountID: "id-cash", CreditAmount: dec("1200")},
			},
		},
		{
			EntryNumber: "JE-000002",
			EntryDate:   date(2025, 1, 9),
			Description: "Ajuste",
			Status:      model.StatusPosted,
			Lines: []model.JournalLine{
				{AccountID: "id-gone", DebitAmount: dec("0.5")},
				{AccountID: "id-cash", CreditAmount: dec("0.5")},
			},
		},
	}

	var buf bytes.Buffer
	err := ExportCSV(&buf, "Ferreteria Central", date(2025, 2, 1), entries, accts)
	require.NoError(t, err)

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"General Journal"}, rows[0])
	assert.Equal(t, []string{"generated", "2025-02-01"}, rows[2])
	assert.Equal(t, strings.Split(Header, ","), rows[3])

	first := rows[4]
	assert.Equal(t, "JE-000001", first[colNumber])
	assert.Equal(t, "2025-01-03", first[colDate])
	assert.Equal(t, "5200", first[colAcctCode])
	assert.Equal(t, "Alquiler", first[colAcctName])
	assert.Equal(t, "1200.00", first[colDebit])
	assert.Equal(t, "", first[colCredit])
	assert.Equal(t, "posted", first[colStatus])

	orphan := rows[6]
	assert.Equal(t, "id-gone", orphan[colAcctCode], "unknown accounts keep their id")
	assert.Equal(t, "", orphan[colAcctName])

	totals := rows[8:]
	assert.Equal(t, [][]string{
		{"totals"},
		{"entries", "2"},
		{"lines", "4"},
		{"debit", "1200.50"},
		{"credit", "1200.50"},
		{"difference", "0.00"},
	}, totals)
}

func TestExportCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, "x", date(2025, 1, 1), nil, nil))
	assert.Contains(t, buf.String(), "entries,0\n")
	assert.Contains(t, buf.String(), "debit,0.00\n")
}

func TestMarshalLine(t *testing.T) {
	row := MarshalLine(
		model.JournalEntry{EntryNumber: "JE-1", EntryDate: date(2025, 3, 1), Status: model.StatusPosted},
		model.JournalLine{AccountID: "a", CreditAmount: decimal.RequireFromString("3.456")},
		model.Account{},
	)
	require.Len(t, row, numFields)
	assert.Equal(t, "", row[colDebit])
	assert.Equal(t, "3.46", row[colCredit])
	assert.Equal(t, "posted", row[colStatus])
}
