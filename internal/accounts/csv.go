package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

const (
	numFields    = 10
	colCode      = 0
	colName      = 1
	colType      = 2
	colParent    = 3
	colLevel     = 4
	colNormal    = 5
	colPosting   = 6
	colActive    = 7
	colBalance   = 8
	colDesc      = 9
	exportTitle  = "Chart of Accounts"
	exportLayout = "2006-01-02"
)

var exportHeader = []string{
	"code", "name", "type", "parent_code", "level",
	"normal_balance", "allow_posting", "active", "balance", "description",
}

// ExportCSV writes the chart of accounts as a report: a header block, one
// row per account and a per-type summary. The output is meant for people
// and is not accepted by the CSV importer.
func ExportCSV(w io.Writer, owner string, generated time.Time, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	codes := make(map[string]string, len(accounts))
	for _, a := range accounts {
		codes[a.ID] = a.Code
	}

	block := [][]string{
		{exportTitle},
		{"owner", owner},
		{"generated", generated.Format(exportLayout)},
		{},
		exportHeader,
	}
	for _, row := range block {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct, codes[acct.ParentID])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	for _, row := range summaryRows(accounts) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to an export row. parentCode is the
// code of the parent account, empty for a root.
func MarshalAccount(acct model.Account, parentCode string) []string {
	row := make([]string, numFields)
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colParent] = parentCode
	row[colLevel] = strconv.Itoa(acct.Level)
	row[colNormal] = string(acct.NormalBalance)
	row[colPosting] = strconv.FormatBool(acct.AllowPosting)
	row[colActive] = strconv.FormatBool(acct.IsActive)
	row[colBalance] = acct.Balance.StringFixed(2)
	row[colDesc] = acct.Description
	return row
}

func summaryRows(accounts []model.Account) [][]string {
	counts := make(map[model.AccountType]int)
	totals := make(map[model.AccountType]decimal.Decimal)
	for _, a := range accounts {
		counts[a.Type]++
		totals[a.Type] = totals[a.Type].Add(a.Balance)
	}

	rows := [][]string{{"summary"}, {"type", "accounts", "balance"}}
	for _, t := range model.AccountTypes {
		rows = append(rows, []string{string(t), strconv.Itoa(counts[t]), totals[t].StringFixed(2)})
	}
	rows = append(rows, []string{"total", strconv.Itoa(len(accounts)), ""})
	return rows
}
