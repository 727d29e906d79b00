package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

// Header is the column header row of the ledger export.
const Header = "entry_number,date,reference,entry_description,account_code,account_name,line_description,debit,credit,status"

const (
	numFields   = 10
	dateFormat  = "2006-01-02"
	colNumber   = 0
	colDate     = 1
	colRef      = 2
	colEntry    = 3
	colAcctCode = 4
	colAcctName = 5
	colLineDesc = 6
	colDebit    = 7
	colCredit   = 8
	colStatus   = 9
	exportTitle = "General Journal"
)

// ExportCSV writes entries as a ledger report: a header block, one row
// per line and a totals section. accts resolves account ids to codes and
// names; unknown ids are written as they are.
func ExportCSV(w io.Writer, owner string, generated time.Time, entries []model.JournalEntry, accts []model.Account) error {
	cw := csv.NewWriter(w)

	byID := make(map[string]model.Account, len(accts))
	for _, a := range accts {
		byID[a.ID] = a
	}

	block := [][]string{
		{exportTitle},
		{"owner", owner},
		{"generated", generated.Format(dateFormat)},
		{},
		strings.Split(Header, ","),
	}
	for _, row := range block {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	debit, credit := decimal.Zero, decimal.Zero
	lines := 0
	for _, e := range entries {
		for _, l := range e.Lines {
			if err := cw.Write(MarshalLine(e, l, byID[l.AccountID])); err != nil {
				return fmt.Errorf("writing entry %s: %w", e.EntryNumber, err)
			}
			debit = debit.Add(l.DebitAmount)
			credit = credit.Add(l.CreditAmount)
			lines++
		}
	}

	totals := [][]string{
		{},
		{"totals"},
		{"entries", strconv.Itoa(len(entries))},
		{"lines", strconv.Itoa(lines)},
		{"debit", debit.StringFixed(2)},
		{"credit", credit.StringFixed(2)},
		{"difference", debit.Sub(credit).StringFixed(2)},
	}
	for _, row := range totals {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing totals: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// MarshalLine converts one line of entry to an export row. acct is the
// line's account, zero when unknown.
func MarshalLine(e model.JournalEntry, l model.JournalLine, acct model.Account) []string {
	row := make([]string, numFields)
	row[colNumber] = e.EntryNumber
	row[colDate] = e.EntryDate.Format(dateFormat)
	row[colRef] = e.Reference
	row[colEntry] = e.Description
	row[colAcctCode] = l.AccountID
	if acct.ID != "" {
		row[colAcctCode] = acct.Code
		row[colAcctName] = acct.Name
	}
	row[colLineDesc] = l.Description

	if !l.DebitAmount.IsZero() {
		row[colDebit] = l.DebitAmount.StringFixed(2)
	}
	if !l.CreditAmount.IsZero() {
		row[colCredit] = l.CreditAmount.StringFixed(2)
	}
	row[colStatus] = string(e.Status)
	return row
}
