package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle state of a journal entry.
type EntryStatus string

// StatusPosted marks an entry whose lines have moved account balances.
const StatusPosted EntryStatus = "posted"

// JournalEntry is a balanced set of postings recorded as one transaction.
type JournalEntry struct {
	ID          string
	OwnerID     string
	EntryNumber string // "JE-NNNNNN" when generated
	EntryDate   time.Time
	Description string
	Reference   string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Status      EntryStatus
	Lines       []JournalLine
}

// JournalLine is a single posting against one account.
type JournalLine struct {
	AccountID    string
	Description  string
	DebitAmount  decimal.Decimal // zero if credit side
	CreditAmount decimal.Decimal // zero if debit side
}
