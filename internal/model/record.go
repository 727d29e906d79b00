package model

import "github.com/shopspring/decimal"

// ImportRecord is one account as read from an import file, before the
// type is mapped and before it is persisted.
type ImportRecord struct {
	Code        string
	Name        string
	Type        string // raw, possibly in a foreign vocabulary
	ParentCode  string
	Description string
	Balance     decimal.Decimal
}
