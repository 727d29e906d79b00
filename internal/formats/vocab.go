package formats

import (
	"strings"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

// Vocabulary identifies the account-type words a source system uses.
type Vocabulary int

const (
	VocabularyCanonical Vocabulary = iota
	VocabularyQuickBooks
	VocabularySage
)

func (v Vocabulary) String() string {
	switch v {
	case VocabularyQuickBooks:
		return "quickbooks"
	case VocabularySage:
		return "sage"
	default:
		return "canonical"
	}
}

var canonicalTypes = map[string]model.AccountType{
	"asset":     model.AccountTypeAsset,
	"liability": model.AccountTypeLiability,
	"equity":    model.AccountTypeEquity,
	"income":    model.AccountTypeIncome,
	"revenue":   model.AccountTypeIncome,
	"expense":   model.AccountTypeExpense,
}

// Keys are lowercase; callers lowercase the raw type before lookup.
var quickBooksTypes = map[string]model.AccountType{
	"bank":                    model.AccountTypeAsset,
	"accounts receivable":     model.AccountTypeAsset,
	"other current asset":     model.AccountTypeAsset,
	"fixed asset":             model.AccountTypeAsset,
	"other asset":             model.AccountTypeAsset,
	"accounts payable":        model.AccountTypeLiability,
	"credit card":             model.AccountTypeLiability,
	"other current liability": model.AccountTypeLiability,
	"long term liability":     model.AccountTypeLiability,
	"equity":                  model.AccountTypeEquity,
	"income":                  model.AccountTypeIncome,
	"other income":            model.AccountTypeIncome,
	"cost of goods sold":      model.AccountTypeExpense,
	"expense":                 model.AccountTypeExpense,
	"other expense":           model.AccountTypeExpense,
	// IIF ACCNTTYPE short codes.
	"ar":       model.AccountTypeAsset,
	"ocasset":  model.AccountTypeAsset,
	"fixasset": model.AccountTypeAsset,
	"oasset":   model.AccountTypeAsset,
	"ap":       model.AccountTypeLiability,
	"ccard":    model.AccountTypeLiability,
	"ocliab":   model.AccountTypeLiability,
	"ltliab":   model.AccountTypeLiability,
	"inc":      model.AccountTypeIncome,
	"exinc":    model.AccountTypeIncome,
	"cogs":     model.AccountTypeExpense,
	"exp":      model.AccountTypeExpense,
	"exexp":    model.AccountTypeExpense,
}

var sageTypes = map[string]model.AccountType{
	"bank":                  model.AccountTypeAsset,
	"current assets":        model.AccountTypeAsset,
	"fixed assets":          model.AccountTypeAsset,
	"debtors":               model.AccountTypeAsset,
	"stock":                 model.AccountTypeAsset,
	"current liabilities":   model.AccountTypeLiability,
	"long term liabilities": model.AccountTypeLiability,
	"creditors":             model.AccountTypeLiability,
	"vat":                   model.AccountTypeLiability,
	"capital":               model.AccountTypeEquity,
	"reserves":              model.AccountTypeEquity,
	"sales":                 model.AccountTypeIncome,
	"other income":          model.AccountTypeIncome,
	"purchases":             model.AccountTypeExpense,
	"direct expenses":       model.AccountTypeExpense,
	"overheads":             model.AccountTypeExpense,
	"nominal":               model.AccountTypeExpense,
}

// MapType translates a source-system account type into a canonical type.
// Unknown and empty types map to asset so an import never stops on a word
// it does not recognise.
func MapType(v Vocabulary, raw string) model.AccountType {
	var (
		table map[string]model.AccountType
		key   string
	)
	switch v {
	case VocabularyQuickBooks:
		table, key = quickBooksTypes, strings.TrimSpace(raw)
	case VocabularySage:
		table, key = sageTypes, strings.ToLower(strings.TrimSpace(raw))
	default:
		table, key = canonicalTypes, strings.ToLower(strings.TrimSpace(raw))
	}
	if t, ok := table[key]; ok {
		return t
	}
	return model.AccountTypeAsset
}
