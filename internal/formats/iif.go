package formats

import (
	"strings"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

const (
	iifMarker     = "ACCNT"
	iifMinFields  = 4
	iifColCode    = 1
	iifColType    = 2
	iifColDesc    = 3
	iifColBalance = 4
)

// ParseIIF reads the ACCNT rows of an IIF export. Rows are tab separated
// as ACCNT, code, type, description, balance; header rows ("!ACCNT") and
// every other record type are ignored. Account types are mapped through
// the QuickBooks vocabulary. The description doubles as the account name,
// falling back to the code when blank.
func ParseIIF(content []byte) ([]model.ImportRecord, error) {
	var records []model.ImportRecord
	for _, line := range strings.Split(decodeText(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, iifMarker) {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < iifMinFields || parts[0] != iifMarker {
			continue
		}
		rec := model.ImportRecord{
			Code:        strings.TrimSpace(parts[iifColCode]),
			Type:        string(MapType(VocabularyQuickBooks, strings.ToLower(strings.TrimSpace(parts[iifColType])))),
			Description: strings.TrimSpace(parts[iifColDesc]),
		}
		rec.Name = rec.Description
		if rec.Name == "" {
			rec.Name = rec.Code
		}
		if len(parts) > iifColBalance {
			rec.Balance = parseAmount(parts[iifColBalance])
		}
		records = append(records, rec)
	}
	return records, nil
}
