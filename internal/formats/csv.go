package formats

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

const (
	minFields = 3
	colCode   = 0
	colName   = 1
	colType   = 2
	colParent = 3
	colDesc   = 4
	colBal    = 5
)

// ParseCSV reads chart-of-accounts rows in the column order
// code, name, type, parentCode, description, balance. The first line is a
// header. Blank lines and lines with fewer than three columns are skipped.
func ParseCSV(content []byte) ([]model.ImportRecord, error) {
	lines := strings.Split(decodeText(content), "\n")
	if len(lines) <= 1 {
		return nil, nil
	}

	var records []model.ImportRecord
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, ok := recordFromFields(splitCSVLine(line))
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// splitCSVLine splits one line on commas. Quoted fields may contain
// commas; a line the CSV reader rejects or collapses into too few fields
// is split naively instead.
func splitCSVLine(line string) []string {
	cr := csv.NewReader(strings.NewReader(line))
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	fields, err := cr.Read()
	if err != nil || len(fields) < minFields {
		return strings.Split(line, ",")
	}
	return fields
}

// recordFromFields builds a record from one row of cells. The boolean is
// false when the row has too few columns.
func recordFromFields(fields []string) (model.ImportRecord, bool) {
	if len(fields) < minFields {
		return model.ImportRecord{}, false
	}
	for i := range fields {
		fields[i] = cleanField(fields[i])
	}
	rec := model.ImportRecord{
		Code: fields[colCode],
		Name: fields[colName],
		Type: fields[colType],
	}
	if len(fields) > colParent {
		rec.ParentCode = fields[colParent]
	}
	if len(fields) > colDesc {
		rec.Description = fields[colDesc]
	}
	if len(fields) > colBal {
		rec.Balance = parseAmount(fields[colBal])
	}
	return rec, true
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

// parseAmount parses a balance cell; blank or unparsable cells are zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// decodeText returns content as a string without a leading UTF-8 BOM.
func decodeText(content []byte) string {
	return strings.TrimPrefix(string(content), "\ufeff")
}
