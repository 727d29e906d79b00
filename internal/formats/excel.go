package formats

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

// xlsx files are zip archives.
var zipMagic = []byte("PK\x03\x04")

const excelSheet = "Accounts"

// ParseExcel reads the first sheet of an .xlsx workbook with the same
// column layout as the CSV format. Content that is not an xlsx workbook
// is read as CSV text; legacy binary .xls files are not supported.
func ParseExcel(content []byte) ([]model.ImportRecord, error) {
	if !bytes.HasPrefix(content, zipMagic) {
		return ParseCSV(content)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	var records []model.ImportRecord
	for _, row := range rows[1:] {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		rec, ok := recordFromFields(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// workbook writes rows to a single-sheet xlsx workbook.
func workbook(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(excelSheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
