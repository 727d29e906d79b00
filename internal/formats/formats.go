// Package formats reads chart-of-accounts import files in the formats of
// common accounting systems and generates an example file for each.
package formats

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

// FormatID names a supported import format.
type FormatID string

const (
	CSV        FormatID = "csv"
	QuickBooks FormatID = "quickbooks"
	Excel      FormatID = "excel"
	Sage       FormatID = "sage"
	SAP        FormatID = "sap"
	Xero       FormatID = "xero"
	JSON       FormatID = "json"
	XML        FormatID = "xml"
)

// Format describes one import format.
type Format struct {
	ID         FormatID
	Name       string
	Extensions []string
	// Vocabulary maps the raw account types the parser yields. The IIF
	// parser maps QuickBooks types itself and yields canonical ones.
	Vocabulary Vocabulary
	// TemplateName is the suggested file name for the template.
	TemplateName string

	parse    func(content []byte, ext string) ([]model.ImportRecord, error)
	template func() ([]byte, error)
}

// Parse converts the content of filename into import records. The file
// name is only used for its extension.
func (f Format) Parse(content []byte, filename string) ([]model.ImportRecord, error) {
	return f.parse(content, strings.ToLower(filepath.Ext(filename)))
}

// Template returns an example file for the format.
func (f Format) Template() ([]byte, error) {
	return f.template()
}

// Accepts reports whether filename has one of the format's extensions.
func (f Format) Accepts(filename string) bool {
	return slices.Contains(f.Extensions, strings.ToLower(filepath.Ext(filename)))
}

func ignoreExt(p func([]byte) ([]model.ImportRecord, error)) func([]byte, string) ([]model.ImportRecord, error) {
	return func(content []byte, _ string) ([]model.ImportRecord, error) { return p(content) }
}

// parseSAP reads SAP exports as XML unless the file is a .csv export.
func parseSAP(content []byte, ext string) ([]model.ImportRecord, error) {
	if ext == ".csv" {
		return ParseCSV(content)
	}
	return ParseXML(content)
}

var registry = []Format{
	{ID: CSV, Name: "CSV", Extensions: []string{".csv"}, TemplateName: "chart-of-accounts.csv", parse: ignoreExt(ParseCSV), template: literal(csvTemplate)},
	{ID: QuickBooks, Name: "QuickBooks IIF", Extensions: []string{".iif"}, TemplateName: "chart-of-accounts.iif", parse: ignoreExt(ParseIIF), template: literal(iifTemplate)},
	{ID: Excel, Name: "Excel", Extensions: []string{".xlsx", ".csv"}, TemplateName: "chart-of-accounts.xlsx", parse: ignoreExt(ParseExcel), template: excelTemplate},
	{ID: Sage, Name: "Sage", Extensions: []string{".csv"}, Vocabulary: VocabularySage, TemplateName: "sage-chart-of-accounts.csv", parse: ignoreExt(ParseCSV), template: literal(sageTemplate)},
	{ID: SAP, Name: "SAP", Extensions: []string{".xml", ".csv"}, TemplateName: "sap-chart-of-accounts.xml", parse: parseSAP, template: literal(sapTemplate)},
	{ID: Xero, Name: "Xero", Extensions: []string{".csv"}, TemplateName: "xero-chart-of-accounts.csv", parse: ignoreExt(ParseCSV), template: literal(xeroTemplate)},
	{ID: JSON, Name: "JSON", Extensions: []string{".json"}, TemplateName: "chart-of-accounts.json", parse: ignoreExt(ParseJSON), template: literal(jsonTemplate)},
	{ID: XML, Name: "XML", Extensions: []string{".xml"}, TemplateName: "chart-of-accounts.xml", parse: ignoreExt(ParseXML), template: literal(xmlTemplate)},
}

var byID = func() map[FormatID]Format {
	m := make(map[FormatID]Format, len(registry))
	for _, f := range registry {
		if _, ok := m[f.ID]; ok {
			panic("duplicate import format: " + string(f.ID))
		}
		m[f.ID] = f
	}
	return m
}()

// Lookup returns the format with the given id, ignoring case.
func Lookup(id string) (Format, bool) {
	f, ok := byID[FormatID(strings.ToLower(strings.TrimSpace(id)))]
	return f, ok
}

// Resolve is like Lookup but returns an error naming the known formats.
func Resolve(id string) (Format, error) {
	f, ok := Lookup(id)
	if !ok {
		return Format{}, fmt.Errorf("unknown import format %q (supported: %s)", id, strings.Join(IDs(), ", "))
	}
	return f, nil
}

// All returns every supported format in display order.
func All() []Format {
	return slices.Clone(registry)
}

// IDs returns the ids of every supported format.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, f := range registry {
		ids[i] = string(f.ID)
	}
	return ids
}
