package formats

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

// ErrInvalidXML is returned when an XML document cannot be read at all.
var ErrInvalidXML = errors.New("invalid XML document")

const xmlAccountElement = "account"

type xmlAccount struct {
	Code        string       `xml:"code,attr"`
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr"`
	Parent      string       `xml:"parent,attr"`
	Description string       `xml:"description,attr"`
	Balance     string       `xml:"balance,attr"`
	Text        string       `xml:",chardata"`
	Children    []xmlAccount `xml:"account"`
}

// ParseXML reads every <account> element in the document, at any depth.
// Attributes code, name, type, parent, description and balance are read;
// the element text stands in for a missing name and type defaults to
// asset. An account nested inside another takes the outer code as its
// parent unless it names one itself.
//
// Decoding stops at the first syntax error. Accounts read before it are
// returned; if there are none the error is returned instead.
func ParseXML(content []byte) ([]model.ImportRecord, error) {
	dec := xml.NewDecoder(strings.NewReader(decodeText(content)))

	var records []model.ImportRecord
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return partialXML(records, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != xmlAccountElement {
			continue
		}
		var acct xmlAccount
		if err := dec.DecodeElement(&acct, &start); err != nil {
			return partialXML(records, err)
		}
		records = flattenXML(records, acct, "")
	}
}

func partialXML(records []model.ImportRecord, err error) ([]model.ImportRecord, error) {
	if len(records) > 0 {
		return records, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
}

func flattenXML(records []model.ImportRecord, acct xmlAccount, parentCode string) []model.ImportRecord {
	rec := model.ImportRecord{
		Code:        strings.TrimSpace(acct.Code),
		Name:        strings.TrimSpace(acct.Name),
		Type:        strings.TrimSpace(acct.Type),
		ParentCode:  strings.TrimSpace(acct.Parent),
		Description: strings.TrimSpace(acct.Description),
		Balance:     parseAmount(acct.Balance),
	}
	if rec.Name == "" {
		rec.Name = strings.TrimSpace(acct.Text)
	}
	if rec.Type == "" {
		rec.Type = string(model.AccountTypeAsset)
	}
	if rec.ParentCode == "" {
		rec.ParentCode = parentCode
	}
	records = append(records, rec)
	for _, child := range acct.Children {
		records = flattenXML(records, child, rec.Code)
	}
	return records
}
