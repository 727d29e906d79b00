package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

var (
	// ErrInvalidJSON is returned when the document is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON document")
	// ErrNotArray is returned when the JSON root is not an array.
	ErrNotArray = errors.New("JSON root must be an array of accounts")
)

// Field names accepted for each record field, canonical name first.
var (
	jsonCodeKeys   = []string{"code", "accountCode"}
	jsonNameKeys   = []string{"name", "accountName"}
	jsonTypeKeys   = []string{"type", "accountType"}
	jsonParentKeys = []string{"parentCode", "parent"}
	jsonDescKeys   = []string{"description"}
	jsonBalKeys    = []string{"balance"}
)

// ParseJSON reads a top-level JSON array of account objects. Any other
// root fails the whole import. Elements that are not objects are skipped.
func ParseJSON(content []byte) ([]model.ImportRecord, error) {
	dec := json.NewDecoder(strings.NewReader(decodeText(content)))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	items, ok := root.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	records := make([]model.ImportRecord, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, model.ImportRecord{
			Code:        jsonString(obj, jsonCodeKeys),
			Name:        jsonString(obj, jsonNameKeys),
			Type:        jsonString(obj, jsonTypeKeys),
			ParentCode:  jsonString(obj, jsonParentKeys),
			Description: jsonString(obj, jsonDescKeys),
			Balance:     parseAmount(jsonString(obj, jsonBalKeys)),
		})
	}
	return records, nil
}

// jsonString returns the first non-empty value among keys as a string.
func jsonString(obj map[string]any, keys []string) string {
	for _, k := range keys {
		var s string
		switch v := obj[k].(type) {
		case string:
			s = v
		case json.Number:
			s = v.String()
		case bool:
			s = fmt.Sprint(v)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
