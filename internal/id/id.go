package id

import (
	"fmt"
	"time"
)

// EntryPrefix is the prefix of generated journal entry numbers.
const EntryPrefix = "JE-"

const suffixDigits = 6

// FormatEntryNumber returns an entry number like "JE-123456" built from
// the last six digits of t in Unix milliseconds.
func FormatEntryNumber(prefix string, t time.Time) string {
	ms := t.UnixMilli() % 1_000_000
	if ms < 0 {
		ms = -ms
	}
	return fmt.Sprintf("%s%0*d", prefix, suffixDigits, ms)
}
