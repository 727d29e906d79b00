// Package importer loads a chart-of-accounts file into the record store.
// Records are persisted one at a time; a failing record is reported and
// the rest of the file is still imported.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mrwhyte0520/billsdr-sub004/internal/formats"
	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
	"github.com/mrwhyte0520/billsdr-sub004/internal/store"
)

// ErrNoOwner is returned for a request without an owner.
var ErrNoOwner = errors.New("import request has no owner")

// Status summarizes how an import went.
type Status string

const (
	// StatusOK means every parsed record was imported.
	StatusOK Status = "ok"
	// StatusPartial means some records were imported and some failed.
	StatusPartial Status = "partial"
	// StatusFailed means records were parsed but none was imported.
	StatusFailed Status = "failed"
	// StatusEmpty means the file parsed cleanly and held no records.
	StatusEmpty Status = "empty"
	// StatusUnparsable means the file could not be parsed at all.
	StatusUnparsable Status = "unparsable"
)

// Request is one file to import.
type Request struct {
	Owner    string
	Format   string
	Filename string
	Content  []byte
}

// RecordError reports why a record was not imported or linked. Line is
// the 1-based position of the record in the parser output.
type RecordError struct {
	Line   int
	Record model.ImportRecord
	Reason string
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %s", e.Line, e.Record.Code, e.Reason)
}

// Result is the outcome of an import.
type Result struct {
	Status Status
	Format formats.FormatID
	// Parsed is the number of records the parser produced.
	Parsed int
	// Imported is the number of records persisted.
	Imported int
	// Skipped counts records dropped for a missing code or name.
	Skipped int
	// Linked counts records attached to their parent account.
	Linked int
	Errors []RecordError
	// ParseError is set when Status is StatusUnparsable.
	ParseError error
	// Accounts is the owner's chart as reloaded after the import.
	Accounts []model.Account
}

// ProgressFunc is called after each record with the number of records
// processed so far and the total.
type ProgressFunc func(done, total int)

// Importer runs imports against a record store.
type Importer struct {
	store          store.Accounts
	log            *zap.Logger
	resolveParents bool
	progress       ProgressFunc
}

// Option configures an Importer.
type Option func(*Importer)

// WithFlatImport disables the parent linking pass. Every account is then
// imported as a root at level 1.
func WithFlatImport() Option {
	return func(im *Importer) { im.resolveParents = false }
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(im *Importer) { im.progress = fn }
}

// New creates an Importer writing through st.
func New(st store.Accounts, log *zap.Logger, opts ...Option) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	im := &Importer{store: st, log: log, resolveParents: true}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import parses req.Content in req.Format and persists its accounts. The
// returned error is reserved for a bad request or a store that cannot be
// read; per-record failures are reported in Result.Errors.
func (im *Importer) Import(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Owner) == "" {
		return Result{}, ErrNoOwner
	}
	format, err := formats.Resolve(req.Format)
	if err != nil {
		return Result{}, err
	}
	log := im.log.With(zap.String("format", string(format.ID)), zap.String("file", req.Filename))
	if req.Filename != "" && !format.Accepts(req.Filename) {
		log.Warn("file extension not expected for format", zap.Strings("extensions", format.Extensions))
	}

	result := Result{Format: format.ID}
	records, err := format.Parse(req.Content, req.Filename)
	if err != nil {
		log.Warn("import file unparsable", zap.Error(err))
		result.Status = StatusUnparsable
		result.ParseError = err
		return result, nil
	}
	result.Parsed = len(records)
	if len(records) == 0 {
		result.Status = StatusEmpty
		log.Info("import file has no records")
		return result, nil
	}

	created := make(map[string]int, len(records))
	for i, rec := range records {
		line := i + 1
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("import interrupted at record %d: %w", line, err)
		}
		if strings.TrimSpace(rec.Code) == "" || strings.TrimSpace(rec.Name) == "" {
			result.Skipped++
			im.report(line, len(records))
			continue
		}

		acct := newAccount(format, rec)
		if _, err := im.store.CreateAccount(ctx, req.Owner, acct); err != nil {
			log.Warn("import record failed", zap.Int("line", line), zap.String("code", acct.Code), zap.Error(err))
			result.Errors = append(result.Errors, RecordError{Line: line, Record: rec, Reason: err.Error()})
		} else {
			result.Imported++
			created[acct.Code] = i
		}
		im.report(line, len(records))
	}

	accts, err := im.store.Accounts(ctx, req.Owner)
	if err != nil {
		return result, fmt.Errorf("reloading accounts: %w", err)
	}

	if im.resolveParents {
		accts, err = im.link(ctx, req.Owner, accts, records, created, &result)
		if err != nil {
			return result, err
		}
	}
	result.Accounts = accts
	result.Status = status(result)

	log.Info("import finished",
		zap.String("status", string(result.Status)),
		zap.Int("parsed", result.Parsed),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("linked", result.Linked),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (im *Importer) report(done, total int) {
	if im.progress != nil {
		im.progress(done, total)
	}
}

// newAccount builds the flat persistence payload for rec.
func newAccount(format formats.Format, rec model.ImportRecord) model.Account {
	typ := formats.MapType(format.Vocabulary, rec.Type)
	return model.Account{
		Code:          strings.TrimSpace(rec.Code),
		Name:          strings.TrimSpace(rec.Name),
		Type:          typ,
		Level:         1,
		Balance:       rec.Balance,
		IsActive:      true,
		NormalBalance: typ.NormalBalance(),
		AllowPosting:  true,
		Description:   rec.Description,
	}
}

func status(r Result) Status {
	switch {
	case r.Imported == 0:
		return StatusFailed
	case len(r.Errors) > 0:
		return StatusPartial
	default:
		return StatusOK
	}
}
