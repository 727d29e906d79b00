package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mrwhyte0520/billsdr-sub004/internal/accounts"
	"github.com/mrwhyte0520/billsdr-sub004/internal/id"
	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
	"github.com/mrwhyte0520/billsdr-sub004/internal/store"
)

// Store is the part of the record store the journal writes through.
type Store interface {
	store.Accounts
	store.Entries
}

// Service provides business logic for journal entries.
type Service struct {
	store     Store
	log       *zap.Logger
	now       func() time.Time
	tolerance decimal.Decimal
	prefix    string
}

// Option configures a Service.
type Option func(*Service)

// WithTolerance sets the allowed debit/credit difference.
func WithTolerance(t decimal.Decimal) Option {
	return func(s *Service) { s.tolerance = t }
}

// WithEntryPrefix sets the prefix of generated entry numbers.
func WithEntryPrefix(prefix string) Option {
	return func(s *Service) { s.prefix = prefix }
}

// WithClock replaces time.Now for entry numbers and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a journal Service.
func NewService(st Store, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		store:     st,
		log:       log,
		now:       time.Now,
		tolerance: DefaultTolerance,
		prefix:    id.EntryPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EntryInput is a journal entry as submitted from a form.
type EntryInput struct {
	// Number is generated when empty.
	Number string
	// Date defaults to today.
	Date        time.Time
	Description string
	Reference   string
	Lines       []LineInput
}

// Submit validates in and posts it: the entry and its lines are stored
// and every referenced account balance is updated. An unbalanced entry is
// rejected before anything is written.
func (s *Service) Submit(ctx context.Context, ownerID string, in EntryInput) (model.JournalEntry, error) {
	log := s.log.With(zap.String("owner", ownerID))

	if err := CheckBalance(in.Lines, s.tolerance); err != nil {
		log.Info("journal entry rejected", zap.Error(err))
		return model.JournalEntry{}, err
	}

	lines := FilterLines(in.Lines)
	if len(lines) == 0 {
		return model.JournalEntry{}, ErrNoLines
	}
	if err := CheckBalance(lines, s.tolerance); err != nil {
		log.Info("journal entry rejected after dropping lines without an account", zap.Error(err))
		return model.JournalEntry{}, err
	}

	chart, err := accounts.Load(ctx, s.store, ownerID)
	if err != nil {
		return model.JournalEntry{}, err
	}
	if verrs := ValidateLines(lines, chart); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, ve := range verrs {
			errs[i] = ve
		}
		err := fmt.Errorf("validation failed: %w", errors.Join(errs...))
		log.Info("journal entry rejected", zap.Error(err))
		return model.JournalEntry{}, err
	}

	debit, credit := Totals(lines)
	entry := model.JournalEntry{
		EntryNumber: strings.TrimSpace(in.Number),
		EntryDate:   in.Date,
		Description: strings.TrimSpace(in.Description),
		Reference:   strings.TrimSpace(in.Reference),
		TotalDebit:  debit,
		TotalCredit: credit,
		Status:      model.StatusPosted,
		Lines:       ToLines(lines),
	}
	now := s.now()
	if entry.EntryNumber == "" {
		entry.EntryNumber = id.FormatEntryNumber(s.prefix, now)
	}
	if entry.EntryDate.IsZero() {
		entry.EntryDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	created, err := s.store.PostEntry(ctx, ownerID, entry)
	if err != nil {
		log.Error("journal entry not posted", zap.String("entry", entry.EntryNumber), zap.Error(err))
		return model.JournalEntry{}, fmt.Errorf("posting entry %s: %w", entry.EntryNumber, err)
	}

	log.Info("journal entry posted",
		zap.String("entry", created.EntryNumber),
		zap.String("debit", debit.StringFixed(2)),
		zap.String("credit", credit.StringFixed(2)),
		zap.Int("lines", len(created.Lines)),
	)
	return created, nil
}

// List returns the journal entries of ownerID.
func (s *Service) List(ctx context.Context, ownerID string) ([]model.JournalEntry, error) {
	entries, err := s.store.Entries(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	return entries, nil
}
