package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

// Amounts are stored as text so SQLite keeps exact decimals.
type accountRow struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)"`
	OwnerID       string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_accounts_owner_code"`
	Code          string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_accounts_owner_code"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Type          string          `gorm:"type:varchar(16);not null"`
	ParentID      string          `gorm:"type:varchar(36);index"`
	Level         int             `gorm:"not null"`
	Balance       decimal.Decimal `gorm:"type:text;not null"`
	IsActive      bool            `gorm:"not null"`
	NormalBalance string          `gorm:"type:varchar(8);not null"`
	AllowPosting  bool            `gorm:"not null"`
	Description   string          `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (accountRow) TableName() string { return "chart_accounts" }

type entryRow struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)"`
	OwnerID     string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_entries_owner_number"`
	EntryNumber string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_entries_owner_number"`
	EntryDate   time.Time       `gorm:"not null;index"`
	Description string          `gorm:"type:text"`
	Reference   string          `gorm:"type:varchar(64)"`
	TotalDebit  decimal.Decimal `gorm:"type:text;not null"`
	TotalCredit decimal.Decimal `gorm:"type:text;not null"`
	Status      string          `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time

	Lines []lineRow `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
}

func (entryRow) TableName() string { return "journal_entries" }

type lineRow struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	EntryID      string          `gorm:"type:varchar(36);not null;index"`
	Position     int             `gorm:"not null"`
	AccountID    string          `gorm:"type:varchar(36);not null;index"`
	Description  string          `gorm:"type:text"`
	DebitAmount  decimal.Decimal `gorm:"type:text;not null"`
	CreditAmount decimal.Decimal `gorm:"type:text;not null"`
}

func (lineRow) TableName() string { return "journal_lines" }

// SQLConfig configures the SQLite-backed store.
type SQLConfig struct {
	Path    string
	LogMode bool // log every SQL statement
}

// SQL is a Store on a SQLite database through GORM.
type SQL struct {
	db *gorm.DB
}

// OpenSQL opens (creating if needed) the SQLite database at cfg.Path and
// migrates the schema.
func OpenSQL(cfg SQLConfig) (*SQL, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	if err := db.AutoMigrate(&accountRow{}, &entryRow{}, &lineRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQL{db: db}, nil
}

// Close closes the underlying database.
func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateAccount inserts acct under ownerID with a new id.
func (s *SQL) CreateAccount(ctx context.Context, ownerID string, acct model.Account) (model.Account, error) {
	acct.ID = uuid.NewString()
	acct.OwnerID = ownerID
	row := toAccountRow(acct)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Account{}, translate(fmt.Sprintf("account code %q", acct.Code), err)
	}
	return fromAccountRow(row), nil
}

// Accounts returns every account of ownerID ordered by code.
func (s *SQL) Accounts(ctx context.Context, ownerID string) ([]model.Account, error) {
	var rows []accountRow
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("code").Find(&rows).Error; err != nil {
		return nil, translate("accounts", err)
	}
	accounts := make([]model.Account, len(rows))
	for i, row := range rows {
		accounts[i] = fromAccountRow(row)
	}
	return accounts, nil
}

// UpdateAccount overwrites the stored account with the same id. The owner
// cannot be changed.
func (s *SQL) UpdateAccount(ctx context.Context, acct model.Account) (model.Account, error) {
	db := s.db.WithContext(ctx)

	var existing accountRow
	if err := db.First(&existing, "id = ?", acct.ID).Error; err != nil {
		return model.Account{}, translate("account "+acct.ID, err)
	}

	row := toAccountRow(acct)
	row.OwnerID = existing.OwnerID
	row.CreatedAt = existing.CreatedAt
	if err := db.Save(&row).Error; err != nil {
		return model.Account{}, translate(fmt.Sprintf("account code %q", acct.Code), err)
	}
	return fromAccountRow(row), nil
}

// DeleteAccount removes the account with the given id.
func (s *SQL) DeleteAccount(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&accountRow{}, "id = ?", id)
	if result.Error != nil {
		return translate("account "+id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return nil
}

// CreateEntryWithLines inserts entry and its lines in one transaction.
func (s *SQL) CreateEntryWithLines(ctx context.Context, ownerID string, entry model.JournalEntry) (model.JournalEntry, error) {
	entry.ID = uuid.NewString()
	entry.OwnerID = ownerID
	row := toEntryRow(entry)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return model.JournalEntry{}, translate(fmt.Sprintf("entry number %q", entry.EntryNumber), err)
	}
	return fromEntryRow(row), nil
}

// PostEntry inserts entry and its lines and applies them to the account
// balances, all in one transaction.
func (s *SQL) PostEntry(ctx context.Context, ownerID string, entry model.JournalEntry) (model.JournalEntry, error) {
	entry.ID = uuid.NewString()
	entry.OwnerID = ownerID
	row := toEntryRow(entry)
	order, sums := postings(entry.Lines)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, accountID := range order {
			var acct accountRow
			if err := tx.First(&acct, "id = ? AND owner_id = ?", accountID, ownerID).Error; err != nil {
				return fmt.Errorf("account %s: %w", accountID, err)
			}
			balance := fromAccountRow(acct).Apply(sums[accountID].debit, sums[accountID].credit)
			if err := tx.Model(&accountRow{}).Where("id = ?", accountID).Update("balance", balance).Error; err != nil {
				return fmt.Errorf("account %s: %w", accountID, err)
			}
		}
		return nil
	})
	if err != nil {
		return model.JournalEntry{}, translate(fmt.Sprintf("posting entry %q", entry.EntryNumber), err)
	}
	return fromEntryRow(row), nil
}

// Entries returns every journal entry of ownerID by date with its lines
// in posting order.
func (s *SQL) Entries(ctx context.Context, ownerID string) ([]model.JournalEntry, error) {
	var rows []entryRow
	err := s.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("owner_id = ?", ownerID).
		Order("entry_date, entry_number").
		Find(&rows).Error
	if err != nil {
		return nil, translate("journal entries", err)
	}
	entries := make([]model.JournalEntry, len(rows))
	for i, row := range rows {
		entries[i] = fromEntryRow(row)
	}
	return entries, nil
}

func translate(what string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%s: %w", what, ErrDuplicate)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	default:
		return fmt.Errorf("%s: %w: %v", what, ErrUnavailable, err)
	}
}

func toAccountRow(a model.Account) accountRow {
	return accountRow{
		ID:            a.ID,
		OwnerID:       a.OwnerID,
		Code:          a.Code,
		Name:          a.Name,
		Type:          string(a.Type),
		ParentID:      a.ParentID,
		Level:         a.Level,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
		NormalBalance: string(a.NormalBalance),
		AllowPosting:  a.AllowPosting,
		Description:   a.Description,
	}
}

func fromAccountRow(r accountRow) model.Account {
	return model.Account{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Code:          r.Code,
		Name:          r.Name,
		Type:          model.AccountType(r.Type),
		ParentID:      r.ParentID,
		Level:         r.Level,
		Balance:       r.Balance,
		IsActive:      r.IsActive,
		NormalBalance: model.NormalBalance(r.NormalBalance),
		AllowPosting:  r.AllowPosting,
		Description:   r.Description,
	}
}

func toEntryRow(e model.JournalEntry) entryRow {
	row := entryRow{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Reference:   e.Reference,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		Status:      string(e.Status),
		Lines:       make([]lineRow, len(e.Lines)),
	}
	for i, l := range e.Lines {
		row.Lines[i] = lineRow{
			EntryID:      e.ID,
			Position:     i,
			AccountID:    l.AccountID,
			Description:  l.Description,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
		}
	}
	return row
}

func fromEntryRow(r entryRow) model.JournalEntry {
	e := model.JournalEntry{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		EntryNumber: r.EntryNumber,
		EntryDate:   r.EntryDate,
		Description: r.Description,
		Reference:   r.Reference,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
		Status:      model.EntryStatus(r.Status),
		Lines:       make([]model.JournalLine, len(r.Lines)),
	}
	for i, l := range r.Lines {
		e.Lines[i] = model.JournalLine{
			AccountID:    l.AccountID,
			Description:  l.Description,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
		}
	}
	return e
}
