package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the project configuration file.
const FileName = "billsdr.yaml"

// DriverSQLite is the only record store a project can be configured
// with.
const DriverSQLite = "sqlite"

// Config represents the top-level billsdr.yaml configuration.
type Config struct {
	Owner    OwnerConfig    `yaml:"owner"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Import   ImportConfig   `yaml:"import"`
	Journal  JournalConfig  `yaml:"journal"`
}

// OwnerConfig identifies whose chart of accounts the project holds.
type OwnerConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// DatabaseConfig selects the record store.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	// Path is relative to the directory holding billsdr.yaml.
	Path   string `yaml:"path"`
	LogSQL bool   `yaml:"log_sql"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Mode string `yaml:"mode"` // "debug" or "production"
}

// ImportConfig controls chart-of-accounts imports.
type ImportConfig struct {
	ResolveParents bool `yaml:"resolve_parents"`
}

// JournalConfig controls journal entry submission.
type JournalConfig struct {
	Tolerance   string `yaml:"tolerance"`
	EntryPrefix string `yaml:"entry_prefix"`
}

// Load reads a billsdr.yaml file from disk. Keys the file leaves out keep
// the values Default would give them; the owner id has no default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := *Default("")
	cfg.Owner = OwnerConfig{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(ownerName string) *Config {
	return &Config{
		Owner: OwnerConfig{
			ID:   uuid.NewString(),
			Name: ownerName,
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join("data", "billsdr.db"),
		},
		Log: LogConfig{
			Mode: "production",
		},
		Import: ImportConfig{
			ResolveParents: true,
		},
		Journal: JournalConfig{
			Tolerance:   "0.01",
			EntryPrefix: "JE-",
		},
	}
}

// Validate checks the fields that have a closed set of values.
func (c *Config) Validate() error {
	if c.Owner.ID == "" {
		return fmt.Errorf("owner.id is required")
	}
	switch c.Database.Driver {
	case DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required for %s", DriverSQLite)
	}
	if _, err := c.Tolerance(); err != nil {
		return err
	}
	return nil
}

// Tolerance returns the journal balance tolerance.
func (c *Config) Tolerance() (decimal.Decimal, error) {
	t, err := decimal.NewFromString(c.Journal.Tolerance)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("journal.tolerance %q: %w", c.Journal.Tolerance, err)
	}
	if t.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("journal.tolerance %q must not be negative", c.Journal.Tolerance)
	}
	return t, nil
}

// DatabasePath resolves the database path against dir, the directory
// holding the config file.
func (c *Config) DatabasePath(dir string) string {
	if filepath.IsAbs(c.Database.Path) {
		return c.Database.Path
	}
	return filepath.Join(dir, c.Database.Path)
}
