package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mrwhyte0520/billsdr-sub004/internal/activity"
	"github.com/mrwhyte0520/billsdr-sub004/internal/config"
	"github.com/mrwhyte0520/billsdr-sub004/internal/logging"
	"github.com/mrwhyte0520/billsdr-sub004/internal/store"
)

// project is an opened billsdr project: its config, logger and store.
type project struct {
	dir   string
	cfg   *config.Config
	log   *zap.Logger
	store store.Store
}

func openProject(opts *rootOptions) (*project, error) {
	path, err := filepath.Abs(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return openWith(filepath.Dir(path), cfg, opts.logMode)
}

func openWith(dir string, cfg *config.Config, logMode string) (*project, error) {
	if logMode == "" {
		logMode = cfg.Log.Mode
	}
	log, err := logging.New(logMode)
	if err != nil {
		return nil, err
	}

	st, err := store.OpenSQL(store.SQLConfig{Path: cfg.DatabasePath(dir), LogMode: cfg.Database.LogSQL})
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	return &project{dir: dir, cfg: cfg, log: log, store: st}, nil
}

func (p *project) owner() string {
	return p.cfg.Owner.ID
}

// record appends to the activity log. A failed write is logged and does
// not fail the command that produced it.
func (p *project) record(action, subject, status, details string) {
	err := activity.Append(p.dir, activity.Entry{
		Timestamp: time.Now(),
		Action:    action,
		Subject:   subject,
		Status:    status,
		Details:   details,
	})
	if err != nil {
		p.log.Warn("writing activity log", zap.Error(err))
	}
}

func (p *project) Close() {
	_ = p.log.Sync()
	if err := p.store.Close(); err != nil {
		p.log.Warn("closing record store", zap.Error(err))
	}
}
