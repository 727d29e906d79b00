package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrwhyte0520/billsdr-sub004/internal/accounts"
	"github.com/mrwhyte0520/billsdr-sub004/internal/activity"
	"github.com/mrwhyte0520/billsdr-sub004/internal/config"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var name string
	var chart string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new billsdr project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			n, err := runInit(cmd.Context(), absDir, name, chart, opts.logMode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized billsdr project at %s (%d accounts)\n", absDir, n)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&chart, "chart", "basic", "starter chart of accounts (basic, none)")

	return cmd
}

func runInit(ctx context.Context, dir, name, chart, logMode string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return 0, fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	// Write billsdr.yaml.
	cfg := config.Default(name)
	if err := config.Save(cfgPath, cfg); err != nil {
		return 0, fmt.Errorf("writing config: %w", err)
	}

	// Create the record store and seed the starter chart.
	p, err := openWith(dir, cfg, logMode)
	if err != nil {
		return 0, err
	}
	defer p.Close()

	n, err := accounts.NewManager(p.store, p.owner()).Seed(ctx, accounts.DefaultChart(chart))
	if err != nil {
		return n, fmt.Errorf("writing chart of accounts: %w", err)
	}
	p.record(activity.ActionInit, name, "ok", fmt.Sprintf("%s chart, %d accounts", chart, n))
	return n, nil
}
