package commands

import (
	"github.com/spf13/cobra"

	"github.com/mrwhyte0520/billsdr-sub004/internal/buildinfo"
	"github.com/mrwhyte0520/billsdr-sub004/internal/config"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logMode    string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "billsdr",
		Short:   "Chart of accounts import and journal entry toolkit",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to "+config.FileName)
	rootCmd.PersistentFlags().StringVar(&opts.logMode, "log", "", "log mode (debug, production, quiet); overrides the config file")

	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))
	rootCmd.AddCommand(newFormatsCommand())
	rootCmd.AddCommand(newTemplateCommand())
	rootCmd.AddCommand(newAccountsCommand(opts))
	rootCmd.AddCommand(newJournalCommand(opts))
	rootCmd.AddCommand(newActivityCommand(opts))

	return rootCmd
}
