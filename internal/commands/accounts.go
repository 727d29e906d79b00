package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mrwhyte0520/billsdr-sub004/internal/accounts"
	"github.com/mrwhyte0520/billsdr-sub004/internal/activity"
	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

func newAccountsCommand(opts *rootOptions) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts operations",
	}
	accountsCmd.AddCommand(newAccountsListCommand(opts))
	accountsCmd.AddCommand(newAccountsAddCommand(opts))
	accountsCmd.AddCommand(newAccountsUpdateCommand(opts))
	accountsCmd.AddCommand(newAccountsDeleteCommand(opts))
	accountsCmd.AddCommand(newAccountsExportCommand(opts))
	return accountsCmd
}

func newAccountsListCommand(opts *rootOptions) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			svc, err := accounts.Load(cmd.Context(), p.store, p.owner())
			if err != nil {
				return err
			}
			list := svc.All()
			if typ != "" {
				t, err := model.ParseAccountType(typ)
				if err != nil {
					return err
				}
				list = svc.ByType(t)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tLEVEL\tBALANCE\tPOSTING")
			for _, a := range list {
				indent := strings.Repeat("  ", max(a.Level-1, 0))
				fmt.Fprintf(tw, "%s\t%s%s\t%s\t%d\t%s\t%s\n",
					a.Code, indent, a.Name, a.Type, a.Level, a.Balance.StringFixed(2), yesNo(a.AllowPosting))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "only list accounts of this type")

	return cmd
}

func newAccountsAddCommand(opts *rootOptions) *cobra.Command {
	var in accounts.Input
	var balance string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if balance != "" {
				b, err := decimal.NewFromString(balance)
				if err != nil {
					return fmt.Errorf("parsing balance %q: %w", balance, err)
				}
				in.Balance = b
			}

			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			acct, err := accounts.NewManager(p.store, p.owner()).Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			p.record(activity.ActionAdd, acct.Code, "ok", acct.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s, level %d)\n", acct.Code, acct.Name, acct.Type, acct.Level)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Code, "code", "", "account code (required)")
	cmd.Flags().StringVar(&in.Name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&in.Type, "type", "", "asset, liability, equity, income or expense (required)")
	cmd.Flags().StringVar(&in.ParentCode, "parent", "", "code of the parent account")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
	cmd.Flags().StringVar(&balance, "balance", "", "opening balance")
	cmd.Flags().BoolVar(&in.AllowPosting, "posting", true, "accept journal postings (false for summary accounts)")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAccountsUpdateCommand(opts *rootOptions) *cobra.Command {
	var (
		code         string
		name         string
		typ          string
		parent       string
		description  string
		allowPosting bool
	)

	cmd := &cobra.Command{
		Use:   "update <code>",
		Short: "Change an account; the balance is kept",
		Long: "Change an account. Only the flags given are changed; pass --parent \"\"\n" +
			"to make the account a root account.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			svc, err := accounts.Load(cmd.Context(), p.store, p.owner())
			if err != nil {
				return err
			}
			existing, ok := svc.ByCode(args[0])
			if !ok {
				return fmt.Errorf("account code %q: %w", args[0], accounts.ErrUnknownAccount)
			}

			in := accounts.Input{
				Code:         existing.Code,
				Name:         existing.Name,
				Type:         string(existing.Type),
				Description:  existing.Description,
				AllowPosting: existing.AllowPosting,
			}
			if parentAcct, ok := svc.Get(existing.ParentID); ok {
				in.ParentCode = parentAcct.Code
			}
			flags := cmd.Flags()
			if flags.Changed("code") {
				in.Code = code
			}
			if flags.Changed("name") {
				in.Name = name
			}
			if flags.Changed("type") {
				in.Type = typ
			}
			if flags.Changed("parent") {
				in.ParentCode = parent
			}
			if flags.Changed("description") {
				in.Description = description
			}
			if flags.Changed("posting") {
				in.AllowPosting = allowPosting
			}

			acct, err := accounts.NewManager(p.store, p.owner()).Update(cmd.Context(), existing.ID, in)
			if err != nil {
				return err
			}
			p.record(activity.ActionUpdate, acct.Code, "ok", acct.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s (%s, level %d)\n", acct.Code, acct.Name, acct.Type, acct.Level)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "new account code")
	cmd.Flags().StringVar(&name, "name", "", "new account name")
	cmd.Flags().StringVar(&typ, "type", "", "new account type")
	cmd.Flags().StringVar(&parent, "parent", "", "code of the new parent account")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().BoolVar(&allowPosting, "posting", true, "accept journal postings")

	return cmd
}

func newAccountsDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <code>",
		Short: "Delete an account with no balance and no sub-accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			if err := accounts.NewManager(p.store, p.owner()).DeleteByCode(cmd.Context(), args[0]); err != nil {
				return err
			}
			p.record(activity.ActionDelete, args[0], "ok", "")
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newAccountsExportCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the chart of accounts as a CSV report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			svc, err := accounts.Load(cmd.Context(), p.store, p.owner())
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				return accounts.ExportCSV(w, p.cfg.Owner.Name, time.Now(), svc.All())
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")

	return cmd
}

// writeOutput runs write against the file at path, or stdout when path
// is empty.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
