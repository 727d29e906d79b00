package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrwhyte0520/billsdr-sub004/internal/accounts"
	"github.com/mrwhyte0520/billsdr-sub004/internal/activity"
	"github.com/mrwhyte0520/billsdr-sub004/internal/journal"
)

const dateLayout = "2006-01-02"

func newJournalCommand(opts *rootOptions) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal entry operations",
	}
	journalCmd.AddCommand(newJournalAddCommand(opts))
	journalCmd.AddCommand(newJournalListCommand(opts))
	journalCmd.AddCommand(newJournalExportCommand(opts))
	return journalCmd
}

func newJournalService(p *project) (*journal.Service, error) {
	tol, err := p.cfg.Tolerance()
	if err != nil {
		return nil, err
	}
	opts := []journal.Option{journal.WithTolerance(tol)}
	if p.cfg.Journal.EntryPrefix != "" {
		opts = append(opts, journal.WithEntryPrefix(p.cfg.Journal.EntryPrefix))
	}
	return journal.NewService(p.store, p.log, opts...), nil
}

func newJournalAddCommand(opts *rootOptions) *cobra.Command {
	var (
		date        string
		number      string
		description string
		reference   string
		debits      []string
		credits     []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a balanced journal entry",
		Long: "Post a balanced journal entry. Lines are given as CODE:AMOUNT or\n" +
			"CODE:AMOUNT:DESCRIPTION with --debit and --credit, which may be repeated.",
		Example: "  billsdr journal add --description \"Pago de alquiler\" --debit 5200:1200 --credit 1110:1200",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := journal.EntryInput{Number: number, Description: description, Reference: reference}
			if date != "" {
				d, err := time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
				in.Date = d
			}

			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			chart, err := accounts.Load(cmd.Context(), p.store, p.owner())
			if err != nil {
				return err
			}
			for _, raw := range debits {
				line, err := parseLine(chart, raw, true)
				if err != nil {
					return err
				}
				in.Lines = append(in.Lines, line)
			}
			for _, raw := range credits {
				line, err := parseLine(chart, raw, false)
				if err != nil {
					return err
				}
				in.Lines = append(in.Lines, line)
			}

			svc, err := newJournalService(p)
			if err != nil {
				return err
			}
			entry, err := svc.Submit(cmd.Context(), p.owner(), in)
			if err != nil {
				return err
			}
			p.record(activity.ActionPost, entry.EntryNumber, string(entry.Status), entry.TotalDebit.StringFixed(2))
			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s on %s: %s\n",
				entry.EntryNumber, entry.EntryDate.Format(dateLayout), entry.TotalDebit.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&number, "number", "", "entry number (generated when empty)")
	cmd.Flags().StringVar(&description, "description", "", "entry description")
	cmd.Flags().StringVar(&reference, "reference", "", "external reference")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "debit line CODE:AMOUNT[:DESCRIPTION]")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "credit line CODE:AMOUNT[:DESCRIPTION]")

	return cmd
}

// parseLine reads CODE:AMOUNT[:DESCRIPTION]. Unknown codes are passed
// through so the journal service reports them.
func parseLine(chart *accounts.Service, raw string, debit bool) (journal.LineInput, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return journal.LineInput{}, fmt.Errorf("line %q: expected CODE:AMOUNT", raw)
	}
	line := journal.LineInput{AccountID: strings.TrimSpace(parts[0])}
	if acct, ok := chart.ByCode(line.AccountID); ok {
		line.AccountID = acct.ID
	}
	if debit {
		line.Debit = parts[1]
	} else {
		line.Credit = parts[1]
	}
	if len(parts) == 3 {
		line.Description = parts[2]
	}
	return line, nil
}

func newJournalListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			svc, err := newJournalService(p)
			if err != nil {
				return err
			}
			entries, err := svc.List(cmd.Context(), p.owner())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NUMBER\tDATE\tDESCRIPTION\tDEBIT\tCREDIT\tLINES\tSTATUS")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					e.EntryNumber, e.EntryDate.Format(dateLayout), e.Description,
					e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), len(e.Lines), e.Status)
			}
			return tw.Flush()
		},
	}
}

func newJournalExportCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as a CSV report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			svc, err := newJournalService(p)
			if err != nil {
				return err
			}
			entries, err := svc.List(cmd.Context(), p.owner())
			if err != nil {
				return err
			}
			chart, err := accounts.Load(cmd.Context(), p.store, p.owner())
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				return journal.ExportCSV(w, p.cfg.Owner.Name, time.Now(), entries, chart.All())
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")

	return cmd
}
