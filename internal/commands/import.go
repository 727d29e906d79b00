package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrwhyte0520/billsdr-sub004/internal/activity"
	"github.com/mrwhyte0520/billsdr-sub004/internal/formats"
	"github.com/mrwhyte0520/billsdr-sub004/internal/importer"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format string
	var flat bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a chart of accounts file",
		Long: "Import a chart of accounts file. The format is taken from --format or,\n" +
			"when omitted, from the file extension. Run `billsdr formats` for the list.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			if format == "" {
				format = formatFor(path)
			}

			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			var imOpts []importer.Option
			if flat || !p.cfg.Import.ResolveParents {
				imOpts = append(imOpts, importer.WithFlatImport())
			}
			im := importer.New(p.store, p.log, imOpts...)

			res, err := im.Import(cmd.Context(), importer.Request{
				Owner:    p.owner(),
				Format:   format,
				Filename: filepath.Base(path),
				Content:  content,
			})
			if err != nil {
				return err
			}
			printResult(cmd, res)
			p.record(activity.ActionImport, filepath.Base(path), string(res.Status), summary(res))

			switch res.Status {
			case importer.StatusUnparsable:
				return fmt.Errorf("%s could not be read as %s: %w", path, res.Format, res.ParseError)
			case importer.StatusFailed:
				return fmt.Errorf("no account from %s was imported", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "import format ("+strings.Join(formats.IDs(), ", ")+")")
	cmd.Flags().BoolVar(&flat, "flat", false, "import every account at level 1 without linking parents")

	return cmd
}

// formatFor picks a format from the file extension; anything unknown is
// read as CSV.
func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".iif":
		return string(formats.QuickBooks)
	case ".xlsx":
		return string(formats.Excel)
	case ".json":
		return string(formats.JSON)
	case ".xml":
		return string(formats.XML)
	default:
		return string(formats.CSV)
	}
}

func summary(res importer.Result) string {
	return fmt.Sprintf("%s: %d parsed, %d imported, %d skipped, %d linked",
		res.Format, res.Parsed, res.Imported, res.Skipped, res.Linked)
}

func printResult(cmd *cobra.Command, res importer.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Import %s: %d parsed, %d imported, %d skipped, %d linked\n",
		res.Status, res.Parsed, res.Imported, res.Skipped, res.Linked)
	for _, e := range res.Errors {
		fmt.Fprintf(out, "  %s\n", e.Error())
	}
}
