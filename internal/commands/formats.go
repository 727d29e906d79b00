package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrwhyte0520/billsdr-sub004/internal/formats"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported import formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEXTENSIONS\tTEMPLATE")
			for _, f := range formats.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Name, strings.Join(f.Extensions, " "), f.TemplateName)
			}
			return tw.Flush()
		},
	}
}

func newTemplateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template <format>",
		Short: "Write an example import file for a format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formats.Resolve(args[0])
			if err != nil {
				return err
			}
			content, err := f.Template()
			if err != nil {
				return fmt.Errorf("generating %s template: %w", f.ID, err)
			}

			if output == "" {
				if f.ID == formats.Excel {
					return fmt.Errorf("the %s template is binary; pass --output %s", f.ID, f.TemplateName)
				}
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}
			if err := os.WriteFile(output, content, 0o644); err != nil {
				return fmt.Errorf("writing template: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s template to %s\n", f.Name, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")

	return cmd
}
