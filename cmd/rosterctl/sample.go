package main

import (
	"fmt"
	"os"

	"github.com/mohammadpnp/roster-import/internal/infrastructure/spreadsheet"
	"github.com/spf13/cobra"
)

func newSampleCmd() *cobra.Command {
	var (
		rawFormat string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the roster upload template",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := spreadsheet.ParseFormat(rawFormat)
			if !ok {
				return withCode(exitUsage, fmt.Errorf("invalid --format %q: want csv or xlsx", rawFormat))
			}

			if output == "-" {
				return spreadsheet.WriteSample(cmd.OutOrStdout(), format)
			}
			if output == "" {
				output = spreadsheet.SampleFilename(format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := spreadsheet.WriteSample(f, format); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawFormat, "format", "csv", "Template format: csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path, - for stdout (default: employee_sample.<format>)")

	return cmd
}
