package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mohammadpnp/roster-import/internal/application/ingestion"
	"github.com/mohammadpnp/roster-import/internal/infrastructure/file"
	"github.com/mohammadpnp/roster-import/internal/infrastructure/spreadsheet"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	baseDir string
	asJSON  bool
	strict  bool
}

func newValidateCmd() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse, validate and classify a CSV or XLSX roster without submitting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.baseDir, "dir", ".", "Directory relative paths are resolved against")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit non-zero when any row is invalid or duplicated")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, opts validateOptions) error {
	upload, closer, err := file.NewLocalSource(opts.baseDir).Open(cmd.Context(), path)
	if err != nil {
		return withCode(exitUsage, err)
	}
	defer closer.Close()

	grid, err := spreadsheet.NewDecoder().Decode(upload)
	if err != nil {
		return withCode(exitFailure, err)
	}

	report, _, err := ingestion.Analyze(grid)
	if err != nil {
		return withCode(exitFailure, err)
	}

	out := ingestion.NewReportOutput(report)
	if opts.asJSON {
		if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	} else {
		writeReport(cmd.OutOrStdout(), upload.Filename, out)
	}

	if opts.strict && out.Invalid+out.Duplicate > 0 {
		return withCode(exitIssues, fmt.Errorf("%d rows need attention", out.Invalid+out.Duplicate))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReport(w io.Writer, filename string, out ingestion.ReportOutput) {
	fmt.Fprintf(w, "%s: %d rows, %d valid, %d invalid, %d duplicate\n",
		filename, out.Total, out.Valid, out.Invalid, out.Duplicate)
	for _, line := range out.Errors {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if !out.CanSubmit {
		fmt.Fprintln(w, "nothing to submit")
	}
}
