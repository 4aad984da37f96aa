package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mohammadpnp/roster-import/internal/bootstrap"
	"github.com/mohammadpnp/roster-import/internal/config"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/mohammadpnp/roster-import/internal/infrastructure/db/models"
	"github.com/spf13/cobra"
)

type auditOptions struct {
	dsn    string
	asJSON bool
}

type auditOutput struct {
	UploadID   string     `json:"upload_id"`
	Filename   string     `json:"filename"`
	Status     string     `json:"status"`
	Total      int        `json:"total"`
	Valid      int        `json:"valid"`
	Invalid    int        `json:"invalid"`
	Duplicate  int        `json:"duplicate"`
	Processed  int        `json:"processed"`
	Failure    string     `json:"failure,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Issues     []string   `json:"issues"`
}

func newAuditCmd() *cobra.Command {
	var opts auditOptions

	cmd := &cobra.Command{
		Use:   "audit <upload-id>",
		Short: "Show the recorded import run and row issues for an upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Postgres DSN (defaults to DATABASE_URL)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the run as JSON")

	return cmd
}

func runAudit(cmd *cobra.Command, uploadID string, opts auditOptions) error {
	dsn := opts.dsn
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return withCode(exitUsage, err)
		}
		dsn = cfg.Postgres.DSN
	}
	if dsn == "" {
		return withCode(exitUsage, errors.New("no audit database: set DATABASE_URL or --dsn"))
	}

	ctx := cmd.Context()
	store, err := bootstrap.OpenAuditStore(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Runs.GetByID(ctx, uploadID)
	if err != nil {
		if errors.Is(err, domain.ErrImportRunNotFound) {
			return withCode(exitUsage, fmt.Errorf("%w: %s", err, uploadID))
		}
		return err
	}
	issues, err := store.Issues.ListMessages(ctx, uploadID)
	if err != nil {
		return err
	}

	out := newAuditOutput(run, issues)
	if opts.asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	writeAudit(cmd.OutOrStdout(), out)
	return nil
}

func newAuditOutput(run *models.ImportRun, issues []string) auditOutput {
	out := auditOutput{
		UploadID:   run.ID,
		Filename:   run.Filename,
		Status:     run.Status,
		Total:      run.TotalCount,
		Valid:      run.ValidCount,
		Invalid:    run.InvalidCount,
		Duplicate:  run.DuplicateCount,
		Processed:  run.ProcessedCount,
		CreatedAt:  run.CreatedAt,
		FinishedAt: run.FinishedAt,
		Issues:     issues,
	}
	if run.ErrorMessage != nil {
		out.Failure = *run.ErrorMessage
	}
	if out.Issues == nil {
		out.Issues = []string{}
	}
	return out
}

func writeAudit(w io.Writer, out auditOutput) {
	fmt.Fprintf(w, "%s (%s): %s\n", out.Filename, out.UploadID, out.Status)
	fmt.Fprintf(w, "%d rows, %d valid, %d invalid, %d duplicate, %d processed\n",
		out.Total, out.Valid, out.Invalid, out.Duplicate, out.Processed)
	if out.Failure != "" {
		fmt.Fprintf(w, "failure: %s\n", out.Failure)
	}
	for _, line := range out.Issues {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
