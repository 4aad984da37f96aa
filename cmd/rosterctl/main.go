package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitIssues  = 3
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Offline tools for employee roster spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd(), newSampleCmd(), newAuditCmd())
	return root
}

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	if err == nil {
		os.Exit(exitOK)
	}

	var coded *exitError
	if errors.As(err, &coded) {
		if coded.code != exitIssues {
			fmt.Fprintln(os.Stderr, "error:", coded.err)
		}
		os.Exit(coded.code)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(exitFailure)
}
