package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeandelest/Queen-Back-Office/internal/services/sample"
)

// exitError carries the batch return code of a failed run
type exitError struct {
	code sample.BatchErrorCode
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "queen-batch",
		Short:         "Load campaign contexts and samples without going through the API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newLoadSampleCmd())
	cmd.AddCommand(newIntegrateContextCmd())
	return cmd
}

// exitCode maps the outcome of a run to the process exit status
func exitCode(err error) int {
	if err == nil {
		return int(sample.OK)
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return int(exitErr.code)
	}
	return int(sample.KOTechnicalError)
}

func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	os.Exit(exitCode(err))
}
