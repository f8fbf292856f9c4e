package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/ueplot/internal/ir"
	"github.com/roach88/ueplot/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Document string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs <db>",
		Short: "List the projection run log",
		Long: `List recorded projections in log order.

Example:
  ueplot runs ./ueplot.db
  ueplot runs ./ueplot.db --document <document-id> --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Document, "document", "", "only runs of this document ID")

	return cmd
}

func runRuns(opts *RunsOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	// The run log is read-only here; a missing database is an error rather
	// than a new empty one.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound,
			&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("database not found: %s", dbPath)})
	}

	st, err := store.Open(dbPath, store.WithLogger(logger))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runs, err := st.ListRuns(ctx, opts.Document)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err)
	}

	if opts.Format == "json" {
		return formatter.Success(runs)
	}
	printRuns(cmd, runs)
	return nil
}

func printRuns(cmd *cobra.Command, runs []ir.RunRecord) {
	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tRUN\tDOCUMENT\tMODE\tWINDOWS\tSIGNIFICANT\tUNITARY")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\n",
			r.Seq, r.ID, shortID(r.DocumentID), r.SignificanceMode,
			r.WindowCount, r.SignificantWindowCount, r.UnitaryEventCount)
	}
	tw.Flush()
}

// shortID abbreviates a content-addressed document ID for tables.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
