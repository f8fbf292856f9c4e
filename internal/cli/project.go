package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/ueplot/internal/config"
	"github.com/roach88/ueplot/internal/ir"
	"github.com/roach88/ueplot/internal/panel"
	"github.com/roach88/ueplot/internal/store"
	"github.com/roach88/ueplot/internal/ue"
)

// ProjectOptions holds flags for the project command.
type ProjectOptions struct {
	*RootOptions
	ConfigFlags
	ConfigPath string
	Database   string
	Output     string

	// IDGenerator overrides the run ID generator (for testing).
	// If nil, the store uses UUIDv7Generator.
	IDGenerator store.IDGenerator
}

// ProjectResult is the text/JSON payload of a projection.
type ProjectResult struct {
	Document   string        `json:"document"`
	Mode       ue.Mode       `json:"mode"`
	Threshold  float64       `json:"threshold"`
	Summary    panel.Summary `json:"summary"`
	DocumentID string        `json:"document_id,omitempty"`
	RunID      string        `json:"run_id,omitempty"`
	Output     string        `json:"output,omitempty"`
	Figure     *panel.Figure `json:"figure,omitempty"`
}

// NewProjectCommand creates the project command.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	return newProjectCommand(&ProjectOptions{RootOptions: rootOpts})
}

func newProjectCommand(opts *ProjectOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project <document>",
		Short: "Build plot-ready panels from an analysis document",
		Long: `Normalize an analysis document, select the significant windows, confirm
unitary events and build the coordinate sets of every panel.

The effective config is the defaults, then --config, then flags. A
significance mode must be given by the config file or --mode.

With --output the full figure is written as JSON to the file. With --db the
document is archived and the run is recorded in the run log.

Exit codes:
  0 - Projection succeeded
  1 - The document or config was rejected
  2 - Command error (missing files, database errors, etc.)

Examples:
  ueplot project analysis.json --mode one_sided
  ueplot project analysis.json --config plot.yaml --output figure.json
  ueplot project analysis.json --mode two_sided --db ./ueplot.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "significance mode (one_sided|two_sided)")
	cmd.Flags().IntVar(&opts.TickInterval, "tick-interval", 0, "label every n-th trial (default 15)")
	cmd.Flags().StringVar(&opts.TimeUnit, "time-unit", "", "unit of x coordinates (default ms)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel trial workers (default 4)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for the run log")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the figure as JSON to this file")

	return cmd
}

func runProject(opts *ProjectOptions, docPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	doc, err := LoadDocument(docPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, err)
	}
	cfg, err := LoadConfig(opts.ConfigPath, opts.ConfigFlags)
	if err != nil {
		return formatter.Fail(exitCodeFor(err), ErrCodeLoadFailed, err)
	}
	formatter.VerboseLog("Projecting %s (mode=%s, tick_interval=%d, time_unit=%s)",
		docPath, cfg.SignificanceMode, cfg.TickInterval, cfg.TimeUnit)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := ue.Normalize(doc)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInvalidParameter, err)
	}
	fig, err := panel.Build(ctx, a, cfg, logger)
	if err != nil {
		return formatter.Fail(exitCodeFor(err), ErrCodeBuildFailed, err)
	}

	result := ProjectResult{
		Document:  docPath,
		Mode:      fig.Mode,
		Threshold: a.Threshold,
		Summary:   fig.Summary(),
	}

	if opts.Database != "" {
		docID, runID, err := recordRun(ctx, opts, doc, cfg, fig, logger)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err)
		}
		result.DocumentID, result.RunID = docID, runID
	}

	if opts.Output != "" {
		if err := writeFigure(opts.Output, fig); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err)
		}
		result.Output = opts.Output
	} else if opts.Format == "json" {
		result.Figure = fig
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	printProjectText(cmd.OutOrStdout(), result)
	return nil
}

// recordRun archives doc and appends the run to the run log.
func recordRun(ctx context.Context, opts *ProjectOptions, doc ir.Document, cfg config.Config, fig *panel.Figure, logger *slog.Logger) (string, string, error) {
	storeOpts := []store.Option{store.WithLogger(logger)}
	if opts.IDGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDGenerator))
	}
	st, err := store.Open(opts.Database, storeOpts...)
	if err != nil {
		return "", "", fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	docID, _, err := st.PutDocument(ctx, doc)
	if err != nil {
		return "", "", err
	}
	cfgHash, err := ir.ConfigHash(cfg)
	if err != nil {
		return "", "", err
	}
	run, err := st.RecordRun(ctx, fig.RunRecord(docID, cfgHash))
	if err != nil {
		return "", "", err
	}
	return docID, run.ID, nil
}

// writeFigure writes fig as indented JSON.
func writeFigure(path string, fig *panel.Figure) error {
	data, err := json.MarshalIndent(fig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal figure: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}
	return nil
}

func printProjectText(w io.Writer, r ProjectResult) {
	fmt.Fprintf(w, "Projected %s (%s, threshold %.4f)\n", r.Document, r.Mode, r.Threshold)
	fmt.Fprintf(w, "  windows:             %d\n", r.Summary.Windows)
	fmt.Fprintf(w, "  significant windows: %d\n", r.Summary.SignificantWindows)
	fmt.Fprintf(w, "  coincidences:        %d\n", r.Summary.Coincidences)
	fmt.Fprintf(w, "  unitary events:      %d\n", r.Summary.UnitaryEvents)
	if r.RunID != "" {
		fmt.Fprintf(w, "  run:                 %s (document %s)\n", r.RunID, r.DocumentID)
	}
	if r.Output != "" {
		fmt.Fprintf(w, "  figure written to %s\n", r.Output)
	}
}

// exitCodeFor returns ExitFailure for rejected input and ExitCommandError
// for everything else.
func exitCodeFor(err error) int {
	switch errorCode(err, "") {
	case ErrCodeInvalidParameter, ErrCodeUnitMismatch:
		return ExitFailure
	default:
		return ExitCommandError
	}
}
