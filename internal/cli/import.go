package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ueplot/internal/store"
	"github.com/roach88/ueplot/internal/ue"
)

// ImportResult lists the archived documents.
type ImportResult struct {
	Documents []ImportedDocument `json:"documents"`
	Inserted  int                `json:"inserted"`
	Existing  int                `json:"existing"`
}

// ImportedDocument is one archived file.
type ImportedDocument struct {
	Path     string `json:"path"`
	ID       string `json:"id"`
	Inserted bool   `json:"inserted"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <db> <document-or-dir>...",
		Short: "Archive analysis documents",
		Long: `Validate analysis documents and archive them in the SQLite database.

Documents are content-addressed: importing the same document twice keeps a
single copy. Directories are scanned for .json, .yaml and .yml files.

Examples:
  ueplot import ./ueplot.db analysis.json
  ueplot import ./ueplot.db ./analyses`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, dbPath string, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := newLogger(opts, cmd.ErrOrStderr())

	files, err := FindDocumentFiles(paths)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, err)
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

	result := ImportResult{Documents: make([]ImportedDocument, 0, len(files))}
	for _, path := range files {
		formatter.VerboseLog("Importing %s", path)
		doc, err := LoadDocument(path)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, fmt.Errorf("%s: %w", path, err))
		}
		// Only documents that pass boundary validation are archived.
		if _, err := ue.Normalize(doc); err != nil {
			return formatter.Fail(ExitFailure, ErrCodeInvalidParameter, fmt.Errorf("%s: %w", path, err))
		}
		id, inserted, err := st.PutDocument(ctx, doc)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err)
		}
		result.Documents = append(result.Documents, ImportedDocument{Path: path, ID: id, Inserted: inserted})
		if inserted {
			result.Inserted++
		} else {
			result.Existing++
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	w := cmd.OutOrStdout()
	for _, d := range result.Documents {
		status := "imported"
		if !d.Inserted {
			status = "already archived"
		}
		fmt.Fprintf(w, "%s  %s (%s)\n", d.ID, d.Path, status)
	}
	fmt.Fprintf(w, "%d imported, %d already archived\n", result.Inserted, result.Existing)
	return nil
}
