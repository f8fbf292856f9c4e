package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ueplot/internal/ue"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	ConfigFlags
	ConfigPath string
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Document string            `json:"document"`
	Trials   int               `json:"trials,omitempty"`
	Neurons  int               `json:"neurons,omitempty"`
	Windows  int               `json:"windows,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError describes one rejected field.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate a document without building panels",
		Long: `Validate an analysis document at the boundary: units, recording span,
window parameters, series lengths and trial shapes.

When --config or --mode is given the effective config is validated too,
including the unit labels against the document's neuron count.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "significance mode (one_sided|two_sided)")
	cmd.Flags().IntVar(&opts.TickInterval, "tick-interval", 0, "label every n-th trial")

	return cmd
}

func runValidate(opts *ValidateOptions, docPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	doc, err := LoadDocument(docPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, err)
	}

	formatter.VerboseLog("Validating document %s", docPath)
	result := ValidationResult{Valid: true, Document: docPath}

	a, err := ue.Normalize(doc)
	if err != nil {
		return outputValidationErrors(formatter, result, err)
	}
	result.Trials, result.Neurons, result.Windows = a.NumTrials(), a.Neurons, a.Windows.Len()

	if opts.ConfigPath != "" || opts.Mode != "" {
		formatter.VerboseLog("Validating config (file=%q, mode=%q)", opts.ConfigPath, opts.Mode)
		cfg, err := LoadConfig(opts.ConfigPath, opts.ConfigFlags)
		if err != nil {
			if exitCodeFor(err) == ExitCommandError {
				return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, err)
			}
			return outputValidationErrors(formatter, result, err)
		}
		if len(cfg.UnitIDs) > 0 && len(cfg.UnitIDs) != a.Neurons {
			return outputValidationErrors(formatter, result, ue.NewInvalidParameter("unit_ids",
				"%d unit labels configured for %d neurons", len(cfg.UnitIDs), a.Neurons))
		}
		if _, err := ue.PlanLayout(a.Neurons, a.NumTrials(), cfg.TickInterval); err != nil {
			return outputValidationErrors(formatter, result, err)
		}
	}

	return outputValidateSuccess(formatter, result)
}

// outputValidationErrors reports a rejected document and returns exit code 1.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult, err error) error {
	verr := ValidationError{
		Code:    errorCode(err, ErrCodeGeneric),
		Message: errorMessage(err),
	}
	if d := errorDetails(err); d != nil {
		verr.Field = d["field"]
	}
	result.Valid = false
	result.Errors = []ValidationError{verr}

	if formatter.Format == "json" {
		if err := formatter.Error(verr.Code, "validation failed", result); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		fmt.Fprintf(w, "✗ %s\n", result.Document)
		if verr.Field != "" {
			fmt.Fprintf(w, "  [%s] %s: %s\n", verr.Code, verr.Field, verr.Message)
		} else {
			fmt.Fprintf(w, "  [%s] %s\n", verr.Code, verr.Message)
		}
	}
	return WrapExitError(ExitFailure, "validation failed", err)
}

func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("✓ %s: %d trials, %d neurons, %d windows",
		result.Document, result.Trials, result.Neurons, result.Windows))
}
