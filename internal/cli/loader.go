package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/ueplot/internal/config"
	"github.com/roach88/ueplot/internal/ir"
	"github.com/roach88/ueplot/internal/ue"
)

// LoadError represents an error that occurred while loading a document or
// config file.
type LoadError struct {
	Code    string
	Message string
	Field   string // offending document or config field, if known
}

func (e *LoadError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDocument reads a JSON or YAML analysis document.
func LoadDocument(path string) (ir.Document, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ir.Document{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("document not found: %s", path)}
	}
	if err != nil {
		return ir.Document{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing document: %v", err)}
	}
	if info.IsDir() {
		return ir.Document{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}

	doc, err := ir.ReadDocument(path)
	if err != nil {
		return ir.Document{}, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
	}
	return doc, nil
}

// ConfigFlags are the command-line overrides of the effective config.
// Zero values leave the file or default setting in place.
type ConfigFlags struct {
	Mode         string
	TickInterval int
	TimeUnit     string
	Workers      int
}

// LoadConfig builds the effective config: defaults, then the file at path
// (if any), then flags. The result is validated.
func LoadConfig(path string, flags ConfigFlags) (config.Config, error) {
	layers := []config.Config{}
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return config.Config{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", path)}
		}
		file, err := config.Load(path)
		if err != nil {
			return config.Config{}, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
		}
		layers = append(layers, file)
	}
	layers = append(layers, config.Config{
		SignificanceMode: flags.Mode,
		TickInterval:     flags.TickInterval,
		TimeUnit:         flags.TimeUnit,
		Workers:          flags.Workers,
	})

	cfg := config.Merge(config.Defaults(), layers...)
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, convertCoreError(err)
	}
	return cfg, nil
}

// FindDocumentFiles expands paths into document files. Directories are
// walked for .json, .yaml and .yml files; plain files are kept as given.
func FindDocumentFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", p)}
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".json", ".yaml", ".yml":
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: "no document files found"}
	}
	return files, nil
}

// convertCoreError converts a ue error to a LoadError keeping its field.
// Other errors pass through unchanged.
func convertCoreError(err error) error {
	var uerr *ue.Error
	if errors.As(err, &uerr) {
		return &LoadError{
			Code:    MapCoreErrorCode(uerr.Code),
			Message: uerr.Message,
			Field:   uerr.Field,
		}
	}
	return err
}

// errorCode returns the CLI code for err, falling back to fallback.
func errorCode(err error, fallback string) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	var uerr *ue.Error
	if errors.As(err, &uerr) {
		return MapCoreErrorCode(uerr.Code)
	}
	return fallback
}

// errorDetails returns the structured details of err for JSON output.
func errorDetails(err error) map[string]string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) && loadErr.Field != "" {
		return map[string]string{"field": loadErr.Field}
	}
	var uerr *ue.Error
	if errors.As(err, &uerr) {
		details := map[string]string{}
		for k, v := range uerr.Details {
			details[k] = v
		}
		if uerr.Field != "" {
			details["field"] = uerr.Field
		}
		if len(details) > 0 {
			return details
		}
	}
	return nil
}

// errorMessage returns the human-readable part of err.
func errorMessage(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Message
	}
	var uerr *ue.Error
	if errors.As(err, &uerr) {
		return uerr.Message
	}
	return err.Error()
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No document files found
	ErrCodeLoadFailed  = "E004" // Document or config parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Panel build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeStoreFailed = "E008" // Database error
	ErrCodeTestFailed  = "E009" // One or more scenarios failed

	// Boundary validation errors
	ErrCodeInvalidParameter = "E101" // Parameter outside its valid range
	ErrCodeUnitMismatch     = "E102" // Unit cannot be normalized
)

// MapCoreErrorCode maps a ue error code to a CLI error code.
func MapCoreErrorCode(code ue.ErrorCode) string {
	switch code {
	case ue.ErrCodeInvalidParameter:
		return ErrCodeInvalidParameter
	case ue.ErrCodeUnitMismatch:
		return ErrCodeUnitMismatch
	default:
		return ErrCodeGeneric
	}
}
