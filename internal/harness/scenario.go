package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ueplot/internal/config"
	"github.com/roach88/ueplot/internal/ir"
)

// Scenario defines one projection test.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the analysis document, given inline.
	Document *ir.Document `yaml:"document,omitempty"`

	// DocumentPath points to a JSON or YAML document instead. Relative
	// paths are resolved against the scenario file's directory.
	DocumentPath string `yaml:"document_path,omitempty"`

	// Config holds overrides merged over config.Defaults().
	Config config.Config `yaml:"config,omitempty"`

	// Expect lists the checks to run. Absent keys are not checked.
	Expect Expectations `yaml:"expect"`
}

// Expectations are the observable outcomes a scenario can pin down.
// A nil slice or map means "not checked"; an empty one means "expect none".
type Expectations struct {
	// WindowStarts are duration strings, e.g. "50ms".
	WindowStarts []string `yaml:"window_starts,omitempty"`

	SignificantWindows []int `yaml:"significant_windows,omitempty"`

	// UnitaryEvents maps "trial<k>" to the expected unitary event set.
	UnitaryEvents map[string][]int64 `yaml:"unitary_events,omitempty"`

	TickPositions []int `yaml:"tick_positions,omitempty"`
	TickLabels    []int `yaml:"tick_labels,omitempty"`
	Separators    []int `yaml:"separators,omitempty"`

	// Error is the expected error code, e.g. "INVALID_PARAMETER". When
	// set, the projection must fail with exactly this code.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	// Resolve the document path relative to the scenario file BEFORE validation
	if scenario.DocumentPath != "" && !filepath.IsAbs(scenario.DocumentPath) {
		scenario.DocumentPath = filepath.Join(filepath.Dir(path), scenario.DocumentPath)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// ParseScenario decodes a scenario with strict field validation (catches
// typos like "expects:" vs "expect:"). Paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Document == nil && s.DocumentPath == "":
		return fmt.Errorf("one of document or document_path is required")
	case s.Document != nil && s.DocumentPath != "":
		return fmt.Errorf("document and document_path are mutually exclusive")
	}

	if s.DocumentPath != "" {
		if _, err := os.Stat(s.DocumentPath); os.IsNotExist(err) {
			return fmt.Errorf("document file not found: %s", s.DocumentPath)
		}
	}

	if s.Expect.isEmpty() {
		return fmt.Errorf("expect must contain at least one check")
	}

	return nil
}

func (e Expectations) isEmpty() bool {
	return e.WindowStarts == nil &&
		e.SignificantWindows == nil &&
		e.UnitaryEvents == nil &&
		e.TickPositions == nil &&
		e.TickLabels == nil &&
		e.Separators == nil &&
		e.Error == ""
}

// document returns the scenario's document, reading it from disk if needed.
func (s *Scenario) document() (ir.Document, error) {
	if s.Document != nil {
		return *s.Document, nil
	}
	return ir.ReadDocument(s.DocumentPath)
}
