package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/ueplot/internal/ue"
)

//go:embed schema.cue
var schemaSource []byte

// Validate checks the effective settings. The shape and ranges are checked
// against the embedded #Config schema; unit spellings and epoch times are
// then parsed the same way the analysis parses them.
//
// All failures are *ue.Error with code INVALID_PARAMETER or UNIT_MISMATCH.
func Validate(cfg Config) error {
	if err := validateSchema(cfg); err != nil {
		return err
	}
	if _, err := cfg.Mode(); err != nil {
		return err
	}
	if _, err := cfg.AxisUnit(); err != nil {
		return err
	}
	for _, e := range cfg.Epochs {
		if _, err := e.Durations(); err != nil {
			return err
		}
	}
	return nil
}

func validateSchema(cfg Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	value := ctx.CompileBytes(data, cue.Filename("config"))
	if err := value.Err(); err != nil {
		return formatCUEError(err)
	}

	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError maps the first CUE error to an invalid parameter, keeping
// the offending path and schema position.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return ue.NewInvalidParameter("config", "%v", err)
	}

	first := errs[0]
	field := strings.Join(first.Path(), ".")
	if field == "" {
		field = "config"
	}
	e := ue.NewInvalidParameter(field, "%s", first.Error())
	if positions := cueerrors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		e.Details = map[string]string{"pos": positions[0].String()}
	}
	return e
}
