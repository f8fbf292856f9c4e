package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ueplot/internal/ue"
)

// Default values applied by Defaults.
const (
	DefaultTickInterval = 15
	DefaultTimeUnit     = "ms"
	DefaultWorkers      = 4
)

// Config is the effective set of presentation settings.
//
// Zero values mean "not set" for merging purposes. SignificanceMode has no
// default and must be provided by the file or a flag.
type Config struct {
	SignificanceMode string   `yaml:"significance_mode,omitempty" json:"significance_mode,omitempty"`
	TickInterval     int      `yaml:"tick_interval,omitempty" json:"tick_interval,omitempty"`
	TimeUnit         string   `yaml:"time_unit,omitempty" json:"time_unit,omitempty"`
	UnitIDs          []string `yaml:"unit_ids,omitempty" json:"unit_ids,omitempty"`
	Epochs           []Epoch  `yaml:"epochs,omitempty" json:"epochs,omitempty"`
	Workers          int      `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// Epoch is a named list of time points marked on the time axis, e.g. the
// onset of a cue or a movement.
type Epoch struct {
	Name  string   `yaml:"name" json:"name"`
	Times []string `yaml:"times" json:"times"`
}

// Defaults returns the default settings. The result is a new value on every
// call.
func Defaults() Config {
	return Config{
		TickInterval: DefaultTickInterval,
		TimeUnit:     DefaultTimeUnit,
		Workers:      DefaultWorkers,
	}
}

// Merge layers overrides on top of base, later overrides winning. Only
// non-zero fields override. Slices are copied, so the result shares no
// memory with its arguments.
func Merge(base Config, overrides ...Config) Config {
	out := base.clone()
	for _, o := range overrides {
		if o.SignificanceMode != "" {
			out.SignificanceMode = o.SignificanceMode
		}
		if o.TickInterval != 0 {
			out.TickInterval = o.TickInterval
		}
		if o.TimeUnit != "" {
			out.TimeUnit = o.TimeUnit
		}
		if o.UnitIDs != nil {
			out.UnitIDs = append([]string(nil), o.UnitIDs...)
		}
		if o.Epochs != nil {
			out.Epochs = cloneEpochs(o.Epochs)
		}
		if o.Workers != 0 {
			out.Workers = o.Workers
		}
	}
	return out
}

func (c Config) clone() Config {
	out := c
	if c.UnitIDs != nil {
		out.UnitIDs = append([]string(nil), c.UnitIDs...)
	}
	if c.Epochs != nil {
		out.Epochs = cloneEpochs(c.Epochs)
	}
	return out
}

func cloneEpochs(in []Epoch) []Epoch {
	out := make([]Epoch, len(in))
	for i, e := range in {
		out[i] = Epoch{Name: e.Name, Times: append([]string(nil), e.Times...)}
	}
	return out
}

// Load reads a YAML settings file. Unknown keys are rejected. The result
// holds only the values present in the file; merge it over Defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML settings strictly. An empty document yields the zero
// Config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}

// Mode returns the parsed significance mode.
func (c Config) Mode() (ue.Mode, error) {
	return ue.ParseMode(c.SignificanceMode)
}

// AxisUnit returns the length of one unit of the output time axis.
func (c Config) AxisUnit() (time.Duration, error) {
	return ue.ParseTimeUnit("time_unit", c.TimeUnit)
}

// Durations parses the epoch's time points into the analysis time base.
func (e Epoch) Durations() ([]time.Duration, error) {
	out := make([]time.Duration, len(e.Times))
	for i, s := range e.Times {
		d, err := ue.ParseDuration("epochs", s)
		if err != nil {
			return nil, fmt.Errorf("epoch %q: %w", e.Name, err)
		}
		out[i] = d
	}
	return out, nil
}
