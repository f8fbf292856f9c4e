package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ueplot/internal/ue"
)

func validConfig() Config {
	return Merge(Defaults(), Config{SignificanceMode: "one_sided"})
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, Validate(validConfig()))

	cfg := validConfig()
	cfg.SignificanceMode = "two_sided"
	cfg.TimeUnit = "µs"
	cfg.UnitIDs = []string{"1", "2"}
	cfg.Epochs = []Epoch{{Name: "cue", Times: []string{"300ms"}}}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing mode", func(c *Config) { c.SignificanceMode = "" }, "significance_mode"},
		{"unknown mode", func(c *Config) { c.SignificanceMode = "sideways" }, "significance_mode"},
		{"negative tick interval", func(c *Config) { c.TickInterval = -3 }, "tick_interval"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
		{"too many workers", func(c *Config) { c.Workers = 1000 }, "workers"},
		{"unknown time unit", func(c *Config) { c.TimeUnit = "fortnight" }, "time_unit"},
		{"empty unit id", func(c *Config) { c.UnitIDs = []string{"1", ""} }, "unit_ids"},
		{"unnamed epoch", func(c *Config) { c.Epochs = []Epoch{{Times: []string{"1s"}}} }, "epochs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, ue.IsInvalidParameter(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_EpochTimeUnit(t *testing.T) {
	cfg := validConfig()
	cfg.Epochs = []Epoch{{Name: "go", Times: []string{"12 furlongs"}}}

	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, ue.IsUnitMismatch(err))
}
