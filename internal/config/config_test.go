package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ueplot/internal/ue"
)

func TestDefaults_FreshValue(t *testing.T) {
	a := Defaults()
	a.TickInterval = 99
	a.UnitIDs = append(a.UnitIDs, "x")

	b := Defaults()
	assert.Equal(t, DefaultTickInterval, b.TickInterval)
	assert.Nil(t, b.UnitIDs)
	assert.Empty(t, b.SignificanceMode, "mode has no default")
}

func TestMerge_LaterWins(t *testing.T) {
	file := Config{SignificanceMode: "one_sided", TickInterval: 10}
	flags := Config{SignificanceMode: "two_sided"}

	got := Merge(Defaults(), file, flags)
	assert.Equal(t, "two_sided", got.SignificanceMode)
	assert.Equal(t, 10, got.TickInterval)
	assert.Equal(t, DefaultTimeUnit, got.TimeUnit)
	assert.Equal(t, DefaultWorkers, got.Workers)
}

func TestMerge_DoesNotAlias(t *testing.T) {
	base := Config{
		UnitIDs: []string{"a", "b"},
		Epochs:  []Epoch{{Name: "cue", Times: []string{"100ms"}}},
	}
	over := Config{UnitIDs: []string{"x", "y"}}

	got := Merge(base, over)
	got.UnitIDs[0] = "changed"
	got.Epochs[0].Times[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, base.UnitIDs)
	assert.Equal(t, []string{"x", "y"}, over.UnitIDs)
	assert.Equal(t, "100ms", base.Epochs[0].Times[0])
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
significance_mode: two_sided
tick_interval: 5
unit_ids: ["3", "7"]
epochs:
  - name: cue
    times: ["300ms", "0.9 s"]
`))
	require.NoError(t, err)
	assert.Equal(t, "two_sided", cfg.SignificanceMode)
	assert.Equal(t, 5, cfg.TickInterval)
	assert.Equal(t, []string{"3", "7"}, cfg.UnitIDs)
	require.Len(t, cfg.Epochs, 1)

	times, err := cfg.Epochs[0].Durations()
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{300 * time.Millisecond, 900 * time.Millisecond}, times)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("significance_mode: one_sided\ncolour: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ue.yaml")
	require.NoError(t, os.WriteFile(path, []byte("significance_mode: one_sided\nworkers: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "one_sided", cfg.SignificanceMode)
	assert.Equal(t, 2, cfg.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestModeAndAxisUnit(t *testing.T) {
	cfg := Merge(Defaults(), Config{SignificanceMode: "one_sided", TimeUnit: "s"})

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, ue.OneSided, mode)

	unit, err := cfg.AxisUnit()
	require.NoError(t, err)
	assert.Equal(t, time.Second, unit)

	_, err = Defaults().Mode()
	assert.True(t, ue.IsInvalidParameter(err))
}

func TestEpochDurations_BadTime(t *testing.T) {
	_, err := Epoch{Name: "go", Times: []string{"5 parsecs"}}.Durations()
	require.Error(t, err)
	assert.True(t, ue.IsUnitMismatch(err))
	assert.Contains(t, err.Error(), `epoch "go"`)
}
