package panel

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/roach88/ueplot/internal/config"
	"github.com/roach88/ueplot/internal/testutil"
	"github.com/roach88/ueplot/internal/ue"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture is testutil.SmallDocument: windows start at 0, 50 and 100 ms
// with size 100 ms and only window 1 clears the one-sided threshold.
func fixture(t *testing.T) *ue.Analysis {
	t.Helper()
	a, err := ue.Normalize(testutil.SmallDocument())
	require.NoError(t, err)
	return a
}

func oneSided() config.Config {
	return config.Merge(config.Defaults(), config.Config{SignificanceMode: "one_sided"})
}

func TestBuild_Raster(t *testing.T) {
	fig, err := Build(context.Background(), fixture(t), oneSided(), quietLogger())
	require.NoError(t, err)

	assert.Equal(t, ue.OneSided, fig.Mode)
	assert.Equal(t, []int{1}, fig.SignificantWindows)
	assert.Equal(t, [][]int64{{10, 26}, {}}, fig.UnitaryEvents)
	assert.Equal(t, Limits{Min: 0, Max: 200}, fig.XLimits)

	r := fig.Raster
	assert.Equal(t, Limits{Min: 0, Max: 7}, r.YLimits)
	assert.Equal(t, []string{"a", "b"}, r.UnitLabels)

	// Rows: (n0,t0)=1, (n0,t1)=2, (n1,t0)=4, (n1,t1)=5.
	assert.Equal(t, plotter.XYs{{X: 10, Y: 1}, {X: 50, Y: 1}, {X: 5, Y: 2}, {X: 51, Y: 4}}, r.Spikes)
	assert.Equal(t, plotter.XYs{
		{X: 50, Y: 1}, {X: 130, Y: 1},
		{X: 10, Y: 2}, {X: 175, Y: 2},
		{X: 50, Y: 4}, {X: 130, Y: 4},
		{X: 10, Y: 5}, {X: 175, Y: 5},
	}, r.Coincidences)
	assert.Equal(t, plotter.XYs{
		{X: 50, Y: 1}, {X: 130, Y: 1},
		{X: 50, Y: 4}, {X: 130, Y: 4},
	}, r.UnitaryEvents)
}

func TestBuild_TwoSided(t *testing.T) {
	cfg := oneSided()
	cfg.SignificanceMode = "two_sided"

	fig, err := Build(context.Background(), fixture(t), cfg, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, fig.SignificantWindows)
	assert.Equal(t, [][]int64{{10, 26}, {35}}, fig.UnitaryEvents)
}

func TestBuild_Curves(t *testing.T) {
	fig, err := Build(context.Background(), fixture(t), oneSided(), quietLogger())
	require.NoError(t, err)

	rates := fig.SpikeRates
	require.NotNil(t, rates)
	require.Len(t, rates.Curves, 2)
	assert.Equal(t, "Unit a", rates.Curves[0].Label)
	assert.Equal(t, plotter.XYs{{X: 50, Y: 10}, {X: 100, Y: 11}, {X: 150, Y: 9}}, rates.Curves[0].Points)
	assert.Equal(t, 13.0, rates.Max)
	assert.Equal(t, []float64{0, 6, 13}, rates.YTicks, "ticks are whole rates")
	assert.InDelta(t, 14.3, rates.YLimits.Max, 1e-9)

	coinc := fig.CoincidenceRates
	require.NotNil(t, coinc)
	require.NotNil(t, coinc.Empirical)
	require.NotNil(t, coinc.Expected)
	want := []float64{5, 10, 0}
	for k, pt := range coinc.Empirical.Points {
		assert.InDelta(t, want[k], pt.Y, 1e-9)
	}
	for _, pt := range coinc.Expected.Points {
		assert.InDelta(t, 2.5, pt.Y, 1e-9)
	}

	sig := fig.Significance
	assert.Equal(t, plotter.XYs{{X: 50, Y: 0.2}, {X: 100, Y: 1.5}, {X: 150, Y: -2}}, sig.Surprise)
	assert.InDelta(t, 1.27875, sig.Upper, 1e-5)
	assert.Equal(t, -sig.Upper, sig.Lower)
	require.Len(t, sig.YTicks, 3)
	assert.InDelta(t, -sig.Upper, sig.YTicks[0], 1e-9)
	assert.Equal(t, 0.0, sig.YTicks[1])
	assert.InDelta(t, sig.Upper, sig.YTicks[2], 1e-12)
	assert.InDeltaSlice(t, []float64{0.95, 0.5, 0.05}, sig.YTickLabels, 1e-12)
}

func TestBuild_OptionalPanelsAbsent(t *testing.T) {
	a := fixture(t)
	a.RateAvg = nil
	a.NEmp = nil
	a.NExp = nil

	fig, err := Build(context.Background(), a, oneSided(), quietLogger())
	require.NoError(t, err)
	assert.Nil(t, fig.SpikeRates)
	assert.Nil(t, fig.CoincidenceRates)
}

func TestBuild_AxisUnit(t *testing.T) {
	cfg := oneSided()
	cfg.TimeUnit = "s"

	fig, err := Build(context.Background(), fixture(t), cfg, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, "s", fig.TimeUnit)
	assert.InDelta(t, 0.2, fig.XLimits.Max, 1e-12)
	assert.InDelta(t, 0.01, fig.Raster.Spikes[0].X, 1e-12)
	assert.InDelta(t, 0.13, fig.Raster.UnitaryEvents[1].X, 1e-12)
}

func TestBuild_Epochs(t *testing.T) {
	cfg := oneSided()
	cfg.Epochs = []config.Epoch{
		{Name: "cue", Times: []string{"100ms", "250ms", "0ms"}},
		{Name: "late", Times: []string{"1s"}},
	}

	fig, err := Build(context.Background(), fixture(t), cfg, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, []EpochMarker{
		{Name: "cue", Times: []float64{100, 0}},
		{Name: "late", Times: []float64{}},
	}, fig.Epochs)
}

func TestBuild_UnitLabels(t *testing.T) {
	a := fixture(t)

	cfg := oneSided()
	cfg.UnitIDs = []string{"x", "y"}
	fig, err := Build(context.Background(), a, cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, fig.Raster.UnitLabels)
	assert.Equal(t, "Unit y", fig.SpikeRates.Curves[1].Label)

	a.UnitIDs = nil
	fig, err = Build(context.Background(), a, oneSided(), quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, fig.Raster.UnitLabels)

	cfg.UnitIDs = []string{"x"}
	_, err = Build(context.Background(), a, cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, ue.IsInvalidParameter(err))
}

func TestBuild_Errors(t *testing.T) {
	a := fixture(t)

	_, err := Build(context.Background(), a, config.Defaults(), quietLogger())
	assert.True(t, ue.IsInvalidParameter(err), "mode is required")

	cfg := oneSided()
	cfg.TickInterval = 0
	_, err = Build(context.Background(), a, cfg, quietLogger())
	assert.True(t, ue.IsInvalidParameter(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, a, oneSided(), quietLogger())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_DeterministicAcrossWorkers(t *testing.T) {
	a := fixture(t)

	serial := oneSided()
	serial.Workers = 1
	want, err := Build(context.Background(), a, serial, quietLogger())
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 16} {
		cfg := oneSided()
		cfg.Workers = workers
		got, err := Build(context.Background(), a, cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestBuild_SyntheticInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		a, err := ue.Normalize(testutil.SyntheticDocument(seed, 6, 3))
		require.NoError(t, err)

		cfg := oneSided()
		cfg.SignificanceMode = "two_sided"
		fig, err := Build(context.Background(), a, cfg, quietLogger())
		require.NoError(t, err)

		total := 0
		for tr, events := range fig.UnitaryEvents {
			coincident := ue.Unique(a.Coincidences[tr])
			for _, idx := range events {
				assert.Contains(t, coincident, idx, "seed %d trial %d", seed, tr)
			}
			total += len(events)
		}
		assert.Len(t, fig.Raster.UnitaryEvents, total*a.Neurons, "seed %d", seed)

		bottom, top := fig.Raster.YLimits.Min, fig.Raster.YLimits.Max
		for _, pt := range fig.Raster.Spikes {
			assert.Greater(t, pt.Y, bottom)
			assert.Less(t, pt.Y, top)
		}
	}
}

func TestFigure_SummaryAndRunRecord(t *testing.T) {
	fig, err := Build(context.Background(), fixture(t), oneSided(), quietLogger())
	require.NoError(t, err)

	assert.Equal(t, [][]int64{{10, 26}, {2, 35}}, fig.CoincidentEvents)
	assert.Equal(t, Summary{Windows: 3, SignificantWindows: 1, Coincidences: 4, UnitaryEvents: 2}, fig.Summary())

	rec := fig.RunRecord("doc", "cfg")
	assert.Equal(t, "doc", rec.DocumentID)
	assert.Equal(t, "one_sided", rec.SignificanceMode)
	assert.Equal(t, fig.Significance.Upper, rec.Threshold)
	assert.Equal(t, 4, rec.CoincidenceCount)
	assert.Equal(t, 2, rec.UnitaryEventCount)
	assert.Empty(t, rec.ID)
}
