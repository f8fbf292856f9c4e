package panel

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/roach88/ueplot/internal/config"
	"github.com/roach88/ueplot/internal/ue"
)

// Build computes every panel of a. cfg must already be validated; the unit
// labels are checked against the neuron count here.
//
// A nil logger uses slog.Default().
func Build(ctx context.Context, a *ue.Analysis, cfg config.Config, logger *slog.Logger) (*Figure, error) {
	if logger == nil {
		logger = slog.Default()
	}

	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	axis, err := cfg.AxisUnit()
	if err != nil {
		return nil, err
	}
	labels, err := unitLabels(a, cfg.UnitIDs)
	if err != nil {
		return nil, err
	}
	layout, err := ue.PlanLayout(a.Neurons, a.NumTrials(), cfg.TickInterval)
	if err != nil {
		return nil, err
	}
	projector, err := a.Projector()
	if err != nil {
		return nil, err
	}

	significant, err := ue.Select(a.Surprise, a.Threshold, mode)
	if err != nil {
		return nil, err
	}
	logger.Debug("selected significant windows",
		"document", a.Name,
		"mode", mode,
		"threshold", a.Threshold,
		"windows", a.Windows.Len(),
		"significant", len(significant))

	events, err := projectTrials(ctx, projector, significant, a.Coincidences, cfg.Workers)
	if err != nil {
		return nil, err
	}

	raster, err := buildRaster(ctx, a, projector, layout, events, axis, cfg.Workers)
	if err != nil {
		return nil, err
	}
	raster.UnitLabels = labels

	left, right := a.Windows.XLimits()
	xlim := Limits{Min: ue.FromDuration(left, axis), Max: ue.FromDuration(right, axis)}

	epochs, err := epochMarkers(cfg.Epochs, left, right, axis)
	if err != nil {
		return nil, err
	}

	sig, err := significancePanel(a, axis)
	if err != nil {
		return nil, err
	}

	fig := &Figure{
		Name:               a.Name,
		Mode:               mode,
		TimeUnit:           cfg.TimeUnit,
		XLimits:            xlim,
		SignificantWindows: significant,
		CoincidentEvents:   events.coincident,
		UnitaryEvents:      events.unitary,
		Raster:             raster,
		SpikeRates:         ratePanel(a, labels, axis),
		CoincidenceRates:   coincidencePanel(a, axis),
		Significance:       sig,
		Epochs:             epochs,
	}

	logger.Debug("built figure",
		"document", a.Name,
		"spikes", len(raster.Spikes),
		"unitary_events", countEvents(events.unitary))
	return fig, nil
}

// unitLabels picks the configured labels, then the document's, then the
// 1-based neuron numbers.
func unitLabels(a *ue.Analysis, configured []string) ([]string, error) {
	labels := configured
	if len(labels) == 0 {
		labels = a.UnitIDs
	}
	if len(labels) == 0 {
		out := make([]string, a.Neurons)
		for n := range out {
			out[n] = strconv.Itoa(n + 1)
		}
		return out, nil
	}
	if len(labels) != a.Neurons {
		return nil, ue.NewInvalidParameter("unit_ids",
			"%d unit ids given for %d neurons", len(labels), a.Neurons)
	}
	return append([]string(nil), labels...), nil
}

// epochMarkers keeps the epoch times that fall inside [left, right].
func epochMarkers(epochs []config.Epoch, left, right, axis time.Duration) ([]EpochMarker, error) {
	var out []EpochMarker
	for _, e := range epochs {
		times, err := e.Durations()
		if err != nil {
			return nil, err
		}
		marker := EpochMarker{Name: e.Name, Times: []float64{}}
		for _, t := range times {
			if t >= left && t <= right {
				marker.Times = append(marker.Times, ue.FromDuration(t, axis))
			}
		}
		out = append(out, marker)
	}
	return out, nil
}

// countEvents returns the total number of indices across all trials.
func countEvents(sets [][]int64) int {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	return n
}

func wrapTrial(t int, err error) error {
	return fmt.Errorf("trial %d: %w", t, err)
}
