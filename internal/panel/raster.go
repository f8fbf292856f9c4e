package panel

import (
	"context"
	"time"

	"gonum.org/v1/plot/plotter"

	"github.com/roach88/ueplot/internal/ue"
)

// trialEvents holds the per-trial event sets, indexed by trial.
type trialEvents struct {
	coincident [][]int64
	unitary    [][]int64
}

// projectTrials deduplicates each trial's coincidences and projects them
// onto the significant windows. Trials are independent.
func projectTrials(ctx context.Context, p *ue.Projector, significant []int, coincidences [][]int64, workers int) (trialEvents, error) {
	trials := len(coincidences)
	out := trialEvents{
		coincident: make([][]int64, trials),
		unitary:    make([][]int64, trials),
	}
	errs := make([]error, trials)

	err := forEach(ctx, workers, trials, func(t int) {
		out.coincident[t] = ue.Unique(coincidences[t])
		out.unitary[t], errs[t] = p.Project(significant, coincidences[t])
	})
	if err != nil {
		return trialEvents{}, err
	}
	for t, e := range errs {
		if e != nil {
			return trialEvents{}, wrapTrial(t, e)
		}
	}
	return out, nil
}

// buildRaster places the points of every (neuron, trial) row. Rows are
// filled concurrently and concatenated neuron-major, trial-minor.
func buildRaster(ctx context.Context, a *ue.Analysis, p *ue.Projector, layout ue.Layout, events trialEvents, axis time.Duration, workers int) (Raster, error) {
	neurons, trials := a.Neurons, a.NumTrials()
	rows := neurons * trials
	spikes := make([]plotter.XYs, rows)
	coinc := make([]plotter.XYs, rows)
	unitary := make([]plotter.XYs, rows)

	err := forEach(ctx, workers, rows, func(i int) {
		n, t := i/trials, i%trials
		y := float64(layout.Offset(n, t))

		train := a.Trials[t][n]
		pts := make(plotter.XYs, len(train))
		for k, s := range train {
			pts[k].X = ue.FromDuration(s, axis)
			pts[k].Y = y
		}
		spikes[i] = pts

		coinc[i] = eventPoints(p, events.coincident[t], axis, y)
		unitary[i] = eventPoints(p, events.unitary[t], axis, y)
	})
	if err != nil {
		return Raster{}, err
	}

	bottom, top := layout.YLimits()
	return Raster{
		Layout:        layout,
		YLimits:       Limits{Min: float64(bottom), Max: float64(top)},
		Spikes:        concat(spikes),
		Coincidences:  concat(coinc),
		UnitaryEvents: concat(unitary),
	}, nil
}

// eventPoints places bin indices at their bin start time on row y.
func eventPoints(p *ue.Projector, indices []int64, axis time.Duration, y float64) plotter.XYs {
	pts := make(plotter.XYs, len(indices))
	for k, idx := range indices {
		pts[k].X = ue.FromDuration(p.EventTime(idx), axis)
		pts[k].Y = y
	}
	return pts
}

func concat(parts []plotter.XYs) plotter.XYs {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make(plotter.XYs, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
