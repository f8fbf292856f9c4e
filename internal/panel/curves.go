package panel

import (
	"math"
	"time"

	"gonum.org/v1/plot/plotter"

	"github.com/roach88/ueplot/internal/ue"
)

// overCenters returns the points (center of window k, y(k)).
func overCenters(w ue.Windows, axis time.Duration, y func(k int) float64) plotter.XYs {
	pts := make(plotter.XYs, w.Len())
	for k := range pts {
		pts[k].X = ue.FromDuration(w.Center(k), axis)
		pts[k].Y = y(k)
	}
	return pts
}

// ratePanel returns nil when the document carries no average rates.
func ratePanel(a *ue.Analysis, labels []string, axis time.Duration) *RatePanel {
	if a.RateAvg == nil {
		return nil
	}

	p := &RatePanel{Curves: make([]Curve, a.Neurons)}
	for n := range p.Curves {
		pts := overCenters(a.Windows, axis, func(k int) float64 { return a.RateAvg[k][n] })
		p.Curves[n] = Curve{Label: "Unit " + labels[n], Points: pts}

		if _, _, _, ymax := plotter.XYRange(pts); ymax > p.Max {
			p.Max = ymax
		}
	}
	p.YLimits = Limits{Min: 0, Max: p.Max + p.Max/10}
	// Rates are labelled as whole spikes per second.
	p.YTicks = []float64{0, math.Trunc(p.Max / 2), math.Trunc(p.Max)}
	return p
}

// coincidencePanel converts coincidence counts into rates
// n / (window size in seconds * trials). It returns nil when the document
// carries neither count series.
func coincidencePanel(a *ue.Analysis, axis time.Duration) *CoincidencePanel {
	if a.NEmp == nil && a.NExp == nil {
		return nil
	}

	denom := a.Windows.Size().Seconds() * float64(a.NumTrials())
	curve := func(label string, counts []float64) *Curve {
		if counts == nil {
			return nil
		}
		return &Curve{
			Label:  label,
			Points: overCenters(a.Windows, axis, func(k int) float64 { return counts[k] / denom }),
		}
	}
	return &CoincidencePanel{
		Empirical: curve("Empirical", a.NEmp),
		Expected:  curve("Expected", a.NExp),
	}
}

func significancePanel(a *ue.Analysis, axis time.Duration) (SignificancePanel, error) {
	alpha := a.SignificanceLevel
	probs := []float64{1 - alpha, 0.5, alpha}
	ticks := make([]float64, len(probs))
	for i, p := range probs {
		j, err := ue.JointSurpriseThreshold(p)
		if err != nil {
			return SignificancePanel{}, err
		}
		ticks[i] = j
	}

	return SignificancePanel{
		Surprise:    overCenters(a.Windows, axis, func(k int) float64 { return a.Surprise[k] }),
		Upper:       a.Threshold,
		Lower:       -a.Threshold,
		YTicks:      ticks,
		YTickLabels: probs,
	}, nil
}
