package harness

import (
	"errors"

	"github.com/roach88/ueplot/internal/ir"
	"github.com/roach88/ueplot/internal/ue"
)

// successSnapshot captures the observable outcome of a projection.
// Times are duration strings and hashes are left out, so golden files can
// be reviewed by hand.
func successSnapshot(name string, out *outcome) ([]byte, error) {
	starts := out.analysis.Windows.Starts()
	windowStarts := make([]any, len(starts))
	for i, s := range starts {
		windowStarts[i] = s.String()
	}

	fig := out.figure
	layout := fig.Raster.Layout
	bottom, top := layout.YLimits()

	snapshot := map[string]any{
		"scenario":            name,
		"mode":                string(fig.Mode),
		"window_starts":       windowStarts,
		"significant_windows": fig.SignificantWindows,
		"coincident_events":   byTrial(fig.CoincidentEvents),
		"unitary_events":      byTrial(fig.UnitaryEvents),
		"layout": map[string]any{
			"tick_positions": layout.TickPositions,
			"tick_labels":    layout.TickLabels,
			"separators":     layout.Separators,
			"y_limits":       []int{bottom, top},
		},
		"run": map[string]any{
			"id":                       out.run.ID,
			"seq":                      out.run.Seq,
			"window_count":             out.run.WindowCount,
			"significant_window_count": out.run.SignificantWindowCount,
			"coincidence_count":        out.run.CoincidenceCount,
			"unitary_event_count":      out.run.UnitaryEventCount,
		},
	}
	return ir.MarshalCanonical(snapshot)
}

// errorSnapshot captures a rejected projection.
func errorSnapshot(name string, err error) ([]byte, error) {
	detail := map[string]any{"code": string(ue.CodeOf(err))}
	var uerr *ue.Error
	if errors.As(err, &uerr) && uerr.Field != "" {
		detail["field"] = uerr.Field
	}
	return ir.MarshalCanonical(map[string]any{
		"scenario": name,
		"error":    detail,
	})
}

func byTrial(sets [][]int64) map[string]any {
	out := make(map[string]any, len(sets))
	for t, s := range sets {
		out[ir.TrialKey(t)] = s
	}
	return out
}
