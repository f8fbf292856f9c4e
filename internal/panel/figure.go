package panel

import (
	"gonum.org/v1/plot/plotter"

	"github.com/roach88/ueplot/internal/ir"
	"github.com/roach88/ueplot/internal/ue"
)

// Figure holds the coordinates of every panel. X values are expressed in
// TimeUnit; raster Y values are row offsets from the layout.
type Figure struct {
	Name     string  `json:"name"`
	Mode     ue.Mode `json:"mode"`
	TimeUnit string  `json:"time_unit"`
	XLimits  Limits  `json:"x_limits"`

	// SignificantWindows lists the window indices selected under Mode.
	SignificantWindows []int `json:"significant_windows"`

	// CoincidentEvents holds the sorted, deduplicated coincidence bin
	// indices of each trial.
	CoincidentEvents [][]int64 `json:"coincident_events"`

	// UnitaryEvents holds the unitary event set of each trial: sorted,
	// deduplicated bin indices. Every trial has a non-nil entry.
	UnitaryEvents [][]int64 `json:"unitary_events"`

	Raster           Raster            `json:"raster"`
	SpikeRates       *RatePanel        `json:"spike_rates,omitempty"`
	CoincidenceRates *CoincidencePanel `json:"coincidence_rates,omitempty"`
	Significance     SignificancePanel `json:"significance"`
	Epochs           []EpochMarker     `json:"epochs,omitempty"`
}

// Limits is a closed axis range.
type Limits struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Raster carries the three raster panels. They share the layout and the
// spike points and differ in the overlaid events.
type Raster struct {
	Layout     ue.Layout `json:"layout"`
	YLimits    Limits    `json:"y_limits"`
	UnitLabels []string  `json:"unit_labels"`

	Spikes        plotter.XYs `json:"spikes"`
	Coincidences  plotter.XYs `json:"coincidences"`
	UnitaryEvents plotter.XYs `json:"unitary_events"`
}

// Curve is a labelled line over the window centers.
type Curve struct {
	Label  string      `json:"label"`
	Points plotter.XYs `json:"points"`
}

// RatePanel is the spike-rate panel. Rates are in Hz.
type RatePanel struct {
	Curves  []Curve   `json:"curves"`
	Max     float64   `json:"max"`
	YLimits Limits    `json:"y_limits"`
	YTicks  []float64 `json:"y_ticks"`
}

// CoincidencePanel is the coincidence-rate panel. Either curve may be
// absent when the document lacks the corresponding counts.
type CoincidencePanel struct {
	Empirical *Curve `json:"empirical,omitempty"`
	Expected  *Curve `json:"expected,omitempty"`
}

// SignificancePanel is the joint surprise panel.
type SignificancePanel struct {
	Surprise plotter.XYs `json:"surprise"`
	Upper    float64     `json:"upper"`
	Lower    float64     `json:"lower"`

	// YTicks are the surprise values of the probabilities in YTickLabels.
	YTicks      []float64 `json:"y_ticks"`
	YTickLabels []float64 `json:"y_tick_labels"`
}

// EpochMarker is a named set of time points inside the x limits.
type EpochMarker struct {
	Name  string    `json:"name"`
	Times []float64 `json:"times"`
}

// Summary holds the counts recorded in the run log.
type Summary struct {
	Windows            int `json:"windows"`
	SignificantWindows int `json:"significant_windows"`
	Coincidences       int `json:"coincidences"`
	UnitaryEvents      int `json:"unitary_events"`
}

// Summary counts windows and events across all trials. Coincidences are
// counted after deduplication.
func (f *Figure) Summary() Summary {
	return Summary{
		Windows:            len(f.Significance.Surprise),
		SignificantWindows: len(f.SignificantWindows),
		Coincidences:       countEvents(f.CoincidentEvents),
		UnitaryEvents:      countEvents(f.UnitaryEvents),
	}
}

// RunRecord returns the run-log entry for this figure. The store assigns
// the ID and seq.
func (f *Figure) RunRecord(documentID, configHash string) ir.RunRecord {
	sum := f.Summary()
	return ir.RunRecord{
		DocumentID:             documentID,
		SignificanceMode:       string(f.Mode),
		Threshold:              f.Significance.Upper,
		WindowCount:            sum.Windows,
		SignificantWindowCount: sum.SignificantWindows,
		CoincidenceCount:       sum.Coincidences,
		UnitaryEventCount:      sum.UnitaryEvents,
		ConfigHash:             configHash,
	}
}
