package ue

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/ueplot/internal/ir"
)

// SpikeTrain is the ordered spike times of one neuron in one trial.
type SpikeTrain []time.Duration

// Analysis is a document normalized to the analysis time base and checked
// for consistency. It is built once per invocation and never mutated.
type Analysis struct {
	Name string
	Span Span

	// Trials holds the spike trains indexed [trial][neuron].
	Trials [][]SpikeTrain

	// Neurons is the neuron count shared by every trial.
	Neurons int

	BinSize           time.Duration
	Windows           Windows
	SignificanceLevel float64

	// Threshold is the joint surprise threshold derived from SignificanceLevel.
	Threshold float64

	// Surprise is the joint surprise, one value per window.
	Surprise []float64

	// Coincidences holds each trial's raw coincidence indices, duplicates
	// included. A trial without an entry has none.
	Coincidences [][]int64

	// NEmp and NExp are the empirical and expected coincidence counts per
	// window. Either may be nil.
	NEmp []float64
	NExp []float64

	// RateAvg is the average rate in Hz indexed [window][neuron], or nil.
	RateAvg [][]float64

	UnitIDs []string
}

// NumTrials returns the number of trials.
func (a *Analysis) NumTrials() int {
	return len(a.Trials)
}

// Projector returns an event projector over the analysis windows.
func (a *Analysis) Projector() (*Projector, error) {
	return NewProjector(a.Windows, a.BinSize)
}

// Normalize validates doc and converts every time value into the analysis
// time base. All unit handling happens here; nothing downstream converts
// units again.
func Normalize(doc ir.Document) (*Analysis, error) {
	if doc.Version != "" && doc.Version != ir.IRVersion {
		return nil, NewInvalidParameter("version", "unsupported document version %q", doc.Version)
	}

	unit, err := ParseTimeUnit("time_unit", doc.TimeUnit)
	if err != nil {
		return nil, err
	}

	start, err := ToDuration("t_start", doc.TStart, unit)
	if err != nil {
		return nil, err
	}
	stop, err := ToDuration("t_stop", doc.TStop, unit)
	if err != nil {
		return nil, err
	}
	span := Span{Start: start, Stop: stop}

	binSize, err := ParseDuration("bin_size", doc.Params.BinSize)
	if err != nil {
		return nil, err
	}
	if binSize <= 0 {
		return nil, NewInvalidParameter("bin_size", "bin size must be positive, got %v", binSize)
	}
	winSize, err := ParseDuration("window_size", doc.Params.WindowSize)
	if err != nil {
		return nil, err
	}
	winStep, err := ParseDuration("window_step", doc.Params.WindowStep)
	if err != nil {
		return nil, err
	}
	windows, err := GenerateWindows(span, winSize, winStep)
	if err != nil {
		return nil, err
	}

	threshold, err := JointSurpriseThreshold(doc.Params.SignificanceLevel)
	if err != nil {
		return nil, err
	}

	trials, neurons, err := normalizeTrials(doc.Trials, unit)
	if err != nil {
		return nil, err
	}

	sig := doc.Significance
	if err := checkSeries("Js", len(sig.Js), windows.Len(), true); err != nil {
		return nil, err
	}
	for _, v := range sig.Js {
		if math.IsNaN(v) {
			return nil, NewInvalidParameter("Js", "joint surprise contains NaN")
		}
	}
	if err := checkSeries("n_emp", len(sig.NEmp), windows.Len(), false); err != nil {
		return nil, err
	}
	if err := checkSeries("n_exp", len(sig.NExp), windows.Len(), false); err != nil {
		return nil, err
	}

	rates, err := normalizeRates(sig.RateAvg, doc.RateUnit, windows.Len(), neurons)
	if err != nil {
		return nil, err
	}

	coincidences, err := normalizeIndices(sig.Indices, len(trials), binSize)
	if err != nil {
		return nil, err
	}

	if len(doc.UnitIDs) > 0 && len(doc.UnitIDs) != neurons {
		return nil, NewInvalidParameter("unit_ids",
			"%d unit ids given for %d neurons", len(doc.UnitIDs), neurons)
	}

	return &Analysis{
		Name:              doc.Name,
		Span:              span,
		Trials:            trials,
		Neurons:           neurons,
		BinSize:           binSize,
		Windows:           windows,
		SignificanceLevel: doc.Params.SignificanceLevel,
		Threshold:         threshold,
		Surprise:          append([]float64(nil), sig.Js...),
		Coincidences:      coincidences,
		NEmp:              append([]float64(nil), sig.NEmp...),
		NExp:              append([]float64(nil), sig.NExp...),
		RateAvg:           rates,
		UnitIDs:           append([]string(nil), doc.UnitIDs...),
	}, nil
}

// normalizeTrials converts spike times and checks that every trial records
// the same neurons. The neuron count is aggregated explicitly rather than
// read off whichever trial happened to be last.
func normalizeTrials(raw [][][]float64, unit time.Duration) ([][]SpikeTrain, int, error) {
	if len(raw) == 0 {
		return nil, 0, NewInvalidParameter("trials", "at least one trial is required")
	}
	neurons := len(raw[0])
	if neurons == 0 {
		return nil, 0, NewInvalidParameter("trials", "at least one neuron is required")
	}

	trials := make([][]SpikeTrain, len(raw))
	for t, trial := range raw {
		if len(trial) != neurons {
			return nil, 0, NewInvalidParameter("trials",
				"trial %d has %d neurons, trial 0 has %d", t, len(trial), neurons)
		}
		trials[t] = make([]SpikeTrain, neurons)
		for n, spikes := range trial {
			train := make(SpikeTrain, len(spikes))
			for i, v := range spikes {
				d, err := ToDuration("trials", v, unit)
				if err != nil {
					return nil, 0, err
				}
				train[i] = d
			}
			trials[t][n] = train
		}
	}
	return trials, neurons, nil
}

func checkSeries(field string, got, windows int, required bool) error {
	if got == 0 && !required {
		return nil
	}
	if got != windows {
		return NewInvalidParameter(field, "%s has %d values for %d windows", field, got, windows)
	}
	return nil
}

func normalizeRates(raw [][]float64, unit string, windows, neurons int) ([][]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	factor, err := ParseRateUnit("rate_unit", unit)
	if err != nil {
		return nil, err
	}
	if len(raw) != windows {
		return nil, NewInvalidParameter("rate_avg", "rate_avg has %d rows for %d windows", len(raw), windows)
	}
	out := make([][]float64, len(raw))
	for k, row := range raw {
		if len(row) != neurons {
			return nil, NewInvalidParameter("rate_avg",
				"rate_avg row %d has %d values for %d neurons", k, len(row), neurons)
		}
		out[k] = make([]float64, neurons)
		for n, v := range row {
			out[k][n] = v * factor
		}
	}
	return out, nil
}

// normalizeIndices maps "trial<k>" keys onto a per-trial slice. Every index
// must be non-negative and small enough that idx*binSize fits a Duration.
func normalizeIndices(raw map[string][]int64, trials int, binSize time.Duration) ([][]int64, error) {
	maxIndex := MaxEventIndex(binSize)
	out := make([][]int64, trials)
	for key, indices := range raw {
		digits, ok := strings.CutPrefix(key, "trial")
		if !ok {
			return nil, NewInvalidParameter("indices", "key %q does not name a trial", key)
		}
		k, err := strconv.Atoi(digits)
		if err != nil || k < 0 || k >= trials {
			return nil, NewInvalidParameter("indices", "key %q does not name one of %d trials", key, trials)
		}
		for _, idx := range indices {
			if idx < 0 || idx > maxIndex {
				return nil, NewInvalidParameter("indices",
					"index %d of %s is outside [0, %d] for bin size %v", idx, key, maxIndex, binSize)
			}
		}
		out[k] = append([]int64(nil), indices...)
	}
	return out, nil
}
