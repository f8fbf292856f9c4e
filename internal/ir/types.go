package ir

import "strconv"

// Document is one unitary event analysis as handed over by the statistics
// collaborator: the recorded spike trains plus the per-window statistics
// computed from them.
type Document struct {
	// Version is the document schema version. Empty means IRVersion.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Name is an optional human-readable label for archives and run logs.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// TimeUnit is the unit of TStart, TStop and every spike time ("ms", "s", ...).
	TimeUnit string `json:"time_unit" yaml:"time_unit"`

	// TStart and TStop bound the recording. They are shared by all trials
	// and neurons of one analysis.
	TStart float64 `json:"t_start" yaml:"t_start"`
	TStop  float64 `json:"t_stop" yaml:"t_stop"`

	// Trials holds the spike times indexed [trial][neuron][spike].
	Trials [][][]float64 `json:"trials" yaml:"trials"`

	Params Params `json:"params" yaml:"params"`

	Significance Significance `json:"significance" yaml:"significance"`

	// RateUnit is the unit of Significance.RateAvg. Empty means "Hz".
	RateUnit string `json:"rate_unit,omitempty" yaml:"rate_unit,omitempty"`

	// UnitIDs are the recording's own identifiers for each neuron.
	UnitIDs []string `json:"unit_ids,omitempty" yaml:"unit_ids,omitempty"`
}

// Params are the analysis parameters the statistics were computed with.
// Durations are strings carrying their unit, e.g. "5ms" or "0.1 s".
type Params struct {
	BinSize           string  `json:"bin_size" yaml:"bin_size"`
	WindowSize        string  `json:"window_size" yaml:"window_size"`
	WindowStep        string  `json:"window_step" yaml:"window_step"`
	SignificanceLevel float64 `json:"significance_level" yaml:"significance_level"`
}

// Significance is the per-window statistics dictionary.
type Significance struct {
	// Js is the joint surprise, one value per analysis window.
	Js []float64 `json:"Js" yaml:"Js"`

	// Indices maps "trial<k>" to the discretized bin indices of the
	// coincidences detected in trial k. Duplicates are allowed.
	Indices map[string][]int64 `json:"indices" yaml:"indices"`

	// NEmp and NExp are the empirical and expected coincidence counts per window.
	NEmp []float64 `json:"n_emp,omitempty" yaml:"n_emp,omitempty"`
	NExp []float64 `json:"n_exp,omitempty" yaml:"n_exp,omitempty"`

	// RateAvg is the average firing rate indexed [window][neuron].
	RateAvg [][]float64 `json:"rate_avg,omitempty" yaml:"rate_avg,omitempty"`
}

// TrialKey returns the Significance.Indices key for trial k.
func TrialKey(k int) string {
	return "trial" + strconv.Itoa(k)
}
