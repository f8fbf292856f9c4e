package testutil

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/roach88/ueplot/internal/ir"
)

// SmallDocument returns a hand-checkable document: two trials of two
// neurons over [0, 200) ms, 5 ms bins and three 100 ms windows starting at
// 0, 50 and 100 ms. With significance level 0.05 only window 1 clears the
// one-sided threshold; window 2 is significant on the lower tail.
//
// Trial 0 has coincidences at bins 10 (twice) and 26, trial 1 at bins 2
// and 35.
func SmallDocument() ir.Document {
	return ir.Document{
		Name:     "small",
		TimeUnit: "ms",
		TStart:   0,
		TStop:    200,
		Trials: [][][]float64{
			{{10, 50}, {51}},
			{{5}, {}},
		},
		Params: ir.Params{
			BinSize:           "5ms",
			WindowSize:        "100ms",
			WindowStep:        "50ms",
			SignificanceLevel: 0.05,
		},
		Significance: ir.Significance{
			Js: []float64{0.2, 1.5, -2},
			Indices: map[string][]int64{
				"trial0": {10, 10, 26},
				"trial1": {35, 2},
			},
			NEmp:    []float64{1, 2, 0},
			NExp:    []float64{0.5, 0.5, 0.5},
			RateAvg: [][]float64{{10, 12}, {11, 13}, {9, 8}},
		},
		UnitIDs: []string{"a", "b"},
	}
}

// Synthetic document geometry: 1 s recordings, 5 ms bins, 100 ms windows
// every 50 ms.
const (
	syntheticStop    = 1000.0
	syntheticBins    = 200
	syntheticWindows = 19
)

// SyntheticDocument returns a pseudo-random document for the given seed.
// The same seed always yields the same document.
func SyntheticDocument(seed uint64, trials, neurons int) ir.Document {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	doc := ir.Document{
		Name:     "synthetic",
		TimeUnit: "ms",
		TStart:   0,
		TStop:    syntheticStop,
		Trials:   make([][][]float64, trials),
		Params: ir.Params{
			BinSize:           "5ms",
			WindowSize:        "100ms",
			WindowStep:        "50ms",
			SignificanceLevel: 0.05,
		},
		Significance: ir.Significance{
			Js:      make([]float64, syntheticWindows),
			Indices: make(map[string][]int64, trials),
			NEmp:    make([]float64, syntheticWindows),
			NExp:    make([]float64, syntheticWindows),
			RateAvg: make([][]float64, syntheticWindows),
		},
	}

	for t := range doc.Trials {
		doc.Trials[t] = make([][]float64, neurons)
		for n := range doc.Trials[t] {
			spikes := make([]float64, r.IntN(20))
			for i := range spikes {
				spikes[i] = math.Round(r.Float64()*syntheticStop*10) / 10
			}
			slices.Sort(spikes)
			doc.Trials[t][n] = spikes
		}

		indices := make([]int64, r.IntN(8))
		for i := range indices {
			indices[i] = r.Int64N(syntheticBins)
		}
		doc.Significance.Indices[ir.TrialKey(t)] = indices
	}

	sig := &doc.Significance
	for k := 0; k < syntheticWindows; k++ {
		sig.Js[k] = r.NormFloat64() * 1.5
		sig.NEmp[k] = float64(r.IntN(5))
		sig.NExp[k] = math.Round(r.Float64()*200) / 100
		sig.RateAvg[k] = make([]float64, neurons)
		for n := range sig.RateAvg[k] {
			sig.RateAvg[k][n] = math.Round(r.Float64()*300) / 10
		}
	}
	return doc
}
