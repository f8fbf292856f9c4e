package harness

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/roach88/ueplot/internal/ir"
	"github.com/roach88/ueplot/internal/ue"
)

// checkError compares a rejected projection with expect.error.
func checkError(expect Expectations, err error, result *Result) {
	code := string(ue.CodeOf(err))
	switch {
	case expect.Error == "":
		result.AddError(fmt.Sprintf("unexpected error: %v", err))
	case expect.Error != code:
		result.AddError(fmt.Sprintf("error: expected %s, got %s (%v)", expect.Error, code, err))
	}
}

// checkOutcome runs every expectation present in expect.
func checkOutcome(expect Expectations, out *outcome, result *Result) {
	if expect.WindowStarts != nil {
		checkWindowStarts(expect.WindowStarts, out.analysis.Windows.Starts(), result)
	}

	fig := out.figure
	checkInts(result, "significant_windows", expect.SignificantWindows, fig.SignificantWindows)

	layout := fig.Raster.Layout
	checkInts(result, "tick_positions", expect.TickPositions, layout.TickPositions)
	checkInts(result, "tick_labels", expect.TickLabels, layout.TickLabels)
	checkInts(result, "separators", expect.Separators, layout.Separators)

	if expect.UnitaryEvents != nil {
		checkUnitaryEvents(expect.UnitaryEvents, fig.UnitaryEvents, result)
	}
}

func checkWindowStarts(want []string, got []time.Duration, result *Result) {
	parsed := make([]time.Duration, len(want))
	for i, s := range want {
		d, err := ue.ParseDuration("window_starts", s)
		if err != nil {
			result.AddError(fmt.Sprintf("window_starts[%d]: %v", i, err))
			return
		}
		parsed[i] = d
	}
	if !slices.Equal(parsed, got) {
		result.AddError(fmt.Sprintf("window_starts: expected %v, got %v", parsed, got))
	}
}

// checkInts compares an expected int list if one was given.
func checkInts(result *Result, name string, want, got []int) {
	if want == nil {
		return
	}
	if !slices.Equal(want, got) {
		result.AddError(fmt.Sprintf("%s: expected %v, got %v", name, want, got))
	}
}

func checkUnitaryEvents(want map[string][]int64, got [][]int64, result *Result) {
	keys := make([]string, 0, len(want))
	for k := range want {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	actual := make(map[string][]int64, len(got))
	for t, events := range got {
		actual[ir.TrialKey(t)] = events
	}

	for _, key := range keys {
		events, ok := actual[key]
		if !ok {
			result.AddError(fmt.Sprintf("unitary_events: no trial %q", key))
			continue
		}
		if !slices.Equal(want[key], events) {
			result.AddError(fmt.Sprintf("unitary_events[%s]: expected %v, got %v", key, want[key], events))
		}
	}
}
