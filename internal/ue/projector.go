package ue

import (
	"math"
	"slices"
	"time"
)

// interval is a half-open time interval [start, end).
type interval struct {
	start, end time.Duration
}

// Projector confirms coincidence events against significant windows.
// It is immutable and safe for concurrent use.
type Projector struct {
	windows Windows
	binSize time.Duration
}

// NewProjector creates a projector for one analysis. binSize converts a
// discretized index into time and must use the same time base as windows,
// which holds by construction when both come from Normalize.
func NewProjector(windows Windows, binSize time.Duration) (*Projector, error) {
	if binSize <= 0 {
		return nil, NewInvalidParameter("bin_size", "bin size must be positive, got %v", binSize)
	}
	if windows.Len() == 0 {
		return nil, NewInvalidParameter("windows", "at least one analysis window is required")
	}
	return &Projector{windows: windows, binSize: binSize}, nil
}

// Windows returns the window sequence the projector tests against.
func (p *Projector) Windows() Windows {
	return p.windows
}

// BinSize returns the index-to-time conversion factor.
func (p *Projector) BinSize() time.Duration {
	return p.binSize
}

// EventTime returns the time position of a discretized index. idx must be
// in [0, MaxEventIndex(binSize)].
func (p *Projector) EventTime(idx int64) time.Duration {
	return time.Duration(idx) * p.binSize
}

// MaxEventIndex returns the largest index whose time idx*binSize fits a
// Duration.
func MaxEventIndex(binSize time.Duration) int64 {
	if binSize <= 0 {
		return 0
	}
	return math.MaxInt64 / int64(binSize)
}

// Project returns the unitary events of one trial: the distinct
// coincidence indices whose time idx*binSize falls inside at least one
// significant window. The result is ascending and never nil.
//
// With no significant windows Project returns immediately without reading
// coincidences. Otherwise the significant windows are merged into disjoint
// intervals once and the deduplicated events are swept against them once,
// so no event is tested per window.
func (p *Projector) Project(significant []int, coincidences []int64) ([]int64, error) {
	for _, k := range significant {
		if k < 0 || k >= p.windows.Len() {
			return nil, NewInvalidParameter("significant_windows",
				"window index %d out of range [0, %d)", k, p.windows.Len())
		}
	}
	if len(significant) == 0 || len(coincidences) == 0 {
		return []int64{}, nil
	}

	spans := p.merge(significant)
	events := Unique(coincidences)
	maxIndex := MaxEventIndex(p.binSize)

	confirmed := make([]int64, 0, len(events))
	j := 0
	for _, idx := range events {
		// Indices without a representable time lie in no window.
		if idx < 0 {
			continue
		}
		if idx > maxIndex {
			break
		}
		t := p.EventTime(idx)
		for j < len(spans) && spans[j].end <= t {
			j++
		}
		if j == len(spans) {
			break
		}
		if spans[j].start <= t {
			confirmed = append(confirmed, idx)
		}
	}
	return confirmed, nil
}

// merge returns the union of the given windows as ascending, disjoint
// intervals. Overlapping and touching windows collapse into one interval.
func (p *Projector) merge(significant []int) []interval {
	ks := slices.Clone(significant)
	slices.Sort(ks)
	ks = slices.Compact(ks)

	out := make([]interval, 0, len(ks))
	for _, k := range ks {
		start, end := p.windows.Start(k), p.windows.End(k)
		if n := len(out); n > 0 && start <= out[n-1].end {
			if end > out[n-1].end {
				out[n-1].end = end
			}
			continue
		}
		out = append(out, interval{start: start, end: end})
	}
	return out
}

// Unique returns the distinct values of indices in ascending order.
// The input is not modified. The result is never nil.
func Unique(indices []int64) []int64 {
	out := make([]int64, len(indices))
	copy(out, indices)
	slices.Sort(out)
	return slices.Compact(out)
}
