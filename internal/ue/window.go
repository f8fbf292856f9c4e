package ue

import "time"

// Span is the recording interval shared by all neurons and trials of one
// analysis.
type Span struct {
	Start time.Duration
	Stop  time.Duration
}

// Len returns the span length.
func (s Span) Len() time.Duration {
	return s.Stop - s.Start
}

// Windows is the ordered sequence of analysis windows over a span.
// Window k is the half-open interval [Start(k), Start(k)+Size).
//
// Windows is an immutable value; consumers may iterate it any number of times.
type Windows struct {
	starts []time.Duration
	size   time.Duration
	step   time.Duration
}

// GenerateWindows returns the windows t_winpos[k] = span.Start + k*step for
// every k with t_winpos[k] + size <= span.Stop. The last partial window is
// dropped, not padded.
func GenerateWindows(span Span, size, step time.Duration) (Windows, error) {
	if span.Stop <= span.Start {
		return Windows{}, NewInvalidParameter("t_stop", "t_stop (%v) must be after t_start (%v)", span.Stop, span.Start)
	}
	if span.Len() < 0 {
		return Windows{}, NewInvalidParameter("t_stop", "recording span from %v to %v overflows the time base", span.Start, span.Stop)
	}
	if size <= 0 {
		return Windows{}, NewInvalidParameter("window_size", "window size must be positive, got %v", size)
	}
	if step <= 0 {
		return Windows{}, NewInvalidParameter("window_step", "window step must be positive, got %v", step)
	}
	if size > span.Len() {
		return Windows{}, NewInvalidParameter("window_size", "window size %v exceeds recording span %v", size, span.Len())
	}

	n := int((span.Len()-size)/step) + 1
	starts := make([]time.Duration, n)
	for k := range starts {
		starts[k] = span.Start + time.Duration(k)*step
	}
	return Windows{starts: starts, size: size, step: step}, nil
}

// Len returns the number of windows.
func (w Windows) Len() int {
	return len(w.starts)
}

// Size returns the window duration.
func (w Windows) Size() time.Duration {
	return w.size
}

// Step returns the distance between consecutive window starts.
func (w Windows) Step() time.Duration {
	return w.step
}

// Start returns the start of window k.
func (w Windows) Start(k int) time.Duration {
	return w.starts[k]
}

// End returns the exclusive end of window k.
func (w Windows) End(k int) time.Duration {
	return w.starts[k] + w.size
}

// Center returns the midpoint of window k, where curve panels plot the
// window's statistic.
func (w Windows) Center(k int) time.Duration {
	return w.starts[k] + w.size/2
}

// Contains reports whether t lies in window k.
func (w Windows) Contains(k int, t time.Duration) bool {
	return w.starts[k] <= t && t < w.starts[k]+w.size
}

// Starts returns a copy of all window starts.
func (w Windows) Starts() []time.Duration {
	out := make([]time.Duration, len(w.starts))
	copy(out, w.starts)
	return out
}

// Centers returns the midpoint of every window.
func (w Windows) Centers() []time.Duration {
	out := make([]time.Duration, len(w.starts))
	for k := range w.starts {
		out[k] = w.Center(k)
	}
	return out
}

// XLimits returns the time-axis limits shared by all panels: the first
// window start and the end of the last window.
func (w Windows) XLimits() (left, right time.Duration) {
	if len(w.starts) == 0 {
		return 0, 0
	}
	return w.starts[0], w.starts[len(w.starts)-1] + w.size
}
