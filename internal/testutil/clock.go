package testutil

import "sync/atomic"

// RunClock numbers stored runs 1, 2, 3... in a scenario. It satisfies
// store.Sequencer, and Reset lets a harness replay a scenario with the same
// seq values.
type RunClock struct {
	seq atomic.Int64
}

func NewRunClock() *RunClock {
	return &RunClock{}
}

func (c *RunClock) Next() int64 {
	return c.seq.Add(1)
}

// Current is the seq of the last recorded run, 0 before the first.
func (c *RunClock) Current() int64 {
	return c.seq.Load()
}

func (c *RunClock) Reset() {
	c.seq.Store(0)
}
