package ue

// Layout is the vertical arrangement shared by every raster panel.
// Neuron n occupies rows Offset(n, 0) .. Offset(n, Trials-1); one empty row
// separates consecutive neuron blocks.
type Layout struct {
	Neurons      int `json:"neurons"`
	Trials       int `json:"trials"`
	TickInterval int `json:"tick_interval"`

	// TickPositions are the labelled rows in ascending order: the first row
	// of every block plus every TickInterval-th row within the block.
	TickPositions []int `json:"tick_positions"`

	// TickLabels parallels TickPositions. Each block reads 1, I, 2I, ...
	TickLabels []int `json:"tick_labels"`

	// Separators are the rows between neuron blocks, one per block after
	// the first.
	Separators []int `json:"separators"`
}

// PlanLayout computes the raster layout for neurons blocks of trials rows,
// labelling every tickInterval-th trial.
func PlanLayout(neurons, trials, tickInterval int) (Layout, error) {
	if neurons <= 0 {
		return Layout{}, NewInvalidParameter("neurons", "neuron count must be positive, got %d", neurons)
	}
	if trials <= 0 {
		return Layout{}, NewInvalidParameter("trials", "trial count must be positive, got %d", trials)
	}
	if tickInterval <= 0 {
		return Layout{}, NewInvalidParameter("tick_interval", "tick interval must be positive, got %d", tickInterval)
	}

	l := Layout{
		Neurons:      neurons,
		Trials:       trials,
		TickInterval: tickInterval,
		Separators:   make([]int, 0, neurons-1),
	}

	perBlock := 1 + (trials-1)/tickInterval
	l.TickPositions = make([]int, 0, neurons*perBlock)
	l.TickLabels = make([]int, 0, neurons*perBlock)

	for n := 0; n < neurons; n++ {
		l.TickPositions = append(l.TickPositions, l.Offset(n, 0))
		l.TickLabels = append(l.TickLabels, 1)
		for t := tickInterval; t < trials; t += tickInterval {
			l.TickPositions = append(l.TickPositions, l.Offset(n, t))
			l.TickLabels = append(l.TickLabels, t)
		}
		if n > 0 {
			l.Separators = append(l.Separators, l.Offset(n, 0)-1)
		}
	}
	return l, nil
}

// Offset returns the raster row of trial within neuron's block.
func (l Layout) Offset(neuron, trial int) int {
	return trial + neuron*(l.Trials+1) + 1
}

// YLimits returns the raster y-axis limits, leaving one empty row above the
// last block.
func (l Layout) YLimits() (bottom, top int) {
	return 0, (l.Trials+1)*l.Neurons + 1
}
