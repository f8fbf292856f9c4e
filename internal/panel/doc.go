// Package panel turns a normalized analysis into plot-ready coordinates for
// the six unitary event panels:
//
//  1. Spike events: every spike on its (neuron, trial) raster row
//  2. Spike rates: the average rate of each neuron per window
//  3. Coincident events: the deduplicated coincidence bins of each trial
//  4. Coincidence rates: empirical and expected coincidences per second
//  5. Statistical significance: the joint surprise curve with thresholds
//  6. Unitary events: coincidences confirmed by a significant window
//
// Coordinates are gonum plotter.XYs so any gonum/plot renderer can draw
// them directly. Drawing itself happens elsewhere.
//
// Raster rows are placed with ue.Layout and trials are processed by a
// bounded pool of workers. Results are written into preallocated slots, so
// the output is identical for any worker count.
package panel
