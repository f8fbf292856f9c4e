// Package harness runs YAML scenarios against the full projection pipeline:
// config validation, document normalization, panel building and the run
// log.
//
// A scenario carries an analysis document (inline or by path), optional
// config overrides and a set of expectations. Each run uses a fresh
// in-memory store with a deterministic clock and sequential run IDs, so the
// resulting snapshot is byte-identical across runs and can be compared with
// a golden file.
//
//	name: inclusive-window-end
//	description: the last window ends exactly at t_stop
//	document_path: documents/small.json
//	config:
//	  significance_mode: one_sided
//	expect:
//	  window_starts: ["0ms", "50ms", "100ms"]
//	  significant_windows: [1]
//	  unitary_events:
//	    trial0: [10, 26]
//
// Snapshots are canonical JSON and hold only integers and strings.
package harness
