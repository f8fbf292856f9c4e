// Package store provides SQLite-backed storage for analysis documents and
// the log of projections run against them.
//
// The store keeps two tables:
//   - documents: the canonical JSON of each imported document, keyed by its
//     content-addressed ID, so importing the same document twice is a no-op
//   - runs: one summary row per projection (mode, threshold and counts)
//
// Unitary event sets are never stored. They are cheap to recompute and
// always derived from the archived document.
//
// # Ordering
//
// Every row is stamped with a seq from a monotonic logical clock, resumed
// from the highest stored seq on Open. All list queries order by
// seq ASC, id ASC COLLATE BINARY, so results never depend on wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
