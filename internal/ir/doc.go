// Package ir provides the canonical wire representation of a unitary event
// analysis document as produced by the external statistics collaborator.
//
// This package contains type definitions and serialization only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Values keep the units they were recorded in; conversion to a single
//     time base happens once, in ue.Normalize, never here
//   - All JSON and YAML tags use snake_case, except the statistics keys
//     (Js) that keep the collaborator's spelling
//   - Content-addressed identity is computed over canonical JSON (RFC 8785)
package ir
