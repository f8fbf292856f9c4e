// Package testutil provides deterministic fixtures shared by package tests:
// a resettable logical clock, predictable run IDs and analysis documents.
package testutil
