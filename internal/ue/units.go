package ue

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// timeUnits maps normalized unit spellings to their length.
// Keys are NFKC-normalized, so the micro sign (U+00B5) and the Greek
// letter mu (U+03BC) both resolve to "μs".
var timeUnits = map[string]time.Duration{
	"s":   time.Second,
	"sec": time.Second,
	"ms":  time.Millisecond,
	"us":  time.Microsecond,
	"μs":  time.Microsecond,
	"ns":  time.Nanosecond,
}

// rateUnits maps rate unit spellings to their factor relative to Hz.
var rateUnits = map[string]float64{
	"Hz":  1,
	"1/s": 1,
	"kHz": 1000,
}

func normalizeUnit(unit string) string {
	return strings.TrimSpace(norm.NFKC.String(unit))
}

// ParseTimeUnit returns the length of one unit, e.g. time.Millisecond for "ms".
func ParseTimeUnit(field, unit string) (time.Duration, error) {
	d, ok := timeUnits[normalizeUnit(unit)]
	if !ok {
		return 0, NewUnitMismatch(field, unit)
	}
	return d, nil
}

// ParseRateUnit returns the factor converting values in unit to Hz.
func ParseRateUnit(field, unit string) (float64, error) {
	if unit == "" {
		return 1, nil
	}
	f, ok := rateUnits[normalizeUnit(unit)]
	if !ok {
		return 0, NewUnitMismatch(field, unit)
	}
	return f, nil
}

// ToDuration converts a magnitude expressed in unit to the analysis time base.
// Values are rounded to the nearest nanosecond.
func ToDuration(field string, v float64, unit time.Duration) (time.Duration, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewInvalidParameter(field, "value must be finite, got %v", v)
	}
	ns := math.Round(v * float64(unit))
	// float64(math.MaxInt64) rounds up to 2^63, which no Duration can hold.
	if ns >= math.MaxInt64 || ns < math.MinInt64 {
		return 0, NewInvalidParameter(field, "value %v overflows the time base", v)
	}
	return time.Duration(ns), nil
}

// FromDuration expresses d as a magnitude in unit.
func FromDuration(d, unit time.Duration) float64 {
	return float64(d) / float64(unit)
}

// ParseDuration parses a magnitude followed by a unit: "5ms", "0.1 s",
// "5000µs". A bare number is rejected because its unit is unknown.
func ParseDuration(field, s string) (time.Duration, error) {
	s = strings.TrimSpace(norm.NFKC.String(s))
	if s == "" {
		return 0, NewInvalidParameter(field, "duration is required")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E')
	})
	// An exponent marker directly followed by a unit letter belongs to the
	// unit, not the number ("5e" is never a valid magnitude).
	for split > 0 && (s[split-1] == 'e' || s[split-1] == 'E') {
		split--
	}
	if split <= 0 {
		return 0, NewUnitMismatch(field, "")
	}

	mag, err := strconv.ParseFloat(s[:split], 64)
	if err != nil {
		return 0, NewInvalidParameter(field, "invalid duration %q", s)
	}
	unit, err := ParseTimeUnit(field, s[split:])
	if err != nil {
		return 0, err
	}
	return ToDuration(field, mag, unit)
}
