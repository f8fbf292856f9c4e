package ue

import (
	"fmt"
	"math"
	"slices"
)

// Mode selects which tail of the joint surprise counts as significant.
type Mode string

const (
	// OneSided selects windows with Js >= threshold (excess coincidences).
	OneSided Mode = "one_sided"

	// TwoSided also selects windows with Js <= -threshold (lacking coincidences).
	TwoSided Mode = "two_sided"
)

// ParseMode validates a mode string. The empty string is rejected: the
// caller must choose a mode explicitly.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case OneSided, TwoSided:
		return Mode(s), nil
	case "":
		return "", NewInvalidParameter("significance_mode", "significance mode is required (one_sided or two_sided)")
	default:
		return "", NewInvalidParameter("significance_mode", "unknown significance mode %q", s)
	}
}

// JointSurpriseThreshold converts a significance level alpha into the joint
// surprise threshold log10((1-alpha)/alpha).
func JointSurpriseThreshold(alpha float64) (float64, error) {
	if !(alpha > 0 && alpha < 1) {
		return 0, NewInvalidParameter("significance_level", "significance level must be in (0, 1), got %v", alpha)
	}
	return math.Log10(1-alpha) - math.Log10(alpha), nil
}

// SelectSignificant returns, in ascending order, the indices k with
// series[k] >= threshold. The comparison is inclusive. An empty result is
// valid and means there are no unitary events to confirm.
func SelectSignificant(series []float64, threshold float64) []int {
	out := []int{}
	for k, v := range series {
		if v >= threshold {
			out = append(out, k)
		}
	}
	return out
}

// SelectLowerTail returns, in ascending order, the indices k with
// series[k] <= threshold. Two-sided callers pass -threshold.
func SelectLowerTail(series []float64, threshold float64) []int {
	out := []int{}
	for k, v := range series {
		if v <= threshold {
			out = append(out, k)
		}
	}
	return out
}

// Select applies mode to series. TwoSided is the union of the upper tail at
// +threshold and the lower tail at -threshold.
func Select(series []float64, threshold float64, mode Mode) ([]int, error) {
	switch mode {
	case OneSided:
		return SelectSignificant(series, threshold), nil
	case TwoSided:
		return unionSorted(
			SelectSignificant(series, threshold),
			SelectLowerTail(series, -threshold),
		), nil
	default:
		_, err := ParseMode(string(mode))
		if err == nil {
			err = fmt.Errorf("unhandled significance mode %q", mode)
		}
		return nil, err
	}
}

// unionSorted merges two ascending index lists without duplicates.
func unionSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}
