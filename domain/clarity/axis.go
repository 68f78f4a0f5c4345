package clarity

import (
	"sort"
	"strconv"
	"strings"
)

// AxisName identifies one of the four clinically meaningful perturbation
// dimensions CLARITY sweeps over (§3 "PerturbationAxis").
type AxisName string

const (
	AxisBrightness AxisName = "brightness"
	AxisContrast   AxisName = "contrast"
	AxisBlur       AxisName = "blur"
	AxisOcclusion  AxisName = "occlusion"
)

// KnownAxisNames lists every axis the perturbation engine can apply. Used
// to reject an unrecognized axis at grid-construction time with a
// PerturbationError rather than discovering it mid-sweep.
var KnownAxisNames = []AxisName{AxisBrightness, AxisContrast, AxisBlur, AxisOcclusion}

func (a AxisName) Valid() bool {
	for _, known := range KnownAxisNames {
		if a == known {
			return true
		}
	}
	return false
}

// PerturbationAxis names one axis and its ordered list of perturbation
// values, in the order the caller declared them. Declaration order is
// preserved everywhere except the surface engine's per-axis point list,
// which re-sorts by the encoded value string (§4.6).
type PerturbationAxis struct {
	Name   AxisName  `json:"name"`
	Values []float64 `json:"values"`
}

// EncodeValue converts a perturbation value into its directory-safe,
// canonical string form: "1.0" -> "1p0", "-0.5" -> "n0p5" (§2.2). The
// shortest round-trippable decimal representation is used so that "1" and
// "1.0" always encode identically.
func EncodeValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	s = strings.ReplaceAll(s, "-", "n")
	s = strings.ReplaceAll(s, ".", "p")
	return s
}

// SortedEncodedValues returns the lexicographically sorted encoded values
// for axis, the ordering the surface engine's SurfacePoint list uses
// (§4.6: "values sorted lexicographically by encoded string").
func SortedEncodedValues(values []float64) []string {
	encoded := make([]string, len(values))
	for i, v := range values {
		encoded[i] = EncodeValue(v)
	}
	sort.Strings(encoded)
	return encoded
}

// SortedAxisNames returns axis names in canonical (alphabetical) order
// (§4.2, §4.5, §4.6: "axes alphabetical").
func SortedAxisNames(axes []AxisName) []AxisName {
	out := make([]AxisName, len(axes))
	copy(out, axes)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
