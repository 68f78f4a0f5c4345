package clarity

import "sort"

// GradientPoint is the finite-difference slope of both ESI and Drift at
// one swept value: central difference in the interior of the axis's
// value list, one-sided forward/backward at its endpoints (§4.7).
type GradientPoint struct {
	ValueEncoded string  `json:"value_encoded"`
	Value        float64 `json:"value"`
	DESI         float64 `json:"d_esi"`
	DDrift       float64 `json:"d_drift"`
}

// AxisGradient is one axis's ordered slope curve plus its mean/max
// absolute-gradient statistics for each metric.
type AxisGradient struct {
	Axis          AxisName        `json:"axis"`
	Points        []GradientPoint `json:"points"`
	MeanAbsESI    float64         `json:"mean_abs_esi"`
	MaxAbsESI     float64         `json:"max_abs_esi"`
	MeanAbsDrift  float64         `json:"mean_abs_drift"`
	MaxAbsDrift   float64         `json:"max_abs_drift"`
}

// GradientSurface bundles every swept axis's slope curve, sorted
// alphabetically by axis, plus statistics pooled across every point.
type GradientSurface struct {
	Axes               []AxisGradient `json:"axes"`
	GlobalMeanAbsESI   float64        `json:"global_mean_abs_esi"`
	GlobalMaxAbsESI    float64        `json:"global_max_abs_esi"`
	GlobalMeanAbsDrift float64        `json:"global_mean_abs_drift"`
	GlobalMaxAbsDrift  float64        `json:"global_max_abs_drift"`
}

// SortAxisGradients returns axes sorted alphabetically by name, with each
// axis's own points sorted lexicographically by encoded value.
func SortAxisGradients(axes []AxisGradient) []AxisGradient {
	out := make([]AxisGradient, len(axes))
	for i, a := range axes {
		points := make([]GradientPoint, len(a.Points))
		copy(points, a.Points)
		sort.Slice(points, func(x, y int) bool { return points[x].ValueEncoded < points[y].ValueEncoded })
		out[i] = a
		out[i].Points = points
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Axis < out[j].Axis })
	return out
}
