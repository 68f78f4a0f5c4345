package clarity

import "sort"

// SurfacePoint is one (axis, value) sample joining ESI and Drift, the
// shape the robustness surface is built from (§3 "SurfacePoint").
type SurfacePoint struct {
	ValueEncoded string  `json:"value_encoded"`
	Value        float64 `json:"value"`
	ESI          float64 `json:"esi"`
	Drift        float64 `json:"drift"`
}

// AxisSurface is one axis's ordered ESI/Drift curve plus its summary
// statistics: mean and population variance of each metric across the
// axis's values (§3 "AxisSurface").
type AxisSurface struct {
	Axis         AxisName       `json:"axis"`
	Points       []SurfacePoint `json:"points"`
	MeanESI      float64        `json:"mean_esi"`
	MeanDrift    float64        `json:"mean_drift"`
	VarianceESI  float64        `json:"variance_esi"`
	VarianceDrift float64       `json:"variance_drift"`
}

// RobustnessSurface bundles every swept axis's ESI/Drift curve, sorted
// alphabetically by axis, plus statistics pooled across every point in
// every axis (§3 "RobustnessSurface").
type RobustnessSurface struct {
	Axes                []AxisSurface `json:"axes"`
	GlobalMeanESI       float64       `json:"global_mean_esi"`
	GlobalMeanDrift     float64       `json:"global_mean_drift"`
	GlobalVarianceESI   float64       `json:"global_variance_esi"`
	GlobalVarianceDrift float64       `json:"global_variance_drift"`
}

// SortAxisSurfaces returns axes sorted alphabetically by name, with each
// axis's own points sorted lexicographically by encoded value (§4.6).
func SortAxisSurfaces(axes []AxisSurface) []AxisSurface {
	out := make([]AxisSurface, len(axes))
	for i, a := range axes {
		points := make([]SurfacePoint, len(a.Points))
		copy(points, a.Points)
		sort.Slice(points, func(x, y int) bool { return points[x].ValueEncoded < points[y].ValueEncoded })
		out[i] = a
		out[i].Points = points
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Axis < out[j].Axis })
	return out
}

// ScalarSurfacePoint is one (value, score) sample on a single-metric
// curve — the shape the confidence and entropy surfaces share, generated
// by the same construction pipeline as the ESI/Drift robustness surface
// but over one rich-signal metric at a time (GLOSSARY "CSI / EDM").
type ScalarSurfacePoint struct {
	ValueEncoded string  `json:"value_encoded"`
	Value        float64 `json:"value"`
	Score        float64 `json:"score"`
}

// ScalarAxisSurface is one axis's ordered single-metric curve.
type ScalarAxisSurface struct {
	Axis     AxisName             `json:"axis"`
	Points   []ScalarSurfacePoint `json:"points"`
	Mean     float64              `json:"mean"`
	Variance float64              `json:"variance"`
}

// ScalarSurface bundles every swept axis's single-metric curve. The same
// shape backs both confidence_surface.json (built from mean confidence)
// and entropy_surface.json (built from mean output entropy).
type ScalarSurface struct {
	Axes         []ScalarAxisSurface `json:"axes"`
	GlobalMean   float64             `json:"global_mean"`
	GlobalVariance float64           `json:"global_variance"`
}

// SortScalarAxisSurfaces returns axes sorted alphabetically by name, with
// each axis's own points sorted lexicographically by encoded value.
func SortScalarAxisSurfaces(axes []ScalarAxisSurface) []ScalarAxisSurface {
	out := make([]ScalarAxisSurface, len(axes))
	for i, a := range axes {
		points := make([]ScalarSurfacePoint, len(a.Points))
		copy(points, a.Points)
		sort.Slice(points, func(x, y int) bool { return points[x].ValueEncoded < points[y].ValueEncoded })
		out[i] = a
		out[i].Points = points
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Axis < out[j].Axis })
	return out
}
