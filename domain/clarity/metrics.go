package clarity

import "sort"

// AxisMetric is the shape shared by ESIMetric and DriftMetric (and, by the
// SPEC_FULL generalization, the confidence/entropy analogues): a per-axis
// score keyed by encoded value, plus the axis-level mean (§3).
type AxisMetric struct {
	Axis         AxisName           `json:"axis"`
	ValueScores  map[string]float64 `json:"value_scores"`
	OverallScore float64            `json:"overall_score"`
}

// ESIMetric is the Evidence Stability Index for one axis: the proportion
// of seeds at each value whose answer equals the baseline's, averaged
// across the axis's values.
type ESIMetric AxisMetric

// DriftMetric is the Justification Drift for one axis: the mean
// normalized Levenshtein distance against the baseline justification,
// averaged across the axis's values.
type DriftMetric AxisMetric

// MetricsResult bundles the sorted ESI and Drift tuples a sweep produces
// (§3). Both are sorted alphabetically by axis.
type MetricsResult struct {
	ESI   []ESIMetric   `json:"esi"`
	Drift []DriftMetric `json:"drift"`
}

// SortESIMetrics returns esi sorted alphabetically by axis.
func SortESIMetrics(esi []ESIMetric) []ESIMetric {
	out := make([]ESIMetric, len(esi))
	copy(out, esi)
	sort.Slice(out, func(i, j int) bool { return out[i].Axis < out[j].Axis })
	return out
}

// SortDriftMetrics returns drift sorted alphabetically by axis.
func SortDriftMetrics(drift []DriftMetric) []DriftMetric {
	out := make([]DriftMetric, len(drift))
	copy(out, drift)
	sort.Slice(out, func(i, j int) bool { return out[i].Axis < out[j].Axis })
	return out
}
