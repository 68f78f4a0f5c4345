package clarity

import "sort"

// EvidenceMap is the raw, adapter-reported evidence grid for one response:
// a row-major flattening of a Height x Width matrix of saliency weights
// (§4.3, §4.9). Values are not assumed normalized.
type EvidenceMap struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Values []float64 `json:"values"`
}

// At returns the value at (x, y) in row-major order.
func (m *EvidenceMap) At(x, y int) float64 {
	return m.Values[y*m.Width+x]
}

// Heatmap is an EvidenceMap normalized to [0, 1] via min-max scaling and
// clipped to that range, with every cell rounded to 8 decimals (§4.9).
type Heatmap struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Values []float64 `json:"values"`
}

// At returns the value at (x, y) in row-major order.
func (h *Heatmap) At(x, y int) float64 {
	return h.Values[y*h.Width+x]
}

// NormalizeHeatmap min-max scales m into a Heatmap: every cell mapped to
// (v - min) / (max - min), clipped to [0, 1], rounded to 8 decimals. A
// degenerate map (max == min) normalizes to all zeros.
func NormalizeHeatmap(m *EvidenceMap) (*Heatmap, error) {
	if len(m.Values) == 0 {
		return nil, NewOverlayComputationError("evidence map has no cells")
	}
	if m.Width <= 0 || m.Height <= 0 || len(m.Values) != m.Width*m.Height {
		return nil, NewOverlayComputationError("evidence map is not a width x height rectangle")
	}
	min, max := m.Values[0], m.Values[0]
	for _, v := range m.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(m.Values))
	spread := max - min
	for i, v := range m.Values {
		var n float64
		if spread != 0 {
			n = (v - min) / spread
		}
		if n < 0 {
			n = 0
		}
		if n > 1 {
			n = 1
		}
		q, err := Quantize(n)
		if err != nil {
			return nil, NewOverlayComputationError("normalized cell is not finite")
		}
		out[i] = q
	}
	return &Heatmap{Width: m.Width, Height: m.Height, Values: out}, nil
}

// OverlayRegion is one connected component of heatmap cells strictly above
// the evidence threshold, extracted by deterministic row-major BFS and
// expressed as a normalized axis-aligned bounding box (§3, §4.9).
type OverlayRegion struct {
	RegionID string  `json:"region_id"`
	XMin     float64 `json:"x_min"`
	YMin     float64 `json:"y_min"`
	XMax     float64 `json:"x_max"`
	YMax     float64 `json:"y_max"`
	Area     float64 `json:"area"`
}

// EvidenceThreshold is the minimum normalized heatmap value a cell must
// exceed to participate in region extraction (§4.9: "mark cells with v >
// τ").
const EvidenceThreshold = 0.7

// AssignRegionIDs sorts regions by (area desc, x_min asc, y_min asc) and
// returns them with region_id set to "evidence_r{i}" in that order
// (§4.9, §3 "RegionMask").
func AssignRegionIDs(regions []OverlayRegion) []OverlayRegion {
	out := make([]OverlayRegion, len(regions))
	copy(out, regions)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Area != b.Area {
			return a.Area > b.Area
		}
		if a.XMin != b.XMin {
			return a.XMin < b.XMin
		}
		return a.YMin < b.YMin
	})
	for i := range out {
		out[i].RegionID = EvidenceRegionID(i)
	}
	return out
}

// OverlayBundle is the sealed output of the evidence-overlay stage: the
// normalized heatmap plus its extracted regions (§4.9).
type OverlayBundle struct {
	Heatmap *Heatmap        `json:"heatmap"`
	Regions []OverlayRegion `json:"regions"`
}
