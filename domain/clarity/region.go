package clarity

import (
	"fmt"
)

// RegionMask is a rectangle in normalized image coordinates, applied by
// filling with MaskFillValue (§3 "RegionMask", GLOSSARY "Region mask").
// RegionID follows "grid_r{row}_c{col}_k{k}" for counterfactual grid
// regions or "evidence_r{idx}" for overlay-derived regions.
type RegionMask struct {
	RegionID string  `json:"region_id"`
	XMin     float64 `json:"x_min"`
	YMin     float64 `json:"y_min"`
	XMax     float64 `json:"x_max"`
	YMax     float64 `json:"y_max"`
}

// MaskFillValue is the pixel intensity written into a masked region
// (§4.8, Open Question: pinned to 128, do not change without a decision).
const MaskFillValue = 128

// GridRegionID formats the region_id for a k x k counterfactual grid cell.
func GridRegionID(row, col, k int) string {
	return fmt.Sprintf("grid_r%d_c%d_k%d", row, col, k)
}

// EvidenceRegionID formats the region_id for the idx-th overlay-derived
// region in sorted order.
func EvidenceRegionID(idx int) string {
	return fmt.Sprintf("evidence_r%d", idx)
}

// BuildGridRegions partitions the unit square into a k x k grid of equal
// normalized rectangles, in raster order: row-major, top-to-bottom then
// left-to-right, matching the counterfactual engine's probe order.
func BuildGridRegions(k int) []RegionMask {
	if k <= 0 {
		return nil
	}
	step := 1.0 / float64(k)
	out := make([]RegionMask, 0, k*k)
	for row := 0; row < k; row++ {
		for col := 0; col < k; col++ {
			out = append(out, RegionMask{
				RegionID: GridRegionID(row, col, k),
				XMin:     float64(col) * step,
				YMin:     float64(row) * step,
				XMax:     float64(col+1) * step,
				YMax:     float64(row+1) * step,
			})
		}
	}
	return out
}

// PixelRect converts a normalized RegionMask into pixel coordinates for an
// image of the given width and height, rounding with a fixed rule
// (round-half-away-from-zero via standard rounding) so the same region at
// the same image size always yields the same pixel rectangle (§4.8).
func (r RegionMask) PixelRect(width, height int) (x0, y0, x1, y1 int) {
	x0 = roundCoord(r.XMin * float64(width))
	y0 = roundCoord(r.YMin * float64(height))
	x1 = roundCoord(r.XMax * float64(width))
	y1 = roundCoord(r.YMax * float64(height))
	return
}

func roundCoord(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
