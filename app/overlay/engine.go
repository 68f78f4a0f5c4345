// Package overlay turns an adapter's raw evidence map into a normalized
// heatmap and its above-threshold evidence regions (§4.9).
package overlay

import (
	"github.com/katalvlaran/lvlath/gridgraph"

	"clarity/domain/clarity"
)

// Engine computes OverlayBundle from a raw EvidenceMap.
type Engine struct{}

// NewEngine constructs an overlay Engine. It is stateless.
func NewEngine() *Engine { return &Engine{} }

// Compute normalizes raw into a Heatmap, then extracts its above-threshold
// connected components. Region extraction is delegated to gridgraph: the
// heatmap is binarized at EvidenceThreshold into a 0/1 grid, and
// GridGraph's land/water connected-components search (equal-value,
// 4-connected, row-major BFS) over that binary grid is exactly the
// above-threshold connectivity §4.9 specifies (§4.9).
func (e *Engine) Compute(raw *clarity.EvidenceMap) (*clarity.OverlayBundle, error) {
	heatmap, err := clarity.NormalizeHeatmap(raw)
	if err != nil {
		return nil, err
	}

	binary := make([][]int, heatmap.Height)
	for y := 0; y < heatmap.Height; y++ {
		binary[y] = make([]int, heatmap.Width)
		for x := 0; x < heatmap.Width; x++ {
			if heatmap.At(x, y) > clarity.EvidenceThreshold {
				binary[y][x] = 1
			}
		}
	}

	gg, err := gridgraph.NewGridGraph(binary, gridgraph.GridOptions{LandThreshold: 1, Conn: gridgraph.Conn4})
	if err != nil {
		return nil, clarity.NewOverlayComputationError(err.Error())
	}

	totalCells := float64(heatmap.Width * heatmap.Height)
	var regions []clarity.OverlayRegion
	for _, component := range gg.ConnectedComponents()[1] {
		regions = append(regions, boundingBox(component, heatmap.Width, heatmap.Height, totalCells))
	}

	return &clarity.OverlayBundle{
		Heatmap: heatmap,
		Regions: clarity.AssignRegionIDs(regions),
	}, nil
}

// boundingBox computes cells' axis-aligned bounding box in normalized
// image coordinates and its normalized area (cell count / total cells).
func boundingBox(cells []gridgraph.Cell, width, height int, totalCells float64) clarity.OverlayRegion {
	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	return clarity.OverlayRegion{
		XMin: clarity.MustQuantize(float64(minX) / float64(width)),
		YMin: clarity.MustQuantize(float64(minY) / float64(height)),
		XMax: clarity.MustQuantize(float64(maxX+1) / float64(width)),
		YMax: clarity.MustQuantize(float64(maxY+1) / float64(height)),
		Area: clarity.MustQuantize(float64(len(cells)) / totalCells),
	}
}
