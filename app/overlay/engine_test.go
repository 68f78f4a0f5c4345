package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/domain/clarity"
)

// flatGrid builds a row-major evidence map from a visual layout, one row
// per string (width from the first row, height from the row count), 'H' marking a high-evidence cell and '.' a low one.
func flatGrid(rows []string) *clarity.EvidenceMap {
	height := len(rows)
	width := len(rows[0])
	values := make([]float64, 0, width*height)
	for _, row := range rows {
		for _, c := range row {
			if c == 'H' {
				values = append(values, 1.0)
			} else {
				values = append(values, 0.0)
			}
		}
	}
	return &clarity.EvidenceMap{Width: width, Height: height, Values: values}
}

func TestComputeExtractsTwoDisjointRegions(t *testing.T) {
	raw := flatGrid([]string{
		"HH...",
		"HH...",
		"....H",
		"....H",
	})

	engine := NewEngine()
	bundle, err := engine.Compute(raw)
	require.NoError(t, err)

	require.Len(t, bundle.Regions, 2)
	// sorted by area desc: the 2x2 block (area 4/20) before the 1x2 block (2/20).
	assert.Greater(t, bundle.Regions[0].Area, bundle.Regions[1].Area)
	assert.Equal(t, "evidence_r0", bundle.Regions[0].RegionID)
	assert.Equal(t, "evidence_r1", bundle.Regions[1].RegionID)
}

func TestComputeNoAboveThresholdCellsYieldsNoRegions(t *testing.T) {
	raw := flatGrid([]string{
		"...",
		"...",
	})

	engine := NewEngine()
	bundle, err := engine.Compute(raw)
	require.NoError(t, err)
	assert.Empty(t, bundle.Regions)
}

func TestComputeRejectsEmptyEvidenceMap(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Compute(&clarity.EvidenceMap{Width: 0, Height: 0})
	assert.Error(t, err)
}

func TestComputeHeatmapIsNormalized(t *testing.T) {
	raw := &clarity.EvidenceMap{Width: 2, Height: 1, Values: []float64{2.0, 10.0}}

	engine := NewEngine()
	bundle, err := engine.Compute(raw)
	require.NoError(t, err)

	assert.Equal(t, 0.0, bundle.Heatmap.At(0, 0))
	assert.Equal(t, 1.0, bundle.Heatmap.At(1, 0))
}
