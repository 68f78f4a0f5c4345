package gradient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/domain/clarity"
)

func surfaceWithPoints(points ...clarity.SurfacePoint) *clarity.RobustnessSurface {
	return &clarity.RobustnessSurface{
		Axes: []clarity.AxisSurface{
			{Axis: clarity.AxisBrightness, Points: points},
		},
	}
}

func TestComputeSingleValueAxisHasZeroGradient(t *testing.T) {
	surface := surfaceWithPoints(clarity.SurfacePoint{ValueEncoded: "0p2", Value: 0.2, ESI: 0.8, Drift: 0.1})

	engine := NewEngine()
	result, err := engine.Compute(surface)
	require.NoError(t, err)

	require.Len(t, result.Axes[0].Points, 1)
	assert.Equal(t, 0.0, result.Axes[0].Points[0].DESI)
	assert.Equal(t, 0.0, result.Axes[0].Points[0].DDrift)
}

func TestComputeEndpointsUseOneSidedDifference(t *testing.T) {
	surface := surfaceWithPoints(
		clarity.SurfacePoint{ValueEncoded: "n0p2", Value: -0.2, ESI: 1.0, Drift: 0.0},
		clarity.SurfacePoint{ValueEncoded: "0p0", Value: 0.0, ESI: 0.8, Drift: 0.1},
		clarity.SurfacePoint{ValueEncoded: "0p2", Value: 0.2, ESI: 0.4, Drift: 0.3},
	)

	engine := NewEngine()
	result, err := engine.Compute(surface)
	require.NoError(t, err)

	points := result.Axes[0].Points
	require.Len(t, points, 3)

	// differences follow the input order; the output points are then
	// sorted lexicographically by encoded value: 0p0, 0p2, n0p2.
	// central difference at the interior point 0p0: (0.4 - 1.0) / 2 = -0.3
	assert.InDelta(t, -0.3, points[0].DESI, 1e-9)
	// backward difference at the last input point 0p2: 0.4 - 0.8 = -0.4
	assert.InDelta(t, -0.4, points[1].DESI, 1e-9)
	// forward difference at the first input point n0p2: 0.8 - 1.0 = -0.2
	assert.InDelta(t, -0.2, points[2].DESI, 1e-9)
}

func TestComputeMeanAndMaxAbs(t *testing.T) {
	surface := surfaceWithPoints(
		clarity.SurfacePoint{ValueEncoded: "0p0", Value: 0.0, ESI: 1.0, Drift: 0.0},
		clarity.SurfacePoint{ValueEncoded: "1p0", Value: 1.0, ESI: 0.0, Drift: 0.0},
	)

	engine := NewEngine()
	result, err := engine.Compute(surface)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Axes[0].MeanAbsESI, 1e-9)
	assert.InDelta(t, 1.0, result.Axes[0].MaxAbsESI, 1e-9)
	assert.InDelta(t, 1.0, result.GlobalMeanAbsESI, 1e-9)
}
