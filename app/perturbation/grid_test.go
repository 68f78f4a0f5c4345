package perturbation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clarity/domain/clarity"
)

func TestEnumerateCanonicalOrder(t *testing.T) {
	spec := &clarity.SweepSpec{
		Axes: []clarity.PerturbationAxis{
			{Name: clarity.AxisOcclusion, Values: []float64{0.1, 0.2}},
			{Name: clarity.AxisBrightness, Values: []float64{0.5, -0.5}},
		},
		Seeds: []int64{7, 3},
	}

	points := Enumerate(spec)
	require := func(cond bool, msg string) {
		if !cond {
			t.Fatal(msg)
		}
	}
	require(len(points) == 8, "expected 4 axis values * 2 seeds = 8 points")

	// axes alphabetical: brightness before occlusion.
	assert.Equal(t, clarity.AxisBrightness, points[0].Axis)
	assert.Equal(t, clarity.AxisBrightness, points[3].Axis)
	assert.Equal(t, clarity.AxisOcclusion, points[4].Axis)

	// values in declared order within an axis: 0.5 then -0.5.
	assert.Equal(t, 0.5, points[0].Value)
	assert.Equal(t, 0.5, points[1].Value)
	assert.Equal(t, -0.5, points[2].Value)

	// seeds in declared order within a value: 7 then 3.
	assert.Equal(t, int64(7), points[0].Seed)
	assert.Equal(t, int64(3), points[1].Seed)
}

func TestEnumerateEmptyAxes(t *testing.T) {
	spec := &clarity.SweepSpec{Seeds: []int64{1}}
	assert.Empty(t, Enumerate(spec))
}

func TestEnumerateValueEncodedMatchesEncodeValue(t *testing.T) {
	spec := &clarity.SweepSpec{
		Axes:  []clarity.PerturbationAxis{{Name: clarity.AxisBlur, Values: []float64{0.25}}},
		Seeds: []int64{1},
	}
	points := Enumerate(spec)
	assert.Equal(t, clarity.EncodeValue(0.25), points[0].ValueEncoded)
}
