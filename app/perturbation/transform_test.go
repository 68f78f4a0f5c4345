package perturbation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/domain/clarity"
	"clarity/internal/testkit"
)

func TestApplyIsDeterministic(t *testing.T) {
	raw := testkit.NewTestImage(16, 16, 128)
	src, err := DecodeImage(raw)
	require.NoError(t, err)

	for _, tc := range []struct {
		axis  clarity.AxisName
		value float64
	}{
		{clarity.AxisBrightness, 0.3},
		{clarity.AxisContrast, -0.2},
		{clarity.AxisBlur, 0.5},
		{clarity.AxisOcclusion, 0.25},
	} {
		a, err := Apply(src, tc.axis, tc.value)
		require.NoError(t, err)
		b, err := Apply(src, tc.axis, tc.value)
		require.NoError(t, err)
		assert.Equal(t, a.Pix, b.Pix, "axis %s should be a pure function of (image, value)", tc.axis)
	}
}

func TestApplyLeavesSourceUntouched(t *testing.T) {
	raw := testkit.NewTestImage(8, 8, 100)
	src, err := DecodeImage(raw)
	require.NoError(t, err)
	before := append([]byte(nil), src.Pix...)

	_, err = Apply(src, clarity.AxisBrightness, 0.9)
	require.NoError(t, err)

	assert.Equal(t, before, src.Pix, "Apply must not mutate its source image")
}

func TestApplyUnsupportedAxis(t *testing.T) {
	raw := testkit.NewTestImage(4, 4, 50)
	src, err := DecodeImage(raw)
	require.NoError(t, err)

	_, err = Apply(src, clarity.AxisName("rotation"), 1.0)
	assert.Error(t, err)
}

func TestBrightnessClampsToByteRange(t *testing.T) {
	raw := testkit.NewTestImage(2, 2, 250)
	src, err := DecodeImage(raw)
	require.NoError(t, err)

	out, err := Apply(src, clarity.AxisBrightness, 1.0)
	require.NoError(t, err)
	for _, p := range out.Pix {
		assert.LessOrEqual(t, int(p), 255)
	}
}

func TestMaskRegionFillsExactRect(t *testing.T) {
	raw := testkit.NewTestImage(10, 10, 10)
	src, err := DecodeImage(raw)
	require.NoError(t, err)

	region := clarity.RegionMask{RegionID: "r", XMin: 0, YMin: 0, XMax: 0.5, YMax: 0.5}
	out := MaskRegion(src, region)

	c := out.NRGBAAt(1, 1)
	assert.Equal(t, uint8(clarity.MaskFillValue), c.R)

	c = out.NRGBAAt(9, 9)
	assert.Equal(t, uint8(10), c.R)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	raw := testkit.NewTestImage(6, 6, 77)
	img, err := DecodeImage(raw)
	require.NoError(t, err)

	reencoded, err := EncodeImage(img)
	require.NoError(t, err)

	roundTripped, err := DecodeImage(reencoded)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, roundTripped.Pix)
}
