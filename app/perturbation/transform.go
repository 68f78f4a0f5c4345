// Package perturbation applies the four clinical perturbation axes to a
// baseline image: brightness, contrast, blur, and occlusion. Every
// transform is a pure function of (image, value) with no hidden state, so
// replaying the same grid point always yields identical bytes.
package perturbation

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/bmp"

	"clarity/domain/clarity"
)

// DecodeImage decodes a BMP-encoded baseline image into an *image.NRGBA
// working buffer. BMP is used end to end because it is uncompressed and
// lossless, keeping perturbation and re-encoding bit-reproducible.
func DecodeImage(data []byte) (*image.NRGBA, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, clarity.NewPerturbationError("", "", "failed to decode baseline image: "+err.Error())
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out, nil
}

// EncodeImage re-encodes img as BMP bytes.
func EncodeImage(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, clarity.NewPerturbationError("", "", "failed to encode image: "+err.Error())
	}
	return buf.Bytes(), nil
}

// Apply applies one (axis, value) perturbation to src, returning a new
// image and leaving src untouched.
func Apply(src *image.NRGBA, axis clarity.AxisName, value float64) (*image.NRGBA, error) {
	switch axis {
	case clarity.AxisBrightness:
		return applyBrightness(src, value), nil
	case clarity.AxisContrast:
		return applyContrast(src, value), nil
	case clarity.AxisBlur:
		return applyBlur(src, value), nil
	case clarity.AxisOcclusion:
		return applyOcclusion(src, value), nil
	default:
		return nil, clarity.NewPerturbationError(string(axis), clarity.EncodeValue(value), "unsupported axis")
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// applyBrightness adds value*255 to every channel; value is in [-1, 1].
func applyBrightness(src *image.NRGBA, value float64) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(bounds)
	delta := value * 255
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x, y, color.NRGBA{
				R: clampByte(float64(c.R) + delta),
				G: clampByte(float64(c.G) + delta),
				B: clampByte(float64(c.B) + delta),
				A: c.A,
			})
		}
	}
	return out
}

// applyContrast scales each channel about the mid-gray point by (1+value).
func applyContrast(src *image.NRGBA, value float64) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(bounds)
	factor := 1 + value
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x, y, color.NRGBA{
				R: clampByte((float64(c.R)-127.5)*factor + 127.5),
				G: clampByte((float64(c.G)-127.5)*factor + 127.5),
				B: clampByte((float64(c.B)-127.5)*factor + 127.5),
				A: c.A,
			})
		}
	}
	return out
}

// applyBlur runs a separable box blur whose radius is derived from value
// (value is in [0, 1], radius in pixels). A box blur is used instead of a
// Gaussian kernel because it is exact and trivially deterministic across
// platforms: integer pixel sums, no transcendental functions.
func applyBlur(src *image.NRGBA, value float64) *image.NRGBA {
	radius := int(math.Round(value * 10))
	if radius <= 0 {
		cp := image.NewNRGBA(src.Bounds())
		copy(cp.Pix, src.Pix)
		return cp
	}
	h := boxBlurPass(src, radius, true)
	return boxBlurPass(h, radius, false)
}

func boxBlurPass(src *image.NRGBA, radius int, horizontal bool) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(bounds)
	w, hgt := bounds.Dx(), bounds.Dy()
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			var rSum, gSum, bSum, aSum, count int
			for d := -radius; d <= radius; d++ {
				sx, sy := x, y
				if horizontal {
					sx = x + d
				} else {
					sy = y + d
				}
				if sx < 0 || sx >= w || sy < 0 || sy >= hgt {
					continue
				}
				c := color.NRGBAModel.Convert(src.At(bounds.Min.X+sx, bounds.Min.Y+sy)).(color.NRGBA)
				rSum += int(c.R)
				gSum += int(c.G)
				bSum += int(c.B)
				aSum += int(c.A)
				count++
			}
			out.SetNRGBA(bounds.Min.X+x, bounds.Min.Y+y, color.NRGBA{
				R: uint8(rSum / count),
				G: uint8(gSum / count),
				B: uint8(bSum / count),
				A: uint8(aSum / count),
			})
		}
	}
	return out
}

// applyOcclusion replaces a centered square block, sized as a fraction
// (value, in [0, 1]) of the image's shorter side, with the fixed fill
// value used by the counterfactual masking grid.
func applyOcclusion(src *image.NRGBA, value float64) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(bounds)
	copy(out.Pix, src.Pix)

	w, h := bounds.Dx(), bounds.Dy()
	side := w
	if h < side {
		side = h
	}
	blockSize := int(math.Round(value * float64(side)))
	if blockSize <= 0 {
		return out
	}
	x0 := bounds.Min.X + (w-blockSize)/2
	y0 := bounds.Min.Y + (h-blockSize)/2
	fill := color.NRGBA{R: clarity.MaskFillValue, G: clarity.MaskFillValue, B: clarity.MaskFillValue, A: 255}
	for y := y0; y < y0+blockSize && y < bounds.Max.Y; y++ {
		for x := x0; x < x0+blockSize && x < bounds.Max.X; x++ {
			if x < bounds.Min.X || y < bounds.Min.Y {
				continue
			}
			out.SetNRGBA(x, y, fill)
		}
	}
	return out
}

// MaskRegion replaces the pixels within region with the fixed fill value,
// used by the counterfactual probing stage.
func MaskRegion(src *image.NRGBA, region clarity.RegionMask) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(bounds)
	copy(out.Pix, src.Pix)
	fill := color.NRGBA{R: clarity.MaskFillValue, G: clarity.MaskFillValue, B: clarity.MaskFillValue, A: 255}
	x0, y0, x1, y1 := region.PixelRect(bounds.Dx(), bounds.Dy())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := bounds.Min.X+x, bounds.Min.Y+y
			if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
				continue
			}
			out.SetNRGBA(px, py, fill)
		}
	}
	return out
}
