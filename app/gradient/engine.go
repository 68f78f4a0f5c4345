// Package gradient computes the finite-difference slope of a robustness
// surface's ESI and Drift curves along each axis's ordered points, with
// unit spacing between neighbouring points (§4.7).
package gradient

import "clarity/domain/clarity"

// Engine computes GradientSurface from a RobustnessSurface.
type Engine struct{}

// NewEngine constructs a gradient Engine. It is stateless.
func NewEngine() *Engine { return &Engine{} }

// Compute walks each axis's points in their stored order (the surface
// engine stores them sorted lexicographically by encoded value) and
// differentiates both metrics with unit spacing between neighbouring
// points, ignoring the numeric values themselves: central difference
// (f[i+1] - f[i-1]) / 2 in the interior, one-sided forward/backward
// differences at the endpoints, and a zero gradient for a single-value
// axis (§4.7). The returned points are sorted lexicographically by
// encoded value.
func (e *Engine) Compute(surface *clarity.RobustnessSurface) (*clarity.GradientSurface, error) {
	axes := make([]clarity.AxisGradient, 0, len(surface.Axes))
	var allAbsESI, allAbsDrift []float64

	for _, axisSurface := range surface.Axes {
		n := len(axisSurface.Points)
		points := make([]clarity.GradientPoint, n)

		for i, p := range axisSurface.Points {
			var dESI, dDrift float64
			switch {
			case n == 1:
				dESI, dDrift = 0, 0
			case i == 0:
				next := axisSurface.Points[i+1]
				dESI = next.ESI - p.ESI
				dDrift = next.Drift - p.Drift
			case i == n-1:
				prev := axisSurface.Points[i-1]
				dESI = p.ESI - prev.ESI
				dDrift = p.Drift - prev.Drift
			default:
				prev, next := axisSurface.Points[i-1], axisSurface.Points[i+1]
				dESI = (next.ESI - prev.ESI) / 2
				dDrift = (next.Drift - prev.Drift) / 2
			}

			qESI, err := clarity.Quantize(dESI)
			if err != nil {
				return nil, clarity.NewGradientComputationError(string(axisSurface.Axis), err.Error())
			}
			qDrift, err := clarity.Quantize(dDrift)
			if err != nil {
				return nil, clarity.NewGradientComputationError(string(axisSurface.Axis), err.Error())
			}
			points[i] = clarity.GradientPoint{
				ValueEncoded: p.ValueEncoded,
				Value:        p.Value,
				DESI:         qESI,
				DDrift:       qDrift,
			}
		}

		meanAbsESI, maxAbsESI := absStats(points, func(p clarity.GradientPoint) float64 { return p.DESI })
		meanAbsDrift, maxAbsDrift := absStats(points, func(p clarity.GradientPoint) float64 { return p.DDrift })

		axes = append(axes, clarity.AxisGradient{
			Axis:         axisSurface.Axis,
			Points:       points,
			MeanAbsESI:   clarity.MustQuantize(meanAbsESI),
			MaxAbsESI:    clarity.MustQuantize(maxAbsESI),
			MeanAbsDrift: clarity.MustQuantize(meanAbsDrift),
			MaxAbsDrift:  clarity.MustQuantize(maxAbsDrift),
		})
		for _, p := range points {
			allAbsESI = append(allAbsESI, abs(p.DESI))
			allAbsDrift = append(allAbsDrift, abs(p.DDrift))
		}
	}

	globalMeanAbsESI, globalMaxAbsESI := meanMax(allAbsESI)
	globalMeanAbsDrift, globalMaxAbsDrift := meanMax(allAbsDrift)

	return &clarity.GradientSurface{
		Axes:               clarity.SortAxisGradients(axes),
		GlobalMeanAbsESI:   clarity.MustQuantize(globalMeanAbsESI),
		GlobalMaxAbsESI:    clarity.MustQuantize(globalMaxAbsESI),
		GlobalMeanAbsDrift: clarity.MustQuantize(globalMeanAbsDrift),
		GlobalMaxAbsDrift:  clarity.MustQuantize(globalMaxAbsDrift),
	}, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func absStats(points []clarity.GradientPoint, pick func(clarity.GradientPoint) float64) (mean, max float64) {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = abs(pick(p))
	}
	return meanMax(values)
}

func meanMax(values []float64) (mean, max float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
		if v > max {
			max = v
		}
	}
	return sum / float64(len(values)), max
}
