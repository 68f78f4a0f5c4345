// Package surface folds a sweep's MetricsResult (and, in rich mode, its
// per-run confidence/entropy signals) into the robustness, confidence, and
// entropy surfaces closing over every swept axis (§4.6).
package surface

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"clarity/domain/clarity"
	"clarity/ports"
)

var errNoRichSignals = errors.New("response has no rich signals")

// decodeEncodedValue inverts clarity.EncodeValue, recovering the float a
// value_scores key was encoded from.
func decodeEncodedValue(encoded string) (float64, error) {
	s := strings.ReplaceAll(encoded, "p", ".")
	s = strings.ReplaceAll(s, "n", "-")
	return strconv.ParseFloat(s, 64)
}

// Engine computes RobustnessSurface from a MetricsResult, and the
// confidence/entropy ScalarSurfaces from a sweep's rich adapter signals.
type Engine struct {
	ledger ports.LedgerReaderPort
}

// NewEngine constructs an Engine reading run artifacts through ledger.
func NewEngine(ledger ports.LedgerReaderPort) *Engine {
	return &Engine{ledger: ledger}
}

// ComputeRobustness joins the ESI and Drift tuples of result into one
// SurfacePoint per (axis, value), rejecting an axis/value mismatch between
// the two as a SurfaceComputationError (§4.6).
func (e *Engine) ComputeRobustness(result *clarity.MetricsResult) (*clarity.RobustnessSurface, error) {
	driftByAxis := make(map[clarity.AxisName]clarity.DriftMetric, len(result.Drift))
	for _, d := range result.Drift {
		driftByAxis[d.Axis] = d
	}

	axes := make([]clarity.AxisSurface, 0, len(result.ESI))
	var allESI, allDrift []float64

	for _, esi := range result.ESI {
		drift, ok := driftByAxis[esi.Axis]
		if !ok {
			return nil, clarity.NewSurfaceComputationError(string(esi.Axis), "no matching drift metric")
		}
		if len(esi.ValueScores) != len(drift.ValueScores) {
			return nil, clarity.NewSurfaceComputationError(string(esi.Axis), "esi/drift value set mismatch")
		}

		points := make([]clarity.SurfacePoint, 0, len(esi.ValueScores))
		var esiValues, driftValues []float64
		for encoded, esiScore := range esi.ValueScores {
			driftScore, ok := drift.ValueScores[encoded]
			if !ok {
				return nil, clarity.NewSurfaceComputationError(string(esi.Axis), "esi/drift value set mismatch")
			}
			value, err := decodeEncodedValue(encoded)
			if err != nil {
				return nil, clarity.NewSurfaceComputationError(string(esi.Axis), err.Error())
			}
			points = append(points, clarity.SurfacePoint{
				ValueEncoded: encoded,
				Value:        value,
				ESI:          esiScore,
				Drift:        driftScore,
			})
			esiValues = append(esiValues, esiScore)
			driftValues = append(driftValues, driftScore)
		}

		meanESI, varESI, err := meanAndVariance(esiValues)
		if err != nil {
			return nil, clarity.NewSurfaceComputationError(string(esi.Axis), err.Error())
		}
		meanDrift, varDrift, err := meanAndVariance(driftValues)
		if err != nil {
			return nil, clarity.NewSurfaceComputationError(string(esi.Axis), err.Error())
		}

		axes = append(axes, clarity.AxisSurface{
			Axis:          esi.Axis,
			Points:        points,
			MeanESI:       clarity.MustQuantize(meanESI),
			MeanDrift:     clarity.MustQuantize(meanDrift),
			VarianceESI:   clarity.MustQuantize(varESI),
			VarianceDrift: clarity.MustQuantize(varDrift),
		})
		allESI = append(allESI, esiValues...)
		allDrift = append(allDrift, driftValues...)
	}

	globalMeanESI, globalVarESI, err := meanAndVariance(allESI)
	if err != nil {
		return nil, clarity.NewSurfaceComputationError("", err.Error())
	}
	globalMeanDrift, globalVarDrift, err := meanAndVariance(allDrift)
	if err != nil {
		return nil, clarity.NewSurfaceComputationError("", err.Error())
	}

	return &clarity.RobustnessSurface{
		Axes:                clarity.SortAxisSurfaces(axes),
		GlobalMeanESI:       clarity.MustQuantize(globalMeanESI),
		GlobalMeanDrift:     clarity.MustQuantize(globalMeanDrift),
		GlobalVarianceESI:   clarity.MustQuantize(globalVarESI),
		GlobalVarianceDrift: clarity.MustQuantize(globalVarDrift),
	}, nil
}

// ComputeScalar builds a ScalarSurface over one rich-signal metric (mean
// confidence for CSI, mean output entropy for EDM), reading each run's
// response.json through the ledger (§4.6, GLOSSARY "CSI / EDM").
func (e *Engine) ComputeScalar(ctx context.Context, runID string, manifest *clarity.SweepManifest, pick func(clarity.RichSignals) float64) (*clarity.ScalarSurface, error) {
	type groupKey struct {
		axis  clarity.AxisName
		value string
	}
	groups := make(map[groupKey][]clarity.RunRecord)
	for _, r := range manifest.Runs {
		if r.IsBaseline {
			continue
		}
		groups[groupKey{r.Axis, r.ValueEncoded}] = append(groups[groupKey{r.Axis, r.ValueEncoded}], r)
	}

	axisByName := make(map[clarity.AxisName]clarity.PerturbationAxis, len(manifest.Axes))
	axisNames := make([]clarity.AxisName, 0, len(manifest.Axes))
	for _, axis := range manifest.Axes {
		axisByName[axis.Name] = axis
		axisNames = append(axisNames, axis.Name)
	}
	axisNames = clarity.SortedAxisNames(axisNames)

	axes := make([]clarity.ScalarAxisSurface, 0, len(axisNames))
	var allScores []float64

	for _, name := range axisNames {
		axis := axisByName[name]
		points := make([]clarity.ScalarSurfacePoint, 0, len(axis.Values))
		var axisScores []float64

		for _, value := range axis.Values {
			encoded := clarity.EncodeValue(value)
			runs := groups[groupKey{name, encoded}]
			if len(runs) == 0 {
				continue
			}
			var valueScores []float64
			for _, r := range runs {
				rich, err := e.readRich(ctx, runID, r)
				if err != nil {
					return nil, clarity.NewSurfaceComputationError(string(name), err.Error())
				}
				valueScores = append(valueScores, pick(rich))
			}
			scoreMean, err := stats.Mean(valueScores)
			if err != nil {
				return nil, clarity.NewSurfaceComputationError(string(name), err.Error())
			}
			score, err := clarity.Quantize(scoreMean)
			if err != nil {
				return nil, clarity.NewSurfaceComputationError(string(name), err.Error())
			}
			points = append(points, clarity.ScalarSurfacePoint{ValueEncoded: encoded, Value: value, Score: score})
			axisScores = append(axisScores, score)
		}

		axisMean, axisVar, err := meanAndVariance(axisScores)
		if err != nil {
			return nil, clarity.NewSurfaceComputationError(string(name), err.Error())
		}
		axes = append(axes, clarity.ScalarAxisSurface{
			Axis:     name,
			Points:   points,
			Mean:     clarity.MustQuantize(axisMean),
			Variance: clarity.MustQuantize(axisVar),
		})
		allScores = append(allScores, axisScores...)
	}

	globalMean, globalVar, err := meanAndVariance(allScores)
	if err != nil {
		return nil, clarity.NewSurfaceComputationError("", err.Error())
	}

	return &clarity.ScalarSurface{
		Axes:           clarity.SortScalarAxisSurfaces(axes),
		GlobalMean:     clarity.MustQuantize(globalMean),
		GlobalVariance: clarity.MustQuantize(globalVar),
	}, nil
}

func (e *Engine) readRich(ctx context.Context, runID string, r clarity.RunRecord) (clarity.RichSignals, error) {
	data, err := e.ledger.ReadRunFile(ctx, runID, r.ResponsePath)
	if err != nil {
		return clarity.RichSignals{}, err
	}
	var response clarity.AdapterResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return clarity.RichSignals{}, err
	}
	if response.Rich == nil {
		return clarity.RichSignals{}, errNoRichSignals
	}
	return *response.Rich, nil
}

// meanAndVariance reports the arithmetic mean and population variance of
// values via montanaflynn/stats, matching the mean()/stats.StandardDeviation
// call pattern the rest of the corpus's statistical code follows. A
// single-element slice has zero variance by definition.
func meanAndVariance(values []float64) (mean, variance float64, err error) {
	if len(values) == 0 {
		return 0, 0, nil
	}
	mean, err = stats.Mean(values)
	if err != nil {
		return 0, 0, err
	}
	if len(values) == 1 {
		return mean, 0, nil
	}
	variance, err = stats.Variance(values)
	if err != nil {
		return 0, 0, err
	}
	return mean, variance, nil
}
