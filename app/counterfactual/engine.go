// Package counterfactual probes each of a k x k grid of image regions by
// masking it, re-sweeping, and comparing the masked metrics against the
// original sweep's (§4.8).
package counterfactual

import (
	"context"
	"fmt"

	"clarity/app/perturbation"
	"clarity/domain/clarity"
	"clarity/ports"
)

// SweepRunner is the subset of the orchestrator a probe needs: run a spec
// end to end and return its manifest. Accepting the narrow interface
// (rather than *sweep.Orchestrator directly) keeps this package free of a
// dependency on the orchestrator's ledger/adapter wiring.
type SweepRunner interface {
	Run(ctx context.Context, spec *clarity.SweepSpec, runID, timestamp string) (*clarity.SweepManifest, error)
}

// MetricsComputer is the subset of the metrics engine a probe needs.
type MetricsComputer interface {
	Compute(ctx context.Context, runID string, manifest *clarity.SweepManifest) (*clarity.MetricsResult, error)
}

// Engine runs the counterfactual probe grid.
type Engine struct {
	runner  SweepRunner
	metrics MetricsComputer
	ledger  ports.LedgerWriterPort
}

// NewEngine constructs a counterfactual Engine over runner, metrics, and a
// ledger writer used to stage each masked probe's sweep artifacts.
func NewEngine(runner SweepRunner, metrics MetricsComputer, ledger ports.LedgerWriterPort) *Engine {
	return &Engine{runner: runner, metrics: metrics, ledger: ledger}
}

// Probe masks each of a k x k grid of regions in turn, re-sweeps spec
// against the masked image, and compares the masked MetricsResult to
// baseline for every (axis, value) pair, producing a ProbeResult per
// (region, axis, value) (§4.8). runID identifies the probe's own staging
// area in the ledger, distinct from the original sweep's runID.
func (e *Engine) Probe(ctx context.Context, baselineImage []byte, spec *clarity.SweepSpec, baseline *clarity.MetricsResult, gridSizeK int, runID, timestamp string) (*clarity.ProbeSurface, error) {
	baselineESI := indexESIScores(baseline.ESI)
	baselineDrift := indexDriftScores(baseline.Drift)

	img, err := perturbation.DecodeImage(baselineImage)
	if err != nil {
		return nil, clarity.NewCounterfactualComputationError("", err)
	}

	regions := clarity.BuildGridRegions(gridSizeK)
	var results []clarity.ProbeResult

	for _, region := range regions {
		masked := perturbation.MaskRegion(img, region)
		maskedBytes, err := perturbation.EncodeImage(masked)
		if err != nil {
			return nil, clarity.NewCounterfactualComputationError(region.RegionID, err)
		}

		probeSpec := &clarity.SweepSpec{
			ImageBytes: maskedBytes,
			Prompt:     spec.Prompt,
			Axes:       spec.Axes,
			Seeds:      spec.Seeds,
			Adapter:    spec.Adapter,
			RichMode:   spec.RichMode,
		}
		probeRunID := fmt.Sprintf("%s-%s", runID, region.RegionID)
		manifest, err := e.runner.Run(ctx, probeSpec, probeRunID, timestamp)
		if err != nil {
			return nil, clarity.NewCounterfactualComputationError(region.RegionID, err)
		}
		maskedResult, err := e.metrics.Compute(ctx, probeRunID, manifest)
		if err != nil {
			return nil, clarity.NewCounterfactualComputationError(region.RegionID, err)
		}
		maskedESI := indexESIScores(maskedResult.ESI)
		maskedDrift := indexDriftScores(maskedResult.Drift)

		for _, axis := range spec.Axes {
			for _, value := range axis.Values {
				encoded := clarity.EncodeValue(value)
				key := scoreKey{axis.Name, encoded}

				bESI, ok := baselineESI[key]
				if !ok {
					continue
				}
				bDrift := baselineDrift[key]
				mESI := maskedESI[key]
				mDrift := maskedDrift[key]

				deltaESI := clarity.MustQuantize(mESI - bESI)
				deltaDrift := clarity.MustQuantize(mDrift - bDrift)

				results = append(results, clarity.ProbeResult{
					Region:        region,
					Axis:          axis.Name,
					Value:         value,
					BaselineESI:   bESI,
					MaskedESI:     mESI,
					DeltaESI:      deltaESI,
					BaselineDrift: bDrift,
					MaskedDrift:   mDrift,
					DeltaDrift:    deltaDrift,
				})
			}
		}
	}

	sorted := clarity.SortProbeResults(results)
	meanAbsESI, maxAbsESI := absStats(sorted, func(r clarity.ProbeResult) float64 { return r.DeltaESI })
	meanAbsDrift, maxAbsDrift := absStats(sorted, func(r clarity.ProbeResult) float64 { return r.DeltaDrift })

	return &clarity.ProbeSurface{
		Results:           sorted,
		MeanAbsDeltaESI:   clarity.MustQuantize(meanAbsESI),
		MaxAbsDeltaESI:    clarity.MustQuantize(maxAbsESI),
		MeanAbsDeltaDrift: clarity.MustQuantize(meanAbsDrift),
		MaxAbsDeltaDrift:  clarity.MustQuantize(maxAbsDrift),
	}, nil
}

type scoreKey struct {
	axis    clarity.AxisName
	encoded string
}

func indexESIScores(metrics []clarity.ESIMetric) map[scoreKey]float64 {
	out := make(map[scoreKey]float64)
	for _, axis := range metrics {
		for encoded, score := range axis.ValueScores {
			out[scoreKey{axis.Axis, encoded}] = score
		}
	}
	return out
}

func indexDriftScores(metrics []clarity.DriftMetric) map[scoreKey]float64 {
	out := make(map[scoreKey]float64)
	for _, axis := range metrics {
		for encoded, score := range axis.ValueScores {
			out[scoreKey{axis.Axis, encoded}] = score
		}
	}
	return out
}

func absStats(results []clarity.ProbeResult, pick func(clarity.ProbeResult) float64) (mean, max float64) {
	if len(results) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, r := range results {
		v := pick(r)
		if v < 0 {
			v = -v
		}
		sum += v
		if v > max {
			max = v
		}
	}
	return sum / float64(len(results)), max
}
