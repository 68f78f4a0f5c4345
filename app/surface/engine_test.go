package surface

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/adapters/adapter/stub"
	"clarity/app/sweep"
	"clarity/domain/clarity"
	"clarity/internal/testkit"
)

func TestComputeRobustnessJoinsESIAndDrift(t *testing.T) {
	engine := NewEngine(nil)

	result := &clarity.MetricsResult{
		ESI: []clarity.ESIMetric{
			{Axis: clarity.AxisBrightness, ValueScores: map[string]float64{"0p2": 1.0, "n0p2": 0.5}},
		},
		Drift: []clarity.DriftMetric{
			{Axis: clarity.AxisBrightness, ValueScores: map[string]float64{"0p2": 0.1, "n0p2": 0.3}},
		},
	}

	surface, err := engine.ComputeRobustness(result)
	require.NoError(t, err)
	require.Len(t, surface.Axes, 1)
	assert.Len(t, surface.Axes[0].Points, 2)
	assert.InDelta(t, 0.75, surface.Axes[0].MeanESI, 1e-9)
}

func TestComputeRobustnessRejectsAxisMismatch(t *testing.T) {
	engine := NewEngine(nil)

	result := &clarity.MetricsResult{
		ESI: []clarity.ESIMetric{
			{Axis: clarity.AxisBrightness, ValueScores: map[string]float64{"0p2": 1.0}},
		},
		Drift: []clarity.DriftMetric{
			{Axis: clarity.AxisContrast, ValueScores: map[string]float64{"0p2": 0.1}},
		},
	}

	_, err := engine.ComputeRobustness(result)
	assert.Error(t, err)
}

func TestComputeRobustnessRejectsValueSetMismatch(t *testing.T) {
	engine := NewEngine(nil)

	result := &clarity.MetricsResult{
		ESI: []clarity.ESIMetric{
			{Axis: clarity.AxisBrightness, ValueScores: map[string]float64{"0p2": 1.0, "n0p2": 0.5}},
		},
		Drift: []clarity.DriftMetric{
			{Axis: clarity.AxisBrightness, ValueScores: map[string]float64{"0p2": 0.1}},
		},
	}

	_, err := engine.ComputeRobustness(result)
	assert.Error(t, err)
}

func TestComputeScalarAgainstRichSweep(t *testing.T) {
	kit := testkit.NewTestKit()
	adapter := stub.NewAdapter(4, 4)
	orch := sweep.NewOrchestrator(kit.LedgerAdapter(), adapter)

	spec := testkit.NewTestSweepSpec()
	spec.RichMode = true
	manifest, err := orch.Run(context.Background(), spec, "run-rich", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	engine := NewEngine(kit.LedgerAdapter())
	confidence, err := engine.ComputeScalar(context.Background(), "run-rich", manifest, func(r clarity.RichSignals) float64 { return r.Confidence })
	require.NoError(t, err)
	require.Len(t, confidence.Axes, 1)

	for _, p := range confidence.Axes[0].Points {
		assert.GreaterOrEqual(t, p.Score, 0.0)
		assert.LessOrEqual(t, p.Score, 1.0)
	}
}

func TestComputeScalarFailsWithoutRichSignals(t *testing.T) {
	kit := testkit.NewTestKit()
	adapter := stub.NewAdapter(4, 4)
	orch := sweep.NewOrchestrator(kit.LedgerAdapter(), adapter)

	spec := testkit.NewTestSweepSpec()
	manifest, err := orch.Run(context.Background(), spec, "run-plain", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	engine := NewEngine(kit.LedgerAdapter())
	_, err = engine.ComputeScalar(context.Background(), "run-plain", manifest, func(r clarity.RichSignals) float64 { return r.Confidence })
	assert.Error(t, err)
}
