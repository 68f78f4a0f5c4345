package counterfactual

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/adapters/adapter/stub"
	"clarity/app/metrics"
	"clarity/app/sweep"
	"clarity/internal/testkit"
)

// TestProbeCounterfactualIrrelevance verifies the scenario 5 invariant: the
// stub adapter's output is a pure function of (prompt, seed) and ignores
// image content entirely, so masking any region of the image must never
// move ESI or Drift away from baseline.
func TestProbeCounterfactualIrrelevance(t *testing.T) {
	kit := testkit.NewTestKit()
	adapter := stub.NewAdapter(4, 4)
	ledger := kit.LedgerAdapter()
	orch := sweep.NewOrchestrator(ledger, adapter)
	metricsEngine := metrics.NewEngine(ledger)

	spec := testkit.NewTestSweepSpec()
	manifest, err := orch.Run(context.Background(), spec, "base-run", "2026-08-01T00:00:00Z")
	require.NoError(t, err)
	baseline, err := metricsEngine.Compute(context.Background(), "base-run", manifest)
	require.NoError(t, err)

	engine := NewEngine(orch, metricsEngine, ledger)
	surface, err := engine.Probe(context.Background(), spec.ImageBytes, spec, baseline, 3, "probe-run", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	require.NotEmpty(t, surface.Results)
	for _, r := range surface.Results {
		assert.Equal(t, 0.0, r.DeltaESI)
		assert.Equal(t, 0.0, r.DeltaDrift)
	}
	assert.Equal(t, 0.0, surface.MaxAbsDeltaESI)
	assert.Equal(t, 0.0, surface.MaxAbsDeltaDrift)
}

func TestProbeProducesKSquaredRegions(t *testing.T) {
	kit := testkit.NewTestKit()
	adapter := stub.NewAdapter(4, 4)
	ledger := kit.LedgerAdapter()
	orch := sweep.NewOrchestrator(ledger, adapter)
	metricsEngine := metrics.NewEngine(ledger)

	spec := testkit.NewTestSweepSpec()
	manifest, err := orch.Run(context.Background(), spec, "base-run-2", "2026-08-01T00:00:00Z")
	require.NoError(t, err)
	baseline, err := metricsEngine.Compute(context.Background(), "base-run-2", manifest)
	require.NoError(t, err)

	engine := NewEngine(orch, metricsEngine, ledger)
	surface, err := engine.Probe(context.Background(), spec.ImageBytes, spec, baseline, 2, "probe-run-2", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	// 2x2 regions * 1 axis * 2 values = 8 probe results.
	assert.Len(t, surface.Results, 8)
}
