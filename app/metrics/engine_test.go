package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/adapters/adapter/stub"
	"clarity/app/sweep"
	"clarity/internal/testkit"
)

func TestNormalizedLevenshteinKnownPairs(t *testing.T) {
	assert.Equal(t, 0.0, normalizedLevenshtein("", ""))
	assert.Equal(t, 1.0, normalizedLevenshtein("", "abc"))
	assert.Equal(t, 1.0, normalizedLevenshtein("abc", ""))
	assert.Equal(t, 0.0, normalizedLevenshtein("identical", "identical"))

	// "kitten" -> "sitting" has edit distance 3, max len 7.
	assert.InDelta(t, 3.0/7.0, normalizedLevenshtein("kitten", "sitting"), 1e-9)
}

func TestComputeRejectsEmptySweep(t *testing.T) {
	kit := testkit.NewTestKit()
	engine := NewEngine(kit.LedgerAdapter())

	_, err := engine.Compute(context.Background(), "run-empty", nil)
	assert.Error(t, err)
}

func TestComputeAgainstOrchestratedSweep(t *testing.T) {
	kit := testkit.NewTestKit()
	adapter := stub.NewAdapter(4, 4)
	orch := sweep.NewOrchestrator(kit.LedgerAdapter(), adapter)

	spec := testkit.NewTestSweepSpec()
	manifest, err := orch.Run(context.Background(), spec, "run-m", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	engine := NewEngine(kit.LedgerAdapter())
	result, err := engine.Compute(context.Background(), "run-m", manifest)
	require.NoError(t, err)

	require.Len(t, result.ESI, 1)
	require.Len(t, result.Drift, 1)
	assert.Equal(t, 2, len(result.ESI[0].ValueScores))

	for _, v := range result.ESI[0].ValueScores {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	adapter := stub.NewAdapter(4, 4)
	spec := testkit.NewTestSweepSpec()

	kit1 := testkit.NewTestKit()
	orch1 := sweep.NewOrchestrator(kit1.LedgerAdapter(), adapter)
	manifest1, err := orch1.Run(context.Background(), spec, "run-d", "2026-08-01T00:00:00Z")
	require.NoError(t, err)
	result1, err := NewEngine(kit1.LedgerAdapter()).Compute(context.Background(), "run-d", manifest1)
	require.NoError(t, err)

	kit2 := testkit.NewTestKit()
	orch2 := sweep.NewOrchestrator(kit2.LedgerAdapter(), adapter)
	manifest2, err := orch2.Run(context.Background(), spec, "run-d", "2026-08-01T00:00:00Z")
	require.NoError(t, err)
	result2, err := NewEngine(kit2.LedgerAdapter()).Compute(context.Background(), "run-d", manifest2)
	require.NoError(t, err)

	assert.Equal(t, result1, result2)
}
