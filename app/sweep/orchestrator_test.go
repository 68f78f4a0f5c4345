package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/adapters/adapter/stub"
	"clarity/domain/clarity"
	"clarity/internal/testkit"
)

func TestOrchestratorRunBaselineFirst(t *testing.T) {
	kit := testkit.NewTestKit()
	adapter := stub.NewAdapter(4, 4)
	orch := NewOrchestrator(kit.LedgerAdapter(), adapter)

	spec := testkit.NewTestSweepSpec()
	manifest, err := orch.Run(context.Background(), spec, "run-1", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	require.NotEmpty(t, manifest.Runs)
	assert.True(t, manifest.Runs[0].IsBaseline)
	assert.Equal(t, manifest.Runs[0], manifest.BaselineRun)
	for _, r := range manifest.Runs[1:] {
		assert.False(t, r.IsBaseline)
	}

	// one baseline + (1 axis * 2 values * 2 seeds) = 5 runs.
	assert.Len(t, manifest.Runs, 5)
}

func TestOrchestratorRunIsByteIdenticalOnReplay(t *testing.T) {
	adapter := stub.NewAdapter(4, 4)
	spec := testkit.NewTestSweepSpec()

	kit1 := testkit.NewTestKit()
	orch1 := NewOrchestrator(kit1.LedgerAdapter(), adapter)
	manifest1, err := orch1.Run(context.Background(), spec, "run-x", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	kit2 := testkit.NewTestKit()
	orch2 := NewOrchestrator(kit2.LedgerAdapter(), adapter)
	manifest2, err := orch2.Run(context.Background(), spec, "run-x", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	data1, err := clarity.MarshalCanonical(manifest1)
	require.NoError(t, err)
	data2, err := clarity.MarshalCanonical(manifest2)
	require.NoError(t, err)
	assert.Equal(t, data1, data2, "identical spec+runID+timestamp must reproduce byte-identical manifests")
}

func TestOrchestratorRejectsInvalidSpec(t *testing.T) {
	kit := testkit.NewTestKit()
	adapter := stub.NewAdapter(4, 4)
	orch := NewOrchestrator(kit.LedgerAdapter(), adapter)

	spec := &clarity.SweepSpec{}
	_, err := orch.Run(context.Background(), spec, "run-bad", "2026-08-01T00:00:00Z")
	assert.Error(t, err)
}

func TestOrchestratorWritesManifestArtifact(t *testing.T) {
	kit := testkit.NewTestKit()
	adapter := stub.NewAdapter(4, 4)
	orch := NewOrchestrator(kit.LedgerAdapter(), adapter)

	spec := testkit.NewTestSweepSpec()
	_, err := orch.Run(context.Background(), spec, "run-2", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	data, err := kit.LedgerAdapter().ReadArtifact(context.Background(), "run-2", "sweep_manifest.json")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
