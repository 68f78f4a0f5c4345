package bundle

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/domain/clarity"
	"clarity/internal/testkit"
)

func seedArtifacts(t *testing.T, kit *testkit.TestKit, runID string) {
	t.Helper()
	ledger := kit.LedgerAdapter()
	for _, name := range clarity.ArtifactNames {
		err := ledger.WriteArtifact(context.Background(), runID, name, []byte(`{"artifact":"`+name+`"}`))
		require.NoError(t, err)
	}
}

func TestSealAndVerifyRoundTrip(t *testing.T) {
	kit := testkit.NewTestKit()
	seedArtifacts(t, kit, "run-seal")

	sealer := NewSealer(kit.LedgerAdapter())
	checksums, err := sealer.Seal(context.Background(), "run-seal")
	require.NoError(t, err)
	assert.NotEmpty(t, checksums.BundleSHA256)
	assert.Len(t, checksums.Entries, len(clarity.ArtifactNames))

	data, err := json.Marshal(checksums)
	require.NoError(t, err)
	err = kit.LedgerAdapter().WriteArtifact(context.Background(), "run-seal", "checksums.json", data)
	require.NoError(t, err)

	err = sealer.Verify(context.Background(), "run-seal")
	assert.NoError(t, err)
}

func TestVerifyDetectsTampering(t *testing.T) {
	kit := testkit.NewTestKit()
	seedArtifacts(t, kit, "run-tamper")

	sealer := NewSealer(kit.LedgerAdapter())
	checksums, err := sealer.Seal(context.Background(), "run-tamper")
	require.NoError(t, err)

	data, err := json.Marshal(checksums)
	require.NoError(t, err)
	require.NoError(t, kit.LedgerAdapter().WriteArtifact(context.Background(), "run-tamper", "checksums.json", data))

	// mutate a bundle-defining artifact after sealing.
	require.NoError(t, kit.LedgerAdapter().WriteArtifact(context.Background(), "run-tamper", "sweep_manifest.json", []byte(`{"tampered":true}`)))

	err = sealer.Verify(context.Background(), "run-tamper")
	assert.Error(t, err)
}

func TestSealIsDeterministic(t *testing.T) {
	kit1 := testkit.NewTestKit()
	seedArtifacts(t, kit1, "run-det")
	kit2 := testkit.NewTestKit()
	seedArtifacts(t, kit2, "run-det")

	c1, err := NewSealer(kit1.LedgerAdapter()).Seal(context.Background(), "run-det")
	require.NoError(t, err)
	c2, err := NewSealer(kit2.LedgerAdapter()).Seal(context.Background(), "run-det")
	require.NoError(t, err)

	assert.Equal(t, c1.BundleSHA256, c2.BundleSHA256)
	assert.Equal(t, c1.Entries, c2.Entries)
}
