package fs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/domain/core"
)

func TestWriteReadArtifactRoundTrip(t *testing.T) {
	ledger, err := NewLedger(t.TempDir())
	require.NoError(t, err)

	err = ledger.WriteArtifact(context.Background(), "run-1", "metrics.json", []byte(`{"a":1}`))
	require.NoError(t, err)

	data, err := ledger.ReadArtifact(context.Background(), "run-1", "metrics.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)
}

func TestWriteReadRunFileRoundTrip(t *testing.T) {
	ledger, err := NewLedger(t.TempDir())
	require.NoError(t, err)

	err = ledger.WriteRunFile(context.Background(), "run-1", "baseline/image.bmp", []byte{1, 2, 3})
	require.NoError(t, err)

	data, err := ledger.ReadRunFile(context.Background(), "run-1", "baseline/image.bmp")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestReadMissingArtifactWrapsNotFound(t *testing.T) {
	ledger, err := NewLedger(t.TempDir())
	require.NoError(t, err)

	_, err = ledger.ReadArtifact(context.Background(), "run-1", "metrics.json")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestListArtifactsReflectsWrites(t *testing.T) {
	ledger, err := NewLedger(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, ledger.WriteArtifact(context.Background(), "run-1", "metrics.json", []byte("{}")))
	require.NoError(t, ledger.WriteArtifact(context.Background(), "run-1", "sweep_manifest.json", []byte("{}")))

	names, err := ledger.ListArtifacts(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Contains(t, names, "metrics.json")
	assert.Contains(t, names, "sweep_manifest.json")
}

func TestArtifactsLandInCanonicalSubdirectories(t *testing.T) {
	root := t.TempDir()
	ledger, err := NewLedger(root)
	require.NoError(t, err)

	require.NoError(t, ledger.WriteArtifact(context.Background(), "run-1", "robustness_surface.json", []byte("{}")))
	require.NoError(t, ledger.WriteArtifact(context.Background(), "run-1", "gradient_surface.json", []byte("{}")))
	require.NoError(t, ledger.WriteArtifact(context.Background(), "run-1", "sweep_manifest.json", []byte("{}")))

	assert.FileExists(t, filepath.Join(root, "run-1", "surface", "robustness_surface.json"))
	assert.FileExists(t, filepath.Join(root, "run-1", "gradient", "gradient_surface.json"))
	assert.FileExists(t, filepath.Join(root, "run-1", "sweep_manifest.json"))
}
