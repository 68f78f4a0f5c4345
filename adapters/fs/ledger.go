// Package fs implements ports.LedgerPort over the local filesystem, laying
// out each sweep's artifacts and run files in the directory structure §6
// specifies.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"clarity/domain/clarity"
	"clarity/domain/core"
)

// subdirByArtifact maps each canonical artifact file name to the
// subdirectory it lives under within a sweep root (§6 sweep directory
// layout). A name absent from this map is written at the sweep root
// directly (sweep_manifest.json, checksums.json).
var subdirByArtifact = map[string]string{
	"metrics.json":             "metrics",
	"robustness_surface.json":  "surface",
	"confidence_surface.json":  "surface",
	"entropy_surface.json":     "surface",
	"gradient_surface.json":    "gradient",
	"probe_surface.json":       "counterfactual",
	"overlay_bundle.json":      "overlay",
}

// Ledger is a ports.LedgerPort rooted at a caller-owned base directory:
// each runID gets its own subdirectory under root, matching the sweep
// root §6 describes.
type Ledger struct {
	root string
}

// NewLedger constructs a filesystem Ledger rooted at root, creating it if
// it does not already exist.
func NewLedger(root string) (*Ledger, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger root %s: %w", root, err)
	}
	return &Ledger{root: root}, nil
}

func (l *Ledger) artifactPath(runID, fileName string) string {
	if dir, ok := subdirByArtifact[fileName]; ok {
		return filepath.Join(l.root, runID, dir, fileName)
	}
	return filepath.Join(l.root, runID, fileName)
}

func (l *Ledger) runFilePath(runID, relPath string) string {
	return filepath.Join(l.root, runID, filepath.FromSlash(relPath))
}

// WriteArtifact writes data to fileName's canonical subpath under runID,
// creating any missing parent directories.
func (l *Ledger) WriteArtifact(ctx context.Context, runID, fileName string, data []byte) error {
	return writeFile(l.artifactPath(runID, fileName), data)
}

// WriteRunFile writes data to relPath under runID's sweep root, creating
// any missing parent directories.
func (l *Ledger) WriteRunFile(ctx context.Context, runID, relPath string, data []byte) error {
	return writeFile(l.runFilePath(runID, relPath), data)
}

// ReadArtifact reads fileName's canonical subpath under runID.
func (l *Ledger) ReadArtifact(ctx context.Context, runID, fileName string) ([]byte, error) {
	return readFile(l.artifactPath(runID, fileName), fmt.Sprintf("artifact %s for run %s", fileName, runID))
}

// ReadRunFile reads relPath under runID's sweep root.
func (l *Ledger) ReadRunFile(ctx context.Context, runID, relPath string) ([]byte, error) {
	return readFile(l.runFilePath(runID, relPath), fmt.Sprintf("run file %s for run %s", relPath, runID))
}

// ListArtifacts lists the canonical artifact file names present under
// runID, in the fixed order clarity.ArtifactNames plus checksums.json
// would declare them, filtered to those that exist.
func (l *Ledger) ListArtifacts(ctx context.Context, runID string) ([]string, error) {
	var names []string
	for _, name := range append(append([]string{}, clarity.ArtifactNames...), "checksums.json") {
		if _, err := os.Stat(l.artifactPath(runID, name)); err == nil {
			names = append(names, name)
		}
	}
	return names, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

func readFile(path, describe string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrNotFound, describe)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}
