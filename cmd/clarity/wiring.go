package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clarity/adapters/adapter/medgemma"
	"clarity/adapters/adapter/stub"
	"clarity/adapters/fs"
	"clarity/domain/clarity"
	"clarity/domain/core"
	"clarity/internal/config"
	"clarity/ports"
)

// buildLedger loads configuration and constructs the filesystem ledger
// every subcommand reads and writes artifacts through.
func buildLedger() (*fs.Ledger, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ledger, err := fs.NewLedger(cfg.Ledger.RootDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to construct ledger: %w", err)
	}
	return ledger, cfg, nil
}

// buildAdapter selects the stub or medgemma backend per CLARITY_REAL_MODEL,
// matching the adapter contract's backend-selection rule (§4.3).
func buildAdapter(cfg *config.Config) ports.AdapterPort {
	if cfg.Adapter.RealModel {
		return medgemma.NewAdapter(cfg.Adapter.ModelPath)
	}
	return stub.NewAdapter(cfg.Adapter.GridCols, cfg.Adapter.GridRows)
}

// timestamp returns the RFC3339 instant stamped into a newly created
// sweep manifest.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// loadManifest reads and decodes runID's sweep manifest, the artifact
// every downstream stage (metrics, counterfactual) depends on.
func loadManifest(cmd *cobra.Command, ledger ports.LedgerReaderPort, runID string) (*clarity.SweepManifest, error) {
	fileName, err := clarity.FileNameFor(core.ArtifactSweepManifest)
	if err != nil {
		return nil, err
	}
	data, err := ledger.ReadArtifact(cmd.Context(), runID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep manifest for run %s: %w", runID, err)
	}
	var manifest clarity.SweepManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode sweep manifest for run %s: %w", runID, err)
	}
	return &manifest, nil
}

// loadMetricsResult reads and decodes runID's metrics.json.
func loadMetricsResult(cmd *cobra.Command, ledger ports.LedgerReaderPort, runID string) (*clarity.MetricsResult, error) {
	fileName, err := clarity.FileNameFor(core.ArtifactMetricsResult)
	if err != nil {
		return nil, err
	}
	data, err := ledger.ReadArtifact(cmd.Context(), runID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to read metrics result for run %s: %w", runID, err)
	}
	var result clarity.MetricsResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode metrics result for run %s: %w", runID, err)
	}
	return &result, nil
}

// writeArtifact canonically serializes payload and writes it under runID
// as fileName, the single path every stage's output goes through so
// artifacts are byte-reproducible across runs (§4.1, §6).
func writeArtifact(cmd *cobra.Command, ledger ports.LedgerWriterPort, runID, fileName string, payload interface{}) error {
	data, err := clarity.MarshalCanonical(payload)
	if err != nil {
		return fmt.Errorf("failed to canonicalize %s: %w", fileName, err)
	}
	if err := ledger.WriteArtifact(cmd.Context(), runID, fileName, data); err != nil {
		return fmt.Errorf("failed to write %s for run %s: %w", fileName, runID, err)
	}
	return nil
}

// loadRobustnessSurface reads and decodes runID's robustness_surface.json.
func loadRobustnessSurface(cmd *cobra.Command, ledger ports.LedgerReaderPort, runID string) (*clarity.RobustnessSurface, error) {
	fileName, err := clarity.FileNameFor(core.ArtifactRobustnessSurface)
	if err != nil {
		return nil, err
	}
	data, err := ledger.ReadArtifact(cmd.Context(), runID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to read robustness surface for run %s: %w", runID, err)
	}
	var surface clarity.RobustnessSurface
	if err := json.Unmarshal(data, &surface); err != nil {
		return nil, fmt.Errorf("failed to decode robustness surface for run %s: %w", runID, err)
	}
	return &surface, nil
}
