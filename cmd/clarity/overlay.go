package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"clarity/app/overlay"
	"clarity/domain/clarity"
)

func newOverlayCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Extract the evidence heatmap and above-threshold regions from a sweep's baseline response",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, _, err := buildLedger()
			if err != nil {
				return err
			}

			manifest, err := loadManifest(cmd, ledger, runID)
			if err != nil {
				return err
			}

			data, err := ledger.ReadRunFile(cmd.Context(), runID, manifest.BaselineRun.ResponsePath)
			if err != nil {
				return fmt.Errorf("failed to read baseline response for run %s: %w", runID, err)
			}
			var response clarity.AdapterResponse
			if err := json.Unmarshal(data, &response); err != nil {
				return fmt.Errorf("failed to decode baseline response for run %s: %w", runID, err)
			}
			if response.Rich == nil || response.Rich.EvidenceMap == nil {
				return fmt.Errorf("run %s has no rich evidence map; re-run sweep with --rich", runID)
			}

			engine := overlay.NewEngine()
			bundle, err := engine.Compute(response.Rich.EvidenceMap)
			if err != nil {
				return fmt.Errorf("overlay computation failed: %w", err)
			}

			if err := writeArtifact(cmd, ledger, runID, "overlay_bundle.json", bundle); err != nil {
				return err
			}

			fmt.Printf("run_id=%s regions=%d\n", runID, len(bundle.Regions))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "sweep run ID to extract evidence regions for")
	cmd.MarkFlagRequired("run-id")
	return cmd
}
