package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clarity/app/surface"
	"clarity/domain/clarity"
)

func newSurfaceCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Build the robustness, confidence, and entropy surfaces for a scored sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, _, err := buildLedger()
			if err != nil {
				return err
			}

			result, err := loadMetricsResult(cmd, ledger, runID)
			if err != nil {
				return err
			}
			manifest, err := loadManifest(cmd, ledger, runID)
			if err != nil {
				return err
			}

			engine := surface.NewEngine(ledger)

			robustness, err := engine.ComputeRobustness(result)
			if err != nil {
				return fmt.Errorf("robustness surface computation failed: %w", err)
			}
			if err := writeArtifact(cmd, ledger, runID, "robustness_surface.json", robustness); err != nil {
				return err
			}

			confidence, err := engine.ComputeScalar(cmd.Context(), runID, manifest, func(r clarity.RichSignals) float64 { return r.Confidence })
			if err != nil {
				return fmt.Errorf("confidence surface computation failed: %w", err)
			}
			if err := writeArtifact(cmd, ledger, runID, "confidence_surface.json", confidence); err != nil {
				return err
			}

			entropy, err := engine.ComputeScalar(cmd.Context(), runID, manifest, func(r clarity.RichSignals) float64 { return r.OutputEntropy })
			if err != nil {
				return fmt.Errorf("entropy surface computation failed: %w", err)
			}
			if err := writeArtifact(cmd, ledger, runID, "entropy_surface.json", entropy); err != nil {
				return err
			}

			fmt.Printf("run_id=%s surfaces=robustness,confidence,entropy\n", runID)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "sweep run ID to build surfaces for")
	cmd.MarkFlagRequired("run-id")
	return cmd
}
