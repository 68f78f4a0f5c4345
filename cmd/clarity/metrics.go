package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clarity/app/metrics"
)

func newMetricsCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Compute Evidence Stability Index and Justification Drift for a completed sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, _, err := buildLedger()
			if err != nil {
				return err
			}

			manifest, err := loadManifest(cmd, ledger, runID)
			if err != nil {
				return err
			}

			engine := metrics.NewEngine(ledger)
			result, err := engine.Compute(cmd.Context(), runID, manifest)
			if err != nil {
				return fmt.Errorf("metrics computation failed: %w", err)
			}

			if err := writeArtifact(cmd, ledger, runID, "metrics.json", result); err != nil {
				return err
			}

			fmt.Printf("run_id=%s esi_axes=%d drift_axes=%d\n", runID, len(result.ESI), len(result.Drift))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "sweep run ID to score")
	cmd.MarkFlagRequired("run-id")
	return cmd
}

