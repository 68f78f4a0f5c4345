package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clarity/app/gradient"
)

func newGradientCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "gradient",
		Short: "Differentiate a sweep's robustness surface along each axis's ordered values",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, _, err := buildLedger()
			if err != nil {
				return err
			}

			robustness, err := loadRobustnessSurface(cmd, ledger, runID)
			if err != nil {
				return err
			}

			engine := gradient.NewEngine()
			result, err := engine.Compute(robustness)
			if err != nil {
				return fmt.Errorf("gradient computation failed: %w", err)
			}

			if err := writeArtifact(cmd, ledger, runID, "gradient_surface.json", result); err != nil {
				return err
			}

			fmt.Printf("run_id=%s gradient_axes=%d\n", runID, len(result.Axes))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "sweep run ID to differentiate")
	cmd.MarkFlagRequired("run-id")
	return cmd
}
