package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clarity/app/bundle"
)

func newSealCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Hash every canonical artifact and seal the sweep's reproducibility receipt",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, _, err := buildLedger()
			if err != nil {
				return err
			}

			sealer := bundle.NewSealer(ledger)
			checksums, err := sealer.Seal(cmd.Context(), runID)
			if err != nil {
				return fmt.Errorf("seal failed: %w", err)
			}

			if err := writeArtifact(cmd, ledger, runID, "checksums.json", checksums); err != nil {
				return err
			}

			fmt.Printf("run_id=%s bundle_sha256=%s\n", runID, checksums.BundleSHA256)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "sweep run ID to seal")
	cmd.MarkFlagRequired("run-id")
	return cmd
}
