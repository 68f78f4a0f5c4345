package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clarity/app/counterfactual"
	"clarity/app/metrics"
	"clarity/app/sweep"
	"clarity/domain/clarity"
)

func newCounterfactualCmd() *cobra.Command {
	var runID, prompt string
	var gridK int
	var rich bool

	cmd := &cobra.Command{
		Use:   "counterfactual",
		Short: "Probe a k x k grid of image regions against the sweep's baseline metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, cfg, err := buildLedger()
			if err != nil {
				return err
			}

			manifest, err := loadManifest(cmd, ledger, runID)
			if err != nil {
				return err
			}
			baseline, err := loadMetricsResult(cmd, ledger, runID)
			if err != nil {
				return err
			}

			baselineImage, err := ledger.ReadRunFile(cmd.Context(), runID, manifest.BaselineRun.ImagePath)
			if err != nil {
				return fmt.Errorf("failed to read baseline image for run %s: %w", runID, err)
			}

			spec := &clarity.SweepSpec{
				ImageBytes: baselineImage,
				Prompt:     prompt,
				Axes:       manifest.Axes,
				Seeds:      manifest.Seeds,
				Adapter:    cfg.Adapter.Name,
				RichMode:   rich,
			}

			adapter := buildAdapter(cfg)
			orchestrator := sweep.NewOrchestrator(ledger, adapter)
			metricsEngine := metrics.NewEngine(ledger)

			engine := counterfactual.NewEngine(orchestrator, metricsEngine, ledger)
			result, err := engine.Probe(cmd.Context(), baselineImage, spec, baseline, gridK, runID, timestamp())
			if err != nil {
				return fmt.Errorf("counterfactual probe failed: %w", err)
			}

			if err := writeArtifact(cmd, ledger, runID, "probe_surface.json", result); err != nil {
				return err
			}

			fmt.Printf("run_id=%s probe_results=%d\n", runID, len(result.Results))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "sweep run ID to probe")
	cmd.Flags().StringVar(&prompt, "prompt", "", "clinical prompt text (must match the original sweep)")
	cmd.Flags().IntVar(&gridK, "grid-k", 3, "k x k grid of regions to probe")
	cmd.Flags().BoolVar(&rich, "rich", false, "request rich adapter signals during probe re-sweeps")
	cmd.MarkFlagRequired("run-id")
	cmd.MarkFlagRequired("prompt")
	return cmd
}
