package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clarity/app/sweep"
	"clarity/domain/clarity"
	"clarity/domain/core"
)

// parseAxisFlag parses one --axis flag of the form "name=v1,v2,v3" into a
// PerturbationAxis, preserving declared value order.
func parseAxisFlag(raw string) (clarity.PerturbationAxis, error) {
	name, valuesPart, ok := strings.Cut(raw, "=")
	if !ok {
		return clarity.PerturbationAxis{}, fmt.Errorf("invalid --axis %q, expected name=v1,v2,...", raw)
	}
	parts := strings.Split(valuesPart, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return clarity.PerturbationAxis{}, fmt.Errorf("invalid value %q for axis %q: %w", p, name, err)
		}
		values = append(values, v)
	}
	return clarity.PerturbationAxis{Name: clarity.AxisName(name), Values: values}, nil
}

func newSweepCmd() *cobra.Command {
	var prompt, imagePath, runID string
	var axisFlags []string
	var seeds []int64
	var rich bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a full perturbation sweep against the configured adapter",
		RunE: func(cmd *cobra.Command, args []string) error {
			imageBytes, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("failed to read image %s: %w", imagePath, err)
			}

			axes := make([]clarity.PerturbationAxis, 0, len(axisFlags))
			for _, raw := range axisFlags {
				axis, err := parseAxisFlag(raw)
				if err != nil {
					return err
				}
				axes = append(axes, axis)
			}

			ledger, cfg, err := buildLedger()
			if err != nil {
				return err
			}
			adapter := buildAdapter(cfg)

			spec := &clarity.SweepSpec{
				ImageBytes: imageBytes,
				Prompt:     prompt,
				Axes:       axes,
				Seeds:      seeds,
				Adapter:    cfg.Adapter.Name,
				RichMode:   rich,
			}

			if runID == "" {
				runID = core.NewID().String()
			}

			orchestrator := sweep.NewOrchestrator(ledger, adapter)
			manifest, err := orchestrator.Run(cmd.Context(), spec, runID, timestamp())
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}

			fmt.Printf("run_id=%s total_runs=%d\n", manifest.RunID, len(manifest.Runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "clinical prompt text")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to the baseline image")
	cmd.Flags().StringVar(&runID, "run-id", "", "sweep run ID (generated if empty)")
	cmd.Flags().StringArrayVar(&axisFlags, "axis", nil, "axis to sweep, as name=v1,v2,... (repeatable)")
	cmd.Flags().Int64SliceVar(&seeds, "seed", nil, "seed to run (repeatable); first seed is the baseline seed")
	cmd.Flags().BoolVar(&rich, "rich", false, "request rich adapter signals (confidence, entropy, evidence map)")
	cmd.MarkFlagRequired("prompt")
	cmd.MarkFlagRequired("image")
	cmd.MarkFlagRequired("axis")
	cmd.MarkFlagRequired("seed")

	return cmd
}
