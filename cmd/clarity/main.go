package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clarity",
		Short: "CLARITY deterministic robustness evaluation for multimodal clinical VLMs",
	}

	rootCmd.AddCommand(
		newSweepCmd(),
		newMetricsCmd(),
		newSurfaceCmd(),
		newGradientCmd(),
		newCounterfactualCmd(),
		newOverlayCmd(),
		newSealCmd(),
		newVerifyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
