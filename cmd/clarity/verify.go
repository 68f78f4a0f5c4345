package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"clarity/app/bundle"
)

func newVerifyCmd() *cobra.Command {
	var concurrency int64

	cmd := &cobra.Command{
		Use:   "verify [run-id...]",
		Short: "Recompute and compare the bundle hash of one or more sealed sweeps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, _, err := buildLedger()
			if err != nil {
				return err
			}
			sealer := bundle.NewSealer(ledger)

			sem := semaphore.NewWeighted(concurrency)
			results := make([]error, len(args))
			var wg sync.WaitGroup
			for i, runID := range args {
				if err := sem.Acquire(cmd.Context(), 1); err != nil {
					return fmt.Errorf("failed to acquire verification slot: %w", err)
				}
				wg.Add(1)
				go func(i int, runID string) {
					defer wg.Done()
					defer sem.Release(1)
					results[i] = sealer.Verify(cmd.Context(), runID)
				}(i, runID)
			}
			wg.Wait()

			var failed int
			for i, runID := range args {
				if results[i] != nil {
					failed++
					fmt.Printf("run_id=%s status=FAILED error=%v\n", runID, results[i])
					continue
				}
				fmt.Printf("run_id=%s status=OK\n", runID)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d sweeps failed verification", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&concurrency, "concurrency", 4, "maximum number of sweeps verified concurrently")
	return cmd
}
