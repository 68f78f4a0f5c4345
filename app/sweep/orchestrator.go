// Package sweep runs the Cartesian product of a sweep's axes, values, and
// seeds against a model adapter, persisting each run's artifacts and
// emitting the sweep manifest that closes over them.
package sweep

import (
	"context"
	"fmt"
	"path"

	"clarity/app/perturbation"
	"clarity/domain/clarity"
	"clarity/internal"
	"clarity/ports"
)

// Orchestrator is the sole writer of a sweep's per-run artifacts and its
// manifest. It is single-threaded by construction: every run is executed
// and persisted before the next begins, matching the adapter's seeding
// discipline, which is process-global and cannot tolerate concurrent
// invocations.
type Orchestrator struct {
	ledger  ports.LedgerWriterPort
	adapter ports.AdapterPort
	log     *internal.Logger
}

// NewOrchestrator constructs an Orchestrator over the given ledger writer
// and adapter.
func NewOrchestrator(ledger ports.LedgerWriterPort, adapter ports.AdapterPort) *Orchestrator {
	return &Orchestrator{ledger: ledger, adapter: adapter, log: internal.DefaultLogger}
}

// Run executes spec's full grid against runID's ledger, returning the
// closed sweep manifest. timestamp is caller-supplied (the core never
// reads the wall clock itself).
func (o *Orchestrator) Run(ctx context.Context, spec *clarity.SweepSpec, runID, timestamp string) (*clarity.SweepManifest, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	baselineImg, err := perturbation.DecodeImage(spec.ImageBytes)
	if err != nil {
		return nil, err
	}

	o.log.Info("[Orchestrator] starting sweep run_id=%s axes=%d seeds=%d", runID, len(spec.Axes), len(spec.Seeds))

	var runs []clarity.RunRecord

	baselineSeed := spec.Seeds[0]
	baselineRecord, err := o.executeRun(ctx, spec, runID, "", 0, "", baselineSeed, spec.ImageBytes, "baseline")
	if err != nil {
		return nil, err
	}
	baselineRecord.IsBaseline = true
	runs = append(runs, *baselineRecord)

	for _, point := range perturbation.Enumerate(spec) {
		perturbed, err := perturbation.Apply(baselineImg, point.Axis, point.Value)
		if err != nil {
			return nil, clarity.NewSweepError(string(point.Axis), point.ValueEncoded, point.Seed, err)
		}
		imgBytes, err := perturbation.EncodeImage(perturbed)
		if err != nil {
			return nil, clarity.NewSweepError(string(point.Axis), point.ValueEncoded, point.Seed, err)
		}

		relDir := path.Join("runs", string(point.Axis), point.ValueEncoded, fmt.Sprintf("%d", point.Seed))
		record, err := o.executeRun(ctx, spec, runID, point.Axis, point.Value, point.ValueEncoded, point.Seed, imgBytes, relDir)
		if err != nil {
			return nil, clarity.NewSweepError(string(point.Axis), point.ValueEncoded, point.Seed, err)
		}
		runs = append(runs, *record)
	}

	values := make(map[string][]string, len(spec.Axes))
	for _, axis := range spec.Axes {
		encoded := make([]string, len(axis.Values))
		for i, v := range axis.Values {
			encoded[i] = clarity.EncodeValue(v)
		}
		values[string(axis.Name)] = encoded
	}

	manifest := &clarity.SweepManifest{
		RunID:       runID,
		Timestamp:   timestamp,
		Seeds:       spec.Seeds,
		Axes:        spec.Axes,
		Values:      values,
		Runs:        runs,
		BaselineRun: runs[0],
	}

	data, err := clarity.MarshalCanonical(manifest)
	if err != nil {
		return nil, clarity.NewSweepError("", "", 0, err)
	}
	if err := o.ledger.WriteArtifact(ctx, runID, "sweep_manifest.json", data); err != nil {
		return nil, clarity.NewSweepError("", "", 0, err)
	}

	o.log.Info("[Orchestrator] sweep complete run_id=%s total_runs=%d", runID, len(runs))
	return manifest, nil
}

// executeRun invokes the adapter once and persists its image, trace pack,
// and response under relDir within runID's ledger.
func (o *Orchestrator) executeRun(ctx context.Context, spec *clarity.SweepSpec, runID string, axis clarity.AxisName, value float64, valueEncoded string, seed int64, imgBytes []byte, relDir string) (*clarity.RunRecord, error) {
	var response clarity.AdapterResponse
	var err error
	if spec.RichMode {
		response, err = o.adapter.GenerateRich(ctx, spec.Prompt, imgBytes, seed)
	} else {
		response, err = o.adapter.Generate(ctx, spec.Prompt, imgBytes, seed)
	}
	if err != nil {
		return nil, clarity.NewAdapterError(seed, err.Error())
	}

	imagePath := path.Join(relDir, "image.bmp")
	if err := o.ledger.WriteRunFile(ctx, runID, imagePath, imgBytes); err != nil {
		return nil, err
	}

	stepID := 0
	record := clarity.TracePackRecord{
		StepID:        &stepID,
		Output:        response.Text,
		Justification: response.Justification,
	}
	traceLine, err := clarity.MarshalCanonical(record)
	if err != nil {
		return nil, err
	}
	tracePath := path.Join(relDir, "trace_pack.jsonl")
	if err := o.ledger.WriteRunFile(ctx, runID, tracePath, append(traceLine, '\n')); err != nil {
		return nil, err
	}

	responseData, err := clarity.MarshalCanonical(response)
	if err != nil {
		return nil, err
	}
	responsePath := path.Join(relDir, "response.json")
	if err := o.ledger.WriteRunFile(ctx, runID, responsePath, responseData); err != nil {
		return nil, err
	}

	return &clarity.RunRecord{
		Axis:          axis,
		Value:         value,
		ValueEncoded:  valueEncoded,
		Seed:          seed,
		ImagePath:     imagePath,
		TracePackPath: tracePath,
		ResponsePath:  responsePath,
	}, nil
}
