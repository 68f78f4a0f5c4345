// Package metrics computes the Evidence Stability Index and Justification
// Drift for every (axis, value) in a sweep, against its baseline run.
package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"clarity/domain/clarity"
	"clarity/ports"
)

// Engine computes MetricsResult from a sweep's persisted runs.
type Engine struct {
	ledger ports.LedgerReaderPort
}

// NewEngine constructs an Engine reading run artifacts through ledger.
func NewEngine(ledger ports.LedgerReaderPort) *Engine {
	return &Engine{ledger: ledger}
}

// Compute implements §4.5: extract each run's answer/justification,
// score ESI and Drift per (axis, value) against the baseline, and
// aggregate to per-axis overall scores.
func (e *Engine) Compute(ctx context.Context, runID string, manifest *clarity.SweepManifest) (*clarity.MetricsResult, error) {
	if manifest == nil || len(manifest.Runs) == 0 {
		return nil, clarity.NewMetricComputationError(runID, "empty sweep")
	}

	baseline := manifest.Runs[0]
	baselineAnswer, baselineJustification, err := e.extract(ctx, runID, baseline)
	if err != nil {
		return nil, clarity.NewMetricComputationError(baseline.TracePackPath, "missing baseline: "+err.Error())
	}

	type groupKey struct {
		axis  clarity.AxisName
		value string
	}
	groups := make(map[groupKey][]clarity.RunRecord)
	for _, r := range manifest.Runs {
		if r.IsBaseline {
			continue
		}
		k := groupKey{r.Axis, r.ValueEncoded}
		groups[k] = append(groups[k], r)
	}

	axisNames := make([]clarity.AxisName, 0, len(manifest.Axes))
	for _, axis := range manifest.Axes {
		axisNames = append(axisNames, axis.Name)
	}
	axisNames = clarity.SortedAxisNames(axisNames)

	axisByName := make(map[clarity.AxisName]clarity.PerturbationAxis, len(manifest.Axes))
	for _, axis := range manifest.Axes {
		axisByName[axis.Name] = axis
	}

	esiMetrics := make([]clarity.ESIMetric, 0, len(axisNames))
	driftMetrics := make([]clarity.DriftMetric, 0, len(axisNames))

	for _, name := range axisNames {
		axis := axisByName[name]
		esiScores := make(map[string]float64, len(axis.Values))
		driftScores := make(map[string]float64, len(axis.Values))

		for _, value := range axis.Values {
			encoded := clarity.EncodeValue(value)
			runs := groups[groupKey{name, encoded}]
			if len(runs) == 0 {
				continue
			}

			matches := 0
			driftSum := 0.0
			for _, r := range runs {
				answer, justification, err := e.extract(ctx, runID, r)
				if err != nil {
					return nil, clarity.NewMetricComputationError(r.TracePackPath, err.Error())
				}
				if answer == baselineAnswer {
					matches++
				}
				driftSum += normalizedLevenshtein(justification, baselineJustification)
			}

			esi, err := clarity.Quantize(float64(matches) / float64(len(runs)))
			if err != nil {
				return nil, clarity.NewMetricComputationError(runID, err.Error())
			}
			drift, err := clarity.Quantize(driftSum / float64(len(runs)))
			if err != nil {
				return nil, clarity.NewMetricComputationError(runID, err.Error())
			}
			esiScores[encoded] = esi
			driftScores[encoded] = drift
		}

		esiMetrics = append(esiMetrics, clarity.ESIMetric{
			Axis:         name,
			ValueScores:  esiScores,
			OverallScore: clarity.MustQuantize(mean(valuesOf(esiScores))),
		})
		driftMetrics = append(driftMetrics, clarity.DriftMetric{
			Axis:         name,
			ValueScores:  driftScores,
			OverallScore: clarity.MustQuantize(mean(valuesOf(driftScores))),
		})
	}

	return &clarity.MetricsResult{
		ESI:   clarity.SortESIMetrics(esiMetrics),
		Drift: clarity.SortDriftMetrics(driftMetrics),
	}, nil
}

// extract implements the last-record answer/justification extraction
// rules of §4.5.
func (e *Engine) extract(ctx context.Context, runID string, r clarity.RunRecord) (answer, justification string, err error) {
	data, err := e.ledger.ReadRunFile(ctx, runID, r.TracePackPath)
	if err != nil {
		return "", "", err
	}
	last, err := lastRecord(data)
	if err != nil {
		return "", "", err
	}

	if output, ok := last["output"].(string); ok && output != "" {
		answer = output
	} else if a, ok := last["answer"].(string); ok && a != "" {
		answer = a
	} else {
		return "", "", fmt.Errorf("no extractable answer in %s", r.TracePackPath)
	}

	switch j := last["justification"].(type) {
	case string:
		justification = j
	case nil:
		justification = ""
	default:
		justification = fmt.Sprintf("%v", j)
	}
	return answer, justification, nil
}

// lastRecord parses a JSONL byte stream and returns its last object.
func lastRecord(data []byte) (map[string]interface{}, error) {
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	if len(lines) == 0 || len(lines[len(lines)-1]) == 0 {
		return nil, fmt.Errorf("trace pack has no records")
	}
	var record map[string]interface{}
	if err := json.Unmarshal(lines[len(lines)-1], &record); err != nil {
		return nil, fmt.Errorf("malformed trace pack record: %w", err)
	}
	return record, nil
}

// normalizedLevenshtein implements §4.5: edit_distance / max(len_a,
// len_b), both empty yielding 0.0. Distance is computed over runes
// (Unicode code points), not bytes, via the standard Wagner-Fischer
// dynamic program.
func normalizedLevenshtein(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 0.0
	}
	dist := levenshteinDistance(ra, rb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return float64(dist) / float64(maxLen)
}

func levenshteinDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = minInt(del, minInt(ins, sub))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func valuesOf(m map[string]float64) []float64 {
	out := make([]float64, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
