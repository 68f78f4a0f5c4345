package clarity

import "clarity/domain/core"

// RichSignals carries the optional additional fields AdapterResponse
// populates when the sweep runs with rich_mode enabled (§3, §4.3).
type RichSignals struct {
	MeanLogprob       float64             `json:"mean_logprob"`
	OutputEntropy     float64             `json:"output_entropy"`
	Confidence        float64             `json:"confidence"`
	TokenCount        int                 `json:"token_count"`
	LogitsSummaryHash core.Hash           `json:"logits_summary_hash"`
	EvidenceMap       *EvidenceMap        `json:"evidence_map,omitempty"`
}

// Quantized returns a copy of r with every float field rounded to 8
// decimals, failing if any is non-finite.
func (r RichSignals) Quantized() (RichSignals, error) {
	out := r
	var err error
	if out.MeanLogprob, err = Quantize(r.MeanLogprob); err != nil {
		return RichSignals{}, err
	}
	if out.OutputEntropy, err = Quantize(r.OutputEntropy); err != nil {
		return RichSignals{}, err
	}
	if out.Confidence, err = Quantize(r.Confidence); err != nil {
		return RichSignals{}, err
	}
	return out, nil
}

// AdapterResponse is the model backend's deterministic output for one
// (prompt, image, seed) invocation (§3). Justification is the model's
// stated reasoning, kept separate from Text so the trace pack can record
// both an answer and a justification independently (§4.5).
type AdapterResponse struct {
	Text          string       `json:"text"`
	Justification string       `json:"justification,omitempty"`
	Rich          *RichSignals `json:"rich,omitempty"`
}
