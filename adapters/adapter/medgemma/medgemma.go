// Package medgemma scaffolds the real MedGemma-backed adapter behind the
// CLARITY_REAL_MODEL gate. The core specifies this backend only through
// the adapter contract (§4.3); no model weights or inference runtime ship
// with this repository, so every call fails until a real implementation is
// wired in at ModelPath.
package medgemma

import (
	"context"

	"clarity/domain/clarity"
)

// Adapter is the contract-only reference backend: it has no inference
// engine to invoke. Construction only records ModelPath and never fails;
// every Generate or GenerateRich call returns an AdapterError (§4.3).
type Adapter struct {
	ModelPath string
}

// NewAdapter constructs a MedGemma Adapter pointed at modelPath. Wiring a
// real inference runtime (chat template, image-placeholder token,
// bfloat16 weights, greedy decoding, RNG reseeding across the tensor
// framework, its device RNG, the numeric library, and the language
// runtime) is out of scope for the core and belongs to the deployment that
// sets CLARITY_REAL_MODEL=true (§4.3, §1 "the physical model weights...
// only the adapter contract matters").
func NewAdapter(modelPath string) *Adapter {
	return &Adapter{ModelPath: modelPath}
}

// Generate always fails: no inference runtime is wired into this adapter.
func (a *Adapter) Generate(ctx context.Context, prompt string, image []byte, seed int64) (clarity.AdapterResponse, error) {
	return clarity.AdapterResponse{}, clarity.NewAdapterError(seed, "medgemma backend has no inference runtime wired in at "+a.ModelPath)
}

// GenerateRich always fails for the same reason as Generate.
func (a *Adapter) GenerateRich(ctx context.Context, prompt string, image []byte, seed int64) (clarity.AdapterResponse, error) {
	return clarity.AdapterResponse{}, clarity.NewAdapterError(seed, "medgemma backend has no inference runtime wired in at "+a.ModelPath)
}
