package ports

import (
	"context"

	"clarity/domain/clarity"
)

// AdapterPort is the deterministic model-backend contract one sweep run
// invokes once per (prompt, image, seed). Implementations are responsible
// for the full seeding discipline before inference: framework, device,
// numeric and runtime RNGs reseeded from seed, deterministic kernels
// selected, autotuning disabled, decoding greedy.
type AdapterPort interface {
	// Generate runs one inference and returns its text answer.
	Generate(ctx context.Context, prompt string, image []byte, seed int64) (clarity.AdapterResponse, error)

	// GenerateRich is Generate with rich_mode signals populated:
	// mean log-probability, output entropy, confidence, token count, a
	// hash of the logits summary, and an evidence map.
	GenerateRich(ctx context.Context, prompt string, image []byte, seed int64) (clarity.AdapterResponse, error)
}
