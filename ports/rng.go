package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded, reproducible random streams for the adapter's
// seeding discipline: every framework/device/numeric/runtime RNG an
// adapter touches is reseeded from the same base seed before a run, so
// that replaying (axis, value, seed) yields byte-identical output.
type RNGPort interface {
	// SeededStream returns the RNG for a named, axis-independent operation
	// (e.g. region-grid jitter-free ordering checks).
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream derives the RNG for one (runID, axis, valueEncoded) grid point
	// from baseSeed. Deriving rather than reusing baseSeed directly keeps
	// distinct grid points at the same seed from sharing a stream.
	Stream(ctx context.Context, runID, axis, valueEncoded string, baseSeed int64) (*rand.Rand, error)

	// ValidateSeed reseeds the deterministic stack and confirms the named
	// operation reproduces expected, failing with ErrSeedMismatch-class
	// information if it does not.
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
