package testkit

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sync"

	"golang.org/x/image/bmp"

	"clarity/domain/clarity"
	"clarity/domain/core"
	"clarity/ports"
)

// TestKit bundles the in-memory fakes a test needs to exercise a sweep
// without touching the filesystem or a real model backend.
type TestKit struct {
	ledger *InMemoryLedgerAdapter
}

// NewTestKit creates a test kit backed by fresh in-memory fakes.
func NewTestKit() *TestKit {
	return &TestKit{ledger: NewInMemoryLedgerAdapter()}
}

// LedgerAdapter returns the kit's shared in-memory ledger.
func (t *TestKit) LedgerAdapter() ports.LedgerPort {
	return t.ledger
}

// RNGAdapter returns a deterministic RNG port fake.
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return &RNGAdapter{}
}

// NewTestImage renders a deterministic width x height solid-gray BMP, the
// minimal decodable baseline image most fixtures need.
func NewTestImage(width, height int, gray uint8) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: gray})
		}
	}
	var buf bytes.Buffer
	_ = bmp.Encode(&buf, img)
	return buf.Bytes()
}

// NewTestSweepSpec returns a minimal, valid SweepSpec: a single brightness
// axis with two values and two seeds.
func NewTestSweepSpec() *clarity.SweepSpec {
	return &clarity.SweepSpec{
		ImageBytes: NewTestImage(8, 8, 128),
		Prompt:     "describe the finding",
		Axes: []clarity.PerturbationAxis{
			{Name: clarity.AxisBrightness, Values: []float64{0, 0.2}},
		},
		Seeds:   []int64{1, 2},
		Adapter: "stub",
	}
}

// RNGAdapter is a deterministic RNGPort fake: seeds are derived by hashing
// the identifying strings together with the base seed, so the same
// (runID, axis, valueEncoded, baseSeed) always reproduces the same stream.
type RNGAdapter struct{}

func (r *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed + int64(hashString(name)))), nil
}

func (r *RNGAdapter) Stream(ctx context.Context, runID, axis, valueEncoded string, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	seed += int64(hashString(runID))
	seed += int64(hashString(axis))
	seed += int64(hashString(valueEncoded))
	return rand.New(rand.NewSource(seed)), nil
}

// ValidateSeed reseeds name's stream and confirms it reproduces expected,
// one draw per element, within a tight tolerance. A value mismatch is
// reported as core.ErrSeedMismatch.
func (r *RNGAdapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	stream, err := r.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := stream.Float64()
		if math.Abs(got-want) > 1e-12 {
			return fmt.Errorf("%w: stream %q draw %d: want %v, got %v", core.ErrSeedMismatch, name, i, want, got)
		}
	}
	return nil
}

func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}

// InMemoryLedgerAdapter implements ports.LedgerPort over process memory,
// keyed by runID so concurrent tests touching different runs never race.
type InMemoryLedgerAdapter struct {
	mu        sync.RWMutex
	artifacts map[string]map[string][]byte
	runFiles  map[string]map[string][]byte
}

func NewInMemoryLedgerAdapter() *InMemoryLedgerAdapter {
	return &InMemoryLedgerAdapter{
		artifacts: make(map[string]map[string][]byte),
		runFiles:  make(map[string]map[string][]byte),
	}
}

func (l *InMemoryLedgerAdapter) WriteArtifact(ctx context.Context, runID, fileName string, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.artifacts[runID] == nil {
		l.artifacts[runID] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	l.artifacts[runID][fileName] = cp
	return nil
}

func (l *InMemoryLedgerAdapter) WriteRunFile(ctx context.Context, runID, relPath string, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.runFiles[runID] == nil {
		l.runFiles[runID] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	l.runFiles[runID][relPath] = cp
	return nil
}

func (l *InMemoryLedgerAdapter) ReadArtifact(ctx context.Context, runID, fileName string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, ok := l.artifacts[runID][fileName]
	if !ok {
		return nil, fmt.Errorf("%w: artifact %s for run %s", core.ErrNotFound, fileName, runID)
	}
	return data, nil
}

func (l *InMemoryLedgerAdapter) ReadRunFile(ctx context.Context, runID, relPath string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, ok := l.runFiles[runID][relPath]
	if !ok {
		return nil, fmt.Errorf("%w: run file %s for run %s", core.ErrNotFound, relPath, runID)
	}
	return data, nil
}

func (l *InMemoryLedgerAdapter) ListArtifacts(ctx context.Context, runID string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.artifacts[runID]))
	for name := range l.artifacts[runID] {
		names = append(names, name)
	}
	return names, nil
}
