// Package bundle seals a completed sweep: it hashes every canonical
// artifact, concatenates the four bundle-defining artifacts in their fixed
// order, and digests the result into the sweep's reproducibility receipt
// (§4.10).
package bundle

import (
	"context"
	"encoding/json"

	"clarity/domain/clarity"
	"clarity/domain/core"
	"clarity/ports"
)

// Sealer computes and verifies a sweep's Checksums artifact.
type Sealer struct {
	ledger ports.LedgerReaderPort
}

// NewSealer constructs a Sealer reading artifacts through ledger.
func NewSealer(ledger ports.LedgerReaderPort) *Sealer {
	return &Sealer{ledger: ledger}
}

// Seal reads every artifact named in clarity.ArtifactNames from runID's
// ledger, validates each against the registered schema for its kind,
// hashes each after LF normalization, and digests the LF-normalized
// concatenation of clarity.BundleArtifactNames, in that fixed order, into
// bundle_sha256 (§4.10).
func (s *Sealer) Seal(ctx context.Context, runID string) (*clarity.Checksums, error) {
	entries := make(map[string]string, len(clarity.ArtifactNames))
	for _, name := range clarity.ArtifactNames {
		data, err := s.ledger.ReadArtifact(ctx, runID, name)
		if err != nil {
			return nil, clarity.NewIntegrityError(name, err.Error())
		}
		if err := validateAgainstRegistry(runID, name, data); err != nil {
			return nil, err
		}
		entries[name] = core.NewHashLFNormalized(data).String()
	}

	var concatenated []byte
	for _, name := range clarity.BundleArtifactNames {
		data, err := s.ledger.ReadArtifact(ctx, runID, name)
		if err != nil {
			return nil, clarity.NewIntegrityError(name, err.Error())
		}
		concatenated = append(concatenated, core.NormalizeLF(data)...)
	}

	return &clarity.Checksums{
		Entries:      entries,
		BundleSHA256: core.NewBundleHash(concatenated).String(),
	}, nil
}

// Verify recomputes runID's bundle hash and reports an IntegrityError if it
// no longer matches the sealed checksums.json.
func (s *Sealer) Verify(ctx context.Context, runID string) error {
	stored, err := s.ledger.ReadArtifact(ctx, runID, "checksums.json")
	if err != nil {
		return err
	}
	var checksums clarity.Checksums
	if err := json.Unmarshal(stored, &checksums); err != nil {
		return clarity.NewSerializationError("checksums decode", err.Error())
	}

	recomputed, err := s.Seal(ctx, runID)
	if err != nil {
		return err
	}
	if recomputed.BundleSHA256 != checksums.BundleSHA256 {
		return clarity.NewIntegrityError(checksums.BundleSHA256, recomputed.BundleSHA256)
	}
	for name, want := range checksums.Entries {
		got, ok := recomputed.Entries[name]
		if !ok || got != want {
			return clarity.NewIntegrityError(want, got)
		}
	}
	return nil
}

// validateAgainstRegistry decodes an artifact's bytes and checks them
// against the schema clarity.Registry has on file for the artifact kind
// registered under name, so a structurally malformed artifact is caught
// before it is folded into the bundle hash.
func validateAgainstRegistry(runID, name string, data []byte) error {
	kind, ok := clarity.KindForFileName(name)
	if !ok {
		return clarity.NewIntegrityError(name, "no registered artifact kind for file name")
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return clarity.NewIntegrityError(name, "artifact is not valid JSON: "+err.Error())
	}
	artifact := core.Artifact{ID: core.ID(runID), Kind: kind, Payload: payload}
	if err := clarity.ValidateArtifact(artifact); err != nil {
		return clarity.NewIntegrityError(name, err.Error())
	}
	return nil
}
