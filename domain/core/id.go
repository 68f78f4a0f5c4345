package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier.
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation.
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty.
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types.
type (
	// RunID identifies a single sweep execution.
	RunID ID
	// ArtifactID identifies one emitted artifact within a sweep directory.
	ArtifactID ID
)

func (id RunID) String() string      { return ID(id).String() }
func (id ArtifactID) String() string { return ID(id).String() }

// ParseRunID parses a string into RunID.
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// Artifact represents any sealed output of a sweep. CreatedAt is a plain,
// caller-supplied string (RFC3339, matching SweepManifest.Timestamp): the
// core never reads the wall clock on its own initiative (§4.1).
type Artifact struct {
	ID        ID           `json:"id"`
	Kind      ArtifactKind `json:"kind"`
	Payload   interface{}  `json:"payload"`
	CreatedAt string       `json:"created_at"`
}

// ArtifactKind enumerates the artifact families the core emits.
type ArtifactKind string

const (
	ArtifactSweepManifest     ArtifactKind = "sweep_manifest"
	ArtifactMetricsResult     ArtifactKind = "metrics"
	ArtifactRobustnessSurface ArtifactKind = "robustness_surface"
	ArtifactConfidenceSurface ArtifactKind = "confidence_surface"
	ArtifactEntropySurface    ArtifactKind = "entropy_surface"
	ArtifactGradientSurface   ArtifactKind = "gradient_surface"
	ArtifactProbeSurface      ArtifactKind = "probe_surface"
	ArtifactOverlayBundle     ArtifactKind = "overlay_bundle"
	ArtifactChecksums         ArtifactKind = "checksums"
)
