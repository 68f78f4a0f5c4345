package clarity

import (
	"fmt"

	"clarity/domain/core"
)

// ArtifactSchema pairs an artifact kind with its stable on-disk file name
// and the function that validates it. The bundle sealer runs the
// validator on each artifact after reading it back.
type ArtifactSchema struct {
	Kind         core.ArtifactKind
	FileName     string
	ValidateFunc func(core.Artifact) error
}

// Registry maps every artifact kind a sweep can produce to its schema.
var Registry = map[core.ArtifactKind]ArtifactSchema{
	core.ArtifactSweepManifest: {
		Kind:         core.ArtifactSweepManifest,
		FileName:     "sweep_manifest.json",
		ValidateFunc: validateManifestPayload,
	},
	core.ArtifactMetricsResult: {
		Kind:         core.ArtifactMetricsResult,
		FileName:     "metrics.json",
		ValidateFunc: requireNonEmptyID,
	},
	core.ArtifactRobustnessSurface: {
		Kind:         core.ArtifactRobustnessSurface,
		FileName:     "robustness_surface.json",
		ValidateFunc: requireNonEmptyID,
	},
	core.ArtifactConfidenceSurface: {
		Kind:         core.ArtifactConfidenceSurface,
		FileName:     "confidence_surface.json",
		ValidateFunc: requireNonEmptyID,
	},
	core.ArtifactEntropySurface: {
		Kind:         core.ArtifactEntropySurface,
		FileName:     "entropy_surface.json",
		ValidateFunc: requireNonEmptyID,
	},
	core.ArtifactGradientSurface: {
		Kind:         core.ArtifactGradientSurface,
		FileName:     "gradient_surface.json",
		ValidateFunc: requireNonEmptyID,
	},
	core.ArtifactProbeSurface: {
		Kind:         core.ArtifactProbeSurface,
		FileName:     "probe_surface.json",
		ValidateFunc: requireNonEmptyID,
	},
	core.ArtifactOverlayBundle: {
		Kind:         core.ArtifactOverlayBundle,
		FileName:     "overlay_bundle.json",
		ValidateFunc: requireNonEmptyID,
	},
	core.ArtifactChecksums: {
		Kind:         core.ArtifactChecksums,
		FileName:     "checksums.json",
		ValidateFunc: requireNonEmptyID,
	},
}

// GetSchema returns the schema registered for kind.
func GetSchema(kind core.ArtifactKind) (ArtifactSchema, error) {
	schema, ok := Registry[kind]
	if !ok {
		return ArtifactSchema{}, fmt.Errorf("unknown artifact kind: %s", kind)
	}
	return schema, nil
}

// ValidateArtifact validates artifact against its kind's schema.
func ValidateArtifact(artifact core.Artifact) error {
	schema, err := GetSchema(artifact.Kind)
	if err != nil {
		return err
	}
	return schema.ValidateFunc(artifact)
}

// FileNameFor returns the canonical on-disk file name for kind.
func FileNameFor(kind core.ArtifactKind) (string, error) {
	schema, err := GetSchema(kind)
	if err != nil {
		return "", err
	}
	return schema.FileName, nil
}

// KindForFileName is the reverse of FileNameFor: it looks up the artifact
// kind registered under the given canonical on-disk file name, letting a
// reader that only has a file name (the bundle sealer, walking
// ArtifactNames) recover the schema it must validate against.
func KindForFileName(name string) (core.ArtifactKind, bool) {
	for kind, schema := range Registry {
		if schema.FileName == name {
			return kind, true
		}
	}
	return "", false
}

func requireNonEmptyID(artifact core.Artifact) error {
	if artifact.ID.IsEmpty() {
		return fmt.Errorf("%s artifact missing ID", artifact.Kind)
	}
	return nil
}

func validateManifestPayload(artifact core.Artifact) error {
	if artifact.Kind != core.ArtifactSweepManifest {
		return fmt.Errorf("expected kind %s, got %s", core.ArtifactSweepManifest, artifact.Kind)
	}
	if artifact.ID.IsEmpty() {
		return fmt.Errorf("sweep manifest artifact missing ID")
	}
	if _, ok := artifact.Payload.(SweepManifest); !ok {
		if _, ok := artifact.Payload.(map[string]interface{}); !ok {
			return fmt.Errorf("sweep manifest artifact has unexpected payload type")
		}
	}
	return nil
}
