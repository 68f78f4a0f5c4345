package ports

import "context"

// LedgerWriterPort provides write access to a sweep's on-disk artifacts
// and run files; writing an existing name replaces its bytes. This is the only way sweep output is written,
// keeping every writer from depending on the filesystem layout directly.
type LedgerWriterPort interface {
	// WriteArtifact writes a canonical artifact's bytes under runID,
	// keyed by its fixed file name (e.g. "sweep_manifest.json").
	WriteArtifact(ctx context.Context, runID, fileName string, data []byte) error

	// WriteRunFile writes one (axis, value, seed) run's per-file output
	// (image, trace pack, response) at relPath under runID's run directory.
	WriteRunFile(ctx context.Context, runID, relPath string, data []byte) error
}

// LedgerReaderPort provides read-only access to a sweep's stored artifacts
// and run files, for metrics/surface/gradient/overlay stages that consume
// a prior stage's output and for the verify command.
type LedgerReaderPort interface {
	ReadArtifact(ctx context.Context, runID, fileName string) ([]byte, error)
	ReadRunFile(ctx context.Context, runID, relPath string) ([]byte, error)
	ListArtifacts(ctx context.Context, runID string) ([]string, error)
}

// LedgerPort combines read and write access.
type LedgerPort interface {
	LedgerWriterPort
	LedgerReaderPort
}
