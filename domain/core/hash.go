package core

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// Hash is a lowercase hex-encoded SHA-256 digest.
type Hash string

// NewHash digests data directly, with no newline normalization.
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// NewHashLFNormalized replaces every CRLF with LF before digesting, exactly
// once, so a file checked out with either line-ending convention hashes
// identically. This is the normalization the bundle sealer and per-artifact
// checksums both rely on (§4.10).
func NewHashLFNormalized(data []byte) Hash {
	return NewHash(NormalizeLF(data))
}

// NormalizeLF performs a single CRLF -> LF pass over data.
func NormalizeLF(data []byte) []byte {
	return bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
}

func (h Hash) String() string { return string(h) }

func (h Hash) IsEmpty() bool { return h == "" }

func (h Hash) Equals(other Hash) bool { return h == other }

// Domain-specific hash types. Keeping these as distinct types, rather than
// passing bare Hash everywhere, stops a logits-summary hash from being
// mistaken for a bundle hash at a call site.
type (
	// BundleHash is the SHA-256 over the LF-normalized concatenation of the
	// canonical artifact list (§4.10).
	BundleHash Hash
	// LogitsSummaryHash is the per-inference determinism receipt emitted by
	// the adapter contract's rich response (§4.3).
	LogitsSummaryHash Hash
)

func (h BundleHash) String() string        { return Hash(h).String() }
func (h LogitsSummaryHash) String() string { return Hash(h).String() }

// NewBundleHash hashes the LF-normalized concatenation of the canonical
// artifact bytes, in the order the caller already assembled them.
func NewBundleHash(data []byte) BundleHash { return BundleHash(NewHashLFNormalized(data)) }
