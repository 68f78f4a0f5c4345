package clarity

import (
	"encoding/json"
	"sort"
)

// bundleHashKey is the reserved top-level key the bundle hash is injected
// under; it can never collide with a canonical artifact file name.
const bundleHashKey = "bundle_sha256"

// Checksums is the closing artifact of a sweep: every canonical artifact's
// SHA-256 over its LF-normalized bytes, keyed by file name, plus the
// bundle hash that seals the smaller bundle-defining subset (§6: "maps
// each canonical filename to its SHA-256 ... also carries bundle_sha256").
// On disk it is a single flat object ({filename: sha256, ..., bundle_sha256:
// sha256}), not a wrapper around an "entries" field (§6 artifact schema
// table), so Checksums marshals and unmarshals itself accordingly.
type Checksums struct {
	Entries      map[string]string
	BundleSHA256 string
}

// MarshalJSON flattens Entries and BundleSHA256 into one object.
func (c Checksums) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(c.Entries)+1)
	for name, sum := range c.Entries {
		flat[name] = sum
	}
	flat[bundleHashKey] = c.BundleSHA256
	return json.Marshal(flat)
}

// UnmarshalJSON splits a flat checksums object back into Entries and
// BundleSHA256, lifting the reserved bundle_sha256 key out of Entries.
func (c *Checksums) UnmarshalJSON(data []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	entries := make(map[string]string, len(flat))
	for name, sum := range flat {
		if name == bundleHashKey {
			c.BundleSHA256 = sum
			continue
		}
		entries[name] = sum
	}
	c.Entries = entries
	return nil
}

// ArtifactNames lists every canonical artifact file name a complete sweep
// produces (§6 sweep directory layout), the full set checksums.json
// covers.
var ArtifactNames = []string{
	"sweep_manifest.json",
	"metrics.json",
	"robustness_surface.json",
	"confidence_surface.json",
	"entropy_surface.json",
	"gradient_surface.json",
	"probe_surface.json",
	"overlay_bundle.json",
}

// BundleArtifactNames lists the fixed, ordered subset of artifacts whose
// LF-normalized bytes are concatenated to compute the bundle SHA-256
// (§3 "Bundle hash", §4.10).
var BundleArtifactNames = []string{
	"sweep_manifest.json",
	"robustness_surface.json",
	"confidence_surface.json",
	"entropy_surface.json",
}

// SortedEntryNames returns the keys of entries sorted alphabetically, the
// order the checksums artifact itself serializes them in (canonical JSON
// already does this via map-key sorting, but callers that need explicit
// iteration order use this).
func SortedEntryNames(entries map[string]string) []string {
	out := make([]string, 0, len(entries))
	for k := range entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
