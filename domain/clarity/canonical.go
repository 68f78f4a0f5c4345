// Package clarity holds the CLARITY data model: the immutable entities every
// engine (perturbation, sweep, metrics, surface, gradient, counterfactual,
// overlay, bundle) reads and writes, plus the canonical serialization and
// error taxonomy those engines share.
package clarity

import (
	"bytes"
	"encoding/json"
	"math"
)

// Quantize rounds f to 8 decimal places, the precision every float in a
// CLARITY artifact is stored at (§2.1, §8 "8-decimal quantization"). It
// fails on a non-finite input rather than silently producing NaN/Inf in a
// structure that is about to be serialized.
func Quantize(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, NewSerializationError("quantize", "value is not finite")
	}
	const scale = 1e8
	return math.Round(f*scale) / scale, nil
}

// MustQuantize is Quantize for call sites that already know the input is
// finite (e.g. the output of an arithmetic mean over already-quantized
// inputs). It panics on a non-finite input — a programmer error, not a
// caller-supplied one.
func MustQuantize(f float64) float64 {
	q, err := Quantize(f)
	if err != nil {
		panic(err)
	}
	return q
}

// IsQuantized reports whether f is already exactly representable at 8
// decimal places — the round-trip property §8 tests against.
func IsQuantized(f float64) bool {
	q, err := Quantize(f)
	if err != nil {
		return false
	}
	return q == f
}

// MarshalCanonical serializes v with sorted object keys, compact separators,
// and every float pre-rounded to 8 decimals, so that re-serializing an
// already-canonical value yields byte-identical output (§4.1).
//
// The encoder works by marshaling v through the standard library once, then
// decoding into a generic interface{} tree and re-marshaling it: Go's
// encoding/json always emits map[string]interface{} keys in sorted order
// and strips incidental whitespace, which is exactly the canonical form
// this package promises. A value containing NaN/Inf fails at the first
// marshal; json.Marshal itself rejects those floats, so that failure is
// wrapped as a SerializationError here rather than bubbling up as a raw
// encoding/json error.
func MarshalCanonical(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, NewSerializationError("marshal", err.Error())
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, NewSerializationError("round-trip decode", err.Error())
	}

	quantized, err := quantizeTree(generic)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(quantized); err != nil {
		return nil, NewSerializationError("canonical encode", err.Error())
	}

	// json.Encoder.Encode appends a trailing newline; the canonical form has
	// no trailing whitespace.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// quantizeTree walks a generic JSON tree (as produced by json.Unmarshal into
// interface{}) and rounds every float64 to 8 decimals, rejecting non-finite
// values and non-string map keys.
func quantizeTree(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case float64:
		return Quantize(t)
	case string, bool, nil:
		return t, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, elem := range t {
			q, err := quantizeTree(elem)
			if err != nil {
				return nil, err
			}
			out[i] = q
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, elem := range t {
			q, err := quantizeTree(elem)
			if err != nil {
				return nil, err
			}
			out[k] = q
		}
		return out, nil
	default:
		// json.Unmarshal into interface{} never produces any other
		// concrete type, and a non-string map key would already have
		// failed at the first json.Marshal.
		return nil, NewSerializationError("quantize", "unexpected value kind in canonical tree")
	}
}
