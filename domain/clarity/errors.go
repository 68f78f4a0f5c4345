package clarity

import (
	"fmt"

	apperrors "clarity/internal/errors"
)

// Every engine in the core fails with one of these ten structured error
// types (§7). Each embeds *apperrors.AppError for its Code, Message and
// Cause fields and its Error/Unwrap methods, and adds the locating
// fields the corresponding engine contract promises.

// SerializationError — non-finite float, invalid key, or encoding failure
// in the canonical encoder (§4.1).
type SerializationError struct {
	*apperrors.AppError
	Stage string
}

func NewSerializationError(stage, reason string) *SerializationError {
	return &SerializationError{
		AppError: apperrors.New("SERIALIZATION_ERROR", fmt.Sprintf("serialization failed at %s: %s", stage, reason)),
		Stage:    stage,
	}
}

// PerturbationError — undecodable image, unsupported axis, or out-of-range
// value (§4.2).
type PerturbationError struct {
	*apperrors.AppError
	Axis  string
	Value string
}

func NewPerturbationError(axis, value, reason string) *PerturbationError {
	return &PerturbationError{
		AppError: apperrors.New("PERTURBATION_ERROR", fmt.Sprintf("perturbation %s=%s failed: %s", axis, value, reason)),
		Axis:     axis,
		Value:    value,
	}
}

// AdapterError — model load failure, device OOM, degenerate output, or a
// seeding-discipline violation detected via logits-summary divergence
// (§4.3).
type AdapterError struct {
	*apperrors.AppError
	Seed int64
}

func NewAdapterError(seed int64, reason string) *AdapterError {
	return &AdapterError{
		AppError: apperrors.New("ADAPTER_ERROR", fmt.Sprintf("adapter call with seed %d failed: %s", seed, reason)),
		Seed:     seed,
	}
}

// SweepError — any single-run failure; wraps the underlying error and
// identifies the offending (axis, value, seed) (§4.4).
type SweepError struct {
	*apperrors.AppError
	Axis  string
	Value string
	Seed  int64
}

func NewSweepError(axis, value string, seed int64, cause error) *SweepError {
	return &SweepError{
		AppError: &apperrors.AppError{
			Code:    "SWEEP_ERROR",
			Message: fmt.Sprintf("run (axis=%s, value=%s, seed=%d) failed", axis, value, seed),
			Cause:   cause,
		},
		Axis:  axis,
		Value: value,
		Seed:  seed,
	}
}

// MetricComputationError — empty sweep, missing trace pack, no extractable
// answer, or missing baseline (§4.5).
type MetricComputationError struct {
	*apperrors.AppError
	RunPath string
}

func NewMetricComputationError(runPath, reason string) *MetricComputationError {
	return &MetricComputationError{
		AppError: apperrors.New("METRIC_COMPUTATION_ERROR", fmt.Sprintf("metric computation failed for %s: %s", runPath, reason)),
		RunPath:  runPath,
	}
}

// SurfaceComputationError — axis or value mismatch between ESI and Drift,
// or a non-finite input (§4.6).
type SurfaceComputationError struct {
	*apperrors.AppError
	Axis string
}

func NewSurfaceComputationError(axis, reason string) *SurfaceComputationError {
	return &SurfaceComputationError{
		AppError: apperrors.New("SURFACE_COMPUTATION_ERROR", fmt.Sprintf("surface computation failed for axis %s: %s", axis, reason)),
		Axis:     axis,
	}
}

// GradientComputationError — non-finite surface input (§4.7).
type GradientComputationError struct {
	*apperrors.AppError
	Axis string
}

func NewGradientComputationError(axis, reason string) *GradientComputationError {
	return &GradientComputationError{
		AppError: apperrors.New("GRADIENT_COMPUTATION_ERROR", fmt.Sprintf("gradient computation failed for axis %s: %s", axis, reason)),
		Axis:     axis,
	}
}

// CounterfactualComputationError — invalid region, missing baseline image,
// or a propagated re-sweep failure (§4.8).
type CounterfactualComputationError struct {
	*apperrors.AppError
	RegionID string
}

func NewCounterfactualComputationError(regionID string, cause error) *CounterfactualComputationError {
	return &CounterfactualComputationError{
		AppError: &apperrors.AppError{
			Code:    "COUNTERFACTUAL_COMPUTATION_ERROR",
			Message: fmt.Sprintf("counterfactual probe for region %s failed", regionID),
			Cause:   cause,
		},
		RegionID: regionID,
	}
}

// OverlayComputationError — malformed evidence map: non-rectangular,
// empty, or non-finite (§4.9).
type OverlayComputationError struct {
	*apperrors.AppError
}

func NewOverlayComputationError(reason string) *OverlayComputationError {
	return &OverlayComputationError{
		AppError: apperrors.New("OVERLAY_COMPUTATION_ERROR", fmt.Sprintf("overlay computation failed: %s", reason)),
	}
}

// IntegrityError — bundle_sha256 recomputation does not match the stored
// value (§4.10).
type IntegrityError struct {
	*apperrors.AppError
	Expected string
	Actual   string
}

func NewIntegrityError(expected, actual string) *IntegrityError {
	return &IntegrityError{
		AppError: apperrors.New("INTEGRITY_ERROR", fmt.Sprintf("bundle hash mismatch: expected %s, got %s", expected, actual)),
		Expected: expected,
		Actual:   actual,
	}
}
