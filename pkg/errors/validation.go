package errors

import "math"

// ValidateSolveParams validates the parameters shared by all solve and score
// operations. It rejects values the downstream dispatcher or evaluator would
// silently misbehave on.
//
// The validation rules:
//   - k must be at least 2 (a single part makes connectivity trivially zero)
//   - epsilon must be non-negative and finite
//   - effort must be in [0, 5]
func ValidateSolveParams(k uint32, epsilon float64, effort uint32) error {
	if k < 2 {
		return New(ErrCodeInvalidParams, "k must be at least 2, got %d", k)
	}
	if epsilon < 0 || math.IsNaN(epsilon) || math.IsInf(epsilon, 0) {
		return New(ErrCodeInvalidParams, "epsilon must be a non-negative finite number, got %v", epsilon)
	}
	if effort > 5 {
		return New(ErrCodeInvalidParams, "effort must be in [0, 5], got %d", effort)
	}
	return nil
}

// ValidateTrack validates a track size (number of hyperedges in a benchmark
// instance). Zero-sized tracks are rejected; everything else maps onto one of
// the solver variant buckets.
func ValidateTrack(track uint32) error {
	if track == 0 {
		return New(ErrCodeInvalidParams, "track size must be positive")
	}
	return nil
}
