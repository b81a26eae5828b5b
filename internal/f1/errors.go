package f1

import "errors"

// Derivation error taxonomy. These are per-request conditions on
// already-materialized data; retrying is never meaningful.
var (
	// ErrInsufficientData means fewer than one timed lap was available for
	// a required statistic.
	ErrInsufficientData = errors.New("insufficient lap data")

	// ErrNoComparableLaps means two drivers shared zero paired timed laps.
	// Deliberately distinct from ErrInsufficientData so callers can report
	// the two conditions separately.
	ErrNoComparableLaps = errors.New("no comparable laps between drivers")
)

// Float64 returns a pointer to v. Convenience for building optional fields.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// CompoundPtr returns a pointer to c.
func CompoundPtr(c Compound) *Compound { return &c }
