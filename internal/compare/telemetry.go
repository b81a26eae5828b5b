package compare

import (
	"fmt"

	"github.com/pitwall-data/pitwall.report/internal/f1"
)

// AlignedSeries joins two telemetry traces sample-by-sample. Alignment is
// by index with truncation to the shorter series, not by interpolating
// onto a common distance grid; laps with different distance coverage will
// drift apart towards the end of the trace. Kept deliberately: the charts
// reproduce the behaviour of the data they were validated against.
type AlignedSeries struct {
	Distance   []float64 `json:"distance"` // driver1's distances, zero-based
	Speed1     []float64 `json:"speed1"`
	Speed2     []float64 `json:"speed2"`
	SpeedDelta []float64 `json:"speed_delta"` // speed1 − speed2
	Throttle1  []float64 `json:"throttle1"`
	Throttle2  []float64 `json:"throttle2"`
	Brake1     []bool    `json:"brake1"`
	Brake2     []bool    `json:"brake2"`
	Gear1      []int     `json:"gear1"`
	Gear2      []int     `json:"gear2"`
	RPM1       []float64 `json:"rpm1"`
	RPM2       []float64 `json:"rpm2"`
	DRS1       []bool    `json:"drs1"`
	DRS2       []bool    `json:"drs2"`
}

// NormalizeDistance shifts a distance axis so it starts at zero. Provider
// traces can begin mid-track when the timing loop sits away from the start
// line.
func NormalizeDistance(distance []float64) []float64 {
	if len(distance) == 0 {
		return nil
	}
	minD := distance[0]
	for _, d := range distance[1:] {
		if d < minD {
			minD = d
		}
	}
	out := make([]float64, len(distance))
	for i, d := range distance {
		out[i] = d - minD
	}
	return out
}

// AlignTelemetry truncates both series to the shorter sample count and
// computes the per-sample speed delta. Returns f1.ErrInsufficientData when
// either series is empty.
func AlignTelemetry(s1, s2 f1.TelemetrySeries) (AlignedSeries, error) {
	n := s1.Len()
	if m := s2.Len(); m < n {
		n = m
	}
	if n == 0 {
		return AlignedSeries{}, fmt.Errorf("align telemetry: empty series: %w", f1.ErrInsufficientData)
	}

	out := AlignedSeries{
		Distance:   NormalizeDistance(s1.Distance[:n]),
		Speed1:     append([]float64(nil), s1.Speed[:n]...),
		Speed2:     append([]float64(nil), s2.Speed[:n]...),
		SpeedDelta: make([]float64, n),
		Throttle1:  append([]float64(nil), s1.Throttle[:n]...),
		Throttle2:  append([]float64(nil), s2.Throttle[:n]...),
		Brake1:     append([]bool(nil), s1.Brake[:n]...),
		Brake2:     append([]bool(nil), s2.Brake[:n]...),
		Gear1:      append([]int(nil), s1.Gear[:n]...),
		Gear2:      append([]int(nil), s2.Gear[:n]...),
		RPM1:       append([]float64(nil), s1.RPM[:n]...),
		RPM2:       append([]float64(nil), s2.RPM[:n]...),
		DRS1:       takeBools(s1.DRS, n),
		DRS2:       takeBools(s2.DRS, n),
	}
	for i := 0; i < n; i++ {
		out.SpeedDelta[i] = s1.Speed[i] - s2.Speed[i]
	}
	return out, nil
}

// takeBools copies up to n samples. DRS is optional in provider payloads
// and may be absent or shorter than the other parallel arrays.
func takeBools(v []bool, n int) []bool {
	if len(v) < n {
		n = len(v)
	}
	if n == 0 {
		return nil
	}
	return append([]bool(nil), v[:n]...)
}

// Len returns the aligned sample count.
func (a AlignedSeries) Len() int { return len(a.SpeedDelta) }
