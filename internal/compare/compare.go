// Package compare computes head-to-head metrics between two drivers'
// sessions: lap and sector gaps, faster-lap counts, per-lap deltas and
// aligned telemetry traces.
package compare

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/laps"
)

// pairedLap is one lap number both drivers completed with a recorded time.
type pairedLap struct {
	lapNumber int
	time1     float64
	time2     float64
}

// pairByLapNumber joins two lap sets on lap number, keeping only laps
// timed on both sides. Inputs are normalized first so provider ordering
// does not matter.
func pairByLapNumber(laps1, laps2 []f1.Lap) []pairedLap {
	byNumber := make(map[int]f1.Lap, len(laps2))
	for _, lap := range laps.Normalize(laps2) {
		byNumber[lap.LapNumber] = lap
	}

	var pairs []pairedLap
	for _, lap := range laps.Normalize(laps1) {
		other, ok := byNumber[lap.LapNumber]
		if !ok || !lap.Timed() || !other.Timed() {
			continue
		}
		pairs = append(pairs, pairedLap{
			lapNumber: lap.LapNumber,
			time1:     *lap.Time,
			time2:     *other.Time,
		})
	}
	return pairs
}

// sectorGap computes the mean gap for one sector over laps where both
// sides recorded that sector. Returns 0 when no lap qualifies. Inputs are
// normalized so duplicate lap numbers resolve the same way as the lap
// pairing above: first record wins.
func sectorGap(laps1, laps2 []f1.Lap, pick func(f1.Lap) *float64) float64 {
	byNumber := make(map[int]f1.Lap, len(laps2))
	for _, lap := range laps.Normalize(laps2) {
		byNumber[lap.LapNumber] = lap
	}

	var s1, s2 []float64
	for _, lap := range laps.Normalize(laps1) {
		other, ok := byNumber[lap.LapNumber]
		if !ok {
			continue
		}
		v1, v2 := pick(lap), pick(other)
		if v1 == nil || v2 == nil {
			continue
		}
		s1 = append(s1, *v1)
		s2 = append(s2, *v2)
	}
	if len(s1) == 0 {
		return 0
	}
	return stat.Mean(s1, nil) - stat.Mean(s2, nil)
}

// consistency is the sample standard deviation of the timed laps; zero
// when fewer than two laps are timed.
func consistency(in []f1.Lap) float64 {
	var times []float64
	for _, lap := range in {
		if lap.Timed() {
			times = append(times, *lap.Time)
		}
	}
	if len(times) < 2 {
		return 0
	}
	return stat.StdDev(times, nil)
}

// Drivers compares two drivers' lap sets for the same session. All gaps
// are signed driver1 − driver2: negative means driver1 was faster.
// Returns f1.ErrNoComparableLaps when the drivers share zero paired timed
// laps.
func Drivers(laps1, laps2 []f1.Lap) (f1.Comparison, error) {
	pairs := pairByLapNumber(laps1, laps2)
	if len(pairs) == 0 {
		return f1.Comparison{}, fmt.Errorf("compare drivers: %w", f1.ErrNoComparableLaps)
	}

	t1 := make([]float64, len(pairs))
	t2 := make([]float64, len(pairs))
	c := f1.Comparison{}
	for i, p := range pairs {
		t1[i] = p.time1
		t2[i] = p.time2
		if p.time1 < p.time2 {
			c.Driver1FasterLaps++
		} else if p.time2 < p.time1 {
			c.Driver2FasterLaps++
		}
	}

	c.AvgGap = stat.Mean(t1, nil) - stat.Mean(t2, nil)
	c.FastestLapGap = minOf(t1) - minOf(t2)
	c.Sector1Gap = sectorGap(laps1, laps2, func(l f1.Lap) *float64 { return l.Sector1 })
	c.Sector2Gap = sectorGap(laps1, laps2, func(l f1.Lap) *float64 { return l.Sector2 })
	c.Sector3Gap = sectorGap(laps1, laps2, func(l f1.Lap) *float64 { return l.Sector3 })
	c.Driver1Consistency = consistency(laps1)
	c.Driver2Consistency = consistency(laps2)
	return c, nil
}

func minOf(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// LapDelta is one lap both drivers completed, with the signed time
// difference (driver1 − driver2).
type LapDelta struct {
	LapNumber int     `json:"lap_number"`
	Time1     float64 `json:"time1"`
	Time2     float64 `json:"time2"`
	Delta     float64 `json:"delta"`
}

// LapDeltas computes lap-by-lap time deltas over the laps both drivers
// completed with a recorded time.
func LapDeltas(laps1, laps2 []f1.Lap) []LapDelta {
	pairs := pairByLapNumber(laps1, laps2)
	out := make([]LapDelta, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, LapDelta{
			LapNumber: p.lapNumber,
			Time1:     p.time1,
			Time2:     p.time2,
			Delta:     p.time1 - p.time2,
		})
	}
	return out
}
