// Package laps normalizes raw per-lap records and classifies them into
// pace buckets with summary statistics.
package laps

import (
	"sort"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/monitoring"
)

// Normalize returns the laps sorted ascending by lap number with duplicate
// lap numbers dropped (first record wins). Gaps in the lap-number sequence
// are preserved: a missing number means an untimed or deleted lap and must
// never be re-indexed away.
func Normalize(in []f1.Lap) []f1.Lap {
	out := make([]f1.Lap, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LapNumber < out[j].LapNumber
	})

	deduped := out[:0]
	lastLap := -1
	for _, lap := range out {
		if lap.LapNumber == lastLap {
			monitoring.Logf("normalize: dropping duplicate lap %d", lap.LapNumber)
			continue
		}
		deduped = append(deduped, lap)
		lastLap = lap.LapNumber
	}
	return deduped
}

// Clean returns only the laps with a recorded time, in order. This is the
// view used for pace charts where untimed laps are noise.
func Clean(in []f1.Lap) []f1.Lap {
	out := make([]f1.Lap, 0, len(in))
	for _, lap := range in {
		if lap.Timed() {
			out = append(out, lap)
		}
	}
	return out
}

// timedTimes extracts the recorded lap times in lap order.
func timedTimes(in []f1.Lap) []float64 {
	times := make([]float64, 0, len(in))
	for _, lap := range in {
		if lap.Timed() {
			times = append(times, *lap.Time)
		}
	}
	return times
}

// LapRange returns the minimum and maximum observed lap numbers. ok is
// false for an empty slice.
func LapRange(in []f1.Lap) (minLap, maxLap int, ok bool) {
	if len(in) == 0 {
		return 0, 0, false
	}
	minLap, maxLap = in[0].LapNumber, in[0].LapNumber
	for _, lap := range in[1:] {
		if lap.LapNumber < minLap {
			minLap = lap.LapNumber
		}
		if lap.LapNumber > maxLap {
			maxLap = lap.LapNumber
		}
	}
	return minLap, maxLap, true
}
