// Package stints reconstructs tyre stints from a driver's lap sequence and
// pit-stop events. Provider compound fields are frequently missing on in
// and out laps, so stint compounds are recovered through an ordered
// fallback chain rather than guessed.
package stints

import (
	"sort"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/laps"
	"github.com/pitwall-data/pitwall.report/internal/monitoring"
)

// compoundSource is one step of the fallback chain: it yields a compound or
// nil when its source has no evidence.
type compoundSource func() *f1.Compound

// resolveCompound evaluates sources in order and returns the first non-nil
// result, or terminal when every source comes up empty.
func resolveCompound(terminal f1.Compound, sources ...compoundSource) f1.Compound {
	for _, source := range sources {
		if c := source(); c != nil {
			return *c
		}
	}
	return terminal
}

// firstCompound returns the first recorded compound in the lap slice.
func firstCompound(in []f1.Lap) *f1.Compound {
	for _, lap := range in {
		if lap.Compound != nil {
			return lap.Compound
		}
	}
	return nil
}

// lapsBetween returns the laps with numbers in [startLap, endLap]. The
// input must already be in lap order.
func lapsBetween(in []f1.Lap, startLap, endLap int) []f1.Lap {
	var out []f1.Lap
	for _, lap := range in {
		if lap.LapNumber > endLap {
			break
		}
		if lap.LapNumber >= startLap {
			out = append(out, lap)
		}
	}
	return out
}

// sanitize sorts pit stops ascending by lap and drops malformed entries
// (non-positive or duplicate lap numbers). Malformed stops are logged and
// skipped so reconstruction stays best-effort.
func sanitize(stops []f1.PitStop) []f1.PitStop {
	sorted := make([]f1.PitStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Lap < sorted[j].Lap
	})

	out := sorted[:0]
	lastLap := 0
	for _, stop := range sorted {
		if stop.Lap <= 0 {
			monitoring.Logf("stints: skipping malformed pit stop with lap %d", stop.Lap)
			continue
		}
		if len(out) > 0 && stop.Lap == lastLap {
			monitoring.Logf("stints: skipping duplicate pit stop on lap %d", stop.Lap)
			continue
		}
		out = append(out, stop)
		lastLap = stop.Lap
	}
	return out
}

// Reconstruct partitions a driver's laps into tyre stints bounded by pit
// stops. The resulting stints cover the observed lap range contiguously
// with no overlap; a stint whose bounds collapse (a pit stop recorded
// before any laps exist) is skipped rather than emitted degenerate. A pit
// stop lap outside the observed range still bounds a stint; that stint is
// simply empty of lap data.
//
// The stop lap itself opens the following stint: the provider attaches the
// stop record to the out-lap, which already runs on the new tyres. This is
// also the only reading under which the reconstructed ranges partition
// [min, max] exactly.
func Reconstruct(lapsIn []f1.Lap, stops []f1.PitStop) []f1.Stint {
	ordered := laps.Normalize(lapsIn)
	minLap, maxLap, ok := laps.LapRange(ordered)
	if !ok {
		return nil
	}

	clean := sanitize(stops)
	raceFirst := func() *f1.Compound { return firstCompound(ordered) }

	if len(clean) == 0 {
		return []f1.Stint{{
			Compound: resolveCompound(f1.Medium, raceFirst),
			StartLap: minLap,
			EndLap:   maxLap,
			Laps:     ordered,
		}}
	}

	var out []f1.Stint
	start := minLap
	var prev *f1.PitStop
	for i := range clean {
		stop := clean[i]
		end := stop.Lap - 1
		if start <= end {
			segment := lapsBetween(ordered, start, end)
			prevBefore := func() *f1.Compound {
				if prev != nil {
					return prev.CompoundBefore
				}
				return nil
			}
			out = append(out, f1.Stint{
				Compound: resolveCompound(f1.Medium,
					func() *f1.Compound { return firstCompound(segment) },
					prevBefore,
					raceFirst,
				),
				StartLap: start,
				EndLap:   end,
				Laps:     segment,
			})
		}
		if stop.Lap > start {
			start = stop.Lap
		}
		prev = &clean[i]
	}

	// Final stint: the run from the last stop to the end of the race. New
	// tyres here default to HARD rather than MEDIUM; the asymmetry follows
	// the observed behaviour and end-of-race compound conventions.
	if start <= maxLap {
		segment := lapsBetween(ordered, start, maxLap)
		last := clean[len(clean)-1]
		out = append(out, f1.Stint{
			Compound: resolveCompound(f1.Hard,
				func() *f1.Compound { return firstCompound(segment) },
				func() *f1.Compound { return last.CompoundBefore },
			),
			StartLap: start,
			EndLap:   maxLap,
			Laps:     segment,
		})
	}

	return out
}
