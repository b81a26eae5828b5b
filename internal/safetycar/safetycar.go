// Package safetycar derives safety-car, virtual-safety-car and red-flag
// periods from race-control messages, with a lap-time anomaly fallback for
// sessions where race control data is missing.
package safetycar

import (
	"sort"
	"strings"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/laps"
)

// Laps slower than this multiple of the driver's median indicate a
// neutralized lap when no race-control messages are available.
const anomalyFactor = 1.5

type incident struct {
	lap    int
	typ    f1.PeriodType
	reason string
}

// classify maps one race-control message to a period type. The VSC check
// must run before the safety-car check: "VIRTUAL SAFETY CAR" contains
// "SAFETY CAR".
func classify(message string) (f1.PeriodType, bool) {
	upper := strings.ToUpper(message)
	switch {
	case strings.Contains(upper, "RED FLAG"):
		return f1.PeriodRedFlag, true
	case strings.Contains(upper, "VIRTUAL SAFETY CAR"), strings.Contains(upper, "VSC"):
		return f1.PeriodVSC, true
	case strings.Contains(upper, "SAFETY CAR"), strings.Contains(upper, "SC DEPLOYED"):
		return f1.PeriodSafetyCar, true
	}
	return "", false
}

// Derive extracts intervention periods from race-control messages. When no
// message yields an incident, it falls back to flagging laps slower than
// 1.5x each driver's median lap time. Incidents are deduplicated by
// (lap, type), sorted by lap, and consecutive laps of the same type merge
// into a single period.
func Derive(messages []f1.RaceControlMessage, lapsByDriver map[string][]f1.Lap) []f1.SafetyCarPeriod {
	var incidents []incident
	for _, msg := range messages {
		typ, ok := classify(msg.Message)
		if !ok || msg.Lap == nil {
			continue
		}
		incidents = append(incidents, incident{lap: *msg.Lap, typ: typ, reason: msg.Message})
	}

	if len(incidents) == 0 {
		incidents = anomalyIncidents(lapsByDriver)
	}

	return mergePeriods(dedupe(incidents))
}

// anomalyIncidents flags laps with a significant lap-time increase over
// the driver's median. Needs more than three laps per driver to avoid
// flagging formation-style noise.
func anomalyIncidents(lapsByDriver map[string][]f1.Lap) []incident {
	seen := make(map[int]bool)
	var out []incident
	for _, driverLaps := range lapsByDriver {
		if len(driverLaps) <= 3 {
			continue
		}
		stats, err := laps.Stats(driverLaps)
		if err != nil {
			continue
		}
		for _, lap := range driverLaps {
			if !lap.Timed() || *lap.Time <= stats.MedianPace*anomalyFactor {
				continue
			}
			if seen[lap.LapNumber] {
				continue
			}
			seen[lap.LapNumber] = true
			out = append(out, incident{
				lap:    lap.LapNumber,
				typ:    f1.PeriodSafetyCar,
				reason: "significant lap time increase detected",
			})
		}
	}
	return out
}

func dedupe(in []incident) []incident {
	type key struct {
		lap int
		typ f1.PeriodType
	}
	seen := make(map[key]bool, len(in))
	out := make([]incident, 0, len(in))
	for _, inc := range in {
		k := key{inc.lap, inc.typ}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, inc)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].lap < out[j].lap })
	return out
}

// mergePeriods collapses consecutive flagged laps of the same type into
// one period, keeping the first lap's reason.
func mergePeriods(in []incident) []f1.SafetyCarPeriod {
	var out []f1.SafetyCarPeriod
	for _, inc := range in {
		if n := len(out); n > 0 && out[n-1].Type == inc.typ && out[n-1].EndLap+1 >= inc.lap {
			if inc.lap > out[n-1].EndLap {
				out[n-1].EndLap = inc.lap
			}
			continue
		}
		out = append(out, f1.SafetyCarPeriod{
			StartLap: inc.lap,
			EndLap:   inc.lap,
			Type:     inc.typ,
			Reason:   inc.reason,
		})
	}
	return out
}
