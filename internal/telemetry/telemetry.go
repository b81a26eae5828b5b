// Package telemetry processes per-distance telemetry traces: distance-bin
// speed summaries and corner detection.
package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pitwall-data/pitwall.report/internal/f1"
)

// SpeedBin summarizes the samples falling into one distance bin.
type SpeedBin struct {
	DistanceStart float64 `json:"distance_start"` // bin lower bound, metres
	MeanSpeed     float64 `json:"mean_speed"`
	MaxSpeed      float64 `json:"max_speed"`
	MinSpeed      float64 `json:"min_speed"`
	MeanThrottle  float64 `json:"mean_throttle"`
	BrakeFraction float64 `json:"brake_fraction"`
	Samples       int     `json:"samples"`
}

// SpeedTrace buckets a telemetry series into fixed-width distance bins and
// summarizes speed, throttle and braking per bin. binMeters defaults to
// 100 when non-positive.
func SpeedTrace(series f1.TelemetrySeries, binMeters float64) []SpeedBin {
	if binMeters <= 0 {
		binMeters = 100
	}
	n := series.Len()
	if n == 0 {
		return nil
	}

	type acc struct {
		speeds    []float64
		throttles []float64
		braking   int
	}
	bins := make(map[float64]*acc)
	for i := 0; i < n; i++ {
		start := math.Floor(series.Distance[i]/binMeters) * binMeters
		a := bins[start]
		if a == nil {
			a = &acc{}
			bins[start] = a
		}
		a.speeds = append(a.speeds, series.Speed[i])
		a.throttles = append(a.throttles, series.Throttle[i])
		if series.Brake[i] {
			a.braking++
		}
	}

	out := make([]SpeedBin, 0, len(bins))
	for start, a := range bins {
		bin := SpeedBin{
			DistanceStart: start,
			MeanSpeed:     stat.Mean(a.speeds, nil),
			MeanThrottle:  stat.Mean(a.throttles, nil),
			BrakeFraction: float64(a.braking) / float64(len(a.speeds)),
			Samples:       len(a.speeds),
			MinSpeed:      a.speeds[0],
			MaxSpeed:      a.speeds[0],
		}
		for _, s := range a.speeds[1:] {
			bin.MinSpeed = math.Min(bin.MinSpeed, s)
			bin.MaxSpeed = math.Max(bin.MaxSpeed, s)
		}
		out = append(out, bin)
	}

	// map iteration order is random
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceStart < out[j].DistanceStart })
	return out
}

// Corner is a track section where speed dropped below the detection
// threshold, bounded by entry and exit distances.
type Corner struct {
	StartDistance float64 `json:"start_distance"`
	EndDistance   float64 `json:"end_distance"`
	MinSpeed      float64 `json:"min_speed"`
}

// DetectCorners scans the trace for sections where speed falls below
// thresholdKPH. A section still open at the trace end is closed at the
// final sample.
func DetectCorners(series f1.TelemetrySeries, thresholdKPH float64) []Corner {
	if thresholdKPH <= 0 {
		thresholdKPH = 200
	}
	n := series.Len()

	var corners []Corner
	inCorner := false
	var current Corner
	for i := 0; i < n; i++ {
		speed := series.Speed[i]
		switch {
		case speed < thresholdKPH && !inCorner:
			inCorner = true
			current = Corner{
				StartDistance: series.Distance[i],
				MinSpeed:      speed,
			}
		case inCorner && speed < thresholdKPH:
			current.MinSpeed = math.Min(current.MinSpeed, speed)
		case inCorner && speed >= thresholdKPH:
			inCorner = false
			current.EndDistance = series.Distance[i]
			corners = append(corners, current)
		}
	}
	if inCorner && n > 0 {
		current.EndDistance = series.Distance[n-1]
		corners = append(corners, current)
	}
	return corners
}
