package laps

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pitwall-data/pitwall.report/internal/f1"
)

// SectorSummary aggregates one sector's times across a lap set.
type SectorSummary struct {
	Sector int     `json:"sector"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// Sectors summarizes the three sectors independently, each over the laps
// where that sector was recorded. A sector with no data keeps zero values
// and Count 0.
func Sectors(in []f1.Lap) []SectorSummary {
	pick := func(lap f1.Lap, sector int) *float64 {
		switch sector {
		case 1:
			return lap.Sector1
		case 2:
			return lap.Sector2
		default:
			return lap.Sector3
		}
	}

	out := make([]SectorSummary, 0, 3)
	for sector := 1; sector <= 3; sector++ {
		var values []float64
		for _, lap := range in {
			if v := pick(lap, sector); v != nil {
				values = append(values, *v)
			}
		}
		summary := SectorSummary{Sector: sector, Count: len(values)}
		if len(values) > 0 {
			summary.Mean = stat.Mean(values, nil)
			summary.Min = values[0]
			summary.Max = values[0]
			for _, v := range values[1:] {
				summary.Min = math.Min(summary.Min, v)
				summary.Max = math.Max(summary.Max, v)
			}
		}
		out = append(out, summary)
	}
	return out
}

// OptimalLap is the theoretical best lap built from the best individual
// sectors of a lap set.
type OptimalLap struct {
	Sector1 float64 `json:"sector1"`
	Sector2 float64 `json:"sector2"`
	Sector3 float64 `json:"sector3"`
	Total   float64 `json:"total"`
}

// Optimal computes the theoretical optimal lap. Every sector needs at
// least one recorded time; otherwise f1.ErrInsufficientData.
func Optimal(in []f1.Lap) (OptimalLap, error) {
	summaries := Sectors(in)
	for _, s := range summaries {
		if s.Count == 0 {
			return OptimalLap{}, fmt.Errorf("optimal lap: sector %d has no times: %w", s.Sector, f1.ErrInsufficientData)
		}
	}
	opt := OptimalLap{
		Sector1: summaries[0].Min,
		Sector2: summaries[1].Min,
		Sector3: summaries[2].Min,
	}
	opt.Total = opt.Sector1 + opt.Sector2 + opt.Sector3
	return opt, nil
}

// StintDegradation describes how lap times evolved over one stint.
type StintDegradation struct {
	Compound          f1.Compound `json:"compound"`
	StartLap          int         `json:"start_lap"`
	EndLap            int         `json:"end_lap"`
	StintLength       int         `json:"stint_length"`
	AvgLapTime        float64     `json:"avg_lap_time"`
	FirstLapTime      float64     `json:"first_lap_time"`
	LastLapTime       float64     `json:"last_lap_time"`
	DegradationPerLap float64     `json:"degradation_per_lap"`
}

// Degradation computes tyre degradation per stint: the lap-time increase
// per lap between the first and last timed lap of the stint. Stints with
// fewer than two timed laps report zero degradation.
func Degradation(stints []f1.Stint) []StintDegradation {
	out := make([]StintDegradation, 0, len(stints))
	for _, stint := range stints {
		times := timedTimes(stint.Laps)
		d := StintDegradation{
			Compound:    stint.Compound,
			StartLap:    stint.StartLap,
			EndLap:      stint.EndLap,
			StintLength: len(times),
		}
		if len(times) > 0 {
			d.AvgLapTime = stat.Mean(times, nil)
			d.FirstLapTime = times[0]
			d.LastLapTime = times[len(times)-1]
		}
		if len(times) > 1 {
			d.DegradationPerLap = (d.LastLapTime - d.FirstLapTime) / float64(len(times))
		}
		out = append(out, d)
	}
	return out
}
