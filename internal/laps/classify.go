package laps

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pitwall-data/pitwall.report/internal/f1"
)

// FilterMode selects which laps a classification keeps.
type FilterMode string

const (
	// FilterAll keeps every lap, timed or not.
	FilterAll FilterMode = "all"
	// FilterFastest keeps laps within 3% of the fastest time.
	FilterFastest FilterMode = "fastest"
	// FilterAverage keeps laps within 2% of the mean time.
	FilterAverage FilterMode = "average"
)

// Bucket thresholds. A lap is near-fastest when its time is at most 3%
// over the session best, and near-average when it sits within 2% of the
// mean either side.
const (
	fastestWindow = 1.03
	averageWindow = 0.02
)

// ParseFilterMode validates a query-string filter value.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case FilterAll, FilterFastest, FilterAverage:
		return FilterMode(s), nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("unknown filter mode %q (want all, fastest or average)", s)
}

// PaceStats summarizes the timed laps of one driver. StdPace is the
// consistency metric: lower means more uniform pace. CoV is the
// coefficient of variation (StdPace / MeanPace).
type PaceStats struct {
	FastestLap float64 `json:"fastest_lap"`
	SlowestLap float64 `json:"slowest_lap"`
	MeanPace   float64 `json:"mean_pace"`
	MedianPace float64 `json:"median_pace"`
	StdPace    float64 `json:"std_pace"`
	CoV        float64 `json:"cov"`
	TimedLaps  int     `json:"timed_laps"`
}

// Classification is the result of filtering one driver's laps.
type Classification struct {
	Filtered []f1.Lap  `json:"filtered"`
	Stats    PaceStats `json:"stats"`
}

// Stats computes pace statistics over the laps with a recorded time.
// Returns f1.ErrInsufficientData when no lap is timed.
func Stats(in []f1.Lap) (PaceStats, error) {
	times := timedTimes(in)
	if len(times) == 0 {
		return PaceStats{}, fmt.Errorf("pace stats: %w", f1.ErrInsufficientData)
	}

	s := PaceStats{
		FastestLap: times[0],
		SlowestLap: times[0],
		MeanPace:   stat.Mean(times, nil),
		MedianPace: median(times),
		TimedLaps:  len(times),
	}
	for _, t := range times[1:] {
		s.FastestLap = math.Min(s.FastestLap, t)
		s.SlowestLap = math.Max(s.SlowestLap, t)
	}

	// Sample standard deviation needs at least two observations.
	if len(times) > 1 {
		s.StdPace = stat.StdDev(times, nil)
	}
	if s.MeanPace > 0 {
		s.CoV = s.StdPace / s.MeanPace
	}
	return s, nil
}

// Classify filters laps by mode and attaches the pace statistics computed
// over the timed laps. Untimed laps are excluded from statistics and from
// the fastest/average buckets but survive FilterAll untouched.
func Classify(in []f1.Lap, mode FilterMode) (Classification, error) {
	stats, err := Stats(in)
	if err != nil {
		return Classification{}, err
	}

	var filtered []f1.Lap
	switch mode {
	case FilterAll:
		filtered = make([]f1.Lap, len(in))
		copy(filtered, in)
	case FilterFastest:
		cutoff := stats.FastestLap * fastestWindow
		for _, lap := range in {
			if lap.Timed() && *lap.Time <= cutoff {
				filtered = append(filtered, lap)
			}
		}
	case FilterAverage:
		window := stats.MeanPace * averageWindow
		for _, lap := range in {
			if lap.Timed() && math.Abs(*lap.Time-stats.MeanPace) <= window {
				filtered = append(filtered, lap)
			}
		}
	default:
		return Classification{}, fmt.Errorf("unknown filter mode %q", mode)
	}

	return Classification{Filtered: filtered, Stats: stats}, nil
}

// median is the middle value of the sorted times, averaging the two middle
// values for even counts.
func median(times []float64) float64 {
	sorted := make([]float64, len(times))
	copy(sorted, times)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
