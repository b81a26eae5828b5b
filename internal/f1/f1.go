// Package f1 defines the domain model shared by the derivation packages:
// laps, pit stops, stints, telemetry series and the session document
// returned by the upstream timing-data provider.
package f1

// Compound is a tyre compound classification.
type Compound string

// Tyre compounds as reported by the timing-data provider.
const (
	Soft         Compound = "SOFT"
	Medium       Compound = "MEDIUM"
	Hard         Compound = "HARD"
	Intermediate Compound = "INTERMEDIATE"
	Wet          Compound = "WET"
)

// IsValid reports whether c is one of the known compounds.
func (c Compound) IsValid() bool {
	switch c {
	case Soft, Medium, Hard, Intermediate, Wet:
		return true
	}
	return false
}

// Lap is a single timed lap. Time and sector fields are nil for untimed or
// incomplete laps. Lap numbers are not guaranteed contiguous: gaps indicate
// untimed or deleted laps and must be preserved, never re-indexed.
type Lap struct {
	LapNumber int       `json:"lap_number"`
	Time      *float64  `json:"time"` // seconds
	Sector1   *float64  `json:"sector1"`
	Sector2   *float64  `json:"sector2"`
	Sector3   *float64  `json:"sector3"`
	Compound  *Compound `json:"compound"`
	TyreLife  *int      `json:"tyre_life"`
}

// Timed reports whether the lap has a recorded lap time.
func (l Lap) Timed() bool { return l.Time != nil }

// PitStop is a single pit-stop event for one driver. Provider ordering is
// not guaranteed; sort by Lap before use.
type PitStop struct {
	Lap            int       `json:"lap"`
	Stint          *int      `json:"stint"`
	PitDuration    *float64  `json:"pit_duration"` // seconds
	LapTime        *float64  `json:"lap_time"`
	CompoundBefore *Compound `json:"compound_before"`
	TyreLifeBefore *int      `json:"tyre_life_before"`
}

// Stint is a contiguous run of laps on one tyre compound, bounded by pit
// stops. StartLap/EndLap are inclusive lap-number bounds; Laps holds the
// lap records observed inside those bounds (possibly empty when a pit stop
// falls outside the observed lap range).
type Stint struct {
	Compound Compound `json:"compound"`
	StartLap int      `json:"start_lap"`
	EndLap   int      `json:"end_lap"`
	Laps     []Lap    `json:"laps"`
}

// PeriodType classifies a race-control intervention.
type PeriodType string

const (
	PeriodSafetyCar PeriodType = "SafetyCar"
	PeriodVSC       PeriodType = "VSC"
	PeriodRedFlag   PeriodType = "RedFlag"
)

// SafetyCarPeriod is a race-control intervention spanning one or more laps.
type SafetyCarPeriod struct {
	StartLap int        `json:"start_lap"`
	EndLap   int        `json:"end_lap"`
	Type     PeriodType `json:"type"`
	Reason   string     `json:"reason"`
}

// Comparison aggregates gaps between two drivers over one session. All gaps
// are signed driver1 − driver2; negative means driver1 was faster.
type Comparison struct {
	AvgGap             float64 `json:"avg_gap"`
	FastestLapGap      float64 `json:"fastest_lap_gap"`
	Sector1Gap         float64 `json:"sector1_gap"`
	Sector2Gap         float64 `json:"sector2_gap"`
	Sector3Gap         float64 `json:"sector3_gap"`
	Driver1FasterLaps  int     `json:"driver1_faster_laps"`
	Driver2FasterLaps  int     `json:"driver2_faster_laps"`
	Driver1Consistency float64 `json:"driver1_consistency"`
	Driver2Consistency float64 `json:"driver2_consistency"`
}

// TelemetrySeries is a per-distance sample series for one lap. Fields are
// parallel arrays aligned by sample index, not wall-clock time, and must be
// equal length.
type TelemetrySeries struct {
	Distance []float64 `json:"distance"` // metres from lap start
	Speed    []float64 `json:"speed"`    // km/h
	Throttle []float64 `json:"throttle"` // percent
	Brake    []bool    `json:"brake"`
	Gear     []int     `json:"gear"`
	RPM      []float64 `json:"rpm"`
	DRS      []bool    `json:"drs"`
}

// Len returns the sample count, taking the shortest parallel array so that
// a truncated provider payload cannot cause an out-of-range read.
func (t TelemetrySeries) Len() int {
	n := len(t.Distance)
	for _, m := range []int{len(t.Speed), len(t.Throttle), len(t.Brake), len(t.Gear), len(t.RPM)} {
		if m < n {
			n = m
		}
	}
	return n
}

// RaceInfo is one event in a season schedule.
type RaceInfo struct {
	Round   int    `json:"round"`
	Name    string `json:"race_name"`
	Country string `json:"country"`
	Circuit string `json:"circuit"`
	Date    string `json:"date"` // YYYY-MM-DD
}

// Driver identifies a session participant.
type Driver struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// RaceControlMessage is one line from race control, used to derive
// safety-car periods.
type RaceControlMessage struct {
	Lap     *int   `json:"lap"`
	Message string `json:"message"`
}

// CircuitLayout holds track geometry sampled along one lap.
type CircuitLayout struct {
	X        []float64 `json:"x"`
	Y        []float64 `json:"y"`
	Distance []float64 `json:"distance"`
}

// FastestLap pairs a lap record with its telemetry trace.
type FastestLap struct {
	Lap       Lap             `json:"lap"`
	Telemetry TelemetrySeries `json:"telemetry"`
}

// Session is the provider's materialized document for one
// (year, round, session) key. Immutable once fetched.
type Session struct {
	Year        int                   `json:"year"`
	Round       int                   `json:"round"`
	SessionType string                `json:"session_type"` // FP1, FP2, FP3, Q, S, R
	Event       RaceInfo              `json:"event"`
	Drivers     []Driver              `json:"drivers"`
	Laps        map[string][]Lap      `json:"laps"`      // keyed by driver code
	PitStops    map[string][]PitStop  `json:"pit_stops"` // keyed by driver code
	FastestLaps map[string]FastestLap `json:"fastest_laps"`
	RaceControl []RaceControlMessage  `json:"race_control"`
	Circuit     *CircuitLayout        `json:"circuit"`
}

// DriverLaps returns the lap records for a driver code, and whether the
// driver appears in the session.
func (s *Session) DriverLaps(code string) ([]Lap, bool) {
	laps, ok := s.Laps[code]
	return laps, ok
}

// DriverPitStops returns the pit stops recorded for a driver code. A driver
// who never stopped yields an empty slice.
func (s *Session) DriverPitStops(code string) []PitStop {
	return s.PitStops[code]
}
