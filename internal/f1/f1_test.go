package f1

import "testing"

func TestCompoundIsValid(t *testing.T) {
	for _, c := range []Compound{Soft, Medium, Hard, Intermediate, Wet} {
		if !c.IsValid() {
			t.Errorf("%s.IsValid() = false", c)
		}
	}
	for _, c := range []Compound{"", "SUPERSOFT", "soft"} {
		if c.IsValid() {
			t.Errorf("%q.IsValid() = true", c)
		}
	}
}

func TestLapTimed(t *testing.T) {
	if (Lap{LapNumber: 1}).Timed() {
		t.Error("lap with nil time reports Timed")
	}
	if !(Lap{LapNumber: 1, Time: Float64(92.0)}).Timed() {
		t.Error("lap with time reports untimed")
	}
}

func TestTelemetrySeriesLen_TakesShortest(t *testing.T) {
	s := TelemetrySeries{
		Distance: make([]float64, 5),
		Speed:    make([]float64, 3),
		Throttle: make([]float64, 5),
		Brake:    make([]bool, 5),
		Gear:     make([]int, 5),
		RPM:      make([]float64, 5),
	}
	if got := s.Len(); got != 3 {
		t.Errorf("Len = %d, want 3", got)
	}
}

func TestSessionAccessors(t *testing.T) {
	s := &Session{
		Laps:     map[string][]Lap{"VER": {{LapNumber: 1}}},
		PitStops: map[string][]PitStop{"VER": {{Lap: 10}}},
	}

	laps, ok := s.DriverLaps("VER")
	if !ok || len(laps) != 1 {
		t.Errorf("DriverLaps(VER) = %v, %v", laps, ok)
	}
	if _, ok := s.DriverLaps("LEC"); ok {
		t.Error("DriverLaps(LEC) reported ok for unknown driver")
	}

	if got := s.DriverPitStops("LEC"); len(got) != 0 {
		t.Errorf("DriverPitStops(LEC) = %v, want empty", got)
	}
}
