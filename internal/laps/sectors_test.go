package laps

import (
	"errors"
	"math"
	"testing"

	"github.com/pitwall-data/pitwall.report/internal/f1"
)

func sectorLap(number int, s1, s2, s3 float64) f1.Lap {
	return f1.Lap{
		LapNumber: number,
		Time:      f1.Float64(s1 + s2 + s3),
		Sector1:   f1.Float64(s1),
		Sector2:   f1.Float64(s2),
		Sector3:   f1.Float64(s3),
	}
}

func TestSectors(t *testing.T) {
	in := []f1.Lap{
		sectorLap(1, 30.0, 31.0, 32.0),
		sectorLap(2, 29.0, 33.0, 31.0),
		{LapNumber: 3}, // no sector data
	}
	got := Sectors(in)
	if len(got) != 3 {
		t.Fatalf("got %d summaries, want 3", len(got))
	}

	s1 := got[0]
	if s1.Sector != 1 || s1.Count != 2 || s1.Min != 29.0 || s1.Max != 30.0 {
		t.Errorf("sector 1 summary = %+v", s1)
	}
	if math.Abs(s1.Mean-29.5) > 1e-9 {
		t.Errorf("sector 1 mean = %v, want 29.5", s1.Mean)
	}
}

func TestSectors_EmptySectorKeepsZeroes(t *testing.T) {
	in := []f1.Lap{{LapNumber: 1, Sector1: f1.Float64(30.0)}}
	got := Sectors(in)
	if got[1].Count != 0 || got[1].Mean != 0 {
		t.Errorf("empty sector 2 summary = %+v, want zero values", got[1])
	}
}

func TestOptimal(t *testing.T) {
	in := []f1.Lap{
		sectorLap(1, 30.0, 31.0, 32.0),
		sectorLap(2, 29.0, 33.0, 31.0),
	}
	got, err := Optimal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := OptimalLap{Sector1: 29.0, Sector2: 31.0, Sector3: 31.0, Total: 91.0}
	if got != want {
		t.Errorf("Optimal = %+v, want %+v", got, want)
	}
}

func TestOptimal_MissingSector(t *testing.T) {
	in := []f1.Lap{{LapNumber: 1, Sector1: f1.Float64(30.0), Sector2: f1.Float64(31.0)}}
	_, err := Optimal(in)
	if !errors.Is(err, f1.ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}
}

func TestDegradation(t *testing.T) {
	stint := f1.Stint{
		Compound: f1.Soft,
		StartLap: 1,
		EndLap:   4,
		Laps: []f1.Lap{
			timedLap(1, 90.0),
			timedLap(2, 90.5),
			timedLap(3, 91.0),
			timedLap(4, 92.0),
		},
	}
	got := Degradation([]f1.Stint{stint})
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	d := got[0]
	if d.Compound != f1.Soft || d.StintLength != 4 {
		t.Errorf("degradation = %+v", d)
	}
	if d.FirstLapTime != 90.0 || d.LastLapTime != 92.0 {
		t.Errorf("first/last = %v/%v, want 90/92", d.FirstLapTime, d.LastLapTime)
	}
	if math.Abs(d.DegradationPerLap-0.5) > 1e-9 {
		t.Errorf("DegradationPerLap = %v, want 0.5", d.DegradationPerLap)
	}
}

func TestDegradation_ShortStintReportsZero(t *testing.T) {
	stint := f1.Stint{Compound: f1.Hard, StartLap: 1, EndLap: 1, Laps: []f1.Lap{timedLap(1, 90.0)}}
	got := Degradation([]f1.Stint{stint})
	if got[0].DegradationPerLap != 0 {
		t.Errorf("DegradationPerLap = %v, want 0 for a one-lap stint", got[0].DegradationPerLap)
	}
}
