package compare

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pitwall-data/pitwall.report/internal/f1"
)

func trace(dists, speeds []float64) f1.TelemetrySeries {
	n := len(dists)
	return f1.TelemetrySeries{
		Distance: dists,
		Speed:    speeds,
		Throttle: make([]float64, n),
		Brake:    make([]bool, n),
		Gear:     make([]int, n),
		RPM:      make([]float64, n),
	}
}

func TestNormalizeDistance(t *testing.T) {
	got := NormalizeDistance([]float64{150.0, 250.0, 400.0})
	want := []float64{0.0, 100.0, 250.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizeDistance mismatch (-want +got):\n%s", diff)
	}

	if NormalizeDistance(nil) != nil {
		t.Error("NormalizeDistance(nil) should be nil")
	}
}

func TestAlignTelemetry_TruncatesToShorter(t *testing.T) {
	s1 := trace([]float64{0, 100, 200, 300}, []float64{250, 260, 270, 280})
	s2 := trace([]float64{0, 100}, []float64{245, 255})

	got, err := AlignTelemetry(s1, s2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("aligned length = %d, want 2", got.Len())
	}
	wantDelta := []float64{5.0, 5.0}
	if diff := cmp.Diff(wantDelta, got.SpeedDelta); diff != "" {
		t.Errorf("SpeedDelta mismatch (-want +got):\n%s", diff)
	}
}

func TestAlignTelemetry_ZeroBasesDistance(t *testing.T) {
	s1 := trace([]float64{500, 600}, []float64{250, 260})
	s2 := trace([]float64{500, 600}, []float64{250, 260})

	got, err := AlignTelemetry(s1, s2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Distance[0] != 0 {
		t.Errorf("Distance[0] = %v, want 0", got.Distance[0])
	}
}

func TestAlignTelemetry_CarriesRPMAndDRS(t *testing.T) {
	s1 := trace([]float64{0, 100}, []float64{250, 260})
	s1.RPM = []float64{11000, 11500}
	s1.DRS = []bool{false, true}
	s2 := trace([]float64{0, 100}, []float64{245, 255})
	s2.RPM = []float64{10800, 11200}

	got, err := AlignTelemetry(s1, s2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantRPM := []float64{11000, 11500}
	if diff := cmp.Diff(wantRPM, got.RPM1); diff != "" {
		t.Errorf("RPM1 mismatch (-want +got):\n%s", diff)
	}
	wantDRS := []bool{false, true}
	if diff := cmp.Diff(wantDRS, got.DRS1); diff != "" {
		t.Errorf("DRS1 mismatch (-want +got):\n%s", diff)
	}
	// s2 has no DRS channel, the aligned series must not invent one.
	if got.DRS2 != nil {
		t.Errorf("DRS2 = %v, want nil when the source has no DRS data", got.DRS2)
	}
}

func TestAlignTelemetry_EmptySeries(t *testing.T) {
	_, err := AlignTelemetry(f1.TelemetrySeries{}, trace([]float64{0}, []float64{250}))
	if !errors.Is(err, f1.ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}
}

func TestAlignTelemetry_RaggedParallelArrays(t *testing.T) {
	// A truncated provider payload: speed array shorter than distance.
	s1 := f1.TelemetrySeries{
		Distance: []float64{0, 100, 200},
		Speed:    []float64{250, 260},
		Throttle: []float64{100, 100, 100},
		Brake:    []bool{false, false, false},
		Gear:     []int{7, 7, 7},
		RPM:      []float64{11000, 11000, 11000},
	}
	s2 := trace([]float64{0, 100, 200}, []float64{240, 250, 260})

	got, err := AlignTelemetry(s1, s2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 2 {
		t.Errorf("aligned length = %d, want 2 (shortest parallel array)", got.Len())
	}
}
