// Package testutil provides shared test helpers and session fixtures.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pitwall-data/pitwall.report/internal/f1"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewTestRequest creates a test HTTP request.
func NewTestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// NewTestRecorder creates a test response recorder.
func NewTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

// TimedLap builds a lap with a recorded time and compound.
func TimedLap(number int, seconds float64, compound f1.Compound) f1.Lap {
	return f1.Lap{
		LapNumber: number,
		Time:      f1.Float64(seconds),
		Compound:  f1.CompoundPtr(compound),
	}
}

// UntimedLap builds a lap with no recorded time.
func UntimedLap(number int) f1.Lap {
	return f1.Lap{LapNumber: number}
}

// Session builds a minimal one-driver race session fixture.
func Session(driver string, laps []f1.Lap, stops []f1.PitStop) *f1.Session {
	return &f1.Session{
		Year:        2024,
		Round:       1,
		SessionType: "R",
		Event: f1.RaceInfo{
			Round:   1,
			Name:    "Bahrain Grand Prix",
			Country: "Bahrain",
			Circuit: "Bahrain International Circuit",
			Date:    "2024-03-02",
		},
		Drivers:  []f1.Driver{{Code: driver, Name: driver, Number: "1"}},
		Laps:     map[string][]f1.Lap{driver: laps},
		PitStops: map[string][]f1.PitStop{driver: stops},
	}
}
