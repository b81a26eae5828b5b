package units

import (
	"math"
	"testing"
)

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedKPH float64
		target   string
		want     float64
	}{
		{"kph passthrough", 320.0, KPH, 320.0},
		{"kph to mph", 100.0, MPH, 62.137119223733},
		{"kph to mps", 36.0, MPS, 10.0},
		{"zero", 0.0, MPH, 0.0},
		{"unknown unit passthrough", 250.0, "furlongs", 250.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertSpeed(tt.speedKPH, tt.target)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConvertSpeed(%v, %q) = %v, want %v", tt.speedKPH, tt.target, got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	for _, u := range ValidUnits {
		if !IsValid(u) {
			t.Errorf("IsValid(%q) = false, want true", u)
		}
	}
	if IsValid("knots") {
		t.Error("IsValid(knots) = true, want false")
	}
	if IsValid("") {
		t.Error("IsValid(\"\") = true, want false")
	}
}

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{90.123, "1:30.123"},
		{89.5, "1:29.500"},
		{125.0, "2:05.000"},
		{59.999, "0:59.999"},
		{0, "-"},
		{-3, "-"},
	}

	for _, tt := range tests {
		if got := FormatLapTime(tt.seconds); got != tt.want {
			t.Errorf("FormatLapTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
