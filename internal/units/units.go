// Package units provides shared constants and conversion helpers for the
// speed units exposed by the API and for lap-time formatting.
package units

import "fmt"

// Unit constants. The provider reports speeds in km/h.
const (
	KPH = "kph"
	MPH = "mph"
	MPS = "mps"
)

// ValidUnits contains all accepted unit values.
var ValidUnits = []string{KPH, MPH, MPS}

// IsValid checks if the given unit is one of the accepted values.
func IsValid(unit string) bool {
	for _, v := range ValidUnits {
		if unit == v {
			return true
		}
	}
	return false
}

// ValidUnitsString returns a comma-separated list of accepted units for
// error messages.
func ValidUnitsString() string {
	return "kph, mph, mps"
}

// ConvertSpeed converts a speed from km/h to the target units. Unknown
// units pass the value through unchanged.
func ConvertSpeed(speedKPH float64, targetUnits string) float64 {
	switch targetUnits {
	case KPH:
		return speedKPH
	case MPH:
		return speedKPH * 0.62137119223733
	case MPS:
		return speedKPH / 3.6
	default:
		return speedKPH
	}
}

// FormatLapTime renders a lap time in seconds as m:ss.mmm, the format
// timing screens use. Negative or zero durations render as "-".
func FormatLapTime(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	mins := int(seconds) / 60
	rem := seconds - float64(mins*60)
	return fmt.Sprintf("%d:%06.3f", mins, rem)
}
