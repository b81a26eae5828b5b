package safetycar

import (
	"testing"

	"github.com/pitwall-data/pitwall.report/internal/f1"
)

func msg(lap int, text string) f1.RaceControlMessage {
	return f1.RaceControlMessage{Lap: f1.Int(lap), Message: text}
}

func timedLap(number int, seconds float64) f1.Lap {
	return f1.Lap{LapNumber: number, Time: f1.Float64(seconds)}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    f1.PeriodType
		wantOK  bool
	}{
		{"SAFETY CAR DEPLOYED", f1.PeriodSafetyCar, true},
		{"VIRTUAL SAFETY CAR DEPLOYED", f1.PeriodVSC, true},
		{"VSC ENDING", f1.PeriodVSC, true},
		{"RED FLAG", f1.PeriodRedFlag, true},
		{"red flag", f1.PeriodRedFlag, true},
		{"DRS ENABLED", "", false},
		{"TRACK CLEAR", "", false},
	}
	for _, tt := range tests {
		got, ok := classify(tt.message)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("classify(%q) = (%q, %v), want (%q, %v)", tt.message, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDerive_MergesConsecutiveLaps(t *testing.T) {
	messages := []f1.RaceControlMessage{
		msg(5, "SAFETY CAR DEPLOYED"),
		msg(6, "SAFETY CAR IN THIS LAP"),
		msg(7, "SAFETY CAR IN THIS LAP"),
		msg(20, "VIRTUAL SAFETY CAR DEPLOYED"),
	}
	got := Derive(messages, nil)

	if len(got) != 2 {
		t.Fatalf("got %d periods, want 2: %+v", len(got), got)
	}
	if got[0].StartLap != 5 || got[0].EndLap != 7 || got[0].Type != f1.PeriodSafetyCar {
		t.Errorf("period 0 = %+v, want SC laps 5-7", got[0])
	}
	if got[1].StartLap != 20 || got[1].EndLap != 20 || got[1].Type != f1.PeriodVSC {
		t.Errorf("period 1 = %+v, want VSC lap 20", got[1])
	}
}

func TestDerive_DoesNotMergeDifferentTypes(t *testing.T) {
	messages := []f1.RaceControlMessage{
		msg(5, "VIRTUAL SAFETY CAR DEPLOYED"),
		msg(6, "SAFETY CAR DEPLOYED"),
	}
	got := Derive(messages, nil)
	if len(got) != 2 {
		t.Fatalf("got %d periods, want 2 (VSC and SC stay separate): %+v", len(got), got)
	}
}

func TestDerive_DeduplicatesSameLapAndType(t *testing.T) {
	messages := []f1.RaceControlMessage{
		msg(5, "SAFETY CAR DEPLOYED"),
		msg(5, "SAFETY CAR THROUGH THE PIT LANE"),
	}
	got := Derive(messages, nil)
	if len(got) != 1 || got[0].StartLap != 5 || got[0].EndLap != 5 {
		t.Errorf("periods = %+v, want one single-lap period", got)
	}
}

func TestDerive_IgnoresMessagesWithoutLap(t *testing.T) {
	messages := []f1.RaceControlMessage{
		{Message: "SAFETY CAR DEPLOYED"}, // no lap attached
	}
	got := Derive(messages, nil)
	if len(got) != 0 {
		t.Errorf("periods = %+v, want none", got)
	}
}

func TestDerive_AnomalyFallback(t *testing.T) {
	// No usable race-control messages; lap 5 is over 1.5x the median.
	lapsByDriver := map[string][]f1.Lap{
		"VER": {
			timedLap(1, 90.0),
			timedLap(2, 91.0),
			timedLap(3, 90.5),
			timedLap(4, 90.8),
			timedLap(5, 140.0),
		},
	}
	got := Derive(nil, lapsByDriver)
	if len(got) != 1 {
		t.Fatalf("got %d periods, want 1: %+v", len(got), got)
	}
	if got[0].StartLap != 5 || got[0].Type != f1.PeriodSafetyCar {
		t.Errorf("period = %+v, want SC on lap 5", got[0])
	}
}

func TestDerive_AnomalyFallbackNeedsEnoughLaps(t *testing.T) {
	lapsByDriver := map[string][]f1.Lap{
		"VER": {timedLap(1, 90.0), timedLap(2, 140.0)},
	}
	got := Derive(nil, lapsByDriver)
	if len(got) != 0 {
		t.Errorf("periods = %+v, want none for a driver with 3 or fewer laps", got)
	}
}

func TestDerive_MessagesSuppressFallback(t *testing.T) {
	lapsByDriver := map[string][]f1.Lap{
		"VER": {
			timedLap(1, 90.0),
			timedLap(2, 91.0),
			timedLap(3, 90.5),
			timedLap(4, 140.0),
		},
	}
	messages := []f1.RaceControlMessage{msg(2, "RED FLAG")}
	got := Derive(messages, lapsByDriver)
	if len(got) != 1 || got[0].Type != f1.PeriodRedFlag {
		t.Errorf("periods = %+v, want only the red flag from race control", got)
	}
}
