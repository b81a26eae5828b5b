package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/pitwall-data/pitwall.report/internal/httputil"
)

func TestValidSessionType(t *testing.T) {
	for _, s := range []string{"FP1", "FP2", "FP3", "Q", "S", "R"} {
		if !ValidSessionType(s) {
			t.Errorf("ValidSessionType(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "r", "FP4", "RACE"} {
		if ValidSessionType(s) {
			t.Errorf("ValidSessionType(%q) = true, want false", s)
		}
	}
}

func TestLoadSession(t *testing.T) {
	mock := httputil.NewMockHTTPClient()
	mock.AddResponse(http.StatusOK, `{
		"year": 2024,
		"round": 1,
		"session_type": "R",
		"event": {"round": 1, "race_name": "Bahrain Grand Prix"},
		"laps": {"VER": [{"lap_number": 1, "time": 95.5}]}
	}`)
	client := NewClient("http://provider.test", mock)

	sess, err := client.LoadSession(context.Background(), 2024, 1, "R")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Year != 2024 || sess.Event.Name != "Bahrain Grand Prix" {
		t.Errorf("session = %+v", sess)
	}
	laps, ok := sess.DriverLaps("VER")
	if !ok || len(laps) != 1 || *laps[0].Time != 95.5 {
		t.Errorf("driver laps = %+v, ok = %v", laps, ok)
	}

	req := mock.Requests[0]
	if req.URL.Path != "/v1/session" {
		t.Errorf("path = %q, want /v1/session", req.URL.Path)
	}
	q := req.URL.Query()
	if q.Get("year") != "2024" || q.Get("round") != "1" || q.Get("session") != "R" {
		t.Errorf("query = %v", q)
	}
	if req.Header.Get("Accept") != "application/json" {
		t.Errorf("Accept = %q", req.Header.Get("Accept"))
	}
}

func TestLoadSession_RejectsUnknownSessionType(t *testing.T) {
	client := NewClient("http://provider.test", httputil.NewMockHTTPClient())
	_, err := client.LoadSession(context.Background(), 2024, 1, "FP9")
	if err == nil {
		t.Fatal("expected error for unknown session type")
	}
}

func TestLoadSession_Non200IncludesBodySnippet(t *testing.T) {
	mock := httputil.NewMockHTTPClient()
	mock.AddResponse(http.StatusBadGateway, `upstream boom`)
	client := NewClient("http://provider.test", mock)

	_, err := client.LoadSession(context.Background(), 2024, 1, "R")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "upstream boom") {
		t.Errorf("error = %v, want status and body snippet", err)
	}
}

func TestLoadSession_TransportError(t *testing.T) {
	mock := httputil.NewMockHTTPClient()
	mock.AddError(errors.New("connection refused"))
	client := NewClient("http://provider.test", mock)

	_, err := client.LoadSession(context.Background(), 2024, 1, "R")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error = %v, want wrapped transport error", err)
	}
}

func TestSchedule(t *testing.T) {
	mock := httputil.NewMockHTTPClient()
	mock.AddResponse(http.StatusOK, `[
		{"round": 1, "race_name": "Bahrain Grand Prix", "country": "Bahrain", "circuit": "Bahrain International Circuit", "date": "2024-03-02"},
		{"round": 2, "race_name": "Saudi Arabian Grand Prix", "country": "Saudi Arabia", "circuit": "Jeddah Corniche Circuit", "date": "2024-03-09"}
	]`)
	client := NewClient("http://provider.test", mock)

	races, err := client.Schedule(context.Background(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(races) != 2 || races[0].Round != 1 || races[1].Name != "Saudi Arabian Grand Prix" {
		t.Errorf("races = %+v", races)
	}
	if got := mock.Requests[0].URL.Path; got != "/v1/schedule" {
		t.Errorf("path = %q, want /v1/schedule", got)
	}
}

func TestSchedule_MalformedJSON(t *testing.T) {
	mock := httputil.NewMockHTTPClient()
	mock.AddResponse(http.StatusOK, `{not json`)
	client := NewClient("http://provider.test", mock)

	if _, err := client.Schedule(context.Background(), 2024); err == nil {
		t.Fatal("expected decode error")
	}
}
