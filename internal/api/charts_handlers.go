package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/pitwall-data/pitwall.report/internal/charts"
	"github.com/pitwall-data/pitwall.report/internal/compare"
	"github.com/pitwall-data/pitwall.report/internal/httputil"
	"github.com/pitwall-data/pitwall.report/internal/laps"
	"github.com/pitwall-data/pitwall.report/internal/safetycar"
	"github.com/pitwall-data/pitwall.report/internal/stints"
	"github.com/pitwall-data/pitwall.report/internal/units"
)

// renderer is the interface both go-echarts chart kinds satisfy.
type renderer interface {
	Render(w io.Writer) error
}

// writeChart renders a go-echarts page into the response. Rendering into a
// buffer first keeps a render failure from emitting a half-written page.
func writeChart(w http.ResponseWriter, chart renderer) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleLapTimesChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	p, err := parseSessionParams(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	driver := r.URL.Query().Get("driver")
	if driver == "" {
		httputil.BadRequest(w, "missing 'driver' parameter")
		return
	}

	sess := s.loadSession(w, r, p)
	if sess == nil {
		return
	}
	driverLaps, ok := s.driverLaps(w, sess, driver)
	if !ok {
		return
	}

	periods := safetycar.Derive(sess.RaceControl, sess.Laps)
	chart := charts.LapTimes(driver, laps.Normalize(driverLaps), sess.DriverPitStops(driver), periods)
	writeChart(w, chart)
}

func (s *Server) handlePaceChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	p, err := parseSessionParams(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	driver1 := r.URL.Query().Get("driver1")
	driver2 := r.URL.Query().Get("driver2")
	if driver1 == "" || driver2 == "" {
		httputil.BadRequest(w, "missing 'driver1' or 'driver2' parameter")
		return
	}

	sess := s.loadSession(w, r, p)
	if sess == nil {
		return
	}
	laps1, ok := s.driverLaps(w, sess, driver1)
	if !ok {
		return
	}
	laps2, ok := s.driverLaps(w, sess, driver2)
	if !ok {
		return
	}

	deltas := compare.LapDeltas(laps1, laps2)
	if len(deltas) == 0 {
		httputil.UnprocessableEntity(w, "no laps where both drivers set a time")
		return
	}
	writeChart(w, charts.PaceComparison(driver1, driver2, deltas))
}

func (s *Server) handleStintsChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	p, err := parseSessionParams(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	driver := r.URL.Query().Get("driver")
	if driver == "" {
		httputil.BadRequest(w, "missing 'driver' parameter")
		return
	}

	sess := s.loadSession(w, r, p)
	if sess == nil {
		return
	}
	driverLaps, ok := s.driverLaps(w, sess, driver)
	if !ok {
		return
	}

	reconstructed := stints.Reconstruct(driverLaps, sess.DriverPitStops(driver))
	if len(reconstructed) == 0 {
		httputil.UnprocessableEntity(w, "no stints could be reconstructed")
		return
	}
	writeChart(w, charts.StintTimeline(driver, reconstructed))
}

func (s *Server) handleTelemetryChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	p, err := parseSessionParams(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	driver1 := r.URL.Query().Get("driver1")
	driver2 := r.URL.Query().Get("driver2")
	if driver1 == "" || driver2 == "" {
		httputil.BadRequest(w, "missing 'driver1' or 'driver2' parameter")
		return
	}
	targetUnits := r.URL.Query().Get("units")
	if targetUnits == "" {
		targetUnits = s.units
	}
	if !units.IsValid(targetUnits) {
		httputil.BadRequest(w, fmt.Sprintf("invalid 'units' parameter (want %s)", units.ValidUnitsString()))
		return
	}

	sess := s.loadSession(w, r, p)
	if sess == nil {
		return
	}
	fastest1, ok1 := sess.FastestLaps[driver1]
	fastest2, ok2 := sess.FastestLaps[driver2]
	if !ok1 || !ok2 {
		httputil.NotFound(w, "could not find fastest laps for both drivers")
		return
	}

	aligned, err := compare.AlignTelemetry(fastest1.Telemetry, fastest2.Telemetry)
	if err != nil {
		writeDerivationError(w, err)
		return
	}
	writeChart(w, charts.TelemetrySpeed(driver1, driver2, aligned, targetUnits))
}

func (s *Server) handleCircuitPNG(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	p, err := parseSessionParams(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	sess := s.loadSession(w, r, p)
	if sess == nil {
		return
	}
	if sess.Circuit == nil {
		httputil.NotFound(w, "no position data available")
		return
	}

	png, err := charts.CircuitPNG(sess.Event.Circuit, sess.Event.Name, *sess.Circuit)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render circuit map: %v", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
