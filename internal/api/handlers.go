package api

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/pitwall-data/pitwall.report/internal/compare"
	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/httputil"
	"github.com/pitwall-data/pitwall.report/internal/laps"
	"github.com/pitwall-data/pitwall.report/internal/safetycar"
	"github.com/pitwall-data/pitwall.report/internal/stints"
	"github.com/pitwall-data/pitwall.report/internal/telemetry"
	"github.com/pitwall-data/pitwall.report/internal/units"
)

func (s *Server) handleRaces(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1950 {
		httputil.BadRequest(w, "invalid 'year' parameter")
		return
	}

	races, err := s.schedule.Schedule(r.Context(), year)
	if err != nil {
		httputil.BadGateway(w, fmt.Sprintf("failed to fetch schedule: %v", err))
		return
	}
	httputil.WriteJSONOK(w, map[string]interface{}{
		"year":  year,
		"races": races,
	})
}

func (s *Server) handleDrivers(w http.ResponseWriter, r *http.Request) {
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

	drivers := make([]f1.Driver, len(sess.Drivers))
	copy(drivers, sess.Drivers)
	sort.SliceStable(drivers, func(i, j int) bool {
		a, errA := strconv.Atoi(drivers[i].Number)
		b, errB := strconv.Atoi(drivers[j].Number)
		if errA != nil || errB != nil {
			return drivers[i].Code < drivers[j].Code
		}
		return a < b
	})

	httputil.WriteJSONOK(w, map[string]interface{}{
		"year":    p.year,
		"round":   p.round,
		"drivers": drivers,
	})
}

func (s *Server) handleLaps(w http.ResponseWriter, r *http.Request) {
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
	mode, err := laps.ParseFilterMode(r.URL.Query().Get("filter"))
	if err != nil {
		httputil.BadRequest(w, err.Error())
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

	classification, err := laps.Classify(laps.Normalize(driverLaps), mode)
	if err != nil {
		writeDerivationError(w, err)
		return
	}

	stops := sess.DriverPitStops(driver)
	sorted := make([]f1.PitStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Lap < sorted[j].Lap })

	httputil.WriteJSONOK(w, map[string]interface{}{
		"driver":    driver,
		"race":      sess.Event.Name,
		"filter":    mode,
		"laps":      classification.Filtered,
		"stats":     classification.Stats,
		"pit_stops": sorted,
	})
}

func (s *Server) handleStints(w http.ResponseWriter, r *http.Request) {
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
	httputil.WriteJSONOK(w, map[string]interface{}{
		"driver": driver,
		"race":   sess.Event.Name,
		"stints": reconstructed,
	})
}

func (s *Server) handlePitStops(w http.ResponseWriter, r *http.Request) {
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

	type driverStops struct {
		Driver     string       `json:"driver"`
		TotalStops int          `json:"total_stops"`
		Stops      []f1.PitStop `json:"stops"`
	}
	byDriver := make(map[string]driverStops, len(sess.PitStops))
	for code, stops := range sess.PitStops {
		sorted := make([]f1.PitStop, len(stops))
		copy(sorted, stops)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Lap < sorted[j].Lap })
		byDriver[code] = driverStops{Driver: code, TotalStops: len(sorted), Stops: sorted}
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"year":          p.year,
		"round":         p.round,
		"race":          sess.Event.Name,
		"total_drivers": len(byDriver),
		"pitstops":      byDriver,
	})
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
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

	cleaned := laps.Clean(laps.Normalize(driverLaps))
	response := map[string]interface{}{
		"driver":  driver,
		"sectors": laps.Sectors(cleaned),
	}
	if optimal, err := laps.Optimal(cleaned); err == nil {
		response["optimal_lap"] = optimal
	}
	httputil.WriteJSONOK(w, response)
}

func (s *Server) handlePace(w http.ResponseWriter, r *http.Request) {
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

	ordered := laps.Normalize(driverLaps)
	stats, err := laps.Stats(ordered)
	if err != nil {
		writeDerivationError(w, err)
		return
	}
	reconstructed := stints.Reconstruct(ordered, sess.DriverPitStops(driver))

	httputil.WriteJSONOK(w, map[string]interface{}{
		"driver":           driver,
		"pace":             stats,
		"fastest_display":  units.FormatLapTime(stats.FastestLap),
		"tyre_degradation": laps.Degradation(reconstructed),
	})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
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

	comparison, err := compare.Drivers(laps1, laps2)
	if err != nil {
		writeDerivationError(w, err)
		return
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"driver1":    driver1,
		"driver2":    driver2,
		"comparison": comparison,
		"deltas":     compare.LapDeltas(laps1, laps2),
	})
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
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
	for i := range aligned.Speed1 {
		aligned.Speed1[i] = units.ConvertSpeed(aligned.Speed1[i], targetUnits)
		aligned.Speed2[i] = units.ConvertSpeed(aligned.Speed2[i], targetUnits)
		aligned.SpeedDelta[i] = units.ConvertSpeed(aligned.SpeedDelta[i], targetUnits)
	}

	lapInfo := func(fl f1.FastestLap) map[string]interface{} {
		info := map[string]interface{}{"lap_number": fl.Lap.LapNumber}
		if fl.Lap.Time != nil {
			info["lap_time"] = *fl.Lap.Time
			info["lap_time_display"] = units.FormatLapTime(*fl.Lap.Time)
		}
		if fl.Lap.Compound != nil {
			info["compound"] = *fl.Lap.Compound
		}
		return info
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"driver1":   driver1,
		"driver2":   driver2,
		"units":     targetUnits,
		"lap1":      lapInfo(fastest1),
		"lap2":      lapInfo(fastest2),
		"telemetry": aligned,
	})
}

func (s *Server) handleSpeedTrace(w http.ResponseWriter, r *http.Request) {
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
	binMeters := 100.0
	if raw := r.URL.Query().Get("bin"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			httputil.BadRequest(w, "invalid 'bin' parameter")
			return
		}
		binMeters = v
	}

	sess := s.loadSession(w, r, p)
	if sess == nil {
		return
	}
	fastest, ok := sess.FastestLaps[driver]
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("no fastest lap recorded for driver %q", driver))
		return
	}

	response := map[string]interface{}{
		"driver":     driver,
		"race":       sess.Event.Name,
		"lap_number": fastest.Lap.LapNumber,
		"bin_meters": binMeters,
		"trace":      telemetry.SpeedTrace(fastest.Telemetry, binMeters),
		"corners":    telemetry.DetectCorners(fastest.Telemetry, 0),
	}
	if fastest.Lap.Time != nil {
		response["lap_time"] = *fastest.Lap.Time
		response["lap_time_display"] = units.FormatLapTime(*fastest.Lap.Time)
	}
	httputil.WriteJSONOK(w, response)
}

func (s *Server) handleSafetyCar(w http.ResponseWriter, r *http.Request) {
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

	periods := safetycar.Derive(sess.RaceControl, sess.Laps)
	httputil.WriteJSONOK(w, map[string]interface{}{
		"year":               p.year,
		"round":              p.round,
		"event":              sess.Event.Name,
		"safety_car_periods": periods,
	})
}

func (s *Server) handleCircuit(w http.ResponseWriter, r *http.Request) {
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

	httputil.WriteJSONOK(w, map[string]interface{}{
		"circuit": sess.Event.Circuit,
		"event":   sess.Event.Name,
		"layout": f1.CircuitLayout{
			X:        sess.Circuit.X,
			Y:        sess.Circuit.Y,
			Distance: compare.NormalizeDistance(sess.Circuit.Distance),
		},
	})
}
