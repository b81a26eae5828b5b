// Package api exposes the session analytics over REST and serves the
// interactive chart pages.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/httputil"
	"github.com/pitwall-data/pitwall.report/internal/provider"
	"github.com/pitwall-data/pitwall.report/internal/units"
	"github.com/pitwall-data/pitwall.report/internal/version"
)

// SessionLoader yields session documents, normally a sessioncache.Loader.
type SessionLoader interface {
	Session(ctx context.Context, year, round int, session string) (*f1.Session, error)
}

// ScheduleSource yields season schedules, normally the provider client.
type ScheduleSource interface {
	Schedule(ctx context.Context, year int) ([]f1.RaceInfo, error)
}

// Server wires the derivation core to HTTP.
type Server struct {
	loader   SessionLoader
	schedule ScheduleSource
	units    string
}

// NewServer creates a Server. defaultUnits applies when a request does not
// specify units.
func NewServer(loader SessionLoader, schedule ScheduleSource, defaultUnits string) *Server {
	if !units.IsValid(defaultUnits) {
		defaultUnits = units.KPH
	}
	return &Server{loader: loader, schedule: schedule, units: defaultUnits}
}

// ServeMux returns the route table.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/api/races", s.handleRaces)
	mux.HandleFunc("/api/drivers", s.handleDrivers)
	mux.HandleFunc("/api/laps", s.handleLaps)
	mux.HandleFunc("/api/stints", s.handleStints)
	mux.HandleFunc("/api/pitstops", s.handlePitStops)
	mux.HandleFunc("/api/sectors", s.handleSectors)
	mux.HandleFunc("/api/pace", s.handlePace)
	mux.HandleFunc("/api/comparison", s.handleComparison)
	mux.HandleFunc("/api/telemetry", s.handleTelemetry)
	mux.HandleFunc("/api/speed-trace", s.handleSpeedTrace)
	mux.HandleFunc("/api/safety-car", s.handleSafetyCar)
	mux.HandleFunc("/api/circuit", s.handleCircuit)
	mux.HandleFunc("/charts/laptimes", s.handleLapTimesChart)
	mux.HandleFunc("/charts/pace", s.handlePaceChart)
	mux.HandleFunc("/charts/stints", s.handleStintsChart)
	mux.HandleFunc("/charts/telemetry", s.handleTelemetryChart)
	mux.HandleFunc("/charts/circuit.png", s.handleCircuitPNG)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.NotFound(w, "not found")
		return
	}
	httputil.WriteJSONOK(w, map[string]string{
		"service": "pitwall session analytics",
		"version": version.Version,
		"status":  "running",
	})
}

// sessionParams are the query parameters shared by most endpoints.
type sessionParams struct {
	year    int
	round   int
	session string
}

// parseSessionParams reads year, round and session from the query string.
// session defaults to the race.
func parseSessionParams(r *http.Request) (sessionParams, error) {
	q := r.URL.Query()

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 1950 {
		return sessionParams{}, fmt.Errorf("invalid 'year' parameter")
	}
	round, err := strconv.Atoi(q.Get("round"))
	if err != nil || round < 1 {
		return sessionParams{}, fmt.Errorf("invalid 'round' parameter")
	}

	session := q.Get("session")
	if session == "" {
		session = "R"
	}
	if !provider.ValidSessionType(session) {
		return sessionParams{}, fmt.Errorf("invalid 'session' parameter %q", session)
	}
	return sessionParams{year: year, round: round, session: session}, nil
}

// loadSession fetches the session document and writes the appropriate
// error response on failure. Returns nil when a response was written.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, p sessionParams) *f1.Session {
	sess, err := s.loader.Session(r.Context(), p.year, p.round, p.session)
	if err != nil {
		httputil.BadGateway(w, fmt.Sprintf("failed to load session: %v", err))
		return nil
	}
	return sess
}

// driverLaps resolves one driver's laps or writes a 404.
func (s *Server) driverLaps(w http.ResponseWriter, sess *f1.Session, code string) ([]f1.Lap, bool) {
	driverLaps, ok := sess.DriverLaps(code)
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("driver %q not found in session", code))
		return nil, false
	}
	return driverLaps, true
}

// writeDerivationError maps the derivation error taxonomy onto status
// codes: data-shaped failures are 422, anything else is a 500.
func writeDerivationError(w http.ResponseWriter, err error) {
	if errors.Is(err, f1.ErrInsufficientData) || errors.Is(err, f1.ErrNoComparableLaps) {
		httputil.UnprocessableEntity(w, err.Error())
		return
	}
	httputil.InternalServerError(w, err.Error())
}

// requireGet returns false and writes a 405 for non-GET requests.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return false
	}
	return true
}
