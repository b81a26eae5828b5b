package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pitwall-data/pitwall.report/internal/api"
	"github.com/pitwall-data/pitwall.report/internal/config"
	"github.com/pitwall-data/pitwall.report/internal/httputil"
	"github.com/pitwall-data/pitwall.report/internal/provider"
	"github.com/pitwall-data/pitwall.report/internal/sessioncache"
	"github.com/pitwall-data/pitwall.report/internal/timeutil"
	"github.com/pitwall-data/pitwall.report/internal/units"
	"github.com/pitwall-data/pitwall.report/internal/version"
)

var (
	configPath   = flag.String("config", "", "Path to a JSON config file (optional)")
	listen       = flag.String("listen", "", "Listen address")
	providerURL  = flag.String("provider", "", "Base URL of the timing-data provider")
	cacheBackend = flag.String("cache", "", "Session cache backend: memory or sqlite")
	cachePath    = flag.String("cache-path", "", "Path to the sqlite cache file")
	defaultUnits = flag.String("units", "", "Default speed units: kph, mph or mps")
	httpTimeout  = flag.Duration("provider-timeout", 0, "Timeout for provider requests")
)

// pick returns the flag value when set, else the config-file value.
func pick(flagVal, cfgVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return cfgVal
}

func main() {
	flag.Parse()

	var cfg *config.ServerConfig
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	addr := pick(*listen, cfg.GetListen())
	unitsVal := pick(*defaultUnits, cfg.GetUnits())
	backend := pick(*cacheBackend, cfg.GetCacheBackend())
	timeout := cfg.GetProviderTimeout()
	if *httpTimeout > 0 {
		timeout = *httpTimeout
	}

	if !units.IsValid(unitsVal) {
		log.Fatalf("invalid units %q (want %s)", unitsVal, units.ValidUnitsString())
	}

	// Sessions are immutable once a race weekend ends, so the provider is
	// only consulted on a cache miss.
	var cache sessioncache.Cache
	switch backend {
	case "memory":
		cache = sessioncache.NewMemory()
	case "sqlite":
		sqlCache, err := sessioncache.NewSQLite(pick(*cachePath, cfg.GetCachePath()), timeutil.RealClock{})
		if err != nil {
			log.Fatalf("failed to open session cache: %v", err)
		}
		defer sqlCache.Close()
		cache = sqlCache
	default:
		log.Fatalf("unknown cache backend %q (want memory or sqlite)", backend)
	}

	baseURL := pick(*providerURL, cfg.GetProviderURL())
	client := provider.NewClient(baseURL, httputil.NewStandardClient(&http.Client{Timeout: timeout}))
	loader := sessioncache.NewLoader(client, cache)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(loader, client, unitsVal)
	server := &http.Server{
		Addr:    addr,
		Handler: api.LoggingMiddleware(srv.ServeMux()),
	}

	go func() {
		log.Printf("pitwall %s listening on %s (provider %s, cache %s)", version.Version, addr, baseURL, backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("graceful shutdown complete")
}
