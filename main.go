// M5250 Router Prometheus Exporter
//
// This exporter logs into the web management interface of a TP-Link M5250
// mobile router, decodes the telemetry embedded in its status pages and
// exposes it in Prometheus format.
//
// Usage:
//
//	m5250-exporter [flags]
//
// Flags:
//
//	-config string    Path to config file (default: no config file)
//	-port int         Port to serve metrics on (default: 9252)
//	-router string    Router URL (default: http://192.168.0.1/)
//	-login string     Router web UI login (default: admin)
//	-password string  Router web UI password (default: admin)
//	-timeout string   Router request timeout (default: 10s)
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/m5250-dashboard/exporter/config"
	"github.com/m5250-dashboard/exporter/metrics"
	"github.com/m5250-dashboard/exporter/router"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", 0, "Port to serve metrics on (default: 9252)")
	routerURL := flag.String("router", "", "Router URL (default: http://192.168.0.1/)")
	login := flag.String("login", "", "Router web UI login (default: admin)")
	password := flag.String("password", "", "Router web UI password (default: admin)")
	timeout := flag.String("timeout", "", "Router request timeout (default: 10s)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("m5250-exporter %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config_path", *configPath).Msg("failed to load config")
	}

	// Load environment variables
	config.LoadConfigFromEnv(cfg)

	// Override with command line flags
	if *port != 0 {
		cfg.Metrics.Port = *port
	}
	if *routerURL != "" {
		cfg.Router.URL = *routerURL
	}
	if *login != "" {
		cfg.Router.Login = *login
	}
	if *password != "" {
		cfg.Router.Password = *password
	}
	if *timeout != "" {
		if d, err := time.ParseDuration(*timeout); err == nil {
			cfg.Router.Timeout = d
		}
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warn().Str("level", cfg.Logging.Level).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("version", version).
		Str("router", cfg.Router.URL).
		Int("port", cfg.Metrics.Port).
		Msg("starting M5250 exporter")

	// Create the router client; construction authenticates against the
	// device, so a wrong password or unreachable router fails here.
	client, err := router.NewClient(cfg.ToClientConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to router")
	}

	log.Info().Str("session_id", client.Session().ID).Msg("authenticated against router")

	// Create metrics collector
	collector := metrics.NewCollector(client, log.Logger)

	// Register collector with Prometheus
	prometheus.MustRegister(collector)

	// Create HTTP server
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>
<head><title>M5250 Router Exporter</title></head>
<body>
<h1>M5250 Router Exporter</h1>
<p>Version: ` + version + `</p>
<p>Router: ` + cfg.Router.URL + `</p>
<p><a href="` + cfg.Metrics.Path + `">Metrics</a></p>
</body>
</html>`))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}
	}()

	// Start server
	log.Info().Msgf("serving metrics at http://localhost:%d%s", cfg.Metrics.Port, cfg.Metrics.Path)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("HTTP server error")
	}

	<-ctx.Done()
	log.Info().Msg("exporter stopped")
}
