package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/hectorherrerafullstack/astroApi/client"
	"github.com/hectorherrerafullstack/astroApi/internal/config"
	"github.com/hectorherrerafullstack/astroApi/mcp/internal/handlers"
	"github.com/hectorherrerafullstack/astroApi/store"
)

// Version is reported to MCP hosts during initialisation.
const Version = "0.1.0"

const (
	shutdownTimeout = 10 * time.Second
	httpReadTimeout = 5 * time.Second
	httpIdleTimeout = 120 * time.Second
	heartbeatPeriod = 30 * time.Second
	streamablePath  = "/mcp"
	metricsPath     = "/metrics"
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// Deps are the collaborators the tools call into.
type Deps struct {
	Client          *client.Client
	Store           client.ChartStore
	Cache           *client.HoroscopeCache
	DefaultTimezone string
}

// NewServer builds an MCP server with the chart, horoscope and transit
// tools registered.
func NewServer(name string, d Deps) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		Version,
		server.WithToolCapabilities(true),
	)

	for _, h := range []struct {
		name string
		reg  toolRegisterer
	}{
		{"chart", handlers.NewChartHandler(d.Client, d.Store, d.Cache)},
		{"horoscope", handlers.NewHoroscopeHandler(d.Cache, d.Store, d.DefaultTimezone)},
		{"transits", handlers.NewTransitsHandler(d.Client, d.DefaultTimezone)},
	} {
		if err := h.reg.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", h.name, err)
		}
	}
	return s, nil
}

// NewHTTPHandler serves the streamable MCP endpoint at /mcp and Prometheus
// metrics at /metrics.
func NewHTTPHandler(s *server.MCPServer) (http.Handler, *server.StreamableHTTPServer) {
	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(streamablePath),
		server.WithHeartbeatInterval(heartbeatPeriod),
	)
	mux := http.NewServeMux()
	mux.Handle(streamablePath, streamSrv)
	mux.Handle(metricsPath, promhttp.Handler())
	return mux, streamSrv
}

// RunMCPServer loads configuration from the environment and serves until
// stdin closes (stdio) or a termination signal arrives (HTTP).
func RunMCPServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.InitLogger(cfg.Level())

	opts := []client.Option{client.WithDebugLogging(cfg.Debug)}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(cfg.HTTPTimeout))
	}
	c, err := client.New(cfg.BaseURL, opts...)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing chart store")
		}
	}()

	cache := client.NewHoroscopeCache(c,
		client.WithFreshness(cfg.CacheFreshness),
		client.WithRetention(cfg.CacheRetention),
	)

	s, err := NewServer(cfg.MCPServerName, Deps{
		Client:          c,
		Store:           st,
		Cache:           cache,
		DefaultTimezone: cfg.Timezone,
	})
	if err != nil {
		return err
	}

	if shouldUseStdio() {
		log.Info().Str("base_url", cfg.BaseURL).Msg("Starting astro MCP server (stdio transport)")
		return server.ServeStdio(s)
	}

	addr := fmt.Sprintf(":%d", cfg.MCPPort)
	log.Info().Str("addr", addr).Str("base_url", cfg.BaseURL).Msg("Starting astro MCP server (Streamable HTTP)")

	handler, streamSrv := NewHTTPHandler(s)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: 0, // SSE streams have no deadline
		IdleTimeout:  httpIdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	shutdownComplete := make(chan struct{})

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio picks the transport: MCP_STDIO=true or MCP_HTTP=true force
// one, otherwise stdio is used when stdin is not a terminal.
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
