package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pgbot/sources/platform"
	"pgbot/sources/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Outsiders runs the HTTP servers facing infrastructure: health probe, system and application metrics.
type Outsiders struct {
	log    *tracing.Logger
	config *OutsidersConfig
	ss     *http.Server
	sms    *http.Server
	as     *http.Server
}

func NewOutsiders(log *tracing.Logger, config *OutsidersConfig, redis *redis.Client) *Outsiders {
	systemRegistry := prometheus.NewRegistry()

	systemRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	health := http.NewServeMux()
	health.Handle("/health", healthHandler(log, redis))

	system := http.NewServeMux()
	system.Handle("/metrics", promhttp.HandlerFor(systemRegistry, promhttp.HandlerOpts{}))

	application := http.NewServeMux()
	application.Handle("/metrics", promhttp.Handler())

	return &Outsiders{
		log:    log,
		config: config,
		ss:     &http.Server{Addr: fmt.Sprintf(":%d", config.StartupPort), Handler: health},
		sms:    &http.Server{Addr: fmt.Sprintf(":%d", config.SystemMetricsPort), Handler: system},
		as:     &http.Server{Addr: fmt.Sprintf(":%d", config.ApplicationMetricsPort), Handler: application},
	}
}

func (x *Outsiders) serve(kind string, server *http.Server) {
	x.log.I("Outsider server is starting", tracing.OutsiderKind, kind, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		x.log.F("Failed to start outsider server", tracing.OutsiderKind, kind, tracing.InnerError, err)
	}
}

func (x *Outsiders) shutdown(ctx context.Context) error {
	for kind, server := range map[string]*http.Server{"startup": x.ss, "system_metrics": x.sms, "application_metrics": x.as} {
		if err := server.Shutdown(ctx); err != nil {
			x.log.E("Failed to shutdown outsider server", tracing.OutsiderKind, kind, tracing.InnerError, err)
			return fmt.Errorf("shutdown %s server: %w", kind, err)
		}
	}
	return nil
}

type healthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime"`
	Redis     string `json:"redis"`
}

func healthHandler(log *tracing.Logger, redis pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.D("Outsider service got a ping", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)

		status := healthStatus{
			Status:    "ok",
			Service:   "pgbot",
			Version:   platform.GetAppVersion(),
			StartedAt: platform.GetAppStartTime().UTC().Format(time.RFC3339),
			Uptime:    platform.GetAppUptime().String(),
			Redis:     "ok",
		}
		code := http.StatusOK

		ctx, cancel := platform.ContextTimeout(r.Context())
		defer cancel()

		if err := redis.Ping(ctx).Err(); err != nil {
			log.W("Health check failed on redis", tracing.InnerError, err)
			status.Status = "degraded"
			status.Redis = err.Error()
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
