package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "chainchaser"

// Observability bundles the logger, tracer and metrics shared by every module.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  OperationMetrics
	Domain   *DomainMetrics
}

// Init builds the observability stack from config.
func Init(cfg config.ObservabilityConfig) Observability {
	logger := NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat).
		With(slog.String("service", serviceName), slog.String("env", cfg.Environment))

	obs := Observability{
		Logger:  logger,
		Tracer:  otel.Tracer(serviceName),
		Metrics: NewNoopMetrics(),
		Domain:  NewDomainMetrics(nil),
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		obs.Registry = reg
		obs.Metrics = NewPrometheusMetrics(reg)
		obs.Domain = NewDomainMetrics(reg)
	}

	return obs
}

// NewNop returns a silent stack for tests.
func NewNop() Observability {
	return Observability{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:  otel.Tracer(serviceName),
		Metrics: NewNoopMetrics(),
		Domain:  NewDomainMetrics(nil),
	}
}

// NewLogger returns a slog logger writing text or JSON at the given level.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
