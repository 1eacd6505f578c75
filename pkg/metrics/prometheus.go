package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsCollector struct {
	registry              *prometheus.Registry
	calculationsProcessed prometheus.Counter
	calculationsFailed    prometheus.Counter
	calculationDuration   prometheus.Histogram
	feeDistribution       prometheus.Histogram
	batchSize             prometheus.Histogram
	rulesApplied          prometheus.Histogram
	logger                *slog.Logger
}

func NewMetricsCollector(logger *slog.Logger) *MetricsCollector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	collector := &MetricsCollector{
		registry: registry,
		calculationsProcessed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "fee_calculations_total",
			Help: "Total number of successful fee calculations",
		}),
		calculationsFailed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "fee_calculations_failed_total",
			Help: "Total number of failed fee calculations",
		}),
		calculationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "fee_calculation_duration_seconds",
			Help:    "Time taken to calculate a fee",
			Buckets: prometheus.DefBuckets,
		}),
		feeDistribution: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "fee_amount_distribution",
			Help:    "Distribution of calculated fee amounts",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 120},
		}),
		batchSize: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "fee_batch_size",
			Help:    "Distribution of batch sizes",
			Buckets: []float64{1, 10, 100, 1000, 10000},
		}),
		rulesApplied: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "fee_rules_applied",
			Help:    "Number of rules applied per calculation",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		}),
		logger: logger,
	}

	return collector
}

func (m *MetricsCollector) RecordCalculation(duration time.Duration, fee float64, rulesApplied int, success bool) {
	if success {
		m.calculationsProcessed.Inc()
		m.feeDistribution.Observe(fee)
	} else {
		m.calculationsFailed.Inc()
	}

	m.calculationDuration.Observe(duration.Seconds())
	m.rulesApplied.Observe(float64(rulesApplied))
}

func (m *MetricsCollector) RecordBatch(size int) {
	m.batchSize.Observe(float64(size))
}

func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *MetricsCollector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.GetHandler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		m.logger.Info("Starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}
