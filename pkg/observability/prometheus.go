package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus records hook events as Prometheus metrics.
type Prometheus struct {
	refreshTotal      *prometheus.CounterVec
	refreshDuration   prometheus.Histogram
	platformVersions  prometheus.Gauge
	frameworkVersions prometheus.Gauge

	resolveTotal    *prometheus.CounterVec
	resolveDuration prometheus.Histogram

	cacheTotal *prometheus.CounterVec
	cacheBytes prometheus.Counter

	httpTotal    *prometheus.CounterVec
	httpErrors   *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus creates unregistered collectors for every hook category.
func NewPrometheus() *Prometheus {
	return &Prometheus{
		refreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "initializr_refresh_total",
				Help: "Number of catalog refreshes by outcome.",
			},
			[]string{"outcome"},
		),
		refreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "initializr_refresh_duration_seconds",
				Help:    "Time taken to refresh the catalog.",
				Buckets: prometheus.DefBuckets,
			},
		),
		platformVersions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "initializr_platform_versions",
				Help: "Number of platform versions after the last successful refresh.",
			},
		),
		frameworkVersions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "initializr_framework_versions",
				Help: "Number of framework versions after the last successful refresh.",
			},
		),
		resolveTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "initializr_resolve_total",
				Help: "Number of resolved project requests by result code.",
			},
			[]string{"code"},
		),
		resolveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "initializr_resolve_duration_seconds",
				Help:    "Time taken to resolve a project request.",
				Buckets: prometheus.DefBuckets,
			},
		),
		cacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "initializr_cache_operations_total",
				Help: "Number of cache operations by key type and result.",
			},
			[]string{"key_type", "result"},
		),
		cacheBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "initializr_cache_written_bytes_total",
				Help: "Total number of bytes written to the cache.",
			},
		),
		httpTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "initializr_http_client_requests_total",
				Help: "Number of outgoing HTTP requests by host and status.",
			},
			[]string{"host", "status"},
		),
		httpErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "initializr_http_client_errors_total",
				Help: "Number of outgoing HTTP requests that failed before a response.",
			},
			[]string{"host"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "initializr_http_client_duration_seconds",
				Help:    "Duration of outgoing HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"host"},
		),
	}
}

// Collectors returns every collector, for registration.
func (p *Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.refreshTotal, p.refreshDuration, p.platformVersions, p.frameworkVersions,
		p.resolveTotal, p.resolveDuration,
		p.cacheTotal, p.cacheBytes,
		p.httpTotal, p.httpErrors, p.httpDuration,
	}
}

// MustRegister registers every collector with reg.
func (p *Prometheus) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(p.Collectors()...)
}

func (p *Prometheus) OnRefreshStart(context.Context) {}

func (p *Prometheus) OnRefreshComplete(_ context.Context, platforms, frameworks int, d time.Duration, err error) {
	p.refreshDuration.Observe(d.Seconds())
	if err != nil {
		p.refreshTotal.WithLabelValues("failure").Inc()
		return
	}
	p.refreshTotal.WithLabelValues("success").Inc()
	p.platformVersions.Set(float64(platforms))
	p.frameworkVersions.Set(float64(frameworks))
}

func (p *Prometheus) OnResolve(_ context.Context, _ string, _ int, d time.Duration, code string) {
	if code == "" {
		code = "OK"
	}
	p.resolveTotal.WithLabelValues(code).Inc()
	p.resolveDuration.Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheTotal.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheTotal.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheTotal.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	p.httpTotal.WithLabelValues(host, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, _, host, _ string, _ error) {
	p.httpErrors.WithLabelValues(host).Inc()
}

var _ AllHooks = (*Prometheus)(nil)
