// Package metrics records bug generation metrics with Prometheus.
//
// [PrometheusRecorder] implements the [observability] hook interfaces, so a
// program registers it once and every batch, render and cache event is
// counted. Batch runs are short-lived, so the recorder is meant to be
// flushed to a node_exporter textfile with [PrometheusRecorder.WriteTextfile]
// rather than scraped.
package metrics

import (
	"context"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/bugmaker/pkg/observability"
)

const namespace = "bugmaker"

// PrometheusRecorder counts bugs, renders and cache traffic.
type PrometheusRecorder struct {
	reg *prom.Registry

	bugs           *prom.CounterVec
	bugDuration    prom.Histogram
	rarityScore    prom.Histogram
	batchDuration  prom.Histogram
	batchFailed    prom.Gauge
	rasterizations *prom.CounterVec
	rasterDuration *prom.HistogramVec
	rasterBytes    *prom.CounterVec
	cacheEvents    *prom.CounterVec
}

// NewPrometheusRecorder registers the metrics on reg, or on a fresh registry
// when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	p := &PrometheusRecorder{reg: reg}

	p.bugs = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_total",
		Help:      "Generated bugs by rarity label and result",
	}, []string{"rarity", "result"})
	p.bugDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "bug_duration_seconds",
		Help:      "Time to generate and export one bug",
		Buckets:   prom.DefBuckets,
	})
	p.rarityScore = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "rarity_score",
		Help:      "Total rarity score of generated bugs",
		Buckets:   prom.LinearBuckets(3, 1, 13),
	})
	p.batchDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_duration_seconds",
		Help:      "Duration of whole batch runs",
		Buckets:   prom.ExponentialBuckets(0.1, 2, 12),
	})
	p.batchFailed = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "batch_failed_bugs",
		Help:      "Failed bugs in the last batch",
	})
	p.rasterizations = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "rasterizations_total",
		Help:      "Rasterizer calls by backend, format and result",
	}, []string{"backend", "format", "result"})
	p.rasterDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "rasterize_duration_seconds",
		Help:      "Rasterizer call duration",
		Buckets:   prom.DefBuckets,
	}, []string{"backend"})
	p.rasterBytes = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "rasterized_bytes_total",
		Help:      "Bytes produced by rasterizers",
	}, []string{"backend", "format"})
	p.cacheEvents = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "cache_events_total",
		Help:      "Artifact cache hits, misses and writes",
	}, []string{"key_type", "event"})

	reg.MustRegister(p.bugs, p.bugDuration, p.rarityScore, p.batchDuration, p.batchFailed,
		p.rasterizations, p.rasterDuration, p.rasterBytes, p.cacheEvents)
	return p
}

// Registry returns the registry holding the metrics.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// Register installs p as the batch, render and cache hooks.
func (p *PrometheusRecorder) Register() {
	observability.SetBatchHooks(p)
	observability.SetRenderHooks(p)
	observability.SetCacheHooks(p)
}

// WriteTextfile writes the current values in text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}

func result(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}

func (p *PrometheusRecorder) OnBugStart(context.Context, int) {}

func (p *PrometheusRecorder) OnBugComplete(_ context.Context, _ int, rarity string, score int, d time.Duration, err error) {
	p.bugs.WithLabelValues(rarity, result(err)).Inc()
	p.bugDuration.Observe(d.Seconds())
	if err == nil {
		p.rarityScore.Observe(float64(score))
	}
}

func (p *PrometheusRecorder) OnBatchComplete(_ context.Context, _ int, failed int, d time.Duration) {
	p.batchDuration.Observe(d.Seconds())
	p.batchFailed.Set(float64(failed))
}

func (p *PrometheusRecorder) OnRasterize(_ context.Context, backend, format string, size int, d time.Duration, err error) {
	p.rasterizations.WithLabelValues(backend, format, result(err)).Inc()
	p.rasterDuration.WithLabelValues(backend).Observe(d.Seconds())
	if err == nil {
		p.rasterBytes.WithLabelValues(backend, format).Add(float64(size))
	}
}

func (p *PrometheusRecorder) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *PrometheusRecorder) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *PrometheusRecorder) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

// Summary returns counter totals keyed by metric and label values, for
// printing at the end of a run.
func (p *PrometheusRecorder) Summary() (map[string]float64, error) {
	mfs, err := p.reg.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "," + lp.GetName() + "=" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key+",count"] = float64(m.GetHistogram().GetSampleCount())
				out[key+",sum"] = m.GetHistogram().GetSampleSum()
			}
		}
	}
	return out, nil
}

var (
	_ observability.BatchHooks  = (*PrometheusRecorder)(nil)
	_ observability.RenderHooks = (*PrometheusRecorder)(nil)
	_ observability.CacheHooks  = (*PrometheusRecorder)(nil)
)
