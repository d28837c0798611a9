package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	bundleDuration  prom.Histogram
	pagesRendered   prom.Counter
	extractFailures prom.Counter
	rebuilds        *prom.CounterVec
	rebuildDuration prom.Histogram
}

// NewPrometheusRecorder constructs and registers the pipeline metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		bundleDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "helpdocs",
			Name:      "bundle_duration_seconds",
			Help:      "Duration of module bundling",
			Buckets:   prom.DefBuckets,
		}),
		pagesRendered: prom.NewCounter(prom.CounterOpts{
			Namespace: "helpdocs",
			Name:      "pages_rendered_total",
			Help:      "Command HTML pages written",
		}),
		extractFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: "helpdocs",
			Name:      "extract_failures_total",
			Help:      "Help documents that failed extraction",
		}),
		rebuilds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "helpdocs",
			Name:      "rebuilds_total",
			Help:      "Watch-mode rebuilds by outcome",
		}, []string{"outcome"}),
		rebuildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "helpdocs",
			Name:      "rebuild_duration_seconds",
			Help:      "Duration of full watch-mode rebuilds",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.bundleDuration, pr.pagesRendered, pr.extractFailures, pr.rebuilds, pr.rebuildDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveBundleDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.bundleDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddPagesRendered(n int) {
	if p == nil {
		return
	}
	p.pagesRendered.Add(float64(n))
}

func (p *PrometheusRecorder) IncExtractFailure() {
	if p == nil {
		return
	}
	p.extractFailures.Inc()
}

func (p *PrometheusRecorder) IncRebuild(outcome string) {
	if p == nil {
		return
	}
	p.rebuilds.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveRebuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.rebuildDuration.Observe(d.Seconds())
}
