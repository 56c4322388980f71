// Package metrics exposes solver counters on a dedicated Prometheus
// registry and writes them in node-exporter textfile format.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the kmst collectors. The zero value is not usable; call New.
type Metrics struct {
	Registry       *prometheus.Registry
	SolvesTotal    *prometheus.CounterVec
	SolveDuration  *prometheus.HistogramVec
	CandidateEdges prometheus.Histogram
	BBNodes        prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		SolvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "kmst_solves_total", Help: "Finished k-MST solves by status."},
			[]string{"status"},
		),
		SolveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kmst_solve_duration_seconds",
				Help:    "Wall time of one k-MST solve.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"status"},
		),
		CandidateEdges: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kmst_candidate_edges",
			Help:    "Candidate edges after pruning.",
			Buckets: prometheus.ExponentialBuckets(8, 2, 12),
		}),
		BBNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kmst_bb_nodes",
			Help:    "Branch-and-bound nodes explored per solve.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
	reg.MustRegister(m.SolvesTotal, m.SolveDuration, m.CandidateEdges, m.BBNodes)

	return m
}

// ObserveSolve records one finished solve.
func (m *Metrics) ObserveSolve(status string, elapsed time.Duration, candidateEdges, solverNodes int) {
	m.SolvesTotal.WithLabelValues(status).Inc()
	m.SolveDuration.WithLabelValues(status).Observe(elapsed.Seconds())
	if candidateEdges > 0 {
		m.CandidateEdges.Observe(float64(candidateEdges))
	}
	if solverNodes > 0 {
		m.BBNodes.Observe(float64(solverNodes))
	}
}

// WithRuntime adds Go runtime and process collectors.
func (m *Metrics) WithRuntime() *Metrics {
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// WriteTextfile writes the registry atomically to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}

var (
	defaultOnce sync.Once
	defaultM    *Metrics
)

// Default returns a process-wide Metrics, created on first use.
func Default() *Metrics {
	defaultOnce.Do(func() { defaultM = New() })

	return defaultM
}
