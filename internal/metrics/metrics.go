// Package metrics exposes Prometheus collectors for pipeline stages and the
// ranking tournament. Batch runs export them through the node_exporter
// textfile collector.
package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Metric names
const (
	MetricMeetingsTotal      = "meetsum_meetings_total"
	MetricSegmentsTotal      = "meetsum_segments_total"
	MetricStageDuration      = "meetsum_stage_duration_seconds"
	MetricComparisonsTotal   = "meetsum_comparisons_total"
	MetricTournamentPoolSize = "meetsum_tournament_pool_size"
)

// Stage labels
const (
	StageAlign    = "align"
	StageGenerate = "generate"
	StageRank     = "rank"
	StageReport   = "report"
	StagePublish  = "publish"
)

// Status labels
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

// Metrics holds the pipeline collectors. All methods are safe for concurrent use.
type Metrics struct {
	meetings      *prometheus.CounterVec
	segments      *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	comparisons   *prometheus.CounterVec
	poolSize      prometheus.Gauge
}

// NewMetrics creates unregistered collectors; call Register to expose them.
func NewMetrics() *Metrics {
	return &Metrics{
		meetings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricMeetingsTotal,
				Help: "Meetings processed by stage and status",
			},
			[]string{"stage", "status"},
		),
		segments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricSegmentsTotal,
				Help: "Agenda segments processed by stage and status",
			},
			[]string{"stage", "status"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricStageDuration,
				Help:    "Wall time of one pipeline stage over a window",
				Buckets: []float64{1, 5, 15, 30, 60, 300, 900, 1800, 3600, 7200},
			},
			[]string{"stage"},
		),
		comparisons: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricComparisonsTotal,
				Help: "Judged headline pairs by verdict side",
			},
			[]string{"verdict"},
		),
		poolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricTournamentPoolSize,
			Help: "Distinct headlines in the last scheduled tournament",
		}),
	}
}

// Register registers all collectors with reg
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns every collector
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.meetings,
		m.segments,
		m.stageDuration,
		m.comparisons,
		m.poolSize,
	}
}

// IncMeetings counts one meeting through a stage
func (m *Metrics) IncMeetings(stage, status string) {
	m.meetings.WithLabelValues(stage, status).Inc()
}

// AddSegments counts n segments through a stage
func (m *Metrics) AddSegments(stage, status string, n int) {
	if n <= 0 {
		return
	}
	m.segments.WithLabelValues(stage, status).Add(float64(n))
}

// ObserveStageDuration records how long a stage took
func (m *Metrics) ObserveStageDuration(stage string, seconds float64) {
	m.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// SetPoolSize records the tournament pool size
func (m *Metrics) SetPoolSize(n int) {
	m.poolSize.Set(float64(n))
}

// ObserveComparison counts a judged pair. It lets Metrics serve as a
// tournament observer.
func (m *Metrics) ObserveComparison(_ context.Context, result model.ComparisonResult) error {
	m.comparisons.WithLabelValues(string(result.Verdict)).Inc()
	return nil
}

// WriteTextfile writes everything g gathers in the text exposition format,
// replacing path atomically. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
