package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if len(m.Collectors()) != 5 {
		t.Errorf("expected 5 collectors, got %d", len(m.Collectors()))
	}
}

func TestMetrics_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		m := NewMetrics()
		reg := prometheus.NewRegistry()
		if err := m.Register(reg); err != nil {
			t.Fatalf("Register() returned error: %v", err)
		}

		m.IncMeetings(StageAlign, StatusSuccess)
		m.AddSegments(StageGenerate, StatusSuccess, 2)
		m.ObserveStageDuration(StageRank, 12)
		_ = m.ObserveComparison(context.Background(), model.ComparisonResult{Verdict: model.SideLeft})
		m.SetPoolSize(4)

		families, err := reg.Gather()
		if err != nil {
			t.Fatalf("Gather() returned error: %v", err)
		}
		expected := map[string]bool{
			MetricMeetingsTotal:      false,
			MetricSegmentsTotal:      false,
			MetricStageDuration:      false,
			MetricComparisonsTotal:   false,
			MetricTournamentPoolSize: false,
		}
		for _, family := range families {
			if _, ok := expected[family.GetName()]; ok {
				expected[family.GetName()] = true
			}
		}
		for name, found := range expected {
			if !found {
				t.Errorf("metric %s not found in gathered metrics", name)
			}
		}
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		if err := NewMetrics().Register(reg); err != nil {
			t.Fatalf("first Register() returned error: %v", err)
		}
		if err := NewMetrics().Register(reg); err == nil {
			t.Error("second Register() should have returned an error")
		}
	})
}

func counterValue(vec *prometheus.CounterVec, labels ...string) float64 {
	var m dto.Metric
	if err := vec.WithLabelValues(labels...).Write(&m); err != nil {
		return -1
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.IncMeetings(StageAlign, StatusSuccess)
	m.IncMeetings(StageAlign, StatusSuccess)
	m.IncMeetings(StageAlign, StatusFailure)
	m.AddSegments(StageGenerate, StatusSkipped, 3)
	m.AddSegments(StageGenerate, StatusSkipped, 0)

	for _, v := range []model.Side{model.SideLeft, model.SideRight, model.SideLeft} {
		if err := m.ObserveComparison(context.Background(), model.ComparisonResult{Verdict: v}); err != nil {
			t.Fatalf("ObserveComparison returned error: %v", err)
		}
	}

	if got := counterValue(m.meetings, StageAlign, StatusSuccess); got != 2 {
		t.Errorf("expected 2 successful meetings, got %v", got)
	}
	if got := counterValue(m.meetings, StageAlign, StatusFailure); got != 1 {
		t.Errorf("expected 1 failed meeting, got %v", got)
	}
	if got := counterValue(m.segments, StageGenerate, StatusSkipped); got != 3 {
		t.Errorf("expected 3 skipped segments, got %v", got)
	}
	if got := counterValue(m.comparisons, "left"); got != 2 {
		t.Errorf("expected 2 left verdicts, got %v", got)
	}

	var g dto.Metric
	m.SetPoolSize(7)
	if err := m.poolSize.Write(&g); err != nil || g.GetGauge().GetValue() != 7 {
		t.Errorf("expected pool size 7, got %v (%v)", g.GetGauge().GetValue(), err)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatal(err)
	}
	m.IncMeetings(StageAlign, StatusSuccess)

	path := filepath.Join(t.TempDir(), "textfile", "meetsum.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `meetsum_meetings_total{stage="align",status="success"} 1`) {
		t.Errorf("unexpected textfile contents:\n%s", data)
	}

	if err := WriteTextfile("", reg); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}
