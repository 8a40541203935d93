package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.StatementsLoaded == nil || m.RowsProcessed == nil || m.CacheOperations == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.LedgerTransactions.Set(3)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewWithRegisterer_Isolated(t *testing.T) {
	first := NewWithRegisterer(prometheus.NewRegistry())
	second := NewWithRegisterer(prometheus.NewRegistry())

	first.RowsProcessed.WithLabelValues("kept").Add(4)
	second.RowsProcessed.WithLabelValues("kept").Add(1)

	if got := testutil.ToFloat64(first.RowsProcessed.WithLabelValues("kept")); got != 4 {
		t.Fatalf("expected 4 kept rows, got %v", got)
	}
	if got := testutil.ToFloat64(second.RowsProcessed.WithLabelValues("kept")); got != 1 {
		t.Fatalf("expected 1 kept row, got %v", got)
	}
}
