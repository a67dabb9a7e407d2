package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsExposition(t *testing.T) {
	m := New()
	m.ObserveAnalysis(300*time.Millisecond, nil)
	m.ObserveAnalysis(0, errors.New("boom"))
	m.ObserveReport("pdf", nil)
	m.SetHistoryEntries(7)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	for _, want := range []string{
		`cafe_analyses_total{outcome="success"} 1`,
		`cafe_analyses_total{outcome="error"} 1`,
		`cafe_reports_total{format="pdf",outcome="success"} 1`,
		`cafe_history_entries 7`,
		`cafe_analysis_duration_seconds_count 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAnalysis(time.Second, nil)
	m.ObserveReport("json", nil)
	m.SetHistoryEntries(1)
	m.SetNotificationClients(1)
}
