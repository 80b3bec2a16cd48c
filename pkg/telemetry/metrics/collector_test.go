package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordParse(t *testing.T) {
	c := NewCollector(Config{}, nil)

	c.RecordParse(StatusSuccess, 5*time.Millisecond)
	c.RecordParse(StatusSuccess, time.Millisecond)
	c.RecordParse(StatusError, time.Millisecond)

	if got := testutil.ToFloat64(c.parsesTotal.WithLabelValues(StatusSuccess)); got != 2 {
		t.Errorf("parses_total{status=success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.parsesTotal.WithLabelValues(StatusError)); got != 1 {
		t.Errorf("parses_total{status=error} = %v, want 1", got)
	}
}

func TestCollector_RecordReloadAndSnapshot(t *testing.T) {
	c := NewCollector(Config{}, nil)

	c.RecordReload(StatusSuccess)
	c.RecordReload(StatusError)
	c.RecordSnapshotSaved()

	if got := testutil.ToFloat64(c.reloadsTotal.WithLabelValues(StatusError)); got != 1 {
		t.Errorf("reloads_total{status=error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.snapshotsSaved); got != 1 {
		t.Errorf("snapshots_saved_total = %v, want 1", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(Config{}, nil)
	c.RecordDecode(StatusSuccess)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	buf := make([]byte, 64*1024)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])
	if !strings.Contains(body, "mercator_ganymede_decodes_total") {
		t.Errorf("exposition missing decodes_total:\n%s", body)
	}
}

func TestCollector_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(Config{Namespace: "test"}, reg)

	if c.Registry() != reg {
		t.Error("Registry() did not return the provided registry")
	}
}
