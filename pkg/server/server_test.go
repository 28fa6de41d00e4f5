package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/initializr/pkg/feed"
	"github.com/matzehuels/initializr/pkg/metadata/metadatatest"
	"github.com/matzehuels/initializr/pkg/observability"
	"github.com/matzehuels/initializr/pkg/project"
	"github.com/matzehuels/initializr/pkg/refresh"
)

type staticSource struct{ doc *feed.Document }

func (s staticSource) Fetch(context.Context) (*feed.Document, error) { return s.doc, nil }

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *refresh.Provider) {
	t.Helper()
	logger := log.New(io.Discard)
	src := staticSource{doc: &feed.Document{ProjectReleases: []feed.Release{{
		Info:     feed.Info{Version: "3.1.1", Current: true},
		BootInfo: feed.Info{Version: "2.1.7.RELEASE"},
	}}}}
	p := refresh.NewProvider(metadatatest.Catalog(t), refresh.NewStrategy(src, logger), logger)
	opts.Logger = logger
	ts := httptest.NewServer(New(p, opts).Handler())
	t.Cleanup(ts.Close)
	return ts, p
}

func TestMetadata(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/metadata")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	var doc map[string]map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc["bootVersion"]["default"] != "2.1.6.RELEASE" {
		t.Errorf("bootVersion = %v", doc["bootVersion"])
	}
	if _, ok := doc["frameworkVersion"]; !ok {
		t.Error("frameworkVersion missing")
	}
}

func TestDescribe(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	tests := []struct {
		name     string
		body     string
		status   int
		wantCode string
	}{
		{"valid", `{"type":"maven-project","language":"java","packaging":"jar","dependencies":["web"]}`, http.StatusOK, ""},
		{"below floor", `{"bootVersion":"1.4.0.RELEASE"}`, http.StatusBadRequest, "UNSUPPORTED_VERSION"},
		{"unknown dependency", `{"dependencies":["nonexistent-dep"]}`, http.StatusBadRequest, "UNKNOWN_DEPENDENCY"},
		{"malformed", `{"dependencies":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"dependency":["web"]}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/describe", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}

			if tt.wantCode == "" {
				var d project.Descriptor
				if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
					t.Fatal(err)
				}
				if d.BuildSystem != "maven" || d.PlatformVersion != "2.1.6.RELEASE" || len(d.Dependencies) != 1 {
					t.Errorf("descriptor = %+v", d)
				}
				return
			}

			var e errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				t.Fatal(err)
			}
			if string(e.Code) != tt.wantCode || e.Message == "" {
				t.Errorf("error = %+v, want code %s", e, tt.wantCode)
			}
		})
	}
}

func TestRefreshSynchronous(t *testing.T) {
	ts, p := newTestServer(t, Options{})

	resp, err := http.Post(ts.URL+"/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || body.Status != "refreshed" || body.Platforms != 1 {
		t.Errorf("status=%d body=%+v", resp.StatusCode, body)
	}
	if p.Get().PlatformVersions.DefaultID() != "2.1.7.RELEASE" {
		t.Errorf("catalog not refreshed: %s", p.Get().PlatformVersions.DefaultID())
	}
}

func TestRefreshScheduled(t *testing.T) {
	logger := log.New(io.Discard)
	p := refresh.NewProvider(metadatatest.Catalog(t), nil, logger)
	s := refresh.NewScheduler(p, 0, logger)
	ts := httptest.NewServer(New(p, Options{Scheduler: s, Logger: logger}).Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("status = %d, want 202", resp.StatusCode)
	}
}

func TestGraph(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/graph")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "digraph G {") {
		t.Errorf("body = %.80s", body)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom := observability.NewPrometheus()
	prom.MustRegister(reg)
	observability.SetAll(prom)
	defer observability.Reset()

	ts, _ := newTestServer(t, Options{Gatherer: reg})

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/describe", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `initializr_resolve_total{code="OK"} 1`) {
		t.Errorf("metrics missing resolve counter:\n%s", body)
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}
