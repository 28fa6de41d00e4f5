package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/initializr/pkg/cache"
	"github.com/matzehuels/initializr/pkg/errors"
)

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "releases.json")
	if err := os.WriteFile(path, []byte(sampleFeed), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewFileSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(doc.ProjectReleases) != 3 {
		t.Errorf("got %d releases, want 3", len(doc.ProjectReleases))
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background())
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Fetch() error = %v, want NOT_FOUND", err)
	}
}

func TestHTTPSourceCachesFeed(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := NewHTTPSource(server.URL, c, time.Hour)
	src.WithHTTPClient(server.Client())

	for i := 0; i < 2; i++ {
		doc, err := src.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if len(doc.ProjectReleases) != 3 {
			t.Errorf("got %d releases", len(doc.ProjectReleases))
		}
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
	if _, ok, _ := c.Get(context.Background(), "http:feed:"+server.URL); !ok {
		t.Error("feed body should be cached under http:feed:<url>")
	}

	src.Refresh = true
	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if requests != 2 {
		t.Errorf("refresh should bypass the cache, requests = %d", requests)
	}
}

func TestHTTPSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
		want errors.Code
	}{
		{"not found", "", http.StatusNotFound, errors.ErrCodeNotFound},
		{"bad request", "", http.StatusBadRequest, errors.ErrCodeNetwork},
		{"garbage", "<html>", http.StatusOK, errors.ErrCodeInvalidFeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			src := NewHTTPSource(server.URL, nil, time.Hour)
			src.WithHTTPClient(server.Client())
			_, err := src.Fetch(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("Fetch() error = %v, want %s", err, tt.want)
			}
		})
	}
}
