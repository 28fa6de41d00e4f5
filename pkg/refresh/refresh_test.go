package refresh

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/initializr/pkg/feed"
	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/metadata/metadatatest"
	"github.com/matzehuels/initializr/pkg/observability"
	"github.com/matzehuels/initializr/pkg/version"
)

type staticSource struct {
	doc *feed.Document
	err error
}

func (s staticSource) Fetch(context.Context) (*feed.Document, error) {
	return s.doc, s.err
}

func release(fw, platform string, current bool) feed.Release {
	return feed.Release{
		Info:     feed.Info{Version: fw, VersionDisplayName: fw, Current: current},
		BootInfo: feed.Info{Version: platform, VersionDisplayName: platform},
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// placeholderCatalog ranges "reactive" with a placeholder so that its
// effective range follows the platform versions.
func placeholderCatalog(t *testing.T) *metadata.Catalog {
	t.Helper()
	p := metadatatest.Properties()
	p.Dependencies[0].Content[1].CompatibilityRange = "2.1.x.RELEASE"
	c, err := metadata.FromProperties(p).Build()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestStrategyUpdate(t *testing.T) {
	current := placeholderCatalog(t)
	src := staticSource{doc: &feed.Document{ProjectReleases: []feed.Release{
		release("3.2.0", "2.2.0.M4", false),
		release("3.1.1", "2.1.7.RELEASE", true),
	}}}

	next := NewStrategy(src, quietLogger()).Update(context.Background(), current)
	if next == current {
		t.Fatal("Update() should return a new catalog")
	}

	// Framework default follows the current flag, platform default falls
	// back to the first release.
	if got := next.FrameworkVersions.DefaultID(); got != "3.1.1" {
		t.Errorf("framework default = %q, want 3.1.1", got)
	}
	if got := next.PlatformVersions.DefaultID(); got != "2.2.0.M4" {
		t.Errorf("platform default = %q, want 2.2.0.M4", got)
	}
	if bound, _ := next.BoundPlatformVersion("3.1.1"); bound != "2.1.7.RELEASE" {
		t.Errorf("3.1.1 bound to %q", bound)
	}

	reactive, _ := next.Dependencies.Get("reactive")
	if reactive.Match(version.MustParse("2.1.6.RELEASE")) {
		t.Error("reactive range should follow the refreshed platform versions")
	}
	if !reactive.Match(version.MustParse("2.1.7.RELEASE")) {
		t.Error("reactive should match 2.1.7.RELEASE")
	}

	// The previous catalog is untouched.
	if got := current.PlatformVersions.DefaultID(); got != "2.1.6.RELEASE" {
		t.Errorf("current platform default changed to %q", got)
	}
	old, _ := current.Dependencies.Get("reactive")
	if !old.Match(version.MustParse("2.1.6.RELEASE")) {
		t.Error("current dependency ranges changed")
	}
}

func TestStrategyUpdateFailureKeepsCurrent(t *testing.T) {
	current := metadatatest.Catalog(t)
	tests := []struct {
		name string
		src  feed.Source
	}{
		{"fetch error", staticSource{err: stderrors.New("connection refused")}},
		{"invalid feed", staticSource{doc: &feed.Document{ProjectReleases: []feed.Release{{}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewStrategy(tt.src, quietLogger()).Update(context.Background(), current); got != current {
				t.Error("Update() should return the current catalog on failure")
			}
		})
	}
}

func TestStrategyUpdateEmptyFeed(t *testing.T) {
	current := metadatatest.Catalog(t)
	next := NewStrategy(staticSource{doc: &feed.Document{}}, quietLogger()).Update(context.Background(), current)
	if next.PlatformVersions.Len() != 3 || next.FrameworkVersions.Len() != 2 {
		t.Errorf("empty feed changed the axes: %d platforms, %d frameworks",
			next.PlatformVersions.Len(), next.FrameworkVersions.Len())
	}
}

func TestStrategyUpdateWithoutFrameworkAxis(t *testing.T) {
	p := metadatatest.Properties()
	p.Env.FrameworkAxis = false
	current, err := metadata.FromProperties(p).Build()
	if err != nil {
		t.Fatal(err)
	}
	src := staticSource{doc: &feed.Document{ProjectReleases: []feed.Release{release("4.0.0", "2.1.7.RELEASE", true)}}}

	next := NewStrategy(src, quietLogger()).Update(context.Background(), current)
	if _, ok := next.FrameworkVersions.Get("4.0.0"); ok {
		t.Error("framework versions should not be refreshed without a framework axis")
	}
	if next.PlatformVersions.DefaultID() != "2.1.7.RELEASE" {
		t.Errorf("platform default = %q", next.PlatformVersions.DefaultID())
	}
}

type recordingRefreshHooks struct {
	observability.NoopRefreshHooks
	mu        sync.Mutex
	starts    int
	platforms []int
	errs      []error
}

func (h *recordingRefreshHooks) OnRefreshStart(context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *recordingRefreshHooks) OnRefreshComplete(_ context.Context, platforms, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.platforms = append(h.platforms, platforms)
	h.errs = append(h.errs, err)
}

func TestProviderRefresh(t *testing.T) {
	hooks := &recordingRefreshHooks{}
	observability.SetRefreshHooks(hooks)
	defer observability.Reset()

	initial := metadatatest.Catalog(t)
	src := staticSource{doc: &feed.Document{ProjectReleases: []feed.Release{release("3.1.1", "2.1.7.RELEASE", true)}}}
	p := NewProvider(initial, NewStrategy(src, quietLogger()), quietLogger())

	if p.Get() != initial {
		t.Fatal("Get() should return the initial catalog")
	}
	served, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if served != p.Get() || served == initial {
		t.Error("Refresh() should publish a new catalog")
	}
	if served.PlatformVersions.Len() != 1 {
		t.Errorf("platforms = %d, want 1", served.PlatformVersions.Len())
	}

	if hooks.starts != 1 || len(hooks.platforms) != 1 || hooks.platforms[0] != 1 || hooks.errs[0] != nil {
		t.Errorf("hooks: starts=%d platforms=%v errs=%v", hooks.starts, hooks.platforms, hooks.errs)
	}
}

func TestProviderRefreshFailure(t *testing.T) {
	initial := metadatatest.Catalog(t)
	p := NewProvider(initial, NewStrategy(staticSource{err: stderrors.New("boom")}, quietLogger()), quietLogger())

	served, err := p.Refresh(context.Background())
	if err == nil {
		t.Error("Refresh() should report the failure")
	}
	if served != initial || p.Get() != initial {
		t.Error("failed refresh should keep the previous catalog")
	}
}

func TestProviderWithoutStrategy(t *testing.T) {
	initial := metadatatest.Catalog(t)
	p := NewProvider(initial, nil, nil)
	served, err := p.Refresh(context.Background())
	if err != nil || served != initial {
		t.Errorf("Refresh() = %p, %v", served, err)
	}
}

// alternatingSource serves 2.1.7 and 2.1.8 as the latest 2.1 platform in turn.
type alternatingSource struct {
	n atomic.Int64
}

func (s *alternatingSource) Fetch(context.Context) (*feed.Document, error) {
	platform := "2.1.7.RELEASE"
	if s.n.Add(1)%2 == 0 {
		platform = "2.1.8.RELEASE"
	}
	return &feed.Document{ProjectReleases: []feed.Release{
		release("3.2.0", "2.2.0.M4", false),
		release("3.1.1", platform, true),
	}}, nil
}

func TestProviderConcurrentReaders(t *testing.T) {
	p := NewProvider(placeholderCatalog(t), NewStrategy(&alternatingSource{}, quietLogger()), quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				assertConsistent(t, p.Get())
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if _, err := p.Refresh(context.Background()); err != nil {
			t.Errorf("Refresh() error: %v", err)
		}
	}
	cancel()
	wg.Wait()
}

// assertConsistent checks that the placeholder range of "reactive" was
// computed against the platform versions of the same snapshot.
func assertConsistent(t *testing.T, c *metadata.Catalog) {
	var latest version.Version
	for _, e := range c.PlatformVersions.Content() {
		v := version.MustParse(e.ID)
		if v.Major == 2 && v.Minor == 1 && version.Compare(v, latest) > 0 {
			latest = v
		}
	}
	reactive, _ := c.Dependencies.Get("reactive")
	if rng := reactive.Range(); rng == nil || !version.Equal(rng.Lower, latest) {
		t.Errorf("reactive range %v computed against another snapshot than %s", rng, latest)
	}
}

type countingSource struct {
	fetched chan struct{}
}

func (s *countingSource) Fetch(context.Context) (*feed.Document, error) {
	s.fetched <- struct{}{}
	return &feed.Document{ProjectReleases: []feed.Release{release("3.1.1", "2.1.7.RELEASE", true)}}, nil
}

func TestSchedulerRunAndTrigger(t *testing.T) {
	src := &countingSource{fetched: make(chan struct{})}
	p := NewProvider(metadatatest.Catalog(t), NewStrategy(src, quietLogger()), quietLogger())
	s := NewScheduler(p, 0, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	waitFetch := func(what string) {
		t.Helper()
		select {
		case <-src.fetched:
		case <-time.After(5 * time.Second):
			t.Fatalf("no fetch after %s", what)
		}
	}
	waitFetch("start")
	s.Trigger()
	waitFetch("trigger")

	cancel()
	select {
	case err := <-done:
		if !stderrors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop")
	}
}

func TestSchedulerTriggerCoalesces(t *testing.T) {
	s := NewScheduler(NewProvider(nil, nil, nil), time.Minute, nil)
	s.Trigger()
	s.Trigger()
	if len(s.trigger) != 1 {
		t.Errorf("pending triggers = %d, want 1", len(s.trigger))
	}
}
