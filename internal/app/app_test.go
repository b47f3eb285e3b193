package app_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/mosaic-ui/mosaic/internal/adapters/cache"
	"github.com/mosaic-ui/mosaic/internal/adapters/detect"
	"github.com/mosaic-ui/mosaic/internal/adapters/hash"
	"github.com/mosaic-ui/mosaic/internal/adapters/library"
	"github.com/mosaic-ui/mosaic/internal/adapters/loader"
	"github.com/mosaic-ui/mosaic/internal/adapters/logger"
	"github.com/mosaic-ui/mosaic/internal/adapters/manifest"
	"github.com/mosaic-ui/mosaic/internal/adapters/rewrite"
	"github.com/mosaic-ui/mosaic/internal/adapters/telemetry"
	"github.com/mosaic-ui/mosaic/internal/adapters/transpile"
	"github.com/mosaic-ui/mosaic/internal/app"
	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
	"github.com/mosaic-ui/mosaic/internal/core/ports/mocks"
	"github.com/mosaic-ui/mosaic/internal/engine/pipeline"
)

const greeting = `export default function Greeting(props) {
  return <p>Hello, {props.name}</p>;
}`

// newTestApp wires an App over the real compile stack. Fetcher and library
// default to an empty stub and the stock library when nil.
func newTestApp(t *testing.T, fetcher ports.Fetcher, lib ports.Library) (*app.App, *cache.Cache) {
	t.Helper()
	a, c := newTestAppWithStore(t, fetcher, lib, nil)
	return a, c
}

func newTestAppWithStore(t *testing.T, fetcher ports.Fetcher, lib ports.Library, store ports.ManifestStore) (*app.App, *cache.Cache) {
	t.Helper()
	singletons := domain.NewSingletonSet([]string{"ui-runtime"})
	c, err := cache.New(8)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	if lib == nil {
		lib = library.New()
	}
	log := logger.NewWithWriter(io.Discard)
	pipe := pipeline.New(
		detect.New(),
		rewrite.New("https://esm.sh", false),
		transpile.New(),
		c,
		loader.New(singletons, fetcher, nil),
		hash.New(),
		telemetry.NewNoOpTracer(),
		log,
		singletons,
	)
	return app.New(pipe, fetcher, lib, c, hash.New(), store, log), c
}

func TestIngestGenerated(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)

	rec, err := a.IngestGenerated(greeting, "a greeting card")
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if !strings.HasPrefix(rec.ID, "generated:") {
		t.Errorf("id = %q", rec.ID)
	}
	if rec.Origin != domain.OriginGenerated {
		t.Errorf("origin = %v", rec.Origin)
	}
	if rec.Prompt != "a greeting card" {
		t.Errorf("prompt = %q", rec.Prompt)
	}
	if rec.OriginalHash == "" {
		t.Error("missing original hash")
	}

	// Re-ingesting identical source returns the existing record.
	again, err := a.IngestGenerated(greeting, "a greeting card")
	if err != nil {
		t.Fatalf("re-ingest failed: %v", err)
	}
	if again != rec {
		t.Error("identical source produced a second record")
	}
}

func TestIngestGenerated_EmptySource(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)

	if _, err := a.IngestGenerated("", ""); !errors.Is(err, domain.ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
}

func TestIngestRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), "https://widgets.test/card.jsx").
		Return(ports.FetchResult{Source: greeting, ContentType: "text/javascript"}, nil)
	a, _ := newTestApp(t, fetcher, nil)

	rec, err := a.IngestRemote(context.Background(), "https://widgets.test/card.jsx")
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if rec.Origin != domain.OriginRemoteImport {
		t.Errorf("origin = %v", rec.Origin)
	}
	if rec.OriginLocator != "https://widgets.test/card.jsx" {
		t.Errorf("locator = %q", rec.OriginLocator)
	}
}

func TestIngestRemote_FetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(ports.FetchResult{}, domain.ErrFetchFailed)
	a, _ := newTestApp(t, fetcher, nil)

	_, err := a.IngestRemote(context.Background(), "https://widgets.test/gone.jsx")
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed, got %v", err)
	}
}

func TestIngestBuiltin(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)

	rec, err := a.IngestBuiltin("Badge")
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if rec.Origin != domain.OriginBuiltinLibrary {
		t.Errorf("origin = %v", rec.Origin)
	}

	if _, err := a.IngestBuiltin("NoSuchComponent"); !errors.Is(err, domain.ErrComponentNotFound) {
		t.Errorf("expected ErrComponentNotFound, got %v", err)
	}
}

func TestIngestBuiltin_PrecompiledSkipsBuild(t *testing.T) {
	lib := library.FromComponents([]ports.LibraryComponent{{
		Name:        "Static",
		Precompiled: "module.exports.default = function Static() { return h('b', null, 'lib'); };\n",
	}})
	a, _ := newTestApp(t, nil, lib)

	rec, err := a.IngestBuiltin("Static")
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	exec, err := a.RequestExecutable(context.Background(), rec.ID, false)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	node, err := exec.Constructor.Render(nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := node.HTML(); got != "<b>lib</b>" {
		t.Errorf("html = %q", got)
	}
}

func TestRequestExecutable(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)
	ctx := context.Background()

	rec, err := a.IngestGenerated(greeting, "")
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	exec, err := a.RequestExecutable(ctx, rec.ID, false)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	node, err := exec.Constructor.Render(map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := node.HTML(); got != "<p>Hello, Ada</p>" {
		t.Errorf("html = %q", got)
	}

	if rec.CompiledHash == "" || rec.CompiledSource == "" {
		t.Error("record missing compiled fields")
	}
	if rec.Ref != exec.Ref {
		t.Error("record does not track the live ref")
	}
	if rec.Metrics.CacheHit {
		t.Error("first request counted as a cache hit")
	}

	if _, err := a.RequestExecutable(ctx, rec.ID, false); err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	if !rec.Metrics.CacheHit {
		t.Error("second request missed the cache")
	}
}

func TestRequestExecutable_RecordsManifest(t *testing.T) {
	store, err := manifest.NewStore(filepath.Join(t.TempDir(), "manifest.json"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	a, _ := newTestAppWithStore(t, nil, nil, store)
	ctx := context.Background()

	rec, err := a.IngestGenerated(greeting, "")
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if _, err := a.RequestExecutable(ctx, rec.ID, false); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	info, ok := store.Lookup(rec.OriginalHash)
	if !ok {
		t.Fatal("compile was not recorded in the manifest")
	}
	if info.RecordID != rec.ID || info.CompiledHash != rec.CompiledHash {
		t.Errorf("manifest entry = %+v", info)
	}
}

func TestRequestExecutable_UnknownRecord(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)

	_, err := a.RequestExecutable(context.Background(), "generated:missing", false)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDestroyRecord_CacheOwnsSharedRef(t *testing.T) {
	a, c := newTestApp(t, nil, nil)
	ctx := context.Background()

	rec, err := a.IngestGenerated(greeting, "")
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	exec, err := a.RequestExecutable(ctx, rec.ID, false)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := a.DestroyRecord(rec.ID); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}

	// The ref is cache-resident; destruction must not kill the cached entry.
	if exec.Ref.Revoked() {
		t.Error("destroy revoked a cache-owned ref")
	}
	if c.Len() != 1 {
		t.Errorf("cache len = %d", c.Len())
	}
	if _, err := a.Record(rec.ID); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("record survived destruction: %v", err)
	}
	// The ownership check peeks; only the compile's miss is on the books.
	if stats := c.Stats(); stats.Hits != 0 || stats.Misses != 1 {
		t.Errorf("destroy distorted cache stats: %+v", stats)
	}
}

func TestDestroyRecord_RevokesPrivateRef(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)
	ctx := context.Background()

	rec, err := a.IngestGenerated(greeting, "")
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if _, err := a.RequestExecutable(ctx, rec.ID, false); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	forced, err := a.RequestExecutable(ctx, rec.ID, true)
	if err != nil {
		t.Fatalf("forced request failed: %v", err)
	}

	// The forced ref is not cache-resident, so destruction owns it.
	if err := a.DestroyRecord(rec.ID); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}
	if !forced.Ref.Revoked() {
		t.Error("destroy left a private ref unrevoked")
	}
}

func TestDestroyRecord_Unknown(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)

	if err := a.DestroyRecord("generated:missing"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}
