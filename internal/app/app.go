// Package app implements the application layer for mosaic: component
// ingestion from the three source origins, record lifecycle, and executable
// requests against the compile pipeline.
package app

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
	"github.com/mosaic-ui/mosaic/internal/engine/pipeline"
)

// App tracks component records and drives them through the pipeline.
type App struct {
	pipeline *pipeline.Pipeline
	fetcher  ports.Fetcher
	library  ports.Library
	cache    ports.ComponentCache
	hasher   ports.Hasher
	manifest ports.ManifestStore
	log      ports.Logger

	mu      sync.RWMutex
	records map[string]*domain.ComponentRecord
}

// New creates a new App instance.
func New(
	pipe *pipeline.Pipeline,
	fetcher ports.Fetcher,
	library ports.Library,
	cache ports.ComponentCache,
	hasher ports.Hasher,
	manifest ports.ManifestStore,
	log ports.Logger,
) *App {
	return &App{
		pipeline: pipe,
		fetcher:  fetcher,
		library:  library,
		cache:    cache,
		hasher:   hasher,
		manifest: manifest,
		log:      log,
		records:  make(map[string]*domain.ComponentRecord),
	}
}

// IngestGenerated registers source text produced by the generation
// collaborator. The prompt is kept as record metadata only.
func (a *App) IngestGenerated(source, prompt string) (*domain.ComponentRecord, error) {
	rec, err := a.ingest(domain.OriginGenerated, source, "")
	if err != nil {
		return nil, err
	}
	rec.Prompt = prompt
	return rec, nil
}

// IngestRemote fetches source from url and registers it. The fetcher gates
// content type and size before any text reaches the pipeline.
func (a *App) IngestRemote(ctx context.Context, url string) (*domain.ComponentRecord, error) {
	fetched, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, zerr.With(err, "url", url)
	}
	rec, err := a.ingest(domain.OriginRemoteImport, fetched.Source, "")
	if err != nil {
		return nil, err
	}
	rec.OriginLocator = url
	return rec, nil
}

// IngestBuiltin registers a component from the built-in library. A component
// shipping precompiled text carries it on the record so the pipeline skips
// the rewrite and transpile stages.
func (a *App) IngestBuiltin(name string) (*domain.ComponentRecord, error) {
	comp, err := a.library.Lookup(name)
	if err != nil {
		return nil, err
	}
	return a.ingest(domain.OriginBuiltinLibrary, comp.Source, comp.Precompiled)
}

func (a *App) ingest(origin domain.Origin, source, precompiled string) (*domain.ComponentRecord, error) {
	if source == "" && precompiled == "" {
		return nil, zerr.With(domain.ErrEmptySource, "origin", origin.String())
	}

	hash := a.hasher.HashSource(source + precompiled)
	id := origin.String() + ":" + hash

	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.records[id]; ok {
		return existing, nil
	}
	rec := &domain.ComponentRecord{
		ID:             id,
		OriginalSource: source,
		OriginalHash:   hash,
		Origin:         origin,
		Precompiled:    precompiled,
	}
	a.records[id] = rec
	a.log.Info("ingested " + id)
	return rec, nil
}

// RequestExecutable compiles the record's source and returns the live
// executable. force bypasses the cache read without evicting the resident
// entry; the record then tracks the fresh ref.
func (a *App) RequestExecutable(ctx context.Context, id string, force bool) (*ports.Executable, error) {
	rec, err := a.Record(id)
	if err != nil {
		return nil, err
	}

	res, err := a.pipeline.Compile(ctx, rec.ID, rec.OriginalSource, pipeline.Options{
		ForceRecompile: force,
		Precompiled:    rec.Precompiled,
	})
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	rec.CompiledSource = res.CompiledSource
	rec.CompiledHash = res.CompiledHash
	rec.Ref = res.Executable.Ref
	rec.Metrics = domain.Metrics{
		CompileDuration: res.Duration,
		DependencyCount: len(res.Dependencies),
		CacheHit:        res.CacheHit,
	}
	a.mu.Unlock()

	if a.manifest != nil && !res.CacheHit {
		err := a.manifest.Record(domain.CompileInfo{
			RecordID:     rec.ID,
			Origin:       rec.Origin.String(),
			OriginalHash: res.OriginalHash,
			CompiledHash: res.CompiledHash,
			Dependencies: res.Dependencies,
			CompiledAt:   time.Now(),
		})
		if err != nil {
			// The manifest is advisory; a failed write never fails the compile.
			a.log.Error(zerr.Wrap(err, "failed to record compile manifest"))
		}
	}
	return res.Executable, nil
}

// Record returns the record for id or domain.ErrRecordNotFound.
func (a *App) Record(id string) (*domain.ComponentRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	rec, ok := a.records[id]
	if !ok {
		return nil, zerr.With(domain.ErrRecordNotFound, "id", id)
	}
	return rec, nil
}

// Records lists all tracked records.
func (a *App) Records() []*domain.ComponentRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*domain.ComponentRecord, 0, len(a.records))
	for _, rec := range a.records {
		out = append(out, rec)
	}
	return out
}

// DestroyRecord drops the record and revokes its ref. A ref shared with a
// live cache entry is left alone; the cache owns shared refs and revokes
// them on eviction.
func (a *App) DestroyRecord(id string) error {
	a.mu.Lock()
	rec, ok := a.records[id]
	if ok {
		delete(a.records, id)
	}
	a.mu.Unlock()
	if !ok {
		return zerr.With(domain.ErrRecordNotFound, "id", id)
	}

	if rec.Ref != nil {
		// Peek keeps the ownership check from bumping recency or stats.
		entry, cached := a.cache.Peek(rec.OriginalHash)
		if !cached || entry.Ref != rec.Ref {
			rec.Ref.Revoke()
		}
	}
	a.log.Info("destroyed " + id)
	return nil
}
