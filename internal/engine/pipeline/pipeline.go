// Package pipeline orchestrates the compile path: detect, rewrite,
// transpile, cache, load. Concurrent requests for identical source coalesce
// onto one compilation.
package pipeline

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// loadRetryDelay is the pause before the single retry of a failed load.
const loadRetryDelay = 100 * time.Millisecond

// Options tune one compile request.
type Options struct {
	// ForceRecompile bypasses the cache read for this request. The existing
	// entry is neither served nor evicted; the caller gets a fresh module.
	ForceRecompile bool
	// Precompiled, when non-empty, is trusted compiled text; the detect,
	// rewrite, and transpile stages are skipped.
	Precompiled string
}

// Result is the outcome of one compile request.
type Result struct {
	OriginalHash   string
	CompiledHash   string
	CompiledSource string
	Dependencies   []string
	Inferred       []string
	Executable     *ports.Executable
	CacheHit       bool
	Duration       time.Duration
}

// Pipeline wires the compile stages together.
type Pipeline struct {
	detector   ports.Detector
	rewriter   ports.Rewriter
	transpiler ports.Transpiler
	cache      ports.ComponentCache
	loader     ports.Loader
	hasher     ports.Hasher
	tracer     ports.Tracer
	log        ports.Logger
	singletons domain.SingletonSet

	flight  singleflight.Group
	mu      sync.Mutex
	waiting map[string]int
}

// New creates a Pipeline.
func New(
	detector ports.Detector,
	rewriter ports.Rewriter,
	transpiler ports.Transpiler,
	cache ports.ComponentCache,
	loader ports.Loader,
	hasher ports.Hasher,
	tracer ports.Tracer,
	log ports.Logger,
	singletons domain.SingletonSet,
) *Pipeline {
	return &Pipeline{
		detector:   detector,
		rewriter:   rewriter,
		transpiler: transpiler,
		cache:      cache,
		loader:     loader,
		hasher:     hasher,
		tracer:     tracer,
		log:        log,
		singletons: singletons,
		waiting:    make(map[string]int),
	}
}

// Compile runs source through the pipeline and returns a loaded executable.
// Identical source compiling concurrently is coalesced: one compilation runs
// and every caller shares its result. A caller's cancellation releases only
// that caller; the compilation itself finishes for the others.
func (p *Pipeline) Compile(ctx context.Context, name, source string, opts Options) (*Result, error) {
	if source == "" && opts.Precompiled == "" {
		return nil, stageError(domain.KindFormat, "detect",
			zerr.With(domain.ErrEmptySource, "component", name))
	}

	originalHash := p.hasher.HashSource(source + opts.Precompiled)
	key := originalHash + "|force=" + strconv.FormatBool(opts.ForceRecompile)

	p.addWaiter(key)
	ch := p.flight.DoChan(key, func() (any, error) {
		// Detached from any single caller; survivors still want the result.
		res, err := p.compileOnce(context.WithoutCancel(ctx), name, source, originalHash, opts)
		if err == nil && !res.CacheHit && p.waiterCount(key) == 0 {
			// Everyone hung up before the load finished. Discard the fresh
			// module; a handle nobody holds would otherwise never be revoked.
			res.Executable.Ref.Revoke()
			if !opts.ForceRecompile {
				p.cache.Remove(originalHash)
			}
		}
		return res, err
	})

	select {
	case out := <-ch:
		p.dropWaiter(key)
		if out.Err != nil {
			return nil, out.Err
		}
		return out.Val.(*Result), nil
	case <-ctx.Done():
		p.dropWaiter(key)
		return nil, ctx.Err()
	}
}

func (p *Pipeline) addWaiter(key string) {
	p.mu.Lock()
	p.waiting[key]++
	p.mu.Unlock()
}

func (p *Pipeline) dropWaiter(key string) {
	p.mu.Lock()
	if p.waiting[key]--; p.waiting[key] <= 0 {
		delete(p.waiting, key)
	}
	p.mu.Unlock()
}

func (p *Pipeline) waiterCount(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waiting[key]
}

// compileOnce is the uncoalesced compile path.
func (p *Pipeline) compileOnce(ctx context.Context, name, source, originalHash string, opts Options) (res *Result, err error) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "compile "+name)
	span.SetAttribute("original_hash", originalHash)
	defer func() { span.End(err) }()

	if !opts.ForceRecompile {
		entry, ok := p.cache.Get(originalHash)
		if ok && entry.Ref.Revoked() {
			// A dead entry cannot serve; drop it so the fresh compile can
			// take its slot.
			p.cache.Remove(originalHash)
			ok = false
		}
		if ok {
			span.Cached()
			return &Result{
				OriginalHash:   originalHash,
				CompiledHash:   entry.CompiledHash,
				CompiledSource: entry.CompiledSource,
				Dependencies:   entry.Dependencies,
				Executable:     &ports.Executable{Constructor: entry.Constructor, Ref: entry.Ref},
				CacheHit:       true,
				Duration:       time.Since(start),
			}, nil
		}
	}

	compiled := opts.Precompiled
	var deps, inferred []string
	if compiled == "" {
		compiled, deps, inferred, err = p.build(source)
		if err != nil {
			return nil, err
		}
	}
	compiledHash := p.hasher.HashSource(compiled)
	span.SetAttribute("compiled_hash", compiledHash)

	exec, err := p.load(ctx, "component:"+originalHash, compiled)
	if err != nil {
		return nil, err
	}

	if !opts.ForceRecompile {
		p.cache.Put(originalHash, domain.CacheEntry{
			CompiledSource: compiled,
			CompiledHash:   compiledHash,
			Constructor:    exec.Constructor,
			Ref:            exec.Ref,
			Dependencies:   deps,
			CreatedAt:      time.Now(),
			SizeEstimate:   len(compiled),
		})
	}

	p.log.Info("compiled " + name + " (" + originalHash + ")")
	return &Result{
		OriginalHash:   originalHash,
		CompiledHash:   compiledHash,
		CompiledSource: compiled,
		Dependencies:   deps,
		Inferred:       inferred,
		Executable:     exec,
		Duration:       time.Since(start),
	}, nil
}

// build runs the front half of the pipeline: detect, rewrite, transpile.
func (p *Pipeline) build(source string) (compiled string, deps, inferred []string, err error) {
	working := source
	if p.detector.Detect(working) == domain.DialectLegacy {
		working, err = p.detector.WrapLegacy(working)
		if err != nil {
			return "", nil, nil, stageError(domain.KindFormat, "detect", err)
		}
	}

	rewritten, err := p.rewriter.Rewrite(working, p.singletons)
	if err != nil {
		return "", nil, nil, stageError(domain.KindImportResolution, "rewrite", err)
	}

	compiled, err = p.transpiler.Transpile(rewritten.Source)
	if err != nil {
		return "", nil, nil, stageError(domain.KindTranspile, "transpile", err)
	}
	return compiled, rewritten.Dependencies, rewritten.Inferred, nil
}

// load materializes the compiled module, retrying once when the failure is
// retryable. Runtime failures never retry; executing a module body twice for
// the same inputs gives the same throw.
func (p *Pipeline) load(ctx context.Context, name, compiled string) (*ports.Executable, error) {
	exec, err := p.loader.Load(ctx, name, compiled)
	if err == nil {
		return exec, nil
	}

	kind := domain.ClassifyError(err)
	if !kind.Retryable() {
		return nil, stageError(kind, "load", err)
	}

	select {
	case <-time.After(loadRetryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	p.log.Info("retrying load of " + name)

	exec, retryErr := p.loader.Load(ctx, name, compiled)
	if retryErr != nil {
		return nil, stageError(domain.ClassifyError(retryErr), "load", retryErr)
	}
	return exec, nil
}

// stageError wraps a stage failure as a PipelineError, lifting offset and
// specifier metadata when the stage attached them.
func stageError(kind domain.ErrorKind, stage string, err error) error {
	pe := domain.NewPipelineError(kind, stage, err)
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		meta := zErr.Metadata()
		if off, ok := meta["offset"].(int); ok {
			pe.Offset = off
		}
		if spec, ok := meta["specifier"].(string); ok {
			pe.Specifier = spec
		}
	}
	return pe
}
