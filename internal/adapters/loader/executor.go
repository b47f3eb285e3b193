// Package loader materializes compiled component modules inside an embedded
// JS engine and extracts their default exports as mountable components.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"
	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

var _ ports.Loader = (*Executor)(nil)

// moduleRecord tracks one materialized module. loading guards against
// import cycles: a cycle observes the partially filled exports object, the
// CommonJS contract.
type moduleRecord struct {
	exports *goja.Object
	loading bool
}

// Executor evaluates compiled component modules on a single goja runtime.
// The runtime is not goroutine safe, so every entry point serializes on mu.
type Executor struct {
	mu         sync.Mutex
	vm         *goja.Runtime
	modules    map[string]*moduleRecord
	framework  *goja.Object
	singletons domain.SingletonSet
	fetcher    ports.Fetcher
	log        ports.Logger

	// ctx is the context of the in-flight Load; dependency fetches during
	// evaluation run under it.
	ctx context.Context

	// current is the hook frame of the component currently rendering.
	current *hookFrame
}

// New creates an Executor. singletons names the specifiers redirected to the
// shared framework module; fetcher retrieves URL dependencies on demand.
func New(singletons domain.SingletonSet, fetcher ports.Fetcher, log ports.Logger) *Executor {
	e := &Executor{
		vm:         goja.New(),
		modules:    make(map[string]*moduleRecord),
		singletons: singletons,
		fetcher:    fetcher,
		log:        log,
	}
	e.vm.SetFieldNameMapper(goja.UncapFieldNameMapper())
	e.framework = e.frameworkModule()

	// Legacy scripts reference the factory without importing it.
	_ = e.vm.Set("h", e.hFunc)
	_ = e.vm.Set("Fragment", domain.FragmentTag)
	_ = e.vm.Set("__import", e.importFunc)
	return e
}

// Load evaluates compiled module text under name and extracts the default
// export. The returned ref revokes the module from the registry.
func (e *Executor) Load(ctx context.Context, name, compiled string) (*ports.Executable, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctx = ctx
	defer func() { e.ctx = nil }()

	exports, err := e.evaluate(name, compiled)
	if err != nil {
		return nil, err
	}

	def := exports.Get("default")
	if def == nil || goja.IsUndefined(def) || goja.IsNull(def) {
		e.dropModule(name)
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingDefaultExport, "module has no default export"),
			"module", name)
	}

	rec := e.modules[name]
	ref := domain.NewLoadableRef(name, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if cur, ok := e.modules[name]; ok && cur == rec {
			delete(e.modules, name)
		}
	})

	comp := &jsComponent{
		exec:  e,
		name:  name,
		value: def,
		ref:   ref,
		frame: &hookFrame{},
	}
	return &ports.Executable{Constructor: comp, Ref: ref}, nil
}

// evaluate compiles and runs module text, registering its exports under
// name. Callers hold mu.
func (e *Executor) evaluate(name, source string) (*goja.Object, error) {
	lowered := lower(source)
	wrapped := "(function(module, exports, __import) {\n" + lowered + "\n})"

	prog, err := goja.Compile(name, wrapped, true)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLoad, "compile failed: "+err.Error()), "module", name)
	}

	fnVal, err := e.vm.RunProgram(prog)
	if err != nil {
		return nil, e.classify(name, err)
	}
	fn, ok := goja.AssertFunction(fnVal)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrLoad, "module wrapper did not evaluate to a function"), "module", name)
	}

	exports := e.vm.NewObject()
	moduleObj := e.vm.NewObject()
	_ = moduleObj.Set("exports", exports)

	rec := &moduleRecord{exports: exports, loading: true}
	e.modules[name] = rec

	if _, err := fn(goja.Undefined(), moduleObj, exports, e.vm.ToValue(e.importFunc)); err != nil {
		delete(e.modules, name)
		return nil, e.classify(name, err)
	}
	rec.loading = false

	// module.exports may have been reassigned wholesale.
	if reassigned, ok := moduleObj.Get("exports").(*goja.Object); ok {
		rec.exports = reassigned
	}
	return rec.exports, nil
}

// classify maps an evaluation error to ErrLoad or ErrRuntime. Errors thrown
// from host functions keep their sentinel; anything the module body threw
// itself is a runtime failure.
func (e *Executor) classify(name string, err error) error {
	var exc *goja.Exception
	if errors.As(err, &exc) {
		if hostErr, ok := exc.Value().Export().(error); ok {
			if errors.Is(hostErr, domain.ErrLoad) || errors.Is(hostErr, domain.ErrFetchFailed) ||
				errors.Is(hostErr, domain.ErrUnsupportedContentType) || errors.Is(hostErr, domain.ErrSourceTooLarge) {
				return hostErr
			}
		}
		return zerr.With(zerr.Wrap(domain.ErrRuntime, exc.Error()), "module", name)
	}
	if errors.Is(err, domain.ErrLoad) || errors.Is(err, domain.ErrFetchFailed) {
		return err
	}
	return zerr.With(zerr.Wrap(domain.ErrRuntime, err.Error()), "module", name)
}

// dropModule removes a registry entry. Callers hold mu.
func (e *Executor) dropModule(name string) {
	delete(e.modules, name)
}

// importFunc resolves a specifier from inside evaluating module code.
// Resolution order: singleton framework module, registry, remote URL.
// Failures panic a host error that Load classifies as ErrLoad.
func (e *Executor) importFunc(call goja.FunctionCall) goja.Value {
	spec := call.Argument(0).String()

	if e.singletons.Matches(spec) {
		return e.framework
	}
	if rec, ok := e.modules[spec]; ok {
		return rec.exports
	}
	if strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://") {
		exports, err := e.loadRemote(spec)
		if err != nil {
			panic(e.vm.NewGoError(err))
		}
		return exports
	}
	panic(e.vm.NewGoError(zerr.With(zerr.Wrap(domain.ErrLoad, "unresolvable specifier"), "specifier", spec)))
}

// loadRemote fetches, lowers, and evaluates a URL dependency, memoizing it
// in the registry under its URL. Callers hold mu.
func (e *Executor) loadRemote(url string) (*goja.Object, error) {
	ctx := e.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if e.fetcher == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLoad, "no fetcher configured for remote dependency"), "url", url)
	}
	res, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, zerr.Wrap(err, "fetching dependency failed")
	}
	if e.log != nil {
		e.log.Info("fetched remote dependency " + url)
	}
	return e.evaluate(url, res.Source)
}

// jsComponent adapts a module's default export to domain.Component.
type jsComponent struct {
	exec  *Executor
	name  string
	value goja.Value
	ref   *domain.LoadableRef
	frame *hookFrame
}

// Render invokes the component function with props. Rendering retries while
// a state setter fired during the pass, so a render observes its own state
// updates settled.
func (c *jsComponent) Render(props map[string]any) (node *domain.VNode, err error) {
	e := c.exec
	e.mu.Lock()
	defer e.mu.Unlock()

	if c.ref.Revoked() {
		return nil, zerr.With(zerr.Wrap(domain.ErrLoad, "component module has been revoked"), "module", c.name)
	}

	fn, ok := goja.AssertFunction(c.value)
	if !ok {
		// A non-function default export renders as a static tree.
		return toVNode(c.value)
	}

	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.Wrap(domain.ErrRuntime, fmt.Sprint(r)), "module", c.name)
		}
	}()

	prev := e.current
	defer func() { e.current = prev }()
	e.current = c.frame

	propsVal := e.vm.ToValue(props)
	const maxPasses = 8
	for pass := 0; pass < maxPasses; pass++ {
		c.frame.reset()
		res, callErr := fn(goja.Undefined(), propsVal)
		if callErr != nil {
			return nil, e.classify(c.name, callErr)
		}
		if !c.frame.dirty {
			return toVNode(res)
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrRuntime, "render did not settle; state updates every pass"),
		"module", c.name)
}
