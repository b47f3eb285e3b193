package rewrite_test

import (
	"errors"
	"strings"
	"testing"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/adapters/rewrite"
	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

const registry = "https://registry.example.com"

func singletons(names ...string) domain.SingletonSet {
	return domain.NewSingletonSet(names)
}

func TestRewrite_BarePackageBecomesRegistryURL(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `import pad from 'left-pad';
export default function App() { return pad('x', 3); }
`
	res, err := r.Rewrite(src, singletons("ui-runtime"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Source, `from 'https://registry.example.com/left-pad'`) {
		t.Errorf("bare specifier not rewritten:\n%s", res.Source)
	}
	if len(res.Dependencies) != 1 || res.Dependencies[0] != registry+"/left-pad" {
		t.Errorf("dependencies = %v", res.Dependencies)
	}
}

func TestRewrite_VersionedPackage(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `import pad from 'left-pad@1.3.0';` + "\n"

	res, err := r.Rewrite(src, singletons("ui-runtime"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Source, registry+"/left-pad@1.3.0") {
		t.Errorf("versioned specifier not preserved:\n%s", res.Source)
	}
}

func TestRewrite_SingletonStaysSymbolic(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `import { useState } from 'ui-runtime';
import { Icon } from 'ui-runtime/icons';
`
	res, err := r.Rewrite(src, singletons("ui-runtime"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(res.Source, registry) {
		t.Errorf("singleton specifiers must not be rewritten:\n%s", res.Source)
	}
	if len(res.Dependencies) != 2 {
		t.Errorf("singletons still count as dependencies, got %v", res.Dependencies)
	}
}

func TestRewrite_SingletonPrefixIsNotSubpath(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `import x from 'ui-runtime-extras';` + "\n"

	res, err := r.Rewrite(src, singletons("ui-runtime"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Source, registry+"/ui-runtime-extras") {
		t.Errorf("name-prefix match must still be rewritten:\n%s", res.Source)
	}
}

func TestRewrite_PassthroughSpecifiers(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `import a from './local.js';
import b from '../up.js';
import c from 'https://cdn.example.com/mod.js';
`
	res, err := r.Rewrite(src, singletons())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != src {
		t.Errorf("relative and URL specifiers must pass through:\n%s", res.Source)
	}
	if len(res.Dependencies) != 3 {
		t.Errorf("dependencies = %v", res.Dependencies)
	}
}

func TestRewrite_ReExportSpecifier(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `export { Button } from 'ui-kit';` + "\n"

	res, err := r.Rewrite(src, singletons())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Source, registry+"/ui-kit") {
		t.Errorf("re-export specifier not rewritten:\n%s", res.Source)
	}
}

func TestRewrite_DedupesDependencies(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `import { a } from 'pkg';
import { b } from 'pkg';
`
	res, err := r.Rewrite(src, singletons())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Dependencies) != 1 {
		t.Errorf("dependencies must be deduplicated, got %v", res.Dependencies)
	}
}

func TestRewrite_InfersMissingHookImport(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `const Counter = () => {
  const [n, setN] = useState(0);
  return h('button', { onClick: () => setN(n + 1) }, n);
};
export default Counter;
`
	res, err := r.Rewrite(src, singletons("ui-runtime"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Inferred) != 1 || res.Inferred[0] != "useState" {
		t.Errorf("inferred = %v", res.Inferred)
	}
	if !strings.HasPrefix(res.Source, "import { useState } from 'ui-runtime';\n") {
		t.Errorf("synthesized import missing:\n%s", res.Source)
	}
	if res.Dependencies[0] != "ui-runtime" {
		t.Errorf("framework module must join the dependency list, got %v", res.Dependencies)
	}
}

func TestRewrite_NoInferenceWhenImported(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `import { useState } from 'ui-runtime';
const C = () => { const [n] = useState(0); return h('div', null, n); };
export default C;
`
	res, err := r.Rewrite(src, singletons("ui-runtime"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Inferred) != 0 {
		t.Errorf("nothing should be inferred, got %v", res.Inferred)
	}
}

func TestRewrite_NoInferenceWhenShadowed(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `const useState = (v) => [v, () => {}];
const C = () => { const [n] = useState(0); return n; };
export default C;
`
	res, err := r.Rewrite(src, singletons("ui-runtime"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Inferred) != 0 {
		t.Errorf("locally declared hook must not be inferred, got %v", res.Inferred)
	}
}

func TestRewrite_NoInferenceForMemberAccess(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `import React from 'ui-runtime';
const C = () => { const [n] = React.useState(0); return n; };
export default C;
`
	res, err := r.Rewrite(src, singletons("ui-runtime"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Inferred) != 0 {
		t.Errorf("member access must not trigger inference, got %v", res.Inferred)
	}
}

func TestRewrite_StrictRejectsMalformedImport(t *testing.T) {
	r := rewrite.New(registry, true)
	src := `import { broken from 'mod';` + "\n"

	_, err := r.Rewrite(src, singletons())
	if !errors.Is(err, domain.ErrImportResolution) {
		t.Errorf("expected ErrImportResolution, got %v", err)
	}

	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		t.Fatalf("expected zerr metadata on %v", err)
	}
	meta := zErr.Metadata()
	if meta["specifier"] != "mod" {
		t.Errorf("specifier metadata = %v, want the offending import named", meta["specifier"])
	}
	if _, ok := meta["offset"]; !ok {
		t.Error("offset metadata missing")
	}
}

func TestRewrite_BestEffortSkipsMalformedImport(t *testing.T) {
	r := rewrite.New(registry, false)
	src := `import { broken from 'mod';
import ok from 'fine-pkg';
`
	res, err := r.Rewrite(src, singletons())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Dependencies) != 1 || res.Dependencies[0] != registry+"/fine-pkg" {
		t.Errorf("dependencies = %v", res.Dependencies)
	}
}
