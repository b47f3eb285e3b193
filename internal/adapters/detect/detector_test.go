package detect_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mosaic-ui/mosaic/internal/adapters/detect"
	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

func TestDetect_ModuleSyntax(t *testing.T) {
	d := detect.New()

	cases := map[string]string{
		"import":         `import { useState } from 'react';` + "\nconst A = 1;",
		"export default": `export default function App() {}`,
		"export const":   `export const Panel = () => h('div');`,
		"re-export":      `export { Button } from 'ui-kit';`,
	}
	for name, src := range cases {
		if got := d.Detect(src); got != domain.DialectModule {
			t.Errorf("%s: got %s, want module", name, got)
		}
	}
}

func TestDetect_LegacyScript(t *testing.T) {
	d := detect.New()

	cases := map[string]string{
		"plain const":      `const Greeting = () => h('div', null, 'Hi');`,
		"commented import": "// import x from 'y';\nconst A = 1;",
		"quoted import":    `const s = "export default nothing";` + "\nconst A = 1;",
		"dynamic import":   `const load = () => import('mod');`,
	}
	for name, src := range cases {
		if got := d.Detect(src); got != domain.DialectLegacy {
			t.Errorf("%s: got %s, want legacy", name, got)
		}
	}
}

func TestWrapLegacy_AppendsDefaultExport(t *testing.T) {
	d := detect.New()
	src := "const Greeting = () => h('div', null, 'Hi');"

	out, err := d.WrapLegacy(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(out, "export default Greeting;\n") {
		t.Errorf("missing default export, got:\n%s", out)
	}
	if !strings.HasPrefix(out, src) {
		t.Error("original source must be preserved verbatim")
	}
}

func TestWrapLegacy_PicksLastDeclaration(t *testing.T) {
	d := detect.New()
	src := `function helper(x) { return x + 1; }
const Card = (props) => h('div', null, helper(props.n));
`
	out, err := d.WrapLegacy(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "export default Card;") {
		t.Errorf("expected Card to be exported, got:\n%s", out)
	}
}

func TestWrapLegacy_IgnoresNestedDeclarations(t *testing.T) {
	d := detect.New()
	src := `const Outer = () => {
  const inner = 1;
  function nested() {}
  return h('div', null, inner);
};
`
	out, err := d.WrapLegacy(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "export default Outer;") {
		t.Errorf("nested declarations must not win, got:\n%s", out)
	}
}

func TestWrapLegacy_ClassAndFunction(t *testing.T) {
	d := detect.New()

	out, err := d.WrapLegacy(`class Widget { render() { return null; } }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "export default Widget;") {
		t.Errorf("class declaration not picked up:\n%s", out)
	}

	out, err = d.WrapLegacy(`function App() { return h('div'); }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "export default App;") {
		t.Errorf("function declaration not picked up:\n%s", out)
	}
}

func TestWrapLegacy_NoDeclaration(t *testing.T) {
	d := detect.New()

	_, err := d.WrapLegacy(`h('div', null, 'orphan expression');`)
	if err == nil {
		t.Fatal("expected an error for source without declarations")
	}
	if !errors.Is(err, domain.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}
