// Package detect classifies component source as module or legacy dialect and
// upgrades legacy scripts to module form.
package detect

import (
	"strings"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
	"github.com/mosaic-ui/mosaic/internal/jsscan"
)

var _ ports.Detector = (*Detector)(nil)

// Detector decides the dialect of component source lexically, without
// evaluating it.
type Detector struct{}

// New creates a new Detector.
func New() *Detector {
	return &Detector{}
}

// Detect classifies source. Static top-level import or export statements make
// it a module; anything else, including dynamic import() calls, is a legacy
// script. Import-like text inside strings or comments does not count.
func (d *Detector) Detect(source string) domain.Dialect {
	if jsscan.Scan(source).HasModuleSyntax() {
		return domain.DialectModule
	}
	return domain.DialectLegacy
}

// WrapLegacy upgrades a legacy script to module form by appending a default
// export of its component value. The component is taken to be the last
// top-level const/let/var, function, or class declaration. Sources that
// declare nothing exportable fail with domain.ErrFormat.
func (d *Detector) WrapLegacy(source string) (string, error) {
	name := lastTopLevelDecl(source)
	if name == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrFormat, "legacy source has no top-level component declaration"),
			"source_bytes", len(source))
	}
	out := source
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out + "export default " + name + ";\n", nil
}

// lastTopLevelDecl finds the name of the last declaration at brace depth 0.
func lastTopLevelDecl(source string) string {
	src := []byte(source)
	n := len(src)
	i := 0
	depth := 0
	last := ""

	for i < n {
		c := src[i]
		switch c {
		case '\'', '"', '`':
			i = jsscan.SkipString(src, i)
			continue
		case '/':
			if i+1 < n && src[i+1] == '/' {
				i = jsscan.SkipLineComment(src, i)
				continue
			}
			if i+1 < n && src[i+1] == '*' {
				i = jsscan.SkipBlockComment(src, i)
				continue
			}
		case '{':
			depth++
			i++
			continue
		case '}':
			if depth > 0 {
				depth--
			}
			i++
			continue
		}
		if depth == 0 && jsscan.IsIdentStart(c) {
			if name, next := declNameAt(src, i); name != "" {
				last = name
				i = next
				continue
			}
			// Skip the whole identifier so keywords inside longer names
			// do not match.
			_, i = jsscan.ParseIdent(src, i)
			continue
		}
		i++
	}
	return last
}

// declNameAt parses a declaration keyword at i and returns the declared name,
// or "" when i does not start a declaration.
func declNameAt(src []byte, i int) (name string, next int) {
	for _, kw := range []string{"const", "let", "var"} {
		if jsscan.HasWordAt(src, i, kw) {
			j := jsscan.SkipSpacesAndComments(src, i+len(kw))
			return jsscan.ParseIdent(src, j)
		}
	}
	if jsscan.HasWordAt(src, i, "async") {
		j := jsscan.SkipSpacesAndComments(src, i+len("async"))
		if jsscan.HasWordAt(src, j, "function") {
			return functionName(src, j)
		}
		return "", i
	}
	if jsscan.HasWordAt(src, i, "function") {
		return functionName(src, i)
	}
	if jsscan.HasWordAt(src, i, "class") {
		j := jsscan.SkipSpacesAndComments(src, i+len("class"))
		return jsscan.ParseIdent(src, j)
	}
	return "", i
}

func functionName(src []byte, i int) (string, int) {
	j := jsscan.SkipSpacesAndComments(src, i+len("function"))
	if j < len(src) && src[j] == '*' {
		j = jsscan.SkipSpacesAndComments(src, j+1)
	}
	return jsscan.ParseIdent(src, j)
}
