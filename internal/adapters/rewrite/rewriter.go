// Package rewrite resolves external dependency references in component
// source. Bare package names become registry locators, singleton framework
// references stay symbolic, and missing framework imports are repaired.
package rewrite

import (
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
	"github.com/mosaic-ui/mosaic/internal/jsscan"
)

var _ ports.Rewriter = (*Rewriter)(nil)

// hookNames are the framework identifiers eligible for import repair when
// used in call position without a matching import.
var hookNames = []string{"useState", "useEffect", "useMemo", "useCallback", "useRef"}

// Rewriter is a purely textual dependency rewriter.
type Rewriter struct {
	registryBase string
	strict       bool
}

// New creates a Rewriter. registryBase is the URL prefix prepended to bare
// package specifiers. strict makes malformed import statements fatal instead
// of being passed through untouched.
func New(registryBase string, strict bool) *Rewriter {
	return &Rewriter{
		registryBase: strings.TrimSuffix(registryBase, "/"),
		strict:       strict,
	}
}

type edit struct {
	start, end int
	text       string
}

// Rewrite maps every external specifier in source to its resolved form and
// reports the dependency list in declaration order. Specifiers matching the
// singleton set are left untouched so the executor can redirect them to the
// shared instances. Relative paths and absolute URLs pass through unchanged.
func (r *Rewriter) Rewrite(source string, singletons domain.SingletonSet) (ports.RewriteResult, error) {
	mod := jsscan.Scan(source)

	var edits []edit
	var deps []string
	seen := map[string]bool{}
	imported := map[string]bool{}

	record := func(spec string) {
		if !seen[spec] {
			seen[spec] = true
			deps = append(deps, spec)
		}
	}

	for _, imp := range mod.Imports {
		if imp.Malformed {
			if r.strict {
				err := zerr.With(zerr.Wrap(domain.ErrImportResolution, "malformed import statement"),
					"offset", imp.StmtStart)
				if imp.Specifier != "" {
					err = zerr.With(err, "specifier", imp.Specifier)
				}
				return ports.RewriteResult{}, err
			}
			continue
		}
		if imp.Default != "" {
			imported[imp.Default] = true
		}
		if imp.Namespace != "" {
			imported[imp.Namespace] = true
		}
		for _, b := range imp.Named {
			imported[b.Local()] = true
		}
		resolved, rewritten := r.resolve(imp.Specifier, singletons)
		record(resolved)
		if rewritten {
			edits = append(edits, edit{imp.SpecStart, imp.SpecEnd, resolved})
		}
	}

	for _, ex := range mod.Exports {
		if ex.Malformed {
			if r.strict {
				err := zerr.With(zerr.Wrap(domain.ErrImportResolution, "malformed export statement"),
					"offset", ex.StmtStart)
				if ex.From != "" {
					err = zerr.With(err, "specifier", ex.From)
				}
				return ports.RewriteResult{}, err
			}
			continue
		}
		if ex.From == "" {
			continue
		}
		resolved, rewritten := r.resolve(ex.From, singletons)
		record(resolved)
		if rewritten {
			edits = append(edits, edit{ex.SpecStart, ex.SpecEnd, resolved})
		}
	}

	inferred := r.missingHooks(source, imported, singletons)
	out := applyEdits(source, edits)
	if len(inferred) > 0 {
		primary := singletons.Primary()
		out = "import { " + strings.Join(inferred, ", ") + " } from '" + primary + "';\n" + out
		if !seen[primary] {
			deps = append([]string{primary}, deps...)
		}
	}

	return ports.RewriteResult{Source: out, Dependencies: deps, Inferred: inferred}, nil
}

// resolve maps one specifier. rewritten reports whether the source text needs
// to change.
func (r *Rewriter) resolve(spec string, singletons domain.SingletonSet) (resolved string, rewritten bool) {
	if singletons.Matches(spec) {
		return spec, false
	}
	if isPassthrough(spec) {
		return spec, false
	}
	return r.registryBase + "/" + spec, true
}

// isPassthrough reports whether spec is already a resolvable locator.
func isPassthrough(spec string) bool {
	return strings.HasPrefix(spec, "./") ||
		strings.HasPrefix(spec, "../") ||
		strings.HasPrefix(spec, "/") ||
		strings.HasPrefix(spec, "http://") ||
		strings.HasPrefix(spec, "https://")
}

// missingHooks finds framework hooks used in call position that are neither
// imported nor declared in the source. Returns them in canonical order, or
// nil when the singleton set is empty.
func (r *Rewriter) missingHooks(source string, imported map[string]bool, singletons domain.SingletonSet) []string {
	if singletons.Len() == 0 {
		return nil
	}
	var missing []string
	for _, hook := range hookNames {
		if imported[hook] {
			continue
		}
		if !usedAsCall(source, hook) {
			continue
		}
		if declaresName(source, hook) {
			continue
		}
		missing = append(missing, hook)
	}
	return missing
}

// usedAsCall reports whether name appears as a call, i.e. the identifier
// directly followed by an opening paren, outside strings and comments.
// Member accesses like React.useState do not count; those already resolve
// through their object.
func usedAsCall(source string, name string) bool {
	src := []byte(source)
	n := len(src)
	i := 0
	for i < n {
		switch src[i] {
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
		}
		if jsscan.HasWordAt(src, i, name) {
			if i > 0 && src[i-1] == '.' {
				i += len(name)
				continue
			}
			j := jsscan.SkipSpaces(src, i+len(name))
			if j < n && src[j] == '(' {
				return true
			}
			i += len(name)
			continue
		}
		i++
	}
	return false
}

// declaresName reports whether the source declares name at any depth, which
// shadows the framework hook and suppresses repair.
func declaresName(source string, name string) bool {
	src := []byte(source)
	n := len(src)
	i := 0
	for i < n {
		switch src[i] {
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
		}
		if declKeywordAt(src, i) {
			kw, next := jsscan.ParseIdent(src, i)
			j := jsscan.SkipSpacesAndComments(src, next)
			if kw == "function" && j < n && src[j] == '*' {
				j = jsscan.SkipSpacesAndComments(src, j+1)
			}
			if jsscan.HasWordAt(src, j, name) {
				return true
			}
			i = next
			continue
		}
		if jsscan.IsIdentChar(src[i]) {
			for i < n && jsscan.IsIdentChar(src[i]) {
				i++
			}
			continue
		}
		i++
	}
	return false
}

func declKeywordAt(src []byte, i int) bool {
	return jsscan.HasWordAt(src, i, "const") ||
		jsscan.HasWordAt(src, i, "let") ||
		jsscan.HasWordAt(src, i, "var") ||
		jsscan.HasWordAt(src, i, "function") ||
		jsscan.HasWordAt(src, i, "class")
}

// applyEdits replaces [start,end) regions with their replacement text.
// Regions never overlap; they come from distinct specifier literals.
func applyEdits(source string, edits []edit) string {
	if len(edits) == 0 {
		return source
	}
	sort.Slice(edits, func(a, b int) bool { return edits[a].start < edits[b].start })
	var sb strings.Builder
	sb.Grow(len(source) + len(edits)*32)
	prev := 0
	for _, e := range edits {
		sb.WriteString(source[prev:e.start])
		sb.WriteString(e.text)
		prev = e.end
	}
	sb.WriteString(source[prev:])
	return sb.String()
}
