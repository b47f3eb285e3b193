// Package transpile lowers JSX syntax to h() factory calls. The pass is
// purely textual and leaves non-JSX source untouched, import and export
// statements included.
package transpile

import (
	"strings"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
	"github.com/mosaic-ui/mosaic/internal/jsscan"
)

var _ ports.Transpiler = (*Transpiler)(nil)

// FactoryName is the hyperscript call emitted for each element.
const FactoryName = "h"

// FragmentName is the tag emitted for <>...</> groups.
const FragmentName = "Fragment"

// Transpiler rewrites JSX elements into factory calls.
type Transpiler struct{}

// New creates a new Transpiler.
func New() *Transpiler {
	return &Transpiler{}
}

// Transpile converts every JSX element in source to an h() call, children in
// document order. Malformed JSX fails with domain.ErrTranspile carrying the
// byte offset of the offending construct.
func (t *Transpiler) Transpile(source string) (string, error) {
	p := &parser{src: []byte(source)}
	out, err := p.process(0, len(source))
	if err != nil {
		return "", err
	}
	return out, nil
}

// parser walks a byte range, copying non-JSX text and converting JSX
// elements as they appear.
type parser struct {
	src []byte
}

func errAt(offset int, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrTranspile, msg), "offset", offset)
}

// process converts src[start:end] and returns the transformed text.
func (p *parser) process(start, end int) (string, error) {
	src := p.src
	var sb strings.Builder
	sb.Grow(end - start)

	i := start
	exprPos := true // whether a '<' here would start an expression

	for i < end {
		c := src[i]
		switch c {
		case '\'', '"', '`':
			next := jsscan.SkipString(src, i)
			sb.Write(src[i:next])
			i = next
			exprPos = false
			continue
		case '/':
			if i+1 < end && src[i+1] == '/' {
				next := jsscan.SkipLineComment(src, i)
				sb.Write(src[i:next])
				i = next
				continue
			}
			if i+1 < end && src[i+1] == '*' {
				next := jsscan.SkipBlockComment(src, i)
				sb.Write(src[i:next])
				i = next
				continue
			}
		case '<':
			if exprPos && i+1 < end && (jsscan.IsIdentStart(src[i+1]) || src[i+1] == '>') {
				converted, next, err := p.parseElement(i, end)
				if err != nil {
					return "", err
				}
				sb.WriteString(converted)
				i = next
				exprPos = false
				continue
			}
		}
		if jsscan.IsIdentChar(c) {
			name, next := identAt(src, i, end)
			sb.Write(src[i:next])
			i = next
			exprPos = isValueKeyword(name)
			continue
		}
		sb.WriteByte(c)
		i++
		if !jsscan.IsSpace(c) {
			// Tokens that can end a value; anything else leaves us in
			// expression position.
			exprPos = !(c == ')' || c == ']' || c == '}')
		}
	}
	return sb.String(), nil
}

// identAt reads an identifier-ish run (digits included) in [i,end).
func identAt(src []byte, i, end int) (string, int) {
	start := i
	for i < end && jsscan.IsIdentChar(src[i]) {
		i++
	}
	return string(src[start:i]), i
}

// isValueKeyword reports whether ident is a keyword after which an
// expression, and therefore JSX, may begin.
func isValueKeyword(ident string) bool {
	switch ident {
	case "return", "typeof", "in", "of", "new", "do", "else", "void",
		"yield", "await", "case", "delete", "instanceof", "throw":
		return true
	}
	return false
}

// parseElement converts one JSX element or fragment starting at the '<' at
// offset i. Returns the h() call text and the offset past the element.
func (p *parser) parseElement(i, end int) (string, int, error) {
	src := p.src
	open := i
	i++ // consume '<'

	// Fragment: <> ... </>
	if i < end && src[i] == '>' {
		children, next, err := p.parseChildren(i+1, end, "")
		if err != nil {
			return "", 0, err
		}
		return emitCall(FragmentName, "null", children), next, nil
	}

	tag, i := parseTagName(src, i, end)
	if tag == "" {
		return "", 0, errAt(open, "expected tag name after '<'")
	}

	props, i, err := p.parseAttributes(i, end, open)
	if err != nil {
		return "", 0, err
	}

	// Self-closing element.
	if i+1 < end && src[i] == '/' && src[i+1] == '>' {
		return emitCall(tagExpr(tag), props, nil), i + 2, nil
	}
	if i >= end || src[i] != '>' {
		return "", 0, errAt(open, "unterminated JSX element")
	}

	children, next, err := p.parseChildren(i+1, end, tag)
	if err != nil {
		return "", 0, err
	}
	return emitCall(tagExpr(tag), props, children), next, nil
}

// parseTagName reads a tag: an identifier optionally extended with '.', '-'
// or ':' segments.
func parseTagName(src []byte, i, end int) (string, int) {
	if i >= end || !jsscan.IsIdentStart(src[i]) {
		return "", i
	}
	start := i
	for i < end && (jsscan.IsIdentChar(src[i]) || src[i] == '.' || src[i] == '-' || src[i] == ':') {
		i++
	}
	return string(src[start:i]), i
}

// tagExpr maps a tag to the first h() argument. Capitalized tags and member
// expressions are component references; lowercase tags are intrinsic
// element names.
func tagExpr(tag string) string {
	if tag[0] >= 'A' && tag[0] <= 'Z' {
		return tag
	}
	if strings.Contains(tag, ".") {
		return tag
	}
	return "'" + tag + "'"
}

// parseAttributes reads attributes up to '>' or '/>', returning the props
// argument text ("null" when there are none) and the offset of the closer.
func (p *parser) parseAttributes(i, end, open int) (string, int, error) {
	src := p.src
	var parts []string

	for {
		i = jsscan.SkipSpacesAndComments(src, i)
		if i >= end {
			return "", 0, errAt(open, "unterminated JSX element")
		}
		if src[i] == '>' || (src[i] == '/' && i+1 < end && src[i+1] == '>') {
			break
		}

		// Spread attribute: {...expr}
		if src[i] == '{' {
			exprStart := i
			exprEnd, err := p.matchBrace(i, end)
			if err != nil {
				return "", 0, err
			}
			inner := strings.TrimSpace(string(src[exprStart+1 : exprEnd-1]))
			if !strings.HasPrefix(inner, "...") {
				return "", 0, errAt(exprStart, "expected spread attribute")
			}
			processed, perr := p.process(exprStart+1, exprEnd-1)
			if perr != nil {
				return "", 0, perr
			}
			parts = append(parts, strings.TrimSpace(processed))
			i = exprEnd
			continue
		}

		name, next := parseAttrName(src, i, end)
		if name == "" {
			return "", 0, errAt(i, "expected attribute name")
		}
		i = jsscan.SkipSpacesAndComments(src, next)

		if i < end && src[i] == '=' {
			i = jsscan.SkipSpacesAndComments(src, i+1)
			if i >= end {
				return "", 0, errAt(open, "unterminated JSX element")
			}
			switch src[i] {
			case '\'', '"':
				strEnd := jsscan.SkipString(src, i)
				parts = append(parts, propKey(name)+": "+string(src[i:strEnd]))
				i = strEnd
			case '{':
				exprEnd, err := p.matchBrace(i, end)
				if err != nil {
					return "", 0, err
				}
				processed, perr := p.process(i+1, exprEnd-1)
				if perr != nil {
					return "", 0, perr
				}
				parts = append(parts, propKey(name)+": "+strings.TrimSpace(processed))
				i = exprEnd
			default:
				return "", 0, errAt(i, "expected attribute value")
			}
		} else {
			// Bare attribute is boolean true.
			parts = append(parts, propKey(name)+": true")
		}
	}

	if len(parts) == 0 {
		return "null", i, nil
	}
	return "{ " + strings.Join(parts, ", ") + " }", i, nil
}

// parseAttrName reads an attribute name, dashes and colons allowed.
func parseAttrName(src []byte, i, end int) (string, int) {
	if i >= end || !jsscan.IsIdentStart(src[i]) {
		return "", i
	}
	start := i
	for i < end && (jsscan.IsIdentChar(src[i]) || src[i] == '-' || src[i] == ':') {
		i++
	}
	return string(src[start:i]), i
}

// propKey quotes attribute names that are not valid identifiers.
func propKey(name string) string {
	for j := 0; j < len(name); j++ {
		if !jsscan.IsIdentChar(name[j]) {
			return "'" + name + "'"
		}
	}
	return name
}

// parseChildren reads element children up to the matching closing tag (or
// </> for fragments when tag is empty). Returns the child argument texts and
// the offset past the closing tag.
func (p *parser) parseChildren(i, end int, tag string) ([]string, int, error) {
	src := p.src
	var children []string
	textStart := i

	flushText := func(upto int) {
		if text := jsxText(string(src[textStart:upto])); text != "" {
			children = append(children, text)
		}
	}

	for i < end {
		switch src[i] {
		case '<':
			flushText(i)
			// Closing tag?
			if i+1 < end && src[i+1] == '/' {
				j := jsscan.SkipSpaces(src, i+2)
				name, j := parseTagName(src, j, end)
				j = jsscan.SkipSpaces(src, j)
				if j >= end || src[j] != '>' {
					return nil, 0, errAt(i, "malformed closing tag")
				}
				if name != tag {
					return nil, 0, errAt(i, "mismatched closing tag </"+name+">")
				}
				return children, j + 1, nil
			}
			child, next, err := p.parseElement(i, end)
			if err != nil {
				return nil, 0, err
			}
			children = append(children, child)
			i = next
			textStart = i
		case '{':
			flushText(i)
			exprEnd, err := p.matchBrace(i, end)
			if err != nil {
				return nil, 0, err
			}
			processed, perr := p.process(i+1, exprEnd-1)
			if perr != nil {
				return nil, 0, perr
			}
			if expr := strings.TrimSpace(processed); expr != "" {
				children = append(children, expr)
			}
			i = exprEnd
			textStart = i
		default:
			i++
		}
	}
	return nil, 0, errAt(textStart, "missing closing tag")
}

// matchBrace returns the offset just past the '}' matching the '{' at i,
// skipping strings and comments.
func (p *parser) matchBrace(i, end int) (int, error) {
	src := p.src
	open := i
	depth := 0
	for i < end {
		switch src[i] {
		case '\'', '"', '`':
			i = jsscan.SkipString(src, i)
			continue
		case '/':
			if i+1 < end && src[i+1] == '/' {
				i = jsscan.SkipLineComment(src, i)
				continue
			}
			if i+1 < end && src[i+1] == '*' {
				i = jsscan.SkipBlockComment(src, i)
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
		i++
	}
	return 0, errAt(open, "unbalanced braces in JSX expression")
}

// jsxText normalizes a raw text run per JSX whitespace rules and returns it
// as a string literal, or "" when the run collapses to nothing.
func jsxText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			kept = append(kept, t)
		}
	}
	text := strings.Join(kept, " ")
	if len(lines) == 1 {
		// Single-line text keeps its edge spacing next to siblings.
		text = raw
	}
	return quoteJS(text)
}

// quoteJS renders s as a single-quoted JS string literal.
func quoteJS(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for j := 0; j < len(s); j++ {
		switch s[j] {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
		default:
			sb.WriteByte(s[j])
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// emitCall renders the factory call for one element.
func emitCall(tag, props string, children []string) string {
	args := []string{tag, props}
	args = append(args, children...)
	return FactoryName + "(" + strings.Join(args, ", ") + ")"
}
