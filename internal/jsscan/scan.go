// Package jsscan provides byte-level scanning of JavaScript module source:
// string/comment-aware traversal and top-level import/export extraction with
// byte offsets. It is purely lexical and never evaluates the source.
package jsscan

// IsSpace reports whether c is a whitespace byte.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// IsIdentChar reports whether c can appear in an identifier.
func IsIdentChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' || c == '$'
}

// IsIdentStart reports whether c can start an identifier.
func IsIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' || c == '$'
}

// SkipSpaces advances i past whitespace.
func SkipSpaces(src []byte, i int) int {
	for i < len(src) && IsSpace(src[i]) {
		i++
	}
	return i
}

// SkipLineComment advances past a // comment. src[i:i+2] must be "//".
func SkipLineComment(src []byte, i int) int {
	i += 2
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

// SkipBlockComment advances past a /* */ comment. src[i:i+2] must be "/*".
func SkipBlockComment(src []byte, i int) int {
	i += 2
	for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
		i++
	}
	if i+1 < len(src) {
		i += 2
	} else {
		i = len(src)
	}
	return i
}

// SkipSpacesAndComments advances past whitespace and comments.
func SkipSpacesAndComments(src []byte, i int) int {
	for i < len(src) {
		i = SkipSpaces(src, i)
		if i+1 < len(src) && src[i] == '/' && src[i+1] == '/' {
			i = SkipLineComment(src, i)
			continue
		}
		if i+1 < len(src) && src[i] == '/' && src[i+1] == '*' {
			i = SkipBlockComment(src, i)
			continue
		}
		break
	}
	return i
}

// SkipString advances past a string literal. src[i] must be the opening
// quote (', " or `). Escapes are honored, template literals descend into
// ${} interpolations, and an unterminated literal runs to the end of the
// source.
func SkipString(src []byte, i int) int {
	quote := src[i]
	if quote == '`' {
		return skipTemplate(src, i)
	}
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return i
}

// skipTemplate advances past a template literal, tracking ${} interpolations
// so braces, quotes, and backticks inside them cannot end the literal early.
func skipTemplate(src []byte, i int) int {
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '`':
			return i + 1
		case '$':
			if i+1 < len(src) && src[i+1] == '{' {
				i = skipInterpolation(src, i+2)
				continue
			}
		}
		i++
	}
	return i
}

// skipInterpolation advances past an interpolation body, i pointing just
// after the opening brace. Nested strings, comments, and braces are honored;
// an unterminated interpolation runs to the end of the source.
func skipInterpolation(src []byte, i int) int {
	depth := 1
	for i < len(src) {
		switch src[i] {
		case '\'', '"', '`':
			i = SkipString(src, i)
			continue
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				i = SkipLineComment(src, i)
				continue
			}
			if i+1 < len(src) && src[i+1] == '*' {
				i = SkipBlockComment(src, i)
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return i
}

// HasWordAt reports whether the keyword w starts at i and is not part of a
// longer identifier.
func HasWordAt(src []byte, i int, w string) bool {
	if i < 0 || i+len(w) > len(src) {
		return false
	}
	for j := 0; j < len(w); j++ {
		if src[i+j] != w[j] {
			return false
		}
	}
	if i > 0 && IsIdentChar(src[i-1]) {
		return false
	}
	end := i + len(w)
	return end >= len(src) || !IsIdentChar(src[end])
}

// ParseIdent extracts the identifier starting at i. Returns "" when i does
// not start an identifier.
func ParseIdent(src []byte, i int) (name string, next int) {
	if i >= len(src) || !IsIdentStart(src[i]) {
		return "", i
	}
	start := i
	for i < len(src) && IsIdentChar(src[i]) {
		i++
	}
	return string(src[start:i]), i
}

// ParseStringLit extracts the string literal at i (' or "). start and end
// are the byte offsets of the literal's contents.
func ParseStringLit(src []byte, i int) (val string, next, start, end int) {
	quote := src[i]
	i++
	start = i
	for i < len(src) && src[i] != quote {
		if src[i] == '\\' {
			i++
		}
		i++
	}
	if i >= len(src) {
		return "", i, start, start
	}
	return string(src[start:i]), i + 1, start, i
}

// skipOptionalSemicolon advances past spaces/tabs and a single `;`.
func skipOptionalSemicolon(src []byte, i int) int {
	j := i
	for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
		j++
	}
	if j < len(src) && src[j] == ';' {
		return j + 1
	}
	return i
}
