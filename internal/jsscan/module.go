package jsscan

// NamedBinding is one entry of an import/export brace list. Alias is empty
// when the binding is not renamed.
type NamedBinding struct {
	Name  string
	Alias string
}

// Local returns the binding's name in the importing scope.
func (b NamedBinding) Local() string {
	if b.Alias != "" {
		return b.Alias
	}
	return b.Name
}

// ImportDecl is a parsed import declaration.
type ImportDecl struct {
	// Specifier is the module reference text.
	Specifier string
	// SpecStart and SpecEnd delimit the specifier inside its quotes.
	SpecStart int
	SpecEnd   int
	// StmtStart and StmtEnd delimit the whole statement including an
	// optional trailing semicolon. For dynamic imports they delimit the
	// `import(...)` expression.
	StmtStart int
	StmtEnd   int

	Default    string
	Namespace  string
	Named      []NamedBinding
	SideEffect bool
	Dynamic    bool

	// Malformed marks a declaration the scanner could not parse. StmtStart
	// points at the offending `import` keyword; Specifier is filled
	// best-effort from the first string literal on the statement line and
	// may be empty.
	Malformed bool
}

// ExportKind distinguishes the export statement forms.
type ExportKind uint8

const (
	// ExportDefault is `export default <expr>`.
	ExportDefault ExportKind = iota
	// ExportDeclaration is `export const|let|var|function|class ...`.
	ExportDeclaration
	// ExportNamed is `export { A, B as C }`, locally or re-exported.
	ExportNamed
	// ExportStar is `export * from "m"` or `export * as ns from "m"`.
	ExportStar
)

// ExportStmt is a parsed export statement.
type ExportStmt struct {
	Kind      ExportKind
	StmtStart int
	StmtEnd   int
	// DeclStart is the offset where the exported expression or declaration
	// begins (after `export ` / `export default `).
	DeclStart int
	// DeclName is the declared identifier for ExportDeclaration.
	DeclName string
	// Names holds the brace-list bindings for ExportNamed.
	Names []NamedBinding
	// From is the re-export specifier, empty for local exports.
	From      string
	SpecStart int
	SpecEnd   int
	// StarAlias is the namespace name for `export * as ns from "m"`.
	StarAlias string
	Malformed bool
}

// Module is the scan result for one source text.
type Module struct {
	Imports []ImportDecl
	Exports []ExportStmt
}

// HasModuleSyntax reports whether the source carries static top-level
// import/export statements. Dynamic import() does not count; it is legal in
// legacy scripts.
func (m *Module) HasModuleSyntax() bool {
	for _, imp := range m.Imports {
		if !imp.Dynamic {
			return true
		}
	}
	return len(m.Exports) > 0
}

// StaticImports returns the non-dynamic import declarations.
func (m *Module) StaticImports() []ImportDecl {
	out := make([]ImportDecl, 0, len(m.Imports))
	for _, imp := range m.Imports {
		if !imp.Dynamic {
			out = append(out, imp)
		}
	}
	return out
}

// Scan walks the source once, tracking brace depth and skipping strings and
// comments, and collects top-level import/export statements plus dynamic
// imports at any depth.
func Scan(source string) *Module {
	s := &scanner{src: []byte(source), mod: &Module{}}
	s.run()
	return s.mod
}

type scanner struct {
	src []byte
	mod *Module
}

func (s *scanner) run() {
	src := s.src
	n := len(src)
	i := 0
	depth := 0

	for i < n {
		c := src[i]
		switch c {
		case '\'', '"', '`':
			i = SkipString(src, i)
			continue
		case '/':
			if i+1 < n && src[i+1] == '/' {
				i = SkipLineComment(src, i)
				continue
			}
			if i+1 < n && src[i+1] == '*' {
				i = SkipBlockComment(src, i)
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
		case 'i':
			if HasWordAt(src, i, "import") {
				i = s.parseImport(i, depth)
				continue
			}
		case 'e':
			if depth == 0 && HasWordAt(src, i, "export") {
				i = s.parseExport(i)
				continue
			}
		}
		i++
	}
}

// parseImport handles static imports at depth 0 and dynamic imports at any
// depth, returning the scan resume offset.
func (s *scanner) parseImport(start, depth int) int {
	src := s.src
	n := len(src)
	i := SkipSpacesAndComments(src, start+len("import"))
	if i >= n {
		return n
	}

	// Dynamic import: import("mod")
	if src[i] == '(' {
		return s.parseDynamicImport(start, i)
	}
	if depth > 0 {
		// Static import syntax cannot appear inside braces.
		return start + len("import")
	}

	decl := ImportDecl{StmtStart: start}

	// Side-effect import: import "mod"
	if src[i] == '\'' || src[i] == '"' {
		decl.SideEffect = true
		return s.finishImport(decl, i)
	}

	// Default binding: import Name ...
	if IsIdentStart(src[i]) {
		name, next := ParseIdent(src, i)
		decl.Default = name
		i = SkipSpacesAndComments(src, next)
		if i < n && src[i] == ',' {
			i = SkipSpacesAndComments(src, i+1)
		}
	}

	// Namespace binding: * as ns
	if i < n && src[i] == '*' {
		i = SkipSpacesAndComments(src, i+1)
		if !HasWordAt(src, i, "as") {
			return s.malformedImport(decl, i)
		}
		i = SkipSpacesAndComments(src, i+2)
		name, next := ParseIdent(src, i)
		if name == "" {
			return s.malformedImport(decl, i)
		}
		decl.Namespace = name
		i = SkipSpacesAndComments(src, next)
	}

	// Named bindings: { a, b as c }
	if i < n && src[i] == '{' {
		names, next, ok := s.parseBraceList(i)
		if !ok {
			return s.malformedImport(decl, next)
		}
		decl.Named = names
		i = SkipSpacesAndComments(src, next)
	}

	if decl.Default == "" && decl.Namespace == "" && decl.Named == nil {
		return s.malformedImport(decl, i)
	}

	if !HasWordAt(src, i, "from") {
		return s.malformedImport(decl, i)
	}
	i = SkipSpacesAndComments(src, i+len("from"))
	if i >= n || (src[i] != '\'' && src[i] != '"') {
		return s.malformedImport(decl, i)
	}
	return s.finishImport(decl, i)
}

// finishImport parses the specifier literal at i and records the statement.
func (s *scanner) finishImport(decl ImportDecl, i int) int {
	val, next, specStart, specEnd := ParseStringLit(s.src, i)
	decl.Specifier = val
	decl.SpecStart = specStart
	decl.SpecEnd = specEnd
	decl.StmtEnd = skipOptionalSemicolon(s.src, next)
	s.mod.Imports = append(s.mod.Imports, decl)
	return decl.StmtEnd
}

func (s *scanner) malformedImport(decl ImportDecl, at int) int {
	decl.Malformed = true
	// Resume after the statement-ish region to avoid re-parsing, capturing
	// the first string literal on the way as the likely specifier.
	i := at
	for i < len(s.src) && s.src[i] != '\n' && s.src[i] != ';' {
		if decl.Specifier == "" && (s.src[i] == '\'' || s.src[i] == '"') {
			val, next, specStart, specEnd := ParseStringLit(s.src, i)
			decl.Specifier = val
			decl.SpecStart = specStart
			decl.SpecEnd = specEnd
			i = next
			continue
		}
		i++
	}
	decl.StmtEnd = i
	s.mod.Imports = append(s.mod.Imports, decl)
	return i
}

// parseDynamicImport handles import("mod"); start points at `import`, open
// at the opening paren.
func (s *scanner) parseDynamicImport(start, open int) int {
	src := s.src
	i := SkipSpacesAndComments(src, open+1)
	if i >= len(src) || (src[i] != '\'' && src[i] != '"') {
		// Computed specifier; skip the call without recording.
		return open + 1
	}
	val, next, specStart, specEnd := ParseStringLit(src, i)
	i = SkipSpacesAndComments(src, next)
	if i >= len(src) || src[i] != ')' {
		return next
	}
	s.mod.Imports = append(s.mod.Imports, ImportDecl{
		Specifier: val,
		SpecStart: specStart,
		SpecEnd:   specEnd,
		StmtStart: start,
		StmtEnd:   i + 1,
		Dynamic:   true,
	})
	return i + 1
}

// parseBraceList parses { a, b as c } starting at the opening brace.
func (s *scanner) parseBraceList(i int) ([]NamedBinding, int, bool) {
	src := s.src
	n := len(src)
	var names []NamedBinding
	i++ // skip '{'
	for i < n {
		i = SkipSpacesAndComments(src, i)
		if i >= n {
			return names, i, false
		}
		if src[i] == '}' {
			return names, i + 1, true
		}
		name, next := ParseIdent(src, i)
		if name == "" {
			return names, i, false
		}
		i = SkipSpacesAndComments(src, next)
		binding := NamedBinding{Name: name}
		if HasWordAt(src, i, "as") {
			i = SkipSpacesAndComments(src, i+2)
			alias, next := ParseIdent(src, i)
			if alias == "" {
				return names, i, false
			}
			binding.Alias = alias
			i = SkipSpacesAndComments(src, next)
		}
		names = append(names, binding)
		if i < n && src[i] == ',' {
			i++
		}
	}
	return names, i, false
}

// parseExport handles top-level export statements, returning the scan
// resume offset.
func (s *scanner) parseExport(start int) int {
	src := s.src
	n := len(src)
	i := SkipSpacesAndComments(src, start+len("export"))
	if i >= n {
		return n
	}

	// export default <expr>
	if HasWordAt(src, i, "default") {
		declStart := SkipSpacesAndComments(src, i+len("default"))
		s.mod.Exports = append(s.mod.Exports, ExportStmt{
			Kind:      ExportDefault,
			StmtStart: start,
			StmtEnd:   declStart,
			DeclStart: declStart,
		})
		return declStart
	}

	// export { a, b as c } [from "m"]
	if src[i] == '{' {
		names, next, ok := s.parseBraceList(i)
		stmt := ExportStmt{Kind: ExportNamed, StmtStart: start, Names: names}
		if !ok {
			stmt.Malformed = true
			stmt.StmtEnd = next
			s.mod.Exports = append(s.mod.Exports, stmt)
			return next
		}
		i = SkipSpacesAndComments(src, next)
		if HasWordAt(src, i, "from") {
			i = SkipSpacesAndComments(src, i+len("from"))
			if i >= n || (src[i] != '\'' && src[i] != '"') {
				stmt.Malformed = true
				stmt.StmtEnd = i
				s.mod.Exports = append(s.mod.Exports, stmt)
				return i
			}
			val, next, specStart, specEnd := ParseStringLit(src, i)
			stmt.From = val
			stmt.SpecStart = specStart
			stmt.SpecEnd = specEnd
			i = next
		}
		stmt.StmtEnd = skipOptionalSemicolon(src, i)
		s.mod.Exports = append(s.mod.Exports, stmt)
		return stmt.StmtEnd
	}

	// export * [as ns] from "m"
	if src[i] == '*' {
		stmt := ExportStmt{Kind: ExportStar, StmtStart: start}
		i = SkipSpacesAndComments(src, i+1)
		if HasWordAt(src, i, "as") {
			i = SkipSpacesAndComments(src, i+2)
			alias, next := ParseIdent(src, i)
			stmt.StarAlias = alias
			i = SkipSpacesAndComments(src, next)
		}
		if !HasWordAt(src, i, "from") {
			stmt.Malformed = true
			stmt.StmtEnd = i
			s.mod.Exports = append(s.mod.Exports, stmt)
			return i
		}
		i = SkipSpacesAndComments(src, i+len("from"))
		if i >= n || (src[i] != '\'' && src[i] != '"') {
			stmt.Malformed = true
			stmt.StmtEnd = i
			s.mod.Exports = append(s.mod.Exports, stmt)
			return i
		}
		val, next, specStart, specEnd := ParseStringLit(src, i)
		stmt.From = val
		stmt.SpecStart = specStart
		stmt.SpecEnd = specEnd
		stmt.StmtEnd = skipOptionalSemicolon(src, next)
		s.mod.Exports = append(s.mod.Exports, stmt)
		return stmt.StmtEnd
	}

	// export <declaration>
	declStart := i
	name, declName := "", ""
	switch {
	case HasWordAt(src, i, "const"), HasWordAt(src, i, "let"), HasWordAt(src, i, "var"):
		kw, _ := ParseIdent(src, i)
		j := SkipSpacesAndComments(src, i+len(kw))
		name, _ = ParseIdent(src, j)
		declName = name
	case HasWordAt(src, i, "async"):
		j := SkipSpacesAndComments(src, i+len("async"))
		if HasWordAt(src, j, "function") {
			j = SkipSpacesAndComments(src, j+len("function"))
			if j < n && src[j] == '*' {
				j = SkipSpacesAndComments(src, j+1)
			}
			declName, _ = ParseIdent(src, j)
		}
	case HasWordAt(src, i, "function"):
		j := SkipSpacesAndComments(src, i+len("function"))
		if j < n && src[j] == '*' {
			j = SkipSpacesAndComments(src, j+1)
		}
		declName, _ = ParseIdent(src, j)
	case HasWordAt(src, i, "class"):
		j := SkipSpacesAndComments(src, i+len("class"))
		declName, _ = ParseIdent(src, j)
	default:
		s.mod.Exports = append(s.mod.Exports, ExportStmt{
			Kind:      ExportDeclaration,
			StmtStart: start,
			StmtEnd:   i,
			DeclStart: declStart,
			Malformed: true,
		})
		return i
	}

	s.mod.Exports = append(s.mod.Exports, ExportStmt{
		Kind:      ExportDeclaration,
		StmtStart: start,
		StmtEnd:   declStart,
		DeclStart: declStart,
		DeclName:  declName,
	})
	return declStart
}
