package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mosaic-ui/mosaic/internal/jsscan"
)

// lower converts module text to the CommonJS-style shape the executor
// evaluates: import declarations become __import calls, export statements
// become module.exports assignments. The pass is textual and preserves all
// non-import/export code byte for byte.
func lower(source string) string {
	mod := jsscan.Scan(source)

	type edit struct {
		start, end int
		text       string
	}
	var edits []edit
	var appends []string
	seq := 0

	for _, imp := range mod.Imports {
		if imp.Malformed {
			continue
		}
		if imp.Dynamic {
			// import('m') -> Promise.resolve(__import('m'))
			edits = append(edits, edit{imp.StmtStart, imp.StmtEnd,
				"Promise.resolve(__import(" + quote(imp.Specifier) + "))"})
			continue
		}
		edits = append(edits, edit{imp.StmtStart, imp.StmtEnd, lowerImport(imp)})
	}

	for _, ex := range mod.Exports {
		if ex.Malformed {
			continue
		}
		switch ex.Kind {
		case jsscan.ExportDefault:
			edits = append(edits, edit{ex.StmtStart, ex.DeclStart, "module.exports.default = "})
		case jsscan.ExportDeclaration:
			edits = append(edits, edit{ex.StmtStart, ex.DeclStart, ""})
			if ex.DeclName != "" {
				appends = append(appends, "module.exports."+ex.DeclName+" = "+ex.DeclName+";")
			}
		case jsscan.ExportNamed:
			if ex.From == "" {
				var sb strings.Builder
				for _, b := range ex.Names {
					sb.WriteString("module.exports." + exportedName(b) + " = " + b.Name + "; ")
				}
				edits = append(edits, edit{ex.StmtStart, ex.StmtEnd, strings.TrimSpace(sb.String())})
			} else {
				tmp := fmt.Sprintf("__reexport%d", seq)
				seq++
				var sb strings.Builder
				sb.WriteString("const " + tmp + " = __import(" + quote(ex.From) + "); ")
				for _, b := range ex.Names {
					sb.WriteString("module.exports." + exportedName(b) + " = " + tmp + "." + b.Name + "; ")
				}
				edits = append(edits, edit{ex.StmtStart, ex.StmtEnd, strings.TrimSpace(sb.String())})
			}
		case jsscan.ExportStar:
			if ex.StarAlias != "" {
				edits = append(edits, edit{ex.StmtStart, ex.StmtEnd,
					"module.exports." + ex.StarAlias + " = __import(" + quote(ex.From) + ");"})
			} else {
				edits = append(edits, edit{ex.StmtStart, ex.StmtEnd,
					"Object.assign(module.exports, __import(" + quote(ex.From) + "));"})
			}
		}
	}

	sort.Slice(edits, func(a, b int) bool { return edits[a].start < edits[b].start })
	var sb strings.Builder
	sb.Grow(len(source) + 64)
	prev := 0
	for _, e := range edits {
		sb.WriteString(source[prev:e.start])
		sb.WriteString(e.text)
		prev = e.end
	}
	sb.WriteString(source[prev:])
	if len(appends) > 0 {
		if !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(appends, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// lowerImport renders the CJS binding statement for one static import.
func lowerImport(imp jsscan.ImportDecl) string {
	spec := quote(imp.Specifier)
	if imp.SideEffect {
		return "__import(" + spec + ");"
	}

	// Namespace binding takes the whole module object; a default binding on
	// the same statement reads .default off it.
	if imp.Namespace != "" {
		out := "const " + imp.Namespace + " = __import(" + spec + ");"
		if imp.Default != "" {
			out += " const " + imp.Default + " = " + imp.Namespace + ".default;"
		}
		return out
	}

	var fields []string
	if imp.Default != "" {
		fields = append(fields, "default: "+imp.Default)
	}
	for _, b := range imp.Named {
		if b.Alias != "" {
			fields = append(fields, b.Name+": "+b.Alias)
		} else {
			fields = append(fields, b.Name)
		}
	}
	return "const { " + strings.Join(fields, ", ") + " } = __import(" + spec + ");"
}

// exportedName returns the public name of a binding: its alias when renamed.
func exportedName(b jsscan.NamedBinding) string {
	if b.Alias != "" {
		return b.Alias
	}
	return b.Name
}

// quote renders s as a single-quoted JS string literal.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(s[i])
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
