package ports

// Transpiler converts the inline-markup syntax extension into plain
// construction calls, leaving import/export structure untouched.
//
//go:generate mockgen -source=transpiler.go -destination=mocks/mock_transpiler.go -package=mocks
type Transpiler interface {
	// Transpile returns the plain-call form of the source. A source without
	// markup passes through byte-identical. Invalid markup yields
	// ErrTranspile carrying the byte offset of the failure.
	Transpile(source string) (string, error)
}
