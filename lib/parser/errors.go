package parser

import "fmt"

// ParseError is one diagnostic, ordered by discovery rather than
// severity. Lexical problems reported by the scanner arrive here too,
// carried in by ERROR tokens.
type ParseError struct {
	Line    int
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Result is what Parse always returns: a tree, possibly partial, and
// the diagnostics collected along the way. Errors is empty exactly when
// the input was fully well-formed.
type Result struct {
	Program *Program
	Errors  []ParseError
}
