package ast

import "fmt"

// Position locates a point in source text, grounded on the teacher's
// pkg/token.Position (1-based Line/Column, 0-based byte Offset).
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsValid reports whether p was ever set to a real source location.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
