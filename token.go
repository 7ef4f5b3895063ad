package textmate

import "fmt"

// Position of a token within the input.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Offset: %d, Line: %d, Column: %d}",
		p.Filename, p.Offset, p.Line, p.Column)
}

func (p Position) String() string {
	filename := p.Filename
	if filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", filename, p.Line, p.Column)
}

// A Token is one scoped slice of the input.
//
// Tokens are immutable once emitted. Concatenating the values of all tokens
// from a run, in order, reconstructs the input exactly.
type Token struct {
	// Scope classifying the token, eg. "keyword.control.aurora". Empty for
	// plain text that no rule claimed.
	Scope string
	Value string
	// Pos is the position of the first byte of Value.
	Pos Position
	// Unterminated marks a span the input ended inside.
	Unterminated bool

	eof bool
}

// EOFToken creates the token returned at end of input.
func EOFToken(pos Position) Token {
	return Token{Pos: pos, eof: true}
}

// EOF returns true if this Token marks the end of the input.
func (t Token) EOF() bool { return t.eof }

// Plain returns true if no rule claimed this token's text.
func (t Token) Plain() bool { return t.Scope == "" && !t.eof }

// End returns the byte offset one past the last byte of the token.
func (t Token) End() int { return t.Pos.Offset + len(t.Value) }

func (t Token) String() string {
	if t.eof {
		return "<EOF>"
	}
	return t.Value
}

func (t Token) GoString() string {
	if t.eof {
		return "EOFToken()"
	}
	return fmt.Sprintf("Token@%s{%q, %q}", t.Pos.String(), t.Scope, t.Value)
}
