package textmate

// PeekingTokenizer supports arbitrary lookahead over a token stream as well
// as cloning.
type PeekingTokenizer struct {
	tokens []Token
	cursor int
	eof    Token
	elide  map[string]bool
}

// Upgrade a Tokenizer to a PeekingTokenizer with arbitrary lookahead.
//
// "elide" is a set of scopes to skip during iteration; eliding the empty
// scope drops plain tokens such as whitespace.
func Upgrade(t *Tokenizer, elide ...string) *PeekingTokenizer {
	p := &PeekingTokenizer{elide: make(map[string]bool, len(elide))}
	for _, scope := range elide {
		p.elide[scope] = true
	}
	for {
		token := t.Next()
		if token.EOF() {
			p.eof = token
			break
		}
		p.tokens = append(p.tokens, token)
	}
	return p
}

// Next consumes and returns the next token.
func (p *PeekingTokenizer) Next() Token {
	for p.cursor < len(p.tokens) {
		token := p.tokens[p.cursor]
		p.cursor++
		if p.elide[token.Scope] {
			continue
		}
		return token
	}
	return p.eof
}

// Peek ahead at the n+1th token. eg. Peek(0) will peek at the next token.
func (p *PeekingTokenizer) Peek(n int) Token {
	for i := p.cursor; i < len(p.tokens); i++ {
		token := p.tokens[i]
		if p.elide[token.Scope] {
			continue
		}
		if n == 0 {
			return token
		}
		n--
	}
	return p.eof
}

// Clone creates a clone of this PeekingTokenizer at its current token.
//
// The parent and clone are completely independent.
func (p *PeekingTokenizer) Clone() *PeekingTokenizer {
	clone := *p
	return &clone
}
