package textmate

import (
	"strings"
	"unicode/utf8"
)

// An Option modifies the behaviour of a single tokenization run.
type Option func(t *Tokenizer)

// MaxTokens stops the run after n tokens have been emitted. The tokenizer
// then reports EOF and Stopped() returns true.
func MaxTokens(n int) Option {
	return func(t *Tokenizer) { t.maxTokens = n }
}

// StopOffset stops the run once the scan position reaches byte offset k.
func StopOffset(k int) Option {
	return func(t *Tokenizer) { t.stopOffset = k }
}

// Tokenizer is a single lazy tokenization run over one input.
//
// Each run owns its own scan state and only reads the shared Grammar, so
// separate runs may proceed concurrently.
type Tokenizer struct {
	grammar *Grammar
	data    string
	pos     Position
	stack   []frame

	emitted    int
	maxTokens  int
	stopOffset int
	stopped    bool
}

// frame is one open span: the rule that opened it and where it began.
type frame struct {
	rule  *rule
	start Position
}

// Tokenize starts a new run over input. The run is restartable only in the
// sense that calling Tokenize again yields an identical fresh sequence.
func (g *Grammar) Tokenize(filename, input string, options ...Option) *Tokenizer {
	t := &Tokenizer{
		grammar:    g,
		data:       input,
		pos:        Position{Filename: filename, Line: 1, Column: 1},
		maxTokens:  -1,
		stopOffset: -1,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Tokens tokenizes input and collects the whole sequence.
func (g *Grammar) Tokens(filename, input string, options ...Option) []Token {
	t := g.Tokenize(filename, input, options...)
	tokens := make([]Token, 0, 64)
	for {
		token := t.Next()
		if token.EOF() {
			return tokens
		}
		tokens = append(tokens, token)
	}
}

// Stopped returns true if the run ended early at a MaxTokens or StopOffset
// checkpoint rather than at end of input.
func (t *Tokenizer) Stopped() bool { return t.stopped }

// Next consumes and returns the next token. At end of input it returns an
// EOF token; it never fails.
func (t *Tokenizer) Next() Token {
scan:
	for t.pos.Offset < len(t.data) {
		if t.checkpoint() {
			return EOFToken(t.pos)
		}
		rest := t.data[t.pos.Offset:]

		if len(t.stack) > 0 {
			innermost := t.stack[len(t.stack)-1]
			// The end delimiter is checked before the span's own sub-rules.
			if loc := innermost.rule.end.FindStringIndex(rest); loc != nil {
				t.stack = t.stack[:len(t.stack)-1]
				t.advance(rest[:loc[1]])
				if len(t.stack) == 0 {
					t.emitted++
					return Token{
						Scope: innermost.rule.scope,
						Value: t.data[innermost.start.Offset:t.pos.Offset],
						Pos:   innermost.start,
					}
				}
				// A nested span closed; its text stays inside the outer span.
				continue
			}
			for _, candidate := range innermost.rule.inner {
				loc := candidate.re.FindStringIndex(rest)
				if loc == nil || loc[1] == 0 {
					// Zero-width matches cannot make progress.
					continue
				}
				if candidate.end != nil {
					t.stack = append(t.stack, frame{rule: candidate, start: t.pos})
				}
				t.advance(rest[:loc[1]])
				continue scan
			}
			// Interior text the sub-rules don't claim is absorbed verbatim.
			_, n := utf8.DecodeRuneInString(rest)
			t.advance(rest[:n])
			continue
		}

		for _, candidate := range t.grammar.root {
			loc := candidate.re.FindStringIndex(rest)
			if loc == nil || loc[1] == 0 {
				continue
			}
			start := t.pos
			if candidate.end != nil {
				t.stack = append(t.stack, frame{rule: candidate, start: start})
				t.advance(rest[:loc[1]])
				continue scan
			}
			t.advance(rest[:loc[1]])
			t.emitted++
			return Token{Scope: candidate.scope, Value: rest[:loc[1]], Pos: start}
		}

		// No rule claims this offset. Surface the rune as a plain token so
		// the output still reconstructs the input.
		start := t.pos
		_, n := utf8.DecodeRuneInString(rest)
		t.advance(rest[:n])
		t.emitted++
		return Token{Value: rest[:n], Pos: start}
	}

	// Zero-width end delimiters, eg. a line comment's (?m)$, may still close
	// open spans at end of input.
	for len(t.stack) > 0 {
		innermost := t.stack[len(t.stack)-1]
		if innermost.rule.end.FindStringIndex("") == nil {
			break
		}
		t.stack = t.stack[:len(t.stack)-1]
		if len(t.stack) == 0 {
			t.emitted++
			return Token{
				Scope: innermost.rule.scope,
				Value: t.data[innermost.start.Offset:],
				Pos:   innermost.start,
			}
		}
	}
	if len(t.stack) > 0 {
		outermost := t.stack[0]
		t.stack = t.stack[:0]
		t.emitted++
		return Token{
			Scope:        outermost.rule.scope,
			Value:        t.data[outermost.start.Offset:],
			Pos:          outermost.start,
			Unterminated: true,
		}
	}
	return EOFToken(t.pos)
}

func (t *Tokenizer) checkpoint() bool {
	if t.stopped {
		return true
	}
	if t.maxTokens >= 0 && t.emitted >= t.maxTokens {
		t.stopped = true
	}
	if t.stopOffset >= 0 && t.pos.Offset >= t.stopOffset {
		t.stopped = true
	}
	return t.stopped
}

func (t *Tokenizer) advance(span string) {
	t.pos.Offset += len(span)
	lines := strings.Count(span, "\n")
	t.pos.Line += lines
	if lines == 0 {
		t.pos.Column += utf8.RuneCountInString(span)
	} else {
		t.pos.Column = utf8.RuneCountInString(span[strings.LastIndex(span, "\n"):])
	}
}
