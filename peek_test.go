package textmate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeekingTokenizer(t *testing.T) {
	p := Upgrade(Aurora().Tokenize("", "let x = 42"), "")

	require.Equal(t, "let", p.Peek(0).Value)
	require.Equal(t, "42", p.Peek(1).Value)
	require.True(t, p.Peek(2).EOF())

	require.Equal(t, "let", p.Next().Value)
	require.Equal(t, "42", p.Next().Value)
	require.True(t, p.Next().EOF())
}

func TestPeekingTokenizerClone(t *testing.T) {
	p := Upgrade(Aurora().Tokenize("", "let x = 42"), "")
	require.Equal(t, "let", p.Next().Value)

	clone := p.Clone()
	require.Equal(t, "42", p.Next().Value)
	require.Equal(t, "42", clone.Next().Value)
	require.True(t, p.Next().EOF())
}

func TestPeekingTokenizerKeepsPlainTokens(t *testing.T) {
	p := Upgrade(Aurora().Tokenize("", "let x"))
	require.Equal(t, "let", p.Next().Value)
	require.Equal(t, " ", p.Next().Value)
	require.Equal(t, "x", p.Next().Value)
	require.True(t, p.Next().EOF())
}
