package textmate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidGrammar(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{name: "EmptyRule",
			def: Definition{Patterns: []Rule{{Name: "x"}}},
		},
		{name: "BeginWithoutEnd",
			def: Definition{Patterns: []Rule{{Name: "str", Begin: `"`}}},
		},
		{name: "EndWithoutBegin",
			def: Definition{Patterns: []Rule{{Name: "str", End: `"`}}},
		},
		{name: "BadMatchPattern",
			def: Definition{Patterns: []Rule{{Name: "x", Match: `(`}}},
		},
		{name: "BadEndPattern",
			def: Definition{Patterns: []Rule{{Name: "x", Begin: `\[`, End: `[`}}},
		},
		{name: "UndefinedInclude",
			def: Definition{Patterns: []Rule{{Include: "#nope"}}},
		},
		{name: "IncludeCombinedWithMatch",
			def: Definition{
				Patterns:   []Rule{{Include: "#x", Match: `y`}},
				Repository: map[string]Rule{"x": {Name: "x", Match: `x`}},
			},
		},
		{name: "MatchCombinedWithPatterns",
			def: Definition{Patterns: []Rule{{Name: "x", Match: `x`, Patterns: []Rule{{Match: `y`}}}}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.def)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidGrammar), "got %v", err)
		})
	}
}

func TestCyclicInclude(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{name: "Direct",
			def: Definition{
				Patterns:   []Rule{{Include: "#a"}},
				Repository: map[string]Rule{"a": {Include: "#a"}},
			},
		},
		{name: "Mutual",
			def: Definition{
				Patterns: []Rule{{Include: "#a"}},
				Repository: map[string]Rule{
					"a": {Include: "#b"},
					"b": {Include: "#a"},
				},
			},
		},
		{name: "ThroughGroupingRule",
			def: Definition{
				Patterns:   []Rule{{Include: "#a"}},
				Repository: map[string]Rule{"a": {Patterns: []Rule{{Match: `x`, Name: "x"}, {Include: "#a"}}}},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.def)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrCyclicInclude), "got %v", err)
		})
	}
}

func TestSpanBodyBreaksIncludeCycle(t *testing.T) {
	// A span interior is a fresh matching context, so a string that can
	// contain strings is a legal grammar.
	grammar, err := New(Definition{
		Patterns: []Rule{{Include: "#strings"}},
		Repository: map[string]Rule{
			"strings": {
				Name:     "string",
				Begin:    `<`,
				End:      `>`,
				Patterns: []Rule{{Include: "#strings"}},
			},
		},
	})
	require.NoError(t, err)

	tokens := grammar.Tokens("", "<a<b>c>")
	require.Len(t, tokens, 1)
	require.Equal(t, "<a<b>c>", tokens[0].Value)
	require.Equal(t, "string", tokens[0].Scope)
	require.False(t, tokens[0].Unterminated)
}

func TestRepeatedIncludeIsNotACycle(t *testing.T) {
	// The same rule included twice on different branches is reuse, not
	// divergence.
	_, err := New(Definition{
		Patterns: []Rule{{Include: "#word"}, {Include: "#word"}},
		Repository: map[string]Rule{
			"word": {Name: "word", Match: `\w+`},
		},
	})
	require.NoError(t, err)
}

func TestFromJSON(t *testing.T) {
	grammar, err := FromJSON([]byte(AuroraGrammar))
	require.NoError(t, err)
	require.Equal(t, "source.aurora", grammar.ScopeName())

	tokens := grammar.Tokens("", "fn")
	require.Len(t, tokens, 1)
	require.Equal(t, "keyword.control.aurora", tokens[0].Scope)
}

func TestFromJSONMalformed(t *testing.T) {
	_, err := FromJSON([]byte(`{`))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidGrammar), "got %v", err)
}

func TestFromYAML(t *testing.T) {
	grammar, err := FromYAML([]byte(`
scopeName: source.test
patterns:
  - include: '#word'
repository:
  word:
    name: word.test
    match: '\w+'
`))
	require.NoError(t, err)

	tokens := grammar.Tokens("", "hi there")
	values := []string{}
	for _, token := range tokens {
		values = append(values, token.Value)
	}
	require.Equal(t, []string{"hi", " ", "there"}, values)
	require.Equal(t, "word.test", tokens[0].Scope)
}

func TestLoad(t *testing.T) {
	grammar, err := Load(strings.NewReader(AuroraGrammar))
	require.NoError(t, err)
	require.Equal(t, "source.aurora", grammar.ScopeName())
}

func TestMustPanics(t *testing.T) {
	require.Panics(t, func() {
		Must(New(Definition{Patterns: []Rule{{Name: "x"}}}))
	})
}

func TestGrammarErrorNamesTheRule(t *testing.T) {
	_, err := New(Definition{Patterns: []Rule{{Include: "#missing"}}})
	require.Error(t, err)
	require.Contains(t, err.Error(), `"missing"`)
}
