package textmate

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// A Rule is a single declarative pattern in a grammar.
//
// Exactly one of the following forms must be used:
//
//   - Match: a single regex, emitted with the scope in Name.
//   - Begin/End: a span with distinct delimiters whose interior is scanned
//     against Patterns. The whole span is emitted as one token of scope Name.
//   - Include: a "#name" reference to a repository rule.
//   - Patterns alone: a grouping rule that expands to its children in place.
type Rule struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Match    string `json:"match,omitempty" yaml:"match,omitempty"`
	Begin    string `json:"begin,omitempty" yaml:"begin,omitempty"`
	End      string `json:"end,omitempty" yaml:"end,omitempty"`
	Include  string `json:"include,omitempty" yaml:"include,omitempty"`
	Patterns []Rule `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// A Definition is the declarative form of a grammar: an ordered top-level
// pattern list plus a repository of named rules addressable via includes.
type Definition struct {
	ScopeName  string          `json:"scopeName,omitempty" yaml:"scopeName,omitempty"`
	Patterns   []Rule          `json:"patterns" yaml:"patterns"`
	Repository map[string]Rule `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// Grammar is a compiled rule set. Includes are resolved and patterns compiled
// once, at construction. A Grammar is immutable and safe for concurrent use
// by any number of tokenization runs.
type Grammar struct {
	scope string
	root  []*rule
}

// rule is a compiled candidate. end is nil for match rules; for span rules it
// holds the end delimiter pattern and inner the flattened interior rules.
type rule struct {
	scope string
	re    *regexp.Regexp
	end   *regexp.Regexp
	inner []*rule
}

// New compiles a declarative grammar Definition.
func New(def Definition) (*Grammar, error) {
	c := &compiler{
		repo:     def.Repository,
		compiled: map[string][]*rule{},
		path:     map[string]bool{},
	}
	root, err := c.list(def.Patterns)
	if err != nil {
		return nil, err
	}
	return &Grammar{scope: def.ScopeName, root: root}, nil
}

// FromJSON compiles a grammar from its TextMate JSON form.
func FromJSON(data []byte) (*Grammar, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, &GrammarError{Message: err.Error(), Err: ErrInvalidGrammar}
	}
	return New(def)
}

// FromYAML compiles a grammar from its YAML form.
func FromYAML(data []byte) (*Grammar, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, &GrammarError{Message: err.Error(), Err: ErrInvalidGrammar}
	}
	return New(def)
}

// Load compiles a JSON grammar read from r.
func Load(r io.Reader) (*Grammar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// Must takes the result of a Grammar constructor call and returns the
// grammar, but panics if it errored.
//
// eg.
//
//	grammar := textmate.Must(textmate.FromJSON(data))
func Must(g *Grammar, err error) *Grammar {
	if err != nil {
		panic(err)
	}
	return g
}

// ScopeName returns the grammar's root scope, eg. "source.aurora".
func (g *Grammar) ScopeName() string { return g.scope }

// compiler flattens includes into order-preserving candidate lists.
//
// compiled memoizes the expansion of each repository rule so that every
// include of a name shares one rule value. path tracks the names on the
// current include chain for cycle detection; a span body starts a fresh path
// because entering the span changes the matching context, which makes
// self-referential spans (a string that can contain strings) legal.
type compiler struct {
	repo     map[string]Rule
	compiled map[string][]*rule
	path     map[string]bool
}

func (c *compiler) list(rules []Rule) ([]*rule, error) {
	out := make([]*rule, 0, len(rules))
	for _, r := range rules {
		expanded, err := c.rule(r)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func (c *compiler) rule(r Rule) ([]*rule, error) {
	if r.End != "" && r.Begin == "" {
		return nil, invalidf(label(r), "end without begin")
	}
	switch {
	case r.Include != "":
		if r.Match != "" || r.Begin != "" || len(r.Patterns) > 0 {
			return nil, invalidf(label(r), "include cannot be combined with other fields")
		}
		return c.expand(r.Include)
	case r.Match != "":
		if r.Begin != "" || len(r.Patterns) > 0 {
			return nil, invalidf(label(r), "match cannot be combined with begin or patterns")
		}
		re, err := compilePattern(label(r), r.Match)
		if err != nil {
			return nil, err
		}
		return []*rule{{scope: r.Name, re: re}}, nil
	case r.Begin != "":
		span, err := c.span(r)
		if err != nil {
			return nil, err
		}
		return []*rule{span}, nil
	case len(r.Patterns) > 0:
		return c.list(r.Patterns)
	default:
		return nil, invalidf(label(r), "rule must declare match, begin/end, include or patterns")
	}
}

func (c *compiler) span(r Rule) (*rule, error) {
	if r.End == "" {
		return nil, invalidf(label(r), "begin without end")
	}
	out := &rule{scope: r.Name}
	var err error
	if out.re, err = compilePattern(label(r), r.Begin); err != nil {
		return nil, err
	}
	if out.end, err = compilePattern(label(r), r.End); err != nil {
		return nil, err
	}
	saved := c.path
	c.path = map[string]bool{}
	out.inner, err = c.list(r.Patterns)
	c.path = saved
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *compiler) expand(include string) ([]*rule, error) {
	name := strings.TrimPrefix(include, "#")
	if rules, ok := c.compiled[name]; ok {
		return rules, nil
	}
	if c.path[name] {
		return nil, &GrammarError{Rule: name, Message: "include cycle", Err: ErrCyclicInclude}
	}
	r, ok := c.repo[name]
	if !ok {
		return nil, invalidf(name, "include of undefined repository rule")
	}
	if r.Begin != "" {
		// Register the span before compiling its interior so the interior may
		// include it again.
		if r.End == "" {
			return nil, invalidf(name, "begin without end")
		}
		out := &rule{scope: r.Name}
		var err error
		if out.re, err = compilePattern(name, r.Begin); err != nil {
			return nil, err
		}
		if out.end, err = compilePattern(name, r.End); err != nil {
			return nil, err
		}
		c.compiled[name] = []*rule{out}
		saved := c.path
		c.path = map[string]bool{}
		out.inner, err = c.list(r.Patterns)
		c.path = saved
		if err != nil {
			delete(c.compiled, name)
			return nil, err
		}
		return c.compiled[name], nil
	}
	c.path[name] = true
	rules, err := c.rule(r)
	delete(c.path, name)
	if err != nil {
		return nil, err
	}
	c.compiled[name] = rules
	return rules, nil
}

// compilePattern anchors pattern at the scan position.
func compilePattern(rule, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, invalidf(rule, "invalid pattern %q: %s", pattern, err)
	}
	return re, nil
}

func label(r Rule) string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Include != "":
		return strings.TrimPrefix(r.Include, "#")
	default:
		return "(anonymous)"
	}
}
