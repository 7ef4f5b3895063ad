package textmate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrammar is the class of all structural grammar load failures.
	ErrInvalidGrammar = errors.New("invalid grammar")
	// ErrCyclicInclude reports an include chain that revisits a rule without
	// an interposed span body, and thus could never terminate.
	ErrCyclicInclude = errors.New("cyclic include")
)

// GrammarError describes why a grammar failed to load.
//
// It unwraps to either ErrInvalidGrammar or ErrCyclicInclude.
type GrammarError struct {
	// Rule is the repository name or scope of the offending rule, if known.
	Rule    string
	Message string
	Err     error
}

func (e *GrammarError) Error() string {
	if e.Rule == "" {
		return e.Message
	}
	return fmt.Sprintf("rule %q: %s", e.Rule, e.Message)
}

func (e *GrammarError) Unwrap() error { return e.Err }

// invalidf creates a load-time error for the given rule.
func invalidf(rule, format string, args ...interface{}) error {
	return &GrammarError{Rule: rule, Message: fmt.Sprintf(format, args...), Err: ErrInvalidGrammar}
}
