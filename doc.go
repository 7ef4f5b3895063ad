// Package textmate tokenizes text against TextMate-style declarative grammars.
//
// A grammar is an ordered list of pattern rules plus a repository of named
// rules referenced indirectly via includes. A rule is one of:
//
//   - a match rule: a single regex with a scope name, eg. a keyword.
//   - a span rule: a begin regex and an end regex with an optional set of
//     interior sub-rules, eg. a string literal with escape sequences.
//   - an include: a "#name" reference that expands to the repository rule of
//     that name, recursively.
//
// Grammars may be authored as Go literals, or loaded from the JSON or YAML
// flavours of the TextMate grammar format:
//
//	grammar, err := textmate.FromJSON(data)
//	if err != nil {
//		return err
//	}
//	for _, token := range grammar.Tokens("example.aur", source) {
//		fmt.Printf("%s: %q %s\n", token.Pos, token.Value, token.Scope)
//	}
//
// Matching is anchored at the scan position and uses first-match-in-priority-
// order: the earliest declared rule that matches wins, regardless of how much
// later rules would have consumed. Text no rule claims degrades to plain
// single-rune tokens, so tokenization never fails and the emitted token
// values always concatenate back to the input.
//
// A compiled Grammar is immutable and may be shared by any number of
// concurrent tokenization runs.
package textmate
