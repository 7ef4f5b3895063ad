// Command aurora-tokens dumps the scoped tokens a grammar produces for a
// source file, or renders the source to the terminal with one colour per
// scope as a quick visual check of a grammar.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/aurora-lang/textmate"
)

var (
	grammarFlag = kingpin.Flag("grammar", "Grammar file (.json, .yml or .yaml). Defaults to the built-in Aurora grammar.").PlaceHolder("FILE").String()
	renderFlag  = kingpin.Flag("render", "Render the source with per-scope colours instead of dumping tokens.").Short('r').Bool()
	sourceArg   = kingpin.Arg("file", "Source file to tokenize.").Required().String()
)

var palette = map[string]*color.Color{
	"comment":  color.New(color.FgHiBlack),
	"constant": color.New(color.FgCyan),
	"keyword":  color.New(color.FgMagenta),
	"storage":  color.New(color.FgBlue),
	"string":   color.New(color.FgGreen),
}

func main() {
	kingpin.CommandLine.Help = `Tokenize a source file with a TextMate-style grammar.`
	kingpin.Parse()

	grammar := textmate.Aurora()
	if *grammarFlag != "" {
		var err error
		grammar, err = loadGrammar(*grammarFlag)
		kingpin.FatalIfError(err, "load grammar")
	}

	source, err := os.ReadFile(*sourceArg)
	kingpin.FatalIfError(err, "")

	tokens := grammar.Tokens(*sourceArg, string(source))
	if *renderFlag {
		render(tokens)
		return
	}
	for _, token := range tokens {
		repr.Println(token)
	}
}

func loadGrammar(path string) (*textmate.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return textmate.FromYAML(data)
	default:
		return textmate.FromJSON(data)
	}
}

func render(tokens []textmate.Token) {
	for _, token := range tokens {
		if c, ok := palette[scopeClass(token.Scope)]; ok {
			c.Print(token.Value)
		} else {
			fmt.Print(token.Value)
		}
	}
	for _, token := range tokens {
		if token.Unterminated {
			color.New(color.FgRed).Fprintf(os.Stderr, "%s: unterminated %s\n", token.Pos, token.Scope)
		}
	}
}

// scopeClass reduces eg. "keyword.control.aurora" to "keyword".
func scopeClass(scope string) string {
	if i := strings.IndexByte(scope, '.'); i >= 0 {
		return scope[:i]
	}
	return scope
}
