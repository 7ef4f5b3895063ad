package textmate

import "sync"

// AuroraGrammar is the grammar declaration for the Aurora language, in
// TextMate JSON form.
//
// Rule order is the match priority: constants shadow what keywords or plain
// text would otherwise claim, and "#" opens a comment even mid-expression.
// The number and operator patterns are reproduced exactly as declared:
// numbers require at least two digits with an optional interior dot, and the
// operators carry word-boundary anchors even though they are punctuation.
var AuroraGrammar = `{
	"scopeName": "source.aurora",
	"patterns": [
		{"include": "#comments"},
		{"include": "#constants"},
		{"include": "#keywords"},
		{"include": "#types"},
		{"include": "#operators"},
		{"include": "#number"},
		{"include": "#strings"}
	],
	"repository": {
		"comments": {
			"name": "comment.line.number-sign.aurora",
			"begin": "#",
			"end": "(?m)$"
		},
		"constants": {
			"name": "constant.language.aurora",
			"match": "\\b(true|false|null)\\b"
		},
		"keywords": {
			"name": "keyword.control.aurora",
			"match": "\\b(extern|fn|return|let)\\b"
		},
		"types": {
			"name": "storage.type.aurora",
			"match": "\\b(f64|i64)\\b"
		},
		"operators": {
			"name": "keyword.operator.aurora",
			"match": "\\b(\\+|-|\\*)\\b"
		},
		"number": {
			"name": "constant.numeric.aurora",
			"match": "\\d+\\.?\\d+"
		},
		"strings": {
			"name": "string.quoted.double.aurora",
			"begin": "\"",
			"end": "\"",
			"patterns": [
				{
					"name": "constant.character.escape.aurora",
					"match": "\\\\."
				}
			]
		}
	}
}`

var (
	auroraOnce    sync.Once
	auroraGrammar *Grammar
)

// Aurora returns the compiled Aurora grammar. The grammar is compiled once
// and shared; it is safe for concurrent use.
func Aurora() *Grammar {
	auroraOnce.Do(func() {
		auroraGrammar = Must(FromJSON([]byte(AuroraGrammar)))
	})
	return auroraGrammar
}
