package meta

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(text string, start int) Token {
	return Token{Kind: KindSymbol, Text: text, Start: start, End: start + len(text)}
}

func lit(text string, start int) Token {
	return Token{Kind: KindLiteral, Text: text, Start: start, End: start + len(text)}
}

func ident(text string, start int) Token {
	return Token{Kind: KindIdentifier, Text: text, Start: start, End: start + len(text)}
}

func kw(text string, start int) Token {
	return Token{Kind: KindKeyword, Text: text, Start: start, End: start + len(text)}
}

func TestLex_TitleOffsets(t *testing.T) {
	tokens := Lex(`title="testing lexer"`)
	require.Len(t, tokens, 5)

	assert.Equal(t, Token{Kind: KindKeyword, Text: "title", Start: 0, End: 5}, tokens[0])
	assert.Equal(t, Token{Kind: KindSymbol, Text: "=", Start: 5, End: 6}, tokens[1])
	assert.Equal(t, Token{Kind: KindSymbol, Text: `"`, Start: 6, End: 7}, tokens[2])
	assert.Equal(t, Token{Kind: KindLiteral, Text: "testing lexer", Start: 7, End: 20}, tokens[3])
	assert.Equal(t, Token{Kind: KindSymbol, Text: `"`, Start: 20, End: 21}, tokens[4])
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{name: "empty", input: "", want: nil},
		{name: "whitespace only", input: "   \t", want: nil},
		{name: "single identifier", input: "javascript", want: []Token{ident("javascript", 0)}},
		{name: "single quote pair", input: "'single'", want: []Token{sym("'", 0), lit("single", 1), sym("'", 7)}},
		{name: "double quote pair", input: `"double"`, want: []Token{sym(`"`, 0), lit("double", 1), sym(`"`, 7)}},
		{name: "slash pair", input: "/word/", want: []Token{sym("/", 0), lit("word", 1), sym("/", 5)}},
		{name: "paren pair", input: "(argument)", want: []Token{sym("(", 0), lit("argument", 1), sym(")", 9)}},
		{name: "brace pair", input: "{range}", want: []Token{sym("{", 0), lit("range", 1), sym("}", 6)}},
		{name: "range", input: "{3..5,7}", want: []Token{sym("{", 0), lit("3..5,7", 1), sym("}", 7)}},
		{name: "show line numbers", input: "showLineNumbers", want: []Token{kw("showLineNumbers", 0)}},
		{
			name:  "starting line number",
			input: "showLineNumbers{5}",
			want:  []Token{kw("showLineNumbers", 0), sym("{", 15), lit("5", 16), sym("}", 17)},
		},
		{
			name:  "highlight keyword",
			input: "highlight{1-3}",
			want:  []Token{kw("highlight", 0), sym("{", 9), lit("1-3", 10), sym("}", 13)},
		},
		{name: "empty quotes", input: `""`, want: []Token{sym(`"`, 0), sym(`"`, 1)}},
		{name: "empty braces", input: "{}", want: []Token{sym("{", 0), sym("}", 1)}},
		{
			name:  "unterminated literal",
			input: `title="unterminated`,
			want:  []Token{kw("title", 0), sym("=", 5), sym(`"`, 6), lit("unterminated", 7)},
		},
		{name: "lone opener", input: "{", want: []Token{sym("{", 0)}},
		{
			name:  "spacing between tokens",
			input: `js  title = "a"`,
			want:  []Token{ident("js", 0), kw("title", 4), sym("=", 10), sym(`"`, 12), lit("a", 13), sym(`"`, 14)},
		},
		{name: "digits end identifiers", input: "abc123def", want: []Token{ident("abc", 0), ident("def", 6)}},
		{name: "keyword case sensitive", input: "Title", want: []Token{ident("Title", 0)}},
		{name: "stray closer", input: "} =", want: []Token{sym("=", 2)}},
		{
			name:  "other quote inside literal",
			input: `"it's"`,
			want:  []Token{sym(`"`, 0), lit("it's", 1), sym(`"`, 5)},
		},
		{
			name:  "multibyte literal",
			input: `title="héllo"`,
			want:  []Token{kw("title", 0), sym("=", 5), sym(`"`, 6), lit("héllo", 7), sym(`"`, 13)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lex(tt.input)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Lex(%q) (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

var lexCorpus = []string{
	"",
	`title="hello world"`,
	`js title="test.js" {1,3} showLineNumbers{5}`,
	`title='a "quoted" word' highlight{2-4,6}`,
	`/regex/ (paren) {unterminated`,
	`showLineNumbers{10}{1..3}`,
	`weird = = "" '' {} () //`,
	"tabs\tand\nnewlines {1}",
	`ünïcödé title="ßeta"`,
}

func TestLex_OffsetsAreExactAndOrdered(t *testing.T) {
	for _, input := range lexCorpus {
		t.Run(input, func(t *testing.T) {
			prevEnd := 0
			for _, tok := range Lex(input) {
				require.GreaterOrEqual(t, tok.Start, prevEnd, "tokens overlap: %v", tok)
				require.Greater(t, tok.End, tok.Start, "empty token: %v", tok)
				require.Equal(t, input[tok.Start:tok.End], tok.Text)
				prevEnd = tok.End
			}
		})
	}
}

func TestLex_RelexingTokenTextKeepsBoundaries(t *testing.T) {
	for _, input := range lexCorpus {
		t.Run(input, func(t *testing.T) {
			tokens := Lex(input)

			// Rebuild the input from token text alone, blanking everything the
			// lexer skipped.
			rebuilt := []byte(strings.Repeat(" ", len(input)))
			for _, tok := range tokens {
				copy(rebuilt[tok.Start:], tok.Text)
			}

			if diff := cmp.Diff(tokens, Lex(string(rebuilt)), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("relex mismatch (-first +second):\n%s", diff)
			}
		})
	}
}

func TestUnterminated(t *testing.T) {
	tests := []struct {
		input    string
		wantOpen bool
		opener   Token
	}{
		{input: `title="closed"`},
		{input: `{1-3} showLineNumbers{2}`},
		{input: `""`},
		{input: ""},
		{input: `title="open`, wantOpen: true, opener: sym(`"`, 6)},
		{input: `{1-3`, wantOpen: true, opener: sym("{", 0)},
		{input: `title="a" {`, wantOpen: true, opener: sym("{", 10)},
		{input: `(x) 'y`, wantOpen: true, opener: sym("'", 4)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			opener, open := Unterminated(Lex(tt.input))
			assert.Equal(t, tt.wantOpen, open)
			if tt.wantOpen {
				assert.Equal(t, tt.opener, opener)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "identifier", KindIdentifier.String())
	assert.Equal(t, "keyword", KindKeyword.String())
	assert.Equal(t, "literal", KindLiteral.String())
	assert.Equal(t, "symbol", KindSymbol.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestToken_Keyword(t *testing.T) {
	k, ok := kw("title", 0).Keyword()
	require.True(t, ok)
	assert.Equal(t, KeywordTitle, k)

	_, ok = ident("js", 0).Keyword()
	assert.False(t, ok)
}
