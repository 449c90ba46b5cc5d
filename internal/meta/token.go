package meta

import "fmt"

// Kind classifies a Token.
type Kind uint8

const (
	// KindIdentifier is a run of ASCII letters that is not a keyword.
	KindIdentifier Kind = iota
	// KindKeyword is an identifier whose text is a known Keyword.
	KindKeyword
	// KindLiteral is the text between a pair of delimiters.
	KindLiteral
	// KindSymbol is a single delimiter or '=' character.
	KindSymbol
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindKeyword:
		return "keyword"
	case KindLiteral:
		return "literal"
	case KindSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a lexical unit of a meta string.
//
// Start and End are byte offsets into the lexed string, with End exclusive,
// so Text == input[Start:End].
type Token struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Keyword returns the keyword named by t, if t is a keyword token.
func (t Token) Keyword() (Keyword, bool) {
	if t.Kind != KindKeyword {
		return "", false
	}
	return LookupKeyword(t.Text)
}

// IsSymbol reports whether t is the symbol s.
func (t Token) IsSymbol(s string) bool {
	return t.Kind == KindSymbol && t.Text == s
}

// IsQuote reports whether t is a single or double quote symbol.
func (t Token) IsQuote() bool {
	return t.IsSymbol(`"`) || t.IsSymbol(`'`)
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q [%d,%d)", t.Kind, t.Text, t.Start, t.End)
}
