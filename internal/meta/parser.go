package meta

import "strings"

// Parse interprets a meta string.
//
// Recognized forms are title="..." (or single-quoted), showLineNumbers with an
// optional adjacent {start}, and a brace group of line ranges written either
// bare ({1,3-5}) or as highlight{1,3-5}. The first brace group that selects at
// least one line wins. Unknown identifiers, such as a leading language tag,
// are ignored. Parse never fails; unrecognized syntax leaves the defaults in
// place.
func Parse(metaString string) Metadata {
	md := Defaults()
	if metaString == "" {
		return md
	}

	c := newCursor(Lex(metaString))
	for !c.done() {
		tok := c.current()
		switch {
		case tok.Kind == KindKeyword:
			c.advance(parseKeyword(c, tok, &md))
		case tok.IsSymbol("{"):
			c.advance(parseLineRanges(c, &md))
		default:
			c.advance(1)
		}
	}
	return md
}

// ParseInfo parses a complete fence info string, whose first word is the
// language of the code block.
func ParseInfo(info string) Metadata {
	md := Parse(info)
	if fields := strings.Fields(info); len(fields) > 0 {
		md.Language = fields[0]
	}
	return md
}

// parseKeyword applies the keyword under the cursor and returns how many
// tokens it consumed.
func parseKeyword(c *cursor, tok Token, md *Metadata) int {
	kw, _ := tok.Keyword()
	switch kw {
	case KeywordTitle:
		if c.match(isSymbol("="), Token.IsQuote, isKind(KindLiteral)) {
			lit, _ := c.peek(3)
			md.Title = lit.Text
			return 4
		}
	case KeywordShowLineNumbers:
		md.ShowLineNumbers = true
		if brace, ok := c.peek(1); ok && brace.Start == tok.End &&
			c.match(isSymbol("{"), isKind(KindLiteral), isSymbol("}")) {
			lit, _ := c.peek(2)
			if n, ok := ParseStartLine(lit.Text); ok {
				md.LineNumberStart = n
			}
			return 4
		}
	case KeywordHighlight:
		// The brace group that follows is handled as a bare group.
	}
	return 1
}

// parseLineRanges handles a brace group under the cursor.
func parseLineRanges(c *cursor, md *Metadata) int {
	lit, ok := c.peek(1)
	if !ok || lit.Kind != KindLiteral {
		return 1
	}
	if len(md.HighlightedLines) == 0 {
		md.HighlightedLines = ExpandRange(lit.Text)
	}
	return 2
}

func isSymbol(s string) func(Token) bool {
	return func(t Token) bool { return t.IsSymbol(s) }
}

func isKind(k Kind) func(Token) bool {
	return func(t Token) bool { return t.Kind == k }
}
