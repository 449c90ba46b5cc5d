package meta

// cursor walks a token sequence forward. All index arithmetic on the
// sequence goes through peek and advance.
type cursor struct {
	tokens []Token
	pos    int
}

func newCursor(tokens []Token) *cursor {
	return &cursor{tokens: tokens}
}

// done reports whether every token has been consumed.
func (c *cursor) done() bool {
	return c.pos >= len(c.tokens)
}

// current returns the token under the cursor.
func (c *cursor) current() Token {
	tok, _ := c.peek(0)
	return tok
}

// peek returns the token k positions ahead of the cursor.
func (c *cursor) peek(k int) (Token, bool) {
	i := c.pos + k
	if k < 0 || i >= len(c.tokens) {
		return Token{}, false
	}
	return c.tokens[i], true
}

// match reports whether the tokens following the cursor satisfy preds in
// order, starting one position ahead.
func (c *cursor) match(preds ...func(Token) bool) bool {
	for i, pred := range preds {
		tok, ok := c.peek(i + 1)
		if !ok || !pred(tok) {
			return false
		}
	}
	return true
}

// advance moves the cursor n tokens forward. It never moves backwards.
func (c *cursor) advance(n int) {
	if n < 1 {
		n = 1
	}
	c.pos = min(c.pos+n, len(c.tokens))
}
