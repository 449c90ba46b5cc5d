package meta

// pairs maps each opening delimiter to its closer.
var pairs = map[byte]byte{
	'{':  '}',
	'(':  ')',
	'"':  '"',
	'\'': '\'',
	'/':  '/',
}

// stateFunc is one state of the lexer; it returns the next state, or nil
// once the input is exhausted.
type stateFunc func(*lexer) stateFunc

type lexer struct {
	input  string
	pos    int // current byte offset
	start  int // start of the token being accumulated
	tokens []Token
}

// Lex splits a meta string into tokens.
//
// Lex never fails. Delimiters are emitted as symbol tokens around the literal
// they enclose; an empty pair such as `""` yields the two symbols and no
// literal. A literal left open at the end of input is emitted without a
// closing symbol.
func Lex(input string) []Token {
	l := &lexer{input: input}
	for state := lexScanning; state != nil; {
		state = state(l)
	}
	return l.tokens
}

func (l *lexer) emit(kind Kind, start, end int) {
	l.tokens = append(l.tokens, Token{
		Kind:  kind,
		Text:  l.input[start:end],
		Start: start,
		End:   end,
	})
}

// lexScanning looks for the start of the next token.
func lexScanning(l *lexer) stateFunc {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case pairs[c] != 0:
			closer := pairs[c]
			l.emit(KindSymbol, l.pos, l.pos+1)
			l.pos++
			return lexLiteral(closer)
		case c == '=':
			l.emit(KindSymbol, l.pos, l.pos+1)
			l.pos++
		case isLetter(c):
			l.start = l.pos
			return lexIdentifier
		default:
			l.pos++
		}
	}
	return nil
}

// lexIdentifier accumulates a run of letters. The byte that ends the run is
// left for lexScanning.
func lexIdentifier(l *lexer) stateFunc {
	for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
		l.pos++
	}
	kind := KindIdentifier
	if _, ok := LookupKeyword(l.input[l.start:l.pos]); ok {
		kind = KindKeyword
	}
	l.emit(kind, l.start, l.pos)
	return lexScanning
}

// lexLiteral returns a state that accumulates everything up to closer.
func lexLiteral(closer byte) stateFunc {
	return func(l *lexer) stateFunc {
		l.start = l.pos
		for l.pos < len(l.input) {
			if l.input[l.pos] == closer {
				if l.pos > l.start {
					l.emit(KindLiteral, l.start, l.pos)
				}
				l.emit(KindSymbol, l.pos, l.pos+1)
				l.pos++
				return lexScanning
			}
			l.pos++
		}
		if l.pos > l.start {
			l.emit(KindLiteral, l.start, l.pos)
		}
		return nil
	}
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// Unterminated returns the opening delimiter of a literal that was never
// closed, if the token sequence produced by Lex contains one.
func Unterminated(tokens []Token) (Token, bool) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != KindSymbol || len(tok.Text) != 1 {
			continue
		}
		closer, ok := pairs[tok.Text[0]]
		if !ok {
			continue
		}
		j := i + 1
		if j < len(tokens) && tokens[j].Kind == KindLiteral {
			j++
		}
		if j >= len(tokens) || !tokens[j].IsSymbol(string(closer)) {
			return tok, true
		}
		i = j
	}
	return Token{}, false
}
