package meta

// Keyword is a directive name recognized inside a meta string.
type Keyword string

const (
	KeywordTitle           Keyword = "title"
	KeywordShowLineNumbers Keyword = "showLineNumbers"
	KeywordHighlight       Keyword = "highlight"
)

var keywords = map[string]Keyword{
	string(KeywordTitle):           KeywordTitle,
	string(KeywordShowLineNumbers): KeywordShowLineNumbers,
	string(KeywordHighlight):       KeywordHighlight,
}

// LookupKeyword reports whether text names a known keyword.
// The match is case-sensitive.
func LookupKeyword(text string) (Keyword, bool) {
	kw, ok := keywords[text]
	return kw, ok
}
