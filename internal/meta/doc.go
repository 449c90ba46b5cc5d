// Package meta parses the metadata attached to Markdown code fences.
//
// A fence such as
//
//	```js title="a.js" {2-4,6} showLineNumbers{10}
//
// carries a meta string after its language tag. Lex turns that string into
// tokens, Parse turns the tokens into a Metadata value and ExpandRange turns
// the numeric body of a brace group into explicit line numbers.
//
// Parsing is lenient: malformed input never produces an error, it only leaves
// the affected Metadata fields at their defaults.
//
// All functions are pure and safe for concurrent use.
package meta
