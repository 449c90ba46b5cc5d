package highlight

import (
	"bytes"

	"go4.org/bytereplacer"
)

// svelteEscaper rewrites characters that Svelte would read as template
// syntax when the markup is embedded with {@html `...`}.
var svelteEscaper = bytereplacer.New(
	"{", "&#123;",
	"}", "&#125;",
	"`", "&#96;",
	`\t`, "&#92;t",
	`\r`, "&#92;r",
	`\n`, "&#92;n",
)

// SvelteEscape returns a copy of markup with Svelte template characters
// replaced by numeric character references.
func SvelteEscape(markup []byte) []byte {
	return svelteEscaper.Replace(bytes.Clone(markup))
}
