// Package highlight renders a code block to HTML with chroma, annotating the
// markup with the fence metadata parsed by package meta.
//
// The output is a single <pre> element:
//
//	<pre class="chroma" style="background-color: #0d1117" data-code-title="main.go">
//	<code data-language="go" data-line-numbers="">
//	<span class="line" data-line-number="1" data-highlighted=""><span style="...">package</span>...</span>
//	...
//	</code></pre>
//
// Lines are separated by a newline text node and an empty line holds a
// single newline so it keeps its height inside <pre>.
package highlight
