package markdown

import (
	"cmp"
	"fmt"
	"slices"
)

// Edit replaces Source[Start:End] with Replacement. Offsets refer to the
// original source, End exclusive. The lint fixer uses edits to rewrite a
// fence's info string without re-rendering the document.
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ApplyEdits applies non-overlapping edits to source and returns the result.
// The input slice is never modified. Edits may be given in any order.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})

	size := len(source)
	for i, e := range sorted {
		switch {
		case e.Start < 0 || e.End < 0:
			return nil, fmt.Errorf("invalid edit [%d,%d): negative range", e.Start, e.End)
		case e.End < e.Start:
			return nil, fmt.Errorf("invalid edit [%d,%d): end before start", e.Start, e.End)
		case e.End > len(source):
			return nil, fmt.Errorf("invalid edit [%d,%d): range out of bounds", e.Start, e.End)
		case i > 0 && e.Start < sorted[i-1].End:
			return nil, fmt.Errorf("invalid edits: [%d,%d) overlaps [%d,%d)", e.Start, e.End, sorted[i-1].Start, sorted[i-1].End)
		}
		size += len(e.Replacement) - (e.End - e.Start)
	}

	out := make([]byte, 0, size)
	pos := 0
	for _, e := range sorted {
		out = append(out, source[pos:e.Start]...)
		out = append(out, e.Replacement...)
		pos = e.End
	}
	return append(out, source[pos:]...), nil
}
