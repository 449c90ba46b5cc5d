package meta

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// MaxRangeSpan bounds the number of lines a single range part may expand to.
// Parts spanning more lines contribute nothing.
const MaxRangeSpan = 10000

var (
	singleLineRE = regexp.MustCompile(`^\d+$`)
	lineRangeRE  = regexp.MustCompile(`^(\d+)(-|\.\.)(\d+)$`)
)

// ExpandRange converts a comma-separated list of line numbers and ranges into
// explicit line numbers.
//
// Supported parts are single numbers ("5"), dash ranges ("1-5") and dot
// ranges ("1..5"). Descending ranges are normalized to ascending order. Zero,
// negative and malformed parts contribute nothing. Duplicates across parts are
// kept in the order they were listed.
func ExpandRange(input string) []int {
	lines := []int{}
	for part := range strings.SplitSeq(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if singleLineRE.MatchString(part) {
			if n, ok := parseLine(part); ok {
				lines = append(lines, n)
			}
			continue
		}

		m := lineRangeRE.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		lhs, okL := parseLine(m[1])
		rhs, okR := parseLine(m[3])
		if !okL || !okR {
			continue
		}
		lo, hi := min(lhs, rhs), max(lhs, rhs)
		if hi-lo >= MaxRangeSpan {
			continue
		}
		for n := lo; n <= hi; n++ {
			lines = append(lines, n)
		}
	}
	return lines
}

// parseLine parses an all-digit string as a strictly positive line number.
func parseLine(s string) (int, bool) {
	if !singleLineRE.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParseStartLine reports the line number written in a showLineNumbers brace
// group. Surrounding space is allowed; anything but a positive integer fails.
func ParseStartLine(s string) (int, bool) {
	return parseLine(strings.TrimSpace(s))
}

// HasDescendingPart reports whether a range part of input runs backwards,
// as in "5-1" or "9..7".
func HasDescendingPart(input string) bool {
	for part := range strings.SplitSeq(input, ",") {
		m := lineRangeRE.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		lhs, okL := parseLine(m[1])
		rhs, okR := parseLine(m[3])
		if okL && okR && lhs > rhs {
			return true
		}
	}
	return false
}

// CompactRange writes line numbers in the notation accepted by ExpandRange,
// sorted and without duplicates, collapsing consecutive runs into "a-b".
func CompactRange(lines []int) string {
	sorted := slices.Clone(lines)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var b strings.Builder
	for i := 0; i < len(sorted); {
		if sorted[i] <= 0 {
			i++
			continue
		}
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(sorted[i]))
		if j > i {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(sorted[j]))
		}
		i = j + 1
	}
	return b.String()
}
