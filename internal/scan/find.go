package scan

import "strings"

// DefaultComment is the comment delimiter used when none is configured.
const DefaultComment = "#"

// ToEnd is the FindOptions.End value that searches through the end of the
// haystack.
const ToEnd = -1

// tripleQuote starts a docstring-style region that is treated like a comment.
const tripleQuote = `"""`

// FindOptions controls a quote-aware search.
type FindOptions struct {
	// Start is the first index examined. Negative values mean 0.
	Start int
	// End is the exclusive upper bound, clamped to len(haystack). ToEnd or
	// any negative value means len(haystack); 0 is an empty window.
	End int
	// Backward reports the last match in [Start, End) instead of the first.
	Backward bool
	// Comment is the comment delimiter. Empty means DefaultComment.
	Comment string
	// IgnoreComments disables comment handling so only quotes are tracked.
	IgnoreComments bool
}

func (o FindOptions) bounds(n int) (int, int) {
	start, end := o.Start, o.End
	if start < 0 {
		start = 0
	}
	if end < 0 || end > n {
		end = n
	}
	return start, end
}

// Find returns the index of needle in haystack where the match is outside
// any single- or double-quoted string and before any comment, or -1.
//
// Quote state is established by walking forward from opts.Start. A quote
// opens on an unescaped ' or " and closes on the same character when it is
// not preceded by a backslash. Outside quotes a match at the cursor wins over
// the comment check, so searching for the comment delimiter itself finds
// the first real comment.
func Find(haystack, needle string, opts FindOptions) int {
	if haystack == "" || needle == "" {
		return -1
	}
	start, end := opts.bounds(len(haystack))
	comment := opts.Comment
	if comment == "" {
		comment = DefaultComment
	}

	found := -1
	var quote byte
	for i := start; i < end; i++ {
		c := haystack[i]
		if quote != 0 {
			if c == quote && !escapedAt(haystack, i) {
				quote = 0
			}
			continue
		}
		if i+len(needle) <= end && haystack[i:i+len(needle)] == needle {
			if !opts.Backward {
				return i
			}
			found = i
		}
		if !opts.IgnoreComments {
			rest := haystack[i:end]
			if strings.HasPrefix(rest, comment) || strings.HasPrefix(rest, tripleQuote) {
				break
			}
		}
		if (c == '"' || c == '\'') && !escapedAt(haystack, i) {
			quote = c
		}
	}
	return found
}

func escapedAt(s string, i int) bool {
	return i > 0 && s[i-1] == '\\'
}

// FindUnquotedNotCommented returns the first index of needle that is neither
// quoted nor behind a '#' comment, or -1.
func FindUnquotedNotCommented(haystack, needle string) int {
	return Find(haystack, needle, FindOptions{End: ToEnd})
}

// FindLastUnquotedNotCommented is the backward form of
// FindUnquotedNotCommented.
func FindLastUnquotedNotCommented(haystack, needle string) int {
	return Find(haystack, needle, FindOptions{End: ToEnd, Backward: true})
}

// FindUnquotedEvenCommented finds needle outside quotes, treating comment
// delimiters as ordinary text.
func FindUnquotedEvenCommented(haystack, needle string) int {
	return Find(haystack, needle, FindOptions{End: ToEnd, IgnoreComments: true})
}

// FindIdentifier returns the index of the first whole occurrence of ident in
// line at or after start. A whole occurrence is unquoted and uncommented, has
// no identifier character directly before it and no identifier or '.'
// character directly after it. "foo" is found in "obj.foo" but not in
// "foobar" or "foo.bar". Returns -1 when there is none.
func FindIdentifier(line, ident string, start int) int {
	if line == "" || ident == "" {
		return -1
	}
	from := start
	for {
		i := Find(line, ident, FindOptions{Start: from, End: ToEnd})
		if i < 0 {
			return -1
		}
		after := i + len(ident)
		canStart := i == 0 || !IsIdentifierChar(line[i-1])
		isAlone := after == len(line) || !IsIdentifierOrDotChar(line[after])
		if canStart && isAlone {
			return i
		}
		// Part of a longer identifier; skip the whole partial match.
		from = after
	}
}

// ExplodeUnquoted splits haystack on every delimiter that is outside quotes
// and before any comment. The remainder after the last delimiter is always
// the final element, so the result is never empty.
func ExplodeUnquoted(haystack, delimiter string) []string {
	var parts []string
	for {
		i := FindUnquotedNotCommented(haystack, delimiter)
		if i < 0 {
			break
		}
		parts = append(parts, haystack[:i])
		haystack = haystack[i+len(delimiter):]
	}
	return append(parts, haystack)
}
