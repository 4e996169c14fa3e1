package scan

import "strings"

// DupOptions controls FindDup.
type DupOptions struct {
	// KeepBlank makes blank and whitespace-only entries eligible as
	// duplicates. By default they are discarded.
	KeepBlank bool
	// Ignore lists trimmed values that are never reported.
	Ignore []string
	// IgnoreNumbers skips values that parse as an integer or float.
	IgnoreNumbers bool
}

// FindDup returns the index of the second member of the first duplicate pair
// in items, or -1. Entries are compared after trimming whitespace. Pairs are
// visited with the outer index ascending and the inner index ascending over
// the whole slice, skipping self comparisons, so for ["a","b","b","a"] the
// result is 3.
func FindDup(items []string, opts DupOptions) int {
	if len(items) < 2 {
		return -1
	}
	ignore := make(map[string]struct{}, len(opts.Ignore))
	for _, v := range opts.Ignore {
		ignore[v] = struct{}{}
	}
	trimmed := make([]string, len(items))
	for i, v := range items {
		trimmed[i] = strings.TrimSpace(v)
	}

	for i, a := range trimmed {
		if a == "" && !opts.KeepBlank {
			continue
		}
		if _, skip := ignore[a]; skip {
			continue
		}
		if opts.IgnoreNumbers && IsNumber(a) {
			continue
		}
		for j, b := range trimmed {
			if i != j && a == b {
				return j
			}
		}
	}
	return -1
}

// HasDups reports whether items contains a duplicate under the default
// FindDup options.
func HasDups(items []string) bool {
	return FindDup(items, DupOptions{}) > -1
}
