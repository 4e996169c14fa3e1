// Package scan provides single-pass text scanning primitives that are aware
// of single- and double-quoted strings and trailing comments.
//
// The scanners operate on bytes. Quote characters, comment delimiters,
// brackets and identifier characters are all ASCII, so multi-byte UTF-8
// sequences pass through untouched and never match them.
//
// Higher layers use these primitives to locate assignment operators and
// inline comments in configuration lines, to split argument lists on
// unquoted commas, and to measure bracketed expressions.
package scan
