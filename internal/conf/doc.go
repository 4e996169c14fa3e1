// Package conf reads and writes a line-oriented key/value format.
//
// Each significant line has the shape
//
//	<key><assignment operator><value>
//
// for example "width = 80". Keys and values are trimmed. Lines that are
// blank, start with the comment delimiter (default "#") or start with "-"
// are skipped, as are lines with no operator, an empty key or an empty value.
// There is no quoting, escaping, nesting or multi-line value support.
//
// Values are coerced on read, trying in order: the null tokens None, null,
// ~ and NULL; case-insensitive true/false; a base-10 integer; a float; and
// finally the raw string. Coercion is not reversible for numeric-looking
// strings: the string "5" is written as 5 and reads back as an integer.
//
// Maps preserve insertion order so that a read-modify-write cycle keeps
// the file's key order. Writes truncate and rewrite the whole file.
package conf
