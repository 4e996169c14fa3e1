package conf

import (
	"strings"

	"github.com/nibzard/kvconf/internal/scan"
)

// ValueParser converts raw text into a typed Value. It returns false when the
// text is not in the parser's format so the next parser can try.
type ValueParser func(raw string) (Value, bool)

// nullTokens are matched exactly; "Null" and "nil" stay strings.
var nullTokens = map[string]struct{}{
	"None": {},
	"null": {},
	"~":    {},
	"NULL": {},
}

var defaultParsers = []ValueParser{ParseNull, ParseBool, ParseInt, ParseFloat}

// DefaultParsers returns the coercion order used by the reader.
func DefaultParsers() []ValueParser {
	parsers := make([]ValueParser, len(defaultParsers))
	copy(parsers, defaultParsers)
	return parsers
}

// Coerce converts raw text using DefaultParsers, falling back to a string.
func Coerce(raw string) Value {
	return CoerceWith(raw, defaultParsers)
}

// CoerceWith tries each parser in order and returns the first success, or
// String(raw) when none accepts the text.
func CoerceWith(raw string, parsers []ValueParser) Value {
	for _, parse := range parsers {
		if v, ok := parse(raw); ok {
			return v
		}
	}
	return String(raw)
}

// ParseNull accepts None, null, ~ and NULL.
func ParseNull(raw string) (Value, bool) {
	if _, ok := nullTokens[raw]; ok {
		return Null(), true
	}
	return Value{}, false
}

// ParseBool accepts true and false in any letter case.
func ParseBool(raw string) (Value, bool) {
	switch {
	case strings.EqualFold(raw, "true"):
		return Bool(true), true
	case strings.EqualFold(raw, "false"):
		return Bool(false), true
	}
	return Value{}, false
}

// ParseInt accepts base-10 integers that fit in an int64, with optional
// underscores between digits.
func ParseInt(raw string) (Value, bool) {
	i, ok := scan.ParseInt(raw)
	if !ok {
		return Value{}, false
	}
	return Int(i), true
}

// ParseFloat accepts decimal floats, including inf and nan. Hexadecimal
// floats are left to the string fallback.
func ParseFloat(raw string) (Value, bool) {
	f, ok := scan.ParseFloat(raw)
	if !ok {
		return Value{}, false
	}
	return Float(f), true
}
