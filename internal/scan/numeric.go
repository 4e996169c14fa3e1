package scan

import (
	"strconv"
	"strings"
)

// ParseInt parses s, ignoring surrounding whitespace, as a base-10 signed
// 64-bit integer. Single underscores between digits are accepted as digit
// separators ("1_000"); base prefixes such as 0x are not.
func ParseInt(s string) (int64, bool) {
	text, ok := stripDigitSeparators(strings.TrimSpace(s))
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// ParseFloat parses s, ignoring surrounding whitespace, as a decimal 64-bit
// float, including inf, infinity and nan in any letter case. Digit
// separators follow ParseInt; hexadecimal floats are rejected.
func ParseFloat(s string) (float64, bool) {
	text := strings.TrimSpace(s)
	if hasHexPrefix(text) {
		return 0, false
	}
	text, ok := stripDigitSeparators(text)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsInt reports whether s is accepted by ParseInt.
func IsInt(s string) bool {
	_, ok := ParseInt(s)
	return ok
}

// IsFloat reports whether s is accepted by ParseFloat. Every string accepted
// by IsInt is also accepted here.
func IsFloat(s string) bool {
	_, ok := ParseFloat(s)
	return ok
}

// IsNumber reports whether s looks like an integer or a float.
func IsNumber(s string) bool {
	return IsInt(s) || IsFloat(s)
}

func hasHexPrefix(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// stripDigitSeparators removes underscores that sit between two digits and
// rejects any other underscore.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' {
			b.WriteByte(c)
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
