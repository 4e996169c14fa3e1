package scan

import "strings"

// Character classes used by the identifier scanners.
const (
	DigitChars            = "0123456789"
	AlphaUpperChars       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	AlphaLowerChars       = "abcdefghijklmnopqrstuvwxyz"
	AlphaChars            = AlphaUpperChars + AlphaLowerChars
	AlnumChars            = AlphaChars + DigitChars
	IdentifierChars       = AlnumChars + "_"
	IdentifierAndDotChars = IdentifierChars + "."
)

// IsIdentifierChar reports whether c may appear in an identifier.
func IsIdentifierChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// IsIdentifierOrDotChar reports whether c may appear in a dotted identifier
// path such as "os.path".
func IsIdentifierOrDotChar(c byte) bool {
	return c == '.' || IsIdentifierChar(c)
}

// IsIdentifier reports whether val is non-empty and made only of identifier
// characters, plus '.' when dotAllowed is set.
func IsIdentifier(val string, dotAllowed bool) bool {
	if val == "" {
		return false
	}
	for i := 0; i < len(val); i++ {
		if dotAllowed && val[i] == '.' {
			continue
		}
		if !IsIdentifierChar(val[i]) {
			return false
		}
	}
	return true
}

// LastChar returns the final byte of s and false when s is empty.
func LastChar(s string) (byte, bool) {
	if s == "" {
		return 0, false
	}
	return s[len(s)-1], true
}

// FindAnyNot returns the index of the first byte (or the last one when
// backward is set) that is not one of chars. A negative start means the
// natural start for the direction. Returns -1 when every byte is in chars.
func FindAnyNot(haystack, chars string, start int, backward bool) int {
	if haystack == "" || chars == "" {
		return -1
	}
	if backward {
		if start < 0 || start >= len(haystack) {
			start = len(haystack) - 1
		}
		for i := start; i >= 0; i-- {
			if strings.IndexByte(chars, haystack[i]) < 0 {
				return i
			}
		}
		return -1
	}
	if start < 0 {
		start = 0
	}
	for i := start; i < len(haystack); i++ {
		if strings.IndexByte(chars, haystack[i]) < 0 {
			return i
		}
	}
	return -1
}

// IndentString returns the leading run of spaces and tabs of line. A line
// made only of whitespace has no indent.
func IndentString(line string) string {
	end := FindAnyNot(line, " \t", -1, false)
	if end < 0 {
		return ""
	}
	return line[:end]
}

// DetectNewline reports the newline convention used by data: "\r\n",
// "\n\r", "\r" or "\n", chosen by which of CR and LF appears first. It
// returns "" when data contains neither.
func DetectNewline(data string) string {
	cr := strings.IndexByte(data, '\r')
	lf := strings.IndexByte(data, '\n')
	switch {
	case cr >= 0 && lf >= 0:
		if cr < lf {
			return "\r\n"
		}
		return "\n\r"
	case cr >= 0:
		return "\r"
	case lf >= 0:
		return "\n"
	}
	return ""
}
