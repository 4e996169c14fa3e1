package scan

import "strings"

const (
	chunkOpeners = "([{"
	chunkClosers = ")]}"
)

// OperationChunkLen measures a bracketed expression such as a call argument
// list. Starting at start it counts bytes until every opened bracket has been
// closed, the cursor is outside quotes, and the next byte is absent or not an
// identifier-or-dot character. Trailing attribute access like "f(x).y" is
// therefore included.
//
// When backward is set the scan runs toward index 0 and the roles of
// openers and closers are swapped.
func OperationChunkLen(val string, start int, backward bool) int {
	if start < 0 || start >= len(val) {
		return 0
	}
	openers, closers := chunkOpeners, chunkClosers
	step := 1
	if backward {
		openers, closers = closers, openers
		step = -1
	}

	// closes is a stack of the closers still expected.
	var closes []byte
	var quote byte
	n := 0
	for i := start; i >= 0 && i < len(val); {
		c := val[i]
		switch {
		case quote == 0 && strings.IndexByte(openers, c) >= 0:
			closes = append(closes, closers[strings.IndexByte(openers, c)])
		case quote == 0 && strings.IndexByte(closers, c) >= 0:
			if len(closes) > 0 && closes[len(closes)-1] == c {
				closes = closes[:len(closes)-1]
			}
		case c == '"' || c == '\'':
			if quote == 0 {
				quote = c
			} else if c == quote && !escapedAt(val, i) {
				quote = 0
			}
		}
		i += step
		n++
		if quote == 0 && len(closes) == 0 &&
			(i < 0 || i >= len(val) || !IsIdentifierOrDotChar(val[i])) {
			break
		}
	}
	return n
}
