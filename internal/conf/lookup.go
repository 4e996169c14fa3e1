package conf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotFile is returned when a path that must be a regular file is missing
// or is a directory.
var ErrNotFile = errors.New("not a file")

// InitialValue returns the raw, uncoerced value of the first line in path
// that assigns name, and stops reading there. A blank value is returned as
// "" with found set. Comment handling is not applied.
func InitialValue(path, name, op string) (string, bool, error) {
	if op == "" {
		op = DefaultAssignmentOperator
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false, fmt.Errorf("%s: %w", path, ErrNotFile)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if i := strings.Index(line, op); i > 0 {
			if strings.TrimSpace(line[:i]) == name {
				return strings.TrimSpace(line[i+len(op):]), true, nil
			}
		}
		if err == io.EOF {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("read config %s: %w", path, err)
		}
	}
}

// Changed reports whether newer adds a key to older or holds a different
// value for one, and returns the first such key. A nil newer carries no new
// information and is never a change; a nil older is changed by any non-nil
// newer.
func Changed(newer, older *Map) (string, bool) {
	if newer == nil {
		return "", false
	}
	if older == nil {
		return "", true
	}
	for k, v := range newer.All() {
		ov, ok := older.Get(k)
		if !ok || !ov.Equal(v) {
			return k, true
		}
	}
	return "", false
}
