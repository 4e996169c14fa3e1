package conf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/nibzard/kvconf/internal/scan"
)

// Defaults for Options and WriteOptions.
const (
	DefaultAssignmentOperator = "="
	DefaultCommentDelimiter   = "#"
)

// listMarker starts YAML-style list items, which are not supported.
const listMarker = "-"

// Options controls how files are read.
type Options struct {
	// AssignmentOperator separates key and value. Empty means "=".
	AssignmentOperator string
	// CommentDelimiter starts a comment line. Empty means "#".
	CommentDelimiter string
	// InlineComments strips text after an unquoted comment delimiter
	// before the line is split.
	InlineComments bool
}

func (o Options) withDefaults() Options {
	if o.AssignmentOperator == "" {
		o.AssignmentOperator = DefaultAssignmentOperator
	}
	if o.CommentDelimiter == "" {
		o.CommentDelimiter = DefaultCommentDelimiter
	}
	return o
}

// ReadResult is the outcome of reading a file.
type ReadResult struct {
	// Entries is the map that was read into.
	Entries *Map
	// Modified counts keys that were new or whose value changed.
	Modified int
	// Existed is false when the file was missing and nothing was read.
	Existed bool
}

// ReadFile reads path into a new Map. A missing file yields an empty Map
// and no error.
func ReadFile(path string, opts Options) (ReadResult, error) {
	return MergeFile(nil, path, opts)
}

// MergeFile reads path into dst, overwriting keys the file defines. A nil dst
// is replaced with a new Map. A missing file (or a directory) leaves dst
// unchanged and is not an error.
func MergeFile(dst *Map, path string, opts Options) (ReadResult, error) {
	if dst == nil {
		dst = NewMap()
	}
	result := ReadResult{Entries: dst}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return result, fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.IsDir() {
		return result, nil
	}

	result.Existed = true
	result.Modified, err = Parse(f, dst, opts)
	if err != nil {
		return result, fmt.Errorf("read config %s: %w", path, err)
	}
	return result, nil
}

// Parse reads key/value lines from r into dst and returns how many keys were
// added or changed. Malformed lines are skipped silently.
func Parse(r io.Reader, dst *Map, opts Options) (int, error) {
	opts = opts.withDefaults()
	modified := 0
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if key, raw, ok := splitLine(line, opts); ok {
				v := Coerce(raw)
				if old, exists := dst.Get(key); !exists || !old.Equal(v) {
					modified++
				}
				dst.Set(key, v)
			}
		}
		if err == io.EOF {
			return modified, nil
		}
		if err != nil {
			return modified, err
		}
	}
}

// splitLine extracts the key and raw value of one line.
func splitLine(line string, opts Options) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" ||
		strings.HasPrefix(line, opts.CommentDelimiter) ||
		strings.HasPrefix(line, listMarker) {
		return "", "", false
	}
	if opts.InlineComments {
		i := scan.Find(line, opts.CommentDelimiter, scan.FindOptions{End: scan.ToEnd, Comment: opts.CommentDelimiter})
		if i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
	}

	op := opts.AssignmentOperator
	i := scan.Find(line, op, scan.FindOptions{End: scan.ToEnd, IgnoreComments: true})
	if i < 0 {
		// A stray quote in the key never closes.
		i = strings.Index(line, op)
	}
	// i == 0 would give an empty key; a trailing operator an empty value.
	if i < 1 || i+len(op) >= len(line) {
		return "", "", false
	}
	key := strings.TrimSpace(line[:i])
	raw := strings.TrimSpace(line[i+len(op):])
	if key == "" || raw == "" {
		return "", "", false
	}
	return key, raw, true
}
