package conf

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteOptions controls how a Map is serialized.
type WriteOptions struct {
	// AssignmentOperator separates key and value. Empty means "=".
	AssignmentOperator string
	// SaveNulls writes null entries as "null". Otherwise they are omitted.
	SaveNulls bool
}

// Encode writes one key<op>value line per entry of m in insertion order.
func Encode(w io.Writer, m *Map, opts WriteOptions) error {
	op := opts.AssignmentOperator
	if op == "" {
		op = DefaultAssignmentOperator
	}
	bw := bufio.NewWriter(w)
	for k, v := range m.All() {
		if v.IsNull() && !opts.SaveNulls {
			continue
		}
		if _, err := bw.WriteString(k + op + v.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile truncates path and writes m to it. The write is not atomic: a
// failure part way through leaves a partial file.
func WriteFile(path string, m *Map, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	if err := Encode(f, m, opts); err != nil {
		f.Close()
		return fmt.Errorf("write config %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close config %s: %w", path, err)
	}
	return nil
}
