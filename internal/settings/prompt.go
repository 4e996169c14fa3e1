package settings

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNoPrompter is returned when interactive input is requested from a
// Manager that has no Prompter.
var ErrNoPrompter = errors.New("interactive input requested but no prompter is configured")

// Question describes a value the user is asked for.
type Question struct {
	Name        string
	Description string
	// Default is shown as a hint; a blank answer selects it.
	Default string
}

// Text returns the one-line prompt shown to the user.
func (q Question) Text() string {
	desc := q.Description
	if desc == "" {
		desc = q.Name
	}
	return fmt.Sprintf("Please enter %s (%s) [blank for %s]: ", desc, q.Name, q.Default)
}

// Prompter asks the user for a value. Implementations block until an answer
// is given or ctx is done.
type Prompter interface {
	Prompt(ctx context.Context, q Question) (string, error)
}

// LinePrompter reads answers one line at a time from a reader. It is not
// safe for concurrent use.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
	// pending holds the read left running by a canceled Prompt; the next
	// Prompt takes its line.
	pending chan lineResult
}

// NewLinePrompter returns a Prompter that writes questions to out and reads
// answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

type lineResult struct {
	line string
	err  error
}

// Prompt writes q and returns the next line without its line ending. End of
// input is a blank answer.
func (p *LinePrompter) Prompt(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := io.WriteString(p.out, q.Text()); err != nil {
		return "", err
	}

	if p.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		p.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-p.pending:
		p.pending = nil
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", res.err)
		}
		return trimLineEnding(res.line), nil
	}
}

func trimLineEnding(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
