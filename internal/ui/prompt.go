// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/kvconf/internal/settings"
)

// ErrAborted is returned when the user cancels a prompt with ctrl+c or esc.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks questions with an inline terminal program. It satisfies
// settings.Prompter.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading keys from in and drawing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Prompt runs a single-line input program for q.
func (p *Prompter) Prompt(ctx context.Context, q settings.Question) (string, error) {
	model := newInputModel(q)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	finalModel, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("run prompt: %w", err)
	}
	m, ok := finalModel.(*inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", finalModel)
	}
	if m.aborted {
		return "", ErrAborted
	}
	return m.Value(), nil
}

// NewTerminalPrompter picks the interactive prompter when both in and out
// are terminals and a line prompter otherwise.
func NewTerminalPrompter(in io.Reader, out io.Writer) settings.Prompter {
	if f, ok := in.(*os.File); ok && IsTTY(f) && IsTTY(out) {
		return NewPrompter(in, out)
	}
	return settings.NewLinePrompter(in, out)
}

var (
	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C3AED"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

type inputModel struct {
	question settings.Question
	value    []rune
	done     bool
	aborted  bool
}

func newInputModel(q settings.Question) *inputModel {
	return &inputModel{question: q}
}

func (m *inputModel) Init() tea.Cmd {
	return nil
}

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.value) > 0 {
			m.value = m.value[:len(m.value)-1]
		}
	case tea.KeyCtrlU:
		m.value = m.value[:0]
	case tea.KeySpace:
		m.value = append(m.value, ' ')
	case tea.KeyRunes:
		m.value = append(m.value, key.Runes...)
	}
	return m, nil
}

func (m *inputModel) View() string {
	var b strings.Builder
	b.WriteString(questionStyle.Render(m.question.Text()))
	b.WriteString(string(m.value))
	if m.done || m.aborted {
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(cursorStyle.Render("_"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("  enter to accept | ctrl+u to clear | esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// Value returns the text typed so far.
func (m *inputModel) Value() string {
	return string(m.value)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
