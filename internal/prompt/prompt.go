package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/vanshika/degrees/internal/domain"
)

// ErrAborted is returned when the user interrupts or closes the input.
var ErrAborted = errors.New("input aborted")

// LineReader reads one line per call under a prompt. *readline.Instance satisfies it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Prompt asks for names and disambiguates shared ones.
type Prompt struct {
	lines LineReader
	out   io.Writer
}

// New wraps an existing line reader.
func New(lines LineReader, out io.Writer) *Prompt {
	return &Prompt{lines: lines, out: out}
}

// NewTerminal opens a readline session on the terminal. Close the returned closer when done.
func NewTerminal(historyFile string) (*Prompt, io.Closer, error) {
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	return New(rl, rl.Stdout()), rl, nil
}

// Ask reads one trimmed line under label.
func (p *Prompt) Ask(label string) (string, error) {
	p.lines.SetPrompt(label)
	line, err := p.lines.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Choose lists the people sharing name and reads the intended id. It implements
// names.Chooser; validation of the answer is left to the resolver.
func (p *Prompt) Choose(ctx context.Context, name string, candidates []domain.Person) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "Which '%s'?\n", name)
	for _, c := range candidates {
		fmt.Fprintf(p.out, "ID: %s, Name: %s, Birth: %s\n", c.ID, c.Name, birthLabel(c.Birth))
	}
	return p.Ask("Intended Person ID: ")
}

func birthLabel(birth *int) string {
	if birth == nil {
		return ""
	}
	return fmt.Sprint(*birth)
}
