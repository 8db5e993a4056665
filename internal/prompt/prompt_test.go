package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/names"
)

type scriptedLines struct {
	lines   []string
	err     error
	prompts []string
}

func (s *scriptedLines) SetPrompt(prompt string) {
	s.prompts = append(s.prompts, prompt)
}

func (s *scriptedLines) Readline() (string, error) {
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestPrompt_Ask(t *testing.T) {
	lines := &scriptedLines{lines: []string{"  Kevin Bacon  "}}
	p := New(lines, io.Discard)

	name, err := p.Ask("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Kevin Bacon", name)
	assert.Equal(t, []string{"Name: "}, lines.prompts)

	_, err = p.Ask("Name: ")
	assert.ErrorIs(t, err, ErrAborted)
}

func TestPrompt_AskInterrupted(t *testing.T) {
	p := New(&scriptedLines{err: readline.ErrInterrupt}, io.Discard)
	_, err := p.Ask("Name: ")
	assert.ErrorIs(t, err, ErrAborted)
}

func TestPrompt_ChooseListsCandidates(t *testing.T) {
	var out bytes.Buffer
	lines := &scriptedLines{lines: []string{"5"}}
	p := New(lines, &out)

	birth := 1970
	candidates := []domain.Person{
		{ID: "4", Name: "Dave", Birth: &birth},
		{ID: "5", Name: "Dave"},
	}
	id, err := p.Choose(context.Background(), "Dave", candidates)
	require.NoError(t, err)
	assert.Equal(t, "5", id)

	want := "Which 'Dave'?\n" +
		"ID: 4, Name: Dave, Birth: 1970\n" +
		"ID: 5, Name: Dave, Birth: \n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, []string{"Intended Person ID: "}, lines.prompts)
}

func TestPrompt_ChooseThroughResolver(t *testing.T) {
	lookup := fakeLookup{
		"dave": {"4", "5"},
	}
	r := names.NewResolver(lookup)

	p := New(&scriptedLines{lines: []string{"not-a-number"}}, io.Discard)
	_, err := r.Resolve(context.Background(), "Dave", p)
	assert.ErrorIs(t, err, names.ErrPersonNotFound)

	p = New(&scriptedLines{lines: []string{"4"}}, io.Discard)
	id, err := r.Resolve(context.Background(), "Dave", p)
	require.NoError(t, err)
	assert.Equal(t, "4", id)
}

type fakeLookup map[string][]string

func (f fakeLookup) PersonIDsByName(name string) []string {
	return f[strings.ToLower(name)]
}

func (f fakeLookup) Person(id string) (domain.Person, bool) {
	for _, ids := range f {
		for _, candidate := range ids {
			if candidate == id {
				return domain.Person{ID: id, Name: "Dave"}, true
			}
		}
	}
	return domain.Person{}, false
}
