package present

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/names"
)

// Messages printed for the non-path outcomes.
const (
	NotConnected   = "Not connected."
	PersonNotFound = "Person not found."
)

// Theme styles the pieces of a rendered answer. The zero Theme prints plain text.
type Theme struct {
	colored bool
	Summary lipgloss.Style
	Person  lipgloss.Style
	Work    lipgloss.Style
	Dim     lipgloss.Style
	Warning lipgloss.Style
}

// Plain returns a theme that never emits escape sequences.
func Plain() Theme {
	return Theme{}
}

// Colored returns the terminal theme.
func Colored() Theme {
	return Theme{
		colored: true,
		Summary: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Person:  lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		Work:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Italic(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

func (t Theme) paint(style lipgloss.Style, s string) string {
	if !t.colored {
		return s
	}
	return style.Render(s)
}

// Render writes the answer: a degrees summary followed by one numbered line per hop, or
// "Not connected." when no path exists.
func Render(w io.Writer, conn domain.Connection, theme Theme) error {
	if !conn.Connected {
		_, err := fmt.Fprintln(w, theme.paint(theme.Warning, NotConnected))
		return err
	}

	summary := fmt.Sprintf("%d degrees of separation.", conn.Degrees())
	if _, err := fmt.Fprintln(w, theme.paint(theme.Summary, summary)); err != nil {
		return err
	}
	for i, link := range conn.Links {
		_, err := fmt.Fprintf(w, "%s %s and %s starred in %s\n",
			theme.paint(theme.Dim, strconv.Itoa(i+1)+":"),
			theme.paint(theme.Person, link.From.Name),
			theme.paint(theme.Person, link.To.Name),
			theme.paint(theme.Work, link.Work.Title),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// RenderError writes the user-facing message for a failed query. Name resolution failures
// print "Person not found."; anything else prints the error text.
func RenderError(w io.Writer, err error, theme Theme) error {
	msg := err.Error()
	if errors.Is(err, names.ErrPersonNotFound) {
		msg = PersonNotFound
	}
	_, werr := fmt.Fprintln(w, theme.paint(theme.Warning, msg))
	return werr
}

// PersonView is the JSON form of a person.
type PersonView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Birth *int   `json:"birth,omitempty"`
}

// WorkView is the JSON form of a movie.
type WorkView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
}

// LinkView is one hop of a connection.
type LinkView struct {
	From PersonView `json:"from"`
	To   PersonView `json:"to"`
	Work WorkView   `json:"movie"`
}

// ConnectionView is the JSON form of a connection. Degrees is -1 when not connected.
type ConnectionView struct {
	Source    PersonView `json:"source"`
	Target    PersonView `json:"target"`
	Connected bool       `json:"connected"`
	Degrees   int        `json:"degrees"`
	Links     []LinkView `json:"links"`
}

// NewPersonView converts a person for JSON output.
func NewPersonView(p domain.Person) PersonView {
	return PersonView{ID: p.ID, Name: p.Name, Birth: p.Birth}
}

// NewConnectionView converts a connection for JSON output.
func NewConnectionView(conn domain.Connection) ConnectionView {
	view := ConnectionView{
		Source:    NewPersonView(conn.Source),
		Target:    NewPersonView(conn.Target),
		Connected: conn.Connected,
		Degrees:   conn.Degrees(),
		Links:     make([]LinkView, 0, len(conn.Links)),
	}
	for _, link := range conn.Links {
		view.Links = append(view.Links, LinkView{
			From: NewPersonView(link.From),
			To:   NewPersonView(link.To),
			Work: WorkView{ID: link.Work.ID, Title: link.Work.Title, Year: link.Work.Year},
		})
	}
	return view
}

// RenderJSON writes the connection as indented JSON.
func RenderJSON(w io.Writer, conn domain.Connection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewConnectionView(conn))
}
