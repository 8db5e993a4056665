package names

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
)

// ErrPersonNotFound is returned when a name cannot be narrowed to exactly one person.
var ErrPersonNotFound = errors.New("person not found")

// Lookup is the part of the store name resolution needs.
type Lookup interface {
	PersonIDsByName(name string) []string
	Person(id string) (domain.Person, bool)
}

// Chooser picks one person among several sharing a name. Returning an error, or an id that
// is not one of the candidates, counts as no selection.
type Chooser interface {
	Choose(ctx context.Context, name string, candidates []domain.Person) (string, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, name string, candidates []domain.Person) (string, error)

// Choose implements Chooser.
func (f ChooserFunc) Choose(ctx context.Context, name string, candidates []domain.Person) (string, error) {
	return f(ctx, name, candidates)
}

// AmbiguousError is returned when several people match and nobody chose between them.
// It matches ErrPersonNotFound with errors.Is.
type AmbiguousError struct {
	Name       string
	Candidates []domain.Person
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("name %q matches %d people", e.Name, len(e.Candidates))
}

// Is reports ErrPersonNotFound as the sentinel for ambiguous names.
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrPersonNotFound
}

// Resolver turns display names into person ids.
type Resolver struct {
	lookup Lookup
}

// NewResolver returns a Resolver over the given lookup.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Candidates returns every person matching the name, ordered by id.
func (r *Resolver) Candidates(name string) []domain.Person {
	ids := r.lookup.PersonIDsByName(name)
	people := make([]domain.Person, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.lookup.Person(id); ok {
			people = append(people, p)
		}
	}
	return people
}

// Resolve returns the single person id for name. When the name is shared, chooser decides;
// a nil chooser yields an *AmbiguousError.
func (r *Resolver) Resolve(ctx context.Context, name string, chooser Chooser) (string, error) {
	name = strings.TrimSpace(name)
	candidates := r.Candidates(name)

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrPersonNotFound, name)
	case 1:
		return candidates[0].ID, nil
	}

	if chooser == nil {
		return "", &AmbiguousError{Name: name, Candidates: candidates}
	}

	chosen, err := chooser.Choose(ctx, name, candidates)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: no selection for %q: %v", ErrPersonNotFound, name, err)
	}

	chosen = strings.TrimSpace(chosen)
	for _, c := range candidates {
		if c.ID == chosen {
			return chosen, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a candidate for %q", ErrPersonNotFound, chosen, name)
}
