package store

import (
	"errors"
	"sort"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
)

// ErrEmptyID is returned when a person or work is added without an identifier.
var ErrEmptyID = errors.New("id is required")

// Store holds people, works and the name index in memory.
//
// A Store is populated once and then only read. Concurrent readers are safe as long as
// no goroutine is still adding records; the type does no locking of its own.
type Store struct {
	people map[string]*personEntry
	works  map[string]*workEntry
	names  map[string]map[string]struct{}
	links  int
}

type personEntry struct {
	id     string
	name   string
	birth  *int
	works  []string
	worked map[string]struct{}
}

type workEntry struct {
	id      string
	title   string
	year    int
	stars   []string
	starred map[string]struct{}
}

// Stats summarises the store contents.
type Stats struct {
	People         int
	Works          int
	Participations int
}

// New returns an empty store.
func New() *Store {
	return &Store{
		people: make(map[string]*personEntry),
		works:  make(map[string]*workEntry),
		names:  make(map[string]map[string]struct{}),
	}
}

// AddPerson inserts a person or updates the name and birth year of an existing one.
// Participations already linked to the person are kept.
func (s *Store) AddPerson(id, name string, birth *int) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}

	if existing, ok := s.people[id]; ok {
		s.unindexName(existing.name, id)
		existing.name = name
		existing.birth = copyInt(birth)
		s.indexName(name, id)
		return nil
	}

	s.people[id] = &personEntry{
		id:     id,
		name:   name,
		birth:  copyInt(birth),
		worked: make(map[string]struct{}),
	}
	s.indexName(name, id)
	return nil
}

// AddWork inserts a work or updates the title and year of an existing one.
func (s *Store) AddWork(id, title string, year int) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}

	if existing, ok := s.works[id]; ok {
		existing.title = title
		existing.year = year
		return nil
	}

	s.works[id] = &workEntry{
		id:      id,
		title:   title,
		year:    year,
		starred: make(map[string]struct{}),
	}
	return nil
}

// LinkParticipation records that a person appeared in a work. It reports false and
// changes nothing when either id is unknown; repeated links are ignored.
func (s *Store) LinkParticipation(personID, workID string) bool {
	p, ok := s.people[strings.TrimSpace(personID)]
	if !ok {
		return false
	}
	w, ok := s.works[strings.TrimSpace(workID)]
	if !ok {
		return false
	}
	if _, dup := p.worked[w.id]; dup {
		return true
	}

	p.worked[w.id] = struct{}{}
	p.works = append(p.works, w.id)
	w.starred[p.id] = struct{}{}
	w.stars = append(w.stars, p.id)
	s.links++
	return true
}

// PersonIDsByName returns the ids of every person whose name matches case-insensitively.
func (s *Store) PersonIDsByName(name string) []string {
	set := s.names[normalizeName(name)]
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Person returns a copy of the person with the given id.
func (s *Store) Person(id string) (domain.Person, bool) {
	p, ok := s.people[id]
	if !ok {
		return domain.Person{}, false
	}
	return domain.Person{
		ID:      p.id,
		Name:    p.name,
		Birth:   copyInt(p.birth),
		WorkIDs: append([]string(nil), p.works...),
	}, true
}

// HasPerson reports whether the id is known.
func (s *Store) HasPerson(id string) bool {
	_, ok := s.people[id]
	return ok
}

// Work returns a copy of the work with the given id.
func (s *Store) Work(id string) (domain.Work, bool) {
	w, ok := s.works[id]
	if !ok {
		return domain.Work{}, false
	}
	return domain.Work{
		ID:        w.id,
		Title:     w.title,
		Year:      w.year,
		PersonIDs: append([]string(nil), w.stars...),
	}, true
}

// Stats returns record counts.
func (s *Store) Stats() Stats {
	return Stats{
		People:         len(s.people),
		Works:          len(s.works),
		Participations: s.links,
	}
}

func (s *Store) indexName(name, id string) {
	key := normalizeName(name)
	set, ok := s.names[key]
	if !ok {
		set = make(map[string]struct{})
		s.names[key] = set
	}
	set[id] = struct{}{}
}

func (s *Store) unindexName(name, id string) {
	key := normalizeName(name)
	set, ok := s.names[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(s.names, key)
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
