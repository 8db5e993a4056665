package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanshika/degrees/internal/loader"
)

// Generator produces synthetic people, movies and cast lists in the CSV dataset layout.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumPeople <= 0 {
		cfg.NumPeople = DefaultConfig().NumPeople
	}
	if cfg.NumMovies <= 0 {
		cfg.NumMovies = DefaultConfig().NumMovies
	}
	if cfg.CastSize <= 0 {
		cfg.CastSize = DefaultConfig().CastSize
	}
	if cfg.SharedNameChance < 0 {
		cfg.SharedNameChance = 0
	}
	if cfg.UnknownBirthChance < 0 {
		cfg.UnknownBirthChance = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises a dataset. It respects context cancellation. The same seed always
// yields the same dataset.
func (g *Generator) Generate(ctx context.Context) (loader.Dataset, error) {
	var ds loader.Dataset

	ds.People = make([]loader.PersonRecord, 0, g.cfg.NumPeople)
	for i := 0; i < g.cfg.NumPeople; i++ {
		if err := ctx.Err(); err != nil {
			return loader.Dataset{}, err
		}
		name := g.randomFullName()
		if i > 0 && g.rand.Float64() < g.cfg.SharedNameChance {
			name = ds.People[g.rand.Intn(i)].Name
		}
		person := loader.PersonRecord{ID: fmt.Sprint(100 + i), Name: name}
		if g.rand.Float64() >= g.cfg.UnknownBirthChance {
			birth := 1920 + g.rand.Intn(85)
			person.Birth = &birth
		}
		ds.People = append(ds.People, person)
	}

	ds.Works = make([]loader.WorkRecord, 0, g.cfg.NumMovies)
	for i := 0; i < g.cfg.NumMovies; i++ {
		if err := ctx.Err(); err != nil {
			return loader.Dataset{}, err
		}
		movie := loader.WorkRecord{
			ID:    fmt.Sprint(100000 + i),
			Title: g.randomTitle(),
			Year:  1930 + g.rand.Intn(95),
		}
		ds.Works = append(ds.Works, movie)

		cast := 1 + g.rand.Intn(g.cfg.CastSize)
		for _, idx := range g.rand.Perm(len(ds.People))[:min(cast, len(ds.People))] {
			ds.Participations = append(ds.Participations, loader.ParticipationRecord{
				PersonID: ds.People[idx].ID,
				WorkID:   movie.ID,
			})
		}
	}

	return ds, nil
}

func (g *Generator) randomFullName() string {
	return fmt.Sprintf("%s %s", g.pick(g.nameFragments.first), g.pick(g.nameFragments.last))
}

func (g *Generator) randomTitle() string {
	switch g.rand.Intn(3) {
	case 0:
		return fmt.Sprintf("The %s %s", g.pick(g.nameFragments.adjectives), g.pick(g.nameFragments.nouns))
	case 1:
		return fmt.Sprintf("%s of the %s", g.pick(g.nameFragments.nouns), g.pick(g.nameFragments.nouns))
	default:
		return fmt.Sprintf("%s %s %d", g.pick(g.nameFragments.adjectives), g.pick(g.nameFragments.nouns), 2+g.rand.Intn(3))
	}
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

type nameFragments struct {
	first      []string
	last       []string
	adjectives []string
	nouns      []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:      []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara", "Kevin", "Tom", "Meryl"},
		last:       []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee", "Bacon", "Hanks", "Streep"},
		adjectives: []string{"Last", "Silent", "Crimson", "Hidden", "Broken", "Golden", "Endless", "Quiet", "Wild", "Distant"},
		nouns:      []string{"Harbor", "Summer", "Kingdom", "River", "Signal", "Frontier", "Garden", "Empire", "Echo", "Station"},
	}
}
