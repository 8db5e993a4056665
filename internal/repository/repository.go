package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/degrees/internal/graph"
	"github.com/vanshika/degrees/internal/loader"
)

// exportPageSize bounds each export query so large graphs stream in pages.
const exportPageSize = 5000

// Repository persists people, movies and appearances in the graph database.
type Repository struct {
	client   graph.Client
	pageSize int
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client, pageSize: exportPageSize}
}

// EnsureSchema creates the uniqueness constraints the MERGE statements rely on.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaCypher {
		if _, err := r.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// UpsertPerson merges a Person node.
func (r *Repository) UpsertPerson(ctx context.Context, p loader.PersonRecord) error {
	if p.ID == "" {
		return errors.New("person id is required")
	}
	params := map[string]any{
		"personId": p.ID,
		"name":     p.Name,
		"birth":    nil,
	}
	if p.Birth != nil {
		params["birth"] = int64(*p.Birth)
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertPersonCypher, params); err != nil {
		return fmt.Errorf("upsert person %s: %w", p.ID, err)
	}
	return nil
}

// UpsertWork merges a Movie node.
func (r *Repository) UpsertWork(ctx context.Context, w loader.WorkRecord) error {
	if w.ID == "" {
		return errors.New("movie id is required")
	}
	params := map[string]any{
		"movieId": w.ID,
		"title":   w.Title,
		"year":    int64(w.Year),
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertWorkCypher, params); err != nil {
		return fmt.Errorf("upsert movie %s: %w", w.ID, err)
	}
	return nil
}

// LinkParticipation merges a STARRED_IN edge. It reports false without error when either
// endpoint is missing, matching the in-memory store.
func (r *Repository) LinkParticipation(ctx context.Context, link loader.ParticipationRecord) (bool, error) {
	params := map[string]any{
		"personId": link.PersonID,
		"movieId":  link.WorkID,
	}
	res, err := r.client.ExecuteWrite(ctx, linkParticipationCypher, params)
	if err != nil {
		return false, fmt.Errorf("link %s to %s: %w", link.PersonID, link.WorkID, err)
	}
	return len(res.Records) > 0, nil
}

// Export reads every person, movie and appearance, paging through each label.
func (r *Repository) Export(ctx context.Context) (loader.Dataset, error) {
	var ds loader.Dataset

	err := r.page(ctx, exportPeopleCypher, func(rec graph.Record) {
		p := loader.PersonRecord{ID: rec.String("personId"), Name: rec.String("name")}
		if birth, ok := rec.Int("birth"); ok {
			p.Birth = &birth
		}
		ds.People = append(ds.People, p)
	})
	if err != nil {
		return loader.Dataset{}, fmt.Errorf("export people: %w", err)
	}

	err = r.page(ctx, exportWorksCypher, func(rec graph.Record) {
		year, _ := rec.Int("year")
		ds.Works = append(ds.Works, loader.WorkRecord{ID: rec.String("movieId"), Title: rec.String("title"), Year: year})
	})
	if err != nil {
		return loader.Dataset{}, fmt.Errorf("export movies: %w", err)
	}

	err = r.page(ctx, exportParticipationsCypher, func(rec graph.Record) {
		ds.Participations = append(ds.Participations, loader.ParticipationRecord{
			PersonID: rec.String("personId"),
			WorkID:   rec.String("movieId"),
		})
	})
	if err != nil {
		return loader.Dataset{}, fmt.Errorf("export appearances: %w", err)
	}

	return ds, nil
}

func (r *Repository) page(ctx context.Context, query string, fn func(graph.Record)) error {
	for skip := 0; ; skip += r.pageSize {
		res, err := r.client.ExecuteRead(ctx, query, map[string]any{
			"skip":  int64(skip),
			"limit": int64(r.pageSize),
		})
		if err != nil {
			return err
		}
		for _, rec := range res.Records {
			fn(rec)
		}
		if len(res.Records) < r.pageSize {
			return nil
		}
	}
}

var schemaCypher = []string{
	`CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.personId IS UNIQUE`,
	`CREATE CONSTRAINT movie_id IF NOT EXISTS FOR (m:Movie) REQUIRE m.movieId IS UNIQUE`,
}

const upsertPersonCypher = `
MERGE (p:Person {personId: $personId})
SET p.name = $name, p.nameLower = toLower(trim($name)), p.birth = $birth
RETURN p.personId AS personId
`

const upsertWorkCypher = `
MERGE (m:Movie {movieId: $movieId})
SET m.title = $title, m.year = $year
RETURN m.movieId AS movieId
`

const linkParticipationCypher = `
MATCH (p:Person {personId: $personId})
MATCH (m:Movie {movieId: $movieId})
MERGE (p)-[:STARRED_IN]->(m)
RETURN p.personId AS personId
`

const exportPeopleCypher = `
MATCH (p:Person)
RETURN p.personId AS personId, p.name AS name, p.birth AS birth
ORDER BY p.personId
SKIP $skip LIMIT $limit
`

const exportWorksCypher = `
MATCH (m:Movie)
RETURN m.movieId AS movieId, m.title AS title, m.year AS year
ORDER BY m.movieId
SKIP $skip LIMIT $limit
`

const exportParticipationsCypher = `
MATCH (p:Person)-[:STARRED_IN]->(m:Movie)
RETURN p.personId AS personId, m.movieId AS movieId
ORDER BY p.personId, m.movieId
SKIP $skip LIMIT $limit
`
