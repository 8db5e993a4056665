package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// File names of the dataset directory layout.
const (
	PeopleFile = "people.csv"
	MoviesFile = "movies.csv"
	StarsFile  = "stars.csv"
)

var errMissingColumn = errors.New("missing column")

// PersonRecord is one row of people.csv.
type PersonRecord struct {
	ID    string
	Name  string
	Birth *int
}

// WorkRecord is one row of movies.csv.
type WorkRecord struct {
	ID    string
	Title string
	Year  int
}

// ParticipationRecord is one row of stars.csv.
type ParticipationRecord struct {
	PersonID string
	WorkID   string
}

// Dataset holds the three record streams in load order.
type Dataset struct {
	People         []PersonRecord
	Works          []WorkRecord
	Participations []ParticipationRecord
}

// ReadDir parses the three CSV files of a dataset directory. people.csv and movies.csv are
// parsed concurrently; stars.csv is parsed after both succeed.
func ReadDir(ctx context.Context, dir string) (Dataset, error) {
	var ds Dataset

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		people, err := readFile(gctx, filepath.Join(dir, PeopleFile), parsePeople)
		ds.People = people
		return err
	})
	g.Go(func() error {
		works, err := readFile(gctx, filepath.Join(dir, MoviesFile), parseWorks)
		ds.Works = works
		return err
	})
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}

	stars, err := readFile(ctx, filepath.Join(dir, StarsFile), parseParticipations)
	if err != nil {
		return Dataset{}, err
	}
	ds.Participations = stars
	return ds, nil
}

func readFile[T any](ctx context.Context, path string, parse func(context.Context, *csv.Reader) ([]T, error)) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	records, err := parse(ctx, newReader(file))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// ParsePeople reads people.csv content.
func ParsePeople(ctx context.Context, r io.Reader) ([]PersonRecord, error) {
	return parsePeople(ctx, newReader(r))
}

// ParseWorks reads movies.csv content.
func ParseWorks(ctx context.Context, r io.Reader) ([]WorkRecord, error) {
	return parseWorks(ctx, newReader(r))
}

// ParseParticipations reads stars.csv content.
func ParseParticipations(ctx context.Context, r io.Reader) ([]ParticipationRecord, error) {
	return parseParticipations(ctx, newReader(r))
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true
	return reader
}

func parsePeople(ctx context.Context, r *csv.Reader) ([]PersonRecord, error) {
	var out []PersonRecord
	err := eachRow(ctx, r, []string{"id", "name", "birth"}, func(row []string) {
		out = append(out, PersonRecord{
			ID:    strings.TrimSpace(row[0]),
			Name:  row[1],
			Birth: parseOptionalYear(row[2]),
		})
	})
	return out, err
}

func parseWorks(ctx context.Context, r *csv.Reader) ([]WorkRecord, error) {
	var out []WorkRecord
	err := eachRow(ctx, r, []string{"id", "title", "year"}, func(row []string) {
		year := 0
		if y := parseOptionalYear(row[2]); y != nil {
			year = *y
		}
		out = append(out, WorkRecord{
			ID:    strings.TrimSpace(row[0]),
			Title: row[1],
			Year:  year,
		})
	})
	return out, err
}

func parseParticipations(ctx context.Context, r *csv.Reader) ([]ParticipationRecord, error) {
	var out []ParticipationRecord
	err := eachRow(ctx, r, []string{"person_id", "movie_id"}, func(row []string) {
		out = append(out, ParticipationRecord{
			PersonID: strings.TrimSpace(row[0]),
			WorkID:   strings.TrimSpace(row[1]),
		})
	})
	return out, err
}

// eachRow resolves the named columns from the header and calls fn with the row values in
// the same order. Missing trailing cells read as empty strings.
func eachRow(ctx context.Context, r *csv.Reader, columns []string, fn func(row []string)) error {
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty file: %w", errMissingColumn)
		}
		return fmt.Errorf("read header: %w", err)
	}

	positions := make([]int, len(columns))
	for i, column := range columns {
		positions[i] = -1
		for j, name := range header {
			if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), column) {
				positions[i] = j
				break
			}
		}
		if positions[i] < 0 {
			return fmt.Errorf("%w %q", errMissingColumn, column)
		}
	}

	values := make([]string, len(columns))
	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		for i, pos := range positions {
			values[i] = ""
			if pos < len(row) {
				values[i] = row[pos]
			}
		}
		fn(values)
	}
}

func parseOptionalYear(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &year
}
