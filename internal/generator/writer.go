package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vanshika/degrees/internal/loader"
)

// WriteDataset serializes the dataset into people.csv, movies.csv and stars.csv under dir,
// in the layout loader.ReadDir expects.
func WriteDataset(ds loader.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	people := [][]string{{"id", "name", "birth"}}
	for _, p := range ds.People {
		birth := ""
		if p.Birth != nil {
			birth = strconv.Itoa(*p.Birth)
		}
		people = append(people, []string{p.ID, p.Name, birth})
	}
	if err := writeCSV(filepath.Join(dir, loader.PeopleFile), people); err != nil {
		return err
	}

	movies := [][]string{{"id", "title", "year"}}
	for _, w := range ds.Works {
		year := ""
		if w.Year != 0 {
			year = strconv.Itoa(w.Year)
		}
		movies = append(movies, []string{w.ID, w.Title, year})
	}
	if err := writeCSV(filepath.Join(dir, loader.MoviesFile), movies); err != nil {
		return err
	}

	stars := [][]string{{"person_id", "movie_id"}}
	for _, link := range ds.Participations {
		stars = append(stars, []string{link.PersonID, link.WorkID})
	}
	return writeCSV(filepath.Join(dir, loader.StarsFile), stars)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("encode csv for %s: %w", path, err)
	}
	return file.Close()
}
