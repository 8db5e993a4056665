package main

import (
	"github.com/spf13/cobra"

	"github.com/vanshika/degrees/internal/generator"
)

func newDatagenCmd(a *app) *cobra.Command {
	cfg := generator.DefaultConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "datagen",
		Short: "Generate a synthetic people/movies/stars dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := a.logger.With("component", "datagen")

			ds, err := generator.New(cfg).Generate(cmd.Context())
			if err != nil {
				return err
			}
			if err := generator.WriteDataset(ds, out); err != nil {
				return err
			}
			logger.Info("dataset written",
				"dir", out,
				"people", len(ds.People),
				"movies", len(ds.Works),
				"participations", len(ds.Participations),
			)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&out, "out", "generated", "output directory")
	flags.IntVar(&cfg.NumPeople, "people", cfg.NumPeople, "number of people")
	flags.IntVar(&cfg.NumMovies, "movies", cfg.NumMovies, "number of movies")
	flags.IntVar(&cfg.CastSize, "cast", cfg.CastSize, "maximum stars per movie")
	flags.Float64Var(&cfg.SharedNameChance, "shared-names", cfg.SharedNameChance, "probability a person reuses an existing name")
	flags.Float64Var(&cfg.UnknownBirthChance, "unknown-birth", cfg.UnknownBirthChance, "probability a birth year is left blank")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one from the clock)")
	return cmd
}
