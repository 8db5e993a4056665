package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/logging"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "degrees",
		Short: "Degrees of separation between actors",
		Long: `degrees finds the shortest chain of shared movies connecting two people.
Datasets are read from a CSV directory (people.csv, movies.csv, stars.csv) or exported
from Neo4j, and can be queried from the terminal or over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("data", "", "dataset directory (overrides DATA_DIR)")
	flags.String("source", "", "dataset source: csv or graph (overrides DATA_SOURCE)")

	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("data.dir", flags.Lookup("data"))
	_ = a.v.BindPFlag("data.source", flags.Lookup("source"))

	root.AddCommand(
		newSearchCmd(a),
		newServeCmd(a),
		newIngestCmd(a),
		newDatagenCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.LoadWith(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.Logging)
	return nil
}
