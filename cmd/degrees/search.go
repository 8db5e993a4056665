package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/names"
	"github.com/vanshika/degrees/internal/present"
	"github.com/vanshika/degrees/internal/prompt"
	"github.com/vanshika/degrees/internal/search"
	"github.com/vanshika/degrees/internal/service"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		color  bool
	)

	cmd := &cobra.Command{
		Use:   "search [source] [target]",
		Short: "Print the degrees of separation between two people",
		Long: `Loads the dataset, then asks for two names (unless given as arguments) and prints the
shortest chain of shared movies between them. Shared names are disambiguated interactively.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return a.runSearch(ctx, cmd.OutOrStdout(), args, asJSON, color)
		},
	}

	cmd.Flags().String("strategy", "", "frontier strategy: bfs (shortest) or dfs (overrides SEARCH_STRATEGY)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the connection as JSON")
	cmd.Flags().BoolVar(&color, "color", false, "colorize output")
	_ = a.v.BindPFlag("search.strategy", cmd.Flags().Lookup("strategy"))
	return cmd
}

func (a *app) runSearch(ctx context.Context, out io.Writer, args []string, asJSON, color bool) error {
	strategy, err := search.ParseStrategy(a.cfg.Search.Strategy)
	if err != nil {
		return err
	}
	theme := present.Plain()
	if color {
		theme = present.Colored()
	}

	fmt.Fprintln(out, "Loading data...")
	ds, err := a.loadDataset(ctx)
	if err != nil {
		return err
	}
	defer ds.close()
	fmt.Fprintln(out, "Data loaded.")

	engine := search.New(ds.store,
		search.WithStrategy(strategy),
		search.WithLogger(a.logger.With("component", "search")),
	)
	resolver := names.NewResolver(ds.store)
	svc := service.NewDegreesService(ds.store, engine, resolver, service.WithSearchTimeout(a.cfg.Search.Timeout))

	term := &lazyPrompt{history: filepath.Join(os.TempDir(), ".degrees_history"), out: out}
	defer term.Close()

	var ids [2]string
	for i := range ids {
		name := ""
		if i < len(args) {
			name = args[i]
		} else if name, err = term.Ask("Name: "); err != nil {
			return err
		}
		ids[i], err = resolver.Resolve(ctx, name, term)
		if errors.Is(err, names.ErrPersonNotFound) {
			_ = present.RenderError(out, err, theme)
			return exitError{}
		}
		if err != nil {
			return err
		}
	}

	conn, err := svc.ConnectIDs(ctx, ids[0], ids[1])
	if err != nil {
		return err
	}
	if asJSON {
		return present.RenderJSON(out, conn)
	}
	return present.Render(out, conn, theme)
}

// lazyPrompt opens the terminal only when a name has to be typed or chosen, so fully
// specified searches run without a tty.
type lazyPrompt struct {
	history string
	out     io.Writer
	p       *prompt.Prompt
	closer  io.Closer
}

func (l *lazyPrompt) get() (*prompt.Prompt, error) {
	if l.p != nil {
		return l.p, nil
	}
	p, closer, err := prompt.NewTerminal(l.history)
	if err != nil {
		return nil, err
	}
	l.p, l.closer = p, closer
	return p, nil
}

func (l *lazyPrompt) Ask(label string) (string, error) {
	p, err := l.get()
	if err != nil {
		return "", err
	}
	return p.Ask(label)
}

func (l *lazyPrompt) Choose(ctx context.Context, name string, candidates []domain.Person) (string, error) {
	p, err := l.get()
	if err != nil {
		return "", err
	}
	return p.Choose(ctx, name, candidates)
}

func (l *lazyPrompt) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
