package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/popcorn/internal/app"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/watched"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "popcorn: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	rootCmd := &cobra.Command{
		Use:           "popcorn",
		Short:         "Search movies and keep a rated watched list",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/popcorn/config.toml)")
	flags.StringVar(&opts.EnvFile, "env-file", "", "dotenv file to load (default .env)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "override the configured log level")
	flags.BoolVar(&opts.Ephemeral, "ephemeral", false, "keep the watched list in memory only")

	rootCmd.AddCommand(searchCmd(&opts))
	rootCmd.AddCommand(showCmd(&opts))
	rootCmd.AddCommand(watchedCmd(&opts))
	return rootCmd
}

// withServices opens the session for one subcommand and closes it after fn.
func withServices(opts *app.Options, fn func(*app.Services) error) error {
	svc, err := app.Open(*opts)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()
	return fn(svc)
}

func searchCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search OMDb by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withServices(opts, func(svc *app.Services) error {
				results, err := svc.Client.Search(cmd.Context(), query)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, r := range results {
					marker := " "
					if svc.Store.Contains(r.ImdbID) {
						marker = "✓"
					}
					fmt.Fprintf(out, "%s %-10s  %s (%s)\n", marker, r.ImdbID, r.Title, r.Year)
				}
				fmt.Fprintf(out, "Found %d results\n", len(results))
				return nil
			})
		},
	}
}

func showCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show [imdbID]",
		Short: "Show details for one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(opts, func(svc *app.Services) error {
				movie, err := svc.Client.Movie(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printMovie(cmd.OutOrStdout(), movie)
				if e, ok := svc.Store.Find(args[0]); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "You rated this movie %d\n", e.UserRating)
				}
				return nil
			})
		},
	}
}

func watchedCmd(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watched",
		Short: "Manage the watched list",
	}
	cmd.AddCommand(watchedListCmd(opts))
	cmd.AddCommand(watchedAddCmd(opts))
	cmd.AddCommand(watchedRemoveCmd(opts))
	return cmd
}

func watchedListCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List watched movies and their summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(opts, func(svc *app.Services) error {
				snap := svc.Store.Snapshot()
				out := cmd.OutOrStdout()
				for _, e := range snap.Entries {
					fmt.Fprintf(out, "%-10s  %-40s  imdb %.1f  you %d  %d min\n",
						e.ImdbID, e.Title, e.ImdbRating, e.UserRating, e.Runtime)
				}
				sum := snap.Summary
				fmt.Fprintf(out, "%d movies  imdb %.2f  you %.2f  runtime %.2f min\n",
					sum.Count, sum.MeanImdbRating, sum.MeanUserRating, sum.MeanRuntime)
				return nil
			})
		},
	}
}

func watchedAddCmd(opts *app.Options) *cobra.Command {
	var rating int

	cmd := &cobra.Command{
		Use:   "add [imdbID]",
		Short: "Rate a movie and add it to the watched list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withServices(opts, func(svc *app.Services) error {
				if e, ok := svc.Store.Find(id); ok {
					return fmt.Errorf("%s is already rated %d", e.Title, e.UserRating)
				}
				movie, err := svc.Client.Movie(cmd.Context(), id)
				if err != nil {
					return err
				}
				movie.ImdbID = id
				entry, err := watched.NewEntry(movie, rating, 1)
				if err != nil {
					return err
				}
				if err := svc.Store.Add(entry); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) rated %d\n", entry.Title, entry.Year, entry.UserRating)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "your rating, 1-10")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func watchedRemoveCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [imdbID]",
		Aliases: []string{"remove"},
		Short:   "Remove a movie from the watched list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(opts, func(svc *app.Services) error {
				removed, err := svc.Store.Remove(args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("%s is not in the watched list", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func printMovie(w io.Writer, m omdb.Movie) {
	fmt.Fprintf(w, "%s (%s)\n", m.Title, m.Year)
	fmt.Fprintf(w, "%s  %s  IMDb %s\n", m.Released, m.Runtime, m.ImdbRating)
	if m.Genre != "" {
		fmt.Fprintln(w, m.Genre)
	}
	if m.HasPoster() {
		fmt.Fprintf(w, "Poster %s\n", m.Poster)
	}
	if m.Plot != "" {
		fmt.Fprintf(w, "\n%s\n\n", m.Plot)
	}
	fmt.Fprintf(w, "Starring %s\n", m.Actors)
	fmt.Fprintf(w, "Directed by %s\n", m.Director)
}
