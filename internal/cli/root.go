// Package cli is the command-line front end: a cobra command tree over the
// search engine, the browse rows and the user's collections.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/config"
	"github.com/mrlokans/bookfinder/internal/entrypoint"
)

const AppName = "bookfinder"

// AppFactory builds the application for one command invocation.
type AppFactory func(opts entrypoint.Options) *entrypoint.App

type runtime struct {
	newApp    AppFactory
	ephemeral bool
	verbose   bool
}

// NewRootCmd builds the command tree using configuration from the environment.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, func(opts entrypoint.Options) *entrypoint.App {
		return entrypoint.Bootstrap(config.NewConfig(), opts)
	})
}

func newRootCmd(version string, newApp AppFactory) *cobra.Command {
	rt := &runtime{newApp: newApp}

	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Search and browse books, and keep favorites and reading lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().BoolVar(&rt.ephemeral, "ephemeral", false, "keep collections in memory only")
	cmd.PersistentFlags().BoolVar(&rt.verbose, "verbose", false, "enable verbose logging")

	cmd.AddCommand(
		newSearchCmd(rt),
		newTrendingCmd(rt),
		newGenresCmd(),
		newGenreCmd(rt),
		newAuthorCmd(rt),
		newShowCmd(rt),
		newFavoritesCmd(rt),
		newListsCmd(rt),
		newHistoryCmd(rt),
	)

	return cmd
}

type appRunFunc func(cmd *cobra.Command, args []string, app *entrypoint.App) error

// withApp builds the app before fn runs and closes it afterwards, whether or
// not fn fails.
func (rt *runtime) withApp(fn appRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app := rt.newApp(entrypoint.Options{Ephemeral: rt.ephemeral, Verbose: rt.verbose})
		defer app.Close()
		return fn(cmd, args, app)
	}
}

// Execute runs the root command and returns the process exit code.
func Execute(version string) int {
	cmd := NewRootCmd(version)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		cmd.PrintErrln(errorStyle.Render("Error: " + err.Error()))
		return 1
	}
	return 0
}
