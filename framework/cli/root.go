package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-fixture/framework/app"
	"github.com/km-arc/go-fixture/framework/catalog"
	"github.com/km-arc/go-fixture/framework/config"
	"github.com/km-arc/go-fixture/framework/logging"
	"github.com/km-arc/go-fixture/framework/serializer"
)

const name = "fixtured"

// options are the global flags shared by every subcommand.
type options struct {
	envFile  string
	logLevel string
}

// NewRootCommand returns the fixtured command tree. The providers are loaded
// into the catalog of every command.
func NewRootCommand(providers ...catalog.Provider) *cobra.Command {
	opts := &options{}
	var application *app.Application

	root := &cobra.Command{
		Use:   name,
		Short: "fixtured - placeholder fixtures for tests",
		Long: fmt.Sprintf(`%s - placeholder fixtures for tests

Version: %s

Builds "good enough" instances of registered types: primitives get fixed
placeholders, everything else is constructed recursively.

serve - serve the fixture catalog over HTTP
list  - list fixture names or tags
show  - build one fixture and print it as JSON or YAML`, name, app.Version),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApplication(opts, cmd.Flags().Changed("log-level"))
			if err != nil {
				return err
			}
			a.Register(providers...)
			a.Boot()
			application = a
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	current := func() *app.Application { return application }
	root.AddCommand(
		newServeCommand(current),
		newListCommand(current),
		newShowCommand(current),
	)
	return root
}

func newApplication(opts *options, levelChanged bool) (*app.Application, error) {
	cfg := config.Load(opts.envFile)
	if levelChanged {
		cfg.App.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return app.NewWithConfig(cfg), nil
}

// Execute runs the command tree with SIGINT/SIGTERM cancelling the context
// and returns the process exit code.
func Execute(providers ...catalog.Provider) int {
	// Replaced by the application's logger once config is loaded.
	logging.SetDefaultStructuredLogger(name, app.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand(providers...).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// ── Subcommands ──────────────────────────────────────────────────────────────

func newServeCommand(current func() *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the fixture catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return current().Run(cmd.Context())
		},
	}
}

func newListCommand(current func() *app.Application) *cobra.Command {
	var tags bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fixture names, or tags with --tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := current().Catalog
			names := c.Names()
			if tags {
				names = c.Tags()
			}
			return printLines(cmd.OutOrStdout(), names)
		},
	}
	cmd.Flags().BoolVar(&tags, "tags", false, "list tags instead of fixtures")
	return cmd
}

func newShowCommand(current func() *app.Application) *cobra.Command {
	var (
		format string
		tag    bool
	)
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Build a fixture and print it",
		Example: `  fixtured show user
  fixtured show user --format yaml
  fixtured show checkout --tag`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := serializer.ParseFormat(format)
			if err != nil {
				return err
			}

			c := current().Catalog
			var v any
			if tag {
				v, err = c.Tagged(args[0])
			} else {
				v, err = c.Make(args[0])
			}
			if err != nil {
				return err
			}
			return serializer.NewWriter(f, cmd.OutOrStdout()).Serialize(v)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	cmd.Flags().BoolVar(&tag, "tag", false, "treat NAME as a tag and build every fixture under it")
	return cmd
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
