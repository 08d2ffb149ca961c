package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracko-hub/tracko/config"
	"github.com/tracko-hub/tracko/pkg/logger"
)

// Execute runs the tracko command line and exits non-zero on failure.
func Execute() {
	cmd := NewRootCmd(nil)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. When app is nil it is created from the
// environment before any subcommand runs.
func NewRootCmd(app *App) *cobra.Command {
	var (
		logLevel  string
		logFormat string
		envFile   string
		owned     bool
	)

	cmd := &cobra.Command{
		Use:           "tracko",
		Short:         "Track tutees, their weekly lessons and payments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			if app != nil {
				return nil
			}
			loaded, err := config.LoadEnvFile(envFile)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Observability.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.Observability.LogFormat = logFormat
			}
			app = NewApp(cfg, newLogger(c.ErrOrStderr(), cfg), nil)
			owned = true
			if loaded {
				app.Log.Debug("environment file loaded", logger.String("path", envFile))
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if owned {
				app.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override LOG_FORMAT (json, text)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment; missing is fine")

	get := func() *App { return app }
	cmd.AddCommand(
		parseCmd(get),
		migrateCmd(get),
		tuteeCmd(get),
	)
	return cmd
}

func newLogger(w io.Writer, cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		Output: w,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
		Format: logger.Format(cfg.Observability.LogFormat),
	}).With(logger.String("app", cfg.App.Name), logger.String("env", string(cfg.App.Environment)))
}
