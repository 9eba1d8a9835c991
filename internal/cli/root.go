package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/me/civicflow/internal/config"
	"github.com/me/civicflow/internal/console"
	"github.com/me/civicflow/internal/logging"
	"github.com/me/civicflow/internal/store"
)

var (
	flagAPI       string
	flagEnvFile   string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagOutput    string

	cfg    config.Config
	logger *slog.Logger
	app    *console.Console

	closers []func() error
)

// NewRootCmd creates the root cobra command for the civicflow CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "civicflow",
		Short: "civicflow: municipal issue console",
		Long: `civicflow is the administrative console for the civic-issue platform.
Each command is a view of the console; views the signed-in role may not
open are refused with the route the console would redirect to.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return teardown()
		},
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagAPI, "api", "", "Backend API origin (or CIVICFLOW_API_URL env)")
	pf.StringVar(&flagEnvFile, "env-file", ".env", "Optional dotenv file read before the environment")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
	pf.StringVarP(&flagOutput, "output", "o", outputTable, "Output format (table, json, yaml)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newNavCmd(),
		newOpenCmd(),
		newDashboardCmd(),
		newReportsCmd(),
		newDepartmentsCmd(),
		newOperatorsCmd(),
		newAnalyticsCmd(),
		newSettingsCmd(),
		newNotificationsCmd(),
		newServeCmd(),
	)

	return root
}

// setup loads configuration and builds the console shell. Flags override
// the environment, which overrides the dotenv file.
func setup(cmd *cobra.Command) error {
	// A failed run skips the post-run hook; release what it left open.
	if err := teardown(); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(flagEnvFile)
	if err != nil {
		return err
	}
	if flagAPI != "" {
		cfg.APIURL = flagAPI
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if flagDebug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := checkOutput(flagOutput); err != nil {
		return err
	}

	logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr())

	ephemeral := store.NewFileStorage(filepath.Join(cfg.EphemeralDir(), "session.json"), logger)
	durableDir, err := cfg.DurableDir()
	if err != nil {
		return err
	}
	durable, err := store.OpenSQLiteStorage(cmd.Context(), filepath.Join(durableDir, "state.db"), logger)
	if err != nil {
		return fmt.Errorf("open state storage: %w", err)
	}
	closers = append(closers, durable.Close)

	app = console.New(console.Deps{
		Config:    cfg,
		Ephemeral: ephemeral,
		Durable:   durable,
		Navigator: redirectNotice{w: cmd.ErrOrStderr()},
		Logger:    logger,
	})
	closers = append(closers, func() error {
		app.Close()
		return nil
	})
	return nil
}

func teardown() error {
	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && first == nil {
			first = err
		}
	}
	closers = nil
	return first
}

// redirectNotice is the terminal's navigator: a replace-navigation to the
// login view becomes a hint on stderr.
type redirectNotice struct {
	w io.Writer
}

func (n redirectNotice) Replace(path string) {
	fmt.Fprintf(n.w, "Session expired. Redirected to %s; run 'civicflow login' to sign in again.\n", path)
}
