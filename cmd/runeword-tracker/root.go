package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsned/runeword-tracker/internal/config"
	"github.com/rsned/runeword-tracker/internal/tracker/db"
	"github.com/rsned/runeword-tracker/internal/tracker/engine"
	"github.com/rsned/runeword-tracker/internal/tracker/sync"
	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// options holds the persistent flags.
type options struct {
	cfgFile string
	dbPath  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "runeword-tracker",
		Short:         "Track progress towards Diablo II runewords",
		Long:          "runeword-tracker keeps an inventory of runes and shows which runewords are within reach, which runes can be tossed, and serves the same over MCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file path (default ~/.config/runeword-tracker/config.yaml)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to SQLite database (overrides config)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		newServeCmd(opts),
		newImportCmd(opts),
		newAddCmd(opts),
		newTossCmd(opts),
		newIgnoreCmd(opts),
		newThresholdCmd(opts),
		newSortCmd(opts),
		newStatusCmd(opts),
		newInventoryCmd(opts),
		newInfoCmd(opts),
	)
	return root
}

// app is the opened state shared by the subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *db.DB
	engine *engine.Engine
	out    io.Writer
}

// openApp loads the configuration, opens the database, imports the
// configured catalog if the database has none yet, and loads the engine.
func openApp(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Database = opts.dbPath
	}

	level := cfg.SlogLevel()
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	database, err := db.OpenAndInit(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.Database, err)
	}

	a := &app{cfg: cfg, logger: logger, db: database, out: cmd.OutOrStdout()}
	if err := a.seedCatalog(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.engine = engine.New(database, logger)
	defaults := engine.Defaults{Threshold: cfg.DefaultThreshold, Sort: tracker.SortKey(cfg.DefaultSort)}
	if err := a.engine.Load(ctx, defaults); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) seedCatalog(ctx context.Context) error {
	n, err := db.NewRunewordStore(a.db).CountRunewords(ctx)
	if err != nil || n > 0 || a.cfg.Catalog == "" {
		return err
	}
	if _, err := os.Stat(a.cfg.Catalog); errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn("no runeword catalog imported yet", "catalog", a.cfg.Catalog)
		return nil
	}

	a.logger.Info("importing runeword catalog", "file", a.cfg.Catalog)
	report, err := sync.NewSyncer(a.db, a.logger).ImportRunewordsFromFile(ctx, a.cfg.Catalog)
	if err != nil {
		return fmt.Errorf("importing %s: %w", a.cfg.Catalog, err)
	}
	a.logger.Info("catalog imported", "runewords", report.Imported, "skipped", len(report.Skipped))
	return nil
}

// Close releases the database.
func (a *app) Close() {
	_ = a.db.Close()
}

// withApp wraps a subcommand body with openApp and Close.
func withApp(opts *options, fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, opts)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a, args)
	}
}
