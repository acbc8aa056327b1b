package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	"github.com/kittclouds/scenekitt/internal/config"
	"github.com/kittclouds/scenekitt/internal/store"
)

// Version is set at build time.
var Version = "dev"

// app carries the global flags and the state PersistentPreRunE builds.
type app struct {
	// Global flags
	cfgFile string
	dbPath  string
	format  string
	verbose bool

	fsys    hackpadfs.FS
	resolve func(string) (string, error)

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd builds the command tree on the host filesystem.
func NewRootCmd() *cobra.Command {
	fsys := osfs.NewFS()
	return newRootCmd(fsys, func(p string) (string, error) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		return fsys.FromOSPath(abs)
	})
}

// newRootCmd builds the command tree over fsys. resolve maps user paths to
// fsys paths.
func newRootCmd(fsys hackpadfs.FS, resolve func(string) (string, error)) *cobra.Command {
	a := &app{fsys: fsys, resolve: resolve}

	rootCmd := &cobra.Command{
		Use:   "scenekitt",
		Short: "Scene and act segmentation for game scripts",
		Long: `scenekitt splits a linear game script into scenes and acts.

A script is a JSON list of records such as {"LOCATION": "Narshe"} or
{"Terra": "Where am I?"}. An optional meta file maps canonical character
names to their aliases.

Examples:
  scenekitt segment FFVI/data-ff6.json FFVI/meta-ff6.json --rule combined
  scenekitt sweep FFVI/data-ff6.json FFVI/meta-ff6.json -o results
  scenekitt runs list --db runs.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database for stored runs (overrides config)")
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "table", "output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newSegmentCmd(a),
		newSweepCmd(a),
		newStatsCmd(a),
		newRunsCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI on the host filesystem.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) init(cmd *cobra.Command) error {
	cfgPath := ""
	if a.cfgFile != "" {
		p, err := a.resolve(a.cfgFile)
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		cfgPath = p
	}

	cfg, err := config.Load(a.fsys, cfgPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Database = a.dbPath
	}
	a.cfg = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

// path resolves a user-supplied path onto the filesystem.
func (a *app) path(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	out, err := a.resolve(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return out, nil
}

// openStore opens the configured database. It returns nil when none is
// configured and required is false.
func (a *app) openStore(required bool) (store.Storer, error) {
	if a.cfg.Database == "" {
		if required {
			return nil, fmt.Errorf("no database configured, use --db or SCENEKITT_DATABASE")
		}
		return nil, nil
	}
	s, err := store.NewSQLiteStoreWithDSN(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("opened store", "database", a.cfg.Database)
	return s, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "scenekitt", Version)
			return nil
		},
	}
}
