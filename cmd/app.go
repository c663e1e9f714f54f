package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inovacc/memolist/internal/application"
	"github.com/inovacc/memolist/internal/cli"
	"github.com/inovacc/memolist/internal/config"
	"github.com/inovacc/memolist/internal/entries"
	"github.com/inovacc/memolist/internal/logging"
	"github.com/inovacc/memolist/internal/persist"
	"github.com/inovacc/memolist/internal/session"
	"github.com/inovacc/memolist/internal/store"
)

// globalFlags mirror the config file; a flag wins only when set explicitly.
type globalFlags struct {
	ConfigPath string
	Backend    string
	DBPath     string
	PageSize   int
	IDs        string
	LogFormat  string
	LogLevel   string
}

var globals globalFlags

func bindGlobalFlags(fs *pflag.FlagSet, g *globalFlags) {
	fs.StringVar(&g.ConfigPath, "config", "", "Config file (default <config dir>/memolist/config.ini)")
	fs.StringVar(&g.Backend, "backend", "", "Storage backend: bolt, sqlite or memory")
	fs.StringVar(&g.DBPath, "db", "", "Database file (default <config dir>/memolist/memolist.<ext>)")
	fs.IntVar(&g.PageSize, "page-size", 0, "Entries per page")
	fs.StringVar(&g.IDs, "ids", "", "Id strategy for new entries: counter or clock")
	fs.StringVar(&g.LogFormat, "log-format", "", "Log format: text or json")
	fs.StringVar(&g.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// resolveConfig layers defaults, the config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path := globals.ConfigPath
	if path == "" {
		p, err := application.DefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}

		path = p
	} else {
		p, err := expandPath(path)
		if err != nil {
			return config.Config{}, err
		}

		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	fileBackend := cfg.Storage.Backend

	if flags.Changed("backend") {
		cfg.Storage.Backend = globals.Backend
	}

	if flags.Changed("db") {
		cfg.Storage.Path = globals.DBPath
	}

	if flags.Changed("page-size") {
		cfg.Paging.PageSize = globals.PageSize
	}

	if flags.Changed("ids") {
		cfg.Entries.IDs = globals.IDs
	}

	if flags.Changed("log-format") {
		cfg.Log.Format = globals.LogFormat
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = globals.LogLevel
	}

	cfg.Normalize()

	// a path from the config file belongs to the file's backend
	if cfg.Storage.Backend != fileBackend && !flags.Changed("db") {
		cfg.Storage.Path = ""
	}

	if cfg.Storage.Path == "" && cfg.Storage.Backend != store.BackendMemory {
		p, err := application.DefaultDBPath(cfg.Storage.Backend)
		if err != nil {
			return cfg, err
		}

		cfg.Storage.Path = p
	} else if cfg.Storage.Path != "" {
		p, err := expandPath(cfg.Storage.Path)
		if err != nil {
			return cfg, err
		}

		cfg.Storage.Path = p
	}

	return cfg, cfg.Validate()
}

// app is the wired dependency graph for one command invocation.
type app struct {
	cfg     config.Config
	store   store.Store
	session *session.Session
	logger  *slog.Logger
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Format, level)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}

	ids, err := entries.NewIDSource(cfg.Entries.IDs)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	adapter := persist.New(st, persist.WithLogger(logger))

	list, err := entries.Open(adapter, ids, entries.WithLogger(logger))
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	sess := session.New(list,
		session.WithPageSize(cfg.Paging.PageSize),
		session.WithLogger(logger),
	)

	logger.Debug("session opened",
		slog.String("backend", cfg.Storage.Backend),
		slog.String("path", cfg.Storage.Path),
		slog.Int("entries", list.Len()),
	)

	return &app{cfg: cfg, store: st, session: sess, logger: logger}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", slog.Any("error", err))
	}
}

func newEntryList(a *app) cli.EntryListModel {
	return cli.NewEntryList(a.session)
}
