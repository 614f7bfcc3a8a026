package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/catalog"
	"github.com/pable/owstats/internal/config"
	"github.com/pable/owstats/internal/logger"
	"github.com/pable/owstats/internal/storage"
)

var (
	cfg = config.Load()
	log = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "owstats",
	Short: "Personal Overwatch match tracker",
	Long:  "Log competitive matches by hand and analyse winrates by map, hero, role, group size and time.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(cfg.LogLevel, os.Stderr)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		log = l
		log.Debug().Str("db", cfg.DBPath).Str("user", cfg.UserID).Str("tz", cfg.Timezone).
			Str("catalog", cfg.CatalogPath).Msg("config loaded")
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite path or postgres:// DSN ($OWSTATS_DB)")
	pf.StringVar(&cfg.UserID, "user", cfg.UserID, "user whose matches to read and write ($OWSTATS_USER)")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error ($OWSTATS_LOG_LEVEL)")
	pf.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "IANA zone for dates and calendar days ($OWSTATS_TZ)")
	pf.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "YAML map/hero catalog overriding the built-in one ($OWSTATS_CATALOG)")

	rootCmd.AddCommand(addCmd, importCmd, deleteCmd, listCmd)
	rootCmd.AddCommand(summaryCmd, mapsCmd, heroesCmd, rolesCmd, modesCmd, trendCmd,
		sessionsCmd, synergyCmd, timelineCmd, activityCmd, dashboardCmd)
	rootCmd.AddCommand(weeklyCmd, analyzeCmd, shellCmd, sqlCmd, dropCmd)
}

// openStore connects to the configured backend, creating the SQLite
// directory on first use.
func openStore(ctx context.Context) (storage.Store, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if !storage.IsPostgresDSN(cfg.DBPath) && cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Connect(ctx, cfg.DBPath, loc, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func loadCatalog() (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", cfg.CatalogPath).Int("maps", cat.MapCount()).Msg("catalog loaded")
	return cat, nil
}

// now returns the current time in the configured zone.
func now() time.Time {
	loc, err := cfg.Location()
	if err != nil {
		return time.Now()
	}
	return time.Now().In(loc)
}
