// Package main implements students-cli, the command-line companion of the
// roster API: NIM checks, bulk imports and roster listings against the same
// SQLite database the server uses.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aanand-mishra/students-roster/internal/config"
	"github.com/aanand-mishra/students-roster/internal/storage/sqlite"
	"github.com/aanand-mishra/students-roster/internal/store"
	"github.com/aanand-mishra/students-roster/internal/types"
)

var rootCmd = &cobra.Command{
	Use:           "students-cli",
	Short:         "Student roster command-line tool",
	Long:          "students-cli validates NIMs, imports CSV/JSON/YAML rosters and lists students stored by students-api.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration YAML file (default: $CONFIG_PATH, then environment only)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads --config, then CONFIG_PATH, then falls back to
// environment variables only.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		return config.FromEnv()
	}
	return config.Load(path)
}

// hasConfig reports whether a config source was given explicitly.
func hasConfig() bool {
	return configPath != "" || os.Getenv("CONFIG_PATH") != ""
}

// newLogger writes to stderr so command output stays pipeable. Only
// warnings and errors are shown unless the env is "dev".
func newLogger(env string, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if env == "dev" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// roster is an opened store plus the database behind it.
type roster struct {
	*store.Store
	db *sqlite.SQLite
}

func (r *roster) Close() error { return r.db.Close() }

// openRoster opens the configured database and loads the roster. With
// readOnly set, a missing or corrupt roster falls back to the seed in
// memory only and nothing is written.
func openRoster(cfg *config.Config, log *slog.Logger, readOnly bool) (*roster, error) {
	db, err := sqlite.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	var seed []types.Student
	if cfg.Roster.SeedOnEmpty {
		seed = store.DefaultSeed()
	}

	st := store.New(db, log)
	load := st.Load
	if readOnly {
		load = st.Peek
	}
	if err := load(seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return &roster{Store: st, db: db}, nil
}
