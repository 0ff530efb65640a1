package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/students-roster/internal/importer"
	"github.com/aanand-mishra/students-roster/internal/nim"
	"github.com/aanand-mishra/students-roster/internal/normalize"
	"github.com/aanand-mishra/students-roster/internal/rows"
	"github.com/aanand-mishra/students-roster/internal/validation"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import students from a CSV, JSON or YAML file",
	Long: `Reads FILE, validates every row (NIM format, required fields, GPA, program and
cohort cross-checks), skips duplicates and appends the accepted rows to the
roster in one save. Row problems are reported, never fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importLogPath string
	importDryRun  bool
	importFormat  string
)

func init() {
	importCmd.Flags().StringVar(&importLogPath, "log", "", "Write the full error log to this path")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate only; do not save accepted rows")
	importCmd.Flags().StringVar(&importFormat, "format", "", "Input format: csv, json or yaml (default: from the file extension)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := formatFor(path)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Env, cmd.ErrOrStderr())

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	parsed, err := rows.Decode(format, f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	r, err := openRoster(cfg, log, importDryRun)
	if err != nil {
		return err
	}
	defer r.Close()

	codec := nim.New(cfg.Roster.CohortPivot)
	reconciler := importer.New(r.Store, normalize.New(codec), validation.New(codec), importer.Options{
		MinCohortYear: cfg.Roster.MinCohortYear,
		MaxCohortYear: cfg.Roster.MaxCohortYear,
		DryRun:        importDryRun,
	}, log)

	summary, err := reconciler.Reconcile(parsed)
	if err != nil {
		return err
	}
	summary.Source = filepath.Base(path)

	out := cmd.OutOrStdout()
	if importDryRun {
		fmt.Fprintln(out, "Dry run: nothing was saved.")
	}
	fmt.Fprintln(out, summary.Report(cfg.Roster.ImportErrorLimit))

	if importLogPath != "" {
		if err := os.WriteFile(importLogPath, []byte(summary.ErrorLog()), 0o644); err != nil {
			return fmt.Errorf("failed to write error log: %w", err)
		}
		fmt.Fprintf(out, "Full log written to %s\n", importLogPath)
	}
	return nil
}

func formatFor(path string) (rows.Format, error) {
	if importFormat != "" {
		return rows.ParseFormat(importFormat)
	}
	return rows.FormatForFile(path)
}
