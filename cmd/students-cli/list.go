package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/students-roster/internal/store"
	"github.com/aanand-mishra/students-roster/internal/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List students on the roster",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var cohortsCmd = &cobra.Command{
	Use:   "cohorts",
	Short: "List the cohort years on the roster, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCohorts,
}

var (
	listSearch string
	listCohort string
	listSort   string
	listJSON   bool
)

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Keyword matched against name, NIM, program, cohort and address")
	listCmd.Flags().StringVar(&listCohort, "cohort", "", "Only show this cohort year")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort key: name|nim|cohort|program, suffixed -asc or -desc")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cohortsCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	sortKey, err := store.ParseSortKey(listSort)
	if err != nil {
		return err
	}

	students, err := withRoster(cmd, func(r *roster) []types.Student {
		return r.Query(store.Query{Search: listSearch, Cohort: listCohort, Sort: sortKey})
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		if students == nil {
			students = []types.Student{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(students)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNIM\tNAME\tPROGRAM\tCOHORT\tADDRESS")
	for _, s := range students {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.StudentID, s.Name, s.Program, s.CohortYear, s.Address)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d student(s)\n", len(students))
	return nil
}

func runCohorts(cmd *cobra.Command, _ []string) error {
	cohorts, err := withRoster(cmd, func(r *roster) []string { return r.Cohorts() })
	if err != nil {
		return err
	}
	for _, c := range cohorts {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
	return nil
}

// withRoster opens the configured roster, runs fn and closes it again.
func withRoster[T any](cmd *cobra.Command, fn func(*roster) T) (T, error) {
	var zero T

	cfg, err := loadConfig()
	if err != nil {
		return zero, err
	}

	r, err := openRoster(cfg, newLogger(cfg.Env, cmd.ErrOrStderr()), false)
	if err != nil {
		return zero, err
	}
	defer r.Close()

	return fn(r), nil
}
