package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/students-roster/internal/nim"
)

var validateCmd = &cobra.Command{
	Use:   "validate NIM...",
	Short: "Validate and decode student NIMs",
	Long:  "Checks every NIM against the Faculty of Engineering format and prints its department and cohort year. Exits non-zero if any NIM is invalid.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var validatePivot int

func init() {
	validateCmd.Flags().IntVar(&validatePivot, "pivot", nim.DefaultPivot, "Year codes at or above the pivot are 19xx (overrides the config)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	pivot := validatePivot
	if !cmd.Flags().Changed("pivot") && hasConfig() {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pivot = cfg.Roster.CohortPivot
	}
	codec := nim.New(pivot)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	invalid := 0
	for _, raw := range args {
		res := codec.Validate(raw)
		if res.Valid {
			fmt.Fprintf(tw, "%s\tvalid\t%s\n", res.NormalizedID, codec.Describe(res))
			continue
		}
		invalid++
		fmt.Fprintf(tw, "%s\tinvalid\t%s\n", raw, res.Reason())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d NIMs are invalid", invalid, len(args))
	}
	return nil
}
