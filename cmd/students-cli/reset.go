package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/students-roster/internal/store"
	"github.com/aanand-mishra/students-roster/internal/types"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the roster with the demo records, or empty it",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var (
	resetEmpty bool
	resetYes   bool
)

func init() {
	resetCmd.Flags().BoolVar(&resetEmpty, "empty", false, "Leave the roster empty instead of restoring the demo records")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Confirm the reset")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		return errors.New("reset discards every student on the roster: pass --yes to confirm")
	}

	var seed []types.Student
	if !resetEmpty {
		seed = store.DefaultSeed()
	}

	initErr, err := withRoster(cmd, func(r *roster) error { return r.Init(seed) })
	if err != nil {
		return err
	}
	if initErr != nil {
		return initErr
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Roster reset: %d student(s)\n", len(seed))
	return nil
}
