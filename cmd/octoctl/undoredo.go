package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUndoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "revert the most recently applied command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.state.Undo(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok\n")
			return nil
		},
	}
}

func newRedoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "reapply the most recently undone command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.state.Redo(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok\n")
			return nil
		},
	}
}
