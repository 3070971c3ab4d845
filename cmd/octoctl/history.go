package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "list the commands currently in the undo deque, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, rec := range app.state.History() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: command %d\n", i, rec.Id)
			}
			return nil
		},
	}
}
