package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "octoctl.toml"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "octoctl",
		Short:         "octoctl drives a command-sourced octocore.State from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(defaultConfigPath)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newRunCmd(app),
		newUndoCmd(app),
		newRedoCmd(app),
		newHistoryCmd(app),
		newServeCmd(app),
	)
	return rootCmd
}
