package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drpcorg/octocore"
	"github.com/drpcorg/octocore/rdx"
)

func newRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <command-id> [field=value ...]",
		Short: "run a command against the in-process state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid command id %q: %w", args[0], err)
			}

			argMap := rdx.NewArgMap()
			for _, kv := range args[1:] {
				field, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("expected field=value, got %q", kv)
				}
				argMap.Set(rdx.FieldHash(field), parseValue(value))
			}

			command := octocore.FromArgs(octocore.CommandId(id), argMap)
			if _, err := app.state.Run(command, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok\n")
			return nil
		},
	}
}

// parseValue infers a field's type from its command-line representation:
// an int64 if it parses as one, a bool if it is exactly "true"/"false",
// otherwise a string.
func parseValue(s string) rdx.GenericValue {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return rdx.WrapI64(i)
	}
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return rdx.WrapBool(b)
	}
	return rdx.WrapString(s)
}
