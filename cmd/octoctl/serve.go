package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/drpcorg/octocore"
	"github.com/drpcorg/octocore/examples"
	"github.com/drpcorg/octocore/gateway"
)

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [addr]",
		Short: "boot the HTTP gateway, handing out fresh FoodOrders sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := app.cfg.ListenAddr
			if len(args) == 1 {
				addr = args[0]
			}

			srv := gateway.NewServer(func() (any, *octocore.CommandRegistry) {
				reg := octocore.NewCommandRegistry()
				_ = examples.RegisterFoodOrders(reg)
				return &examples.FoodOrders{}, reg
			})

			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)
			return http.ListenAndServe(addr, srv)
		},
	}
}
