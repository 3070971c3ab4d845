package main

import (
	"fmt"
	"log/slog"

	"github.com/drpcorg/octocore"
	"github.com/drpcorg/octocore/config"
	"github.com/drpcorg/octocore/examples"
	"github.com/drpcorg/octocore/rdx"
	"github.com/drpcorg/octocore/utils"
)

// app bundles the pieces every subcommand needs: a live State driving the
// bundled FoodOrders domain, and the config it was built from.
type app struct {
	cfg   *config.Config
	state *octocore.State
}

func wireApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := utils.NewDefaultLogger(level)

	registry := octocore.NewCommandRegistry()
	if err := examples.RegisterFoodOrders(registry); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	state, err := octocore.NewState(rdx.SessionId(cfg.SessionId), registry, &examples.FoodOrders{}, logger)
	if err != nil {
		return nil, fmt.Errorf("build state: %w", err)
	}

	return &app{cfg: cfg, state: state}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
