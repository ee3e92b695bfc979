// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/revive-exchange/revive/cmd/revive/cli"
	"github.com/revive-exchange/revive/lib/marketui"
)

// tuiCommand launches the interactive terminal UI.
func tuiCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "tui",
		Summary: "start the interactive terminal UI",
		Description: "Starts the full-screen terminal UI: sign in or register, browse and\n" +
			"search the market, manage your own items, post demands, and (as an\n" +
			"administrator) review applications and manage item types.\n\n" +
			"Log output goes to a file under the data root so it does not tear\n" +
			"the screen.",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("tui", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (default: $REVIVE_CONFIG)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("tui takes no arguments")
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			logPath := cfg.Logging.File
			if logPath == "" {
				logPath = filepath.Join(cfg.Paths.Root, "revive.log")
			}
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer logFile.Close()

			context, err := openContext(cfg, logFile)
			if err != nil {
				return err
			}

			model := marketui.NewModel(marketui.Services{
				Auth:    context.auth,
				Catalog: context.catalog,
				Listing: context.listing,
				Demand:  context.demand,
				Request: context.request,
				Flow:    context.flow,
				Logger:  context.logger,
			})

			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running ui: %w", err)
			}
			return nil
		},
	}
}
