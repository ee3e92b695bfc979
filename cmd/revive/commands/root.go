// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/revive-exchange/revive/cmd/revive/cli"
)

// Root builds the revive command tree. Running the binary with no
// subcommand launches the terminal UI.
func Root() *cli.Command {
	tui := tuiCommand()
	root := &cli.Command{
		Name:    "revive",
		Summary: "local exchange platform for idle goods",
		Description: "revive is a local exchange platform for idle goods: publish items,\n" +
			"browse and search the market, post demands, and let administrators\n" +
			"review applications and manage the item-type catalog.\n\n" +
			"Running revive with no subcommand starts the terminal UI.",
		Subcommands: []*cli.Command{
			tui,
			exportCommand(),
			importCommand(),
			typesCommand(),
			usersCommand(),
		},
	}
	// Bare "revive" behaves like "revive tui". Sharing the Flags func
	// keeps --config working in both spellings.
	root.Run = tui.Run
	root.Flags = tui.Flags
	return root
}
