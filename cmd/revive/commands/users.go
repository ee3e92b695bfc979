// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/revive-exchange/revive/cmd/revive/cli"
)

// usersCommand inspects the user collection from the shell.
func usersCommand() *cli.Command {
	return &cli.Command{
		Name:    "users",
		Summary: "inspect registered users",
		Subcommands: []*cli.Command{
			usersListCommand(),
		},
	}
}

func usersListCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "list",
		Summary: "list registered users and their roles",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (default: $REVIVE_CONFIG)")
			return flags
		},
		Run: func(args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			context, err := openContext(cfg, os.Stderr)
			if err != nil {
				return err
			}

			session, err := adminLogin(context.auth)
			if err != nil {
				return err
			}
			defer context.auth.Logout(session)

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tUSERNAME\tROLE\tCONTACT\tITEMS")
			for _, user := range context.auth.Users() {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%d\n",
					user.ID,
					user.Username,
					user.Role,
					user.ContactInfo,
					len(context.listing.ListByOwner(user.ID)))
			}
			return writer.Flush()
		},
	}
}
