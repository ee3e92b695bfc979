// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/revive-exchange/revive/cmd/revive/cli"
)

// typesCommand manages the item-type catalog from the shell.
func typesCommand() *cli.Command {
	return &cli.Command{
		Name:    "types",
		Summary: "manage the item-type catalog",
		Subcommands: []*cli.Command{
			typesListCommand(),
			typesAddCommand(),
			typesRemoveCommand(),
		},
	}
}

func typesListCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "list",
		Summary: "list item types with their item counts",
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

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tATTRIBUTES\tITEMS")
			for _, itemType := range context.catalog.ListTypes() {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%d\n",
					itemType.ID,
					itemType.Name,
					strings.Join(itemType.Attributes, ","),
					context.listing.CountByTypeName(itemType.Name))
			}
			return writer.Flush()
		},
	}
}

func typesAddCommand() *cli.Command {
	var configPath string
	var attributes []string

	return &cli.Command{
		Name:    "add",
		Summary: "add an item type",
		Usage:   "revive types add [--attribute KEY]... <name>",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("add", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (default: $REVIVE_CONFIG)")
			flags.StringArrayVar(&attributes, "attribute", nil, "attribute key (repeatable)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("add requires exactly one type name")
			}

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

			if err := context.catalog.AddType(args[0], attributes); err != nil {
				return err
			}
			fmt.Printf("added type %s\n", args[0])
			return nil
		},
	}
}

func typesRemoveCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "remove",
		Summary: "remove an item type (fails while items reference it)",
		Usage:   "revive types remove <type-id>",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("remove", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (default: $REVIVE_CONFIG)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("remove requires exactly one type id")
			}

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

			if err := context.flow.RemoveItemType(session, args[0]); err != nil {
				return err
			}
			fmt.Printf("removed type %s\n", args[0])
			return nil
		},
	}
}
