// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/revive-exchange/revive/cmd/revive/cli"
	"github.com/revive-exchange/revive/lib/archive"
)

// exportCommand writes every collection to a single archive file.
func exportCommand() *cli.Command {
	var configPath string
	var compression string

	return &cli.Command{
		Name:    "export",
		Summary: "write all platform data to an archive file",
		Usage:   "revive export [--compression zstd|lz4|none] [file]",
		Description: "Exports users, items, item types, demands, and applications into a\n" +
			"single checksummed archive. With no file argument the archive is\n" +
			"written to the configured archives directory with a timestamped name.",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (default: $REVIVE_CONFIG)")
			flags.StringVar(&compression, "compression", "zstd", "archive compression: zstd, lz4, or none")
			return flags
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("export takes at most one file argument")
			}
			tag, err := archive.ParseCompressionTag(compression)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			context, err := openContext(cfg, os.Stderr)
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				name := fmt.Sprintf("revive-%s.rva", time.Now().Format("20060102-150405"))
				path = filepath.Join(cfg.Paths.Archives, name)
			}

			if err := archive.Export(context.store, path, tag); err != nil {
				return err
			}
			fmt.Printf("exported to %s\n", path)
			return nil
		},
	}
}

// importCommand restores all collections from an archive file. This
// overwrites current data, so it requires administrator credentials.
func importCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "import",
		Summary: "restore all platform data from an archive file",
		Usage:   "revive import <file>",
		Description: "Restores every collection from an archive produced by export,\n" +
			"replacing the current data. Requires administrator credentials.",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("import", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (default: $REVIVE_CONFIG)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("import requires exactly one file argument")
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

			if err := archive.Import(context.store, args[0]); err != nil {
				return err
			}
			fmt.Printf("imported %s into %s\n", args[0], cfg.Paths.Data)
			return nil
		},
	}
}
