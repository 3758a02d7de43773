/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cache manages cached file snapshots.
package cache

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/mishtanim/cmd/backend"
	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/fs"
	"bennypowers.dev/mishtanim/snapshot"
)

// Cmd is the cache command.
var Cmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached file snapshots",
	Long: `Manage the local snapshot cache used by offline planning and dry runs.

Examples:
  # Drop the snapshot for the configured file
  mishtanim cache drop

  # Drop the snapshot for a specific file
  mishtanim cache drop AbCdEf123

  # Drop every cached snapshot
  mishtanim cache drop --all`,
}

var dropCmd = &cobra.Command{
	Use:   "drop [file-key]",
	Short: "Drop cached snapshots",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().Bool("all", false, "Drop every cached snapshot")

	Cmd.AddCommand(dropCmd)
}

func runDrop(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	store, err := snapshot.Open()
	if err != nil {
		return fmt.Errorf("error opening snapshot cache: %w", err)
	}

	if all {
		if err := store.DropAll(); err != nil {
			return fmt.Errorf("error dropping snapshots: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Dropped all cached snapshots")
		return nil
	}

	key := ""
	if len(args) > 0 {
		key = args[0]
	} else {
		cfg := config.LoadOrDefault(fs.NewOSFileSystem(), ".")
		key, err = backend.FileKey(cfg)
		if err != nil {
			return err
		}
	}

	if err := store.Drop(key); err != nil {
		return fmt.Errorf("error dropping snapshot for %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dropped cached snapshot for %s\n", key)
	return nil
}
