/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package pull provides the pull command for mishtanim.
package pull

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mishtanim/cmd/backend"
	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/export"
	"bennypowers.dev/mishtanim/fs"
	"bennypowers.dev/mishtanim/host"
)

// Cmd is the pull cobra command.
var Cmd = &cobra.Command{
	Use:   "pull",
	Short: "Write the design file's variables back out as token files",
	Long: `Write the design file's variable collections back out as token files.

Each collection becomes one token set, serialized to the requested
format. Values come from the collection's default mode. With --out the
output goes to files, one per collection when the path contains
{collection}; without it everything prints to stdout.

Examples:
  # Print every collection as flat JSON
  mishtanim pull

  # One DTCG file per collection
  mishtanim pull --format dtcg --out "tokens/{collection}.json"

  # A single collection as CSS custom properties
  mishtanim pull -c Brand --format css --out brand.css`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "flat", "Output format: "+strings.Join(export.ValidFormats(), ", "))
	Cmd.Flags().StringP("out", "o", "", "Output path; {collection} expands per collection (default: stdout)")
	Cmd.Flags().String("prefix", "", "Prefix prepended to every token name")
	Cmd.Flags().StringP("delimiter", "d", "-", "Delimiter joining prefix and nested names")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatFlag, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	prefix, _ := cmd.Flags().GetString("prefix")
	delimiter, _ := cmd.Flags().GetString("delimiter")
	only := viper.GetString("collection")

	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	opts := export.Options{Format: format, Prefix: prefix, Delimiter: delimiter}

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	live, _, err := backend.Live(cfg)
	if err != nil {
		return err
	}

	collections, err := live.Collections(ctx)
	if err != nil {
		return err
	}
	if only != "" {
		var match []*host.Collection
		for _, c := range collections {
			if c.Name == only {
				match = append(match, c)
			}
		}
		if len(match) == 0 {
			return fmt.Errorf("no collection named %q", only)
		}
		collections = match
	}
	if len(collections) == 0 {
		return fmt.Errorf("file has no variable collections")
	}

	split := strings.Contains(out, "{collection}")
	if out != "" && !split && len(collections) > 1 {
		return fmt.Errorf("file has %d collections: use {collection} in --out or pick one with --collection", len(collections))
	}

	var failures int
	for i, c := range collections {
		variables, err := live.Variables(ctx, c.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing variables in %s: %v\n", c.Name, err)
			failures++
			continue
		}

		set := export.FromCollection(c, variables)
		data, err := export.FormatSet(set, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting %s: %v\n", c.Name, err)
			failures++
			continue
		}

		if out == "" {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			continue
		}

		path := out
		if split {
			path = strings.ReplaceAll(out, "{collection}", sanitizeFileName(c.Name))
		}
		if err := ensureDir(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory for %s: %v\n", path, err)
			failures++
			continue
		}
		if err := filesystem.WriteFile(path, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to %s: %v\n", path, err)
			failures++
			continue
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}

	if failures > 0 {
		return fmt.Errorf("failed to pull %d collection(s)", failures)
	}
	return nil
}

// sanitizeFileName sanitizes a collection name for use in file paths.
// It prevents path traversal by replacing unsafe characters.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.',
			r == '-',
			r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteRune('-')
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// ensureDir creates the parent directory for a file path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
