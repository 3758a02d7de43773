/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package collections provides the collections command for mishtanim.
package collections

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mishtanim/cmd/backend"
	"bennypowers.dev/mishtanim/cmd/render"
	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/fs"
	"bennypowers.dev/mishtanim/host"
)

// Cmd is the collections cobra command.
var Cmd = &cobra.Command{
	Use:   "collections",
	Short: "List the design file's variable collections",
	Long: `List the design file's variable collections and their variables.

Color values render as ANSI swatches in table output. Use --filter to
narrow variables by name substring, or the global --collection flag to
show a single collection.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("format", "table", "Output format: table, markdown, json, names")
	Cmd.Flags().String("filter", "", "Only show variables whose name contains this substring")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	format, _ := cmd.Flags().GetString("format")
	filter, _ := cmd.Flags().GetString("filter")
	only := viper.GetString("collection")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	live, _, err := backend.Live(cfg)
	if err != nil {
		return err
	}

	all, err := live.Collections(ctx)
	if err != nil {
		return err
	}
	if only != "" {
		var match []*host.Collection
		for _, c := range all {
			if c.Name == only {
				match = append(match, c)
			}
		}
		if len(match) == 0 {
			return fmt.Errorf("no collection named %q", only)
		}
		all = match
	}

	var failures int
	var sections []render.Section
	var outputs []render.JSONCollection
	for _, c := range all {
		variables, err := live.Variables(ctx, c.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing variables in %s: %v\n", c.Name, err)
			failures++
			continue
		}
		variables = filterVariables(variables, filter)
		if filter != "" && len(variables) == 0 {
			continue
		}
		sections = append(sections, render.Section{
			Collection:  c.Name,
			Description: c.Description,
			Rows:        render.VariableRows(c, variables),
		})
		if format == "json" {
			outputs = append(outputs, render.CollectionJSON(c, variables))
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outputs); err != nil {
			return err
		}
	case "markdown":
		render.Markdown(out, sections)
	case "names":
		render.Names(out, sections)
	default:
		render.Table(out, sections)
	}

	if failures > 0 {
		return fmt.Errorf("failed to list %d collection(s)", failures)
	}
	return nil
}

// filterVariables keeps variables whose name contains the substring,
// ignoring case. An empty filter keeps everything.
func filterVariables(variables []*host.Variable, filter string) []*host.Variable {
	if filter == "" {
		return variables
	}
	needle := strings.ToLower(filter)
	kept := make([]*host.Variable, 0, len(variables))
	for _, v := range variables {
		if strings.Contains(strings.ToLower(v.Name), needle) {
			kept = append(kept, v)
		}
	}
	return kept
}
