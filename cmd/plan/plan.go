/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package plan provides the plan command for mishtanim.
package plan

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mishtanim/cmd/backend"
	"bennypowers.dev/mishtanim/cmd/render"
	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/fs"
	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/importer"
	"bennypowers.dev/mishtanim/load"
	"bennypowers.dev/mishtanim/snapshot"
	"bennypowers.dev/mishtanim/specifier"
)

// Cmd is the plan cobra command.
var Cmd = &cobra.Command{
	Use:   "plan [files-or-specifiers...]",
	Short: "Preview what an import would change",
	Long: `Preview what importing the given token files would change, without
writing anything.

Each variable shows as "+ create", "~ update" or "= unchanged"; tokens
that cannot import show as "! skip" with a reason. With --offline the
file's current state comes from the snapshot cache instead of the
network; an online plan refreshes that cache.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("offline", false, "Plan against the cached snapshot instead of the network")
	Cmd.Flags().Bool("fetch", false, "Fetch package specifiers from a CDN when local resolution fails")
	Cmd.Flags().String("cdn", "", "CDN provider for --fetch: "+strings.Join(specifier.ValidCDNs(), ", "))
}

var (
	createColor = color.New(color.FgGreen)
	updateColor = color.New(color.FgYellow)
	skipColor   = color.New(color.FgRed)
)

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	offline, _ := cmd.Flags().GetBool("offline")
	fetch, _ := cmd.Flags().GetBool("fetch")
	cdn, _ := cmd.Flags().GetString("cdn")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	opts := load.Options{
		Root:       ".",
		FS:         filesystem,
		Collection: viper.GetString("collection"),
		CSSColors:  viper.GetBool("css-colors"),
		CDN:        specifier.CDN(cdn),
	}
	if fetch {
		opts.Fetcher = load.NewHTTPFetcher(load.DefaultMaxSize)
	}

	sets, err := load.Load(ctx, args, opts)
	if err != nil {
		return err
	}

	store, err := snapshot.Open()
	if err != nil {
		if offline {
			return fmt.Errorf("snapshot cache unavailable: %w", err)
		}
		store = nil
	}

	var h host.Host
	if offline {
		key, err := backend.FileKey(cfg)
		if err != nil {
			return err
		}
		h, err = backend.Offline(store, key)
		if err != nil {
			return err
		}
	} else {
		live, key, err := backend.Live(cfg)
		if err != nil {
			return err
		}
		h = live
		defer backend.Refresh(ctx, store, key, live)
	}

	imp := importer.New(h)
	out := cmd.OutOrStdout()

	var failures int
	for i, set := range sets {
		p, err := imp.Plan(ctx, set)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error planning %s: %v\n", set.Title, err)
			failures++
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		printPlan(out, p)
	}

	if failures > 0 {
		return fmt.Errorf("failed to plan %d set(s)", failures)
	}
	return nil
}

// printPlan writes one set's plan: a collection header, one line per
// token, and a totals line.
func printPlan(w io.Writer, p *importer.Plan) {
	if p.NewCollection {
		fmt.Fprintf(w, "%s (new collection)\n", p.Collection)
	} else {
		fmt.Fprintf(w, "%s\n", p.Collection)
	}

	for _, c := range p.Changes {
		switch c.Action {
		case importer.ActionCreate:
			fmt.Fprintf(w, "  %s %s = %s\n", createColor.Sprint("+ create"), c.Name, render.DisplayValue(c.Value))
		case importer.ActionUpdate:
			fmt.Fprintf(w, "  %s %s = %s (was %s)\n", updateColor.Sprint("~ update"), c.Name, render.DisplayValue(c.Value), render.DisplayValue(c.OldValue))
		case importer.ActionUnchanged:
			fmt.Fprintf(w, "  = unchanged %s\n", c.Name)
		case importer.ActionSkip:
			fmt.Fprintf(w, "  %s %s: %s\n", skipColor.Sprint("! skip"), c.Name, c.Reason)
		}
	}

	create, update, unchanged, skip := p.Counts()
	fmt.Fprintf(w, "Plan: %d to create, %d to update, %d unchanged, %d skipped\n",
		create, update, unchanged, skip)
}
