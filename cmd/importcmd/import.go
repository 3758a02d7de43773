/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package importcmd provides the import command for mishtanim.
package importcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mishtanim/cmd/backend"
	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/fs"
	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/importer"
	"bennypowers.dev/mishtanim/internal/logger"
	"bennypowers.dev/mishtanim/load"
	"bennypowers.dev/mishtanim/snapshot"
	"bennypowers.dev/mishtanim/specifier"
)

// Cmd is the import cobra command.
var Cmd = &cobra.Command{
	Use:   "import [files-or-specifiers...]",
	Short: "Import token files into the design file's variables",
	Long: `Import named token values into the design file's variable collections.

Each input file becomes one collection: existing variables update in the
collection's default mode, missing ones are created, and tokens that
cannot import are skipped with a reason. Inputs can be local paths,
globs, or npm:/jsr: package specifiers; with no arguments the files
configured in .config/mishtanim are imported.

Examples:
  # Import one file into the collection named by its $title
  mishtanim import -k a1B2c3D4 tokens.json

  # Harvest :root custom properties from a stylesheet
  mishtanim import --collection Theme theme.css

  # Import a published token package, fetching from a CDN when
  # node_modules does not have it
  mishtanim import --fetch npm:@acme/tokens/tokens.json

  # Preview against an in-memory copy of the file
  mishtanim import --dry-run tokens.yaml`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("dry-run", false, "Import into an in-memory copy instead of the live file")
	Cmd.Flags().Bool("fetch", false, "Fetch package specifiers from a CDN when local resolution fails")
	Cmd.Flags().String("cdn", "", "CDN provider for --fetch: "+strings.Join(specifier.ValidCDNs(), ", "))
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
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

	var h host.Host
	var fileKey string
	if dryRun {
		store, err := snapshot.Open()
		if err != nil {
			logger.Debug("snapshot cache unavailable: %v", err)
		}
		h, err = backend.DryRun(ctx, cfg, store)
		if err != nil {
			return err
		}
		logger.Info("dry run: no changes will be written")
	} else {
		h, fileKey, err = backend.Live(cfg)
		if err != nil {
			return err
		}
	}

	imp := importer.New(h)

	var failures int
	for _, set := range sets {
		summary, err := imp.Import(ctx, set)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", set.Title, err)
			failures++
			continue
		}
		backend.PrintSummary(cmd.OutOrStdout(), summary)
		if !summary.Success {
			failures++
		}
	}

	// A committed import makes any cached snapshot stale.
	if !dryRun && failures < len(sets) {
		if store, err := snapshot.Open(); err == nil {
			if err := store.Drop(fileKey); err != nil {
				logger.Debug("failed to drop snapshot for %s: %v", fileKey, err)
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("failed to import %d set(s)", failures)
	}
	return nil
}
