/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package watch provides the watch command for mishtanim.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mishtanim/cmd/backend"
	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/fs"
	"bennypowers.dev/mishtanim/importer"
	"bennypowers.dev/mishtanim/internal/logger"
	"bennypowers.dev/mishtanim/load"
	"bennypowers.dev/mishtanim/specifier"
)

// defaultDebounce groups rapid editor writes into one re-import.
const defaultDebounce = 300 * time.Millisecond

// Cmd is the watch cobra command.
var Cmd = &cobra.Command{
	Use:   "watch [files...]",
	Short: "Re-import token files whenever they change",
	Long: `Watch the given token files (or the files configured in
.config/mishtanim) and re-import them into the design file whenever
they change. Rapid consecutive writes debounce into one import.
Stop with Ctrl-C.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Duration("debounce", defaultDebounce, "How long to wait after the last change before re-importing")
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce, _ := cmd.Flags().GetDuration("debounce")
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	opts := load.Options{
		Root:       ".",
		FS:         filesystem,
		Collection: viper.GetString("collection"),
		CSSColors:  viper.GetBool("css-colors"),
	}

	paths, err := watchPaths(filesystem, cfg, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no watchable files: pass local paths or configure files in .config/%s", config.ConfigFileName)
	}

	h, _, err := backend.Live(cfg)
	if err != nil {
		return err
	}
	imp := importer.New(h)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories so rename-and-replace editor saves keep
	// working, then filter events back down to the watched files.
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		watched[p] = true
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	logger.Info("watching %d file(s), Ctrl-C to stop", len(paths))
	importOnce(ctx, cmd, imp, args, opts)

	// The timer starts drained; events arm it.
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || !watched[path] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("%s %s", event.Op, event.Name)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-timer.C:
			importOnce(ctx, cmd, imp, args, opts)
		}
	}
}

// importOnce reloads every input and imports it. Watch keeps running
// through failures, so errors report without ending the loop.
func importOnce(ctx context.Context, cmd *cobra.Command, imp *importer.Importer, args []string, opts load.Options) {
	sets, err := load.Load(ctx, args, opts)
	if err != nil {
		logger.Warn("reload failed: %v", err)
		return
	}
	for _, set := range sets {
		summary, err := imp.Import(ctx, set)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", set.Title, err)
			continue
		}
		backend.PrintSummary(cmd.OutOrStdout(), summary)
	}
}

// watchPaths resolves the inputs to absolute local file paths. Package
// specifiers that resolve into node_modules watch there; anything that
// cannot resolve locally is skipped with a warning.
func watchPaths(filesystem fs.FileSystem, cfg *config.Config, args []string) ([]string, error) {
	root, err := filepath.Abs(".")
	if err != nil {
		return nil, err
	}
	res, err := specifier.NewDefaultResolver(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	specs := args
	if len(specs) == 0 {
		expanded, err := cfg.ExpandFiles(filesystem, root)
		if err != nil {
			return nil, fmt.Errorf("failed to expand configured files: %w", err)
		}
		for _, file := range expanded {
			specs = append(specs, file.Path)
		}
	}

	var paths []string
	for _, spec := range specs {
		rf, err := res.Resolve(spec)
		if err != nil {
			logger.Warn("cannot watch %s: %v", spec, err)
			continue
		}
		path := rf.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		paths = append(paths, filepath.Clean(path))
	}
	return paths, nil
}
