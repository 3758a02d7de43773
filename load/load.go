/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load resolves token file specifiers to parsed token sets.
package load

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/fs"
	"bennypowers.dev/mishtanim/parser"
	"bennypowers.dev/mishtanim/specifier"
	"bennypowers.dev/mishtanim/token"
)

var (
	// ErrLocalResolution indicates that local filesystem resolution failed.
	ErrLocalResolution = errors.New("local resolution failed")

	// ErrNetworkFallback indicates that the CDN network fallback also failed.
	ErrNetworkFallback = errors.New("network fallback failed")

	// ErrNoInputs indicates that neither specifiers nor configured files
	// were available to load.
	ErrNoInputs = errors.New("no token files to load")
)

// Options configures how token sets are loaded.
type Options struct {
	// Root is the directory for local specifier resolution and config
	// lookup. Defaults to the working directory.
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Collection overrides the collection title for every loaded set.
	// Takes precedence over config file values.
	Collection string

	// CSSColors normalizes recognized CSS color strings to hex so they
	// import as colors. Takes precedence over config file if set.
	CSSColors bool

	// Fetcher enables opt-in network fallback for package specifiers.
	// When set, if local resolution fails for an npm: or jsr: specifier,
	// Load will attempt to fetch the content from a CDN.
	// Nil means no network fallback (default).
	Fetcher Fetcher

	// CDN selects the CDN provider for network fallback.
	// Takes precedence over config file if set.
	// Defaults to "unpkg" when empty. Only "esm.sh" supports jsr: specifiers.
	CDN specifier.CDN

	// FetchTimeout is the maximum time to wait for a network fetch.
	// Defaults to DefaultTimeout when zero. Has no effect if Fetcher is nil.
	FetchTimeout time.Duration

	// Concurrency limits how many inputs load in parallel.
	// Defaults to GOMAXPROCS when zero or negative.
	Concurrency int
}

// input pairs one specifier with the parser options it loads under.
type input struct {
	spec  string
	popts parser.Options
}

// Load loads token sets from the given specifiers.
//
// Each specifier can be:
//   - Local file path: "tokens.json" or "/path/to/tokens.css"
//   - npm package: "npm:@scope/pkg/tokens.json" (requires node_modules)
//   - jsr package: "jsr:@scope/pkg/tokens.json" (requires node_modules)
//
// When specs is empty, the files configured in .config/mishtanim.* are
// loaded instead. When Options.Fetcher is set, npm: and jsr: specifiers
// that fail local resolution fall back to fetching from a CDN
// (configurable via Options.CDN).
//
// Inputs load concurrently; the returned sets preserve input order.
func Load(ctx context.Context, specs []string, opts Options) ([]*token.Set, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	// Ensure root is absolute
	root := opts.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path: %w", err)
		}
		root = absRoot
	}

	// Load config file (optional - not an error if missing)
	cfg := config.LoadOrDefault(filesystem, root)

	// Resolve effective CDN (Options take precedence)
	var cdn specifier.CDN
	if opts.CDN != "" {
		parsed, err := specifier.ParseCDN(string(opts.CDN))
		if err != nil {
			return nil, fmt.Errorf("invalid cdn in options: %w", err)
		}
		cdn = parsed
	} else if cfg.CDN != "" {
		parsed, err := specifier.ParseCDN(cfg.CDN)
		if err != nil {
			return nil, fmt.Errorf("invalid cdn in config: %w", err)
		}
		cdn = parsed
	}

	fetchTimeout := opts.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = DefaultTimeout
	}

	inputs, err := buildInputs(specs, cfg, opts, filesystem, root)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: pass file paths or configure files in .config/%s", ErrNoInputs, config.ConfigFileName)
	}

	jobs := opts.Concurrency
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexed results need no mutex: each goroutine owns one slot.
	results := make([][]*token.Set, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(inputs)))

	for i, in := range inputs {
		g.Go(func() error {
			content, err := resolveContent(gctx, in.spec, root, filesystem, opts.Fetcher, fetchTimeout, cdn)
			if err != nil {
				return fmt.Errorf("failed to resolve specifier %q: %w", in.spec, err)
			}

			sets, err := parser.Parse(content, in.spec, in.popts)
			if err != nil {
				return err
			}

			results[i] = sets
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sets []*token.Set
	for _, r := range results {
		sets = append(sets, r...)
	}
	return sets, nil
}

// buildInputs pairs each input specifier with its parser options.
// Explicit specs use the global options; configured files keep their
// per-file overrides unless an explicit collection overrides them.
func buildInputs(specs []string, cfg *config.Config, opts Options, filesystem fs.FileSystem, root string) ([]input, error) {
	collection := opts.Collection
	if collection == "" {
		collection = cfg.Collection
	}
	cssColors := opts.CSSColors || cfg.CSSColors

	if len(specs) > 0 {
		inputs := make([]input, 0, len(specs))
		for _, spec := range specs {
			inputs = append(inputs, input{
				spec:  spec,
				popts: parser.Options{Title: collection, CSSColors: cssColors},
			})
		}
		return inputs, nil
	}

	expanded, err := cfg.ExpandFiles(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("failed to expand configured files: %w", err)
	}

	inputs := make([]input, 0, len(expanded))
	for _, file := range expanded {
		popts := cfg.OptionsFor(file)
		if opts.Collection != "" {
			popts.Title = opts.Collection
		}
		if opts.CSSColors {
			popts.CSSColors = true
		}
		inputs = append(inputs, input{spec: file.Path, popts: popts})
	}
	return inputs, nil
}

// resolveContent resolves a specifier to file content.
// Tries local resolution first. If that fails and a Fetcher is provided,
// falls back to CDN for package specifiers.
func resolveContent(ctx context.Context, spec, root string, filesystem fs.FileSystem, fetcher Fetcher, fetchTimeout time.Duration, cdn specifier.CDN) ([]byte, error) {
	// Create resolver chain
	res, err := specifier.NewDefaultResolver(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	// Resolve specifier to path
	resolved, err := res.Resolve(spec)
	if err != nil {
		// Local resolution failed, try CDN fallback
		return fetchFromCDN(ctx, spec, fetcher, fetchTimeout, cdn, err)
	}

	// Make local paths absolute relative to root
	path := resolved.Path
	if resolved.Kind == specifier.KindLocal && !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	// Read file content
	content, readErr := filesystem.ReadFile(path)
	if readErr != nil {
		// File read failed, try CDN fallback (package specifiers only;
		// local specifiers return localErr unchanged via CDNURL check)
		localErr := fmt.Errorf("failed to read %s: %w", path, readErr)
		return fetchFromCDN(ctx, spec, fetcher, fetchTimeout, cdn, localErr)
	}

	return content, nil
}

// fetchFromCDN attempts to fetch content from CDN as a fallback.
// Returns the original localErr if no fetcher is provided or the specifier
// has no CDN URL for the given CDN provider.
func fetchFromCDN(ctx context.Context, spec string, fetcher Fetcher, fetchTimeout time.Duration, cdn specifier.CDN, localErr error) ([]byte, error) {
	if fetcher == nil {
		return nil, localErr
	}

	cdnURL, ok := specifier.CDNURL(spec, cdn)
	if !ok {
		return nil, localErr
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	content, fetchErr := fetcher.Fetch(ctx, cdnURL)
	if fetchErr != nil {
		return nil, fmt.Errorf("%w (%w), %w: %w", ErrLocalResolution, localErr, ErrNetworkFallback, fetchErr)
	}

	return content, nil
}
