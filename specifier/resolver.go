/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"path/filepath"
	"strings"

	mfs "bennypowers.dev/mishtanim/fs"
)

// ResolvedFile preserves both the original specifier and the resolved filesystem path.
type ResolvedFile struct {
	// Specifier is the original specifier (e.g., "npm:@acme/design-tokens/brand.json").
	Specifier string

	// Path is the resolved filesystem path.
	Path string

	// Kind indicates the type of specifier (KindNPM, KindJSR, KindLocal).
	Kind Kind
}

// Resolver resolves specifiers to filesystem paths.
type Resolver interface {
	// Resolve resolves a specifier to a ResolvedFile.
	// Returns an error if resolution fails.
	Resolve(spec string) (*ResolvedFile, error)

	// CanResolve returns true if this resolver can handle the given specifier.
	CanResolve(spec string) bool
}

// ChainResolver tries multiple resolvers in order.
type ChainResolver struct {
	resolvers []Resolver
}

// NewChainResolver creates a resolver that tries each resolver in order.
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

// Resolve tries each resolver in order until one succeeds.
func (c *ChainResolver) Resolve(spec string) (*ResolvedFile, error) {
	for _, r := range c.resolvers {
		if r.CanResolve(spec) {
			return r.Resolve(spec)
		}
	}
	return nil, fmt.Errorf("no resolver found for specifier: %s", spec)
}

// CanResolve returns true if any resolver can handle the specifier.
func (c *ChainResolver) CanResolve(spec string) bool {
	for _, r := range c.resolvers {
		if r.CanResolve(spec) {
			return true
		}
	}
	return false
}

// lookupNodeModules walks from rootDir toward the filesystem root checking
// each node_modules directory for relPath. It returns the first path that
// exists. A relPath that escapes node_modules after cleaning fails rather
// than resolving outside the package tree.
func lookupNodeModules(filesystem mfs.FileSystem, rootDir, spec, relPath string) (string, bool, error) {
	dir := rootDir
	for {
		base := filepath.Join(dir, "node_modules")
		path := filepath.Join(base, relPath)

		if !isInsideDir(path, base) {
			return "", false, fmt.Errorf("path traversal detected in specifier: %s", spec)
		}

		if filesystem.Exists(path) {
			return path, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// isInsideDir reports whether path is lexically contained in dir.
// Both arguments must already be cleaned.
func isInsideDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
