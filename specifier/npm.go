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

// NodeModulesResolver resolves npm: specifiers against installed packages,
// searching node_modules from rootDir upward.
type NodeModulesResolver struct {
	fs      mfs.FileSystem
	rootDir string
}

// NewNodeModulesResolver creates a resolver for npm: package specifiers.
// The rootDir must be absolute so the lookup also works on virtual
// filesystems that have no working directory.
func NewNodeModulesResolver(fs mfs.FileSystem, rootDir string) (*NodeModulesResolver, error) {
	if !filepath.IsAbs(rootDir) {
		return nil, fmt.Errorf("rootDir must be an absolute path, got: %s", rootDir)
	}
	return &NodeModulesResolver{fs: fs, rootDir: rootDir}, nil
}

// Resolve maps npm:pkg/file to the installed node_modules/pkg/file.
func (r *NodeModulesResolver) Resolve(spec string) (*ResolvedFile, error) {
	parsed := Parse(spec)
	if parsed.Kind != KindNPM {
		return nil, fmt.Errorf("not an npm specifier: %s", spec)
	}

	path, found, err := lookupNodeModules(r.fs, r.rootDir, spec, filepath.Join(parsed.Package, parsed.File))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("package not found: %s (looked in node_modules starting from %s)", parsed.Package, r.rootDir)
	}

	return &ResolvedFile{
		Specifier: spec,
		Path:      path,
		Kind:      KindNPM,
	}, nil
}

// CanResolve returns true for npm: specifiers.
func (r *NodeModulesResolver) CanResolve(spec string) bool {
	return strings.HasPrefix(spec, "npm:")
}
