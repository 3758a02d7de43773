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

// JSRNodeModulesResolver resolves jsr: specifiers through the npm
// compatibility layer. Packages installed with `npx jsr add @scope/pkg`
// land in node_modules under the @jsr scope as @jsr/scope__pkg.
type JSRNodeModulesResolver struct {
	fs      mfs.FileSystem
	rootDir string
}

// NewJSRNodeModulesResolver creates a resolver for jsr: package specifiers.
// The rootDir must be absolute so the lookup also works on virtual
// filesystems that have no working directory.
func NewJSRNodeModulesResolver(fs mfs.FileSystem, rootDir string) (*JSRNodeModulesResolver, error) {
	if !filepath.IsAbs(rootDir) {
		return nil, fmt.Errorf("rootDir must be an absolute path, got: %s", rootDir)
	}
	return &JSRNodeModulesResolver{fs: fs, rootDir: rootDir}, nil
}

// Resolve maps jsr:@scope/pkg/file to node_modules/@jsr/scope__pkg/file.
func (r *JSRNodeModulesResolver) Resolve(spec string) (*ResolvedFile, error) {
	parsed := Parse(spec)
	if parsed.Kind != KindJSR {
		return nil, fmt.Errorf("not a jsr specifier: %s", spec)
	}

	compat := jsrCompatName(parsed.Package)
	path, found, err := lookupNodeModules(r.fs, r.rootDir, spec, filepath.Join("@jsr", compat, parsed.File))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("jsr package not found: %s (looked in node_modules/@jsr starting from %s)", parsed.Package, r.rootDir)
	}

	return &ResolvedFile{
		Specifier: spec,
		Path:      path,
		Kind:      KindJSR,
	}, nil
}

// CanResolve returns true for jsr: specifiers.
func (r *JSRNodeModulesResolver) CanResolve(spec string) bool {
	return strings.HasPrefix(spec, "jsr:")
}

// jsrCompatName converts @scope/pkg to the npm compatibility layer
// directory name scope__pkg.
func jsrCompatName(pkg string) string {
	if scoped, ok := strings.CutPrefix(pkg, "@"); ok {
		return strings.Replace(scoped, "/", "__", 1)
	}
	return pkg
}
