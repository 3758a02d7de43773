/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"path/filepath"

	mfs "bennypowers.dev/mishtanim/fs"
)

// NewDefaultResolver creates a resolver chain that handles npm:, jsr:, and
// local paths. The rootDir is the starting directory for node_modules
// lookup; relative roots are resolved against the working directory.
func NewDefaultResolver(fs mfs.FileSystem, rootDir string) (Resolver, error) {
	if !filepath.IsAbs(rootDir) {
		abs, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root directory %s: %w", rootDir, err)
		}
		rootDir = abs
	}

	npm, err := NewNodeModulesResolver(fs, rootDir)
	if err != nil {
		return nil, err
	}
	jsr, err := NewJSRNodeModulesResolver(fs, rootDir)
	if err != nil {
		return nil, err
	}

	return NewChainResolver(
		npm,
		jsr,
		NewLocalResolver(),
	), nil
}
