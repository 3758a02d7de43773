/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides fixture and golden-file helpers for
// mishtanim's tests.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/mishtanim/internal/mapfs"
)

// updateGolden rewrites golden files with actual output when tests run
// with -update.
var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// testdataCandidates returns the locations a testdata entry may sit
// at. Tests run in their package directory, but shared helpers can be
// called from packages one or two levels deeper.
func testdataCandidates(rel string) []string {
	return []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
}

// findTestdata returns the first candidate location that exists.
func findTestdata(rel string) (string, bool) {
	for _, path := range testdataCandidates(rel) {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// NewFixtureFS copies a testdata directory into an in-memory
// filesystem rooted at rootPath.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	fixturePath, ok := findTestdata(fixtureDir)
	if !ok {
		t.Fatalf("no fixture directory %q under testdata", fixtureDir)
	}

	filesystem := mapfs.New()
	err := filepath.WalkDir(fixturePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(fixturePath, path)
		if err != nil {
			return err
		}
		filesystem.AddFile(filepath.Join(rootPath, relPath), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to load fixtures from %s: %v", fixtureDir, err)
	}
	return filesystem
}

// LoadFixtureFile reads a single fixture file's content.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()

	path, ok := findTestdata(fixturePath)
	if !ok {
		t.Fatalf("no fixture file %q under testdata", fixturePath)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", fixturePath, err)
	}
	return content
}

// UpdateGoldenFile writes actual output over the golden file when the
// -update flag is set. New goldens land in the package's own testdata.
func UpdateGoldenFile(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()
	if !*updateGolden {
		return
	}

	candidates := testdataCandidates(goldenPath)
	target := candidates[0]
	for _, path := range candidates {
		if _, err := os.Stat(filepath.Dir(path)); err == nil {
			target = path
			break
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("failed to create directory for golden file %s: %v", goldenPath, err)
	}
	if err := os.WriteFile(target, actual, 0644); err != nil {
		t.Fatalf("failed to write golden file %s: %v", goldenPath, err)
	}
	t.Logf("updated golden file %s", target)
}
