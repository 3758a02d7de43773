/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"strings"
	"testing"

	"bennypowers.dev/mishtanim/internal/mapfs"
)

func TestLocalResolverPassthrough(t *testing.T) {
	resolver := NewLocalResolver()

	tests := []struct {
		name string
		spec string
	}{
		{name: "relative path", spec: "./tokens/colors.json"},
		{name: "absolute path", spec: "/home/user/tokens.json"},
		{name: "bare name", spec: "tokens.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rf, err := resolver.Resolve(tt.spec)
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.spec, err)
			}
			if rf.Specifier != tt.spec || rf.Path != tt.spec {
				t.Errorf("Resolve(%q) = {Specifier: %q, Path: %q}, want both %q", tt.spec, rf.Specifier, rf.Path, tt.spec)
			}
			if rf.Kind != KindLocal {
				t.Errorf("Kind = %v, want KindLocal", rf.Kind)
			}
		})
	}
}

// nodeModulesFixture builds a tree with npm and jsr packages installed
// at /project and an empty nested workspace below it.
func nodeModulesFixture() *mapfs.MapFileSystem {
	filesystem := mapfs.New()
	filesystem.AddFile("/project/node_modules/@acme/design-tokens/tokens.json", `{"items": []}`, 0644)
	filesystem.AddFile("/project/node_modules/plain-tokens/colors.json", `{"items": []}`, 0644)
	filesystem.AddFile("/project/node_modules/@jsr/acme__design-tokens/tokens.json", `{"items": []}`, 0644)
	filesystem.AddDir("/project/packages/app", 0755)
	return filesystem
}

func TestNodeModulesResolution(t *testing.T) {
	filesystem := nodeModulesFixture()

	tests := []struct {
		name    string
		jsr     bool
		rootDir string
		spec    string
		want    string
		wantErr string
	}{
		{
			name:    "scoped npm package",
			rootDir: "/project",
			spec:    "npm:@acme/design-tokens/tokens.json",
			want:    "/project/node_modules/@acme/design-tokens/tokens.json",
		},
		{
			name:    "unscoped npm package",
			rootDir: "/project",
			spec:    "npm:plain-tokens/colors.json",
			want:    "/project/node_modules/plain-tokens/colors.json",
		},
		{
			name:    "npm lookup walks up from a nested workspace",
			rootDir: "/project/packages/app",
			spec:    "npm:plain-tokens/colors.json",
			want:    "/project/node_modules/plain-tokens/colors.json",
		},
		{
			name:    "npm package missing",
			rootDir: "/project",
			spec:    "npm:absent-tokens/tokens.json",
			wantErr: "package not found",
		},
		{
			name:    "npm file path cannot escape node_modules",
			rootDir: "/project",
			spec:    "npm:pkg/../../secret.txt",
			wantErr: "path traversal",
		},
		{
			name:    "jsr package resolves through the compatibility layer",
			jsr:     true,
			rootDir: "/project",
			spec:    "jsr:@acme/design-tokens/tokens.json",
			want:    "/project/node_modules/@jsr/acme__design-tokens/tokens.json",
		},
		{
			name:    "jsr lookup walks up from a nested workspace",
			jsr:     true,
			rootDir: "/project/packages/app",
			spec:    "jsr:@acme/design-tokens/tokens.json",
			want:    "/project/node_modules/@jsr/acme__design-tokens/tokens.json",
		},
		{
			name:    "jsr requires a scope",
			jsr:     true,
			rootDir: "/project",
			spec:    "jsr:plain-tokens/colors.json",
			wantErr: "not a jsr specifier",
		},
		{
			name:    "jsr package missing",
			jsr:     true,
			rootDir: "/project",
			spec:    "jsr:@absent/pkg/mod.json",
			wantErr: "jsr package not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resolver Resolver
			var err error
			if tt.jsr {
				resolver, err = NewJSRNodeModulesResolver(filesystem, tt.rootDir)
			} else {
				resolver, err = NewNodeModulesResolver(filesystem, tt.rootDir)
			}
			if err != nil {
				t.Fatalf("failed to create resolver: %v", err)
			}

			rf, err := resolver.Resolve(tt.spec)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Resolve(%q) expected error containing %q", tt.spec, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Resolve(%q) error = %q, want to contain %q", tt.spec, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.spec, err)
			}
			if rf.Path != tt.want {
				t.Errorf("Resolve(%q) path = %q, want %q", tt.spec, rf.Path, tt.want)
			}
			if rf.Specifier != tt.spec {
				t.Errorf("Resolve(%q) specifier = %q, want the input", tt.spec, rf.Specifier)
			}
			wantKind := KindNPM
			if tt.jsr {
				wantKind = KindJSR
			}
			if rf.Kind != wantKind {
				t.Errorf("Resolve(%q) kind = %v, want %v", tt.spec, rf.Kind, wantKind)
			}
		})
	}
}

func TestResolverRequiresAbsoluteRoot(t *testing.T) {
	if _, err := NewNodeModulesResolver(mapfs.New(), "project"); err == nil {
		t.Error("NewNodeModulesResolver accepted a relative root")
	}
	if _, err := NewJSRNodeModulesResolver(mapfs.New(), "relative/root"); err == nil {
		t.Error("NewJSRNodeModulesResolver accepted a relative root")
	}
}

func TestCanResolve(t *testing.T) {
	filesystem := mapfs.New()
	npm, err := NewNodeModulesResolver(filesystem, "/project")
	if err != nil {
		t.Fatalf("failed to create npm resolver: %v", err)
	}
	jsr, err := NewJSRNodeModulesResolver(filesystem, "/project")
	if err != nil {
		t.Fatalf("failed to create jsr resolver: %v", err)
	}
	local := NewLocalResolver()
	chain := NewChainResolver(npm, jsr, local)

	tests := []struct {
		name     string
		resolver Resolver
		spec     string
		want     bool
	}{
		{name: "npm takes npm specs", resolver: npm, spec: "npm:pkg/file.json", want: true},
		{name: "npm skips jsr specs", resolver: npm, spec: "jsr:@scope/pkg/file.json", want: false},
		{name: "npm skips paths", resolver: npm, spec: "./local.json", want: false},
		{name: "jsr claims anything jsr-prefixed", resolver: jsr, spec: "jsr:pkg/file.json", want: true},
		{name: "jsr skips npm specs", resolver: jsr, spec: "npm:pkg/file.json", want: false},
		{name: "local takes paths", resolver: local, spec: "./tokens.json", want: true},
		{name: "local skips npm-prefixed strings", resolver: local, spec: "npm:pkg/file.json", want: false},
		{name: "local skips jsr-prefixed strings", resolver: local, spec: "jsr:pkg/file.json", want: false},
		{name: "chain takes package specs", resolver: chain, spec: "npm:pkg/file.json", want: true},
		{name: "chain takes paths", resolver: chain, spec: "./local.json", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resolver.CanResolve(tt.spec); got != tt.want {
				t.Errorf("CanResolve(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestChainResolverOrder(t *testing.T) {
	filesystem := nodeModulesFixture()

	npm, err := NewNodeModulesResolver(filesystem, "/project")
	if err != nil {
		t.Fatalf("failed to create npm resolver: %v", err)
	}
	jsr, err := NewJSRNodeModulesResolver(filesystem, "/project")
	if err != nil {
		t.Fatalf("failed to create jsr resolver: %v", err)
	}
	chain := NewChainResolver(npm, jsr, NewLocalResolver())

	tests := []struct {
		spec string
		kind Kind
		path string
	}{
		{spec: "npm:@acme/design-tokens/tokens.json", kind: KindNPM, path: "/project/node_modules/@acme/design-tokens/tokens.json"},
		{spec: "jsr:@acme/design-tokens/tokens.json", kind: KindJSR, path: "/project/node_modules/@jsr/acme__design-tokens/tokens.json"},
		{spec: "./local.json", kind: KindLocal, path: "./local.json"},
	}

	for _, tt := range tests {
		rf, err := chain.Resolve(tt.spec)
		if err != nil {
			t.Fatalf("Resolve(%q) unexpected error: %v", tt.spec, err)
		}
		if rf.Kind != tt.kind || rf.Path != tt.path {
			t.Errorf("Resolve(%q) = {Kind: %v, Path: %q}, want {Kind: %v, Path: %q}",
				tt.spec, rf.Kind, rf.Path, tt.kind, tt.path)
		}
	}
}

func TestDefaultResolverEndToEnd(t *testing.T) {
	filesystem := nodeModulesFixture()

	resolver, err := NewDefaultResolver(filesystem, "/project")
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}

	rf, err := resolver.Resolve("npm:@acme/design-tokens/tokens.json")
	if err != nil {
		t.Fatalf("npm resolution failed: %v", err)
	}
	if rf.Path != "/project/node_modules/@acme/design-tokens/tokens.json" {
		t.Errorf("npm path = %q", rf.Path)
	}

	rf, err = resolver.Resolve("jsr:@acme/design-tokens/tokens.json")
	if err != nil {
		t.Fatalf("jsr resolution failed: %v", err)
	}
	if rf.Path != "/project/node_modules/@jsr/acme__design-tokens/tokens.json" {
		t.Errorf("jsr path = %q", rf.Path)
	}
	if rf.Kind != KindJSR {
		t.Errorf("jsr kind = %v, want KindJSR", rf.Kind)
	}

	rf, err = resolver.Resolve("./tokens.json")
	if err != nil {
		t.Fatalf("local resolution failed: %v", err)
	}
	if rf.Path != "./tokens.json" {
		t.Errorf("local path = %q", rf.Path)
	}
}
