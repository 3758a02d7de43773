/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		spec        string
		wantKind    Kind
		wantPackage string
		wantFile    string
	}{
		{
			name:        "npm scoped",
			spec:        "npm:@acme/design-tokens/brand.json",
			wantKind:    KindNPM,
			wantPackage: "@acme/design-tokens",
			wantFile:    "brand.json",
		},
		{
			name:        "npm unscoped",
			spec:        "npm:design-tokens/brand.yaml",
			wantKind:    KindNPM,
			wantPackage: "design-tokens",
			wantFile:    "brand.yaml",
		},
		{
			name:        "npm nested file path",
			spec:        "npm:@acme/design-tokens/dist/css/theme.css",
			wantKind:    KindNPM,
			wantPackage: "@acme/design-tokens",
			wantFile:    "dist/css/theme.css",
		},
		{
			name:        "npm versioned",
			spec:        "npm:@acme/design-tokens@2.1.0/brand.json",
			wantKind:    KindNPM,
			wantPackage: "@acme/design-tokens@2.1.0",
			wantFile:    "brand.json",
		},
		{
			name:        "npm package without file",
			spec:        "npm:@acme/design-tokens",
			wantKind:    KindNPM,
			wantPackage: "@acme/design-tokens",
			wantFile:    "",
		},
		{
			name:        "jsr scoped",
			spec:        "jsr:@acme/design-tokens/brand.json",
			wantKind:    KindJSR,
			wantPackage: "@acme/design-tokens",
			wantFile:    "brand.json",
		},
		{
			name:        "jsr package without file",
			spec:        "jsr:@acme/design-tokens",
			wantKind:    KindJSR,
			wantPackage: "@acme/design-tokens",
			wantFile:    "",
		},
		{
			// JSR packages are always scoped.
			name:     "jsr unscoped is a local path",
			spec:     "jsr:design-tokens/brand.json",
			wantKind: KindLocal,
			wantFile: "jsr:design-tokens/brand.json",
		},
		{
			name:     "bare npm prefix is a local path",
			spec:     "npm:",
			wantKind: KindLocal,
			wantFile: "npm:",
		},
		{
			name:     "relative path",
			spec:     "./tokens/brand.json",
			wantKind: KindLocal,
			wantFile: "./tokens/brand.json",
		},
		{
			name:     "bare relative path",
			spec:     "tokens/brand.json",
			wantKind: KindLocal,
			wantFile: "tokens/brand.json",
		},
		{
			name:     "absolute path",
			spec:     "/srv/tokens/brand.json",
			wantKind: KindLocal,
			wantFile: "/srv/tokens/brand.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.spec)
			if got.Kind != tt.wantKind {
				t.Errorf("Parse(%q).Kind = %v, want %v", tt.spec, got.Kind, tt.wantKind)
			}
			if got.Package != tt.wantPackage {
				t.Errorf("Parse(%q).Package = %q, want %q", tt.spec, got.Package, tt.wantPackage)
			}
			if got.File != tt.wantFile {
				t.Errorf("Parse(%q).File = %q, want %q", tt.spec, got.File, tt.wantFile)
			}
			if got.Raw != tt.spec {
				t.Errorf("Parse(%q).Raw = %q, want the input back", tt.spec, got.Raw)
			}
		})
	}
}

func TestIsPackageSpecifier(t *testing.T) {
	tests := []struct {
		spec string
		want bool
	}{
		{"npm:@acme/design-tokens/brand.json", true},
		{"npm:design-tokens/brand.json", true},
		{"jsr:@acme/design-tokens/brand.json", true},
		{"jsr:design-tokens/brand.json", false},
		{"./tokens/brand.json", false},
		{"/srv/tokens/brand.json", false},
		{"tokens/brand.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := IsPackageSpecifier(tt.spec); got != tt.want {
				t.Errorf("IsPackageSpecifier(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestKindPredicates(t *testing.T) {
	npm := Parse("npm:@acme/design-tokens/brand.json")
	jsr := Parse("jsr:@acme/design-tokens/brand.json")
	local := Parse("./brand.json")

	if !npm.IsNPM() || npm.IsJSR() || npm.IsLocal() {
		t.Errorf("npm specifier predicates wrong: IsNPM=%v IsJSR=%v IsLocal=%v", npm.IsNPM(), npm.IsJSR(), npm.IsLocal())
	}
	if !jsr.IsJSR() || jsr.IsNPM() || jsr.IsLocal() {
		t.Errorf("jsr specifier predicates wrong: IsNPM=%v IsJSR=%v IsLocal=%v", jsr.IsNPM(), jsr.IsJSR(), jsr.IsLocal())
	}
	if !local.IsLocal() || local.IsNPM() || local.IsJSR() {
		t.Errorf("local path predicates wrong: IsNPM=%v IsJSR=%v IsLocal=%v", local.IsNPM(), local.IsJSR(), local.IsLocal())
	}
}
