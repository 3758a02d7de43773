/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier parses npm: and jsr: package specifiers and
// resolves them to files in node_modules or to CDN URLs.
package specifier

import (
	"regexp"
	"strings"
)

// Kind says how a specifier addresses its file.
type Kind int

const (
	// KindLocal is a plain file path.
	KindLocal Kind = iota
	// KindNPM addresses a file inside an npm package.
	KindNPM
	// KindJSR addresses a file inside a jsr package.
	KindJSR
)

// Specifier is one parsed input specifier.
type Specifier struct {
	Kind Kind

	// Package is the bare or scoped package name; empty for local paths.
	Package string

	// File is the path within the package, or the whole local path.
	File string

	// Raw is the specifier as given.
	Raw string
}

// npm allows bare and scoped names. jsr packages are always scoped,
// per JSR's naming rules, so an unscoped jsr: string matches nothing
// and falls through to a local path.
var packagePatterns = []struct {
	kind    Kind
	pattern *regexp.Regexp
}{
	{KindNPM, regexp.MustCompile(`^npm:(@[^/]+/[^/]+|[^/]+)(/.*)?$`)},
	{KindJSR, regexp.MustCompile(`^jsr:(@[^/]+/[^/]+)(/.*)?$`)},
}

// Parse classifies a specifier string. Anything that matches no
// package pattern, malformed npm:/jsr: strings included, comes back
// as a local path.
func Parse(spec string) *Specifier {
	for _, p := range packagePatterns {
		m := p.pattern.FindStringSubmatch(spec)
		if m == nil {
			continue
		}
		return &Specifier{
			Kind:    p.kind,
			Package: m[1],
			File:    strings.TrimPrefix(m[2], "/"),
			Raw:     spec,
		}
	}
	return &Specifier{Kind: KindLocal, File: spec, Raw: spec}
}

// IsPackageSpecifier reports whether the string parses as an npm or
// jsr specifier.
func IsPackageSpecifier(spec string) bool {
	kind := Parse(spec).Kind
	return kind == KindNPM || kind == KindJSR
}

// IsNPM reports whether this is an npm specifier.
func (s *Specifier) IsNPM() bool {
	return s.Kind == KindNPM
}

// IsJSR reports whether this is a jsr specifier.
func (s *Specifier) IsJSR() bool {
	return s.Kind == KindJSR
}

// IsLocal reports whether this is a local file path.
func (s *Specifier) IsLocal() bool {
	return s.Kind == KindLocal
}
