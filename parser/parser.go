/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser turns token source files into token sets.
//
// Supported sources: flat {title, items} documents (JSON, JSONC, YAML),
// nested DTCG documents, CSS stylesheets, and CSS embedded in HTML,
// JavaScript, and PHP files. Format detection lives in the format
// package; each source file yields one token set.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/mishtanim/format"
	"bennypowers.dev/mishtanim/fs"
	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options configures token parsing.
type Options struct {
	// Title overrides the set title derived from the document or the
	// file name.
	Title string

	// Description overrides the set description.
	Description string

	// CSSColors rewrites string values that parse as CSS colors
	// ("rebeccapurple", "rgb(0 128 255)") to their hex form so they
	// import as colors. Hex strings pass through untouched.
	CSSColors bool
}

// Parse parses token source data and returns the token sets it contains.
// The path supplies format detection hints and the default set title; it
// may be empty when the data came from somewhere other than a file.
func Parse(data []byte, path string, opts Options) ([]*token.Set, error) {
	var (
		sets []*token.Set
		err  error
	)
	switch format.Detect(data, path) {
	case format.Flat:
		sets, err = parseFlat(data)
	case format.DTCG:
		sets, err = parseDTCG(data)
	case format.CSS:
		sets, err = parseCSS(data)
	case format.HTML:
		sets, err = parseHTML(data)
	case format.JS:
		sets, err = parseJS(data)
	case format.PHP:
		sets, err = parsePHP(data)
	default:
		return nil, fmt.Errorf("%s: %w", path, format.ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		applyOptions(set, path, opts)
	}
	return sets, nil
}

// ParseFile reads a token file and parses it.
func ParseFile(filesystem fs.FileSystem, path string, opts Options) ([]*token.Set, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	sets, err := Parse(data, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	return sets, nil
}

// TitleFromPath derives a set title from a file name.
// "brand-colors.tokens.json" becomes "Brand Colors Tokens".
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	caser := cases.Title(language.English)
	return caser.String(base)
}

// applyOptions fills in the title and description, preferring explicit
// options over document values over path derivation.
func applyOptions(set *token.Set, path string, opts Options) {
	if opts.Title != "" {
		set.Title = opts.Title
	} else if set.Title == "" {
		set.Title = TitleFromPath(path)
	}
	if opts.Description != "" {
		set.Description = opts.Description
	}
	if opts.CSSColors {
		for i, item := range set.Items {
			set.Items[i].Value = normalizeCSSColor(item.Value)
		}
	}
	if set.Items == nil {
		set.Items = []token.Token{}
	}
}

// normalizeCSSColor rewrites a recognized CSS color string to hex.
// Hex strings keep their original spelling, and translucent colors stay
// strings because the color pipeline carries opaque hex only.
func normalizeCSSColor(value any) any {
	s, ok := value.(string)
	if !ok || s == "" || strings.HasPrefix(s, "#") {
		return value
	}
	rgba, err := host.ParseColor(s)
	if err != nil || rgba.A < host.AlphaThreshold {
		return value
	}
	return rgba.Hex()
}
