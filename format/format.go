/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package format detects token source formats.
package format

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat indicates content in no recognizable token format.
var ErrUnknownFormat = errors.New("unknown token format")

// Format represents a token source format.
type Format int

const (
	// Unknown represents an undetected or unrecognized format.
	Unknown Format = iota

	// Flat represents flat {title, items} documents in JSON, JSONC, or
	// YAML.
	Flat

	// DTCG represents nested DTCG documents with $value tokens.
	DTCG

	// CSS represents stylesheets declaring custom properties.
	CSS

	// HTML represents documents with embedded style elements.
	HTML

	// JS represents scripts with CSS-in-JS template literals.
	JS

	// PHP represents PHP sources with inline HTML.
	PHP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Flat:
		return "flat"
	case DTCG:
		return "dtcg"
	case CSS:
		return "css"
	case HTML:
		return "html"
	case JS:
		return "js"
	case PHP:
		return "php"
	default:
		return "unknown"
	}
}

// Detect determines the source format of content.
// Priority order:
//  1. File extension, when it is unambiguous
//  2. Duck typing for the JSON/YAML family: a root items array means a
//     flat document, a nested $value means DTCG
func Detect(content []byte, path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return CSS
	case ".html", ".htm":
		return HTML
	case ".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx":
		return JS
	case ".php":
		return PHP
	}
	return duckType(content)
}

// duckType inspects JSON/YAML-family content for format markers.
func duckType(content []byte) Format {
	if isLikelyJSON(content) {
		content = jsonc.ToJSON(content)
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return Unknown
	}
	if _, ok := data["items"].([]any); ok {
		return Flat
	}
	if hasFeature(data, "$value") {
		return DTCG
	}
	return Unknown
}

// isLikelyJSON reports whether content reads as JSON rather than YAML.
func isLikelyJSON(content []byte) bool {
	trimmed := strings.TrimLeft(string(content), " \t\r\n")
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// hasFeature checks if a field name exists anywhere in the structure.
func hasFeature(data map[string]any, featureName string) bool {
	if _, exists := data[featureName]; exists {
		return true
	}
	for _, value := range data {
		switch v := value.(type) {
		case map[string]any:
			if hasFeature(v, featureName) {
				return true
			}
		case []any:
			if hasFeatureInSlice(v, featureName) {
				return true
			}
		}
	}
	return false
}

// hasFeatureInSlice recursively checks for a feature in slice elements.
func hasFeatureInSlice(arr []any, featureName string) bool {
	for _, elem := range arr {
		switch v := elem.(type) {
		case map[string]any:
			if hasFeature(v, featureName) {
				return true
			}
		case []any:
			if hasFeatureInSlice(v, featureName) {
				return true
			}
		}
	}
	return false
}
