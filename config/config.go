/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for token imports.
package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/mishtanim/parser"
)

// Config represents the import configuration.
type Config struct {
	// FileKey is the design file to import into.
	FileKey string `yaml:"fileKey" json:"fileKey" toml:"fileKey"`

	// Collection overrides the collection title for every file.
	Collection string `yaml:"collection" json:"collection" toml:"collection"`

	// CSSColors allows non-hex CSS color strings to import as colors.
	CSSColors bool `yaml:"cssColors" json:"cssColors" toml:"cssColors"`

	// CDN selects the CDN provider for package-specifier fallback
	// fetches (unpkg, esm.sh, esm.run, jspm, jsdelivr).
	CDN string `yaml:"cdn" json:"cdn" toml:"cdn"`

	// Files specifies token files to load (paths, globs, or package
	// specifiers).
	Files []FileSpec `yaml:"files" json:"files" toml:"files"`
}

// FileSpec represents a token file specification.
// It can be specified as a simple string path or as an object with
// overrides.
type FileSpec struct {
	// Path is the file path (supports globs and npm:/jsr: specifiers).
	Path string `yaml:"path" json:"path" toml:"path"`

	// Collection overrides the collection title for this file.
	Collection string `yaml:"collection" json:"collection" toml:"collection"`
}

// UnmarshalYAML handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}

	type rawFileSpec FileSpec
	return node.Decode((*rawFileSpec)(f))
}

// UnmarshalJSON handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	type rawFileSpec FileSpec
	return json.Unmarshal(data, (*rawFileSpec)(f))
}

// UnmarshalTOML handles both string and table forms for FileSpec.
func (f *FileSpec) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		f.Path = v
		return nil
	case map[string]any:
		if path, ok := v["path"].(string); ok {
			f.Path = path
		}
		if collection, ok := v["collection"].(string); ok {
			f.Collection = collection
		}
		return nil
	default:
		return fmt.Errorf("file spec must be a string or a table, got %T", data)
	}
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{}
}

// OptionsFor returns parser options for one expanded file.
// File-level overrides take precedence over the global config.
func (c *Config) OptionsFor(file ExpandedFile) parser.Options {
	opts := parser.Options{
		Title:     c.Collection,
		CSSColors: c.CSSColors,
	}
	if file.Spec.Collection != "" {
		opts.Title = file.Spec.Collection
	}
	return opts
}
