/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package formatter provides the interface and common utilities for token set formatters.
package formatter

import (
	"fmt"
	"strconv"

	"bennypowers.dev/mishtanim/token"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format renders a token set in the target format.
	Format(set *token.Set, opts Options) ([]byte, error)
}

// Options configures formatter behavior.
type Options struct {
	// Prefix is added to output variable names.
	Prefix string

	// Delimiter separates name segments when a format nests or joins
	// them. Zero value is empty string; consuming code should set "-"
	// if needed.
	Delimiter string
}

// ApplyPrefix adds a prefix to a name with the given delimiter.
func ApplyPrefix(name, prefix, delimiter string) string {
	if prefix == "" {
		return name
	}
	return prefix + delimiter + name
}

// FormatNumber renders a float without trailing zeros, so 4.0 prints
// as "4" and 0.5 stays "0.5".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatValue renders a token value as display text.
func FormatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return FormatNumber(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
