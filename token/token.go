/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides design token set types.
package token

import (
	"errors"
	"strings"
)

// Parse errors.
var (
	// ErrMissingTitle indicates a token set without a title.
	ErrMissingTitle = errors.New("token set has no title")

	// ErrMissingItems indicates a token set without an items list.
	ErrMissingItems = errors.New("token set has no items")
)

// Token is a single named design token.
type Token struct {
	// Name is the token's identifier (e.g., "color-primary").
	Name string `json:"name" yaml:"name"`

	// Value is the token's value: a string, a float64, or a bool.
	Value any `json:"value" yaml:"value"`
}

// Set is a named group of tokens imported as a unit.
type Set struct {
	// Title names the set and the variable collection it imports into.
	Title string `json:"title" yaml:"title"`

	// Description is optional documentation for the set.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Items are the tokens in the set, in source order.
	Items []Token `json:"items" yaml:"items"`
}

// Validate reports whether the set is well formed enough to import.
// A set needs a non-empty title and a non-nil items list; an empty
// items list is valid and imports nothing.
func (s *Set) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrMissingTitle
	}
	if s.Items == nil {
		return ErrMissingItems
	}
	return nil
}

// SanitizeName strips every rune a variable name cannot carry, keeping
// letters, digits, spaces, hyphens, and underscores, then trims
// surrounding whitespace. The empty string means the name had nothing
// usable in it.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
