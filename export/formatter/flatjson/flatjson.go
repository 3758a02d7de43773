/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package flatjson renders a token set as a flat {title, items} document.
package flatjson

import (
	"encoding/json"

	"bennypowers.dev/mishtanim/export/formatter"
	"bennypowers.dev/mishtanim/token"
)

// Formatter outputs the flat token set document.
type Formatter struct{}

// New creates a new flat JSON formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format renders the set as the flat document the import side reads,
// so pulled files can round-trip back through an import.
func (f *Formatter) Format(set *token.Set, opts formatter.Options) ([]byte, error) {
	out := &token.Set{
		Title:       set.Title,
		Description: set.Description,
		Items:       make([]token.Token, 0, len(set.Items)),
	}
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = "-"
	}
	for _, item := range set.Items {
		out.Items = append(out.Items, token.Token{
			Name:  formatter.ApplyPrefix(item.Name, opts.Prefix, delimiter),
			Value: item.Value,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
