/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package css renders a token set as CSS custom properties.
package css

import (
	"fmt"
	"strings"

	"bennypowers.dev/mishtanim/export/formatter"
	"bennypowers.dev/mishtanim/token"
)

// Formatter outputs a :root rule declaring one custom property per token.
type Formatter struct{}

// New creates a new CSS formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format renders the set as a stylesheet the CSS reader can harvest
// back. The set description becomes a leading comment.
func (f *Formatter) Format(set *token.Set, opts formatter.Options) ([]byte, error) {
	var sb strings.Builder
	if set.Description != "" {
		fmt.Fprintf(&sb, "/* %s */\n", set.Description)
	}
	sb.WriteString(":root {\n")
	for _, item := range set.Items {
		fmt.Fprintf(&sb, "  %s: %s;\n",
			PropertyName(item.Name, opts.Prefix),
			formatter.FormatValue(item.Value))
	}
	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

// PropertyName converts a variable name to a CSS custom property name.
// Spaces become hyphens; "color primary" with prefix "brand" becomes
// "--brand-color-primary".
func PropertyName(name, prefix string) string {
	name = strings.Join(strings.Fields(name), "-")
	if prefix != "" {
		return "--" + prefix + "-" + name
	}
	return "--" + name
}
