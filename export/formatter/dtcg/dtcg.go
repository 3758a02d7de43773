/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package dtcg renders a token set as a nested DTCG document.
package dtcg

import (
	"encoding/json"
	"strings"

	"bennypowers.dev/mishtanim/export/formatter"
	"bennypowers.dev/mishtanim/token"
)

// Formatter outputs DTCG JSON with tokens grouped by name segments.
type Formatter struct{}

// New creates a new DTCG formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format nests tokens into groups by splitting names on the delimiter,
// the inverse of the flattening the DTCG reader performs. The set
// description becomes the root group's $description.
func (f *Formatter) Format(set *token.Set, opts formatter.Options) ([]byte, error) {
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = "-"
	}

	root := map[string]any{}
	if set.Description != "" {
		root["$description"] = set.Description
	}
	for _, item := range set.Items {
		name := formatter.ApplyPrefix(item.Name, opts.Prefix, delimiter)
		insert(root, strings.Split(name, delimiter), name, item.Value)
	}
	return json.MarshalIndent(root, "", "  ")
}

// insert places one token at its group path. Names that cannot nest
// cleanly (empty segments, or a path that collides with an existing
// token or group) stay flat under their full name.
func insert(root map[string]any, path []string, fullName string, value any) {
	for _, segment := range path {
		if segment == "" {
			root[fullName] = leaf(value)
			return
		}
	}

	current := root
	for _, segment := range path[:len(path)-1] {
		child, ok := current[segment]
		if !ok {
			group := map[string]any{}
			current[segment] = group
			current = group
			continue
		}
		group, ok := child.(map[string]any)
		if !ok || isToken(group) {
			root[fullName] = leaf(value)
			return
		}
		current = group
	}

	last := path[len(path)-1]
	if existing, ok := current[last].(map[string]any); ok && !isToken(existing) {
		root[fullName] = leaf(value)
		return
	}
	current[last] = leaf(value)
}

// leaf builds one DTCG token object. Hex strings carry $type color and
// numbers carry $type number; booleans and plain strings have no DTCG
// type and stay bare $values.
func leaf(value any) map[string]any {
	t := map[string]any{"$value": value}
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "#") {
			t["$type"] = "color"
		}
	case float64:
		t["$type"] = "number"
	}
	return t
}

func isToken(obj map[string]any) bool {
	_, ok := obj["$value"]
	return ok
}
