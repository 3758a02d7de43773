/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/mishtanim/token"
	ts "github.com/tree-sitter/go-tree-sitter"
	ts_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// parseCSS harvests custom property declarations from a stylesheet.
func parseCSS(data []byte) ([]*token.Set, error) {
	h := newHarvest()
	if err := h.sheet(data); err != nil {
		return nil, err
	}
	return []*token.Set{h.set()}, nil
}

// harvest accumulates custom property declarations. A later declaration
// of a name already seen overrides the earlier value in place, matching
// the cascade.
type harvest struct {
	items []token.Token
	index map[string]int
}

func newHarvest() *harvest {
	return &harvest{index: map[string]int{}}
}

// add records a declaration. Names and string values that carry an
// interpolation sentinel are unusable and dropped.
func (h *harvest) add(name string, value any) {
	if strings.Contains(name, interpolated) {
		return
	}
	if s, ok := value.(string); ok && strings.Contains(s, interpolated) {
		return
	}
	if i, ok := h.index[name]; ok {
		h.items[i].Value = value
		return
	}
	h.index[name] = len(h.items)
	h.items = append(h.items, token.Token{Name: name, Value: value})
}

// set returns the harvested declarations as a token set.
func (h *harvest) set() *token.Set {
	items := h.items
	if items == nil {
		items = []token.Token{}
	}
	return &token.Set{Items: items}
}

// sheet parses a stylesheet and collects every custom property
// declaration it contains, at any nesting depth.
func (h *harvest) sheet(src []byte) error {
	parser := ts.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(ts.NewLanguage(ts_css.Language())); err != nil {
		return fmt.Errorf("failed to load CSS grammar: %w", err)
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()
	h.collectDeclarations(tree.RootNode(), src)
	return nil
}

func (h *harvest) collectDeclarations(node *ts.Node, src []byte) {
	if node == nil {
		return
	}
	if node.Kind() == "declaration" {
		if name, value, ok := customProperty(node, src); ok {
			h.add(name, value)
		}
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		h.collectDeclarations(node.Child(i), src)
	}
}

// customProperty extracts a --name: value pair from a declaration node.
// The name keeps its spelling minus the leading dashes; the value is
// everything after the colon, without the terminator or priority.
func customProperty(node *ts.Node, src []byte) (string, any, bool) {
	prop := node.NamedChild(0)
	if prop == nil || prop.Kind() != "property_name" {
		return "", nil, false
	}
	name := prop.Utf8Text(src)
	if !strings.HasPrefix(name, "--") {
		return "", nil, false
	}
	text := node.Utf8Text(src)
	colon := strings.Index(text, ":")
	if colon < 0 {
		return "", nil, false
	}
	raw := strings.TrimSpace(text[colon+1:])
	raw = strings.TrimSpace(strings.TrimSuffix(raw, ";"))
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "!important"))
	if raw == "" {
		return "", nil, false
	}
	return strings.TrimPrefix(name, "--"), typeValue(raw), true
}

// typeValue types a harvested value. Unitless numbers become floats and
// boolean words become bools; everything else, hex colors included,
// stays a string.
func typeValue(raw string) any {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}
