/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"strings"

	"bennypowers.dev/mishtanim/token"
	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// interpolated stands in for template substitutions whose value cannot
// be known statically. Declarations that end up containing it are
// dropped by the harvester.
const interpolated = "\x00"

// parseJS harvests custom properties from CSS-in-JS template literals.
func parseJS(data []byte) ([]*token.Set, error) {
	h := newHarvest()
	if err := h.js(data); err != nil {
		return nil, err
	}
	return []*token.Set{h.set()}, nil
}

// js feeds template literals that declare custom properties to the CSS
// harvester. Bare declaration lists are wrapped in a synthetic rule so
// the CSS grammar accepts them.
func (h *harvest) js(src []byte) error {
	parser := ts.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(ts.NewLanguage(ts_javascript.Language())); err != nil {
		return fmt.Errorf("failed to load JavaScript grammar: %w", err)
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return fmt.Errorf("failed to parse JavaScript")
	}
	defer tree.Close()

	var blocks []string
	collectTemplateCSS(tree.RootNode(), src, &blocks)
	for _, block := range blocks {
		if !strings.Contains(block, "{") {
			block = ":root {" + block + "}"
		}
		if err := h.sheet([]byte(block)); err != nil {
			return err
		}
	}
	return nil
}

func collectTemplateCSS(node *ts.Node, src []byte, blocks *[]string) {
	if node == nil {
		return
	}
	if node.Kind() == "template_string" {
		var sb strings.Builder
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "string_fragment":
				sb.WriteString(child.Utf8Text(src))
			case "template_substitution":
				sb.WriteString(interpolated)
			}
		}
		if text := sb.String(); strings.Contains(text, "--") {
			*blocks = append(*blocks, text)
		}
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		collectTemplateCSS(node.Child(i), src, blocks)
	}
}
