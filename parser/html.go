/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"

	"bennypowers.dev/mishtanim/token"
	ts "github.com/tree-sitter/go-tree-sitter"
	ts_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// parseHTML harvests custom properties from the style elements of an
// HTML document.
func parseHTML(data []byte) ([]*token.Set, error) {
	h := newHarvest()
	if err := h.html(data); err != nil {
		return nil, err
	}
	return []*token.Set{h.set()}, nil
}

// html feeds the raw text of each style element to the CSS harvester.
func (h *harvest) html(src []byte) error {
	parser := ts.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(ts.NewLanguage(ts_html.Language())); err != nil {
		return fmt.Errorf("failed to load HTML grammar: %w", err)
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return fmt.Errorf("failed to parse HTML")
	}
	defer tree.Close()

	var sheets [][]byte
	collectStyleSheets(tree.RootNode(), src, &sheets)
	for _, sheet := range sheets {
		if err := h.sheet(sheet); err != nil {
			return err
		}
	}
	return nil
}

func collectStyleSheets(node *ts.Node, src []byte, sheets *[][]byte) {
	if node == nil {
		return
	}
	if node.Kind() == "style_element" {
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child != nil && child.Kind() == "raw_text" {
				*sheets = append(*sheets, []byte(child.Utf8Text(src)))
			}
		}
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		collectStyleSheets(node.Child(i), src, sheets)
	}
}
