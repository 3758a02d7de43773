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
	ts_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// parsePHP harvests custom properties from the inline HTML sections of
// a PHP file.
func parsePHP(data []byte) ([]*token.Set, error) {
	h := newHarvest()
	if err := h.php(data); err != nil {
		return nil, err
	}
	return []*token.Set{h.set()}, nil
}

// php concatenates inline HTML text sections and feeds them to the
// HTML harvester. PHP output between sections is not evaluated.
func (h *harvest) php(src []byte) error {
	parser := ts.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(ts.NewLanguage(ts_php.LanguagePHP())); err != nil {
		return fmt.Errorf("failed to load PHP grammar: %w", err)
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return fmt.Errorf("failed to parse PHP")
	}
	defer tree.Close()

	var sb strings.Builder
	collectInlineHTML(tree.RootNode(), src, &sb)
	if sb.Len() == 0 {
		return nil
	}
	return h.html([]byte(sb.String()))
}

func collectInlineHTML(node *ts.Node, src []byte, sb *strings.Builder) {
	if node == nil {
		return
	}
	if node.Kind() == "text" {
		sb.WriteString(node.Utf8Text(src))
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		collectInlineHTML(node.Child(i), src, sb)
	}
}
