/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser_test

import (
	"testing"

	"bennypowers.dev/mishtanim/parser"
	"bennypowers.dev/mishtanim/token"
	"github.com/google/go-cmp/cmp"
)

func TestParseCSS(t *testing.T) {
	data := []byte(`:root {
	--color-primary: #FF0000;
	--spacing-md: 8;
	--dark-mode: true;
	--font-stack: Inter, sans-serif;
	color: red;
}

.card {
	--elevation: 2;
	--color-primary: #00FF00;
}

@media (min-width: 600px) {
	.card {
		--wide: true;
	}
}
`)

	sets, err := parser.Parse(data, "theme.css", parser.Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("len(sets) = %d, want 1", len(sets))
	}

	set := sets[0]
	if set.Title != "Theme" {
		t.Errorf("Title = %q, want %q", set.Title, "Theme")
	}
	expected := []token.Token{
		{Name: "color-primary", Value: "#00FF00"},
		{Name: "spacing-md", Value: 8.0},
		{Name: "dark-mode", Value: true},
		{Name: "font-stack", Value: "Inter, sans-serif"},
		{Name: "elevation", Value: 2.0},
		{Name: "wide", Value: true},
	}
	if diff := cmp.Diff(expected, set.Items); diff != "" {
		t.Errorf("Parse() items mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSSValueEdges(t *testing.T) {
	data := []byte(`:root {
	--loud: red !important;
	--negative: -4;
	--fraction: .5;
	--unit: 8px;
}
`)

	sets, err := parser.Parse(data, "edges.css", parser.Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	expected := []token.Token{
		{Name: "loud", Value: "red"},
		{Name: "negative", Value: -4.0},
		{Name: "fraction", Value: 0.5},
		{Name: "unit", Value: "8px"},
	}
	if diff := cmp.Diff(expected, sets[0].Items); diff != "" {
		t.Errorf("Parse() items mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSSColorsOption(t *testing.T) {
	data := []byte(`:root {
	--brand: rebeccapurple;
	--border: 1px solid red;
}
`)

	sets, err := parser.Parse(data, "brand.css", parser.Options{CSSColors: true})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	expected := []token.Token{
		{Name: "brand", Value: "#663399"},
		{Name: "border", Value: "1px solid red"},
	}
	if diff := cmp.Diff(expected, sets[0].Items); diff != "" {
		t.Errorf("Parse() items mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSSEmpty(t *testing.T) {
	sets, err := parser.Parse([]byte(`.plain { color: red; }`), "plain.css", parser.Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("len(sets) = %d, want 1", len(sets))
	}
	if len(sets[0].Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(sets[0].Items))
	}
	if sets[0].Items == nil {
		t.Error("Items = nil, want empty slice")
	}
}
