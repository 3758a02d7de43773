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

func TestParseHTML(t *testing.T) {
	data := []byte(`<!DOCTYPE html>
<html>
<head>
	<style>
		:root { --color-primary: #FF0000; }
	</style>
</head>
<body>
	<style>
		.theme { --spacing: 4; }
	</style>
	<p>--not-a-token: 9;</p>
</body>
</html>
`)

	sets, err := parser.Parse(data, "page.html", parser.Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	set := sets[0]
	if set.Title != "Page" {
		t.Errorf("Title = %q, want %q", set.Title, "Page")
	}
	expected := []token.Token{
		{Name: "color-primary", Value: "#FF0000"},
		{Name: "spacing", Value: 4.0},
	}
	if diff := cmp.Diff(expected, set.Items); diff != "" {
		t.Errorf("Parse() items mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHTMLWithoutStyles(t *testing.T) {
	sets, err := parser.Parse([]byte(`<p>hello</p>`), "hello.html", parser.Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(sets[0].Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(sets[0].Items))
	}
}
