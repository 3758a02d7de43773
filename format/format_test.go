/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package format_test

import (
	"testing"

	"bennypowers.dev/mishtanim/format"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		path     string
		expected format.Format
	}{
		{
			name:     "css extension",
			content:  ":root { --x: 1; }",
			path:     "tokens.css",
			expected: format.CSS,
		},
		{
			name:     "html extension",
			content:  "<style>:root { --x: 1; }</style>",
			path:     "index.html",
			expected: format.HTML,
		},
		{
			name:     "htm extension",
			content:  "<style></style>",
			path:     "index.htm",
			expected: format.HTML,
		},
		{
			name:     "js extension",
			content:  "const css = `--x: 1;`",
			path:     "theme.js",
			expected: format.JS,
		},
		{
			name:     "typescript extension",
			content:  "const css = `--x: 1;`",
			path:     "theme.ts",
			expected: format.JS,
		},
		{
			name:     "php extension",
			content:  "<?php ?>",
			path:     "page.php",
			expected: format.PHP,
		},
		{
			name:     "extension matching ignores case",
			content:  ":root {}",
			path:     "TOKENS.CSS",
			expected: format.CSS,
		},
		{
			name:     "flat json by items array",
			content:  `{"title": "Brand", "items": [{"name": "x", "value": 1}]}`,
			path:     "tokens.json",
			expected: format.Flat,
		},
		{
			name:     "flat yaml by items array",
			content:  "title: Brand\nitems:\n  - name: x\n    value: 1\n",
			path:     "tokens.yaml",
			expected: format.Flat,
		},
		{
			name:     "flat jsonc with comments",
			content:  "{\n  // brand palette\n  \"items\": []\n}",
			path:     "tokens.jsonc",
			expected: format.Flat,
		},
		{
			name:     "dtcg by nested $value",
			content:  `{"color": {"primary": {"$value": "#FF0000"}}}`,
			path:     "tokens.json",
			expected: format.DTCG,
		},
		{
			name:     "dtcg in yaml",
			content:  "color:\n  primary:\n    $value: '#FF0000'\n",
			path:     "tokens.yaml",
			expected: format.DTCG,
		},
		{
			name:     "duck typing without extension",
			content:  `{"items": []}`,
			path:     "",
			expected: format.Flat,
		},
		{
			name:     "items wins over nested $value",
			content:  `{"items": [{"name": "$value", "value": 1}]}`,
			path:     "tokens.json",
			expected: format.Flat,
		},
		{
			name:     "plain object is unknown",
			content:  `{"hello": "world"}`,
			path:     "data.json",
			expected: format.Unknown,
		},
		{
			name:     "garbage is unknown",
			content:  "\x00\x01\x02",
			path:     "blob.bin",
			expected: format.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format.Detect([]byte(tt.content), tt.path); got != tt.expected {
				t.Errorf("Detect(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   format.Format
		expected string
	}{
		{format.Flat, "flat"},
		{format.DTCG, "dtcg"},
		{format.CSS, "css"},
		{format.HTML, "html"},
		{format.JS, "js"},
		{format.PHP, "php"},
		{format.Unknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.expected)
		}
	}
}
