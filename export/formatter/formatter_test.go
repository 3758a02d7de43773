/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package formatter_test

import (
	"testing"

	"bennypowers.dev/mishtanim/export/formatter"
)

func TestApplyPrefix(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		delimiter string
		want      string
	}{
		{"color-primary", "", "-", "color-primary"},
		{"color-primary", "brand", "-", "brand-color-primary"},
		{"primary", "brand", ".", "brand.primary"},
	}

	for _, tt := range tests {
		if got := formatter.ApplyPrefix(tt.name, tt.prefix, tt.delimiter); got != tt.want {
			t.Errorf("ApplyPrefix(%q, %q, %q) = %q, want %q",
				tt.name, tt.prefix, tt.delimiter, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{4.5, "4.5"},
		{0.5, "0.5"},
		{0, "0"},
		{-2.25, "-2.25"},
	}

	for _, tt := range tests {
		if got := formatter.FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "Inter", "Inter"},
		{"hex", "#FF0000", "#FF0000"},
		{"bool", true, "true"},
		{"float", 4.0, "4"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatter.FormatValue(tt.in); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
