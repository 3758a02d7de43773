/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package host_test

import (
	"testing"

	"bennypowers.dev/mishtanim/host"
)

func TestTypeForValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected host.VariableType
		wantErr  bool
	}{
		{
			name:     "hex string is a color",
			value:    "#FF0000",
			expected: host.TypeColor,
		},
		{
			name:     "hash prefix alone decides color",
			value:    "#not-actually-hex",
			expected: host.TypeColor,
		},
		{
			name:     "plain string",
			value:    "hello",
			expected: host.TypeString,
		},
		{
			name:     "dimension string stays a string",
			value:    "16px",
			expected: host.TypeString,
		},
		{
			name:     "numeric string stays a string",
			value:    "42",
			expected: host.TypeString,
		},
		{
			name:     "float64",
			value:    8.5,
			expected: host.TypeFloat,
		},
		{
			name:     "int",
			value:    3,
			expected: host.TypeFloat,
		},
		{
			name:     "uint8",
			value:    uint8(2),
			expected: host.TypeFloat,
		},
		{
			name:     "bool",
			value:    true,
			expected: host.TypeBoolean,
		},
		{
			name:    "nil has no type",
			value:   nil,
			wantErr: true,
		},
		{
			name:    "slice has no type",
			value:   []string{"a"},
			wantErr: true,
		},
		{
			name:    "map has no type",
			value:   map[string]any{"r": 1.0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := host.TypeForValue(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("TypeForValue(%v) error = nil, want error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("TypeForValue(%v) unexpected error: %v", tt.value, err)
			}
			if got != tt.expected {
				t.Errorf("TypeForValue(%v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestParseVariableType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected host.VariableType
		wantErr  bool
	}{
		{name: "uppercase color", input: "COLOR", expected: host.TypeColor},
		{name: "lowercase color", input: "color", expected: host.TypeColor},
		{name: "mixed case boolean", input: "Boolean", expected: host.TypeBoolean},
		{name: "float", input: "float", expected: host.TypeFloat},
		{name: "string", input: "STRING", expected: host.TypeString},
		{name: "unknown", input: "banana", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := host.ParseVariableType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVariableType(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVariableType(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseVariableType(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
