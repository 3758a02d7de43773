/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render provides shared rendering functions for CLI output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"bennypowers.dev/mishtanim/export/formatter"
	"bennypowers.dev/mishtanim/host"
)

// maxValueWidth caps the value column in table output. Long string
// values (font stacks, shadows) truncate with an ellipsis.
const maxValueWidth = 60

// Row holds computed display values for a single variable.
type Row struct {
	Name    string    // Variable name
	Type    string    // Variable type, lowercased
	Value   string    // Display value from the default mode, "-" when unset
	IsColor bool      // Whether Value is a renderable color
	Color   host.RGBA // The color, when IsColor
}

// Section is one collection's display block.
type Section struct {
	Collection  string
	Description string
	Rows        []Row
}

// VariableRows transforms a collection's variables into display rows.
// Values come from the collection's default mode.
func VariableRows(collection *host.Collection, variables []*host.Variable) []Row {
	rows := make([]Row, 0, len(variables))
	for _, v := range variables {
		row := Row{
			Name:  v.Name,
			Type:  strings.ToLower(string(v.Type)),
			Value: "-",
		}
		if row.Type == "" {
			row.Type = "-"
		}
		if raw, ok := v.ValuesByMode[collection.DefaultModeID]; ok {
			switch v.Type {
			case host.TypeColor:
				if c, ok := host.ColorValue(raw); ok {
					row.Value = c.Hex()
					row.IsColor = true
					row.Color = c
				}
			case host.TypeFloat:
				if f, ok := host.FloatValue(raw); ok {
					row.Value = formatter.FormatNumber(f)
				}
			default:
				row.Value = formatter.FormatValue(raw)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ColumnWidths calculates the max display width needed for each column.
func ColumnWidths(rows []Row) (name, typ, val int) {
	name, typ, val = 4, 4, 5 // minimums for headers
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Name); w > name {
			name = w
		}
		if w := runewidth.StringWidth(r.Type); w > typ {
			typ = w
		}
		if w := runewidth.StringWidth(r.Value); w > val {
			val = w
		}
	}
	return name, typ, val
}

// DisplayValue renders a raw variable value the way the CLI shows it:
// colors as hex, numbers without a trailing ".0", everything else as
// its plain string form.
func DisplayValue(v any) string {
	if c, ok := host.ColorValue(v); ok {
		return c.Hex()
	}
	if f, ok := host.FloatValue(v); ok {
		return formatter.FormatNumber(f)
	}
	return formatter.FormatValue(v)
}

// ColorSwatch returns the color's hex value on a 24-bit ANSI block of
// the color itself, with black or white text picked by perceptual
// lightness. Returns the bare hex when color output is disabled.
func ColorSwatch(c host.RGBA) string {
	hex := c.Hex()
	if color.NoColor {
		return hex
	}
	fg := "38;2;255;255;255"
	if l, _, _ := (colorful.Color{R: c.R, G: c.G, B: c.B}).Lab(); l > 0.5 {
		fg = "38;2;0;0;0"
	}
	r, g, b := uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5)
	return fmt.Sprintf("\x1b[%s;48;2;%d;%d;%dm %s \x1b[0m", fg, r, g, b, hex)
}

// Table renders sections as aligned plain-text blocks. The value sits
// in the last column so swatch escape codes never skew alignment.
func Table(w io.Writer, sections []Section) {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d variables)\n", s.Collection, len(s.Rows))
		nameW, typeW, _ := ColumnWidths(s.Rows)
		for _, r := range s.Rows {
			value := r.Value
			if r.IsColor {
				value = ColorSwatch(r.Color)
			} else if runewidth.StringWidth(value) > maxValueWidth {
				value = runewidth.Truncate(value, maxValueWidth, "...")
			}
			fmt.Fprintf(w, "  %-*s  %-*s  %s\n", nameW, r.Name, typeW, r.Type, value)
		}
	}
}

// Markdown renders sections as markdown tables, one heading per
// collection.
func Markdown(w io.Writer, sections []Section) {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "## %s\n\n", s.Collection)
		if s.Description != "" {
			fmt.Fprintf(w, "%s\n\n", s.Description)
		}
		nameW, typeW, valW := ColumnWidths(s.Rows)
		fmt.Fprintf(w, "| %-*s | %-*s | %-*s |\n", nameW, "Name", typeW, "Type", valW, "Value")
		fmt.Fprintf(w, "|-%s-|-%s-|-%s-|\n",
			strings.Repeat("-", nameW), strings.Repeat("-", typeW), strings.Repeat("-", valW))
		for _, r := range s.Rows {
			fmt.Fprintf(w, "| %-*s | %-*s | %-*s |\n", nameW, r.Name, typeW, r.Type, valW, r.Value)
		}
	}
}

// Names renders just the collection names, one per line.
func Names(w io.Writer, sections []Section) {
	for _, s := range sections {
		fmt.Fprintln(w, s.Collection)
	}
}

// JSONVariable is one variable in machine-readable listings.
type JSONVariable struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value,omitempty"`
}

// JSONCollection is one collection in machine-readable listings.
type JSONCollection struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Modes       []string       `json:"modes"`
	Variables   []JSONVariable `json:"variables"`
}

// CollectionJSON converts one collection for machine-readable output.
// Values come from the default mode, colors as hex strings.
func CollectionJSON(c *host.Collection, variables []*host.Variable) JSONCollection {
	modes := make([]string, 0, len(c.Modes))
	for _, m := range c.Modes {
		modes = append(modes, m.Name)
	}
	out := JSONCollection{
		Name:        c.Name,
		Description: c.Description,
		Modes:       modes,
		Variables:   make([]JSONVariable, 0, len(variables)),
	}
	for _, v := range variables {
		jv := JSONVariable{Name: v.Name, Type: string(v.Type)}
		if raw, ok := v.ValuesByMode[c.DefaultModeID]; ok {
			if col, isColor := host.ColorValue(raw); isColor {
				jv.Value = col.Hex()
			} else {
				jv.Value = raw
			}
		}
		out.Variables = append(out.Variables, jv)
	}
	return out
}
