/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package export

import (
	"fmt"
	"strings"

	"bennypowers.dev/mishtanim/export/formatter"
	"bennypowers.dev/mishtanim/export/formatter/css"
	"bennypowers.dev/mishtanim/export/formatter/dtcg"
	"bennypowers.dev/mishtanim/export/formatter/flatjson"
	"bennypowers.dev/mishtanim/token"
)

// Format represents an output format for token serialization.
type Format string

const (
	// FormatFlat outputs the flat {title, items} JSON document.
	FormatFlat Format = "flat"

	// FormatDTCG outputs a nested DTCG document.
	FormatDTCG Format = "dtcg"

	// FormatCSS outputs CSS custom properties with a :root selector.
	FormatCSS Format = "css"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatFlat),
		string(FormatDTCG),
		string(FormatCSS),
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "flat", "json", "":
		return FormatFlat, nil
	case "dtcg":
		return FormatDTCG, nil
	case "css":
		return FormatCSS, nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// Options configures token set serialization.
type Options struct {
	// Format selects the output format.
	Format Format

	// Prefix is added to output variable names.
	Prefix string

	// Delimiter separates name segments. Defaults to "-".
	Delimiter string
}

// FormatSet renders one token set in the requested format. Output
// always ends with a newline.
func FormatSet(set *token.Set, opts Options) ([]byte, error) {
	fmtOpts := formatter.Options{
		Prefix:    opts.Prefix,
		Delimiter: opts.Delimiter,
	}

	var f formatter.Formatter
	switch opts.Format {
	case FormatFlat, "":
		f = flatjson.New()
	case FormatDTCG:
		f = dtcg.New()
	case FormatCSS:
		f = css.New()
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}

	out, err := f.Format(set, fmtOpts)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

// Extension returns the conventional file extension for a format.
func (f Format) Extension() string {
	switch f {
	case FormatCSS:
		return ".css"
	default:
		return ".json"
	}
}
