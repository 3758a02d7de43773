/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// AlphaThreshold is the value at or above which alpha is treated as
// fully opaque.
const AlphaThreshold = 0.999

// RGB is a color with components in the 0-1 range.
type RGB struct {
	R float64 `json:"r" msgpack:"r"`
	G float64 `json:"g" msgpack:"g"`
	B float64 `json:"b" msgpack:"b"`
}

// RGBA is a color with an alpha channel, components in the 0-1 range.
type RGBA struct {
	R float64 `json:"r" msgpack:"r"`
	G float64 `json:"g" msgpack:"g"`
	B float64 `json:"b" msgpack:"b"`
	A float64 `json:"a" msgpack:"a"`
}

// WithAlpha returns the color with the given alpha channel.
func (c RGB) WithAlpha(a float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Hex returns the #RRGGBB form of the color.
func (c RGB) Hex() string {
	r := clamp(int(c.R*255+0.5), 0, 255)
	g := clamp(int(c.G*255+0.5), 0, 255)
	b := clamp(int(c.B*255+0.5), 0, 255)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Hex returns the #RRGGBB form of the color, or #RRGGBBAA when the
// alpha channel is below AlphaThreshold.
func (c RGBA) Hex() string {
	hex := RGB{R: c.R, G: c.G, B: c.B}.Hex()
	if c.A >= AlphaThreshold {
		return hex
	}
	return fmt.Sprintf("%s%02X", hex, clamp(int(c.A*255+0.5), 0, 255))
}

// HexToRGB converts a hex color string to RGB components in the 0-1
// range. The leading "#" is optional; three-digit forms double each
// digit; matching is case-insensitive. Anything that is not exactly
// three or six hex digits returns an error wrapping ErrInvalidHex.
func HexToRGB(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	switch len(s) {
	case 3:
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		s = b.String()
	case 6:
		// Parsed below.
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return RGB{
		R: float64(v>>16&0xFF) / 255,
		G: float64(v>>8&0xFF) / 255,
		B: float64(v&0xFF) / 255,
	}, nil
}

// ParseColor parses a CSS color string. Hex strings go through
// HexToRGB; everything else (named colors, rgb(), hsl(), and friends)
// is handed to the CSS color parser.
func ParseColor(s string) (RGBA, error) {
	if strings.HasPrefix(s, "#") {
		rgb, err := HexToRGB(s)
		if err != nil {
			return RGBA{}, err
		}
		return rgb.WithAlpha(1), nil
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("failed to parse color %q: %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// clamp restricts a value to the given range.
func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
