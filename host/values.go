/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package host

// FloatValue converts any numeric kind to float64.
func FloatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// ColorValue normalizes the color shapes a backend can hand back: RGB
// and RGBA values, and the {r, g, b} component maps wire formats and
// caches produce.
func ColorValue(value any) (RGBA, bool) {
	switch v := value.(type) {
	case RGB:
		return v.WithAlpha(1), true
	case RGBA:
		return v, true
	case map[string]any:
		r, rok := FloatValue(v["r"])
		g, gok := FloatValue(v["g"])
		b, bok := FloatValue(v["b"])
		if !rok || !gok || !bok {
			return RGBA{}, false
		}
		a := 1.0
		if raw, ok := v["a"]; ok {
			if f, ok := FloatValue(raw); ok {
				a = f
			}
		}
		return RGBA{R: r, G: g, B: b, A: a}, true
	default:
		return RGBA{}, false
	}
}
