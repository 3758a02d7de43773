/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/resolver"
	"bennypowers.dev/mishtanim/token"
)

// parseDTCG flattens a nested DTCG document into one token set.
// Group nesting joins names with dashes, group $type is inherited by
// descendants, and whole-value aliases resolve through the reference
// graph. The root group's $description becomes the set description.
func parseDTCG(data []byte) ([]*token.Set, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	set := &token.Set{Items: []token.Token{}}
	if desc, ok := raw["$description"].(string); ok {
		set.Description = desc
	}

	values := map[string]any{}
	var order []string
	collectGroup(raw, "", "", values, &order)

	resolved, err := resolver.Resolve(values)
	if err != nil {
		return nil, err
	}
	for _, name := range order {
		set.Items = append(set.Items, token.Token{Name: name, Value: resolved[name]})
	}
	return []*token.Set{set}, nil
}

// collectGroup walks DTCG groups depth first. Keys are visited in
// sorted order for deterministic output.
func collectGroup(group map[string]any, path, inheritedType string, values map[string]any, order *[]string) {
	currentType := inheritedType
	if groupType, ok := group["$type"].(string); ok {
		currentType = groupType
	}

	keys := make([]string, 0, len(group))
	for k := range group {
		if strings.HasPrefix(k, "$") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		valueMap, ok := group[key].(map[string]any)
		if !ok {
			continue
		}
		name := key
		if path != "" {
			name = path + "-" + key
		}
		if value, hasValue := valueMap["$value"]; hasValue {
			typ := currentType
			if t, ok := valueMap["$type"].(string); ok {
				typ = t
			}
			if _, seen := values[name]; !seen {
				*order = append(*order, name)
			}
			values[name] = typedValue(value, typ)
			continue
		}
		collectGroup(valueMap, name, currentType, values, order)
	}
}

// typedValue converts a DTCG token value to the type the host carries.
// Alias strings pass through untouched so the resolver can follow them.
func typedValue(value any, typ string) any {
	if s, ok := value.(string); ok {
		if _, isAlias := token.AliasPath(s); isAlias {
			return s
		}
	}
	switch typ {
	case "color":
		if obj, ok := value.(map[string]any); ok {
			return colorValue(obj)
		}
		return value
	case "dimension":
		return dimensionValue(value)
	case "number":
		return numberValue(value)
	default:
		return value
	}
}

// colorValue renders a structured DTCG color as a string. Opaque sRGB
// colors become hex so they import as colors; everything else falls
// back to a CSS color string.
func colorValue(obj map[string]any) any {
	if hex, ok := obj["hex"].(string); ok && hex != "" {
		return hex
	}
	space, _ := obj["colorSpace"].(string)
	components, _ := obj["components"].([]any)
	alpha := 1.0
	if a, ok := obj["alpha"].(float64); ok {
		alpha = a
	}

	if space == "srgb" && len(components) == 3 && alpha >= host.AlphaThreshold {
		r, rOK := components[0].(float64)
		g, gOK := components[1].(float64)
		b, bOK := components[2].(float64)
		if rOK && gOK && bOK {
			return host.RGB{R: r, G: g, B: b}.Hex()
		}
	}
	return cssColorString(space, components, alpha)
}

// cssColorString builds a CSS color string for colors hex cannot carry.
func cssColorString(space string, components []any, alpha float64) string {
	var sb strings.Builder
	for i, comp := range components {
		if i > 0 {
			sb.WriteString(" ")
		}
		switch v := comp.(type) {
		case float64:
			sb.WriteString(fmt.Sprintf("%.4g", v))
		case string:
			sb.WriteString(v) // "none" keyword
		default:
			sb.WriteString(fmt.Sprintf("%v", v))
		}
	}
	compStr := sb.String()
	hasAlpha := alpha < host.AlphaThreshold

	// Color spaces with native CSS functions render without color().
	switch space {
	case "hsl", "hwb", "lab", "lch", "oklab", "oklch":
		if hasAlpha {
			return fmt.Sprintf("%s(%s / %.4g)", space, compStr, alpha)
		}
		return fmt.Sprintf("%s(%s)", space, compStr)
	default:
		if hasAlpha {
			return fmt.Sprintf("color(%s %s / %.4g)", space, compStr, alpha)
		}
		return fmt.Sprintf("color(%s %s)", space, compStr)
	}
}

// unitPattern matches a number followed by a CSS unit, like "8px".
var unitPattern = regexp.MustCompile(`^(-?(?:\d+\.?\d*|\.\d+))[a-zA-Z%]+$`)

// dimensionValue extracts the numeric part of a DTCG dimension.
// Structured dimensions ({"value": 8, "unit": "px"}) and unit strings
// ("8px") both reduce to the number, since the host carries plain
// numbers only. Values with no recognizable number pass through.
func dimensionValue(value any) any {
	switch v := value.(type) {
	case float64:
		return v
	case map[string]any:
		if f, ok := v["value"].(float64); ok {
			return f
		}
		return value
	case string:
		s := strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		if m := unitPattern.FindStringSubmatch(s); m != nil {
			if f, err := strconv.ParseFloat(m[1], 64); err == nil {
				return f
			}
		}
		return value
	default:
		return value
	}
}

// numberValue coerces numeric strings to float64.
func numberValue(value any) any {
	if s, ok := value.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return value
}
