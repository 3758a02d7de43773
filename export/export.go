/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package export renders variable collections back into token files.
//
// Export is the reverse of an import: a collection and its variables
// become a token set, and the set serializes to one of the formats the
// parser reads, so pulled files round-trip through a later import.
package export

import (
	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/token"
)

// FromCollection converts a collection and its variables into a token
// set. Values come from the collection's default mode; colors render
// as hex strings (eight digits when translucent) and numbers as
// float64. Variables with no value in the default mode are left out.
func FromCollection(collection *host.Collection, variables []*host.Variable) *token.Set {
	set := &token.Set{
		Title:       collection.Name,
		Description: collection.Description,
		Items:       []token.Token{},
	}
	for _, v := range variables {
		raw, ok := v.ValuesByMode[collection.DefaultModeID]
		if !ok {
			continue
		}
		value, ok := tokenValue(raw, v.Type)
		if !ok {
			continue
		}
		set.Items = append(set.Items, token.Token{Name: v.Name, Value: value})
	}
	return set
}

// tokenValue converts a stored variable value back to a token value.
func tokenValue(raw any, typ host.VariableType) (any, bool) {
	switch typ {
	case host.TypeColor:
		c, ok := host.ColorValue(raw)
		if !ok {
			return nil, false
		}
		return c.Hex(), true
	case host.TypeFloat:
		f, ok := host.FloatValue(raw)
		if !ok {
			return nil, false
		}
		return f, true
	case host.TypeBoolean:
		b, ok := raw.(bool)
		return b, ok
	case host.TypeString:
		s, ok := raw.(string)
		return s, ok
	default:
		return nil, false
	}
}
