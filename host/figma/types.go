/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figma

import (
	"sort"

	"bennypowers.dev/mishtanim/host"
)

// Change actions accepted by the variables endpoint.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
)

// FileVariables is one file's local variable state.
type FileVariables struct {
	Collections []*host.Collection
	Variables   []*host.Variable
}

// CollectionChange stages a collection create or update. Created
// collections carry a temp ID and the temp ID of their initial mode.
type CollectionChange struct {
	Action        string `json:"action"`
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description"`
	InitialModeID string `json:"initialModeId,omitempty"`
}

// VariableChange stages a variable create.
type VariableChange struct {
	Action               string `json:"action"`
	ID                   string `json:"id"`
	Name                 string `json:"name,omitempty"`
	ResolvedType         string `json:"resolvedType,omitempty"`
	VariableCollectionID string `json:"variableCollectionId,omitempty"`
}

// ModeValueChange stages one variable's value for one mode.
type ModeValueChange struct {
	VariableID string `json:"variableId"`
	ModeID     string `json:"modeId"`
	Value      any    `json:"value"`
}

// ChangePayload is the POST /v1/files/{key}/variables request body.
type ChangePayload struct {
	VariableCollections []CollectionChange `json:"variableCollections,omitempty"`
	Variables           []VariableChange   `json:"variables,omitempty"`
	VariableModeValues  []ModeValueChange  `json:"variableModeValues,omitempty"`
}

// Empty reports whether the payload stages nothing.
func (p *ChangePayload) Empty() bool {
	return len(p.VariableCollections) == 0 &&
		len(p.Variables) == 0 &&
		len(p.VariableModeValues) == 0
}

// apiMode is the wire form of a collection mode.
type apiMode struct {
	ModeID string `json:"modeId"`
	Name   string `json:"name"`
}

// apiCollection is the wire form of a variable collection.
type apiCollection struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Modes         []apiMode `json:"modes"`
	DefaultModeID string    `json:"defaultModeId"`
	VariableIDs   []string  `json:"variableIds"`
	Remote        bool      `json:"remote,omitempty"`
}

// apiVariable is the wire form of a variable.
type apiVariable struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	VariableCollectionID string         `json:"variableCollectionId"`
	ResolvedType         string         `json:"resolvedType"`
	ValuesByMode         map[string]any `json:"valuesByMode"`
	Description          string         `json:"description,omitempty"`
	Remote               bool           `json:"remote,omitempty"`
}

// localVariablesResponse is the GET variables/local envelope.
type localVariablesResponse struct {
	Error   bool   `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Meta    struct {
		VariableCollections map[string]apiCollection `json:"variableCollections"`
		Variables           map[string]apiVariable   `json:"variables"`
	} `json:"meta"`
}

// postVariablesResponse is the POST variables envelope.
type postVariablesResponse struct {
	Error   bool   `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Meta    struct {
		TempIDToRealID map[string]string `json:"tempIdToRealId"`
	} `json:"meta"`
}

// toFileVariables flattens the wire maps into deterministic slices:
// collections sort by name, and each collection's variables keep the
// file's own variableIds order.
func toFileVariables(resp *localVariablesResponse) *FileVariables {
	fv := &FileVariables{}

	collections := make([]apiCollection, 0, len(resp.Meta.VariableCollections))
	for _, c := range resp.Meta.VariableCollections {
		collections = append(collections, c)
	}
	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Name < collections[j].Name
	})

	seen := make(map[string]bool, len(resp.Meta.Variables))
	for _, c := range collections {
		modes := make([]host.Mode, 0, len(c.Modes))
		for _, m := range c.Modes {
			modes = append(modes, host.Mode{ID: m.ModeID, Name: m.Name})
		}
		fv.Collections = append(fv.Collections, &host.Collection{
			ID:            c.ID,
			Name:          c.Name,
			Description:   c.Description,
			DefaultModeID: c.DefaultModeID,
			Modes:         modes,
		})
		for _, id := range c.VariableIDs {
			v, ok := resp.Meta.Variables[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fv.Variables = append(fv.Variables, toVariable(v))
		}
	}

	// Variables the file did not list under any collection still count.
	rest := make([]apiVariable, 0)
	for id, v := range resp.Meta.Variables {
		if !seen[id] {
			rest = append(rest, v)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Name < rest[j].Name })
	for _, v := range rest {
		fv.Variables = append(fv.Variables, toVariable(v))
	}

	return fv
}

func toVariable(v apiVariable) *host.Variable {
	values := make(map[string]any, len(v.ValuesByMode))
	for k, val := range v.ValuesByMode {
		values[k] = val
	}
	return &host.Variable{
		ID:           v.ID,
		Name:         v.Name,
		Type:         host.VariableType(v.ResolvedType),
		CollectionID: v.VariableCollectionID,
		ValuesByMode: values,
	}
}

// copyFileVariables deep-copies the state so mirrors and caches never
// share mutable maps.
func copyFileVariables(fv *FileVariables) *FileVariables {
	out := &FileVariables{
		Collections: make([]*host.Collection, 0, len(fv.Collections)),
		Variables:   make([]*host.Variable, 0, len(fv.Variables)),
	}
	for _, c := range fv.Collections {
		out.Collections = append(out.Collections, copyCollection(c))
	}
	for _, v := range fv.Variables {
		out.Variables = append(out.Variables, copyVariable(v))
	}
	return out
}

func copyCollection(c *host.Collection) *host.Collection {
	out := *c
	out.Modes = make([]host.Mode, len(c.Modes))
	copy(out.Modes, c.Modes)
	return &out
}

func copyVariable(v *host.Variable) *host.Variable {
	out := *v
	out.ValuesByMode = make(map[string]any, len(v.ValuesByMode))
	for k, val := range v.ValuesByMode {
		out.ValuesByMode[k] = val
	}
	return &out
}
