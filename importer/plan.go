/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package importer

import (
	"context"
	"errors"
	"fmt"

	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/token"
)

// Action describes what an import would do to one variable.
type Action int

const (
	// ActionCreate means the variable does not exist yet.
	ActionCreate Action = iota

	// ActionUpdate means the variable exists with a different value.
	ActionUpdate

	// ActionUnchanged means the variable already holds this value.
	ActionUnchanged

	// ActionSkip means the token cannot import.
	ActionSkip
)

// String returns the action's name.
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionUnchanged:
		return "unchanged"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Change is one planned variable mutation.
type Change struct {
	// Name is the sanitized variable name, or the raw token name when
	// sanitizing failed.
	Name string `json:"name"`

	// Type is the inferred variable type; empty for skipped tokens
	// without one.
	Type host.VariableType `json:"type,omitempty"`

	// Action says what the import would do.
	Action Action `json:"-"`

	// Value is the value the import would write.
	Value any `json:"value,omitempty"`

	// OldValue is the current value for updates.
	OldValue any `json:"oldValue,omitempty"`

	// Reason explains skipped tokens.
	Reason string `json:"reason,omitempty"`
}

// Plan previews what importing one set would change.
type Plan struct {
	// Collection is the target collection name.
	Collection string `json:"collection"`

	// NewCollection is true when the collection would be created.
	NewCollection bool `json:"newCollection"`

	// Changes holds one entry per token, in set order.
	Changes []Change `json:"changes"`
}

// Counts tallies the plan's changes per action.
func (p *Plan) Counts() (create, update, unchanged, skip int) {
	for _, c := range p.Changes {
		switch c.Action {
		case ActionCreate:
			create++
		case ActionUpdate:
			update++
		case ActionUnchanged:
			unchanged++
		case ActionSkip:
			skip++
		}
	}
	return create, update, unchanged, skip
}

// Plan computes the changes an import of the set would make without
// mutating the host.
func (imp *Importer) Plan(ctx context.Context, set *token.Set) (*Plan, error) {
	if imp == nil || imp.host == nil {
		return nil, ErrNoHost
	}
	if set == nil {
		return nil, fmt.Errorf("no token set")
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid token set: %w", err)
	}

	plan := &Plan{Collection: set.Title}

	byName := make(map[string]*host.Variable)
	var defaultModeID string
	collection, err := imp.host.CollectionByName(ctx, set.Title)
	switch {
	case errors.Is(err, host.ErrNotFound):
		plan.NewCollection = true
	case err != nil:
		return nil, fmt.Errorf("failed to open collection %q: %w", set.Title, err)
	default:
		defaultModeID = collection.DefaultModeID
		existing, err := imp.host.Variables(ctx, collection.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list variables in %q: %w", set.Title, err)
		}
		for _, v := range existing {
			byName[v.Name] = v
		}
	}

	for _, item := range set.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		change := imp.planChange(item, byName, defaultModeID)
		// Track planned writes so a duplicated token name classifies
		// the way a real import would treat it.
		switch change.Action {
		case ActionCreate:
			byName[change.Name] = &host.Variable{
				Name:         change.Name,
				Type:         change.Type,
				ValuesByMode: map[string]any{defaultModeID: change.Value},
			}
		case ActionUpdate:
			v := byName[change.Name]
			if v.ValuesByMode == nil {
				v.ValuesByMode = make(map[string]any)
			}
			v.ValuesByMode[defaultModeID] = change.Value
		}
		plan.Changes = append(plan.Changes, change)
	}
	return plan, nil
}

// planChange classifies one token against the host's current state.
func (imp *Importer) planChange(item token.Token, byName map[string]*host.Variable, modeID string) Change {
	skip := func(name, reason string) Change {
		return Change{Name: name, Action: ActionSkip, Reason: reason}
	}

	name := token.SanitizeName(item.Name)
	if name == "" {
		return skip(item.Name, "name has no usable characters")
	}
	if item.Value == nil {
		return skip(name, "no value")
	}
	if s, ok := item.Value.(string); ok {
		if path, isAlias := token.AliasPath(s); isAlias {
			return skip(name, fmt.Sprintf("unresolved reference to %q", path))
		}
	}
	typ, err := host.TypeForValue(item.Value)
	if err != nil {
		return skip(name, err.Error())
	}
	value, err := importValue(item.Value, typ)
	if err != nil {
		return skip(name, err.Error())
	}

	existing := byName[name]
	if existing == nil {
		return Change{Name: name, Type: typ, Action: ActionCreate, Value: value}
	}
	if existing.Type != typ {
		return skip(name, fmt.Sprintf("existing variable is %s, value is %s", existing.Type, typ))
	}
	current := existing.ValuesByMode[modeID]
	if equalValues(current, value) {
		return Change{Name: name, Type: typ, Action: ActionUnchanged, Value: value}
	}
	return Change{Name: name, Type: typ, Action: ActionUpdate, Value: value, OldValue: current}
}
