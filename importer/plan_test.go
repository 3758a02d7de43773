/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package importer_test

import (
	"context"
	"testing"

	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/host/memory"
	"bennypowers.dev/mishtanim/importer"
	"bennypowers.dev/mishtanim/token"
)

func TestPlanNewCollection(t *testing.T) {
	ctx := context.Background()
	imp := importer.New(memory.New())

	set := &token.Set{
		Title: "Brand",
		Items: []token.Token{
			{Name: "color-primary", Value: "#FF0000"},
			{Name: "radius-sm", Value: 4.0},
		},
	}

	plan, err := imp.Plan(ctx, set)
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}

	if !plan.NewCollection {
		t.Error("plan.NewCollection = false, want true")
	}
	create, update, unchanged, skip := plan.Counts()
	if create != 2 || update != 0 || unchanged != 0 || skip != 0 {
		t.Errorf("Counts() = %d/%d/%d/%d, want 2/0/0/0", create, update, unchanged, skip)
	}
}

func TestPlanAgainstExistingState(t *testing.T) {
	ctx := context.Background()
	h := memory.New()
	imp := importer.New(h)

	seed := &token.Set{
		Title: "Brand",
		Items: []token.Token{
			{Name: "color-primary", Value: "#FF0000"},
			{Name: "radius-sm", Value: 4.0},
			{Name: "accent", Value: 1.0},
		},
	}
	if _, err := imp.Import(ctx, seed); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}

	next := &token.Set{
		Title: "Brand",
		Items: []token.Token{
			{Name: "color-primary", Value: "#FF0000"},
			{Name: "radius-sm", Value: 8.0},
			{Name: "accent", Value: "#00FF00"},
			{Name: "font-family", Value: "Inter"},
			{Name: "broken", Value: "#XYZ"},
		},
	}

	plan, err := imp.Plan(ctx, next)
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}
	if plan.NewCollection {
		t.Error("plan.NewCollection = true, want false")
	}

	actions := map[string]importer.Action{}
	for _, c := range plan.Changes {
		actions[c.Name] = c.Action
	}

	tests := []struct {
		name     string
		expected importer.Action
	}{
		{name: "color-primary", expected: importer.ActionUnchanged},
		{name: "radius-sm", expected: importer.ActionUpdate},
		{name: "accent", expected: importer.ActionSkip},
		{name: "font-family", expected: importer.ActionCreate},
		{name: "broken", expected: importer.ActionSkip},
	}
	for _, tt := range tests {
		if actions[tt.name] != tt.expected {
			t.Errorf("action for %q = %v, want %v", tt.name, actions[tt.name], tt.expected)
		}
	}

	t.Run("updates carry the old value", func(t *testing.T) {
		for _, c := range plan.Changes {
			if c.Name == "radius-sm" {
				if c.OldValue != 4.0 {
					t.Errorf("OldValue = %v, want 4.0", c.OldValue)
				}
				if c.Value != 8.0 {
					t.Errorf("Value = %v, want 8.0", c.Value)
				}
			}
		}
	})

	t.Run("planning does not mutate the host", func(t *testing.T) {
		vars := variablesByName(t, h, "Brand")
		if len(vars) != 3 {
			t.Errorf("variable count = %d, want 3", len(vars))
		}
		c, err := h.CollectionByName(ctx, "Brand")
		if err != nil {
			t.Fatalf("CollectionByName() unexpected error: %v", err)
		}
		if got := vars["radius-sm"].ValuesByMode[c.DefaultModeID]; got != 4.0 {
			t.Errorf("radius-sm value = %v, want 4.0", got)
		}
	})
}

func TestPlanNormalizesWireColors(t *testing.T) {
	ctx := context.Background()
	h := memory.New()
	h.Seed(
		[]*host.Collection{{
			ID:            "collection:1",
			Name:          "Brand",
			DefaultModeID: "mode:1:0",
			Modes:         []host.Mode{{ID: "mode:1:0", Name: "Mode 1"}},
		}},
		[]*host.Variable{{
			ID:           "variable:2",
			Name:         "color-primary",
			Type:         host.TypeColor,
			CollectionID: "collection:1",
			// The shape a cached REST response decodes to.
			ValuesByMode: map[string]any{"mode:1:0": map[string]any{
				"r": 1.0, "g": 0.0, "b": 0.0, "a": 1.0,
			}},
		}},
	)

	plan, err := importer.New(h).Plan(ctx, &token.Set{
		Title: "Brand",
		Items: []token.Token{{Name: "color-primary", Value: "#FF0000"}},
	})
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}

	if got := plan.Changes[0].Action; got != importer.ActionUnchanged {
		t.Errorf("action = %v, want unchanged", got)
	}
}

func TestPlanDuplicateNames(t *testing.T) {
	ctx := context.Background()
	imp := importer.New(memory.New())

	plan, err := imp.Plan(ctx, &token.Set{
		Title: "Brand",
		Items: []token.Token{
			{Name: "radius-sm", Value: 4.0},
			{Name: "radius-sm", Value: 8.0},
		},
	})
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}

	if got := plan.Changes[0].Action; got != importer.ActionCreate {
		t.Errorf("first action = %v, want create", got)
	}
	if got := plan.Changes[1].Action; got != importer.ActionUpdate {
		t.Errorf("second action = %v, want update", got)
	}
}

func TestPlanMalformedSet(t *testing.T) {
	imp := importer.New(memory.New())
	if _, err := imp.Plan(context.Background(), &token.Set{}); err == nil {
		t.Fatal("Plan() error = nil, want error")
	}
}
