/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package memory provides an in-memory variable host.
//
// The memory host backs dry runs, offline plans, and tests. IDs are
// generated from a deterministic counter so test output is stable, and
// every accessor returns copies so callers cannot mutate host state
// behind the lock.
package memory

import (
	"context"
	"fmt"
	"sync"

	"bennypowers.dev/mishtanim/host"
)

// Host is an in-memory implementation of host.Host and host.Lister.
type Host struct {
	mu          sync.RWMutex
	collections map[string]*host.Collection
	variables   map[string]*host.Variable
	collOrder   []string
	varOrder    []string
	notices     []string
	nextID      int
}

// New creates an empty in-memory host.
func New() *Host {
	return &Host{
		collections: make(map[string]*host.Collection),
		variables:   make(map[string]*host.Variable),
	}
}

// Seed loads collections and variables into the host, copying each so
// the caller's snapshot stays untouched. Seeded IDs are kept as given;
// the ID counter advances past any that share the generated format.
func (h *Host) Seed(collections []*host.Collection, variables []*host.Variable) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range collections {
		if _, ok := h.collections[c.ID]; !ok {
			h.collOrder = append(h.collOrder, c.ID)
		}
		h.collections[c.ID] = copyCollection(c)
		h.reserveID(c.ID, "collection:%d")
	}
	for _, v := range variables {
		if _, ok := h.variables[v.ID]; !ok {
			h.varOrder = append(h.varOrder, v.ID)
		}
		h.variables[v.ID] = copyVariable(v)
		h.reserveID(v.ID, "variable:%d")
	}
}

// reserveID advances the counter past seeded IDs in the generated
// format so later creates cannot collide.
func (h *Host) reserveID(id, format string) {
	var n int
	if _, err := fmt.Sscanf(id, format, &n); err == nil && n > h.nextID {
		h.nextID = n
	}
}

// CollectionByName finds a collection by exact name.
func (h *Host) CollectionByName(ctx context.Context, name string) (*host.Collection, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range h.collOrder {
		if c := h.collections[id]; c.Name == name {
			return copyCollection(c), nil
		}
	}
	return nil, fmt.Errorf("collection %q: %w", name, host.ErrNotFound)
}

// CreateCollection creates a collection with one default mode named
// "Mode 1".
func (h *Host) CreateCollection(ctx context.Context, name string) (*host.Collection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range h.collOrder {
		if h.collections[id].Name == name {
			return nil, fmt.Errorf("collection %q: %w", name, host.ErrDuplicateName)
		}
	}
	h.nextID++
	c := &host.Collection{
		ID:            fmt.Sprintf("collection:%d", h.nextID),
		Name:          name,
		DefaultModeID: fmt.Sprintf("mode:%d:0", h.nextID),
	}
	c.Modes = []host.Mode{{ID: c.DefaultModeID, Name: "Mode 1"}}
	h.collections[c.ID] = c
	h.collOrder = append(h.collOrder, c.ID)
	return copyCollection(c), nil
}

// SetCollectionDescription replaces the collection's description.
func (h *Host) SetCollectionDescription(ctx context.Context, collectionID, description string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.collections[collectionID]
	if !ok {
		return fmt.Errorf("collection %s: %w", collectionID, host.ErrNotFound)
	}
	c.Description = description
	return nil
}

// Variables lists the variables in a collection in creation order.
func (h *Host) Variables(ctx context.Context, collectionID string) ([]*host.Variable, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.collections[collectionID]; !ok {
		return nil, fmt.Errorf("collection %s: %w", collectionID, host.ErrNotFound)
	}
	var vars []*host.Variable
	for _, id := range h.varOrder {
		if v := h.variables[id]; v.CollectionID == collectionID {
			vars = append(vars, copyVariable(v))
		}
	}
	return vars, nil
}

// CreateVariable creates a typed variable in a collection.
func (h *Host) CreateVariable(ctx context.Context, collectionID, name string, typ host.VariableType) (*host.Variable, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.collections[collectionID]; !ok {
		return nil, fmt.Errorf("collection %s: %w", collectionID, host.ErrNotFound)
	}
	for _, id := range h.varOrder {
		if v := h.variables[id]; v.CollectionID == collectionID && v.Name == name {
			return nil, fmt.Errorf("variable %q: %w", name, host.ErrDuplicateName)
		}
	}
	h.nextID++
	v := &host.Variable{
		ID:           fmt.Sprintf("variable:%d", h.nextID),
		Name:         name,
		Type:         typ,
		CollectionID: collectionID,
		ValuesByMode: make(map[string]any),
	}
	h.variables[v.ID] = v
	h.varOrder = append(h.varOrder, v.ID)
	return copyVariable(v), nil
}

// SetVariableValue sets the variable's value for one mode. The mode
// must belong to the variable's collection.
func (h *Host) SetVariableValue(ctx context.Context, variableID, modeID string, value any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.variables[variableID]
	if !ok {
		return fmt.Errorf("variable %s: %w", variableID, host.ErrNotFound)
	}
	c, ok := h.collections[v.CollectionID]
	if !ok {
		return fmt.Errorf("collection %s: %w", v.CollectionID, host.ErrNotFound)
	}
	if !hasMode(c, modeID) {
		return fmt.Errorf("mode %s in collection %s: %w", modeID, c.ID, host.ErrNotFound)
	}
	if v.ValuesByMode == nil {
		v.ValuesByMode = make(map[string]any)
	}
	v.ValuesByMode[modeID] = value
	return nil
}

// Notify records the message for later inspection.
func (h *Host) Notify(ctx context.Context, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notices = append(h.notices, message)
	return nil
}

// Collections lists every collection in creation order.
func (h *Host) Collections(ctx context.Context) ([]*host.Collection, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	collections := make([]*host.Collection, 0, len(h.collOrder))
	for _, id := range h.collOrder {
		collections = append(collections, copyCollection(h.collections[id]))
	}
	return collections, nil
}

// Notices returns every message passed to Notify, oldest first.
func (h *Host) Notices() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	notices := make([]string, len(h.notices))
	copy(notices, h.notices)
	return notices
}

func hasMode(c *host.Collection, modeID string) bool {
	for _, m := range c.Modes {
		if m.ID == modeID {
			return true
		}
	}
	return false
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
