/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figma

import (
	"context"
	"fmt"
	"sync"

	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/internal/logger"
)

// Host imports into one Figma file. Reads are served from a lazily
// fetched mirror of the file's local variables; writes stage into a
// change payload that Flush commits in one POST. Created collections
// and variables carry temp IDs until the commit, and the mirror resets
// after a commit so the next read refetches the file's real state.
type Host struct {
	client  *Client
	fileKey string

	mu      sync.Mutex
	state   *FileVariables
	staged  ChangePayload
	tempSeq int
}

// NewHost creates a host bound to one file key.
func NewHost(client *Client, fileKey string) *Host {
	return &Host{client: client, fileKey: fileKey}
}

// ensureState fetches the file mirror on first use. Callers hold mu.
func (h *Host) ensureState(ctx context.Context) error {
	if h.state != nil {
		return nil
	}
	fv, err := h.client.LocalVariables(ctx, h.fileKey)
	if err != nil {
		return err
	}
	// The client cache shares snapshots between hosts; mirror a copy so
	// staged writes stay private until Flush.
	h.state = copyFileVariables(fv)
	return nil
}

// CollectionByName finds a collection by exact name, including
// collections staged for creation.
func (h *Host) CollectionByName(ctx context.Context, name string) (*host.Collection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureState(ctx); err != nil {
		return nil, err
	}
	for _, c := range h.state.Collections {
		if c.Name == name {
			return copyCollection(c), nil
		}
	}
	return nil, fmt.Errorf("collection %q: %w", name, host.ErrNotFound)
}

// CreateCollection stages a collection create under a temp ID. The
// collection gets one initial mode named "Mode 1", also under a temp
// ID until Flush commits.
func (h *Host) CreateCollection(ctx context.Context, name string) (*host.Collection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureState(ctx); err != nil {
		return nil, err
	}
	for _, c := range h.state.Collections {
		if c.Name == name {
			return nil, fmt.Errorf("collection %q: %w", name, host.ErrDuplicateName)
		}
	}

	h.tempSeq++
	id := fmt.Sprintf("tmp_collection_%d", h.tempSeq)
	modeID := fmt.Sprintf("tmp_mode_%d", h.tempSeq)
	h.staged.VariableCollections = append(h.staged.VariableCollections, CollectionChange{
		Action:        ActionCreate,
		ID:            id,
		Name:          name,
		InitialModeID: modeID,
	})

	c := &host.Collection{
		ID:            id,
		Name:          name,
		DefaultModeID: modeID,
		Modes:         []host.Mode{{ID: modeID, Name: "Mode 1"}},
	}
	h.state.Collections = append(h.state.Collections, c)
	return copyCollection(c), nil
}

// SetCollectionDescription stages a description change, folding it
// into the pending create when the collection was created this run.
func (h *Host) SetCollectionDescription(ctx context.Context, collectionID, description string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureState(ctx); err != nil {
		return err
	}
	collection := h.findCollection(collectionID)
	if collection == nil {
		return fmt.Errorf("collection %s: %w", collectionID, host.ErrNotFound)
	}
	collection.Description = description

	for i := range h.staged.VariableCollections {
		if h.staged.VariableCollections[i].ID == collectionID {
			h.staged.VariableCollections[i].Description = description
			return nil
		}
	}
	h.staged.VariableCollections = append(h.staged.VariableCollections, CollectionChange{
		Action:      ActionUpdate,
		ID:          collectionID,
		Description: description,
	})
	return nil
}

// Variables lists the collection's variables, including variables
// staged for creation.
func (h *Host) Variables(ctx context.Context, collectionID string) ([]*host.Variable, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureState(ctx); err != nil {
		return nil, err
	}
	if h.findCollection(collectionID) == nil {
		return nil, fmt.Errorf("collection %s: %w", collectionID, host.ErrNotFound)
	}
	var vars []*host.Variable
	for _, v := range h.state.Variables {
		if v.CollectionID == collectionID {
			vars = append(vars, copyVariable(v))
		}
	}
	return vars, nil
}

// CreateVariable stages a variable create under a temp ID.
func (h *Host) CreateVariable(ctx context.Context, collectionID, name string, typ host.VariableType) (*host.Variable, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureState(ctx); err != nil {
		return nil, err
	}
	if h.findCollection(collectionID) == nil {
		return nil, fmt.Errorf("collection %s: %w", collectionID, host.ErrNotFound)
	}
	for _, v := range h.state.Variables {
		if v.CollectionID == collectionID && v.Name == name {
			return nil, fmt.Errorf("variable %q: %w", name, host.ErrDuplicateName)
		}
	}

	h.tempSeq++
	id := fmt.Sprintf("tmp_variable_%d", h.tempSeq)
	h.staged.Variables = append(h.staged.Variables, VariableChange{
		Action:               ActionCreate,
		ID:                   id,
		Name:                 name,
		ResolvedType:         string(typ),
		VariableCollectionID: collectionID,
	})

	v := &host.Variable{
		ID:           id,
		Name:         name,
		Type:         typ,
		CollectionID: collectionID,
		ValuesByMode: make(map[string]any),
	}
	h.state.Variables = append(h.state.Variables, v)
	return copyVariable(v), nil
}

// SetVariableValue stages one value write. Staging the same variable
// and mode twice keeps only the last value.
func (h *Host) SetVariableValue(ctx context.Context, variableID, modeID string, value any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureState(ctx); err != nil {
		return err
	}
	variable := h.findVariable(variableID)
	if variable == nil {
		return fmt.Errorf("variable %s: %w", variableID, host.ErrNotFound)
	}
	collection := h.findCollection(variable.CollectionID)
	if collection == nil {
		return fmt.Errorf("collection %s: %w", variable.CollectionID, host.ErrNotFound)
	}
	if !hasMode(collection, modeID) {
		return fmt.Errorf("mode %s in collection %s: %w", modeID, collection.ID, host.ErrNotFound)
	}

	wire := wireValue(value)
	if variable.ValuesByMode == nil {
		variable.ValuesByMode = make(map[string]any)
	}
	variable.ValuesByMode[modeID] = wire

	for i := range h.staged.VariableModeValues {
		staged := &h.staged.VariableModeValues[i]
		if staged.VariableID == variableID && staged.ModeID == modeID {
			staged.Value = wire
			return nil
		}
	}
	h.staged.VariableModeValues = append(h.staged.VariableModeValues, ModeValueChange{
		VariableID: variableID,
		ModeID:     modeID,
		Value:      wire,
	})
	return nil
}

// Notify logs the message; a CLI has no toast to raise.
func (h *Host) Notify(ctx context.Context, message string) error {
	logger.Info("%s", message)
	return nil
}

// Flush commits every staged change in one POST and resets the mirror
// so the next read sees the file's committed state.
func (h *Host) Flush(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.staged.Empty() {
		return nil
	}
	staged := h.staged
	if _, err := h.client.PostVariables(ctx, h.fileKey, &staged); err != nil {
		return err
	}
	h.staged = ChangePayload{}
	h.state = nil
	return nil
}

// Collections lists every collection in the file.
func (h *Host) Collections(ctx context.Context) ([]*host.Collection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureState(ctx); err != nil {
		return nil, err
	}
	collections := make([]*host.Collection, 0, len(h.state.Collections))
	for _, c := range h.state.Collections {
		collections = append(collections, copyCollection(c))
	}
	return collections, nil
}

// Snapshot returns a copy of the file's current mirror, fetching it if
// needed. The copy includes staged but uncommitted changes.
func (h *Host) Snapshot(ctx context.Context) (*FileVariables, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureState(ctx); err != nil {
		return nil, err
	}
	return copyFileVariables(h.state), nil
}

func (h *Host) findCollection(id string) *host.Collection {
	for _, c := range h.state.Collections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (h *Host) findVariable(id string) *host.Variable {
	for _, v := range h.state.Variables {
		if v.ID == id {
			return v
		}
	}
	return nil
}

func hasMode(c *host.Collection, modeID string) bool {
	for _, m := range c.Modes {
		if m.ID == modeID {
			return true
		}
	}
	return false
}

// wireValue converts host values to the shapes the API stores. Colors
// always travel with an alpha channel.
func wireValue(value any) any {
	if rgb, ok := value.(host.RGB); ok {
		return rgb.WithAlpha(1)
	}
	return value
}
