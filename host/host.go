/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package host abstracts the variable backend token sets import into.
//
// A Host exposes the handful of primitives the importer needs: look up
// or create a collection, enumerate and create variables, and set a
// variable's value for a mode. Backends that batch writes additionally
// implement Flusher; backends that can enumerate collections implement
// Lister.
package host

import (
	"context"
	"fmt"
	"strings"
)

// VariableType is the resolved type of a variable.
type VariableType string

// Variable types supported by the backend.
const (
	TypeColor   VariableType = "COLOR"
	TypeFloat   VariableType = "FLOAT"
	TypeBoolean VariableType = "BOOLEAN"
	TypeString  VariableType = "STRING"
)

// Mode is a named column of values within a collection.
type Mode struct {
	ID   string
	Name string
}

// Collection is a named group of variables.
type Collection struct {
	ID            string
	Name          string
	Description   string
	DefaultModeID string
	Modes         []Mode
}

// Variable is a single typed variable within a collection.
type Variable struct {
	ID           string
	Name         string
	Type         VariableType
	CollectionID string

	// ValuesByMode maps mode IDs to the variable's value in that mode.
	// Colors are RGBA values; numbers are float64; booleans and strings
	// are their native kinds.
	ValuesByMode map[string]any
}

// Host is the backend surface the importer writes through. Every
// mutation is issued sequentially; implementations do not need to
// support concurrent callers on one import run.
type Host interface {
	// CollectionByName finds a collection by exact name. A miss
	// returns an error wrapping ErrNotFound.
	CollectionByName(ctx context.Context, name string) (*Collection, error)

	// CreateCollection creates a collection with one default mode.
	CreateCollection(ctx context.Context, name string) (*Collection, error)

	// SetCollectionDescription replaces the collection's description.
	SetCollectionDescription(ctx context.Context, collectionID, description string) error

	// Variables lists the variables in a collection.
	Variables(ctx context.Context, collectionID string) ([]*Variable, error)

	// CreateVariable creates a typed variable in a collection. Creating
	// a name that already exists returns an error wrapping
	// ErrDuplicateName.
	CreateVariable(ctx context.Context, collectionID, name string, typ VariableType) (*Variable, error)

	// SetVariableValue sets the variable's value for one mode.
	SetVariableValue(ctx context.Context, variableID, modeID string, value any) error

	// Notify surfaces a human-readable message to the user.
	Notify(ctx context.Context, message string) error
}

// Flusher is implemented by hosts that stage mutations and commit them
// in one batch. The importer flushes once per set when available.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Lister is implemented by hosts that can enumerate every collection.
type Lister interface {
	Collections(ctx context.Context) ([]*Collection, error)
}

// TypeForValue infers the variable type for a token value. Strings
// beginning with "#" are colors, every other string is a string,
// numeric kinds are floats, and bools are booleans.
func TypeForValue(value any) (VariableType, error) {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "#") {
			return TypeColor, nil
		}
		return TypeString, nil
	case bool:
		return TypeBoolean, nil
	case float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return TypeFloat, nil
	case nil:
		return "", fmt.Errorf("no variable type for nil value")
	default:
		return "", fmt.Errorf("no variable type for %T value", value)
	}
}

// ParseVariableType parses a variable type name, ignoring case.
func ParseVariableType(s string) (VariableType, error) {
	switch VariableType(strings.ToUpper(s)) {
	case TypeColor:
		return TypeColor, nil
	case TypeFloat:
		return TypeFloat, nil
	case TypeBoolean:
		return TypeBoolean, nil
	case TypeString:
		return TypeString, nil
	default:
		return "", fmt.Errorf("unknown variable type %q", s)
	}
}
