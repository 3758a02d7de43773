/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package importer drives token set imports into a variable host.
//
// An import mirrors one token set into one collection: the collection
// is found or created, its description is set, and every token becomes
// a typed variable with its value set for the collection's default
// mode. Individual tokens that cannot import are skipped and counted;
// only a malformed set or an unreachable host fails the run.
package importer

import (
	"context"
	"errors"
	"fmt"

	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/internal/logger"
	"bennypowers.dev/mishtanim/token"
)

// ErrNoHost indicates an importer constructed without a host.
var ErrNoHost = errors.New("no variable host")

// Summary reports what one token set import did.
type Summary struct {
	// Set is the title of the imported set.
	Set string `json:"set"`

	// Success is true when every token imported cleanly.
	Success bool `json:"success"`

	// Created counts variables created by this run.
	Created int `json:"created"`

	// Updated counts existing variables whose value was set.
	Updated int `json:"updated"`

	// Skipped counts tokens that could not import.
	Skipped int `json:"skipped"`

	// Messages holds one line per skipped token.
	Messages []string `json:"messages,omitempty"`
}

// Importer imports token sets into a single host.
type Importer struct {
	host host.Host
}

// New creates an importer writing through the given host.
func New(h host.Host) *Importer {
	return &Importer{host: h}
}

// Import mirrors one token set into the host. Mutations are issued
// strictly in sequence. Tokens that cannot import are skipped, counted,
// and reported in the summary; the returned error is non-nil only for
// failures that abort the whole set.
func (imp *Importer) Import(ctx context.Context, set *token.Set) (*Summary, error) {
	summary := &Summary{}
	if imp == nil || imp.host == nil {
		return summary, ErrNoHost
	}
	if set == nil {
		return summary, fmt.Errorf("no token set")
	}
	summary.Set = set.Title
	if err := set.Validate(); err != nil {
		return summary, fmt.Errorf("invalid token set: %w", err)
	}

	collection, err := imp.collection(ctx, set.Title)
	if err != nil {
		return summary, err
	}
	if err := imp.host.SetCollectionDescription(ctx, collection.ID, set.Description); err != nil {
		return summary, fmt.Errorf("failed to set description for %q: %w", set.Title, err)
	}

	existing, err := imp.host.Variables(ctx, collection.ID)
	if err != nil {
		return summary, fmt.Errorf("failed to list variables in %q: %w", set.Title, err)
	}
	byName := make(map[string]*host.Variable, len(existing))
	for _, v := range existing {
		byName[v.Name] = v
	}

	skip := func(name string, format string, args ...any) {
		summary.Skipped++
		summary.Messages = append(summary.Messages,
			fmt.Sprintf("skipped %q: %s", name, fmt.Sprintf(format, args...)))
	}

	for _, item := range set.Items {
		if err := ctx.Err(); err != nil {
			summary.Success = false
			return summary, err
		}

		name := token.SanitizeName(item.Name)
		if name == "" {
			skip(item.Name, "name has no usable characters")
			continue
		}
		if item.Value == nil {
			skip(item.Name, "no value")
			continue
		}
		if s, ok := item.Value.(string); ok {
			if path, isAlias := token.AliasPath(s); isAlias {
				skip(item.Name, "unresolved reference to %q", path)
				continue
			}
		}
		typ, err := host.TypeForValue(item.Value)
		if err != nil {
			skip(item.Name, "%v", err)
			continue
		}
		value, err := importValue(item.Value, typ)
		if err != nil {
			skip(item.Name, "%v", err)
			continue
		}

		variable, created := byName[name], false
		if variable == nil {
			variable, err = imp.host.CreateVariable(ctx, collection.ID, name, typ)
			if err != nil {
				skip(item.Name, "%v", err)
				continue
			}
			byName[name] = variable
			created = true
		} else if variable.Type != typ {
			skip(item.Name, "existing variable is %s, value is %s", variable.Type, typ)
			continue
		}

		if err := imp.host.SetVariableValue(ctx, variable.ID, collection.DefaultModeID, value); err != nil {
			skip(item.Name, "%v", err)
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	if flusher, ok := imp.host.(host.Flusher); ok {
		if err := flusher.Flush(ctx); err != nil {
			summary.Success = false
			summary.Messages = append(summary.Messages,
				fmt.Sprintf("failed to commit changes: %v", err))
			return summary, fmt.Errorf("failed to commit changes for %q: %w", set.Title, err)
		}
	}

	summary.Success = summary.Skipped == 0
	imp.notify(ctx, summary)
	return summary, nil
}

// collection finds the named collection, creating it on a miss.
func (imp *Importer) collection(ctx context.Context, name string) (*host.Collection, error) {
	collection, err := imp.host.CollectionByName(ctx, name)
	if errors.Is(err, host.ErrNotFound) {
		collection, err = imp.host.CreateCollection(ctx, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %q: %w", name, err)
	}
	return collection, nil
}

func (imp *Importer) notify(ctx context.Context, summary *Summary) {
	message := fmt.Sprintf("Imported %d token(s) into %q",
		summary.Created+summary.Updated, summary.Set)
	if summary.Skipped > 0 {
		message += fmt.Sprintf(" (%d skipped)", summary.Skipped)
	}
	if err := imp.host.Notify(ctx, message); err != nil {
		logger.Debug("notify failed: %v", err)
	}
}

// importValue converts a token value into the form the host stores:
// hex colors become RGB components and numeric kinds become float64.
func importValue(value any, typ host.VariableType) (any, error) {
	switch typ {
	case host.TypeColor:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("color value %v is not a string", value)
		}
		rgb, err := host.HexToRGB(s)
		if err != nil {
			return nil, err
		}
		return rgb, nil
	case host.TypeFloat:
		f, ok := host.FloatValue(value)
		if !ok {
			return nil, fmt.Errorf("value %v is not numeric", value)
		}
		return f, nil
	default:
		return value, nil
	}
}
