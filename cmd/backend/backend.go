/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package backend wires commands to a variables host.
//
// Commands share the same resolution order for connection settings:
// flags bound through viper, then environment, then the project config
// file. Offline commands get a memory host seeded from the snapshot
// cache instead of a REST host.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/host/figma"
	"bennypowers.dev/mishtanim/host/memory"
	"bennypowers.dev/mishtanim/importer"
	"bennypowers.dev/mishtanim/internal/logger"
	"bennypowers.dev/mishtanim/snapshot"
)

var (
	// ErrNoFileKey indicates that no target file key was configured.
	ErrNoFileKey = errors.New("no file key")

	// ErrNoToken indicates that no personal access token was configured.
	ErrNoToken = errors.New("no access token")
)

// FileKey resolves the target file key: the --file-key flag or
// MISHTANIM_FILE_KEY environment variable, then the project config.
func FileKey(cfg *config.Config) (string, error) {
	key := viper.GetString("file-key")
	if key == "" && cfg != nil {
		key = cfg.FileKey
	}
	if key == "" {
		return "", fmt.Errorf("%w: pass --file-key or set fileKey in .config/%s", ErrNoFileKey, config.ConfigFileName)
	}
	return key, nil
}

// Token resolves the personal access token: the --token flag, then the
// FIGMA_TOKEN environment variable.
func Token() (string, error) {
	token := viper.GetString("token")
	if token == "" {
		return "", fmt.Errorf("%w: pass --token or set FIGMA_TOKEN", ErrNoToken)
	}
	return token, nil
}

// Live builds a REST host for the resolved file key.
func Live(cfg *config.Config) (*figma.Host, string, error) {
	key, err := FileKey(cfg)
	if err != nil {
		return nil, "", err
	}
	token, err := Token()
	if err != nil {
		return nil, "", err
	}
	client := figma.NewClient(figma.ClientOptions{
		BaseURL: viper.GetString("api-url"),
		Token:   token,
	})
	return figma.NewHost(client, key), key, nil
}

// Offline builds a memory host seeded from the snapshot cache.
func Offline(store *snapshot.Store, fileKey string) (*memory.Host, error) {
	payload, ok, err := store.Get(fileKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot for %s: %w", fileKey, err)
	}
	if !ok {
		return nil, fmt.Errorf("no snapshot for file %s: run a command online first", fileKey)
	}
	h := memory.New()
	h.Seed(payload.Collections, payload.Variables)
	return h, nil
}

// DryRun builds a memory host mirroring the file's current state: the
// live file when credentials allow, else the snapshot cache, else an
// empty document. A successful live fetch refreshes the cache.
func DryRun(ctx context.Context, cfg *config.Config, store *snapshot.Store) (*memory.Host, error) {
	h := memory.New()

	key, err := FileKey(cfg)
	if err != nil {
		// No target file configured: dry run against an empty document.
		return h, nil
	}

	if live, _, err := Live(cfg); err == nil {
		fv, err := live.Snapshot(ctx)
		if err == nil {
			h.Seed(fv.Collections, fv.Variables)
			if err := store.Put(key, fv.Collections, fv.Variables); err != nil {
				logger.Debug("failed to cache snapshot for %s: %v", key, err)
			}
			return h, nil
		}
		logger.Debug("dry run falling back to snapshot cache: %v", err)
	}

	payload, ok, err := store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot for %s: %w", key, err)
	}
	if ok {
		h.Seed(payload.Collections, payload.Variables)
	}
	return h, nil
}

// Refresh caches the host's current state for offline use. Failures
// only cost the next offline run its cache, so they log instead of
// propagating.
func Refresh(ctx context.Context, store *snapshot.Store, fileKey string, h *figma.Host) {
	fv, err := h.Snapshot(ctx)
	if err != nil {
		logger.Debug("failed to snapshot %s: %v", fileKey, err)
		return
	}
	if err := store.Put(fileKey, fv.Collections, fv.Variables); err != nil {
		logger.Debug("failed to cache snapshot for %s: %v", fileKey, err)
	}
}

// PrintSummary writes one set's import outcome: a status line plus one
// indented line per skipped token.
func PrintSummary(w io.Writer, s *importer.Summary) {
	fmt.Fprintf(w, "%s: %d created, %d updated, %d skipped\n", s.Set, s.Created, s.Updated, s.Skipped)
	for _, m := range s.Messages {
		fmt.Fprintf(w, "  %s\n", m)
	}
}
