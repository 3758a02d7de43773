/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package snapshot caches the last-fetched variables state per file key.
//
// Offline plans and dry runs read the cache instead of the network.
// Payloads are msgpack-encoded and written atomically; a schema bump
// or a missing file is a cache miss, never an error.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"bennypowers.dev/mishtanim/host"
)

// payloadSchema increments when the Payload format changes, invalidating
// older cache entries.
const payloadSchema uint16 = 1

// Store is a disk cache of variables snapshots, one entry per file key.
// Safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// Payload is the cached variables state for one file.
type Payload struct {
	Schema      uint16
	FileKey     string
	FetchedAt   time.Time
	Collections []*host.Collection
	Variables   []*host.Variable
}

// Open initializes a store at the standard cache location,
// ${XDG_CACHE_HOME:-~/.cache}/mishtanim.
func Open() (*Store, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, "mishtanim"))
}

// OpenAt initializes a store at an explicit directory.
func OpenAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) pathFor(fileKey string) string {
	sum := sha256.Sum256([]byte(fileKey))
	return filepath.Join(s.dir, "files", hex.EncodeToString(sum[:])+".mp")
}

// Put writes the variables state for a file key, replacing any previous
// entry atomically.
func (s *Store) Put(fileKey string, collections []*host.Collection, variables []*host.Variable) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := &Payload{
		Schema:      payloadSchema,
		FileKey:     fileKey,
		FetchedAt:   time.Now().UTC(),
		Collections: collections,
		Variables:   variables,
	}

	p := s.pathFor(fileKey)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	// After a successful rename this remove is a no-op.
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the cached state for a file key. A missing entry or a
// schema mismatch is (nil, false, nil); a corrupt entry is an error.
func (s *Store) Get(fileKey string) (*Payload, bool, error) {
	if s == nil {
		return nil, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.pathFor(fileKey))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != payloadSchema {
		return nil, false, nil
	}
	return &payload, true, nil
}

// Drop removes the entry for a file key. Removing a missing entry is
// not an error.
func (s *Store) Drop(fileKey string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.pathFor(fileKey))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// DropAll removes every cached entry.
func (s *Store) DropAll() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(s.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
