// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// Store persists named collections under one data directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating the directory if
// needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory this store writes into.
func (s *Store) Dir() string { return s.dir }

// Path returns the snapshot file path for a collection name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) sidecarPath(name string) string {
	return s.Path(name) + ".b3"
}

// Save serializes the full ordered collection under name, fully
// overwriting any prior content. The snapshot is written to a temp
// file and renamed into place so a crash mid-write never leaves a
// truncated snapshot behind, then the blake3 sidecar is refreshed.
//
// A nil slice saves as an empty array, not JSON null: an empty
// collection is a valid state, and the next Load must get back an
// empty slice rather than an error.
func Save[T any](s *Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(items); err != nil {
		return fmt.Errorf("encoding collection %s: %w", name, err)
	}
	data := buffer.Bytes()

	temp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot for %s: %w", name, err)
	}
	tempPath := temp.Name()
	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing snapshot %s: %w", name, err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing snapshot %s: %w", name, err)
	}
	if err := os.Rename(tempPath, s.Path(name)); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replacing snapshot %s: %w", name, err)
	}

	digest := blake3.Sum256(data)
	if err := os.WriteFile(s.sidecarPath(name), []byte(hex.EncodeToString(digest[:])+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing snapshot sidecar for %s: %w", name, err)
	}
	return nil
}

// Load reads the collection saved under name. A missing snapshot is
// a first run and yields an empty slice. A snapshot whose blake3
// sidecar does not match, or whose JSON does not parse, fails the
// load; the caller decides whether to restore from an archive. Load
// returns fresh values on every call; the store retains no
// reference to what it hands out.
func Load[T any](s *Store, name string) ([]T, error) {
	data, err := os.ReadFile(s.Path(name))
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", name, err)
	}

	if err := s.verify(name, data); err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("corrupt snapshot %s: %w", name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// verify checks data against the sidecar digest. No sidecar means a
// data directory written before sidecars existed; those load without
// verification.
func (s *Store) verify(name string, data []byte) error {
	sidecar, err := os.ReadFile(s.sidecarPath(name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading snapshot sidecar for %s: %w", name, err)
	}

	digest := blake3.Sum256(data)
	want := strings.TrimSpace(string(sidecar))
	if got := hex.EncodeToString(digest[:]); got != want {
		return fmt.Errorf("corrupt snapshot %s: blake3 digest %s does not match recorded %s", name, got, want)
	}
	return nil
}
