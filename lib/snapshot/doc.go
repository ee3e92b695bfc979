// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot persists whole collections as single JSON files.
//
// The unit of durability is one named collection: Save rewrites the
// entire ordered array, Load reads it back (or returns an empty
// slice on first run). Every mutation in the services above this
// package re-saves the full collection synchronously before the
// mutation is committed to memory, so durable state never trails the
// in-memory state.
//
// Snapshots are plain two-space-indented JSON with HTML escaping
// disabled, so UTF-8 text (item names, Chinese type names, contact
// strings) round-trips byte-exact and files written by earlier
// releases of the tool load unchanged. Each snapshot carries a
// blake3-256 sidecar (<name>.json.b3); a digest mismatch or
// unparseable payload fails the load outright: corrupt data is
// rejected, never repaired. A missing sidecar is accepted for
// compatibility with data directories that predate it.
//
// Concurrent processes pointed at the same directory race with
// last-writer-wins semantics. That is an accepted property of a
// single-operator local tool, not something this package defends
// against.
package snapshot
