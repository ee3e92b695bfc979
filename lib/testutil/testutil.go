// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Revive packages.
package testutil

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/revive-exchange/revive/lib/snapshot"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use this instead of time-based
// values when tests need identifiers that must be distinguishable
// across subtests sharing a store.
//
//	username := testutil.UniqueID("user")  // "user-1", "user-2", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}

// Store returns a snapshot store rooted in a per-test temp
// directory.
func Store(t *testing.T) *snapshot.Store {
	t.Helper()
	store, err := snapshot.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	return store
}

// Logger returns a logger that drops everything. Service
// constructors require a logger; tests that are not asserting on log
// output use this one.
func Logger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
