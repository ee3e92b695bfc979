// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package entity defines the five records the platform persists:
// User, Item, ItemType, Demand, and Application.
//
// Records are pure data. They carry stable snake_case JSON field
// names so that snapshot files written by earlier releases load
// unchanged, and every optional field decodes to a documented
// default via ApplyDefaults rather than failing. Identifiers are
// opaque UUID strings minted by the owning service at creation time
// and never reused. Relationships between records are by id lookup
// only; no record holds a reference to another.
package entity
