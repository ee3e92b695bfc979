// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog owns the item-type collection: the set of type
// names items may reference and, per type, the ordered attribute
// names the presentation layer offers when publishing.
//
// Type names are unique (case-sensitive). Removal has a
// cross-collection precondition (no item may still reference the
// type's name) that this package deliberately does not check:
// catalog does not depend on the listing service. The workflow layer
// performs the check-then-delete sequence and is the only caller of
// RemoveType.
package catalog
