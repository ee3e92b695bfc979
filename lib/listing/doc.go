// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package listing owns the item collection: publishing, searching,
// and the ownership-gated modify/delete lifecycle.
//
// Delete and Modify succeed only when the requesting user owns the
// item, and both "no such item" and "not the owner" come back as the
// single ErrNotFoundOrForbidden. Collapsing the two cases is
// deliberate: a distinct not-found signal would let any caller probe
// which item ids exist.
//
// An item's type name is a free string that should reference a
// catalog type but is not enforced as a foreign key; the workflow
// layer keeps the relationship consistent in the delete-type
// direction.
package listing
