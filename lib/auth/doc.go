// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth owns the user collection: registration, login,
// profile edits, and the seeded administrator account.
//
// Sessions are explicit values. Login returns a *Session that the
// caller passes into every operation acting on its behalf; there is
// no hidden current-user state inside the service, which keeps the
// call contract testable and makes the single-user assumption
// visible at every call site.
//
// Expected failures (duplicate username, bad credentials, missing
// session) are sentinel errors checked with errors.Is; a save
// failure surfaces the wrapped I/O error and leaves the in-memory
// collection unchanged.
package auth
