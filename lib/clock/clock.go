// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. Production code
// injects Real(); tests inject a Fake with deterministic time
// control.
//
// Every production function that needs the current time (creation
// timestamps on items, demands, applications) should accept a Clock
// or be a method on a struct with a Clock field instead of calling
// time.Now directly.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
