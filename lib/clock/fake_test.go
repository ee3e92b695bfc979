// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeAdvance(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	fake := NewFake(start)

	if !fake.Now().Equal(start) {
		t.Errorf("expected %v, got %v", start, fake.Now())
	}

	fake.Advance(90 * time.Second)
	want := start.Add(90 * time.Second)
	if !fake.Now().Equal(want) {
		t.Errorf("expected %v after advance, got %v", want, fake.Now())
	}
}

func TestFakeSet(t *testing.T) {
	fake := NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	target := time.Date(2026, 6, 1, 12, 30, 0, 0, time.UTC)

	fake.Set(target)
	if !fake.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, fake.Now())
	}
}

func TestRealIsWallClock(t *testing.T) {
	before := time.Now()
	now := Real().Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Real().Now() = %v outside [%v, %v]", now, before, after)
	}
}
