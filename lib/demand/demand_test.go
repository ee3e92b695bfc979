// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package demand

import (
	"errors"
	"testing"
	"time"

	"github.com/revive-exchange/revive/lib/clock"
	"github.com/revive-exchange/revive/lib/testutil"
)

func TestPublishAndList(t *testing.T) {
	store := testutil.Store(t)
	fake := clock.NewFake(time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC))
	service, err := New(store, fake, testutil.Logger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first, err := service.Publish("书籍", "求线性代数教材", "u-1")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	fake.Advance(time.Minute)
	if _, err := service.Publish("电子产品", "求二手显示器", "u-2"); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if first.CreateTime != "2026-08-28 14:00:00" {
		t.Errorf("create_time = %q", first.CreateTime)
	}

	all := service.ListAll()
	if len(all) != 2 || all[0].ID != first.ID {
		t.Fatalf("unexpected ListAll order: %+v", all)
	}

	mine := service.ListByPublisher("u-1")
	if len(mine) != 1 || mine[0].Description != "求线性代数教材" {
		t.Fatalf("unexpected publisher view: %+v", mine)
	}

	// Durable across restart.
	restarted, err := New(store, clock.Real(), testutil.Logger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(restarted.ListAll()) != 2 {
		t.Errorf("demands not durable: %d after restart", len(restarted.ListAll()))
	}
}

func TestPublishRejectsEmptyFields(t *testing.T) {
	service, err := New(testutil.Store(t), clock.Real(), testutil.Logger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := service.Publish("书籍", "", "u-1"); !errors.Is(err, ErrEmptyField) {
		t.Errorf("empty description: got %v", err)
	}
	if _, err := service.Publish("书籍", "求教材", ""); !errors.Is(err, ErrEmptyField) {
		t.Errorf("empty publisher: got %v", err)
	}
	if len(service.ListAll()) != 0 {
		t.Errorf("failed publishes changed the collection")
	}
}
