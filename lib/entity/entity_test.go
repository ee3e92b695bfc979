// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUserDefaultsMissingRole(t *testing.T) {
	// A record written before the role field existed.
	raw := `{"user_id":"u-1","username":"alice","password":"pw","contact_info":"room 402"}`

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	user.ApplyDefaults()

	if user.Role != RoleOrdinary {
		t.Errorf("expected role %q, got %q", RoleOrdinary, user.Role)
	}
}

func TestItemDefaultsMissingStatus(t *testing.T) {
	raw := `{"item_id":"i-1","item_name":"台灯","description":"九成新","item_type":"宿舍用品","contact_info":"wx:abc","owner_id":"u-1"}`

	var item Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	item.ApplyDefaults()

	if item.Status != StatusPublished {
		t.Errorf("expected status %q, got %q", StatusPublished, item.Status)
	}
	if item.Image != "" {
		t.Errorf("expected empty image, got %q", item.Image)
	}
}

func TestItemTypeDefaultsNilAttributes(t *testing.T) {
	raw := `{"type_id":"t-1","type_name":"其他"}`

	var itemType ItemType
	if err := json.Unmarshal([]byte(raw), &itemType); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	itemType.ApplyDefaults()

	if itemType.Attributes == nil {
		t.Error("expected empty attribute slice, got nil")
	}
	if len(itemType.Attributes) != 0 {
		t.Errorf("expected no attributes, got %v", itemType.Attributes)
	}
}

func TestApplicationDefaultsMissingStatus(t *testing.T) {
	raw := `{"application_id":"a-1","app_type":"become-admin","content":"please","applicant_id":"u-1"}`

	var application Application
	if err := json.Unmarshal([]byte(raw), &application); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	application.ApplyDefaults()

	if application.Status != AppStatusPending {
		t.Errorf("expected status %q, got %q", AppStatusPending, application.Status)
	}
}

func TestItemTypeCloneIsIndependent(t *testing.T) {
	original := &ItemType{ID: "t-1", Name: "书籍", Attributes: []string{"作者", "出版社"}}
	copied := original.Clone()

	copied.Attributes[0] = "mutated"
	if original.Attributes[0] != "作者" {
		t.Error("Clone shares the attribute slice with the original")
	}
}

func TestFieldNamesAreStable(t *testing.T) {
	// The serialized field names are the on-disk contract; a rename
	// would silently orphan every existing snapshot.
	item := Item{ID: "i", Name: "n", Description: "d", TypeName: "t",
		ContactInfo: "c", OwnerID: "o", Status: StatusPublished, CreateTime: "2026-01-01 00:00:00"}
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"item_id", "item_name", "description", "item_type",
		"image", "contact_info", "status", "owner_id", "create_time"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("serialized item is missing field %q", field)
		}
	}
}

func TestFormatTime(t *testing.T) {
	moment := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	if got := FormatTime(moment); got != "2026-08-28 15:04:05" {
		t.Errorf("FormatTime = %q", got)
	}
}
