// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/revive-exchange/revive/lib/auth"
	"github.com/revive-exchange/revive/lib/catalog"
	"github.com/revive-exchange/revive/lib/clock"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/listing"
	"github.com/revive-exchange/revive/lib/snapshot"
	"github.com/revive-exchange/revive/lib/testutil"
)

func samplePayload() *Payload {
	return &Payload{
		Users: []*entity.User{
			{ID: "u-1", Username: "admin", Password: "123456", ContactInfo: "系统管理员", Role: entity.RoleAdministrator},
			{ID: "u-2", Username: "alice", Password: "pw", Role: entity.RoleOrdinary},
		},
		Items: []*entity.Item{
			{ID: "i-1", Name: "高数教材", Description: strings.Repeat("经典教材，", 40),
				TypeName: "书籍", OwnerID: "u-2", Status: entity.StatusPublished,
				CreateTime: "2026-08-28 10:00:00"},
		},
		ItemTypes: []*entity.ItemType{
			{ID: "1", Name: "书籍", Attributes: []string{"作者", "出版社"}},
		},
		Demands:      []*entity.Demand{},
		Applications: []*entity.Application{},
	}
}

func TestRoundTripAllTags(t *testing.T) {
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			var buffer bytes.Buffer
			if err := Write(&buffer, samplePayload(), tag); err != nil {
				t.Fatalf("Write: %v", err)
			}

			restored, err := Read(&buffer)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if len(restored.Users) != 2 || restored.Users[0].ContactInfo != "系统管理员" {
				t.Errorf("users mismatch: %+v", restored.Users)
			}
			if len(restored.Items) != 1 || restored.Items[0].Name != "高数教材" {
				t.Errorf("items mismatch: %+v", restored.Items)
			}
			if restored.Demands == nil || len(restored.Demands) != 0 {
				t.Errorf("empty demand collection did not survive: %#v", restored.Demands)
			}
		})
	}
}

func TestIncompressiblePayloadFallsBackToNone(t *testing.T) {
	// A tiny payload compresses to more than itself; Write must
	// store it raw and Read must still succeed.
	payload := &Payload{Users: []*entity.User{{ID: "u"}}}

	var buffer bytes.Buffer
	if err := Write(&buffer, payload, CompressionLZ4); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if tag := CompressionTag(buffer.Bytes()[4]); tag != CompressionNone {
		t.Errorf("expected tag downgrade to none, got %s", tag)
	}
	if _, err := Read(&buffer); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

func TestReadRejectsForeignFile(t *testing.T) {
	if _, err := Read(strings.NewReader("[]\n not an archive at all")); !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

func TestReadRejectsCorruptPayload(t *testing.T) {
	var buffer bytes.Buffer
	if err := Write(&buffer, samplePayload(), CompressionZstd); err != nil {
		t.Fatalf("Write: %v", err)
	}

	corrupted := buffer.Bytes()
	corrupted[len(corrupted)-1] ^= 0xff
	if _, err := Read(bytes.NewReader(corrupted)); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestReadRejectsTruncatedFile(t *testing.T) {
	var buffer bytes.Buffer
	if err := Write(&buffer, samplePayload(), CompressionZstd); err != nil {
		t.Fatalf("Write: %v", err)
	}

	truncated := buffer.Bytes()[:buffer.Len()-7]
	if _, err := Read(bytes.NewReader(truncated)); err == nil {
		t.Fatal("expected error for truncated archive, got nil")
	}
}

func TestParseCompressionTag(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		tag, err := ParseCompressionTag(name)
		if err != nil {
			t.Errorf("ParseCompressionTag(%s): %v", name, err)
		}
		if tag.String() != name {
			t.Errorf("round trip %s -> %s", name, tag)
		}
	}
	if _, err := ParseCompressionTag("gzip"); err == nil {
		t.Error("expected error for unknown tag name")
	}
}

func TestExportImportRestoresFullState(t *testing.T) {
	source := testutil.Store(t)
	fake := clock.NewFake(time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC))
	logger := testutil.Logger()

	authService, err := auth.New(source, fake, logger)
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	if err := authService.Register("alice", "pw", "room 402"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := catalog.New(source, logger); err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	listingService, err := listing.New(source, fake, logger)
	if err != nil {
		t.Fatalf("listing.New: %v", err)
	}
	session, err := authService.Login("alice", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := listingService.Publish("台灯", "九成新", "宿舍用品", "", session.UserID); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	archivePath := filepath.Join(t.TempDir(), "backup.rva")
	if err := Export(source, archivePath, CompressionZstd); err != nil {
		t.Fatalf("Export: %v", err)
	}

	target := testutil.Store(t)
	if err := Import(target, archivePath); err != nil {
		t.Fatalf("Import: %v", err)
	}

	users, err := snapshot.Load[*entity.User](target, auth.Collection)
	if err != nil {
		t.Fatalf("loading restored users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 restored users, got %d", len(users))
	}
	restored, err := listing.New(target, clock.Real(), logger)
	if err != nil {
		t.Fatalf("listing.New on restored store: %v", err)
	}
	published := restored.ListPublished()
	if len(published) != 1 || published[0].Name != "台灯" {
		t.Fatalf("restored item collection wrong: %+v", published)
	}
	types, err := snapshot.Load[*entity.ItemType](target, catalog.Collection)
	if err != nil {
		t.Fatalf("loading restored types: %v", err)
	}
	if len(types) != 6 {
		t.Errorf("expected 6 restored types, got %d", len(types))
	}
}
