// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/revive-exchange/revive/lib/clock"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/snapshot"
	"github.com/revive-exchange/revive/lib/testutil"
)

func newService(t *testing.T) (*Service, *snapshot.Store) {
	t.Helper()
	store := testutil.Store(t)
	service, err := New(store, clock.NewFake(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)), testutil.Logger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return service, store
}

func TestSeedsExactlyOneAdmin(t *testing.T) {
	service, store := newService(t)

	admins := 0
	for _, user := range service.Users() {
		if user.Username == AdminUsername {
			admins++
			if user.Role != entity.RoleAdministrator {
				t.Errorf("seeded admin has role %q", user.Role)
			}
		}
	}
	if admins != 1 {
		t.Fatalf("expected exactly one admin, got %d", admins)
	}

	// Reconstruct over the same storage: the seed must not repeat.
	again, err := New(store, clock.Real(), testutil.Logger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(again.Users()) != len(service.Users()) {
		t.Errorf("re-construction changed the collection: %d -> %d users",
			len(service.Users()), len(again.Users()))
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	service, _ := newService(t)

	if err := service.Register("alice", "pw1", "room 402"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := service.Register("alice", "pw2", "room 403")
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// The failed registration must not have changed the collection.
	count := 0
	for _, user := range service.Users() {
		if user.Username == "alice" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one alice, got %d", count)
	}
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	service, _ := newService(t)

	if err := service.Register("", "pw", ""); !errors.Is(err, ErrEmptyField) {
		t.Errorf("empty username: expected ErrEmptyField, got %v", err)
	}
	if err := service.Register("bob", "", ""); !errors.Is(err, ErrEmptyField) {
		t.Errorf("empty password: expected ErrEmptyField, got %v", err)
	}
}

func TestLoginRequiresExactMatch(t *testing.T) {
	service, _ := newService(t)
	if err := service.Register("alice", "secret", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []struct {
		name               string
		username, password string
	}{
		{"wrong password", "alice", "Secret"},
		{"case-shifted username", "Alice", "secret"},
		{"unknown user", "mallory", "secret"},
		{"empty credentials", "", ""},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := service.Login(testCase.username, testCase.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}

	session, err := service.Login("alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !session.Active() || session.Username != "alice" || session.Role != entity.RoleOrdinary {
		t.Errorf("unexpected session: %+v", session)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	service, _ := newService(t)
	session, err := service.Login(AdminUsername, DefaultAdminPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	service.Logout(session)
	service.Logout(session)
	service.Logout(nil)

	if session.Active() {
		t.Error("session still active after logout")
	}
	if err := service.EditProfile(session, ProfilePatch{}); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after logout, got %v", err)
	}
}

func TestEditProfilePartialUpdate(t *testing.T) {
	service, _ := newService(t)
	if err := service.Register("alice", "secret", "room 402"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	session, err := service.Login("alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	newContact := "room 501"
	empty := ""
	if err := service.EditProfile(session, ProfilePatch{ContactInfo: &newContact, Password: &empty}); err != nil {
		t.Fatalf("EditProfile: %v", err)
	}

	user, err := service.UserByID(session.UserID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if user.ContactInfo != newContact {
		t.Errorf("contact info not updated: %q", user.ContactInfo)
	}
	// Empty string means "leave unchanged".
	if user.Password != "secret" {
		t.Errorf("password changed by empty patch field: %q", user.Password)
	}

	// Old password still valid for login.
	if _, err := service.Login("alice", "secret"); err != nil {
		t.Errorf("login with unchanged password: %v", err)
	}
}

func TestEditProfileSurvivesRestart(t *testing.T) {
	service, store := newService(t)
	if err := service.Register("alice", "secret", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	session, err := service.Login("alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	newPassword := "better-secret"
	if err := service.EditProfile(session, ProfilePatch{Password: &newPassword}); err != nil {
		t.Fatalf("EditProfile: %v", err)
	}

	restarted, err := New(store, clock.Real(), testutil.Logger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := restarted.Login("alice", newPassword); err != nil {
		t.Errorf("login after restart with new password: %v", err)
	}
}

func TestSetRolePromotes(t *testing.T) {
	service, _ := newService(t)
	if err := service.Register("alice", "secret", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	session, err := service.Login("alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := service.SetRole(session.UserID, entity.RoleAdministrator); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	user, err := service.UserByID(session.UserID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if user.Role != entity.RoleAdministrator {
		t.Errorf("role not promoted: %q", user.Role)
	}

	if err := service.SetRole("no-such-user", entity.RoleAdministrator); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
