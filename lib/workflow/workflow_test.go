// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/revive-exchange/revive/lib/auth"
	"github.com/revive-exchange/revive/lib/catalog"
	"github.com/revive-exchange/revive/lib/clock"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/listing"
	"github.com/revive-exchange/revive/lib/request"
	"github.com/revive-exchange/revive/lib/testutil"
)

type fixture struct {
	auth         *auth.Service
	catalog      *catalog.Service
	listing      *listing.Service
	request      *request.Service
	orchestrator *Orchestrator
	admin        *auth.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.Store(t)
	logger := testutil.Logger()
	fake := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))

	authService, err := auth.New(store, fake, logger)
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	catalogService, err := catalog.New(store, logger)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	listingService, err := listing.New(store, fake, logger)
	if err != nil {
		t.Fatalf("listing.New: %v", err)
	}
	requestService, err := request.New(store, fake, logger)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}

	adminSession, err := authService.Login(auth.AdminUsername, auth.DefaultAdminPassword)
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	return &fixture{
		auth:         authService,
		catalog:      catalogService,
		listing:      listingService,
		request:      requestService,
		orchestrator: New(authService, catalogService, listingService, requestService, logger),
		admin:        adminSession,
	}
}

func (f *fixture) registerUser(t *testing.T, username string) *auth.Session {
	t.Helper()
	if err := f.auth.Register(username, "pw", ""); err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	session, err := f.auth.Login(username, "pw")
	if err != nil {
		t.Fatalf("Login(%s): %v", username, err)
	}
	return session
}

func TestApproveBecomeAdminPromotesApplicant(t *testing.T) {
	f := newFixture(t)
	applicant := f.registerUser(t, "alice")

	application, err := f.request.Submit(entity.AppTypeBecomeAdmin, "alice requests promotion", applicant.UserID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := f.orchestrator.Approve(f.admin, application.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	user, err := f.auth.UserByID(applicant.UserID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if user.Role != entity.RoleAdministrator {
		t.Errorf("applicant role = %q", user.Role)
	}
	decided, _ := f.request.ByID(application.ID)
	if decided.Status != entity.AppStatusApproved {
		t.Errorf("application status = %q", decided.Status)
	}
}

func TestRejectHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	applicant := f.registerUser(t, "bob")

	application, err := f.request.Submit(entity.AppTypeBecomeAdmin, "", applicant.UserID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := f.orchestrator.Reject(f.admin, application.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	user, _ := f.auth.UserByID(applicant.UserID)
	if user.Role != entity.RoleOrdinary {
		t.Errorf("rejected applicant was promoted: %q", user.Role)
	}
	decided, _ := f.request.ByID(application.ID)
	if decided.Status != entity.AppStatusRejected {
		t.Errorf("application status = %q", decided.Status)
	}
}

func TestDecisionsAreTerminal(t *testing.T) {
	f := newFixture(t)
	applicant := f.registerUser(t, "carol")

	application, err := f.request.Submit(entity.AppTypeBecomeAdmin, "", applicant.UserID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := f.orchestrator.Approve(f.admin, application.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if err := f.orchestrator.Approve(f.admin, application.ID); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("second approve: expected ErrAlreadyDecided, got %v", err)
	}
	if err := f.orchestrator.Reject(f.admin, application.ID); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("reject after approve: expected ErrAlreadyDecided, got %v", err)
	}
	decided, _ := f.request.ByID(application.ID)
	if decided.Status != entity.AppStatusApproved {
		t.Errorf("terminal status changed: %q", decided.Status)
	}
}

func TestDecisionsRequireAdministrator(t *testing.T) {
	f := newFixture(t)
	ordinary := f.registerUser(t, "dave")

	application, err := f.request.Submit(entity.AppTypeBecomeAdmin, "", ordinary.UserID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := f.orchestrator.Approve(ordinary, application.ID); !errors.Is(err, ErrNotAdministrator) {
		t.Errorf("ordinary approve: got %v", err)
	}
	if err := f.orchestrator.Approve(nil, application.ID); !errors.Is(err, ErrNotAdministrator) {
		t.Errorf("nil session approve: got %v", err)
	}
	// A logged-out admin session no longer qualifies.
	f.auth.Logout(f.admin)
	if err := f.orchestrator.Approve(f.admin, application.ID); !errors.Is(err, ErrNotAdministrator) {
		t.Errorf("logged-out approve: got %v", err)
	}
}

func TestApproveUnknownApplication(t *testing.T) {
	f := newFixture(t)
	if err := f.orchestrator.Approve(f.admin, "no-such-id"); !errors.Is(err, request.ErrApplicationNotFound) {
		t.Errorf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestRemoveItemTypeGuardedByReferences(t *testing.T) {
	f := newFixture(t)
	owner := f.registerUser(t, "erin")

	bookType := f.catalog.ListTypes()[0]
	if _, err := f.listing.Publish("高数教材", "", bookType.Name, "", owner.UserID); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	// Referenced: refused, type stays.
	if err := f.orchestrator.RemoveItemType(f.admin, bookType.ID); !errors.Is(err, ErrTypeInUse) {
		t.Fatalf("expected ErrTypeInUse, got %v", err)
	}
	if _, err := f.catalog.TypeByID(bookType.ID); err != nil {
		t.Error("refused removal still deleted the type")
	}

	// Unreferenced: removed. A delisted item still counts as a
	// reference, so clear it by delete rather than status change.
	items := f.listing.ListByOwner(owner.UserID)
	if err := f.listing.Delete(items[0].ID, owner.UserID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.orchestrator.RemoveItemType(f.admin, bookType.ID); err != nil {
		t.Fatalf("RemoveItemType: %v", err)
	}
	if _, err := f.catalog.TypeByID(bookType.ID); !errors.Is(err, catalog.ErrTypeNotFound) {
		t.Error("type still present after removal")
	}
}

func TestRemoveItemTypeCountsAnyStatus(t *testing.T) {
	f := newFixture(t)
	owner := f.registerUser(t, "frank")

	sportType := f.catalog.ListTypes()[4]
	item, err := f.listing.Publish("球拍", "", sportType.Name, "", owner.UserID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	delisted := entity.StatusDelisted
	if err := f.listing.Modify(item.ID, owner.UserID, listing.ItemPatch{Status: &delisted}); err != nil {
		t.Fatalf("Modify: %v", err)
	}

	if err := f.orchestrator.RemoveItemType(f.admin, sportType.ID); !errors.Is(err, ErrTypeInUse) {
		t.Errorf("delisted item did not block removal: %v", err)
	}
}

func TestRemoveItemTypeRequiresAdministrator(t *testing.T) {
	f := newFixture(t)
	ordinary := f.registerUser(t, "grace")
	anyType := f.catalog.ListTypes()[5]

	if err := f.orchestrator.RemoveItemType(ordinary, anyType.ID); !errors.Is(err, ErrNotAdministrator) {
		t.Errorf("ordinary removal: got %v", err)
	}
}
