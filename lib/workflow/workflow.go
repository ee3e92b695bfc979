// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package workflow performs the cross-service sequences that no
// single service can own: deciding applications (with the
// admin-promotion side effect) and removing item types (guarded by
// the no-items-reference check).
//
// Each operation is one synchronous check-then-act call so the
// presentation layer never has to sequence service calls itself. The
// sequences are not transactions: the services persist one
// collection at a time, and a save failure between the two steps of
// an approval leaves the first step durable (for become-admin the
// promotion lands first, so a retry of the approval converges).
package workflow

import (
	"errors"
	"log/slog"

	"github.com/revive-exchange/revive/lib/auth"
	"github.com/revive-exchange/revive/lib/catalog"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/listing"
	"github.com/revive-exchange/revive/lib/request"
)

var (
	// ErrNotAdministrator reports a decision or removal attempted by
	// a session without the administrator role.
	ErrNotAdministrator = errors.New("workflow: administrator role required")
	// ErrAlreadyDecided reports a decision on an application that is
	// no longer pending.
	ErrAlreadyDecided = errors.New("workflow: application already decided")
	// ErrTypeInUse reports a type removal while items still
	// reference the type's name.
	ErrTypeInUse = errors.New("workflow: items still reference this type")
)

// Orchestrator wires the services together for the cross-collection
// operations.
type Orchestrator struct {
	auth    *auth.Service
	catalog *catalog.Service
	listing *listing.Service
	request *request.Service
	logger  *slog.Logger
}

// New returns an Orchestrator over the given services.
func New(authService *auth.Service, catalogService *catalog.Service,
	listingService *listing.Service, requestService *request.Service,
	logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		auth:    authService,
		catalog: catalogService,
		listing: listingService,
		request: requestService,
		logger:  logger,
	}
}

// Approve marks a pending application approved. For become-admin
// applications the applicant is promoted first, then the application
// is marked; the ordering makes a retry after a mid-sequence save
// failure converge on the approved state.
func (o *Orchestrator) Approve(session *auth.Session, applicationID string) error {
	application, err := o.gate(session, applicationID)
	if err != nil {
		return err
	}

	if application.Type == entity.AppTypeBecomeAdmin {
		if err := o.auth.SetRole(application.ApplicantID, entity.RoleAdministrator); err != nil {
			return err
		}
		o.logger.Info("promoted applicant to administrator",
			"application_id", applicationID, "applicant_id", application.ApplicantID)
	}
	return o.request.Decide(applicationID, entity.AppStatusApproved)
}

// Reject marks a pending application rejected. No side effects.
func (o *Orchestrator) Reject(session *auth.Session, applicationID string) error {
	if _, err := o.gate(session, applicationID); err != nil {
		return err
	}
	return o.request.Decide(applicationID, entity.AppStatusRejected)
}

// gate checks the administrator session and the pending-only
// precondition that request.Decide itself does not enforce.
func (o *Orchestrator) gate(session *auth.Session, applicationID string) (*entity.Application, error) {
	if !session.IsAdministrator() {
		return nil, ErrNotAdministrator
	}
	application, err := o.request.ByID(applicationID)
	if err != nil {
		return nil, err
	}
	if application.Status != entity.AppStatusPending {
		return nil, ErrAlreadyDecided
	}
	return application, nil
}

// RemoveItemType deletes a catalog type after verifying no item of
// any status still references its name. Check-then-delete in that
// order; the window between the two steps is acceptable in the
// single-process model.
func (o *Orchestrator) RemoveItemType(session *auth.Session, typeID string) error {
	if !session.IsAdministrator() {
		return ErrNotAdministrator
	}
	itemType, err := o.catalog.TypeByID(typeID)
	if err != nil {
		return err
	}
	if count := o.listing.CountByTypeName(itemType.Name); count > 0 {
		o.logger.Warn("refused to remove referenced item type",
			"type_name", itemType.Name, "item_count", count)
		return ErrTypeInUse
	}
	return o.catalog.RemoveType(typeID)
}
