// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package request owns the administrative application collection:
// submit, list, and the approve/reject decision.
//
// The intended state machine is pending→approved or pending→rejected,
// terminal either way. Decide itself overwrites the status
// unconditionally and does NOT check that the application is still
// pending; that precondition is the caller's responsibility, which
// leaves room for a future workflow that intentionally re-decides.
// The shipped call paths all go through lib/workflow, which does
// enforce pending-only.
package request

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/revive-exchange/revive/lib/clock"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/snapshot"
)

// Collection is the snapshot name the application collection
// persists under.
const Collection = "applications"

var (
	// ErrEmptyField reports a submission with no type or no
	// applicant.
	ErrEmptyField = errors.New("request: required field is empty")
	// ErrApplicationNotFound reports an id that resolves to no
	// application.
	ErrApplicationNotFound = errors.New("request: application not found")
	// ErrInvalidStatus reports a decision that is neither approved
	// nor rejected.
	ErrInvalidStatus = errors.New("request: decision must be approved or rejected")
)

// Service owns the application collection.
type Service struct {
	store        *snapshot.Store
	clock        clock.Clock
	logger       *slog.Logger
	applications []*entity.Application
}

// New loads the application collection.
func New(store *snapshot.Store, clk clock.Clock, logger *slog.Logger) (*Service, error) {
	applications, err := snapshot.Load[*entity.Application](store, Collection)
	if err != nil {
		return nil, err
	}
	for _, application := range applications {
		application.ApplyDefaults()
	}
	return &Service{store: store, clock: clk, logger: logger, applications: applications}, nil
}

// Submit creates a pending application and returns the stored
// record. appType is a free string; the workflow layer gives special
// meaning to entity.AppTypeBecomeAdmin.
func (s *Service) Submit(appType, content, applicantID string) (*entity.Application, error) {
	if appType == "" || applicantID == "" {
		return nil, ErrEmptyField
	}

	application := &entity.Application{
		ID:          uuid.NewString(),
		Type:        appType,
		Content:     content,
		Status:      entity.AppStatusPending,
		ApplicantID: applicantID,
		CreateTime:  entity.FormatTime(s.clock.Now()),
	}
	candidate := append(s.snapshotCopy(), application)
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return nil, err
	}
	s.applications = candidate
	s.logger.Info("submitted application", "application_id", application.ID,
		"app_type", appType, "applicant_id", applicantID)
	return application, nil
}

// ListPending returns the applications still awaiting a decision, in
// insertion order.
func (s *Service) ListPending() []*entity.Application {
	var pending []*entity.Application
	for _, application := range s.applications {
		if application.Status == entity.AppStatusPending {
			pending = append(pending, application)
		}
	}
	return pending
}

// ListAll returns the full collection in insertion order.
func (s *Service) ListAll() []*entity.Application {
	return s.applications
}

// ByID returns the application with the given id, or
// ErrApplicationNotFound.
func (s *Service) ByID(applicationID string) (*entity.Application, error) {
	position := s.indexByID(applicationID)
	if position < 0 {
		return nil, ErrApplicationNotFound
	}
	return s.applications[position], nil
}

// Decide overwrites the application's status with approved or
// rejected and persists. It does not require the current status to
// be pending; see the package comment for why.
func (s *Service) Decide(applicationID, status string) error {
	if status != entity.AppStatusApproved && status != entity.AppStatusRejected {
		return ErrInvalidStatus
	}
	position := s.indexByID(applicationID)
	if position < 0 {
		return ErrApplicationNotFound
	}

	updated := s.applications[position].Clone()
	updated.Status = status

	candidate := s.snapshotCopy()
	candidate[position] = updated
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return err
	}
	s.applications = candidate
	s.logger.Info("decided application", "application_id", applicationID, "status", status)
	return nil
}

func (s *Service) indexByID(applicationID string) int {
	for position, application := range s.applications {
		if application.ID == applicationID {
			return position
		}
	}
	return -1
}

func (s *Service) snapshotCopy() []*entity.Application {
	return append([]*entity.Application(nil), s.applications...)
}
