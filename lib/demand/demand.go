// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package demand owns the "wanted" post collection. Demands are
// immutable once published: the core defines no edit or delete
// operation, and the presentation layer re-posts instead of editing.
package demand

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/revive-exchange/revive/lib/clock"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/snapshot"
)

// Collection is the snapshot name the demand collection persists
// under.
const Collection = "demands"

// ErrEmptyField reports a publish with no description or no
// publisher.
var ErrEmptyField = errors.New("demand: required field is empty")

// Service owns the demand collection.
type Service struct {
	store   *snapshot.Store
	clock   clock.Clock
	logger  *slog.Logger
	demands []*entity.Demand
}

// New loads the demand collection.
func New(store *snapshot.Store, clk clock.Clock, logger *slog.Logger) (*Service, error) {
	demands, err := snapshot.Load[*entity.Demand](store, Collection)
	if err != nil {
		return nil, err
	}
	for _, posted := range demands {
		posted.ApplyDefaults()
	}
	return &Service{store: store, clock: clk, logger: logger, demands: demands}, nil
}

// Publish creates a demand and returns the stored record.
func (s *Service) Publish(typeName, description, publisherID string) (*entity.Demand, error) {
	if description == "" || publisherID == "" {
		return nil, ErrEmptyField
	}

	posted := &entity.Demand{
		ID:          uuid.NewString(),
		TypeName:    typeName,
		Description: description,
		PublisherID: publisherID,
		CreateTime:  entity.FormatTime(s.clock.Now()),
	}
	candidate := append(append([]*entity.Demand(nil), s.demands...), posted)
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return nil, err
	}
	s.demands = candidate
	s.logger.Info("published demand", "demand_id", posted.ID, "publisher_id", publisherID)
	return posted, nil
}

// ListAll returns the full collection in insertion order.
func (s *Service) ListAll() []*entity.Demand {
	return s.demands
}

// ListByPublisher returns the demands posted by one user.
func (s *Service) ListByPublisher(publisherID string) []*entity.Demand {
	var posted []*entity.Demand
	for _, candidate := range s.demands {
		if candidate.PublisherID == publisherID {
			posted = append(posted, candidate)
		}
	}
	return posted
}
