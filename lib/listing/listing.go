// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/revive-exchange/revive/lib/clock"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/snapshot"
)

// Collection is the snapshot name the item collection persists
// under.
const Collection = "items"

// AllTypes is the sentinel type filter meaning "no type filter". UI
// pickers need a concrete list entry for it; the empty string means
// the same thing for callers with no picker.
const AllTypes = "all"

var (
	// ErrEmptyField reports a publish with no name or no owner.
	ErrEmptyField = errors.New("listing: required field is empty")
	// ErrNotFoundOrForbidden reports a mutation on an item that does
	// not exist or is not owned by the requestor. The two cases are
	// indistinguishable on purpose.
	ErrNotFoundOrForbidden = errors.New("listing: item not found or not owned by requestor")
	// ErrInvalidStatus reports a patch with a status outside
	// published/traded/delisted.
	ErrInvalidStatus = errors.New("listing: invalid item status")
)

// ItemPatch carries the optional fields Modify may change. A nil
// pointer leaves the stored value unchanged. There is no OwnerID
// field: ownership is immutable after creation.
type ItemPatch struct {
	Name        *string
	Description *string
	TypeName    *string
	ContactInfo *string
	Image       *string
	Status      *string
}

func (p ItemPatch) validate() error {
	if p.Status == nil {
		return nil
	}
	switch *p.Status {
	case entity.StatusPublished, entity.StatusTraded, entity.StatusDelisted:
		return nil
	}
	return ErrInvalidStatus
}

// Service owns the item collection.
type Service struct {
	store  *snapshot.Store
	clock  clock.Clock
	logger *slog.Logger
	items  []*entity.Item
}

// New loads the item collection.
func New(store *snapshot.Store, clk clock.Clock, logger *slog.Logger) (*Service, error) {
	items, err := snapshot.Load[*entity.Item](store, Collection)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.ApplyDefaults()
	}
	return &Service{store: store, clock: clk, logger: logger, items: items}, nil
}

// Publish creates an item owned by ownerID with status published and
// returns the stored record.
func (s *Service) Publish(name, description, typeName, contactInfo, ownerID string) (*entity.Item, error) {
	if name == "" || ownerID == "" {
		return nil, ErrEmptyField
	}

	item := &entity.Item{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		TypeName:    typeName,
		ContactInfo: contactInfo,
		OwnerID:     ownerID,
		Status:      entity.StatusPublished,
		CreateTime:  entity.FormatTime(s.clock.Now()),
	}
	candidate := append(s.snapshotCopy(), item)
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return nil, err
	}
	s.items = candidate
	s.logger.Info("published item", "item_id", item.ID, "item_name", name, "owner_id", ownerID)
	return item, nil
}

// Delete removes an item. Succeeds only when the item exists and
// requestorID is its owner; both failures are
// ErrNotFoundOrForbidden.
func (s *Service) Delete(itemID, requestorID string) error {
	position := s.indexOwned(itemID, requestorID)
	if position < 0 {
		return ErrNotFoundOrForbidden
	}

	candidate := append(s.snapshotCopy()[:position], s.items[position+1:]...)
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return err
	}
	s.items = candidate
	s.logger.Info("deleted item", "item_id", itemID, "owner_id", requestorID)
	return nil
}

// Modify applies a typed partial update to an owned item. Same
// ownership gate and failure signal as Delete.
func (s *Service) Modify(itemID, requestorID string, patch ItemPatch) error {
	if err := patch.validate(); err != nil {
		return err
	}
	position := s.indexOwned(itemID, requestorID)
	if position < 0 {
		return ErrNotFoundOrForbidden
	}

	updated := s.items[position].Clone()
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.TypeName != nil {
		updated.TypeName = *patch.TypeName
	}
	if patch.ContactInfo != nil {
		updated.ContactInfo = *patch.ContactInfo
	}
	if patch.Image != nil {
		updated.Image = *patch.Image
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}

	candidate := s.snapshotCopy()
	candidate[position] = updated
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return err
	}
	s.items = candidate
	s.logger.Info("modified item", "item_id", itemID)
	return nil
}

// ListPublished returns all published items in insertion order.
func (s *Service) ListPublished() []*entity.Item {
	var published []*entity.Item
	for _, item := range s.items {
		if item.Status == entity.StatusPublished {
			published = append(published, item)
		}
	}
	return published
}

// Search filters the collection by type name, then by keyword, then
// by published status. The type filter is skipped when typeName is
// empty or AllTypes; the keyword is a case-sensitive substring match
// against name or description. The result is always a subset of
// ListPublished.
func (s *Service) Search(typeName, keyword string) []*entity.Item {
	results := s.items

	if typeName != "" && typeName != AllTypes {
		var filtered []*entity.Item
		for _, item := range results {
			if item.TypeName == typeName {
				filtered = append(filtered, item)
			}
		}
		results = filtered
	}

	if keyword != "" {
		var filtered []*entity.Item
		for _, item := range results {
			if strings.Contains(item.Name, keyword) || strings.Contains(item.Description, keyword) {
				filtered = append(filtered, item)
			}
		}
		results = filtered
	}

	var published []*entity.Item
	for _, item := range results {
		if item.Status == entity.StatusPublished {
			published = append(published, item)
		}
	}
	return published
}

// ListByOwner returns every item owned by ownerID regardless of
// status. This is the owner's management view, unlike the
// buyer-facing ListPublished and Search.
func (s *Service) ListByOwner(ownerID string) []*entity.Item {
	var owned []*entity.Item
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			owned = append(owned, item)
		}
	}
	return owned
}

// CountByTypeName returns how many items (any status) reference the
// given type name. The workflow layer uses this as the type-removal
// guard.
func (s *Service) CountByTypeName(typeName string) int {
	count := 0
	for _, item := range s.items {
		if item.TypeName == typeName {
			count++
		}
	}
	return count
}

// ItemByID returns the item with the given id, or nil. Read-only
// view for the presentation layer; mutations go through Modify.
func (s *Service) ItemByID(itemID string) *entity.Item {
	for _, item := range s.items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// indexOwned returns the position of the item iff it exists and is
// owned by requestorID, else -1. Not distinguishing the two cases is
// what keeps the failure signal single.
func (s *Service) indexOwned(itemID, requestorID string) int {
	for position, item := range s.items {
		if item.ID == itemID && item.OwnerID == requestorID {
			return position
		}
	}
	return -1
}

func (s *Service) snapshotCopy() []*entity.Item {
	return append([]*entity.Item(nil), s.items...)
}
