// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/snapshot"
)

// Collection is the snapshot name the type collection persists
// under.
const Collection = "item_types"

var (
	// ErrEmptyField reports a type with no name.
	ErrEmptyField = errors.New("catalog: type name is empty")
	// ErrDuplicateType reports a name already used by another type
	// (case-sensitive exact match).
	ErrDuplicateType = errors.New("catalog: type name already exists")
	// ErrTypeNotFound reports an id that resolves to no type.
	ErrTypeNotFound = errors.New("catalog: item type not found")
)

// TypePatch carries the optional fields ModifyType may change. A nil
// name or nil/empty attribute slice leaves the stored value
// unchanged.
type TypePatch struct {
	Name       *string
	Attributes []string
}

// Service owns the item-type collection.
type Service struct {
	store  *snapshot.Store
	logger *slog.Logger
	types  []*entity.ItemType
}

// New loads the type collection and seeds the six default types if
// the collection is empty, persisting the seed.
func New(store *snapshot.Store, logger *slog.Logger) (*Service, error) {
	types, err := snapshot.Load[*entity.ItemType](store, Collection)
	if err != nil {
		return nil, err
	}
	for _, itemType := range types {
		itemType.ApplyDefaults()
	}

	service := &Service{store: store, logger: logger, types: types}
	if err := service.seedDefaults(); err != nil {
		return nil, err
	}
	return service, nil
}

// seedDefaults installs the built-in types on an empty collection.
// The fixed ids match the data files earlier releases wrote, so a
// pre-existing data directory with these ids is recognized as
// already seeded.
func (s *Service) seedDefaults() error {
	if len(s.types) > 0 {
		return nil
	}

	defaults := []*entity.ItemType{
		{ID: "1", Name: "书籍", Attributes: []string{"作者", "出版社", "ISBN", "新旧程度"}},
		{ID: "2", Name: "宿舍用品", Attributes: []string{"品牌", "新旧程度", "尺寸"}},
		{ID: "3", Name: "电子产品", Attributes: []string{"品牌", "型号", "新旧程度"}},
		{ID: "4", Name: "服装", Attributes: []string{"品牌", "尺码", "新旧程度"}},
		{ID: "5", Name: "体育用品", Attributes: []string{"品牌", "新旧程度"}},
		{ID: "6", Name: "其他", Attributes: []string{"备注"}},
	}
	if err := snapshot.Save(s.store, Collection, defaults); err != nil {
		return fmt.Errorf("seeding default item types: %w", err)
	}
	s.types = defaults
	s.logger.Info("seeded default item types", "count", len(defaults))
	return nil
}

// AddType creates a new item type with a unique name.
func (s *Service) AddType(name string, attributes []string) error {
	if name == "" {
		return ErrEmptyField
	}
	for _, itemType := range s.types {
		if itemType.Name == name {
			return ErrDuplicateType
		}
	}

	newType := &entity.ItemType{
		ID:         uuid.NewString(),
		Name:       name,
		Attributes: append([]string(nil), attributes...),
	}
	newType.ApplyDefaults()

	candidate := append(s.snapshotCopy(), newType)
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return err
	}
	s.types = candidate
	s.logger.Info("added item type", "type_name", name, "type_id", newType.ID)
	return nil
}

// ModifyType applies a partial update to an existing type. A renamed
// type must not collide with another type's name.
func (s *Service) ModifyType(typeID string, patch TypePatch) error {
	position := s.indexByID(typeID)
	if position < 0 {
		return ErrTypeNotFound
	}

	updated := s.types[position].Clone()
	if patch.Name != nil && *patch.Name != "" {
		for _, itemType := range s.types {
			if itemType.ID != typeID && itemType.Name == *patch.Name {
				return ErrDuplicateType
			}
		}
		updated.Name = *patch.Name
	}
	if len(patch.Attributes) > 0 {
		updated.Attributes = append([]string(nil), patch.Attributes...)
	}

	candidate := s.snapshotCopy()
	candidate[position] = updated
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return err
	}
	s.types = candidate
	s.logger.Info("modified item type", "type_id", typeID)
	return nil
}

// RemoveType deletes a type and persists the filtered collection.
// The no-items-reference precondition belongs to the workflow layer;
// calling this directly can orphan item records.
func (s *Service) RemoveType(typeID string) error {
	position := s.indexByID(typeID)
	if position < 0 {
		return ErrTypeNotFound
	}

	removed := s.types[position]
	candidate := append(s.snapshotCopy()[:position], s.types[position+1:]...)
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return err
	}
	s.types = candidate
	s.logger.Info("removed item type", "type_id", typeID, "type_name", removed.Name)
	return nil
}

// ListTypes returns the live ordered collection as a read-only view.
// Callers must not mutate the returned slice or its records; all
// writes go through the service.
func (s *Service) ListTypes() []*entity.ItemType {
	return s.types
}

// TypeByID returns the type with the given id, or ErrTypeNotFound.
func (s *Service) TypeByID(typeID string) (*entity.ItemType, error) {
	position := s.indexByID(typeID)
	if position < 0 {
		return nil, ErrTypeNotFound
	}
	return s.types[position], nil
}

func (s *Service) indexByID(typeID string) int {
	for position, itemType := range s.types {
		if itemType.ID == typeID {
			return position
		}
	}
	return -1
}

func (s *Service) snapshotCopy() []*entity.ItemType {
	return append([]*entity.ItemType(nil), s.types...)
}
