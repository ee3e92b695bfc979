// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/revive-exchange/revive/lib/clock"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/snapshot"
)

// Collection is the snapshot name the user collection persists
// under.
const Collection = "users"

// Credentials of the administrator seeded on first boot. The
// password is stored in clear like every other password in the data
// format; operators are expected to change it after first login.
const (
	AdminUsername        = "admin"
	DefaultAdminPassword = "123456"
	adminContactInfo     = "系统管理员"
)

var (
	// ErrEmptyField reports a required field left blank.
	ErrEmptyField = errors.New("auth: required field is empty")
	// ErrDuplicateUsername reports a registration with a username
	// that is already taken (case-sensitive exact match).
	ErrDuplicateUsername = errors.New("auth: username already registered")
	// ErrInvalidCredentials reports a login whose username and
	// password do not exactly match a stored user.
	ErrInvalidCredentials = errors.New("auth: invalid username or password")
	// ErrNoSession reports an operation that requires a logged-in
	// session but got none (or a logged-out one).
	ErrNoSession = errors.New("auth: no active session")
	// ErrUserNotFound reports an id that resolves to no user.
	ErrUserNotFound = errors.New("auth: user not found")
)

// Session identifies a logged-in user. It is a value handed out by
// Login and invalidated by Logout; services and the workflow layer
// take it as an explicit parameter.
type Session struct {
	UserID   string
	Username string
	Role     string

	active bool
}

// Active reports whether the session is usable. A nil session is not
// active.
func (s *Session) Active() bool { return s != nil && s.active }

// IsAdministrator reports whether the session belongs to an
// administrator.
func (s *Session) IsAdministrator() bool {
	return s.Active() && s.Role == entity.RoleAdministrator
}

// ProfilePatch carries the optional profile fields EditProfile may
// change. A nil pointer or an empty string leaves the stored value
// unchanged.
type ProfilePatch struct {
	Password    *string
	ContactInfo *string
}

// Service owns the user collection.
type Service struct {
	store  *snapshot.Store
	clock  clock.Clock
	logger *slog.Logger
	users  []*entity.User
}

// New loads the user collection and guarantees the seeded
// administrator exists, persisting it on first boot. Construction
// fails if the snapshot is unreadable or the seed cannot be made
// durable.
func New(store *snapshot.Store, clk clock.Clock, logger *slog.Logger) (*Service, error) {
	users, err := snapshot.Load[*entity.User](store, Collection)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user.ApplyDefaults()
	}

	service := &Service{store: store, clock: clk, logger: logger, users: users}
	if err := service.seedAdmin(); err != nil {
		return nil, err
	}
	return service, nil
}

// seedAdmin creates the fixed administrator account iff no user
// named admin exists. Idempotent across restarts.
func (s *Service) seedAdmin() error {
	for _, user := range s.users {
		if user.Username == AdminUsername {
			return nil
		}
	}

	admin := &entity.User{
		ID:          uuid.NewString(),
		Username:    AdminUsername,
		Password:    DefaultAdminPassword,
		ContactInfo: adminContactInfo,
		Role:        entity.RoleAdministrator,
	}
	candidate := append(s.snapshotCopy(), admin)
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return fmt.Errorf("seeding administrator: %w", err)
	}
	s.users = candidate
	s.logger.Info("seeded administrator account", "username", AdminUsername)
	return nil
}

// Register creates an ordinary user. The username must be unused;
// matching is case-sensitive and exact.
func (s *Service) Register(username, password, contactInfo string) error {
	if username == "" || password == "" {
		return ErrEmptyField
	}
	for _, user := range s.users {
		if user.Username == username {
			return ErrDuplicateUsername
		}
	}

	newUser := &entity.User{
		ID:          uuid.NewString(),
		Username:    username,
		Password:    password,
		ContactInfo: contactInfo,
		Role:        entity.RoleOrdinary,
	}
	candidate := append(s.snapshotCopy(), newUser)
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return err
	}
	s.users = candidate
	s.logger.Info("registered user", "username", username, "user_id", newUser.ID)
	return nil
}

// Login returns a session for the user whose username and password
// both match exactly. No partial or case-insensitive matching.
func (s *Service) Login(username, password string) (*Session, error) {
	for _, user := range s.users {
		if user.Username == username && user.Password == password {
			s.logger.Info("login", "username", username, "role", user.Role)
			return &Session{
				UserID:   user.ID,
				Username: user.Username,
				Role:     user.Role,
				active:   true,
			}, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout invalidates the session. Idempotent; a nil session is a
// no-op.
func (s *Service) Logout(session *Session) {
	if session == nil {
		return
	}
	session.active = false
}

// EditProfile updates the session user's password and/or contact
// info. Absent or empty patch fields leave the stored values
// unchanged.
func (s *Service) EditProfile(session *Session, patch ProfilePatch) error {
	if !session.Active() {
		return ErrNoSession
	}

	position := s.indexByID(session.UserID)
	if position < 0 {
		return ErrUserNotFound
	}

	updated := s.users[position].Clone()
	if patch.Password != nil && *patch.Password != "" {
		updated.Password = *patch.Password
	}
	if patch.ContactInfo != nil && *patch.ContactInfo != "" {
		updated.ContactInfo = *patch.ContactInfo
	}

	candidate := s.snapshotCopy()
	candidate[position] = updated
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return err
	}
	s.users = candidate
	s.logger.Info("profile updated", "user_id", updated.ID)
	return nil
}

// SetRole changes a user's role. Used by the workflow layer when an
// admin-promotion application is approved.
func (s *Service) SetRole(userID, role string) error {
	position := s.indexByID(userID)
	if position < 0 {
		return ErrUserNotFound
	}

	updated := s.users[position].Clone()
	updated.Role = role

	candidate := s.snapshotCopy()
	candidate[position] = updated
	if err := snapshot.Save(s.store, Collection, candidate); err != nil {
		return err
	}
	s.users = candidate
	s.logger.Info("role changed", "user_id", userID, "role", role)
	return nil
}

// UserByID returns the user with the given id, or ErrUserNotFound.
// The returned record is a read-only view; mutate through the
// service.
func (s *Service) UserByID(userID string) (*entity.User, error) {
	position := s.indexByID(userID)
	if position < 0 {
		return nil, ErrUserNotFound
	}
	return s.users[position], nil
}

// Users returns the live ordered collection as a read-only view.
func (s *Service) Users() []*entity.User {
	return s.users
}

func (s *Service) indexByID(userID string) int {
	for position, user := range s.users {
		if user.ID == userID {
			return position
		}
	}
	return -1
}

// snapshotCopy returns a new slice sharing the current records, so a
// mutation can be staged and saved before it is committed to the
// service's own field.
func (s *Service) snapshotCopy() []*entity.User {
	return append([]*entity.User(nil), s.users...)
}
