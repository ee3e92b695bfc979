// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import "time"

// TimeLayout is the wall-clock layout used for every create_time
// field. It is a stored-data format constant; changing it breaks
// snapshot compatibility.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t in the stored create_time layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// User roles.
const (
	// RoleOrdinary is the role assigned at registration.
	RoleOrdinary = "ordinary"
	// RoleAdministrator marks a user who can decide applications and
	// manage the item-type catalog.
	RoleAdministrator = "administrator"
)

// Item statuses.
const (
	// StatusPublished means the item is visible in the market.
	StatusPublished = "published"
	// StatusTraded means the owner marked the item as handed over.
	StatusTraded = "traded"
	// StatusDelisted means the owner withdrew the item from the
	// market without deleting it.
	StatusDelisted = "delisted"
)

// Application statuses.
const (
	// AppStatusPending is the initial status of every application.
	AppStatusPending = "pending"
	// AppStatusApproved is terminal.
	AppStatusApproved = "approved"
	// AppStatusRejected is terminal.
	AppStatusRejected = "rejected"
)

// Well-known application types. The app_type field is a free string;
// these are the two types the shipped workflow understands.
const (
	// AppTypeBecomeAdmin requests promotion to RoleAdministrator.
	// Approval promotes the applicant's User record.
	AppTypeBecomeAdmin = "become-admin"
	// AppTypeModifyItemType requests a change to the item-type
	// catalog. Approval carries no automatic side effect; an
	// administrator applies the change manually.
	AppTypeModifyItemType = "modify-item-type"
)

// User is a registered account. Passwords are stored in clear; this
// is a known finding carried over from the stored data format,
// kept so that existing snapshot files remain loadable.
type User struct {
	ID          string `json:"user_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	ContactInfo string `json:"contact_info"`
	Role        string `json:"role"`
}

// ApplyDefaults repairs fields that older snapshots may lack.
func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleOrdinary
	}
}

// Clone returns an independent copy.
func (u *User) Clone() *User {
	copied := *u
	return &copied
}

// Item is a published good. OwnerID is immutable after creation;
// only the owning user may modify or delete the record.
type Item struct {
	ID          string `json:"item_id"`
	Name        string `json:"item_name"`
	Description string `json:"description"`
	TypeName    string `json:"item_type"`
	Image       string `json:"image"`
	ContactInfo string `json:"contact_info"`
	Status      string `json:"status"`
	OwnerID     string `json:"owner_id"`
	CreateTime  string `json:"create_time"`
}

// ApplyDefaults repairs fields that older snapshots may lack.
func (i *Item) ApplyDefaults() {
	if i.Status == "" {
		i.Status = StatusPublished
	}
}

// Clone returns an independent copy.
func (i *Item) Clone() *Item {
	copied := *i
	return &copied
}

// ItemType defines one entry of the catalog: a unique name plus the
// ordered attribute names the presentation layer offers when an item
// of this type is published. The attribute list may be empty.
type ItemType struct {
	ID         string   `json:"type_id"`
	Name       string   `json:"type_name"`
	Attributes []string `json:"attributes"`
}

// ApplyDefaults repairs fields that older snapshots may lack.
func (t *ItemType) ApplyDefaults() {
	if t.Attributes == nil {
		t.Attributes = []string{}
	}
}

// Clone returns an independent copy, including the attribute slice.
func (t *ItemType) Clone() *ItemType {
	copied := *t
	copied.Attributes = append([]string(nil), t.Attributes...)
	return &copied
}

// Demand is a "wanted" post. Demands are immutable once created; the
// core defines no edit or delete operation for them.
type Demand struct {
	ID          string `json:"demand_id"`
	TypeName    string `json:"demand_type"`
	Description string `json:"description"`
	PublisherID string `json:"publisher_id"`
	CreateTime  string `json:"create_time"`
}

// ApplyDefaults repairs fields that older snapshots may lack.
func (d *Demand) ApplyDefaults() {}

// Clone returns an independent copy.
func (d *Demand) Clone() *Demand {
	copied := *d
	return &copied
}

// Application is an administrative request. Status transitions only
// pending→approved or pending→rejected, exactly once; the workflow
// layer enforces the pending precondition.
type Application struct {
	ID          string `json:"application_id"`
	Type        string `json:"app_type"`
	Content     string `json:"content"`
	Status      string `json:"app_status"`
	ApplicantID string `json:"applicant_id"`
	CreateTime  string `json:"create_time"`
}

// ApplyDefaults repairs fields that older snapshots may lack.
func (a *Application) ApplyDefaults() {
	if a.Status == "" {
		a.Status = AppStatusPending
	}
}

// Clone returns an independent copy.
func (a *Application) Clone() *Application {
	copied := *a
	return &copied
}
