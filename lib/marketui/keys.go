// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the main screen. Form screens
// (login, publish, profile) route keystrokes to their text inputs and
// only honor Submit, NextField, and Cancel.
type KeyMap struct {
	// List navigation.
	Up   key.Binding
	Down key.Binding

	// Tab switching.
	TabMarket  key.Binding
	TabMine    key.Binding
	TabPublish key.Binding
	TabDemands key.Binding
	TabProfile key.Binding
	TabAdmin   key.Binding

	// Form handling.
	NextField key.Binding // Move focus to the next form input.
	Submit    key.Binding
	Cancel    key.Binding // Leave a form or search without submitting.

	// Market.
	Search key.Binding // Activate the keyword search input.

	// Own items.
	Delist     key.Binding
	MarkTraded key.Binding
	Delete     key.Binding

	// Demands.
	NewDemand key.Binding

	// Admin: application review.
	Approve key.Binding
	Reject  key.Binding

	// Admin: item-type management.
	AddType    key.Binding
	RemoveType key.Binding
	ApplyAdmin key.Binding // Submit a become-admin application (ordinary users).

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// alongside arrow keys; number keys switch tabs.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	TabMarket: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "market"),
	),
	TabMine: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "my items"),
	),
	TabPublish: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "publish"),
	),
	TabDemands: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "demands"),
	),
	TabProfile: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "profile"),
	),
	TabAdmin: key.NewBinding(
		key.WithKeys("6"),
		key.WithHelp("6", "admin"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Delist: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delist"),
	),
	MarkTraded: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "mark traded"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	NewDemand: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new demand"),
	),
	Approve: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "approve"),
	),
	Reject: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reject"),
	),
	AddType: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new type"),
	),
	RemoveType: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove type"),
	),
	ApplyAdmin: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "apply for admin"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
