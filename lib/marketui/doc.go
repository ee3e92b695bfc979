// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package marketui implements the interactive terminal UI for the
// exchange platform. It is a bubbletea application with two screens:
// a login/register screen, and the main screen with tabbed views for
// the market, the user's own items, publishing, demands, the user
// profile, and (for administrators) application review and item-type
// management.
//
// The Model holds no domain state of its own: every view pulls live
// slices from the services on each refresh, and every mutation goes
// through a service or the workflow orchestrator. Keyboard routing
// follows focus: when a form is active all keystrokes go to its
// inputs, otherwise keys are matched against the KeyMap.
package marketui
