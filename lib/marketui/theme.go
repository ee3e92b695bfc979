// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/revive-exchange/revive/lib/entity"
)

// Theme defines the color palette for the terminal UI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Item status colors.
	StatusPublished lipgloss.Color
	StatusTraded    lipgloss.Color
	StatusDelisted  lipgloss.Color

	// Application status colors.
	AppPending  lipgloss.Color
	AppApproved lipgloss.Color
	AppRejected lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar notices.
	NoticeForeground lipgloss.Color
	ErrorForeground  lipgloss.Color
}

// ItemStatusColor returns the color for an item status string.
// Unknown values return FaintText.
func (theme Theme) ItemStatusColor(status string) lipgloss.Color {
	switch status {
	case entity.StatusPublished:
		return theme.StatusPublished
	case entity.StatusTraded:
		return theme.StatusTraded
	case entity.StatusDelisted:
		return theme.StatusDelisted
	default:
		return theme.FaintText
	}
}

// AppStatusColor returns the color for an application status string.
func (theme Theme) AppStatusColor(status string) lipgloss.Color {
	switch status {
	case entity.AppStatusPending:
		return theme.AppPending
	case entity.AppStatusApproved:
		return theme.AppApproved
	case entity.AppStatusRejected:
		return theme.AppRejected
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusPublished: lipgloss.Color("114"), // green
	StatusTraded:    lipgloss.Color("245"), // gray
	StatusDelisted:  lipgloss.Color("208"), // orange

	AppPending:  lipgloss.Color("220"), // yellow/amber
	AppApproved: lipgloss.Color("114"), // green
	AppRejected: lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	NoticeForeground: lipgloss.Color("114"),
	ErrorForeground:  lipgloss.Color("196"),
}
