// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/revive-exchange/revive/lib/entity"
)

// tabLabels indexes Tab to its header label.
var tabLabels = [...]string{
	TabMarket:  "1:market",
	TabMine:    "2:my items",
	TabPublish: "3:publish",
	TabDemands: "4:demands",
	TabProfile: "5:profile",
	TabAdmin:   "6:admin",
}

// View implements tea.Model.
func (model Model) View() string {
	if model.screen == ScreenLogin {
		return model.viewLogin()
	}

	var builder strings.Builder
	builder.WriteString(model.viewTabBar())
	builder.WriteString("\n\n")

	switch model.activeTab {
	case TabMarket:
		builder.WriteString(model.viewMarket())
	case TabMine:
		builder.WriteString(model.viewMine())
	case TabPublish:
		builder.WriteString(model.viewPublish())
	case TabDemands:
		builder.WriteString(model.viewDemands())
	case TabProfile:
		builder.WriteString(model.viewProfile())
	case TabAdmin:
		builder.WriteString(model.viewAdmin())
	}

	builder.WriteString("\n")
	builder.WriteString(model.viewStatusBar())
	return builder.String()
}

func (model Model) viewLogin() string {
	title := "revive · sign in"
	hint := "enter: sign in · tab: next field · ctrl+r: register instead · esc: quit"
	if model.registering {
		title = "revive · create account"
		hint = "enter: register · tab: next field · ctrl+r: back to sign in · esc: quit"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)

	var builder strings.Builder
	builder.WriteString(titleStyle.Render(title))
	builder.WriteString("\n\n")
	for index := 0; index < model.loginFieldCount(); index++ {
		builder.WriteString(model.loginInputs[index].View())
		builder.WriteString("\n")
	}
	builder.WriteString("\n")
	builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(hint))
	builder.WriteString("\n")
	builder.WriteString(model.viewNotice())
	return builder.String()
}

func (model Model) viewTabBar() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Padding(0, 1)

	lastTab := TabProfile
	if model.session.IsAdministrator() {
		lastTab = TabAdmin
	}

	parts := make([]string, 0, int(lastTab)+2)
	for tab := TabMarket; tab <= lastTab; tab++ {
		if tab == model.activeTab {
			parts = append(parts, activeStyle.Render(tabLabels[tab]))
		} else {
			parts = append(parts, inactiveStyle.Render(tabLabels[tab]))
		}
	}
	parts = append(parts, inactiveStyle.Render(model.session.Username))
	return strings.Join(parts, " ")
}

// viewItemList renders a slice of items with the cursor highlight.
// showStatus controls the status column; the market tab hides it
// because everything there is published.
func (model Model) viewItemList(items []*entity.Item, showStatus bool) string {
	if len(items) == 0 {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("  (no items)")
	}

	selectedStyle := lipgloss.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground)

	var builder strings.Builder
	for index, item := range items {
		line := fmt.Sprintf("%-20s %-12s %s",
			ansi.Truncate(item.Name, 20, "…"),
			ansi.Truncate(item.TypeName, 12, "…"),
			ansi.Truncate(item.Description, 40, "…"))
		if showStatus {
			statusStyle := lipgloss.NewStyle().Foreground(model.theme.ItemStatusColor(item.Status))
			line = fmt.Sprintf("%-20s %-12s %s %s",
				ansi.Truncate(item.Name, 20, "…"),
				ansi.Truncate(item.TypeName, 12, "…"),
				statusStyle.Render(fmt.Sprintf("%-10s", item.Status)),
				ansi.Truncate(item.Description, 30, "…"))
		}
		if index == model.cursor {
			builder.WriteString(selectedStyle.Render("> " + line))
		} else {
			builder.WriteString("  " + line)
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func (model Model) viewMarket() string {
	var builder strings.Builder
	if model.searching {
		builder.WriteString("search: " + model.searchInput.View())
		builder.WriteString("\n\n")
	} else if model.keyword != "" {
		builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).
			Render("filter: " + model.keyword + " (press / to change, enter on empty to clear)"))
		builder.WriteString("\n\n")
	}
	builder.WriteString(model.viewItemList(model.marketItems, false))
	return builder.String()
}

func (model Model) viewMine() string {
	var builder strings.Builder
	builder.WriteString(model.viewItemList(model.myItems, true))
	if item := model.selectedOwnItem(); item != nil {
		builder.WriteString("\n")
		builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).
			Render("published " + item.CreateTime + " · contact " + item.ContactInfo))
		builder.WriteString("\n")
	}
	return builder.String()
}

// selectedOwnItem returns the item under the cursor on the mine tab,
// or nil when the list is empty.
func (model Model) selectedOwnItem() *entity.Item {
	if model.cursor < len(model.myItems) {
		return model.myItems[model.cursor]
	}
	return nil
}

func (model Model) viewPublish() string {
	labels := [...]string{"name", "description", "type", "contact"}
	var builder strings.Builder
	for index := range model.publishInputs {
		builder.WriteString(fmt.Sprintf("%-12s %s\n", labels[index], model.publishInputs[index].View()))
	}
	if !model.formFocused {
		builder.WriteString("\n")
		builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).
			Render("press enter to edit the form"))
	}
	return builder.String()
}

func (model Model) viewDemands() string {
	var builder strings.Builder
	if model.demandEntry {
		builder.WriteString("wanted type: " + model.demandInputs[0].View())
		builder.WriteString("\n")
		builder.WriteString("description: " + model.demandInputs[1].View())
		builder.WriteString("\n\n")
	}

	if len(model.demands) == 0 {
		builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("  (no demands)"))
		return builder.String()
	}

	selectedStyle := lipgloss.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground)
	for index, item := range model.demands {
		line := fmt.Sprintf("%-12s %-40s %s",
			ansi.Truncate(item.TypeName, 12, "…"),
			ansi.Truncate(item.Description, 40, "…"),
			item.CreateTime)
		if index == model.cursor && !model.demandEntry {
			builder.WriteString(selectedStyle.Render("> " + line))
		} else {
			builder.WriteString("  " + line)
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func (model Model) viewProfile() string {
	user, err := model.services.Auth.UserByID(model.session.UserID)

	var builder strings.Builder
	if err == nil {
		builder.WriteString(fmt.Sprintf("username: %s\nrole:     %s\ncontact:  %s\n\n",
			user.Username, user.Role, user.ContactInfo))
	}
	labels := [...]string{"password", "contact"}
	for index := range model.profileInputs {
		builder.WriteString(fmt.Sprintf("%-12s %s\n", labels[index], model.profileInputs[index].View()))
	}
	if !model.formFocused {
		builder.WriteString("\n")
		hint := "press enter to edit the form"
		if !model.session.IsAdministrator() {
			hint += " · A to apply for administrator"
		}
		builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(hint))
	}
	return builder.String()
}

func (model Model) viewAdmin() string {
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	selectedStyle := lipgloss.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground)

	var builder strings.Builder

	appsHeader := "pending applications"
	typesHeader := "item types"
	if model.adminSection == SectionApplications {
		appsHeader += " *"
	} else {
		typesHeader += " *"
	}

	builder.WriteString(headerStyle.Render(appsHeader))
	builder.WriteString("\n")
	if len(model.applications) == 0 {
		builder.WriteString(faintStyle.Render("  (none)"))
		builder.WriteString("\n")
	}
	for index, application := range model.applications {
		applicant := application.ApplicantID
		if user, err := model.services.Auth.UserByID(application.ApplicantID); err == nil {
			applicant = user.Username
		}
		statusStyle := lipgloss.NewStyle().Foreground(model.theme.AppStatusColor(application.Status))
		line := fmt.Sprintf("%-18s %-14s %s %s",
			ansi.Truncate(application.Type, 18, "…"),
			ansi.Truncate(applicant, 14, "…"),
			statusStyle.Render(application.Status),
			ansi.Truncate(application.Content, 30, "…"))
		if model.adminSection == SectionApplications && index == model.cursor {
			builder.WriteString(selectedStyle.Render("> " + line))
		} else {
			builder.WriteString("  " + line)
		}
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(headerStyle.Render(typesHeader))
	builder.WriteString("\n")
	if model.addingType {
		builder.WriteString("new type: " + model.typeInput.View())
		builder.WriteString("\n")
	}
	for index, itemType := range model.types {
		count := model.services.Listing.CountByTypeName(itemType.Name)
		line := fmt.Sprintf("%-16s %d item(s)", itemType.Name, count)
		if model.adminSection == SectionTypes && index == model.cursor && !model.addingType {
			builder.WriteString(selectedStyle.Render("> " + line))
		} else {
			builder.WriteString("  " + line)
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

func (model Model) viewStatusBar() string {
	help := model.helpLine()
	notice := model.viewNotice()
	if notice == "" {
		return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help)
	}
	return notice + "\n" + lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help)
}

func (model Model) viewNotice() string {
	if model.notice == "" {
		return ""
	}
	color := model.theme.NoticeForeground
	if model.noticeError {
		color = model.theme.ErrorForeground
	}
	return lipgloss.NewStyle().Foreground(color).Render(model.notice)
}

// helpLine returns the context-sensitive key help for the active tab.
func (model Model) helpLine() string {
	common := "1-5: tabs · C-l: logout · q: quit"
	if model.session.IsAdministrator() {
		common = "1-6: tabs · C-l: logout · q: quit"
	}
	switch model.activeTab {
	case TabMarket:
		return "/: search · j/k: move · " + common
	case TabMine:
		return "d: delist · t: traded · x: delete · j/k: move · " + common
	case TabPublish:
		return "enter: edit/submit · tab: next field · esc: leave form · " + common
	case TabDemands:
		return "n: new demand · j/k: move · " + common
	case TabProfile:
		return "enter: edit/submit · esc: leave form · " + common
	case TabAdmin:
		return "tab: section · a/r: approve/reject · n/x: add/remove type · " + common
	}
	return common
}
