// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/revive-exchange/revive/lib/auth"
	"github.com/revive-exchange/revive/lib/catalog"
	"github.com/revive-exchange/revive/lib/demand"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/listing"
	"github.com/revive-exchange/revive/lib/request"
	"github.com/revive-exchange/revive/lib/workflow"
)

// Screen identifies which top-level screen is visible.
type Screen int

const (
	// ScreenLogin shows the login/register form.
	ScreenLogin Screen = iota
	// ScreenMain shows the tabbed market views.
	ScreenMain
)

// Tab identifies which main-screen view is active.
type Tab int

const (
	// TabMarket lists published items with search.
	TabMarket Tab = iota
	// TabMine lists the session user's items in every status.
	TabMine
	// TabPublish is the new-item form.
	TabPublish
	// TabDemands lists open demands and hosts the new-demand form.
	TabDemands
	// TabProfile is the profile edit form.
	TabProfile
	// TabAdmin holds application review and item-type management.
	// Visible only to administrator sessions.
	TabAdmin
)

// AdminSection identifies which half of the admin tab has focus.
type AdminSection int

const (
	// SectionApplications shows pending applications.
	SectionApplications AdminSection = iota
	// SectionTypes shows the item-type catalog.
	SectionTypes
)

// Login form field indexes.
const (
	loginFieldUsername = iota
	loginFieldPassword
	loginFieldContact // Register mode only.
)

// Publish form field indexes.
const (
	publishFieldName = iota
	publishFieldDescription
	publishFieldType
	publishFieldContact
)

// Services bundles everything the UI calls into. All fields are
// required except Logger, which defaults to slog.Default().
type Services struct {
	Auth    *auth.Service
	Catalog *catalog.Service
	Listing *listing.Service
	Demand  *demand.Service
	Request *request.Service
	Flow    *workflow.Orchestrator
	Logger  *slog.Logger
}

// Model is the bubbletea model for the whole UI.
type Model struct {
	services Services
	theme    Theme
	keys     KeyMap

	width  int
	height int

	screen  Screen
	session *auth.Session

	// Status bar notice. Replaced by each action's outcome.
	notice      string
	noticeError bool

	// Login screen state.
	loginInputs [3]textinput.Model
	loginFocus  int
	registering bool

	// Main screen state.
	activeTab Tab
	cursor    int

	// Market tab.
	marketItems []*entity.Item
	searchInput textinput.Model
	searching   bool
	keyword     string

	// Mine tab.
	myItems []*entity.Item

	// Publish tab.
	publishInputs [4]textinput.Model
	publishFocus  int
	formFocused   bool // Shared by the publish and profile forms.

	// Demands tab.
	demands      []*entity.Demand
	demandInputs [2]textinput.Model
	demandFocus  int
	demandEntry  bool

	// Profile tab.
	profileInputs [2]textinput.Model
	profileFocus  int

	// Admin tab.
	adminSection AdminSection
	applications []*entity.Application
	types        []*entity.ItemType
	typeInput    textinput.Model
	addingType   bool
}

// NewModel creates a Model over the given services, starting at the
// login screen.
func NewModel(services Services) Model {
	if services.Logger == nil {
		services.Logger = slog.Default()
	}

	model := Model{
		services: services,
		theme:    DefaultTheme,
		keys:     DefaultKeyMap,
		screen:   ScreenLogin,
	}

	makeInput := func(placeholder string) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.Prompt = "> "
		input.CharLimit = 128
		return input
	}

	model.loginInputs[loginFieldUsername] = makeInput("username")
	model.loginInputs[loginFieldPassword] = makeInput("password")
	model.loginInputs[loginFieldPassword].EchoMode = textinput.EchoPassword
	model.loginInputs[loginFieldContact] = makeInput("contact info")
	model.loginInputs[loginFieldUsername].Focus()

	model.publishInputs[publishFieldName] = makeInput("item name")
	model.publishInputs[publishFieldDescription] = makeInput("description")
	model.publishInputs[publishFieldType] = makeInput("item type")
	model.publishInputs[publishFieldContact] = makeInput("contact info")

	model.demandInputs[0] = makeInput("wanted type")
	model.demandInputs[1] = makeInput("description")

	model.profileInputs[0] = makeInput("new password (blank keeps current)")
	model.profileInputs[0].EchoMode = textinput.EchoPassword
	model.profileInputs[1] = makeInput("new contact info (blank keeps current)")

	model.searchInput = makeInput("keyword")
	model.typeInput = makeInput("type name")

	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case tea.KeyMsg:
		// Ctrl+C quits from any screen, even with a form focused.
		if message.String() == "ctrl+c" {
			return model, tea.Quit
		}
		if model.screen == ScreenLogin {
			return model.updateLogin(message)
		}
		return model.updateMain(message)
	}

	return model, nil
}

// updateMain routes a keystroke on the main screen. Active forms get
// the keystroke first; otherwise it is matched against the KeyMap.
func (model Model) updateMain(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.searching {
		return model.updateSearch(message)
	}
	if model.demandEntry {
		return model.updateDemandForm(message)
	}
	if model.addingType {
		return model.updateTypeForm(message)
	}
	if model.formFocused {
		switch model.activeTab {
		case TabPublish:
			return model.updatePublishForm(message)
		case TabProfile:
			return model.updateProfileForm(message)
		}
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Logout):
		model.services.Auth.Logout(model.session)
		model.session = nil
		model.screen = ScreenLogin
		model.loginFocus = loginFieldUsername
		model.setLoginFocus()
		model.notice = "logged out"
		model.noticeError = false
		return model, nil

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
		return model, nil

	case key.Matches(message, model.keys.Down):
		if model.cursor < model.listLength()-1 {
			model.cursor++
		}
		return model, nil

	case key.Matches(message, model.keys.TabMarket):
		return model.switchTab(TabMarket), nil
	case key.Matches(message, model.keys.TabMine):
		return model.switchTab(TabMine), nil
	case key.Matches(message, model.keys.TabPublish):
		return model.switchTab(TabPublish), nil
	case key.Matches(message, model.keys.TabDemands):
		return model.switchTab(TabDemands), nil
	case key.Matches(message, model.keys.TabProfile):
		return model.switchTab(TabProfile), nil
	case key.Matches(message, model.keys.TabAdmin):
		if model.session.IsAdministrator() {
			return model.switchTab(TabAdmin), nil
		}
		return model, nil
	}

	switch model.activeTab {
	case TabMarket:
		return model.updateMarketKeys(message)
	case TabMine:
		return model.updateMineKeys(message)
	case TabPublish, TabProfile:
		if key.Matches(message, model.keys.Submit) {
			model.formFocused = true
			model.refocusForm()
			return model, nil
		}
		// Blurred profile tab: ordinary users may request promotion.
		if model.activeTab == TabProfile && key.Matches(message, model.keys.ApplyAdmin) &&
			!model.session.IsAdministrator() {
			_, err := model.services.Request.Submit(
				entity.AppTypeBecomeAdmin, "promotion requested via profile tab", model.session.UserID)
			model.report("administrator application submitted", err)
		}
		return model, nil
	case TabDemands:
		if key.Matches(message, model.keys.NewDemand) {
			model.demandEntry = true
			model.demandFocus = 0
			model.setDemandFocus()
		}
		return model, nil
	case TabAdmin:
		return model.updateAdminKeys(message)
	}

	return model, nil
}

// switchTab activates a tab and refreshes its data.
func (model Model) switchTab(tab Tab) Model {
	model.activeTab = tab
	model.cursor = 0
	model.formFocused = tab == TabPublish || tab == TabProfile
	if model.formFocused {
		model.refocusForm()
	}
	model.refresh()
	return model
}

// refresh pulls fresh slices from the services for the active tab.
// The model pointer receiver is intentional: refresh is always called
// on a local copy inside an Update step.
func (model *Model) refresh() {
	switch model.activeTab {
	case TabMarket:
		if model.keyword == "" {
			model.marketItems = model.services.Listing.ListPublished()
		} else {
			model.marketItems = model.services.Listing.Search(listing.AllTypes, model.keyword)
		}
	case TabMine:
		model.myItems = model.services.Listing.ListByOwner(model.session.UserID)
	case TabDemands:
		model.demands = model.services.Demand.ListAll()
	case TabAdmin:
		model.applications = model.services.Request.ListPending()
		model.types = model.services.Catalog.ListTypes()
	}
	if model.cursor >= model.listLength() && model.cursor > 0 {
		model.cursor = model.listLength() - 1
	}
}

// listLength returns the row count of the active tab's list.
func (model Model) listLength() int {
	switch model.activeTab {
	case TabMarket:
		return len(model.marketItems)
	case TabMine:
		return len(model.myItems)
	case TabDemands:
		return len(model.demands)
	case TabAdmin:
		if model.adminSection == SectionApplications {
			return len(model.applications)
		}
		return len(model.types)
	}
	return 0
}

// report sets the status bar notice.
func (model *Model) report(notice string, err error) {
	if err != nil {
		model.notice = err.Error()
		model.noticeError = true
		model.services.Logger.Warn("ui action failed", "error", err)
		return
	}
	model.notice = notice
	model.noticeError = false
}

// updateMarketKeys handles market tab keys after global routing.
func (model Model) updateMarketKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.Search) {
		model.searching = true
		model.searchInput.SetValue(model.keyword)
		model.searchInput.Focus()
	}
	return model, nil
}

// updateSearch routes input to the market search field.
func (model Model) updateSearch(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.searching = false
		model.keyword = ""
		model.searchInput.Blur()
		model.refresh()
		return model, nil
	case key.Matches(message, model.keys.Submit):
		model.searching = false
		model.keyword = model.searchInput.Value()
		model.searchInput.Blur()
		model.cursor = 0
		model.refresh()
		return model, nil
	}
	var command tea.Cmd
	model.searchInput, command = model.searchInput.Update(message)
	return model, command
}

// updateMineKeys handles status changes and deletion of own items.
func (model Model) updateMineKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.cursor >= len(model.myItems) {
		return model, nil
	}
	item := model.myItems[model.cursor]

	setStatus := func(status string) {
		patch := listing.ItemPatch{Status: &status}
		err := model.services.Listing.Modify(item.ID, model.session.UserID, patch)
		model.report("item "+item.Name+" marked "+status, err)
		model.refresh()
	}

	switch {
	case key.Matches(message, model.keys.Delist):
		setStatus(entity.StatusDelisted)
	case key.Matches(message, model.keys.MarkTraded):
		setStatus(entity.StatusTraded)
	case key.Matches(message, model.keys.Delete):
		err := model.services.Listing.Delete(item.ID, model.session.UserID)
		model.report("item "+item.Name+" deleted", err)
		model.refresh()
	}
	return model, nil
}

// updateAdminKeys handles the admin tab: section toggle, application
// decisions, and type management.
func (model Model) updateAdminKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.NextField) {
		if model.adminSection == SectionApplications {
			model.adminSection = SectionTypes
		} else {
			model.adminSection = SectionApplications
		}
		model.cursor = 0
		return model, nil
	}

	if model.adminSection == SectionApplications {
		if model.cursor >= len(model.applications) {
			return model, nil
		}
		application := model.applications[model.cursor]
		switch {
		case key.Matches(message, model.keys.Approve):
			err := model.services.Flow.Approve(model.session, application.ID)
			model.report("application approved", err)
			model.refresh()
		case key.Matches(message, model.keys.Reject):
			err := model.services.Flow.Reject(model.session, application.ID)
			model.report("application rejected", err)
			model.refresh()
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.AddType):
		model.addingType = true
		model.typeInput.SetValue("")
		model.typeInput.Focus()
	case key.Matches(message, model.keys.RemoveType):
		if model.cursor >= len(model.types) {
			return model, nil
		}
		itemType := model.types[model.cursor]
		err := model.services.Flow.RemoveItemType(model.session, itemType.ID)
		model.report("type "+itemType.Name+" removed", err)
		model.refresh()
	}
	return model, nil
}

// updateTypeForm routes input to the new-type name field.
func (model Model) updateTypeForm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.addingType = false
		model.typeInput.Blur()
		return model, nil
	case key.Matches(message, model.keys.Submit):
		err := model.services.Catalog.AddType(model.typeInput.Value(), nil)
		model.report("type "+model.typeInput.Value()+" added", err)
		if err == nil {
			model.addingType = false
			model.typeInput.Blur()
			model.refresh()
		}
		return model, nil
	}
	var command tea.Cmd
	model.typeInput, command = model.typeInput.Update(message)
	return model, command
}

// updateDemandForm routes input to the new-demand fields.
func (model Model) updateDemandForm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.demandEntry = false
		for index := range model.demandInputs {
			model.demandInputs[index].Blur()
		}
		return model, nil
	case key.Matches(message, model.keys.NextField):
		model.demandFocus = (model.demandFocus + 1) % len(model.demandInputs)
		model.setDemandFocus()
		return model, nil
	case key.Matches(message, model.keys.Submit):
		_, err := model.services.Demand.Publish(
			model.demandInputs[0].Value(),
			model.demandInputs[1].Value(),
			model.session.UserID,
		)
		model.report("demand published", err)
		if err == nil {
			model.demandEntry = false
			for index := range model.demandInputs {
				model.demandInputs[index].SetValue("")
				model.demandInputs[index].Blur()
			}
			model.refresh()
		}
		return model, nil
	}
	var command tea.Cmd
	model.demandInputs[model.demandFocus], command = model.demandInputs[model.demandFocus].Update(message)
	return model, command
}

// updatePublishForm routes input to the new-item fields.
func (model Model) updatePublishForm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.formFocused = false
		model.blurForm()
		return model, nil
	case key.Matches(message, model.keys.NextField):
		model.publishFocus = (model.publishFocus + 1) % len(model.publishInputs)
		model.refocusForm()
		return model, nil
	case key.Matches(message, model.keys.Submit):
		_, err := model.services.Listing.Publish(
			model.publishInputs[publishFieldName].Value(),
			model.publishInputs[publishFieldDescription].Value(),
			model.publishInputs[publishFieldType].Value(),
			model.publishInputs[publishFieldContact].Value(),
			model.session.UserID,
		)
		model.report("item published", err)
		if err == nil {
			for index := range model.publishInputs {
				model.publishInputs[index].SetValue("")
			}
			model.publishFocus = publishFieldName
			model.refocusForm()
		}
		return model, nil
	}
	var command tea.Cmd
	model.publishInputs[model.publishFocus], command = model.publishInputs[model.publishFocus].Update(message)
	return model, command
}

// updateProfileForm routes input to the profile fields.
func (model Model) updateProfileForm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.formFocused = false
		model.blurForm()
		return model, nil
	case key.Matches(message, model.keys.NextField):
		model.profileFocus = (model.profileFocus + 1) % len(model.profileInputs)
		model.refocusForm()
		return model, nil
	case key.Matches(message, model.keys.Submit):
		patch := auth.ProfilePatch{}
		if password := model.profileInputs[0].Value(); password != "" {
			patch.Password = &password
		}
		if contact := model.profileInputs[1].Value(); contact != "" {
			patch.ContactInfo = &contact
		}
		err := model.services.Auth.EditProfile(model.session, patch)
		model.report("profile updated", err)
		if err == nil {
			for index := range model.profileInputs {
				model.profileInputs[index].SetValue("")
			}
		}
		return model, nil
	}
	var command tea.Cmd
	model.profileInputs[model.profileFocus], command = model.profileInputs[model.profileFocus].Update(message)
	return model, command
}

// refocusForm focuses the current field of the active tab's form and
// blurs the rest.
func (model *Model) refocusForm() {
	switch model.activeTab {
	case TabPublish:
		for index := range model.publishInputs {
			if index == model.publishFocus {
				model.publishInputs[index].Focus()
			} else {
				model.publishInputs[index].Blur()
			}
		}
	case TabProfile:
		for index := range model.profileInputs {
			if index == model.profileFocus {
				model.profileInputs[index].Focus()
			} else {
				model.profileInputs[index].Blur()
			}
		}
	}
}

// blurForm blurs every field of the active tab's form.
func (model *Model) blurForm() {
	switch model.activeTab {
	case TabPublish:
		for index := range model.publishInputs {
			model.publishInputs[index].Blur()
		}
	case TabProfile:
		for index := range model.profileInputs {
			model.profileInputs[index].Blur()
		}
	}
}

func (model *Model) setDemandFocus() {
	for index := range model.demandInputs {
		if index == model.demandFocus {
			model.demandInputs[index].Focus()
		} else {
			model.demandInputs[index].Blur()
		}
	}
}
