// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// loginFieldCount returns the number of visible login form fields:
// two in login mode, three (with contact info) in register mode.
func (model Model) loginFieldCount() int {
	if model.registering {
		return 3
	}
	return 2
}

// updateLogin routes a keystroke on the login screen. Ctrl+R toggles
// between login and register modes; Tab cycles fields; Enter submits.
func (model Model) updateLogin(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		return model, tea.Quit

	case message.String() == "ctrl+r":
		model.registering = !model.registering
		if model.loginFocus >= model.loginFieldCount() {
			model.loginFocus = loginFieldUsername
		}
		model.setLoginFocus()
		model.notice = ""
		return model, nil

	case key.Matches(message, model.keys.NextField):
		model.loginFocus = (model.loginFocus + 1) % model.loginFieldCount()
		model.setLoginFocus()
		return model, nil

	case key.Matches(message, model.keys.Submit):
		if model.registering {
			return model.submitRegister()
		}
		return model.submitLogin()
	}

	var command tea.Cmd
	model.loginInputs[model.loginFocus], command = model.loginInputs[model.loginFocus].Update(message)
	return model, command
}

func (model Model) submitLogin() (tea.Model, tea.Cmd) {
	session, err := model.services.Auth.Login(
		model.loginInputs[loginFieldUsername].Value(),
		model.loginInputs[loginFieldPassword].Value(),
	)
	if err != nil {
		model.report("", err)
		return model, nil
	}

	model.session = session
	model.screen = ScreenMain
	model.loginInputs[loginFieldPassword].SetValue("")
	model.report("welcome, "+session.Username, nil)
	return model.switchTab(TabMarket), nil
}

func (model Model) submitRegister() (tea.Model, tea.Cmd) {
	err := model.services.Auth.Register(
		model.loginInputs[loginFieldUsername].Value(),
		model.loginInputs[loginFieldPassword].Value(),
		model.loginInputs[loginFieldContact].Value(),
	)
	if err != nil {
		model.report("", err)
		return model, nil
	}

	// Drop back to login mode with the username prefilled so the new
	// account can sign in immediately.
	model.registering = false
	model.loginFocus = loginFieldPassword
	model.loginInputs[loginFieldPassword].SetValue("")
	model.setLoginFocus()
	model.report("account created, please sign in", nil)
	return model, nil
}

// setLoginFocus focuses the current login field and blurs the rest.
func (model *Model) setLoginFocus() {
	for index := range model.loginInputs {
		if index == model.loginFocus {
			model.loginInputs[index].Focus()
		} else {
			model.loginInputs[index].Blur()
		}
	}
}
