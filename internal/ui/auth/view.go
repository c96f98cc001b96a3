// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.HeaderTitle.Render("Educational Tutor"))
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.tokenMode {
		b.WriteString(m.theme.AuthLabel.Render("Identity token"))
		b.WriteString("\n")
		b.WriteString(m.tokenField.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.theme.AuthLabel.Render("Email"))
		b.WriteString("\n")
		b.WriteString(m.email.View())
		b.WriteString("\n")

		if m.tab == TabRegister {
			b.WriteString(m.theme.AuthLabel.Render("Username"))
			b.WriteString("\n")
			b.WriteString(m.username.View())
			b.WriteString("\n")
		}

		b.WriteString(m.theme.AuthLabel.Render("Password"))
		b.WriteString("\n")
		b.WriteString(m.password.View())
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.AuthError.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.AuthHint.Render(m.infoMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.AuthHint.Render("Enter=Submit  Tab=Next  ^T=Switch form  ^G=Token sign-in"))

	box := m.theme.AuthBox.Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}

	return box
}

// renderTabs renders the Sign in / Register tab row.
func (m Model) renderTabs() string {
	login := m.theme.AuthTab.Render("Sign in")
	register := m.theme.AuthTab.Render("Register")

	if m.tokenMode {
		return lipgloss.JoinHorizontal(lipgloss.Center, login, register,
			m.theme.AuthTabActive.Render("Token"))
	}

	if m.tab == TabLogin {
		login = m.theme.AuthTabActive.Render("Sign in")
	} else {
		register = m.theme.AuthTabActive.Render("Register")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, login, register)
}
