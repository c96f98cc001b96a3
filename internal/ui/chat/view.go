// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view for the TUI.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tutor-tui/internal/model"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the full chat screen: sidebar, transcript or document panel,
// composer, and status bar. The confirmation dialog replaces everything
// while open.
func (m Model) View() string {
	if m.confirm.IsVisible() {
		return m.confirm.View()
	}

	var main string
	if m.docPanel.IsVisible() {
		main = m.docPanel.View()
	} else {
		main = lipgloss.JoinVertical(
			lipgloss.Left,
			m.viewport.View(),
			m.renderComposer(),
		)
	}

	var body string
	if m.sidebarShown() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)
	} else {
		body = main
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.View())
}

// renderComposer renders the input box.
func (m Model) renderComposer() string {
	width := m.viewport.Width
	if width < 20 {
		width = 20
	}
	return m.theme.InputContainer.Width(width - 2).Render(m.input.View())
}

// syncViewport re-renders the transcript into the viewport.
func (m *Model) syncViewport() {
	m.viewport.SetContent(m.renderTranscript())
}

// renderTranscript builds the transcript text for the active conversation.
func (m *Model) renderTranscript() string {
	if m.state == StateEmpty {
		return m.renderEmpty()
	}
	if m.state == StateLoading {
		return "\n  Loading conversation..."
	}

	width := m.viewport.Width - 4
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderMessage(msg, width))
	}
	return b.String()
}

// renderMessage renders one transcript entry.
func (m *Model) renderMessage(msg model.Message, width int) string {
	if msg.Thinking {
		return m.theme.TutorLabel.Render(model.RoleAssistant.DisplayName()) + "\n" + m.spinner.View()
	}

	switch msg.Role {
	case model.RoleUser:
		return m.theme.UserLabel.Render(model.RoleUser.DisplayName()) + "\n" +
			m.theme.UserMessage.Width(width).Render(msg.Text)

	default:
		out := m.theme.TutorLabel.Render(msg.Role.DisplayName()) + "\n" +
			m.theme.TutorMessage.Width(width).Render(m.markdown.Render(msg.Text))
		if len(msg.Sources) > 0 {
			out += "\n" + m.renderSources(msg.Sources, width)
		}
		return out
	}
}

// renderSources renders the citation block under an assistant answer.
func (m *Model) renderSources(sources []model.SourceRef, width int) string {
	var b strings.Builder
	b.WriteString(m.theme.SourceHeading.Render("Sources"))
	for _, src := range sources {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s (p. %d)", src.Source, src.Page))
	}
	return m.theme.SourceBlock.Width(width).Render(b.String())
}

// renderEmpty renders the greeting shown before any conversation is active.
func (m *Model) renderEmpty() string {
	greeting := "Ask your tutor anything."
	if name := m.identity.FirstName(); name != "" {
		greeting = "Welcome back, " + name + ". Ask your tutor anything."
	}
	hint := "Enter=Send  C-n=New chat  C-p=Documents  C-b=Sidebar"

	content := m.theme.HeaderTitle.Render(greeting) + "\n\n" + m.theme.AuthHint.Render(hint)

	if m.viewport.Width > 0 && m.viewport.Height > 0 {
		return lipgloss.Place(
			m.viewport.Width, m.viewport.Height,
			lipgloss.Center, lipgloss.Center,
			content,
		)
	}
	return content
}
