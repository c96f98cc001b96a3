// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the tutor TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// Sidebar lists the conversation registry with the signed-in identity at
// the bottom. Selection is cursor-based; the parent model drives it from
// key events and reads the highlighted entry back.
type Sidebar struct {
	conversations []model.ConversationSummary
	cursor        int
	activeID      string // conversation shown in the transcript

	identity model.Identity

	width  int
	height int

	theme *styles.Theme
}

// NewSidebar creates a new sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme}
}

// =============================================================================
// STATE
// =============================================================================

// SetConversations replaces the listing wholesale. The cursor is clamped
// and, when possible, kept on the same conversation it was on before.
func (s *Sidebar) SetConversations(conversations []model.ConversationSummary) {
	var prevID string
	if s.cursor >= 0 && s.cursor < len(s.conversations) {
		prevID = s.conversations[s.cursor].ID
	}

	s.conversations = conversations

	s.cursor = 0
	for i, c := range conversations {
		if c.ID == prevID {
			s.cursor = i
			break
		}
	}
}

// Conversations returns the current listing.
func (s *Sidebar) Conversations() []model.ConversationSummary {
	return s.conversations
}

// SetIdentity sets the identity shown in the footer.
func (s *Sidebar) SetIdentity(id model.Identity) {
	s.identity = id
}

// SetActive marks the conversation currently open in the transcript.
func (s *Sidebar) SetActive(id string) {
	s.activeID = id
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// =============================================================================
// NAVIGATION
// =============================================================================

// CursorUp moves the cursor up one entry.
func (s *Sidebar) CursorUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// CursorDown moves the cursor down one entry.
func (s *Sidebar) CursorDown() {
	if s.cursor < len(s.conversations)-1 {
		s.cursor++
	}
}

// Highlighted returns the conversation under the cursor, if any.
func (s *Sidebar) Highlighted() (model.ConversationSummary, bool) {
	if s.cursor < 0 || s.cursor >= len(s.conversations) {
		return model.ConversationSummary{}, false
	}
	return s.conversations[s.cursor], true
}

// Remove drops a conversation from the listing without waiting for a
// refetch. Used for optimistic deletes.
func (s *Sidebar) Remove(id string) {
	for i, c := range s.conversations {
		if c.ID == id {
			s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
			break
		}
	}
	if s.cursor >= len(s.conversations) && s.cursor > 0 {
		s.cursor = len(s.conversations) - 1
	}
}

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the sidebar.
func (s *Sidebar) View() string {
	var b strings.Builder

	b.WriteString(s.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n\n")

	if len(s.conversations) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Render("No conversations yet")
		b.WriteString(empty)
		b.WriteString("\n")
	}

	itemWidth := s.width - 4
	if itemWidth < 10 {
		itemWidth = 10
	}

	visible := s.visibleRows()
	start, end := s.window(visible)

	for i := start; i < end; i++ {
		c := s.conversations[i]
		title := util.TruncateWidth(c.DisplayTitle(), itemWidth)

		marker := "  "
		if c.ID == s.activeID {
			marker = "* "
		}

		line := marker + title
		if i == s.cursor {
			b.WriteString(s.theme.ConversationSelected.Render(line))
		} else {
			b.WriteString(s.theme.ConversationItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderIdentity())

	return s.theme.Sidebar.
		Width(s.width).
		Height(s.height).
		Render(b.String())
}

// renderIdentity renders the signed-in identity footer.
func (s *Sidebar) renderIdentity() string {
	if !s.identity.HasToken() {
		return ""
	}

	name := s.identity.Name
	if name == "" {
		name = s.identity.Email
	}

	var b strings.Builder
	b.WriteString(s.theme.IdentityName.Render(util.TruncateWidth(name, s.width-4)))
	if s.identity.Name != "" && s.identity.Email != "" {
		b.WriteString("\n")
		b.WriteString(s.theme.IdentityEmail.Render(util.TruncateWidth(s.identity.Email, s.width-4)))
	}
	return b.String()
}

// visibleRows returns how many list rows fit in the current height.
func (s *Sidebar) visibleRows() int {
	// Title, blank line, identity footer, padding
	rows := s.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

// window computes the scroll window keeping the cursor visible.
func (s *Sidebar) window(visible int) (int, int) {
	if len(s.conversations) <= visible {
		return 0, len(s.conversations)
	}

	start := s.cursor - visible/2
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(s.conversations) {
		end = len(s.conversations)
		start = end - visible
	}
	return start, end
}
