// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the tutor TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tutor-tui/internal/ui/styles"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current transcript state.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusThinking
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusThinking:
		return "Thinking..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading, StatusThinking:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// shortcut is one key hint in the status bar.
type shortcut struct {
	key  string
	desc string
}

var statusShortcuts = []shortcut{
	{"^N", "new"},
	{"^P", "docs"},
	{"^B", "sidebar"},
	{"^D", "delete"},
	{"^X", "sign out"},
	{"^C", "quit"},
}

// StatusBar renders the bottom bar with state, identity, server, and
// shortcuts.
type StatusBar struct {
	Status   Status
	Identity string // display name or email of the signed-in identity
	Server   string // backend base URL
	Width    int

	theme *styles.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetIdentity sets the signed-in identity display string.
func (s *StatusBar) SetIdentity(identity string) {
	s.Identity = identity
}

// SetServer sets the backend base URL shown in the wide layout.
func (s *StatusBar) SetServer(server string) {
	s.Server = server
}

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the status bar for the current width.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact bar: icon + status only.
func (s *StatusBar) viewNarrow() string {
	statusText := s.statusStyle().Render(s.Status.Icon() + " " + s.Status.String())

	return s.theme.StatusBar.
		Width(s.Width).
		Render(statusText)
}

// statusSegmentWidth keeps the status cell stable across state changes so
// the bar does not jitter between "Ready" and "Thinking...".
const statusSegmentWidth = 14

// viewWide renders: icon status | identity | server | shortcuts.
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{
		s.statusStyle().Render(util.PadRight(s.Status.Icon()+" "+s.Status.String(), statusSegmentWidth)),
	}

	if s.Identity != "" {
		identityView := lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render(util.TruncateWidth(s.Identity, 24))
		parts = append(parts, identityView)
	}

	if s.Server != "" {
		serverView := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(util.TruncateWidth(s.Server, 28))
		parts = append(parts, serverView)
	}

	parts = append(parts, s.renderShortcuts())

	return s.theme.StatusBar.
		Width(s.Width).
		Render(strings.Join(parts, separator))
}

// renderShortcuts renders the key hint cluster.
func (s *StatusBar) renderShortcuts() string {
	var b strings.Builder
	for i, sc := range statusShortcuts {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.theme.ShortcutKey.Render(sc.key))
		b.WriteString(s.theme.ShortcutDesc.Render(" " + sc.desc))
	}
	return b.String()
}

// statusStyle picks the color for the current status.
func (s *StatusBar) statusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	}
}
