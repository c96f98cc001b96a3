// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the tutor TUI.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tutor-tui/internal/ui/styles"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// =============================================================================
// CONFIRM DIALOG
// =============================================================================

// ConfirmKind identifies what a confirmation is about.
type ConfirmKind int

const (
	ConfirmConversation ConfirmKind = iota
	ConfirmDocument
)

// ConfirmResultMsg is emitted when the dialog resolves.
type ConfirmResultMsg struct {
	Kind     ConfirmKind
	Target   string // conversation id or stored document name
	Accepted bool
}

// Confirm displays a modal dialog before destructive actions.
//
// At most one confirmation is pending at a time: Show on an open dialog
// is a no-op and reports false, so a second delete request cannot
// silently replace the first.
type Confirm struct {
	kind   ConfirmKind
	target string
	label  string // display name shown in the dialog

	// UI state
	visible  bool
	selected int // 0=Delete, 1=Cancel
	width    int
	height   int

	theme *styles.Theme
}

// Button options
const (
	ButtonDelete = 0
	ButtonCancel = 1
	buttonCount  = 2
)

// NewConfirm creates a new confirmation dialog.
func NewConfirm(theme *styles.Theme) *Confirm {
	return &Confirm{
		theme:    theme,
		selected: ButtonCancel,
	}
}

// =============================================================================
// CONFIRM METHODS
// =============================================================================

// Show opens the dialog for a target. Returns false if a confirmation is
// already pending.
func (c *Confirm) Show(kind ConfirmKind, target, label string) bool {
	if c.visible {
		return false
	}
	c.kind = kind
	c.target = target
	c.label = label
	c.visible = true
	c.selected = ButtonCancel
	return true
}

// Hide closes the dialog without resolving it.
func (c *Confirm) Hide() {
	c.visible = false
	c.target = ""
	c.label = ""
}

// IsVisible returns whether the dialog is open.
func (c *Confirm) IsVisible() bool {
	return c.visible
}

// SetSize updates the dialog dimensions.
func (c *Confirm) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Update handles key events. The second return reports whether the event
// was consumed by the dialog.
func (c *Confirm) Update(msg tea.Msg) (tea.Cmd, bool) {
	if !c.visible {
		return nil, false
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab", "shift+tab":
			c.selected = (c.selected + 1) % buttonCount
			return nil, true

		case "enter", " ":
			return c.resolve(c.selected == ButtonDelete), true

		case "esc", "n":
			return c.resolve(false), true

		case "y":
			// Quick delete
			return c.resolve(true), true
		}

		// Swallow everything else while open
		return nil, true
	}

	return nil, false
}

// resolve closes the dialog and emits its result.
func (c *Confirm) resolve(accepted bool) tea.Cmd {
	// Capture before Hide clears them
	kind := c.kind
	target := c.target

	c.Hide()

	return func() tea.Msg {
		return ConfirmResultMsg{
			Kind:     kind,
			Target:   target,
			Accepted: accepted,
		}
	}
}

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the dialog.
func (c *Confirm) View() string {
	if !c.visible {
		return ""
	}

	boxWidth := 52
	if c.width > 0 && c.width < 64 {
		boxWidth = c.width - 8
	}
	if boxWidth < 32 {
		boxWidth = 32
	}

	var content strings.Builder

	title := "Delete conversation?"
	if c.kind == ConfirmDocument {
		title = "Delete document?"
	}
	content.WriteString(c.theme.ConfirmTitle.Render(title))
	content.WriteString("\n\n")

	label := util.TruncateRunes(c.label, boxWidth-8)
	content.WriteString(c.theme.ConfirmTarget.Render(label))
	content.WriteString("\n\n")

	content.WriteString(c.renderButtons())
	content.WriteString("\n\n")

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	content.WriteString(hintStyle.Render("y=Delete  n=Cancel  Tab=Navigate"))

	box := c.theme.ConfirmBox.Width(boxWidth).Render(content.String())

	if c.width > 0 && c.height > 0 {
		return lipgloss.Place(
			c.width, c.height,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}

	return box
}

// renderButtons renders the button row.
func (c *Confirm) renderButtons() string {
	var buttons []string

	if c.selected == ButtonDelete {
		buttons = append(buttons, c.theme.ConfirmButtonActive.Render("Delete"))
	} else {
		buttons = append(buttons, c.theme.ConfirmButton.Render("Delete"))
	}

	if c.selected == ButtonCancel {
		activeCancel := c.theme.ConfirmButtonActive.Background(styles.Overlay)
		buttons = append(buttons, activeCancel.Render("Cancel"))
	} else {
		buttons = append(buttons, c.theme.ConfirmButton.Render("Cancel"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}
