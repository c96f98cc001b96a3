// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the tutor TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// =============================================================================
// DOCUMENT PANEL MESSAGES
// =============================================================================

// UploadRequestMsg asks the parent to upload the PDF at Path.
type UploadRequestMsg struct {
	Path string
}

// DocDeleteRequestMsg asks the parent to confirm deletion of a document.
type DocDeleteRequestMsg struct {
	Doc model.Document
}

// =============================================================================
// DOCUMENT PANEL COMPONENT
// =============================================================================

// DocPanel is the knowledge document manager overlay. It lists stored
// documents, accepts a file path for upload, and requests deletions via
// messages the parent routes through the confirmation dialog.
type DocPanel struct {
	docs   []model.Document
	cursor int

	// Upload path entry
	input     textinput.Model
	inputting bool

	visible bool
	loading bool // a list, upload, or delete request is in flight
	notice  string

	width  int
	height int

	theme *styles.Theme
}

// NewDocPanel creates a new document panel.
func NewDocPanel(theme *styles.Theme) *DocPanel {
	ti := textinput.New()
	ti.Placeholder = "path/to/document.pdf"
	ti.CharLimit = 512
	ti.Prompt = "> "

	return &DocPanel{
		input: ti,
		theme: theme,
	}
}

// =============================================================================
// STATE
// =============================================================================

// Show opens the panel.
func (d *DocPanel) Show() {
	d.visible = true
	d.notice = ""
}

// Hide closes the panel and resets transient input state.
func (d *DocPanel) Hide() {
	d.visible = false
	d.inputting = false
	d.input.Blur()
	d.input.SetValue("")
}

// IsVisible returns whether the panel is open.
func (d *DocPanel) IsVisible() bool {
	return d.visible
}

// SetDocuments replaces the listing wholesale.
func (d *DocPanel) SetDocuments(docs []model.Document) {
	d.docs = docs
	if d.cursor >= len(docs) {
		d.cursor = len(docs) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

// Documents returns the current listing.
func (d *DocPanel) Documents() []model.Document {
	return d.docs
}

// SetLoading marks a request as in flight. While loading, uploads and
// deletes are not accepted.
func (d *DocPanel) SetLoading(loading bool) {
	d.loading = loading
}

// IsLoading reports whether a request is in flight.
func (d *DocPanel) IsLoading() bool {
	return d.loading
}

// SetNotice sets the status line (upload results, errors).
func (d *DocPanel) SetNotice(notice string) {
	d.notice = notice
}

// SetSize updates the panel dimensions.
func (d *DocPanel) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.input.Width = width/2 - 8
}

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Update handles key events. The second return reports whether the event
// was consumed by the panel.
func (d *DocPanel) Update(msg tea.Msg) (tea.Cmd, bool) {
	if !d.visible {
		return nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}

	if d.inputting {
		return d.updateInput(keyMsg), true
	}

	switch keyMsg.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
		return nil, true

	case "down", "j":
		if d.cursor < len(d.docs)-1 {
			d.cursor++
		}
		return nil, true

	case "u":
		if d.loading {
			return nil, true
		}
		d.inputting = true
		d.notice = ""
		return d.input.Focus(), true

	case "d", "delete", "backspace":
		if d.loading || d.cursor >= len(d.docs) {
			return nil, true
		}
		doc := d.docs[d.cursor]
		return func() tea.Msg {
			return DocDeleteRequestMsg{Doc: doc}
		}, true

	case "esc", "q":
		d.Hide()
		return nil, true
	}

	return nil, true
}

// updateInput handles keys while the upload path field is focused.
func (d *DocPanel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(d.input.Value())
		if path == "" {
			d.notice = "Enter a file path first."
			return nil
		}
		d.inputting = false
		d.input.Blur()
		d.input.SetValue("")
		d.notice = ""
		return func() tea.Msg {
			return UploadRequestMsg{Path: path}
		}

	case "esc":
		d.inputting = false
		d.input.Blur()
		d.input.SetValue("")
		return nil
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the panel.
func (d *DocPanel) View() string {
	if !d.visible {
		return ""
	}

	boxWidth := d.width / 2
	if boxWidth < 44 {
		boxWidth = 44
	}
	if d.width > 0 && boxWidth > d.width-4 {
		boxWidth = d.width - 4
	}

	var b strings.Builder

	b.WriteString(d.theme.DocPanelTitle.Render("Knowledge Documents"))
	b.WriteString("\n\n")

	switch {
	case d.loading:
		b.WriteString(d.theme.SourceHeading.Render("Working..."))
		b.WriteString("\n")
	case len(d.docs) == 0:
		empty := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Render("No documents uploaded")
		b.WriteString(empty)
		b.WriteString("\n")
	default:
		for i, doc := range d.docs {
			name := util.TruncateWidth(doc.DisplayName(), boxWidth-8)
			if i == d.cursor {
				b.WriteString(d.theme.DocItemSelected.Render(name))
			} else {
				b.WriteString(d.theme.DocItem.Render(name))
			}
			b.WriteString("\n")
		}
	}

	if d.inputting {
		b.WriteString("\n")
		b.WriteString(d.theme.DocPanelTitle.Render("Upload PDF"))
		b.WriteString("\n")
		b.WriteString(d.input.View())
		b.WriteString("\n")
	}

	if d.notice != "" {
		b.WriteString("\n")
		b.WriteString(d.theme.DocNotice.Render(util.TruncateWidth(d.notice, boxWidth-6)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	b.WriteString(hintStyle.Render("u=Upload  d=Delete  Esc=Close"))

	box := d.theme.DocPanel.Width(boxWidth).Render(b.String())

	if d.width > 0 && d.height > 0 {
		return lipgloss.Place(
			d.width, d.height,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}

	return box
}
