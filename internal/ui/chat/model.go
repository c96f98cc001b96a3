// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/tutor-tui/internal/api"
	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/ui/components"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the transcript controller state for the active
// conversation.
type State int

const (
	StateEmpty    State = iota // No active conversation
	StateLoading               // History fetch in flight
	StateIdle                  // Transcript loaded, composer ready
	StateAwaiting              // A turn is in flight, placeholder shown
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view: transcript, composer,
// conversation sidebar, document panel, and confirmation dialog.
//
// All mutation happens on the Bubble Tea update loop. Network results are
// reconciled against the state that issued them: registry and document
// refreshes carry sequence numbers (stale responses are dropped), history
// loads are cancelled when the active conversation changes, and a chat
// answer is only applied while its conversation is still active.
type Model struct {
	state State

	theme  *styles.Theme
	keyMap KeyMap

	width  int
	height int

	client   *api.Client
	identity model.Identity

	// Active conversation
	activeID string
	messages []model.Message

	// Registry refresh sequencing. listSeq is the latest issued request;
	// responses stamped with an older seq are discarded.
	listSeq int
	docSeq  int

	// In-flight history load. Cancelled when the active id changes or the
	// transcript is reset, so a late response cannot clobber newer state.
	historyCancel context.CancelFunc

	retrievalK int

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	spinner   components.Spinner
	sidebar   *components.Sidebar
	docPanel  *components.DocPanel
	confirm   *components.Confirm
	statusBar *components.StatusBar

	showSidebar bool

	markdown *markdownRenderer
}

// New creates a chat model bound to an authenticated client.
func New(client *api.Client, theme *styles.Theme, identity model.Identity, retrievalK int, showSidebar bool) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask your tutor..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	sb := components.NewSidebar(theme)
	sb.SetIdentity(identity)

	status := components.NewStatusBar(theme)
	status.SetIdentity(identity.Email)
	status.SetServer(client.GetConfig().BaseURL)

	m := Model{
		state:       StateEmpty,
		theme:       theme,
		keyMap:      DefaultKeyMap(),
		client:      client,
		identity:    identity,
		listSeq:     1,
		retrievalK:  retrievalK,
		viewport:    vp,
		input:       ti,
		spinner:     components.NewThinkingSpinner(),
		sidebar:     sb,
		docPanel:    components.NewDocPanel(theme),
		confirm:     components.NewConfirm(theme),
		statusBar:   status,
		showSidebar: showSidebar,
		markdown:    newMarkdownRenderer(80),
	}
	return m
}

// Init issues the first registry refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		fetchConversations(m.client, m.listSeq),
	)
}

// SetSize updates the layout for a new terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	sidebarWidth := 0
	if m.sidebarShown() {
		sidebarWidth = m.sidebarWidth()
		m.sidebar.SetSize(sidebarWidth, height-1)
	}

	mainWidth := width - sidebarWidth
	m.viewport.Width = mainWidth
	m.viewport.Height = height - composerHeight - 1
	m.input.Width = mainWidth - 4

	m.statusBar.SetWidth(width)
	m.docPanel.SetSize(mainWidth, height-1)
	m.confirm.SetSize(width, height)

	m.markdown = newMarkdownRenderer(mainWidth - 4)
	m.syncViewport()
}

// composerHeight is the rows reserved for the input box.
const composerHeight = 3

// sidebarWidth computes the sidebar column width for the current layout.
func (m *Model) sidebarWidth() int {
	w := m.width / 4
	if w < 24 {
		w = 24
	}
	if w > 36 {
		w = 36
	}
	return w
}

// sidebarShown reports whether the sidebar renders at the current size.
// Narrow layouts collapse it regardless of the toggle.
func (m *Model) sidebarShown() bool {
	return m.showSidebar && m.theme.GetLayoutMode() != styles.LayoutNarrow
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case components.ConfirmResultMsg:
		return m.handleConfirmResult(msg)

	case components.UploadRequestMsg:
		m.docPanel.SetLoading(true)
		return m, uploadDocument(m.client, msg.Path)

	case components.DocDeleteRequestMsg:
		m.confirm.Show(components.ConfirmDocument, msg.Doc.StoredName, msg.Doc.DisplayName())
		return m, nil

	case conversationsMsg:
		return m.handleConversations(msg)

	case historyMsg:
		return m.handleHistory(msg)

	case answerMsg:
		return m.handleAnswer(msg)

	case documentsMsg:
		return m.handleDocuments(msg)

	case uploadedMsg:
		return m.handleUploaded(msg)

	case docDeletedMsg:
		m.docSeq++
		return m, fetchDocuments(m.client, m.docSeq)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.spinner.IsActive() {
		m.syncViewport()
	}
	return m, cmd
}

// handleKey routes key events through the overlays before the main bindings.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The confirmation dialog swallows everything while open.
	if cmd, consumed := m.confirm.Update(msg); consumed {
		return m, cmd
	}

	// Quit and the panel toggle are never trapped by the document panel.
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keyMap.Documents) {
		return m.toggleDocuments()
	}

	if cmd, consumed := m.docPanel.Update(msg); consumed {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.NewChat):
		m.resetConversation()
		return m, nil

	case key.Matches(msg, m.keyMap.Sidebar):
		m.showSidebar = !m.showSidebar
		m.SetSize(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keyMap.Delete):
		if summary, ok := m.sidebar.Highlighted(); ok {
			m.confirm.Show(components.ConfirmConversation, summary.ID, summary.DisplayTitle())
		}
		return m, nil

	case key.Matches(msg, m.keyMap.SignOut):
		return m.signOut()

	case key.Matches(msg, m.keyMap.PrevConversation):
		m.sidebar.CursorUp()
		return m.openHighlighted()

	case key.Matches(msg, m.keyMap.NextConversation):
		m.sidebar.CursorDown()
		return m.openHighlighted()

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// CONVERSATION LIFECYCLE
// =============================================================================

// submit sends the composer text as a turn on the active conversation. Blank
// input is a no-op, as is submitting while a turn or a history load is in
// flight. On the first turn of a fresh chat a client-minted id becomes the
// active id; the backend recognizes it once the turn succeeds.
func (m Model) submit() (Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.state == StateAwaiting || m.state == StateLoading {
		return m, nil
	}

	if m.activeID == "" {
		m.activeID = model.NewChatID()
		m.sidebar.SetActive(m.activeID)
	}

	m.messages = append(m.messages, model.NewUserMessage(question))
	m.messages = append(m.messages, model.NewThinkingMessage())
	m.state = StateAwaiting
	m.input.SetValue("")
	m.statusBar.SetStatus(components.StatusThinking)
	m.syncViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.spinner.Start(),
		sendTurn(m.client, question, m.retrievalK, m.activeID),
	)
}

// openHighlighted loads the conversation under the sidebar cursor.
func (m Model) openHighlighted() (Model, tea.Cmd) {
	summary, ok := m.sidebar.Highlighted()
	if !ok {
		return m, nil
	}
	return m.openConversation(summary.ID)
}

// openConversation switches the active conversation and loads its history.
// History is only (re)loaded when the id actually changes and no turn is in
// flight, so a reload can never race an outstanding answer.
func (m Model) openConversation(id string) (Model, tea.Cmd) {
	if id == m.activeID || m.state == StateAwaiting {
		return m, nil
	}

	m.cancelHistory()

	ctx, cancel := context.WithCancel(context.Background())
	m.historyCancel = cancel

	m.activeID = id
	m.messages = nil
	m.state = StateLoading
	m.sidebar.SetActive(id)
	m.statusBar.SetStatus(components.StatusLoading)
	m.syncViewport()

	return m, fetchHistory(ctx, m.client, id)
}

// resetConversation returns to the empty state. Any in-flight history load
// is cancelled; a late answer for the abandoned conversation is discarded
// by the id check in handleAnswer.
func (m *Model) resetConversation() {
	m.cancelHistory()
	m.activeID = ""
	m.messages = nil
	m.state = StateEmpty
	m.spinner.Stop()
	m.sidebar.SetActive("")
	m.statusBar.SetStatus(components.StatusReady)
	m.syncViewport()
}

// cancelHistory aborts the in-flight history load, if any.
func (m *Model) cancelHistory() {
	if m.historyCancel != nil {
		m.historyCancel()
		m.historyCancel = nil
	}
}

// signOut clears all chat state and tells the shell to drop the session.
func (m Model) signOut() (Model, tea.Cmd) {
	m.resetConversation()
	m.sidebar.SetConversations(nil)
	m.docPanel.Hide()
	m.docPanel.SetDocuments(nil)
	return m, func() tea.Msg { return SignOutMsg{} }
}

// toggleDocuments opens the document panel and refreshes the listing, or
// closes it when already open.
func (m Model) toggleDocuments() (Model, tea.Cmd) {
	if m.docPanel.IsVisible() {
		m.docPanel.Hide()
		return m, nil
	}
	m.docPanel.Show()
	m.docPanel.SetLoading(true)
	m.docSeq++
	return m, fetchDocuments(m.client, m.docSeq)
}

// =============================================================================
// NETWORK RESULT HANDLERS
// =============================================================================

// handleConversations applies a registry refresh. Stale responses (older
// seq than the latest issued request) are dropped; failures keep the
// previous listing.
func (m Model) handleConversations(msg conversationsMsg) (Model, tea.Cmd) {
	if msg.seq != m.listSeq {
		return m, nil
	}
	if msg.err != nil {
		log.Warn().Err(msg.err).Msg("conversation refresh failed, keeping cached list")
		return m, nil
	}
	m.sidebar.SetConversations(msg.conversations)
	return m, nil
}

// handleHistory applies a transcript load. Results for a conversation that
// is no longer active are dropped. Both success and failure land in Idle;
// a failed load leaves the transcript empty.
func (m Model) handleHistory(msg historyMsg) (Model, tea.Cmd) {
	if msg.id != m.activeID || m.state != StateLoading {
		return m, nil
	}
	m.historyCancel = nil
	m.state = StateIdle
	if msg.err != nil {
		log.Warn().Err(msg.err).Str("conversation", msg.id).Msg("history load failed")
		m.messages = nil
	} else {
		m.messages = msg.messages
	}
	m.statusBar.SetStatus(components.StatusReady)
	m.syncViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleAnswer reconciles a completed turn against the optimistic
// placeholder. The trailing thinking entry is replaced by position: exactly
// one placeholder exists while awaiting and it is always last. A successful
// turn also refreshes the registry so a fresh thread surfaces under its
// server-assigned title.
func (m Model) handleAnswer(msg answerMsg) (Model, tea.Cmd) {
	if msg.conversationID != m.activeID || m.state != StateAwaiting {
		return m, nil
	}

	if n := len(m.messages); n > 0 && m.messages[n-1].Thinking {
		m.messages = m.messages[:n-1]
	}

	var cmd tea.Cmd
	if msg.err != nil {
		log.Warn().Err(msg.err).Str("conversation", msg.conversationID).Msg("chat turn failed")
		m.messages = append(m.messages, model.NewAssistantMessage("Error connecting.", nil))
	} else {
		m.messages = append(m.messages, model.NewAssistantMessage(msg.answer.Answer, msg.answer.Sources))
		m.listSeq++
		cmd = fetchConversations(m.client, m.listSeq)
	}

	m.state = StateIdle
	m.spinner.Stop()
	m.statusBar.SetStatus(components.StatusReady)
	m.syncViewport()
	m.viewport.GotoBottom()
	return m, cmd
}

// handleDocuments applies a document listing, with the same staleness rule
// as conversation refreshes.
func (m Model) handleDocuments(msg documentsMsg) (Model, tea.Cmd) {
	if msg.seq != m.docSeq {
		return m, nil
	}
	m.docPanel.SetLoading(false)
	if msg.err != nil {
		log.Warn().Err(msg.err).Msg("document refresh failed, keeping cached list")
		return m, nil
	}
	m.docPanel.SetDocuments(msg.docs)
	return m, nil
}

// handleUploaded reports an upload result and refreshes the listing on
// success.
func (m Model) handleUploaded(msg uploadedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		log.Warn().Err(msg.err).Msg("upload failed")
		m.docPanel.SetLoading(false)
		m.docPanel.SetNotice(components.FriendlyError(msg.err))
		return m, nil
	}

	m.docPanel.SetNotice(uploadNotice(msg.result))
	m.docSeq++
	return m, fetchDocuments(m.client, m.docSeq)
}

// handleConfirmResult runs the accepted destructive action. Deletes are
// optimistic: local state drops the entry immediately and the backend
// response is never inspected.
func (m Model) handleConfirmResult(msg components.ConfirmResultMsg) (Model, tea.Cmd) {
	if !msg.Accepted {
		return m, nil
	}

	switch msg.Kind {
	case components.ConfirmConversation:
		m.sidebar.Remove(msg.Target)
		if msg.Target == m.activeID {
			m.resetConversation()
		}
		return m, deleteConversation(m.client, msg.Target)

	case components.ConfirmDocument:
		m.docPanel.SetLoading(true)
		return m, deleteDocument(m.client, msg.Target)
	}

	return m, nil
}

// uploadNotice formats the human-readable upload confirmation. The backend
// reports the stored filename; the server-assigned prefix is stripped for
// display.
func uploadNotice(result *api.UploadResult) string {
	name := model.Document{StoredName: result.Filename}.DisplayName()
	return fmt.Sprintf("Uploaded %s (%d pages, %d chunks).", name, result.Pages, result.Chunks)
}
