// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the sign-in and registration screen.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/tutor-tui/internal/api"
	"github.com/jeranaias/tutor-tui/internal/ui/components"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
)

// =============================================================================
// TABS AND FIELDS
// =============================================================================

// Tab selects between the sign-in and registration forms.
type Tab int

const (
	TabLogin Tab = iota
	TabRegister
)

// Field indexes within the active form.
const (
	fieldEmail = iota
	fieldUsername
	fieldPassword
)

// requestTimeout bounds auth requests; the form has no cancel affordance.
const requestTimeout = 15 * time.Second

// =============================================================================
// AUTH MODEL
// =============================================================================

// Model is the authentication screen.
type Model struct {
	client *api.Client
	theme  *styles.Theme

	tab   Tab
	focus int

	email    textinput.Model
	username textinput.Model
	password textinput.Model

	// Federated sign-in: a pasted identity credential replaces the form.
	tokenMode  bool
	tokenField textinput.Model

	spinner components.Spinner
	busy    bool

	errMsg  string
	infoMsg string

	width  int
	height int
}

// New creates the authentication screen.
func New(client *api.Client, theme *styles.Theme) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Prompt = "> "

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Prompt = "> "

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Prompt = "> "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	tokenField := textinput.New()
	tokenField.Placeholder = "paste identity token"
	tokenField.CharLimit = 4096
	tokenField.Prompt = "> "

	m := Model{
		client:     client,
		theme:      theme,
		email:      email,
		username:   username,
		password:   password,
		tokenField: tokenField,
		spinner:    components.NewSpinner(),
	}
	m.spinner.SetMessage("Signing in")
	m.email.Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		m.busy = false
		m.spinner.Stop()
		if msg.err != nil {
			m.errMsg = components.FriendlyError(msg.err)
			return m, nil
		}
		identity := msg.identity
		return m, func() tea.Msg {
			return SignedInMsg{Identity: identity}
		}

	case registerResultMsg:
		m.busy = false
		m.spinner.Stop()
		if msg.err != nil {
			m.errMsg = components.FriendlyError(msg.err)
			return m, nil
		}
		// Registration done; ask the user to sign in with the new account
		m.tab = TabLogin
		m.focus = fieldEmail
		m.infoMsg = "Account created. Please sign in."
		m.password.SetValue("")
		return m, m.focusCurrent()
	}

	if m.busy {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.updateInputs(msg)
}

// handleKey routes key events for the form.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+t":
		if m.tab == TabLogin {
			m.tab = TabRegister
		} else {
			m.tab = TabLogin
		}
		m.tokenMode = false
		m.focus = fieldEmail
		m.errMsg = ""
		m.infoMsg = ""
		return m, m.focusCurrent()

	case "ctrl+g":
		m.tokenMode = !m.tokenMode
		m.errMsg = ""
		m.infoMsg = ""
		return m, m.focusCurrent()

	case "tab", "down":
		m.focus = (m.focus + 1) % m.fieldCount()
		return m, m.focusCurrent()

	case "shift+tab", "up":
		m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
		return m, m.focusCurrent()

	case "enter":
		return m.submit()
	}

	return m, m.updateInputs(msg)
}

// fieldCount returns how many fields the active form has.
func (m Model) fieldCount() int {
	if m.tokenMode {
		return 1
	}
	if m.tab == TabRegister {
		return 3
	}
	return 2
}

// focusCurrent focuses the field at the cursor and blurs the rest.
func (m *Model) focusCurrent() tea.Cmd {
	m.email.Blur()
	m.username.Blur()
	m.password.Blur()
	m.tokenField.Blur()

	if m.tokenMode {
		return m.tokenField.Focus()
	}

	switch m.activeField() {
	case fieldEmail:
		return m.email.Focus()
	case fieldUsername:
		return m.username.Focus()
	default:
		return m.password.Focus()
	}
}

// activeField maps the focus cursor onto a field index. The login form
// has no username row, so its second position is the password.
func (m Model) activeField() int {
	if m.tab == TabLogin && m.focus == 1 {
		return fieldPassword
	}
	return m.focus
}

// updateInputs forwards an event to the focused text input.
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.tokenMode:
		m.tokenField, cmd = m.tokenField.Update(msg)
	case m.activeField() == fieldEmail:
		m.email, cmd = m.email.Update(msg)
	case m.activeField() == fieldUsername:
		m.username, cmd = m.username.Update(msg)
	default:
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit validates the active form and fires the matching request.
func (m Model) submit() (Model, tea.Cmd) {
	m.errMsg = ""
	m.infoMsg = ""

	if m.tokenMode {
		return m.submitToken()
	}

	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()

	if email == "" || password == "" {
		m.errMsg = "Email and password are required"
		return m, nil
	}

	if m.tab == TabRegister {
		username := strings.TrimSpace(m.username.Value())
		if username == "" {
			m.errMsg = "Username is required"
			return m, nil
		}
		m.busy = true
		client := m.client
		return m, tea.Batch(m.spinner.Start(), func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return registerResultMsg{err: client.Register(ctx, email, username, password)}
		})
	}

	m.busy = true
	client := m.client
	return m, tea.Batch(m.spinner.Start(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		identity, err := client.Login(ctx, email, password)
		return loginResultMsg{identity: identity, err: err}
	})
}

// submitToken handles a pasted federated credential. Claims are decoded
// locally and the raw credential becomes the bearer token.
func (m Model) submitToken() (Model, tea.Cmd) {
	credential := strings.TrimSpace(m.tokenField.Value())
	if credential == "" {
		m.errMsg = "Paste an identity token first"
		return m, nil
	}

	identity, err := api.DecodeIdentityToken(credential)
	if err != nil {
		log.Warn().Err(err).Msg("rejected pasted identity token")
		m.errMsg = "That does not look like a valid identity token"
		return m, nil
	}

	return m, func() tea.Msg {
		return SignedInMsg{Identity: identity}
	}
}
