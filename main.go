// tutor TUI - A terminal client for the Educational Tutor backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/tutor-tui/internal/api"
	"github.com/jeranaias/tutor-tui/internal/config"
	"github.com/jeranaias/tutor-tui/internal/logging"
	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/session"
	"github.com/jeranaias/tutor-tui/internal/ui/auth"
	"github.com/jeranaias/tutor-tui/internal/ui/chat"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// APP STATE
// =============================================================================

// appState selects which screen the shell renders.
type appState int

const (
	stateAuth appState = iota
	stateChat
)

// appModel is the top-level Bubble Tea model. It owns the screen switch
// between the auth form and the chat view, and persists the session on
// sign-in and sign-out.
type appModel struct {
	state appState

	cfg    *config.Config
	client *api.Client
	store  *session.Store
	theme  *styles.Theme

	auth auth.Model
	chat chat.Model

	width  int
	height int
}

// newAppModel builds the shell. A restored session skips the auth screen.
func newAppModel(cfg *config.Config, client *api.Client, store *session.Store) appModel {
	theme := styles.NewTheme()

	m := appModel{
		state:  stateAuth,
		cfg:    cfg,
		client: client,
		store:  store,
		theme:  theme,
		auth:   auth.New(client, theme),
	}

	if store != nil {
		if identity, ok := store.Restore(); ok {
			client.SetToken(identity.Token)
			m.chat = chat.New(client, theme, identity, cfg.Chat.RetrievalK, cfg.UI.ShowSidebar)
			m.state = stateChat
			log.Info().Str("email", identity.Email).Msg("session restored")
		}
	}

	return m
}

// Init starts the active screen.
func (m appModel) Init() tea.Cmd {
	if m.state == stateChat {
		return m.chat.Init()
	}
	return m.auth.Init()
}

// Update routes messages to the active screen and handles the transitions
// between them.
func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Both screens track the size so the switch never renders stale
		// dimensions.
		m.auth.SetSize(msg.Width, msg.Height)
		if m.state == stateChat {
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			return m, cmd
		}
		return m, nil

	case auth.SignedInMsg:
		return m.signIn(msg.Identity)

	case chat.SignOutMsg:
		return m.signOut()
	}

	var cmd tea.Cmd
	switch m.state {
	case stateAuth:
		m.auth, cmd = m.auth.Update(msg)
	case stateChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// View renders the active screen.
func (m appModel) View() string {
	switch m.state {
	case stateChat:
		return m.chat.View()
	default:
		return m.auth.View()
	}
}

// signIn adopts the identity, persists the session, and enters the chat.
func (m appModel) signIn(identity model.Identity) (tea.Model, tea.Cmd) {
	m.client.SetToken(identity.Token)

	if m.store != nil {
		if err := m.store.Establish(identity); err != nil {
			log.Warn().Err(err).Msg("failed to persist session")
		}
	}

	m.chat = chat.New(m.client, m.theme, identity, m.cfg.Chat.RetrievalK, m.cfg.UI.ShowSidebar)
	m.state = stateChat

	cmds := []tea.Cmd{m.chat.Init()}
	if m.width > 0 {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		cmds = append(cmds, cmd)
	}
	log.Info().Str("email", identity.Email).Msg("signed in")
	return m, tea.Batch(cmds...)
}

// signOut drops the credential, removes the durable session record, and
// returns to a fresh auth screen.
func (m appModel) signOut() (tea.Model, tea.Cmd) {
	m.client.SetToken("")

	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			log.Warn().Err(err).Msg("failed to clear session record")
		}
	}

	m.auth = auth.New(m.client, m.theme)
	m.auth.SetSize(m.width, m.height)
	m.state = stateAuth
	log.Info().Msg("signed out")
	return m, m.auth.Init()
}

// =============================================================================
// ENTRY POINT
// =============================================================================

func main() {
	// .env is optional; real environment wins over file values.
	_ = godotenv.Load()

	cfg := config.Global()

	if err := setupLogging(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	log.Info().Str("version", Version).Str("commit", GitCommit).Msg("tutor starting")

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:     cfg.Server.URL,
		Timeout:     time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		LongTimeout: time.Duration(cfg.Server.LongTimeoutSecs) * time.Second,
	})

	store, err := session.NewStore()
	if err != nil {
		log.Warn().Err(err).Msg("session persistence unavailable")
		store = nil
	}

	p := tea.NewProgram(
		newAppModel(cfg, client, store),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging wires zerolog to the configured log file. The TUI owns the
// terminal, so logs never go to stdout.
func setupLogging(cfg *config.Config) error {
	if cfg.Log.Level == "disabled" {
		logging.Disable()
		return nil
	}

	path, err := cfg.LogPath()
	if err != nil {
		logging.Disable()
		return err
	}

	closeLog, err := logging.Setup(path, cfg.Log.Level)
	if err != nil {
		logging.Disable()
		return err
	}
	_ = closeLog // held open for the process lifetime
	return nil
}
