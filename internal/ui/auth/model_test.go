// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"encoding/base64"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tutor-tui/internal/api"
	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
)

func newTestModel() Model {
	return New(api.NewClient(), styles.NewTheme())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(key(string(r)))
	}
	return m
}

func TestSubmit_EmptyFields(t *testing.T) {
	m := newTestModel()

	m, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Error("empty form should not fire a request")
	}
	if m.errMsg == "" {
		t.Error("expected inline validation error")
	}
}

func TestTabSwitch(t *testing.T) {
	m := newTestModel()

	if m.tab != TabLogin {
		t.Fatal("should start on login tab")
	}

	m, _ = m.Update(key("ctrl+t"))
	if m.tab != TabRegister {
		t.Error("ctrl+t should switch to register tab")
	}
	if m.fieldCount() != 3 {
		t.Errorf("register form has %d fields, want 3", m.fieldCount())
	}

	m, _ = m.Update(key("ctrl+t"))
	if m.tab != TabLogin {
		t.Error("ctrl+t should switch back to login tab")
	}
}

func TestRegister_RequiresUsername(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(key("ctrl+t")) // register tab

	m = typeText(m, "ada@example.com")
	m, _ = m.Update(key("tab"))
	m, _ = m.Update(key("tab")) // skip username, land on password
	m = typeText(m, "secret")

	m, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Error("register without username should not fire a request")
	}
	if !strings.Contains(m.errMsg, "Username") {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestLoginFieldFocusSkipsUsername(t *testing.T) {
	m := newTestModel()

	// Login form: email then password, no username row
	if m.activeField() != fieldEmail {
		t.Error("focus should start on email")
	}
	m, _ = m.Update(key("tab"))
	if m.activeField() != fieldPassword {
		t.Error("second login field should be password")
	}
}

func TestLoginResult_ErrorShown(t *testing.T) {
	m := newTestModel()
	m.busy = true

	m, cmd := m.Update(loginResultMsg{err: api.ErrInvalidCredentials})
	if cmd != nil {
		t.Error("failed login should not emit SignedInMsg")
	}
	if m.busy {
		t.Error("busy flag should clear")
	}
	if m.errMsg != "Invalid email or password" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestLoginResult_Success(t *testing.T) {
	m := newTestModel()
	m.busy = true

	id := model.Identity{Email: "ada@example.com", Token: "tok"}
	_, cmd := m.Update(loginResultMsg{identity: id})
	if cmd == nil {
		t.Fatal("successful login should emit SignedInMsg")
	}

	signed, ok := cmd().(SignedInMsg)
	if !ok {
		t.Fatalf("expected SignedInMsg, got %T", cmd())
	}
	if signed.Identity.Token != "tok" {
		t.Errorf("Token = %q", signed.Identity.Token)
	}
}

func TestTokenSignIn(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(key("ctrl+g"))

	if !m.tokenMode {
		t.Fatal("ctrl+g should enter token mode")
	}

	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"email":"ada@example.com","name":"Ada"}`))
	credential := "h." + payload + ".s"

	m.tokenField.SetValue(credential)

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("valid token should emit SignedInMsg")
	}

	signed := cmd().(SignedInMsg)
	if signed.Identity.Email != "ada@example.com" {
		t.Errorf("Email = %q", signed.Identity.Email)
	}
	if signed.Identity.Token != credential {
		t.Error("raw credential should be carried as the token")
	}
}

func TestTokenSignIn_Invalid(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(key("ctrl+g"))
	m.tokenField.SetValue("garbage")

	m, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Error("invalid token should not sign in")
	}
	if m.errMsg == "" {
		t.Error("expected inline error")
	}
}

func TestRegisterResult_SwitchesToLogin(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(key("ctrl+t"))
	m.busy = true

	m, _ = m.Update(registerResultMsg{})
	if m.tab != TabLogin {
		t.Error("successful registration should switch to login tab")
	}
	if m.infoMsg == "" {
		t.Error("expected info message")
	}
}
