// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/tutor-tui/internal/api"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusLoading, "Loading..."},
		{StatusThinking, "Thinking..."},
		{StatusError, "Error"},
	}

	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestStatusBar_View(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(120)
	bar.SetStatus(StatusThinking)
	bar.SetIdentity("ada@example.com")

	view := bar.View()
	if !strings.Contains(view, "Thinking...") {
		t.Error("view missing status text")
	}
	if !strings.Contains(view, "ada@example.com") {
		t.Error("view missing identity")
	}
	if !strings.Contains(view, "sign out") {
		t.Error("view missing shortcuts")
	}
}

func TestStatusBar_WideShowsServer(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(120)
	bar.SetServer("http://127.0.0.1:8000")

	if !strings.Contains(bar.View(), "http://127.0.0.1:8000") {
		t.Error("wide view missing server")
	}
}

func TestStatusBar_NarrowDropsShortcuts(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(40)
	bar.SetIdentity("ada@example.com")

	view := bar.View()
	if strings.Contains(view, "sign out") {
		t.Error("narrow view should drop shortcuts")
	}
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"invalid credentials", api.ErrInvalidCredentials, "Invalid email or password"},
		{"not authenticated", api.ErrNotAuthenticated, "Session expired. Please sign in again."},
		{"timeout", api.ErrTimeout, "The server took too long to respond."},
		{"connection", &api.ClientError{Type: api.ErrTypeConnection, Message: "backend unreachable"}, "Error connecting."},
		{"server detail", &api.ClientError{Type: api.ErrTypeServer, Message: "model overloaded"}, "model overloaded"},
		{"unknown", errors.New("boom"), "Error connecting."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FriendlyError(tc.err); got != tc.want {
				t.Errorf("FriendlyError() = %q, want %q", got, tc.want)
			}
		})
	}
}
