// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the tutor TUI.
package components

import (
	"errors"

	"github.com/jeranaias/tutor-tui/internal/api"
)

// =============================================================================
// ERROR PRESENTATION
// =============================================================================

// FriendlyError maps a client error onto a short user-facing message.
func FriendlyError(err error) string {
	switch {
	case err == nil:
		return ""
	case api.IsInvalidCredentials(err):
		return "Invalid email or password"
	case api.IsNotAuthenticated(err):
		return "Session expired. Please sign in again."
	case api.IsTimeout(err):
		return "The server took too long to respond."
	default:
		var clientErr *api.ClientError
		if errors.As(err, &clientErr) && clientErr.Type == api.ErrTypeServer {
			return clientErr.Message
		}
		return "Error connecting."
	}
}
