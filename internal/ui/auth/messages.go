// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the sign-in and registration screen.
package auth

import "github.com/jeranaias/tutor-tui/internal/model"

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// SignedInMsg is emitted when authentication succeeds. The app shell
// switches to the chat screen and persists the identity.
type SignedInMsg struct {
	Identity model.Identity
}

// loginResultMsg carries the outcome of a login request.
type loginResultMsg struct {
	identity model.Identity
	err      error
}

// registerResultMsg carries the outcome of a registration request.
type registerResultMsg struct {
	err error
}
