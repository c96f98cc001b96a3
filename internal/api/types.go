// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tutor backend.
package api

import "github.com/jeranaias/tutor-tui/internal/model"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChatRequest is the body of POST /chat. K is the retrieval depth the backend
// uses when assembling context for the answer.
type ChatRequest struct {
	Question       string `json:"question"`
	K              int    `json:"k"`
	ConversationID string `json:"conversation_id"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// LoginResponse is the body returned by POST /login.
type LoginResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Token   string `json:"token"`
}

// Identity converts the login payload into the domain identity.
func (r LoginResponse) Identity() model.Identity {
	return model.Identity{
		Name:    r.Name,
		Email:   r.Email,
		Picture: r.Picture,
		Token:   r.Token,
	}
}

// historyEntry is one transcript entry as returned by GET /conversations/{id}.
type historyEntry struct {
	Role    string            `json:"role"`
	Text    string            `json:"text"`
	Sources []model.SourceRef `json:"sources,omitempty"`
}

// ChatAnswer is the body returned by POST /chat.
type ChatAnswer struct {
	Answer  string            `json:"answer"`
	Sources []model.SourceRef `json:"sources"`
}

// UploadResult is the body returned by POST /upload_pdf.
type UploadResult struct {
	Filename string `json:"filename"`
	Pages    int    `json:"pages"`
	Chunks   int    `json:"chunks"`
}

// serverError is the generic error envelope some endpoints return.
type serverError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// text returns whichever error field the server populated.
func (e serverError) text() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Error
}
