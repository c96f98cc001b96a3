// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view for the TUI.
package chat

import (
	"github.com/jeranaias/tutor-tui/internal/api"
	"github.com/jeranaias/tutor-tui/internal/model"
)

// =============================================================================
// OUTBOUND MESSAGES
// =============================================================================

// SignOutMsg tells the shell to clear the session and return to the auth
// screen. All chat state has already been reset by the time it is emitted.
type SignOutMsg struct{}

// =============================================================================
// NETWORK RESULT MESSAGES
// =============================================================================

// conversationsMsg carries a registry refresh result. Seq is the sequence
// number the request was issued under; responses older than the latest
// issued request are discarded.
type conversationsMsg struct {
	seq           int
	conversations []model.ConversationSummary
	err           error
}

// historyMsg carries a transcript load result for one conversation.
type historyMsg struct {
	id       string
	messages []model.Message
	err      error
}

// answerMsg carries the outcome of a chat turn.
type answerMsg struct {
	conversationID string
	answer         *api.ChatAnswer
	err            error
}

// documentsMsg carries a knowledge-document listing, stamped like
// conversationsMsg.
type documentsMsg struct {
	seq  int
	docs []model.Document
	err  error
}

// uploadedMsg carries the outcome of a PDF upload.
type uploadedMsg struct {
	result *api.UploadResult
	err    error
}

// docDeletedMsg signals a document delete request has completed. The
// response status is not inspected; the listing is refreshed either way.
type docDeletedMsg struct{}
