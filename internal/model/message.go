// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the tutor client.
package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Tutor"
	default:
		return string(r)
	}
}

// =============================================================================
// SOURCE REFERENCES
// =============================================================================

// SourceRef is a retrieval citation attached to an assistant answer.
type SourceRef struct {
	Source string `json:"source"`
	Page   int    `json:"page"`
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single entry in a conversation transcript.
//
// The Thinking flag marks the transient placeholder shown while a turn is in
// flight. At most one thinking message exists at a time and it is always the
// most recently appended entry; it is never persisted or sent to the backend.
type Message struct {
	Role     Role        `json:"role"`
	Text     string      `json:"text"`
	Thinking bool        `json:"-"`
	Sources  []SourceRef `json:"sources,omitempty"`
}

// NewUserMessage creates a user message with the given text.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// NewAssistantMessage creates an assistant message with the given answer text
// and citations.
func NewAssistantMessage(text string, sources []SourceRef) Message {
	return Message{Role: RoleAssistant, Text: text, Sources: sources}
}

// NewThinkingMessage creates the transient assistant placeholder shown while
// an exchange is in flight.
func NewThinkingMessage() Message {
	return Message{Role: RoleAssistant, Thinking: true}
}

// Preview returns a truncated single-line preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	text := strings.ReplaceAll(m.Text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// CONVERSATION ID MINTING
// =============================================================================

// NewChatID mints a client-side conversation id for a thread the backend has
// not acknowledged yet. The shape is chat-<unix-ms>-<random>; once the first
// turn on the thread succeeds, the backend recognizes the id and the registry
// refresh surfaces the canonical summary.
func NewChatID() string {
	rand := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	return "chat-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + rand
}
