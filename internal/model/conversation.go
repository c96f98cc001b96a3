// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the tutor client.
package model

import "strings"

// =============================================================================
// CONVERSATION SUMMARY
// =============================================================================

// ConversationSummary is a conversation as listed by the backend registry.
// The client never mutates the title; it is sourced entirely from the server.
type ConversationSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DisplayTitle returns the title, or a fallback for untitled threads.
func (c ConversationSummary) DisplayTitle() string {
	if strings.TrimSpace(c.Title) == "" {
		return "New conversation"
	}
	return c.Title
}

// IsClientMinted reports whether the id looks like a locally minted
// placeholder rather than a server-recognized id.
func IsClientMinted(id string) bool {
	return strings.HasPrefix(id, "chat-")
}
