// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the tutor client.
//
// This package defines the core domain types used throughout the application
// for representing the authenticated identity, conversations, transcript
// messages, and knowledge documents.
//
// # Key Types
//
//   - Identity: The authenticated user (name, email, picture, bearer token)
//   - ConversationSummary: A conversation as listed in the sidebar (id, title)
//   - Message: Single transcript entry with role, text, and optional sources
//   - SourceRef: A retrieval citation (source document, page)
//   - Document: An uploaded knowledge PDF, keyed by its stored filename
//
// # Usage
//
// Append a user turn and its placeholder to a transcript:
//
//	msgs = append(msgs, model.NewUserMessage("What is osmosis?"))
//	msgs = append(msgs, model.NewThinkingMessage())
//
// Mint a conversation id for a thread the backend has not seen yet:
//
//	id := model.NewChatID()
package model
