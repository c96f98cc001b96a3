// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view for the TUI.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tutor-tui/internal/api"
)

// =============================================================================
// NETWORK COMMANDS
// =============================================================================

// Commands capture the client and request parameters before the closure so
// later model mutations cannot race the in-flight request. Request deadlines
// come from the client's own timeouts; only history loads carry an explicit
// cancellation context, because switching conversations must be able to
// abandon a load that is still in flight.

// fetchConversations refreshes the conversation registry under seq.
func fetchConversations(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		conversations, err := client.Conversations(context.Background())
		return conversationsMsg{seq: seq, conversations: conversations, err: err}
	}
}

// fetchHistory loads the transcript for id under ctx.
func fetchHistory(ctx context.Context, client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		messages, err := client.History(ctx, id)
		return historyMsg{id: id, messages: messages, err: err}
	}
}

// sendTurn posts one question on the given conversation.
func sendTurn(client *api.Client, question string, k int, conversationID string) tea.Cmd {
	return func() tea.Msg {
		answer, err := client.Chat(context.Background(), question, k, conversationID)
		return answerMsg{conversationID: conversationID, answer: answer, err: err}
	}
}

// deleteConversation issues a best-effort conversation delete. No result
// message: the registry entry is dropped optimistically before this runs.
func deleteConversation(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		_ = client.DeleteConversation(context.Background(), id)
		return nil
	}
}

// fetchDocuments refreshes the knowledge-document listing under seq.
func fetchDocuments(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		docs, err := client.ListPDFs(context.Background())
		return documentsMsg{seq: seq, docs: docs, err: err}
	}
}

// uploadDocument sends the PDF at path.
func uploadDocument(client *api.Client, path string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.UploadPDF(context.Background(), path)
		return uploadedMsg{result: result, err: err}
	}
}

// deleteDocument deletes the stored document by name. The response status is
// ignored; the listing is refreshed unconditionally afterwards.
func deleteDocument(client *api.Client, name string) tea.Cmd {
	return func() tea.Msg {
		_ = client.DeletePDF(context.Background(), name)
		return docDeletedMsg{}
	}
}
