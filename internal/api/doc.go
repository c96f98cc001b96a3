// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tutor backend.
//
// The backend performs authentication, retrieval, and answer generation; this
// package only speaks its REST surface. Authenticated requests carry the
// bearer token under the x-token header and are short-circuited with
// ErrNotAuthenticated when no identity is set.
//
// # Key Types
//
//   - Client: the backend client (register, login, conversations, chat, PDFs)
//   - ClientError: typed error with category, message, and cause
//   - ChatAnswer / UploadResult: response payloads for the two rich endpoints
//
// # Usage
//
// Authenticate and send a turn:
//
//	client := api.NewClient()
//	id, err := client.Login(ctx, email, password)
//	if err != nil {
//	    // surface "Invalid email or password"
//	}
//	client.SetToken(id.Token)
//	answer, err := client.Chat(ctx, "What is osmosis?", 6, convID)
package api
