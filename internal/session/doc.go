// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the signed-in identity across restarts.
//
// The store keeps a single JSON record under the config directory. A
// restored record missing its token is treated as absent, so the app
// falls back to the sign-in screen rather than issuing doomed requests.
//
// # Key Types
//
//   - Store: identity persistence with atomic writes
//
// # Usage
//
// Restore an identity at startup:
//
//	store, _ := session.NewStore()
//	if id, ok := store.Restore(); ok {
//	    client.SetToken(id.Token)
//	}
package session
