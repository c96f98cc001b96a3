// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the tutor client.
package model

// =============================================================================
// IDENTITY TYPE
// =============================================================================

// Identity is the authenticated user as held in memory and mirrored to the
// on-disk session record. The Token is the opaque bearer credential attached
// to every authenticated request; it is trusted until the backend rejects it.
type Identity struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
	Token   string `json:"token"`
}

// HasToken reports whether the identity carries a usable bearer token.
// An identity without a token must never be adopted as a session.
func (i Identity) HasToken() bool {
	return i.Token != ""
}

// FirstName returns the leading word of the display name for greeting text.
func (i Identity) FirstName() string {
	for idx, r := range i.Name {
		if r == ' ' {
			return i.Name[:idx]
		}
	}
	return i.Name
}
