// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the tutor client.
package model

import "strings"

// =============================================================================
// KNOWLEDGE DOCUMENT
// =============================================================================

// Document is an uploaded knowledge PDF. The backend stores files under a
// server-assigned prefix joined to the original name with an underscore;
// deletion is keyed by the full stored name.
type Document struct {
	StoredName string `json:"stored_name"`
}

// DisplayName strips the server-assigned "<prefix>_" part for display.
// Names without an underscore are shown as-is.
func (d Document) DisplayName() string {
	if idx := strings.Index(d.StoredName, "_"); idx >= 0 {
		return d.StoredName[idx+1:]
	}
	return d.StoredName
}
