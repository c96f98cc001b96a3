// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the tutor client.
//
// # Key Functions
//
//   - TruncateRunes / TruncateWidth: Unicode-safe string truncation
//   - AtomicWriteFile: crash-safe file persistence for the session record
package util
