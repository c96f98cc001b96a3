// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components for the tutor TUI.

Each component is a self-contained struct with its own state, an Update
method for Bubble Tea messages, and a View method producing a rendered
string. Components that need to notify the parent model emit typed
messages through tea.Cmd.

# Components

  - Sidebar: conversation registry with identity footer
  - DocPanel: knowledge document manager overlay
  - Confirm: modal confirmation dialog for destructive actions
  - Spinner: loading indicator with optional elapsed timer
  - StatusBar: bottom bar with state, identity, server, and shortcuts

FriendlyError maps client errors onto the short user-facing strings shared
by the auth form and the panels.
*/
package components
