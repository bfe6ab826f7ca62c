// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the compass TUI.
//
// Components are small, theme-driven renderers composed by the chat model:
//
//   - Header: title bar with backend readiness indicator
//   - Welcome: empty-conversation screen with selectable example prompts
//   - SourceChips: per-message row of document and web source chips
//   - SourceModal: overlay viewer for document source text
//   - Spinner: thinking indicator while a query is in flight
//   - StatusBar: bottom bar listing keyboard shortcuts
//
// Each component owns its own presentation state but no application state;
// the chat model decides when they appear and feeds them data.
package components
