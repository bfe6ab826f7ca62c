// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main chat view of the compass TUI.
//
// The chat model owns the conversation, drives the retrieval backend client,
// and composes the components package into the full screen: header,
// transcript viewport (or welcome screen while empty), thinking spinner,
// input field, disclaimer, and status bar. The source viewer modal overlays
// everything while open.
//
// # State Machine
//
// The model is either StateIdle or StateAwaiting. Exactly one query can be
// in flight; submissions during StateAwaiting are dropped, not queued.
// Every conversation mutation is persisted to the history store immediately.
//
// # Stale Results
//
// Each query carries the epoch it was dispatched under. Clearing the
// conversation bumps the epoch, so a result that arrives afterwards is
// recognized as stale and discarded instead of resurrecting into the
// cleared transcript.
package chat
