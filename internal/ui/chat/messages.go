// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Query: Query results from the retrieval backend
//   - Backend: Readiness probe results
//   - Sources: Source viewer activation
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"github.com/morganforge/compass-tui/internal/model"
)

// =============================================================================
// QUERY MESSAGES
// =============================================================================

// QueryResultMsg delivers the outcome of a backend query.
//
// Epoch identifies the request generation that produced it. A result whose
// epoch no longer matches the chat model's current epoch is stale - the
// conversation was cleared while the request was in flight - and is dropped.
type QueryResultMsg struct {
	Epoch   int
	Query   string
	Answer  string
	Sources []model.Source
	Err     error
}

// NewQueryResult creates a successful query result.
func NewQueryResult(epoch int, query, answer string, sources []model.Source) QueryResultMsg {
	return QueryResultMsg{
		Epoch:   epoch,
		Query:   query,
		Answer:  answer,
		Sources: sources,
	}
}

// NewQueryError creates a failed query result.
func NewQueryError(epoch int, query string, err error) QueryResultMsg {
	return QueryResultMsg{
		Epoch: epoch,
		Query: query,
		Err:   err,
	}
}

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// BackendStatusMsg reports the result of a readiness probe.
type BackendStatusMsg struct {
	Ready bool
	Err   error
}

// =============================================================================
// SOURCE MESSAGES
// =============================================================================

// ActivateSourceMsg requests the source viewer to open at a document
// position within the given message's retrieval list.
type ActivateSourceMsg struct {
	MessageID string
	// Position is the zero-based index into the document subset.
	Position int
}
