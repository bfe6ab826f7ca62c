// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/compass-tui/internal/backend"
)

// =============================================================================
// ASYNC COMMANDS
// =============================================================================

// queryCmd sends the question to the backend off the UI goroutine. The epoch
// is captured at dispatch time so a stale result can be recognized later.
func queryCmd(client *backend.Client, query string, epoch int) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Query(context.Background(), query)
		if err != nil {
			return NewQueryError(epoch, query, err)
		}
		return NewQueryResult(epoch, query, resp.Answer, resp.Sources)
	}
}

// checkReadyCmd probes the backend root endpoint.
func checkReadyCmd(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		if err := client.CheckReady(context.Background()); err != nil {
			return BackendStatusMsg{Ready: false, Err: err}
		}
		return BackendStatusMsg{Ready: true}
	}
}
