// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the compass TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/compass-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with backend readiness indicator
// =============================================================================

// BackendState represents the last known readiness of the retrieval backend.
type BackendState int

const (
	// BackendUnknown means no readiness probe has completed yet.
	BackendUnknown BackendState = iota
	// BackendReady means the last probe answered 2xx.
	BackendReady
	// BackendDown means the last probe failed.
	BackendDown
)

// String returns the display string for the backend state.
func (s BackendState) String() string {
	switch s {
	case BackendReady:
		return "READY"
	case BackendDown:
		return "OFFLINE"
	default:
		return "..."
	}
}

// Header is the title bar component.
type Header struct {
	Title    string
	Subtitle string
	Width    int
	State    BackendState
	theme    *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:    "compass",
		Subtitle: "Your Health Compass",
		Width:    80,
		State:    BackendUnknown,
		theme:    theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetBackendState updates the readiness indicator.
func (h *Header) SetBackendState(state BackendState) {
	h.State = state
}

// View renders the header component.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	title := h.theme.HeaderTitle.Render(h.Title)
	subtitle := h.theme.HeaderSubtitle.Render(h.Subtitle)

	var status string
	switch h.State {
	case BackendReady:
		status = h.theme.BackendReady.Render(h.State.String())
	case BackendDown:
		status = h.theme.BackendDown.Render(h.State.String())
	default:
		status = h.theme.HeaderSubtitle.Render(h.State.String())
	}

	left := title + " " + subtitle
	right := status

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	bar := left + strings.Repeat(" ", gap) + right
	return h.theme.Header.Width(width - 2).Render(bar)
}
