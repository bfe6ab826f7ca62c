// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the compass TUI.
//
// All colors are lipgloss.AdaptiveColor pairs so the UI works on both light
// and dark terminals without configuration. The Theme struct composes the
// palette into ready-to-use styles for every component: header, message
// bubbles, source chips, the source viewer modal, input area, and status bar.
//
// # Key Types
//
//   - Theme: All composed lipgloss styles, created once via NewTheme
//   - LayoutMode: Narrow/Normal/Wide responsive breakpoints
//   - StatusIndicatorSet: ASCII shape indicators for colorblind accessibility
//
// # Usage
//
//	theme := styles.NewTheme()
//	theme.SetSize(width, height)
//	header := theme.Header.Render("compass")
package styles
