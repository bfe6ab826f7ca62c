// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/compass-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is a key/description pair shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom bar showing available shortcuts.
type StatusBar struct {
	Width     int
	shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates a status bar with the default shortcut set.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width: 80,
		shortcuts: []Shortcut{
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+s", Desc: "sources"},
			{Key: "ctrl+l", Desc: "clear"},
			{Key: "ctrl+c", Desc: "quit"},
		},
		theme: theme,
	}
}

// SetWidth updates the bar width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

// SetShortcuts replaces the shortcut set, for context-dependent hints.
func (b *StatusBar) SetShortcuts(shortcuts []Shortcut) {
	b.shortcuts = shortcuts
}

// View renders the status bar.
func (b *StatusBar) View() string {
	parts := make([]string, 0, len(b.shortcuts))
	for _, sc := range b.shortcuts {
		parts = append(parts,
			b.theme.ShortcutKey.Render(sc.Key)+" "+b.theme.ShortcutDesc.Render(sc.Desc))
	}

	bar := strings.Join(parts, "  ")
	if b.Width > 0 && lipgloss.Width(bar) > b.Width {
		bar = lipgloss.NewStyle().MaxWidth(b.Width).Render(bar)
	}
	return b.theme.StatusBar.Width(b.Width).Render(bar)
}
