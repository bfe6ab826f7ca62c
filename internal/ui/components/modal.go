// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/compass-tui/internal/citation"
	"github.com/morganforge/compass-tui/internal/model"
	"github.com/morganforge/compass-tui/internal/ui/styles"
)

// =============================================================================
// SOURCE VIEWER MODAL
// =============================================================================

// SourceModal is the overlay that shows the full text of document sources.
//
// It operates on the document subset of a message's retrieval list: web
// sources never appear here, and positions are numbered within the subset.
// Navigation wraps around in both directions.
type SourceModal struct {
	open     bool
	sources  []model.Source
	position int

	viewport viewport.Model
	width    int
	height   int

	theme *styles.Theme
}

// NewSourceModal creates a closed source viewer.
func NewSourceModal(theme *styles.Theme) SourceModal {
	vp := viewport.New(60, 14)
	return SourceModal{
		viewport: vp,
		theme:    theme,
	}
}

// IsOpen reports whether the modal is currently shown.
func (m SourceModal) IsOpen() bool {
	return m.open
}

// Position returns the zero-based index of the shown source within the
// document subset. Only meaningful while open.
func (m SourceModal) Position() int {
	return m.position
}

// Count returns the size of the document subset being viewed.
func (m SourceModal) Count() int {
	return len(m.sources)
}

// SetSize updates the modal dimensions.
func (m *SourceModal) SetSize(width, height int) {
	m.width = width
	m.height = height

	vpWidth := width - 12
	if vpWidth < 30 {
		vpWidth = 30
	}
	vpHeight := height - 10
	if vpHeight < 5 {
		vpHeight = 5
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
}

// Open shows the modal over the given document subset at position. Opening
// with an empty subset or an out-of-range position is a no-op.
func (m *SourceModal) Open(sources []model.Source, position int) {
	if len(sources) == 0 || position < 0 || position >= len(sources) {
		return
	}
	m.open = true
	m.sources = sources
	m.position = position
	m.refreshContent()
}

// Close hides the modal and forgets its subset.
func (m *SourceModal) Close() {
	m.open = false
	m.sources = nil
	m.position = 0
}

// Next advances to the next source, wrapping past the end.
func (m *SourceModal) Next() {
	if !m.open || len(m.sources) == 0 {
		return
	}
	m.position = (m.position + 1) % len(m.sources)
	m.refreshContent()
}

// Prev steps back to the previous source, wrapping past the start.
func (m *SourceModal) Prev() {
	if !m.open || len(m.sources) == 0 {
		return
	}
	m.position = (m.position - 1 + len(m.sources)) % len(m.sources)
	m.refreshContent()
}

// JumpTo moves directly to the 1-based position. Out-of-range jumps are
// ignored.
func (m *SourceModal) JumpTo(number int) {
	if !m.open || number < 1 || number > len(m.sources) {
		return
	}
	m.position = number - 1
	m.refreshContent()
}

// ScrollUp scrolls the source text up.
func (m *SourceModal) ScrollUp() {
	m.viewport.LineUp(3)
}

// ScrollDown scrolls the source text down.
func (m *SourceModal) ScrollDown() {
	m.viewport.LineDown(3)
}

// refreshContent loads the current source into the viewport.
func (m *SourceModal) refreshContent() {
	src := m.sources[m.position]
	m.viewport.SetContent(m.theme.ModalBody.Render(src.Content))
	m.viewport.GotoTop()
}

// View renders the modal. Returns "" while closed.
func (m SourceModal) View() string {
	if !m.open {
		return ""
	}

	src := m.sources[m.position]
	name := citation.DisplayName(src.Metadata.Source)
	if name == "" {
		name = "Source"
	}

	title := m.theme.ModalTitle.Render(name)
	counter := m.theme.ModalCounter.Render(fmt.Sprintf("(%d / %d)", m.position+1, len(m.sources)))
	hint := m.theme.ModalHint.Render("n/p navigate  1-9 jump  esc close")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title+" "+counter,
		"",
		m.viewport.View(),
		"",
		hint,
	)

	box := m.theme.ModalBox.Render(content)

	width := m.width
	if width == 0 {
		width = 80
	}
	height := m.height
	if height == 0 {
		height = 24
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
