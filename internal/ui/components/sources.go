// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/morganforge/compass-tui/internal/citation"
	"github.com/morganforge/compass-tui/internal/model"
	"github.com/morganforge/compass-tui/internal/ui/styles"
	"github.com/morganforge/compass-tui/internal/util"
)

// maxChipLabel caps the display width of a single source chip.
const maxChipLabel = 40

// =============================================================================
// SOURCE CHIP ROW
// =============================================================================

// SourceChips renders the row of source chips under a bot message.
//
// Document sources are numbered by their position among document sources
// only, matching the numbering inside the source viewer. Web sources keep
// their position in the full retrieval list and render as hyperlinks in
// terminals that support OSC 8.
type SourceChips struct {
	theme     *styles.Theme
	hyperlink bool
}

// NewSourceChips creates a chip row renderer.
func NewSourceChips(theme *styles.Theme) SourceChips {
	return SourceChips{
		theme:     theme,
		hyperlink: true,
	}
}

// WithHyperlinks toggles OSC 8 hyperlink emission for web chips.
func (c SourceChips) WithHyperlinks(enabled bool) SourceChips {
	c.hyperlink = enabled
	return c
}

// View renders the chip row for the given retrieval list. Returns "" when
// there are no sources.
func (c SourceChips) View(sources []model.Source, width int) string {
	if len(sources) == 0 {
		return ""
	}

	chips := make([]string, 0, len(sources))
	for i, src := range sources {
		chips = append(chips, c.renderChip(sources, i, src))
	}

	row := strings.Join(chips, " ")
	if width > 0 && lipgloss.Width(row) > width {
		row = lipgloss.NewStyle().Width(width).Render(row)
	}
	return c.theme.SourceChipRow.Render(row)
}

// renderChip renders a single chip with its kind-appropriate numbering.
func (c SourceChips) renderChip(sources []model.Source, index int, src model.Source) string {
	if src.IsWeb() {
		label := strings.TrimSpace(src.Metadata.Title)
		if label == "" {
			label = fmt.Sprintf("Web Source %d", index+1)
		}
		label = util.TruncateWidth(label, maxChipLabel)

		chip := c.theme.WebChip.Render(label)
		if c.hyperlink && src.URL() != "" {
			chip = termenv.Hyperlink(src.URL(), chip)
		}
		return chip
	}

	// Document chips carry only their subset number. The cleaned file name
	// is reserved for the source viewer's header.
	pos := citation.DocumentPosition(sources, index)
	return c.theme.SourceChip.Render(fmt.Sprintf("Source %d", pos+1))
}
