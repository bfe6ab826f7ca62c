// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/morganforge/compass-tui/internal/citation"
	"github.com/morganforge/compass-tui/internal/model"
)

// Markdown rendering word-wraps the answer, and a wrap point inside a
// citation marker would split it across lines and hide it from the
// resolver. Swapping the marker's space for a non-breaking space before
// rendering keeps the marker on one line; the plain space comes back
// before resolution.
var (
	markerGuardPattern   = regexp.MustCompile(`\[Source ([0-9]+)\]`)
	markerRestorePattern = regexp.MustCompile(`\[Source\x{00A0}([0-9]+)\]`)
)

// =============================================================================
// MAIN VIEW
// =============================================================================

// View renders the chat screen, or the source viewer while it is open.
func (m Model) View() string {
	if m.modal.IsOpen() {
		return m.modal.View()
	}

	sections := []string{
		m.header.View(),
		m.renderTranscript(),
	}

	if m.spinner.IsActive() {
		sections = append(sections, m.spinner.View())
	}

	sections = append(sections,
		m.theme.InputContainer.Render(m.input.View()),
		m.renderDisclaimer(),
		m.statusBar.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTranscript shows the welcome screen while the conversation is empty,
// the message viewport otherwise.
func (m Model) renderTranscript() string {
	if m.conversation.IsEmpty() {
		return m.welcome.View()
	}
	return m.viewport.View()
}

func (m Model) renderDisclaimer() string {
	width := m.width
	if width == 0 {
		width = 80
	}
	return m.theme.Disclaimer.Width(width).Render(disclaimerText)
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderMessages())
}

func (m *Model) renderMessages() string {
	msgs := m.conversation.Messages
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, m.renderMessage(msg))
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderMessage(msg *model.Message) string {
	name := m.theme.SenderName.Render(msg.Role.DisplayName())
	stamp := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	head := name + " " + stamp

	if msg.Role == model.RoleUser {
		body := m.theme.UserBubble.Render(msg.Text)
		return lipgloss.JoinVertical(lipgloss.Right, head, body)
	}

	body := m.theme.BotBubble.Render(m.renderBotText(msg.Text, msg.Sources))
	out := lipgloss.JoinVertical(lipgloss.Left, head, body)

	if msg.HasSources() {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.chips.View(msg.Sources, m.viewport.Width))
	}
	return out
}

// renderBotText renders the answer markdown and then styles the citation
// markers in the rendered output. Markers that point outside the retrieval
// list stay as plain text.
func (m *Model) renderBotText(text string, sources []model.Source) string {
	guarded := markerGuardPattern.ReplaceAllString(text, "[Source\u00a0$1]")

	rendered := guarded
	if m.renderer != nil {
		if out, err := m.renderer.Render(guarded); err == nil {
			rendered = strings.TrimRight(out, "\n")
		}
	}
	rendered = markerRestorePattern.ReplaceAllString(rendered, "[Source $1]")

	segments := citation.Resolve(rendered, sources)

	var b strings.Builder
	for _, seg := range segments {
		if !seg.IsLink() {
			b.WriteString(seg.Text)
			continue
		}
		styled := m.theme.Citation.Render(seg.Text)
		if seg.Link.Kind == model.KindWeb && seg.Link.URL != "" {
			styled = termenv.Hyperlink(seg.Link.URL, styled)
		}
		b.WriteString(styled)
	}
	return b.String()
}
