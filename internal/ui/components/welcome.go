// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/compass-tui/internal/ui/styles"
)

// ExamplePrompts are the starter questions shown on the welcome screen.
// Selecting one submits it as a query without touching the input field.
var ExamplePrompts = []string{
	"What are the symptoms of malaria?",
	"How can I improve my diet?",
}

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the empty-conversation welcome screen with selectable example
// prompts. It is only shown while the conversation has no messages.
type Welcome struct {
	// selected is the highlighted prompt index, or -1 when the prompt
	// cards are not focused.
	selected int

	// Dimensions
	width  int
	height int

	// Theme
	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		selected: -1,
		theme:    theme,
	}
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Selected returns the highlighted prompt index, or -1 when none is focused.
func (w Welcome) Selected() int {
	return w.selected
}

// SelectedPrompt returns the highlighted prompt text, or "" when none.
func (w Welcome) SelectedPrompt() string {
	if w.selected < 0 || w.selected >= len(ExamplePrompts) {
		return ""
	}
	return ExamplePrompts[w.selected]
}

// CycleSelection moves the highlight to the next prompt, wrapping around.
// The first call focuses the first prompt.
func (w *Welcome) CycleSelection() {
	w.selected = (w.selected + 1) % len(ExamplePrompts)
}

// ClearSelection removes the highlight, returning focus to the input field.
func (w *Welcome) ClearSelection() {
	w.selected = -1
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen.
// Responsive: adapts to terminal size, minimum 80x24 supported.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	boxWidth := 62
	if width < 70 {
		boxWidth = width - 8
	}
	if boxWidth < 40 {
		boxWidth = 40
	}

	logo := w.theme.WelcomeLogo.Render("Your Health Compass")
	info := w.theme.WelcomeInfo.Render("Ask a health question and get an answer with cited sources.")
	hint := w.theme.ShortcutDesc.Render("tab selects an example, enter submits")

	cards := make([]string, 0, len(ExamplePrompts))
	for i, prompt := range ExamplePrompts {
		style := w.theme.PromptCard
		if i == w.selected {
			style = w.theme.PromptCardSelected
		}
		cards = append(cards, style.Width(boxWidth-8).Render(prompt))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		logo,
		"",
		info,
		"",
		lipgloss.JoinVertical(lipgloss.Center, cards...),
		"",
		hint,
	)

	box := w.theme.WelcomeBox.Width(boxWidth).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
