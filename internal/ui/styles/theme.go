// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds every composed style the compass UI renders with, configured
// once at startup from the detected terminal capabilities.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	BackendReady   lipgloss.Style
	BackendDown    lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	SenderName lipgloss.Style
	Timestamp  lipgloss.Style

	// ==========================================================================
	// CITATION AND SOURCE STYLES
	// ==========================================================================

	Citation       lipgloss.Style
	SourceChip     lipgloss.Style
	WebChip        lipgloss.Style
	SourceChipRow  lipgloss.Style

	// ==========================================================================
	// SOURCE VIEWER STYLES
	// ==========================================================================

	ModalBox     lipgloss.Style
	ModalTitle   lipgloss.Style
	ModalCounter lipgloss.Style
	ModalBody    lipgloss.Style
	ModalHint    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// WELCOME SCREEN STYLES
	// ==========================================================================

	WelcomeBox          lipgloss.Style
	WelcomeLogo         lipgloss.Style
	WelcomeInfo         lipgloss.Style
	PromptCard          lipgloss.Style
	PromptCardSelected  lipgloss.Style

	// ==========================================================================
	// DISCLAIMER AND ERROR STYLES
	// ==========================================================================

	Disclaimer   lipgloss.Style
	ErrorMessage lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.BackendReady = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.BackendDown = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SenderName = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Citations and source chips
	t.Citation = lipgloss.NewStyle().
		Foreground(CitationFg).
		Bold(true)

	t.SourceChip = lipgloss.NewStyle().
		Foreground(SourceChipFg).
		Background(SourceChipBg).
		Padding(0, 1)

	t.WebChip = lipgloss.NewStyle().
		Foreground(WebChipFg).
		Background(WebChipBg).
		Underline(true).
		Padding(0, 1)

	t.SourceChipRow = lipgloss.NewStyle().
		MarginTop(1)

	// Source viewer modal
	t.ModalBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Padding(1, 2)

	t.ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.ModalCounter = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ModalBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ModalHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Teal)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Welcome screen
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.WelcomeLogo = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.PromptCard = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.PromptCardSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Bold(true).
		Padding(0, 2)

	// Disclaimer and errors
	t.Disclaimer = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(Rose)
}

// =============================================================================
// RESPONSIVE LAYOUT
// =============================================================================

// LayoutMode describes how much horizontal room the UI has.
type LayoutMode int

const (
	// LayoutNarrow is for terminals under 60 columns.
	LayoutNarrow LayoutMode = iota
	// LayoutNormal is the standard layout.
	LayoutNormal
	// LayoutWide is for terminals of 120 columns or more.
	LayoutWide
)

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the layout mode for the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 60:
		return LayoutNarrow
	case t.Width >= 120:
		return LayoutWide
	default:
		return LayoutNormal
	}
}
