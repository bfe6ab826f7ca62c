// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/phuslu/log"

	"github.com/morganforge/compass-tui/internal/backend"
	"github.com/morganforge/compass-tui/internal/citation"
	"github.com/morganforge/compass-tui/internal/model"
	"github.com/morganforge/compass-tui/internal/storage"
	"github.com/morganforge/compass-tui/internal/ui/components"
	"github.com/morganforge/compass-tui/internal/ui/styles"
)

// fallbackText is shown as the bot's answer whenever a query fails, whatever
// the cause. The real error goes to the log, not the transcript.
const fallbackText = "An error occurred while contacting the AI. Please ensure the backend is running."

// disclaimerText is rendered under the input on every frame.
const disclaimerText = "Disclaimer: This is an AI-powered tool, not a medical professional. Always consult a healthcare provider for any health concerns."

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateIdle     State = iota // Ready for input
	StateAwaiting              // A query is in flight
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
//
// It enforces a single in-flight query: submissions while StateAwaiting are
// ignored rather than queued, and every conversation mutation is persisted
// through the history store before the next frame renders.
type Model struct {
	// State
	state State

	// epoch identifies the current request generation. Clearing the
	// conversation bumps it, so late results from before the clear are
	// recognized and dropped.
	epoch int

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	conversation *model.Conversation
	store        *storage.HistoryStore

	// Backend
	client *backend.Client

	// UI Components
	viewport  viewport.Model
	input     textinput.Model
	spinner   components.Spinner
	header    *components.Header
	welcome   components.Welcome
	chips     components.SourceChips
	modal     components.SourceModal
	statusBar *components.StatusBar

	// Markdown rendering
	renderer *glamour.TermRenderer
	wordWrap int

	// Key bindings
	keyMap KeyMap
}

// New creates the chat model. The store may hold a previously persisted
// conversation; pass the loaded conversation in conv.
func New(theme *styles.Theme, conv *model.Conversation, store *storage.HistoryStore, client *backend.Client, wordWrap int) Model {
	if conv == nil {
		conv = model.NewConversation()
	}
	if wordWrap <= 0 {
		wordWrap = 80
	}

	input := textinput.New()
	input.Placeholder = "Ask a health question..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.PlaceholderStyle = theme.InputPlaceholder
	input.TextStyle = theme.InputText
	input.CharLimit = 2000
	input.Focus()

	vp := viewport.New(80, 20)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		log.Warn().Err(err).Msg("markdown renderer unavailable, falling back to plain text")
		renderer = nil
	}

	m := Model{
		state:        StateIdle,
		theme:        theme,
		conversation: conv,
		store:        store,
		client:       client,
		viewport:     vp,
		input:        input,
		spinner:      components.NewSpinner(theme),
		header:       components.NewHeader(theme),
		welcome:      components.NewWelcome(theme),
		chips:        components.NewSourceChips(theme),
		modal:        components.NewSourceModal(theme),
		statusBar:    components.NewStatusBar(theme),
		renderer:     renderer,
		wordWrap:     wordWrap,
		keyMap:       DefaultKeyMap(),
	}
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the readiness probe and cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		checkReadyCmd(m.client),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case QueryResultMsg:
		return m.handleQueryResult(msg)

	case BackendStatusMsg:
		return m.handleBackendStatus(msg)

	case ActivateSourceMsg:
		return m.handleActivateSource(msg)
	}

	// Spinner ticks and other component messages.
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.header.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)
	m.welcome.SetSize(msg.Width, msg.Height)
	m.modal.SetSize(msg.Width, msg.Height)

	// Header, input, disclaimer, and status bar take the rest.
	chrome := 8
	m.viewport.Width = msg.Width
	m.viewport.Height = msg.Height - chrome
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.input.Width = msg.Width - 6

	m.refreshViewport()
	return m, nil
}

func (m Model) handleQueryResult(msg QueryResultMsg) (tea.Model, tea.Cmd) {
	// A result from before the last clear refers to a conversation the
	// user no longer sees. Drop it.
	if msg.Epoch != m.epoch {
		log.Debug().Int("epoch", msg.Epoch).Int("current", m.epoch).Msg("dropping stale query result")
		return m, nil
	}

	m.state = StateIdle
	m.spinner.Stop()

	if msg.Err != nil {
		log.Warn().Err(msg.Err).Str("query", msg.Query).Msg("query failed")
		m.conversation.AddBotMessage(fallbackText, nil, msg.Query)
	} else {
		m.conversation.AddBotMessage(msg.Answer, msg.Sources, msg.Query)
	}

	m.persist()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleBackendStatus(msg BackendStatusMsg) (tea.Model, tea.Cmd) {
	if msg.Ready {
		m.header.SetBackendState(components.BackendReady)
	} else {
		m.header.SetBackendState(components.BackendDown)
		if msg.Err != nil {
			log.Warn().Err(msg.Err).Msg("backend readiness probe failed")
		}
	}
	return m, nil
}

func (m Model) handleActivateSource(msg ActivateSourceMsg) (tea.Model, tea.Cmd) {
	target := m.conversation.GetMessageByID(msg.MessageID)
	if target == nil {
		return m, nil
	}
	docs := citation.DocumentSources(target.Sources)
	m.modal.Open(docs, msg.Position)
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The modal captures all keys while open.
	if m.modal.IsOpen() {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Clear):
		return m.clearConversation()

	case key.Matches(msg, m.keyMap.Cycle):
		if m.conversation.IsEmpty() {
			m.welcome.CycleSelection()
			return m, nil
		}

	case key.Matches(msg, m.keyMap.Cancel):
		m.welcome.ClearSelection()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case msg.String() == "ctrl+s":
		return m.openSourceViewer()
	}

	// Everything else edits the input or scrolls the transcript.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleModalKey routes keys while the source viewer is open.
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	switch {
	case s == "esc" || s == "q":
		m.modal.Close()

	case key.Matches(msg, m.keyMap.Next):
		m.modal.Next()

	case key.Matches(msg, m.keyMap.Prev):
		m.modal.Prev()

	case s == "up":
		m.modal.ScrollUp()

	case s == "down":
		m.modal.ScrollDown()

	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		m.modal.JumpTo(int(s[0] - '0'))

	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

// handleSubmit submits either the selected example prompt or the typed
// question. Submissions while a query is in flight are dropped.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.state == StateAwaiting {
		return m, nil
	}

	// A highlighted example prompt wins over the input field and leaves
	// any typed draft untouched.
	query := ""
	if m.conversation.IsEmpty() && m.welcome.Selected() >= 0 {
		query = m.welcome.SelectedPrompt()
		m.welcome.ClearSelection()
	} else {
		query = strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil
		}
		m.input.Reset()
	}

	m.conversation.AddUserMessage(query)
	m.persist()
	m.refreshViewport()
	m.viewport.GotoBottom()

	m.state = StateAwaiting
	return m, tea.Batch(
		m.spinner.Start(),
		queryCmd(m.client, query, m.epoch),
	)
}

// clearConversation wipes the transcript and persists the empty snapshot.
// The epoch bump orphans any in-flight query result.
func (m Model) clearConversation() (tea.Model, tea.Cmd) {
	m.conversation.Clear()
	m.epoch++
	m.state = StateIdle
	m.spinner.Stop()
	m.persist()
	m.refreshViewport()
	return m, nil
}

// openSourceViewer opens the modal on the latest bot message's documents.
func (m Model) openSourceViewer() (tea.Model, tea.Cmd) {
	last := m.conversation.GetLastBotMessage()
	if last == nil {
		return m, nil
	}
	docs := citation.DocumentSources(last.Sources)
	m.modal.Open(docs, 0)
	return m, nil
}

// persist writes the conversation snapshot. Failures are logged, never
// surfaced into the transcript.
func (m *Model) persist() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.conversation); err != nil {
		log.Warn().Err(err).Msg("failed to persist conversation")
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// GetState returns the current chat state.
func (m *Model) GetState() State {
	return m.state
}

// GetConversation returns the underlying conversation.
func (m *Model) GetConversation() *model.Conversation {
	return m.conversation
}

// Epoch returns the current request generation.
func (m *Model) Epoch() int {
	return m.epoch
}

// ModalOpen reports whether the source viewer is showing.
func (m *Model) ModalOpen() bool {
	return m.modal.IsOpen()
}
