// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and retrieved sources.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "Compass"
	default:
		return string(r)
	}
}

// =============================================================================
// SOURCE TYPE
// =============================================================================

// SourceKind distinguishes the two classes of retrieved evidence.
type SourceKind int

const (
	// KindDocument is a source drawn from the indexed document corpus.
	KindDocument SourceKind = iota
	// KindWeb is a source fetched from the open web; its Metadata.Source
	// field holds a URL.
	KindWeb
)

// SourceMetadata describes where a retrieved source came from.
type SourceMetadata struct {
	// Type is the raw type discriminator from the retrieval backend.
	// "web" marks a web source; anything else is a document source.
	Type string `json:"type"`
	// Source is a URL for web sources, or a file name for document sources.
	Source string `json:"source"`
	// Title is an optional human-readable title (web sources only).
	Title string `json:"title,omitempty"`
}

// Source is a single piece of retrieved evidence attached to a bot message.
type Source struct {
	Content  string         `json:"content"`
	Metadata SourceMetadata `json:"metadata"`
}

// Kind returns the projected kind of the source.
func (s Source) Kind() SourceKind {
	if s.Metadata.Type == "web" {
		return KindWeb
	}
	return KindDocument
}

// IsWeb reports whether the source is a web source.
func (s Source) IsWeb() bool {
	return s.Kind() == KindWeb
}

// URL returns the source URL for web sources, or "" for document sources.
func (s Source) URL() string {
	if s.IsWeb() {
		return s.Metadata.Source
	}
	return ""
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// The JSON field names mirror the persisted snapshot format: the role is
// stored under "sender" and the body under "text".
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Text string `json:"text"`

	// Sources holds the retrieved evidence for bot messages, in backend
	// order. Citation markers in Text index into this list (1-based).
	Sources []Source `json:"sources,omitempty"`

	// UserQuery is the question that produced this bot message.
	UserQuery string `json:"user_query,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, text string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string) *Message {
	return NewMessage(RoleUser, text)
}

// NewBotMessage creates a new bot message with its sources and the query
// that produced it.
func NewBotMessage(text string, sources []Source, userQuery string) *Message {
	msg := NewMessage(RoleBot, text)
	msg.Sources = sources
	msg.UserQuery = userQuery
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no text.
func (m *Message) IsEmpty() bool {
	return len(m.Text) == 0
}

// HasSources reports whether the message carries any retrieved sources.
func (m *Message) HasSources() bool {
	return len(m.Sources) > 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
