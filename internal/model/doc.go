// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and retrieved sources.
//
// This package defines the core domain types used throughout the application
// for representing chat conversations, messages, and the evidence sources
// that the retrieval backend attaches to each answer.
//
// # Key Types
//
//   - Conversation: Append-only container for a chat session's message log
//   - Message: Single message with role, text, timestamp, and optional sources
//   - Source: A retrieved piece of evidence with its metadata
//   - SourceKind: Projection of a source into document vs web
//   - Role: Message role enumeration (user, bot)
//
// # Usage
//
// Create a new conversation:
//
//	conv := model.NewConversation()
//	conv.AddUserMessage("What are the symptoms of malaria?")
//	conv.AddBotMessage(answer, sources, query)
//
// Classify a source:
//
//	if src.IsWeb() {
//	    openURL(src.URL())
//	}
package model
