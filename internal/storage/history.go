// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation history persistence for the compass TUI.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/phuslu/log"

	"github.com/morganforge/compass-tui/internal/model"
	"github.com/morganforge/compass-tui/internal/util"
)

// DefaultFileName is the snapshot file name inside the config directory.
const DefaultFileName = "history.json"

// corruptSuffix is appended to an unreadable snapshot before it is replaced,
// so the bad bytes survive for inspection.
const corruptSuffix = ".corrupt"

// =============================================================================
// HISTORY STORE
// =============================================================================

// HistoryStore persists the conversation as a whole JSON snapshot.
//
// The store is written after every mutation, so the file always reflects the
// latest state and there is no incremental log to replay. Writes go through
// util.AtomicWriteFile; readers never observe a partial snapshot.
type HistoryStore struct {
	// Path is the snapshot file location.
	Path string
}

// NewHistoryStore creates a store at the default location ~/.compass/history.json.
func NewHistoryStore() (*HistoryStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, &HistoryError{Message: "could not determine home directory: " + err.Error()}
	}
	return NewHistoryStoreWithPath(filepath.Join(homeDir, ".compass", DefaultFileName)), nil
}

// NewHistoryStoreWithPath creates a store with a custom snapshot path.
func NewHistoryStoreWithPath(path string) *HistoryStore {
	return &HistoryStore{Path: path}
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load reads the persisted conversation snapshot.
//
// A missing file is not an error: a fresh empty conversation is returned. A
// snapshot that cannot be parsed is also not fatal - the bad file is moved
// aside with a ".corrupt" suffix, the failure is logged, and an empty
// conversation is returned so the application always starts.
func (s *HistoryStore) Load() (*model.Conversation, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewConversation(), nil
		}
		return nil, &HistoryError{Message: "failed to read history: " + err.Error()}
	}

	var conv model.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		s.quarantine(err)
		return model.NewConversation(), nil
	}
	if conv.Messages == nil {
		conv.Messages = make([]*model.Message, 0)
	}

	return &conv, nil
}

// quarantine moves an unreadable snapshot aside and logs the failure.
func (s *HistoryStore) quarantine(cause error) {
	corruptPath := s.Path + corruptSuffix
	if err := os.Rename(s.Path, corruptPath); err != nil {
		log.Warn().Err(err).Str("path", s.Path).Msg("failed to preserve corrupt history snapshot")
	} else {
		log.Warn().Err(cause).Str("path", s.Path).Str("preserved", corruptPath).
			Msg("history snapshot unreadable, starting with empty conversation")
	}
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save persists the full conversation snapshot.
// RELIABILITY: Atomic write with fsync prevents data loss on crash.
func (s *HistoryStore) Save(conv *model.Conversation) error {
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return &HistoryError{Message: "failed to encode history: " + err.Error()}
	}

	if err := util.AtomicWriteFile(s.Path, data, 0644); err != nil {
		return &HistoryError{Message: "failed to write history: " + err.Error()}
	}

	return nil
}

// Clear persists an empty conversation snapshot.
func (s *HistoryStore) Clear() error {
	return s.Save(model.NewConversation())
}

// =============================================================================
// ERRORS
// =============================================================================

// HistoryError represents a history persistence error.
// It implements the error interface and can be compared using errors.Is.
type HistoryError struct {
	Message string
}

// Error implements the error interface.
func (e *HistoryError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing history errors.
func (e *HistoryError) Is(target error) bool {
	t, ok := target.(*HistoryError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
