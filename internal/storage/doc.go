// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation history persistence for the compass TUI.
//
// The whole conversation is written as one JSON snapshot after every
// mutation, mirroring the message log the UI renders. There is no partial
// or incremental persistence.
//
// # Key Types
//
//   - HistoryStore: loads and saves the conversation snapshot
//   - HistoryError: typed persistence error with errors.Is support
//
// # Usage
//
//	store, err := storage.NewHistoryStore()
//	conv, err := store.Load()  // empty conversation if missing or corrupt
//	err = store.Save(conv)     // atomic whole-snapshot write
//
// # Storage Location
//
// The snapshot lives at ~/.compass/history.json. An unreadable snapshot is
// preserved as history.json.corrupt and replaced with an empty one on the
// next save.
package storage
