// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend implements the HTTP client for the retrieval backend.
//
// The backend exposes two endpoints: POST /query, which takes a question and
// returns a generated answer plus the sources retrieved for it, and GET /,
// which serves as a readiness probe.
//
// # Key Types
//
//   - Client: backend API client with retry and rate limiting
//   - QueryResponse: answer text plus retrieved sources in retrieval order
//   - BackendError: typed error carrying the HTTP status
//
// # Usage
//
//	client := backend.NewClient(cfg.Backend.URL).WithTopK(cfg.Backend.TopK)
//	resp, err := client.Query(ctx, "What are the symptoms of malaria?")
//
// Transient failures (connection refused, 5xx) are retried with exponential
// backoff; 4xx responses are returned immediately as *BackendError.
package backend
