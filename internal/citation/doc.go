// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package citation resolves inline citation markers against retrieved
// sources and projects source lists for display.
//
// The retrieval backend numbers citations into the FULL source list of a
// message: "[Source 3]" means the third retrieved source, whether web or
// document. The in-app source viewer, however, only shows document sources,
// and its chips are numbered within that subset. This package owns both
// numbering schemes:
//
//   - Resolve turns answer text into typed segments (plain text, web link,
//     document link) using full-list numbering.
//   - DocumentSources / DocumentPosition project the full list onto the
//     document-only subset used by chips and the viewer.
//   - DisplayName cleans raw document file names for presentation.
//
// All functions are pure; nothing here touches the UI or the network.
package citation
