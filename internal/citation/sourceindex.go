// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package citation

import (
	"github.com/morganforge/compass-tui/internal/model"
)

// =============================================================================
// DOCUMENT SUBSET PROJECTIONS
// =============================================================================

// DocumentSources returns the document (non-web) sources of a message in
// their original relative order. The result is a fresh slice; mutating it
// does not affect the input.
func DocumentSources(sources []model.Source) []model.Source {
	docs := make([]model.Source, 0, len(sources))
	for _, src := range sources {
		if !src.IsWeb() {
			docs = append(docs, src)
		}
	}
	return docs
}

// DocumentPosition maps a 0-based index in the full source list to the
// source's 0-based position in the document-only subset. Returns -1 when the
// index is out of range or refers to a web source.
//
// The position is computed from the index, not from value comparison, so two
// identical document sources in one list still map to distinct positions.
func DocumentPosition(sources []model.Source, index int) int {
	if index < 0 || index >= len(sources) {
		return -1
	}
	if sources[index].IsWeb() {
		return -1
	}
	pos := 0
	for i := 0; i < index; i++ {
		if !sources[i].IsWeb() {
			pos++
		}
	}
	return pos
}
