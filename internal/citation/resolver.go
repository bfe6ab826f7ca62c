// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package citation resolves inline citation markers in answer text against
// the retrieved source list of a message.
package citation

import (
	"regexp"
	"strconv"

	"github.com/morganforge/compass-tui/internal/model"
)

// markerPattern matches literal citation markers of the form "[Source N]".
// N is a 1-based position in the full source list of the message. Markers
// embedded in other text ("x[Source 1]y") still match; anything that is not
// byte-for-byte this shape does not.
var markerPattern = regexp.MustCompile(`\[Source ([0-9]+)\]`)

// =============================================================================
// SEGMENT TYPES
// =============================================================================

// Link is a resolved citation marker. Number is the 1-based marker number,
// Index the 0-based position in the full source list it refers to.
type Link struct {
	Number int
	Index  int
	Kind   model.SourceKind
	// URL is set for web citations only.
	URL string
}

// Segment is a run of output text. Link is nil for plain text; otherwise
// Text holds the marker's display text and Link carries the activation
// payload.
type Segment struct {
	Text string
	Link *Link
}

// IsLink reports whether the segment is a resolved citation.
func (s Segment) IsLink() bool {
	return s.Link != nil
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolve splits text into segments, turning every in-range "[Source N]"
// marker into a link segment bound to sources[N-1]. Out-of-range markers are
// left as literal text, so concatenating all segment texts of an unresolved
// marker reproduces the input exactly.
func Resolve(text string, sources []model.Source) []Segment {
	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0

	for _, m := range matches {
		start, end := m[0], m[1]
		number, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil || number < 1 || number > len(sources) {
			// No matching source: the marker stays literal text.
			continue
		}

		if start > last {
			segments = append(segments, Segment{Text: text[last:start]})
		}

		idx := number - 1
		src := sources[idx]
		link := &Link{
			Number: number,
			Index:  idx,
			Kind:   src.Kind(),
			URL:    src.URL(),
		}
		segments = append(segments, Segment{Text: text[start:end], Link: link})
		last = end
	}

	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	if len(segments) == 0 {
		return []Segment{{Text: text}}
	}
	return segments
}

// Links returns only the resolved citation links of a text, in order.
func Links(text string, sources []model.Source) []Link {
	var links []Link
	for _, seg := range Resolve(text, sources) {
		if seg.IsLink() {
			links = append(links, *seg.Link)
		}
	}
	return links
}
