// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package citation

import (
	"strings"
	"testing"

	"github.com/morganforge/compass-tui/internal/model"
)

func webSource(url string) model.Source {
	return model.Source{Metadata: model.SourceMetadata{Type: "web", Source: url}}
}

func docSource(name string) model.Source {
	return model.Source{Metadata: model.SourceMetadata{Type: "document", Source: name}}
}

// joined reassembles the segment texts into one string.
func joined(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// =============================================================================
// RESOLVE TESTS
// =============================================================================

func TestResolve_NoMarkers(t *testing.T) {
	segments := Resolve("plain answer text", nil)
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].IsLink() {
		t.Error("plain text should not be a link")
	}
	if segments[0].Text != "plain answer text" {
		t.Errorf("Text = %q", segments[0].Text)
	}
}

func TestResolve_WebAndDocumentMarkers(t *testing.T) {
	sources := []model.Source{
		webSource("https://who.int/malaria"),
		docSource("WHO_Fact_Sheet_Malaria.pdf"),
	}
	text := "Fever is common [Source 1] and treatable [Source 2]."

	segments := Resolve(text, sources)

	var links []Link
	for _, seg := range segments {
		if seg.IsLink() {
			links = append(links, *seg.Link)
		}
	}
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}

	if links[0].Kind != model.KindWeb {
		t.Error("first link should be web")
	}
	if links[0].URL != "https://who.int/malaria" {
		t.Errorf("first link URL = %q", links[0].URL)
	}
	if links[0].Number != 1 || links[0].Index != 0 {
		t.Errorf("first link Number/Index = %d/%d, want 1/0", links[0].Number, links[0].Index)
	}

	if links[1].Kind != model.KindDocument {
		t.Error("second link should be document")
	}
	if links[1].URL != "" {
		t.Errorf("document link URL = %q, want empty", links[1].URL)
	}
	if links[1].Index != 1 {
		t.Errorf("second link Index = %d, want 1", links[1].Index)
	}

	// Marker display text keeps the literal marker shape.
	for _, seg := range segments {
		if seg.IsLink() && !strings.HasPrefix(seg.Text, "[Source ") {
			t.Errorf("link segment text = %q, want [Source N]", seg.Text)
		}
	}

	if joined(segments) != text {
		t.Errorf("segments do not reassemble input: %q", joined(segments))
	}
}

func TestResolve_OutOfRangeStaysLiteral(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		sources []model.Source
	}{
		{
			name:    "index beyond list",
			text:    "see [Source 5] here",
			sources: []model.Source{docSource("a.pdf")},
		},
		{
			name:    "zero index",
			text:    "see [Source 0] here",
			sources: []model.Source{docSource("a.pdf")},
		},
		{
			name:    "empty source list",
			text:    "see [Source 1] here",
			sources: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			segments := Resolve(tc.text, tc.sources)
			for _, seg := range segments {
				if seg.IsLink() {
					t.Errorf("out-of-range marker resolved to link: %+v", seg.Link)
				}
			}
			if joined(segments) != tc.text {
				t.Errorf("literal text not preserved: %q", joined(segments))
			}
		})
	}
}

func TestResolve_MalformedMarkersIgnored(t *testing.T) {
	sources := []model.Source{docSource("a.pdf")}
	for _, text := range []string{
		"[source 1]",
		"[Source one]",
		"[Source1]",
		"Source 1",
	} {
		segments := Resolve(text, sources)
		for _, seg := range segments {
			if seg.IsLink() {
				t.Errorf("%q should not resolve", text)
			}
		}
	}
}

func TestResolve_AdjacentAndEmbeddedMarkers(t *testing.T) {
	sources := []model.Source{docSource("a.pdf"), docSource("b.pdf")}

	segments := Resolve("[Source 1][Source 2]", sources)
	linkCount := 0
	for _, seg := range segments {
		if seg.IsLink() {
			linkCount++
		}
	}
	if linkCount != 2 {
		t.Errorf("adjacent markers: got %d links, want 2", linkCount)
	}

	// Marker embedded mid-word still resolves; surrounding text survives.
	segments = Resolve("x[Source 1]y", sources)
	if joined(segments) != "x[Source 1]y" {
		t.Errorf("embedded marker reassembly = %q", joined(segments))
	}
	if len(segments) != 3 || !segments[1].IsLink() {
		t.Errorf("embedded marker segments = %+v", segments)
	}
}

func TestResolve_RepeatedMarkerResolvesEachTime(t *testing.T) {
	sources := []model.Source{webSource("https://x")}
	links := Links("[Source 1] and again [Source 1]", sources)
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if links[0].Index != 0 || links[1].Index != 0 {
		t.Error("both occurrences should bind to source 0")
	}
}

// =============================================================================
// DOCUMENT SUBSET TESTS
// =============================================================================

func TestDocumentSources_OrderPreserved(t *testing.T) {
	sources := []model.Source{
		webSource("https://a"),
		docSource("first.pdf"),
		webSource("https://b"),
		docSource("second.pdf"),
		docSource("third.pdf"),
	}

	docs := DocumentSources(sources)
	if len(docs) != 3 {
		t.Fatalf("got %d docs, want 3", len(docs))
	}
	wantNames := []string{"first.pdf", "second.pdf", "third.pdf"}
	for i, want := range wantNames {
		if docs[i].Metadata.Source != want {
			t.Errorf("docs[%d] = %q, want %q", i, docs[i].Metadata.Source, want)
		}
	}
}

func TestDocumentSources_Empty(t *testing.T) {
	if got := DocumentSources(nil); len(got) != 0 {
		t.Errorf("nil input: got %d docs", len(got))
	}
	onlyWeb := []model.Source{webSource("https://a"), webSource("https://b")}
	if got := DocumentSources(onlyWeb); len(got) != 0 {
		t.Errorf("web-only input: got %d docs", len(got))
	}
}

func TestDocumentPosition(t *testing.T) {
	sources := []model.Source{
		webSource("https://a"), // 0
		docSource("x.pdf"),     // 1 -> doc 0
		webSource("https://b"), // 2
		docSource("y.pdf"),     // 3 -> doc 1
	}

	tests := []struct {
		name  string
		index int
		want  int
	}{
		{"first document", 1, 0},
		{"second document", 3, 1},
		{"web source", 0, -1},
		{"another web source", 2, -1},
		{"negative index", -1, -1},
		{"index past end", 4, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DocumentPosition(sources, tc.index); got != tc.want {
				t.Errorf("DocumentPosition(%d) = %d, want %d", tc.index, got, tc.want)
			}
		})
	}
}

func TestDocumentPosition_DuplicateSources(t *testing.T) {
	// Two byte-identical document sources must map to distinct positions.
	dup := docSource("same.pdf")
	sources := []model.Source{dup, dup}

	if got := DocumentPosition(sources, 0); got != 0 {
		t.Errorf("first duplicate position = %d, want 0", got)
	}
	if got := DocumentPosition(sources, 1); got != 1 {
		t.Errorf("second duplicate position = %d, want 1", got)
	}
}

// =============================================================================
// DISPLAY NAME TESTS
// =============================================================================

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"fact sheet", "WHO_Fact_Sheet_Malaria.pdf", "Malaria"},
		{"underscores", "healthy_diet_guide.pdf", "healthy diet guide"},
		{"url escaped", "Healthy%20Diet.pdf", "Healthy Diet"},
		{"case insensitive suffix", "Anemia.PDF", "Anemia"},
		{"case insensitive prefix", "who_fact_sheet_Dengue.pdf", "Dengue"},
		{"no transforms needed", "notes", "notes"},
		{"whitespace trimmed", "_Malaria_.pdf", "Malaria"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayName(tc.raw); got != tc.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
