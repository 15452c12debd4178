package braveclient

import (
	"testing"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

func TestParseBraveErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		fallback string
		want     string
	}{
		{
			name:     "detail field",
			payload:  `{"error":{"detail":"rate limited"}}`,
			fallback: "fallback",
			want:     "rate limited",
		},
		{
			name:     "detail with meta error messages",
			payload:  `{"error":{"detail":"invalid query","meta":{"errors":[{"msg":"must not be empty"}]}}}`,
			fallback: "fallback",
			want:     "invalid query (must not be empty)",
		},
		{
			name:     "falls back to type field",
			payload:  `{"type":"ErrorResponse"}`,
			fallback: "fallback",
			want:     "ErrorResponse",
		},
		{
			name:     "malformed JSON falls back",
			payload:  `not json`,
			fallback: "fallback",
			want:     "fallback",
		},
		{
			name:     "empty object falls back",
			payload:  `{}`,
			fallback: "fallback",
			want:     "fallback",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseBraveErrorMessage(tt.payload, tt.fallback); got != tt.want {
				t.Errorf("ParseBraveErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSectionsWebDedupAndLimit(t *testing.T) {
	payload := map[string]any{
		"query": map[string]any{"original": "golang", "more_results_available": true},
		"web": map[string]any{
			"results": []any{
				map[string]any{"title": "Go", "url": "https://go.dev/"},
				map[string]any{"title": "Go duplicate", "url": "https://go.dev"},
				map[string]any{"title": "Go Blog", "url": "https://go.dev/blog"},
			},
		},
	}

	result := ParseSections(payload, bravetypes.SearchTypeWeb, nil, 1, false)
	if len(result.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(result.Sections))
	}
	section := result.Sections[0]
	if len(section.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1 (limited to requested)", len(section.Results))
	}
	if section.Results[0].Title != "Go" {
		t.Errorf("Results[0].Title = %q, want Go", section.Results[0].Title)
	}

	var sawDedup bool
	for _, w := range result.Warnings {
		if w.Code == bravetypes.WarningDeduplicated {
			sawDedup = true
		}
	}
	if !sawDedup {
		t.Error("expected a deduplication warning")
	}
	if !result.HasMore {
		t.Error("expected HasMore=true: section limit reached and more_results_available")
	}
}

func TestParseSectionsNoRecognizedSections(t *testing.T) {
	payload := map[string]any{
		"query": map[string]any{"original": "golang"},
		"web":   map[string]any{"results": []any{}},
	}
	result := ParseSections(payload, bravetypes.SearchTypeWeb, nil, 5, false)
	if len(result.Sections) != 1 || len(result.Sections[0].Results) != 0 {
		t.Fatalf("expected one empty web section, got %+v", result.Sections)
	}
	found := false
	for _, w := range result.Warnings {
		if w.Code == bravetypes.WarningNoRecognizedSections {
			found = true
		}
	}
	if !found {
		t.Error("expected NO_RECOGNIZED_SECTIONS warning when no section produced results")
	}
	if result.HasMore {
		t.Error("HasMore should be false with no results")
	}
}

func TestParseSectionsVideosTypeFallbackShape(t *testing.T) {
	payload := map[string]any{
		"type": "videos",
		"results": []any{
			map[string]any{
				"title": "A talk",
				"url":   "https://example.com/video",
				"video": map[string]any{"duration": "10:00", "creator": "Gopher"},
			},
		},
	}
	result := ParseSections(payload, bravetypes.SearchTypeVideos, nil, 5, false)
	if len(result.Sections) != 1 || len(result.Sections[0].Results) != 1 {
		t.Fatalf("expected one video result, got %+v", result.Sections)
	}
	got := result.Sections[0].Results[0]
	if got.Duration == nil || *got.Duration != "10:00" {
		t.Errorf("Duration = %v, want 10:00", got.Duration)
	}
	if got.Creator == nil || *got.Creator != "Gopher" {
		t.Errorf("Creator = %v, want Gopher", got.Creator)
	}
}

func TestParseSectionsResultFilterMultipleSections(t *testing.T) {
	payload := map[string]any{
		"query": map[string]any{"original": "golang"},
		"web": map[string]any{
			"results": []any{map[string]any{"title": "Go", "url": "https://go.dev"}},
		},
		"news": map[string]any{
			"results": []any{map[string]any{"title": "Go news", "url": "https://news.example.com"}},
		},
	}
	result := ParseSections(payload, bravetypes.SearchTypeWeb, []bravetypes.ResultFilter{bravetypes.FilterWeb, bravetypes.FilterNews}, 5, false)
	if len(result.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(result.Sections))
	}
}

func TestQueryEchoOrOriginal(t *testing.T) {
	payload := map[string]any{"query": map[string]any{"original": "hello world"}}
	if got := QueryEchoOrOriginal(payload, "fallback"); got != "hello world" {
		t.Errorf("got %q, want hello world", got)
	}
	if got := QueryEchoOrOriginal(map[string]any{}, "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}
