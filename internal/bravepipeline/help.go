package bravepipeline

import (
	"fmt"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

const helpExamplesMarkdown = `### Examples

` + "```json" + `
{ "query": "TypeScript generics" }
` + "```" + `

` + "```json" + `
{ "query": "OpenAI", "search_type": "news", "max_results": 3 }
` + "```" + `

` + "```json" + `
{ "query": "Rust", "search_type": "images", "max_results": 5, "offset": 10 }
` + "```" + `

` + "```json" + `
{ "query": "site:github.com mcpkit", "result_filter": ["web", "discussions"] }
` + "```" + `

` + "```json" + `
{ "query": "Kubernetes", "country": "US", "search_language": "en", "ui_language": "en-US" }
` + "```" + `

` + "```json" + `
{ "query": "AI regulation", "freshness": "1w", "safe_search": "moderate" }
` + "```" + `

` + "```json" + `
{ "query": "websocket server", "debug": true, "include_request_url": true, "include_raw_payload": true }
` + "```" + `
`

func helpParameters() map[string]any {
	return map[string]any{
		"query":               "string (required)",
		"search_type":         []string{"web", "news", "images", "videos"},
		"result_filter":       []string{"web", "discussions", "videos", "news", "infobox"},
		"max_results":         "integer 1..20 per section (default 5; web multi-section queries may return more total results)",
		"offset":              "integer >= 0 (web/news/videos capped at 9; images capped at 50)",
		"country":             "country code (e.g. US, DE, ALL)",
		"search_language":     "language code (e.g. en, en-gb, de, pt-br)",
		"ui_language":         "UI language code (e.g. en-US, de-DE)",
		"safe_search":         []string{"off", "moderate", "strict"},
		"units":               []string{"metric", "imperial"},
		"freshness":           []string{"pd", "pw", "pm", "py", "1d", "1w", "1m", "1y"},
		"spellcheck":          "boolean",
		"extra_snippets":      "boolean (adaptive default enabled only when max_results <= 3)",
		"text_decorations":    "boolean (auto: true for news, false otherwise)",
		"max_lines":           "integer override with bounds",
		"max_bytes":           "integer override with bounds",
		"debug":               "boolean",
		"include_raw_payload": "boolean (requires debug=true)",
		"disable_cache":       "boolean (requires debug=true)",
		"disable_throttle":    "boolean (requires debug=true)",
		"include_request_url": "boolean (requires debug=true)",
	}
}

func helpErrors() map[string]any {
	return map[string]any{
		"INVALID_ARGUMENT": "Input schema/validation failure",
		"MISSING_API_KEY":  "Missing BRAVE_SEARCH_API_KEY or BRAVE_API_KEY",
		"CANCELLED":        "Tool request cancelled",
		"UPSTREAM_ERROR":   "Brave API/network error",
		"PARSE_ERROR":      "Unexpected provider payload shape",
		"INTERNAL_ERROR":   "Unexpected server failure",
	}
}

// Help answers brave_web_search_help, resolving an empty topic to "all".
func (s *Service) Help(topic *bravetypes.HelpTopic) bravetypes.HelpResponse {
	resolved := bravetypes.HelpTopicAll
	if topic != nil {
		resolved = *topic
	}

	limits := map[string]any{
		"default_max_lines": s.config.OutputLimits.DefaultMaxLines,
		"default_max_bytes": s.config.OutputLimits.DefaultMaxBytes,
		"min_max_lines":     s.config.OutputLimits.MinMaxLines,
		"min_max_bytes":     s.config.OutputLimits.MinMaxBytes,
		"max_max_lines":     s.config.OutputLimits.MaxMaxLines,
		"max_max_bytes":     s.config.OutputLimits.MaxMaxBytes,
		"cache_ttl_secs":    s.config.CacheTTLSecs,
		"throttle": map[string]any{
			"rate_per_sec": s.config.ThrottleRatePerSec,
			"burst":        s.config.ThrottleBurst,
		},
		"retry": map[string]any{
			"count":                  s.config.RetryCount,
			"base_delay_ms":          s.config.RetryBaseDelayMS,
			"max_delay_ms":           s.config.RetryMaxDelayMS,
			"per_attempt_timeout_ms": s.config.PerAttemptTimeoutMS,
		},
	}

	var parametersSection, limitsSection, errorsSection any
	switch resolved {
	case bravetypes.HelpTopicParams:
		parametersSection = helpParameters()
		limitsSection, errorsSection = map[string]any{}, map[string]any{}
	case bravetypes.HelpTopicLimits:
		parametersSection, errorsSection = map[string]any{}, map[string]any{}
		limitsSection = limits
	case bravetypes.HelpTopicErrors:
		parametersSection, limitsSection = map[string]any{}, map[string]any{}
		errorsSection = helpErrors()
	case bravetypes.HelpTopicExamples:
		parametersSection, limitsSection, errorsSection = map[string]any{}, map[string]any{}, map[string]any{}
	default:
		parametersSection = helpParameters()
		limitsSection = limits
		errorsSection = helpErrors()
	}

	return bravetypes.HelpResponse{
		APIVersion: bravetypes.APIVersion,
		Topic:      string(resolved),
		Summary:    fmt.Sprintf("%s supports Brave web/news/images/videos search with structured JSON output.", bravetypes.ToolBraveWebSearch),
		Sections: bravetypes.HelpSections{
			Parameters: parametersSection,
			Limits:     limitsSection,
			Errors:     errorsSection,
		},
		ExamplesMarkdown: helpExamplesMarkdown,
	}
}
