package bravemcp

import "github.com/bravesearch/bravesearchd/internal/bravetypes"

func searchToolSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"query"},
		"properties": map[string]any{
			"query":       map[string]any{"type": "string", "description": "Search query."},
			"search_type": map[string]any{"type": "string", "enum": []any{"web", "news", "images", "videos"}},
			"result_filter": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Web-only section filters; supported values: web, discussions, videos, news, infobox",
			},
			"max_results":         map[string]any{"type": "integer", "minimum": 1, "maximum": 20},
			"offset":              map[string]any{"type": "integer", "minimum": 0},
			"country":             map[string]any{"type": "string"},
			"search_language":     map[string]any{"type": "string"},
			"ui_language":         map[string]any{"type": "string"},
			"safe_search":         map[string]any{"type": "string", "description": "off | moderate | strict"},
			"units":               map[string]any{"type": "string", "description": "metric | imperial"},
			"freshness":           map[string]any{"type": "string"},
			"spellcheck":          map[string]any{"type": "boolean"},
			"extra_snippets":      map[string]any{"type": "boolean"},
			"text_decorations":    map[string]any{"type": "boolean"},
			"max_lines":           map[string]any{"type": "integer", "minimum": 1},
			"max_bytes":           map[string]any{"type": "integer", "minimum": 1},
			"debug":               map[string]any{"type": "boolean"},
			"include_raw_payload": map[string]any{"type": "boolean"},
			"disable_cache":       map[string]any{"type": "boolean"},
			"disable_throttle":    map[string]any{"type": "boolean"},
			"include_request_url": map[string]any{"type": "boolean"},
		},
	}
}

func helpToolSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"topic": map[string]any{
				"type": "string",
				"enum": []any{"params", "examples", "limits", "errors", "all"},
			},
		},
	}
}

func statusToolSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"probe_connectivity": map[string]any{"type": "boolean", "default": false},
			"verbose":            map[string]any{"type": "boolean", "default": false},
			"include_limits":     map[string]any{"type": "boolean", "default": false},
		},
	}
}

// toolDescriptions maps each tool name to its MCP description, kept beside
// the schemas since both are registered together.
var toolDescriptions = map[string]string{
	bravetypes.ToolBraveWebSearch:       "Search Brave web/news/images/videos endpoints with structured JSON output and diagnostics",
	bravetypes.ToolBraveWebSearchHelp:   "Show parameter, limits, and error guidance for brave_web_search",
	bravetypes.ToolBraveWebSearchStatus: "Show server runtime status and optional Brave endpoint connectivity probes",
}
