// Package bravetypes holds the wire and domain types shared across the
// bravesearchd tool server: search enums, normalized requests, tool
// response envelopes, and the help/status payload shapes.
package bravetypes

// SearchType selects which Brave Search endpoint a request targets.
type SearchType string

const (
	SearchTypeWeb    SearchType = "web"
	SearchTypeNews   SearchType = "news"
	SearchTypeImages SearchType = "images"
	SearchTypeVideos SearchType = "videos"
)

// SearchTypes lists every recognized search type, in canonical order.
var SearchTypes = []SearchType{SearchTypeWeb, SearchTypeNews, SearchTypeImages, SearchTypeVideos}

// SearchTypeFromString returns the matching SearchType and true, or ("", false)
// if value (already lowercased/trimmed by the caller) is not recognized.
func SearchTypeFromString(value string) (SearchType, bool) {
	for _, candidate := range SearchTypes {
		if string(candidate) == value {
			return candidate, true
		}
	}
	return "", false
}

// SectionName identifies a Brave response section independent of how it was
// requested (web search_type can surface several sections at once).
type SectionName string

const (
	SectionWeb         SectionName = "web"
	SectionDiscussions SectionName = "discussions"
	SectionVideos      SectionName = "videos"
	SectionNews        SectionName = "news"
	SectionImages      SectionName = "images"
	SectionInfobox     SectionName = "infobox"
)

// ResultFilter is a web-only section filter value accepted in result_filter.
type ResultFilter string

const (
	FilterWeb         ResultFilter = "web"
	FilterDiscussions ResultFilter = "discussions"
	FilterVideos      ResultFilter = "videos"
	FilterNews        ResultFilter = "news"
	FilterInfobox     ResultFilter = "infobox"
)

// AllowedResultFilters lists every recognized result_filter value, in the
// order they should be considered when deduping/validating input.
var AllowedResultFilters = []ResultFilter{FilterWeb, FilterDiscussions, FilterVideos, FilterNews, FilterInfobox}

// ResultFilterFromString returns the matching ResultFilter and true, or
// ("", false) if value is not recognized.
func ResultFilterFromString(value string) (ResultFilter, bool) {
	for _, candidate := range AllowedResultFilters {
		if string(candidate) == value {
			return candidate, true
		}
	}
	return "", false
}

// Section maps a web result_filter value onto the section it
// selects; every filter has a 1:1 section counterpart.
func (f ResultFilter) Section() SectionName {
	switch f {
	case FilterWeb:
		return SectionWeb
	case FilterDiscussions:
		return SectionDiscussions
	case FilterVideos:
		return SectionVideos
	case FilterNews:
		return SectionNews
	case FilterInfobox:
		return SectionInfobox
	default:
		return SectionWeb
	}
}

// SectionSpec pairs a display label with the section it identifies.
type SectionSpec struct {
	Label string
	Name  SectionName
}

// SectionSpecsFor returns the sections a given search type can surface, in
// the order they should be rendered.
func SectionSpecsFor(searchType SearchType) []SectionSpec {
	switch searchType {
	case SearchTypeWeb:
		return []SectionSpec{
			{"Web results", SectionWeb},
			{"Discussions", SectionDiscussions},
			{"Videos", SectionVideos},
			{"News", SectionNews},
			{"Infobox", SectionInfobox},
		}
	case SearchTypeNews:
		return []SectionSpec{{"News", SectionNews}}
	case SearchTypeImages:
		return []SectionSpec{{"Images", SectionImages}}
	case SearchTypeVideos:
		return []SectionSpec{{"Videos", SectionVideos}}
	default:
		return nil
	}
}

// WarningEntry is a non-fatal, machine-readable note attached to a tool
// response: a normalization fallback, a capped limit, a dedup pass, etc.
type WarningEntry struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BraveWebSearchArgs is the raw, as-received argument set for brave_web_search.
// Every field is optional except Query; unknown fields are rejected by the
// MCP-facing decoder before a BraveWebSearchArgs is even constructed.
type BraveWebSearchArgs struct {
	Query              string   `json:"query"`
	SearchType         *string  `json:"search_type,omitempty"`
	ResultFilter       []string `json:"result_filter,omitempty"`
	MaxResults         *int     `json:"max_results,omitempty"`
	Offset             *int     `json:"offset,omitempty"`
	Country            *string  `json:"country,omitempty"`
	SearchLanguage     *string  `json:"search_language,omitempty"`
	UILanguage         *string  `json:"ui_language,omitempty"`
	SafeSearch         *string  `json:"safe_search,omitempty"`
	Units              *string  `json:"units,omitempty"`
	Freshness          *string  `json:"freshness,omitempty"`
	Spellcheck         *bool    `json:"spellcheck,omitempty"`
	ExtraSnippets      *bool    `json:"extra_snippets,omitempty"`
	TextDecorations    *bool    `json:"text_decorations,omitempty"`
	MaxLines           *int     `json:"max_lines,omitempty"`
	MaxBytes           *int     `json:"max_bytes,omitempty"`
	Debug              *bool    `json:"debug,omitempty"`
	IncludeRawPayload  *bool    `json:"include_raw_payload,omitempty"`
	DisableCache       *bool    `json:"disable_cache,omitempty"`
	DisableThrottle    *bool    `json:"disable_throttle,omitempty"`
	IncludeRequestURL  *bool    `json:"include_request_url,omitempty"`
}

// HelpTopic selects a slice of the brave_web_search_help response.
type HelpTopic string

const (
	HelpTopicParams   HelpTopic = "params"
	HelpTopicExamples HelpTopic = "examples"
	HelpTopicLimits   HelpTopic = "limits"
	HelpTopicErrors   HelpTopic = "errors"
	HelpTopicAll      HelpTopic = "all"
)

// HelpArgs is the raw argument set for brave_web_search_help.
type HelpArgs struct {
	Topic *string `json:"topic,omitempty"`
}

// StatusArgs is the raw argument set for brave_web_search_status.
type StatusArgs struct {
	ProbeConnectivity *bool `json:"probe_connectivity,omitempty"`
	Verbose           *bool `json:"verbose,omitempty"`
	IncludeLimits     *bool `json:"include_limits,omitempty"`
}

// NormalizedSearchRequest is the validated, defaulted form of
// BraveWebSearchArgs that the pipeline and client operate on.
type NormalizedSearchRequest struct {
	Query               string
	SearchType          SearchType
	ResultFilterValues  []ResultFilter
	Requested           int
	Offset              int
	Country             *string
	SearchLanguage      *string
	UILanguage          *string
	SafeSearch          *string
	Units               *string
	Freshness           *string
	Spellcheck          bool
	ExtraSnippets       bool
	TextDecorations     bool
	MaxLines            int
	MaxBytes            int
	Debug               bool
	IncludeRawPayload   bool
	DisableCache        bool
	DisableThrottle     bool
	IncludeRequestURL   bool
	Warnings            []WarningEntry
}

// ToolErrorEnvelope is the stable JSON shape returned for any failed tool
// call, regardless of which of the three tools was invoked.
type ToolErrorEnvelope struct {
	APIVersion string        `json:"api_version"`
	Error      ToolErrorInfo `json:"error"`
	Meta       ErrorMeta     `json:"meta"`
}

type ToolErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorMeta struct {
	Provider      string `json:"provider"`
	ServerVersion string `json:"server_version"`
	TraceID       string `json:"trace_id"`
}

// SearchResponse is the brave_web_search success payload.
type SearchResponse struct {
	APIVersion string          `json:"api_version"`
	Summary    string          `json:"summary"`
	Sections   []SearchSection `json:"sections"`
	Meta       SearchMeta      `json:"meta"`
	Warnings   []WarningEntry  `json:"warnings,omitempty"`
	DebugData  *DebugData      `json:"debug_data,omitempty"`
}

type SearchSection struct {
	Key                 SectionName       `json:"key"`
	Label               string            `json:"label"`
	Provider            string            `json:"provider"`
	Results             []SearchResultItem `json:"results"`
	SectionLimitReached bool              `json:"section_limit_reached"`
}

type SearchResultItem struct {
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Snippet        string   `json:"snippet"`
	ExtraSnippets  []string `json:"extra_snippets"`
	MetadataLines  []string `json:"metadata_lines,omitempty"`
	Source         *string  `json:"source,omitempty"`
	Age            *string  `json:"age,omitempty"`
	Published      *string  `json:"published,omitempty"`
	ItemType       *string  `json:"item_type,omitempty"`
	Subtype        *string  `json:"subtype,omitempty"`
	Duration       *string  `json:"duration,omitempty"`
	Creator        *string  `json:"creator,omitempty"`
	Location       *string  `json:"location,omitempty"`
	IsLive         *bool    `json:"is_live,omitempty"`
}

type SearchMeta struct {
	Query         string     `json:"query"`
	SearchType    SearchType `json:"search_type"`
	Requested     int        `json:"requested"`
	Returned      int        `json:"returned"`
	Offset        int        `json:"offset"`
	HasMore       bool       `json:"has_more"`
	Provider      string     `json:"provider"`
	DurationMS    int64      `json:"duration_ms"`
	WarningsCount int        `json:"warnings_count"`
	ServerVersion string     `json:"server_version"`
	TraceID       string     `json:"trace_id"`
}

// DebugData is only populated when the caller sets debug=true.
type DebugData struct {
	RequestURL                *string `json:"request_url,omitempty"`
	RawPayload                any     `json:"raw_payload,omitempty"`
	RawPayloadTruncated       bool    `json:"raw_payload_truncated"`
	RawPayloadOriginalBytes   *int    `json:"raw_payload_original_bytes,omitempty"`
	CacheBypassed             bool    `json:"cache_bypassed"`
	ThrottleBypassed          bool    `json:"throttle_bypassed"`
}

// HelpResponse is the brave_web_search_help payload.
type HelpResponse struct {
	APIVersion       string       `json:"api_version"`
	Topic            string       `json:"topic"`
	Summary          string       `json:"summary"`
	Sections         HelpSections `json:"sections"`
	ExamplesMarkdown string       `json:"examples_markdown"`
}

type HelpSections struct {
	Parameters any `json:"parameters"`
	Limits     any `json:"limits"`
	Errors     any `json:"errors"`
}

// StatusResponse is the brave_web_search_status payload.
type StatusResponse struct {
	APIVersion    string                 `json:"api_version"`
	Status        string                 `json:"status"`
	ServerVersion string                 `json:"server_version"`
	Provider      string                 `json:"provider"`
	KeyConfig     KeyConfigStatus        `json:"key_config"`
	Settings      RuntimeSettingsStatus  `json:"settings"`
	Probe         *ProbeStatus           `json:"probe,omitempty"`
}

type KeyConfigStatus struct {
	HasKey bool    `json:"has_key"`
	Source *string `json:"source,omitempty"`
}

type RuntimeSettingsStatus struct {
	CacheTTLSecs       uint64               `json:"cache_ttl_secs"`
	ThrottleRatePerSec uint32               `json:"throttle_rate_per_sec"`
	ThrottleBurst      uint32               `json:"throttle_burst"`
	RetryCount         int                  `json:"retry_count"`
	RetryBaseDelayMS   uint64               `json:"retry_base_delay_ms"`
	RetryMaxDelayMS    uint64               `json:"retry_max_delay_ms"`
	PerAttemptTimeoutMS uint64              `json:"per_attempt_timeout_ms"`
	Limits             *OutputLimitSettings `json:"limits,omitempty"`
}

type OutputLimitSettings struct {
	DefaultMaxLines int `json:"default_max_lines"`
	DefaultMaxBytes int `json:"default_max_bytes"`
	MinMaxLines     int `json:"min_max_lines"`
	MinMaxBytes     int `json:"min_max_bytes"`
	MaxMaxLines     int `json:"max_max_lines"`
	MaxMaxBytes     int `json:"max_max_bytes"`
}

type ProbeStatus struct {
	Query    string               `json:"query"`
	Degraded bool                 `json:"degraded"`
	Endpoints []EndpointProbeResult `json:"endpoints"`
}

type EndpointProbeResult struct {
	SearchType SearchType `json:"search_type"`
	Endpoint   string     `json:"endpoint"`
	OK         bool       `json:"ok"`
	Message    *string    `json:"message,omitempty"`
	DurationMS int64      `json:"duration_ms"`
}

// NormalizedResult is a single search result after parsing and text
// normalization, before it is rendered into a SearchResultItem.
type NormalizedResult struct {
	Title         string
	URL           string
	Snippet       string
	ExtraSnippets []string
	Source        *string
	Age           *string
	Published     *string
	ItemType      *string
	Subtype       *string
	Duration      *string
	Creator       *string
	Location      *string
	IsLive        bool
}

// ParsedSection is a section of NormalizedResult after dedup/limiting.
type ParsedSection struct {
	Key                 SectionName
	Label               string
	Provider            string
	Results             []NormalizedResult
	SectionLimitReached bool
}

// ParseSectionsResult is the outcome of parsing one Brave JSON payload.
type ParseSectionsResult struct {
	Sections []ParsedSection
	HasMore  bool
	Warnings []WarningEntry
}

// FetchSearchParams is the set of query parameters sent to Brave for a
// single search request.
type FetchSearchParams struct {
	Count              int
	Offset             int
	Country            *string
	SearchLanguage     *string
	UILanguage         *string
	SafeSearch         *string
	Freshness          *string
	ResultFilterValues []ResultFilter
	Units              *string
	Spellcheck         bool
	ExtraSnippets      bool
	TextDecorations    bool
}

// FetchSearchResult is the cacheable outcome of one Brave HTTP round trip.
type FetchSearchResult struct {
	Sections        []ParsedSection
	HasMore         bool
	Warnings        []WarningEntry
	QueryEcho       string
	RequestURL      string
	RawPayload      any
	RawPayloadBytes int
}
