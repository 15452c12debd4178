package bravetypes

// Provider and API identity.
const (
	APIVersion   = "v1"
	ProviderName = "brave"
)

// MCP tool names exposed on the stdio transport.
const (
	ToolBraveWebSearch       = "brave_web_search"
	ToolBraveWebSearchHelp   = "brave_web_search_help"
	ToolBraveWebSearchStatus = "brave_web_search_status"
)

// Result and query bounds.
const (
	DefaultSearchType = SearchTypeWeb
	DefaultResults    = 5
	MaxResults        = 20
	MaxExtraSnippets  = 2
	MaxQueryLength    = 2000

	MaxOffsetWebNewsVideos = 9
	MaxOffsetImages        = 50
)

// Output limit defaults and clamp bounds, in lines/bytes.
const (
	DefaultMinMaxLines = 20
	DefaultMinMaxBytes = 4 * 1024
	DefaultMaxMaxLines = 300
	DefaultMaxMaxBytes = 96 * 1024
	DefaultMaxLines    = 120
	DefaultMaxBytes    = 32 * 1024
)

// Cache and throttle defaults.
const (
	DefaultCacheTTLSecs       = 300
	DefaultThrottleRatePerSec = 2
	DefaultThrottleBurst      = 4
)

// Retry and transport defaults.
const (
	DefaultRetryCount           = 3
	DefaultRetryBaseDelayMS     = 250
	DefaultMaxRetryDelayMS      = 5_000
	DefaultPerAttemptTimeoutMS  = 15_000
	DefaultMaxResponseBytes     = 2_097_152
	DefaultRawPayloadCapBytes   = 64 * 1024
)

// Upstream endpoints.
const (
	BraveEndpointWeb    = "https://api.search.brave.com/res/v1/web/search"
	BraveEndpointNews   = "https://api.search.brave.com/res/v1/news/search"
	BraveEndpointImages = "https://api.search.brave.com/res/v1/images/search"
	BraveEndpointVideos = "https://api.search.brave.com/res/v1/videos/search"
)

// RetryableHTTPStatus lists upstream status codes worth a retry.
var RetryableHTTPStatus = map[int]bool{429: true, 500: true, 502: true, 503: true, 504: true}

// FreshnessShortcutOptions are the freshness values accepted verbatim
// without matching the NdU pattern.
var FreshnessShortcutOptions = []string{"pd", "pw", "pm", "py"}

// SafeSearchOptions, UnitOptions are closed enumerations for their params.
var (
	SafeSearchOptions = []string{"off", "moderate", "strict"}
	UnitOptions       = []string{"metric", "imperial"}
)

// SearchLanguageOptions is the closed set of accepted search_language values.
var SearchLanguageOptions = []string{
	"ar", "eu", "bn", "bg", "ca", "zh-hans", "zh-hant", "hr", "cs", "da", "en", "en-gb", "et",
	"fi", "fr", "gl", "de", "el", "gu", "he", "hi", "hu", "is", "it", "jp", "kn", "ko", "lv", "lt",
	"ms", "ml", "mr", "nb", "pl", "pt-br", "pt-pt", "pa", "ro", "ru", "sr", "sk", "sl", "es", "sv",
	"ta", "te", "th", "tr", "uk", "vi",
}

// UILanguageOptions is the closed set of accepted ui_language values.
var UILanguageOptions = []string{
	"es-AR", "en-AU", "de-AT", "nl-BE", "fr-BE", "pt-BR", "en-CA", "fr-CA", "es-CL", "da-DK",
	"fi-FI", "fr-FR", "de-DE", "el-GR", "zh-HK", "en-IN", "en-ID", "it-IT", "ja-JP", "ko-KR",
	"en-MY", "es-MX", "nl-NL", "en-NZ", "no-NO", "zh-CN", "pl-PL", "en-PH", "ru-RU", "en-ZA",
	"es-ES", "sv-SE", "fr-CH", "de-CH", "zh-TW", "tr-TR", "en-GB", "en-US", "es-US",
}

// CountryOptions is the closed set of accepted country values.
var CountryOptions = []string{
	"AR", "AU", "AT", "BE", "BR", "CA", "CL", "DK", "FI", "FR", "DE", "GR", "HK", "IN", "ID", "IT",
	"JP", "KR", "MY", "MX", "NL", "NZ", "NO", "CN", "PL", "PT", "PH", "RU", "SA", "ZA", "ES", "SE",
	"CH", "TW", "TR", "GB", "US", "ALL",
}

// Warning codes attached to otherwise-successful tool responses.
const (
	WarningQueryTruncated       = "QUERY_TRUNCATED"
	WarningInvalidSearchType    = "INVALID_SEARCH_TYPE"
	WarningInvalidResultFilter  = "INVALID_RESULT_FILTER"
	WarningResultFilterIgnored  = "RESULT_FILTER_IGNORED"
	WarningInvalidSearchLang    = "INVALID_SEARCH_LANGUAGE"
	WarningInvalidUILanguage    = "INVALID_UI_LANGUAGE"
	WarningInvalidCountry       = "INVALID_COUNTRY"
	WarningInvalidSafeSearch    = "INVALID_SAFE_SEARCH"
	WarningInvalidUnits         = "INVALID_UNITS"
	WarningInvalidFreshness     = "INVALID_FRESHNESS"
	WarningOffsetCapped         = "OFFSET_CAPPED"
	WarningDeduplicated         = "DEDUPLICATED"
	WarningNoRecognizedSections = "NO_RECOGNIZED_SECTIONS"
	WarningOutputTruncated      = "OUTPUT_TRUNCATED"
	WarningRawPayloadTruncated  = "RAW_PAYLOAD_TRUNCATED"
)

// Error codes returned in ToolErrorInfo.Code.
const (
	ErrorInvalidArgument = "INVALID_ARGUMENT"
	ErrorMissingAPIKey   = "MISSING_API_KEY"
	ErrorCancelled       = "CANCELLED"
	ErrorUpstream        = "UPSTREAM_ERROR"
	ErrorParse           = "PARSE_ERROR"
	ErrorInternal        = "INTERNAL_ERROR"
)

// Environment variable names, kept identical to the original implementation
// so operators migrating configuration need no changes.
const (
	EnvBraveSearchAPIKey = "BRAVE_SEARCH_API_KEY"
	EnvBraveAPIKey       = "BRAVE_API_KEY"

	EnvDefaultMaxLines    = "CODEX_BRAVE_DEFAULT_MAX_LINES"
	EnvDefaultMaxBytes    = "CODEX_BRAVE_DEFAULT_MAX_BYTES"
	EnvMinMaxLines        = "CODEX_BRAVE_MIN_MAX_LINES"
	EnvMinMaxBytes        = "CODEX_BRAVE_MIN_MAX_BYTES"
	EnvMaxMaxLines        = "CODEX_BRAVE_MAX_MAX_LINES"
	EnvMaxMaxBytes        = "CODEX_BRAVE_MAX_MAX_BYTES"
	EnvCacheTTLSecs       = "CODEX_BRAVE_CACHE_TTL_SECS"
	EnvThrottleRate       = "CODEX_BRAVE_THROTTLE_RATE_PER_SEC"
	EnvThrottleBurst      = "CODEX_BRAVE_THROTTLE_BURST"
	EnvRetryCount         = "CODEX_BRAVE_RETRY_COUNT"
	EnvRetryBaseDelayMS   = "CODEX_BRAVE_RETRY_BASE_DELAY_MS"
	EnvRetryMaxDelayMS    = "CODEX_BRAVE_RETRY_MAX_DELAY_MS"
	EnvPerAttemptTimeoutMS = "CODEX_BRAVE_PER_ATTEMPT_TIMEOUT_MS"
	EnvMaxResponseBytes   = "CODEX_BRAVE_MAX_RESPONSE_BYTES"
	EnvRawPayloadCapBytes = "CODEX_BRAVE_RAW_PAYLOAD_CAP_BYTES"
	EnvMaxQueryLength     = "CODEX_BRAVE_MAX_QUERY_LENGTH"
	EnvLog                = "CODEX_BRAVE_LOG"
	EnvEndpointWeb        = "CODEX_BRAVE_ENDPOINT_WEB"
	EnvEndpointNews       = "CODEX_BRAVE_ENDPOINT_NEWS"
	EnvEndpointImages     = "CODEX_BRAVE_ENDPOINT_IMAGES"
	EnvEndpointVideos     = "CODEX_BRAVE_ENDPOINT_VIDEOS"
)
