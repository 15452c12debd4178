// Package braveconf resolves bravesearchd's runtime configuration: an
// optional local YAML settings file, then environment variables (which
// always win), falling back to built-in defaults. It also resolves the
// Brave API key and owns the process log file.
package braveconf

import (
	"os"
	"strconv"
	"strings"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

// Endpoints holds the four Brave Search endpoint URLs, each independently
// overridable via environment variable or settings file.
type Endpoints struct {
	Web    string
	News   string
	Images string
	Videos string
}

// EndpointFor returns the configured endpoint URL for searchType.
func (e Endpoints) EndpointFor(searchType bravetypes.SearchType) string {
	switch searchType {
	case bravetypes.SearchTypeNews:
		return e.News
	case bravetypes.SearchTypeImages:
		return e.Images
	case bravetypes.SearchTypeVideos:
		return e.Videos
	default:
		return e.Web
	}
}

// RuntimeConfig is every tunable that affects pipeline behavior: output
// limits, cache/throttle/retry settings, and endpoint overrides.
type RuntimeConfig struct {
	OutputLimits bravetypes.OutputLimitSettings

	CacheTTLSecs        uint64
	ThrottleRatePerSec  uint32
	ThrottleBurst       uint32
	RetryCount          int
	RetryBaseDelayMS    uint64
	RetryMaxDelayMS     uint64
	PerAttemptTimeoutMS uint64
	MaxResponseBytes    int
	RawPayloadCapBytes  int
	MaxQueryLength      int

	Endpoints Endpoints
	LogFilter string
}

// ClampOutputLimits resolves a request's requested max_lines/max_bytes
// against this config's defaults and min/max bounds.
func (c RuntimeConfig) ClampOutputLimits(maxLines, maxBytes *int) (lines, bytes int) {
	l := c.OutputLimits.DefaultMaxLines
	if maxLines != nil {
		l = *maxLines
	}
	b := c.OutputLimits.DefaultMaxBytes
	if maxBytes != nil {
		b = *maxBytes
	}
	return clampInt(l, c.OutputLimits.MinMaxLines, c.OutputLimits.MaxMaxLines),
		clampInt(b, c.OutputLimits.MinMaxBytes, c.OutputLimits.MaxMaxBytes)
}

func clampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// APIKeyConfig records the resolved Brave API key and which environment
// variable it came from, for the status tool's key_config.source field.
type APIKeyConfig struct {
	Key    string
	Source string
}

// HasKey reports whether an API key was found.
func (k APIKeyConfig) HasKey() bool { return k.Key != "" }

// LoadAPIKeyFromEnv resolves the Brave API key, preferring
// BRAVE_SEARCH_API_KEY over the legacy BRAVE_API_KEY.
func LoadAPIKeyFromEnv() APIKeyConfig {
	if value := strings.TrimSpace(os.Getenv(bravetypes.EnvBraveSearchAPIKey)); value != "" {
		return APIKeyConfig{Key: value, Source: bravetypes.EnvBraveSearchAPIKey}
	}
	if value := strings.TrimSpace(os.Getenv(bravetypes.EnvBraveAPIKey)); value != "" {
		return APIKeyConfig{Key: value, Source: bravetypes.EnvBraveAPIKey}
	}
	return APIKeyConfig{}
}

// Overrides is the shape of the optional local YAML settings file. Every
// field is a pointer so an absent key leaves the corresponding default (or
// environment variable) untouched. The API key is never read from here.
type Overrides struct {
	DefaultMaxLines     *int    `yaml:"default_max_lines"`
	DefaultMaxBytes     *int    `yaml:"default_max_bytes"`
	MinMaxLines         *int    `yaml:"min_max_lines"`
	MinMaxBytes         *int    `yaml:"min_max_bytes"`
	MaxMaxLines         *int    `yaml:"max_max_lines"`
	MaxMaxBytes         *int    `yaml:"max_max_bytes"`
	CacheTTLSecs        *uint64 `yaml:"cache_ttl_secs"`
	ThrottleRatePerSec  *uint32 `yaml:"throttle_rate_per_sec"`
	ThrottleBurst       *uint32 `yaml:"throttle_burst"`
	RetryCount          *int    `yaml:"retry_count"`
	RetryBaseDelayMS    *uint64 `yaml:"retry_base_delay_ms"`
	RetryMaxDelayMS     *uint64 `yaml:"retry_max_delay_ms"`
	PerAttemptTimeoutMS *uint64 `yaml:"per_attempt_timeout_ms"`
	MaxResponseBytes    *int    `yaml:"max_response_bytes"`
	RawPayloadCapBytes  *int    `yaml:"raw_payload_cap_bytes"`
	MaxQueryLength      *int    `yaml:"max_query_length"`
	EndpointWeb         *string `yaml:"endpoint_web"`
	EndpointNews        *string `yaml:"endpoint_news"`
	EndpointImages      *string `yaml:"endpoint_images"`
	EndpointVideos      *string `yaml:"endpoint_videos"`
}

// Load resolves RuntimeConfig from an optional settings file overlaid with
// environment variables (env always wins), then built-in defaults. Returns
// any non-fatal warning about a malformed settings file.
func Load() (RuntimeConfig, []bravetypes.WarningEntry) {
	var warnings []bravetypes.WarningEntry

	overrides, err := loadOverridesFile()
	if err != nil {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    "SETTINGS_FILE_IGNORED",
			Message: "Local settings file could not be read or parsed and was ignored: " + err.Error(),
		})
		overrides = Overrides{}
	}

	minMaxLines := resolveInt(bravetypes.EnvMinMaxLines, overrides.MinMaxLines, bravetypes.DefaultMinMaxLines)
	minMaxBytes := resolveInt(bravetypes.EnvMinMaxBytes, overrides.MinMaxBytes, bravetypes.DefaultMinMaxBytes)
	maxMaxLines := resolveInt(bravetypes.EnvMaxMaxLines, overrides.MaxMaxLines, bravetypes.DefaultMaxMaxLines)
	maxMaxBytes := resolveInt(bravetypes.EnvMaxMaxBytes, overrides.MaxMaxBytes, bravetypes.DefaultMaxMaxBytes)

	clampedMinLines := minInt(minMaxLines, maxMaxLines)
	clampedMinBytes := minInt(minMaxBytes, maxMaxBytes)

	defaultMaxLines := clampInt(resolveInt(bravetypes.EnvDefaultMaxLines, overrides.DefaultMaxLines, bravetypes.DefaultMaxLines), clampedMinLines, maxMaxLines)
	defaultMaxBytes := clampInt(resolveInt(bravetypes.EnvDefaultMaxBytes, overrides.DefaultMaxBytes, bravetypes.DefaultMaxBytes), clampedMinBytes, maxMaxBytes)

	cacheTTLSecs := resolveUint64(bravetypes.EnvCacheTTLSecs, overrides.CacheTTLSecs, bravetypes.DefaultCacheTTLSecs)
	throttleRatePerSec := maxUint32(resolveUint32(bravetypes.EnvThrottleRate, overrides.ThrottleRatePerSec, bravetypes.DefaultThrottleRatePerSec), 1)
	throttleBurst := maxUint32(resolveUint32(bravetypes.EnvThrottleBurst, overrides.ThrottleBurst, bravetypes.DefaultThrottleBurst), maxUint32(throttleRatePerSec, 1))

	retryCount := clampInt(resolveInt(bravetypes.EnvRetryCount, overrides.RetryCount, bravetypes.DefaultRetryCount), 0, 10)
	retryBaseDelayMS := maxUint64(resolveUint64(bravetypes.EnvRetryBaseDelayMS, overrides.RetryBaseDelayMS, bravetypes.DefaultRetryBaseDelayMS), 1)
	retryMaxDelayMS := maxUint64(resolveUint64(bravetypes.EnvRetryMaxDelayMS, overrides.RetryMaxDelayMS, bravetypes.DefaultMaxRetryDelayMS), retryBaseDelayMS)
	perAttemptTimeoutMS := maxUint64(resolveUint64(bravetypes.EnvPerAttemptTimeoutMS, overrides.PerAttemptTimeoutMS, bravetypes.DefaultPerAttemptTimeoutMS), 100)

	maxResponseBytes := maxInt(resolveInt(bravetypes.EnvMaxResponseBytes, overrides.MaxResponseBytes, bravetypes.DefaultMaxResponseBytes), 1024)
	rawPayloadCapBytes := maxInt(resolveInt(bravetypes.EnvRawPayloadCapBytes, overrides.RawPayloadCapBytes, bravetypes.DefaultRawPayloadCapBytes), 1024)
	maxQueryLength := clampInt(resolveInt(bravetypes.EnvMaxQueryLength, overrides.MaxQueryLength, bravetypes.MaxQueryLength), 256, 10_000)

	endpoints := Endpoints{
		Web:    resolveString(bravetypes.EnvEndpointWeb, overrides.EndpointWeb, bravetypes.BraveEndpointWeb),
		News:   resolveString(bravetypes.EnvEndpointNews, overrides.EndpointNews, bravetypes.BraveEndpointNews),
		Images: resolveString(bravetypes.EnvEndpointImages, overrides.EndpointImages, bravetypes.BraveEndpointImages),
		Videos: resolveString(bravetypes.EnvEndpointVideos, overrides.EndpointVideos, bravetypes.BraveEndpointVideos),
	}

	logFilter := os.Getenv(bravetypes.EnvLog)
	if logFilter == "" {
		logFilter = "warn"
	}

	cfg := RuntimeConfig{
		OutputLimits: bravetypes.OutputLimitSettings{
			DefaultMaxLines: defaultMaxLines,
			DefaultMaxBytes: defaultMaxBytes,
			MinMaxLines:     clampedMinLines,
			MinMaxBytes:     clampedMinBytes,
			MaxMaxLines:     maxMaxLines,
			MaxMaxBytes:     maxMaxBytes,
		},
		CacheTTLSecs:        cacheTTLSecs,
		ThrottleRatePerSec:  throttleRatePerSec,
		ThrottleBurst:       throttleBurst,
		RetryCount:          retryCount,
		RetryBaseDelayMS:    retryBaseDelayMS,
		RetryMaxDelayMS:     retryMaxDelayMS,
		PerAttemptTimeoutMS: perAttemptTimeoutMS,
		MaxResponseBytes:    maxResponseBytes,
		RawPayloadCapBytes:  rawPayloadCapBytes,
		MaxQueryLength:      maxQueryLength,
		Endpoints:           endpoints,
		LogFilter:           logFilter,
	}

	return cfg, warnings
}

func resolveInt(envName string, override *int, def int) int {
	if v, ok := getEnvInt(envName); ok {
		return v
	}
	if override != nil {
		return *override
	}
	return def
}

func resolveUint64(envName string, override *uint64, def uint64) uint64 {
	if v, ok := getEnvUint64(envName); ok {
		return v
	}
	if override != nil {
		return *override
	}
	return def
}

func resolveUint32(envName string, override *uint32, def uint32) uint32 {
	if v, ok := getEnvUint64(envName); ok {
		return uint32(v)
	}
	if override != nil {
		return *override
	}
	return def
}

func resolveString(envName string, override *string, def string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	if override != nil && *override != "" {
		return *override
	}
	return def
}

func getEnvInt(name string) (int, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvUint64(name string) (uint64, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxUint64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func maxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
