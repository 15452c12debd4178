// Package bravepipeline orchestrates a brave_web_search call end to end:
// argument normalization, cache lookup, throttled upstream fetch, result
// rendering, and output-limit enforcement. It also answers the help and
// status tools.
package bravepipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bravesearch/bravesearchd/internal/apierrors"
	"github.com/bravesearch/bravesearchd/internal/braveclient"
	"github.com/bravesearch/bravesearchd/internal/braveconf"
	"github.com/bravesearch/bravesearchd/internal/bravecache"
	"github.com/bravesearch/bravesearchd/internal/bravethrottle"
	"github.com/bravesearch/bravesearchd/internal/bravetypes"
	"github.com/bravesearch/bravesearchd/internal/bravevalidate"
	"github.com/bravesearch/bravesearchd/internal/textnorm"
)

// Service is the pipeline's entrypoint: one per running server, shared
// across every tool call.
type Service struct {
	client        *braveclient.Client
	config        braveconf.RuntimeConfig
	cache         *bravecache.TTLCache[bravetypes.FetchSearchResult]
	throttle      *bravethrottle.Throttle
	serverVersion string
}

// New builds a Service wired to config: a fresh client, TTL cache, and
// token-bucket throttle.
func New(config braveconf.RuntimeConfig, serverVersion string) *Service {
	return &Service{
		client:        braveclient.New(config),
		config:        config,
		cache:         bravecache.New[bravetypes.FetchSearchResult](time.Duration(config.CacheTTLSecs) * time.Second),
		throttle:      bravethrottle.New(config.ThrottleRatePerSec, config.ThrottleBurst),
		serverVersion: serverVersion,
	}
}

// ServerVersion returns the version string reported in every response.
func (s *Service) ServerVersion() string { return s.serverVersion }

// ExecuteWebSearch runs the full brave_web_search pipeline for args,
// tagging the response with traceID.
func (s *Service) ExecuteWebSearch(ctx context.Context, args bravetypes.BraveWebSearchArgs, traceID string, isCancelled func() bool) (bravetypes.SearchResponse, error) {
	normalized, err := s.normalizeRequest(args)
	if err != nil {
		return bravetypes.SearchResponse{}, err
	}
	started := time.Now()

	fetchParams := bravetypes.FetchSearchParams{
		Count:              normalized.Requested,
		Offset:             normalized.Offset,
		Country:            normalized.Country,
		SearchLanguage:     normalized.SearchLanguage,
		UILanguage:         normalized.UILanguage,
		SafeSearch:         normalized.SafeSearch,
		Freshness:          normalized.Freshness,
		ResultFilterValues: normalized.ResultFilterValues,
		Units:              normalized.Units,
		Spellcheck:         normalized.Spellcheck,
		ExtraSnippets:      normalized.ExtraSnippets,
		TextDecorations:    normalized.TextDecorations,
	}

	cacheKey := s.cacheKey(normalized, fetchParams)
	cacheBypass := normalized.DisableCache || normalized.Freshness != nil

	var fetchResult bravetypes.FetchSearchResult
	var cached bool
	if !cacheBypass {
		fetchResult, cached = s.cache.Get(cacheKey)
	}

	if !cached {
		if !normalized.DisableThrottle {
			if err := s.throttle.AcquireCancellable(isCancelled); err != nil {
				return bravetypes.SearchResponse{}, apierrors.Cancelled()
			}
		}

		result, err := s.client.FetchSearch(ctx, normalized.Query, normalized.SearchType, fetchParams, isCancelled)
		if err != nil {
			return bravetypes.SearchResponse{}, err
		}

		if !cacheBypass {
			s.cache.Insert(cacheKey, result)
		}
		fetchResult = result
	}

	normalized.Warnings = append(normalized.Warnings, fetchResult.Warnings...)

	sections := make([]bravetypes.SearchSection, len(fetchResult.Sections))
	for i, section := range fetchResult.Sections {
		items := make([]bravetypes.SearchResultItem, len(section.Results))
		for j, result := range section.Results {
			items[j] = toResultItem(result)
		}
		sections[i] = bravetypes.SearchSection{
			Key:                 section.Key,
			Label:               section.Label,
			Provider:            section.Provider,
			Results:             items,
			SectionLimitReached: section.SectionLimitReached,
		}
	}

	returned := 0
	for _, section := range sections {
		returned += len(section.Results)
	}

	hasMore := fetchResult.HasMore
	summary := buildSummary(fetchResult.QueryEcho, returned, normalized.SearchType, normalized.Offset, normalized.Requested, hasMore)

	response := bravetypes.SearchResponse{
		APIVersion: bravetypes.APIVersion,
		Summary:    summary,
		Sections:   sections,
		Meta: bravetypes.SearchMeta{
			Query:         fetchResult.QueryEcho,
			SearchType:    normalized.SearchType,
			Requested:     normalized.Requested,
			Returned:      returned,
			Offset:        normalized.Offset,
			HasMore:       hasMore,
			Provider:      bravetypes.ProviderName,
			DurationMS:    time.Since(started).Milliseconds(),
			ServerVersion: s.serverVersion,
			TraceID:       traceID,
		},
		Warnings: normalized.Warnings,
	}

	if normalized.Debug {
		var requestURL *string
		if normalized.IncludeRequestURL {
			url := fetchResult.RequestURL
			requestURL = &url
		}

		var rawPayload any
		var rawPayloadTruncated bool
		var rawPayloadOriginalBytes *int
		if normalized.IncludeRawPayload {
			payloadMap, _ := fetchResult.RawPayload.(map[string]any)
			out, truncated, size, warnings := braveclient.MaybeCapDebugRawPayload(payloadMap, fetchResult.RawPayloadBytes, s.config.RawPayloadCapBytes)
			rawPayload, rawPayloadTruncated, rawPayloadOriginalBytes = out, truncated, size
			response.Warnings = append(response.Warnings, warnings...)
		}

		response.DebugData = &bravetypes.DebugData{
			RequestURL:              requestURL,
			RawPayload:              rawPayload,
			RawPayloadTruncated:     rawPayloadTruncated,
			RawPayloadOriginalBytes: rawPayloadOriginalBytes,
			CacheBypassed:           cacheBypass,
			ThrottleBypassed:        normalized.DisableThrottle,
		}
	}

	enforceOutputLimits(&response, normalized.MaxLines, normalized.MaxBytes)
	response.Meta.WarningsCount = len(response.Warnings)
	response.Meta.DurationMS = time.Since(started).Milliseconds()
	return response, nil
}

func buildSummary(query string, totalResults int, searchType bravetypes.SearchType, offset, requested int, hasMore bool) string {
	plural := "s"
	if totalResults == 1 {
		plural = ""
	}
	summary := fmt.Sprintf("Found %d result%s for %q in %s (offset %d, requested %d).", totalResults, plural, query, searchType, offset, requested)
	if hasMore {
		summary += " More results may be available."
	}
	return summary
}

func toResultItem(result bravetypes.NormalizedResult) bravetypes.SearchResultItem {
	var metadataLines []string
	if result.Source != nil {
		metadataLines = append(metadataLines, "Source: "+*result.Source)
	}
	if result.Age != nil {
		metadataLines = append(metadataLines, "Age: "+*result.Age)
	}
	if result.Published != nil {
		metadataLines = append(metadataLines, "Published: "+*result.Published)
	}
	if result.ItemType != nil {
		metadataLines = append(metadataLines, "Type: "+*result.ItemType)
	}
	if result.Subtype != nil {
		metadataLines = append(metadataLines, "Subtype: "+*result.Subtype)
	}
	if result.Duration != nil {
		metadataLines = append(metadataLines, "Duration: "+*result.Duration)
	}
	if result.Creator != nil {
		metadataLines = append(metadataLines, "Creator: "+*result.Creator)
	}
	if result.Location != nil {
		metadataLines = append(metadataLines, "Location: "+*result.Location)
	}
	if result.IsLive {
		metadataLines = append(metadataLines, "Live")
	}

	var isLive *bool
	if result.IsLive {
		v := true
		isLive = &v
	}

	return bravetypes.SearchResultItem{
		Title:         result.Title,
		URL:           result.URL,
		Snippet:       result.Snippet,
		ExtraSnippets: result.ExtraSnippets,
		MetadataLines: metadataLines,
		Source:        result.Source,
		Age:           result.Age,
		Published:     result.Published,
		ItemType:      result.ItemType,
		Subtype:       result.Subtype,
		Duration:      result.Duration,
		Creator:       result.Creator,
		Location:      result.Location,
		IsLive:        isLive,
	}
}

// normalizeRequest validates and defaults args into a NormalizedSearchRequest,
// accumulating non-fatal WarningEntry values for any rejected-but-recoverable
// input and returning an InvalidArgument AppError for anything fatal.
func (s *Service) normalizeRequest(args bravetypes.BraveWebSearchArgs) (bravetypes.NormalizedSearchRequest, error) {
	trimmed := strings.TrimSpace(args.Query)
	if trimmed == "" {
		return bravetypes.NormalizedSearchRequest{}, apierrors.InvalidArgumentWithDetails(
			"query must not be empty", map[string]any{"field": "query"})
	}

	var warnings []bravetypes.WarningEntry

	query := trimmed
	queryRunes := []rune(query)
	if len(queryRunes) > s.config.MaxQueryLength {
		originalLen := len(queryRunes)
		query = string(queryRunes[:s.config.MaxQueryLength])
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningQueryTruncated,
			Message: fmt.Sprintf("Query truncated to %d characters (original length %d).", s.config.MaxQueryLength, originalLen),
		})
	}

	var searchType bravetypes.SearchType
	if args.SearchType != nil {
		if !bravevalidate.IsValidSearchTypeInput(args.SearchType) {
			return bravetypes.NormalizedSearchRequest{}, apierrors.InvalidArgumentWithDetails(
				fmt.Sprintf("search_type '%s' is invalid", textnorm.SanitizeForWarning(*args.SearchType)),
				map[string]any{"field": "search_type", "value": *args.SearchType})
		}
		searchType = bravevalidate.NormalizeSearchType(args.SearchType)
	} else {
		searchType = bravevalidate.NormalizeSearchType(nil)
	}

	requested := bravevalidate.ToLimitedCount(args.MaxResults)
	offset := bravevalidate.ClampOffset(args.Offset, searchType)
	rawOffset := 0
	if args.Offset != nil {
		rawOffset = *args.Offset
	}
	if offset != rawOffset {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningOffsetCapped,
			Message: fmt.Sprintf("offset capped to %d for %s search.", offset, searchType),
		})
	}

	resultFilterValues, rejectedResultFilters := bravevalidate.ParseResultFilterValues(args.ResultFilter)

	if searchType != bravetypes.SearchTypeWeb && args.ResultFilter != nil {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningResultFilterIgnored,
			Message: "result_filter is only supported for search_type='web' and was ignored.",
		})
	}

	if searchType == bravetypes.SearchTypeWeb && len(rejectedResultFilters) > 0 {
		if len(resultFilterValues) == 0 {
			return bravetypes.NormalizedSearchRequest{}, apierrors.InvalidArgumentWithDetails(
				fmt.Sprintf("result_filter contains no valid values: %s", strings.Join(rejectedResultFilters, ", ")),
				map[string]any{"field": "result_filter", "invalid_values": rejectedResultFilters})
		}
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningInvalidResultFilter,
			Message: fmt.Sprintf("Unsupported result_filter values ignored: %s.", strings.Join(rejectedResultFilters, ", ")),
		})
	}

	searchLanguage := bravevalidate.PickLocaleLanguage(args.SearchLanguage)
	if args.SearchLanguage != nil && searchLanguage == nil {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningInvalidSearchLang,
			Message: fmt.Sprintf("search_language '%s' is invalid and was ignored.", textnorm.SanitizeForWarning(*args.SearchLanguage)),
		})
	}

	uiLanguage := bravevalidate.NormalizeUILanguage(args.UILanguage)
	if args.UILanguage != nil && uiLanguage == nil {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningInvalidUILanguage,
			Message: fmt.Sprintf("ui_language '%s' is invalid and was ignored.", textnorm.SanitizeForWarning(*args.UILanguage)),
		})
	}

	country := bravevalidate.NormalizeCountry(args.Country)
	if args.Country != nil && country == nil {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningInvalidCountry,
			Message: fmt.Sprintf("country '%s' is invalid and was ignored.", textnorm.SanitizeForWarning(*args.Country)),
		})
	}

	safeSearch := bravevalidate.NormalizeSafeSearch(args.SafeSearch)
	if args.SafeSearch != nil && safeSearch == nil {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningInvalidSafeSearch,
			Message: fmt.Sprintf("safe_search '%s' is invalid and was ignored.", textnorm.SanitizeForWarning(*args.SafeSearch)),
		})
	}

	units := bravevalidate.NormalizeUnits(args.Units)
	if args.Units != nil && units == nil {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningInvalidUnits,
			Message: fmt.Sprintf("units '%s' is invalid and was ignored.", textnorm.SanitizeForWarning(*args.Units)),
		})
	}

	freshness := bravevalidate.NormalizeFreshness(args.Freshness)
	if args.Freshness != nil && freshness == nil {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningInvalidFreshness,
			Message: fmt.Sprintf("freshness '%s' is invalid and was ignored.", textnorm.SanitizeForWarning(*args.Freshness)),
		})
	}

	spellcheck := true
	if args.Spellcheck != nil {
		spellcheck = *args.Spellcheck
	}
	extraSnippets := requested <= 3
	if args.ExtraSnippets != nil {
		extraSnippets = *args.ExtraSnippets
	}
	textDecorations := searchType == bravetypes.SearchTypeNews
	if args.TextDecorations != nil {
		textDecorations = *args.TextDecorations
	}

	maxLines, maxBytes := s.config.ClampOutputLimits(args.MaxLines, args.MaxBytes)

	debug := args.Debug != nil && *args.Debug
	includeRawPayload := debug && args.IncludeRawPayload != nil && *args.IncludeRawPayload
	disableCache := debug && args.DisableCache != nil && *args.DisableCache
	disableThrottle := debug && args.DisableThrottle != nil && *args.DisableThrottle
	includeRequestURL := debug && args.IncludeRequestURL != nil && *args.IncludeRequestURL

	if searchType != bravetypes.SearchTypeWeb {
		resultFilterValues = nil
	}

	return bravetypes.NormalizedSearchRequest{
		Query:              query,
		SearchType:         searchType,
		ResultFilterValues: resultFilterValues,
		Requested:          requested,
		Offset:             offset,
		Country:            country,
		SearchLanguage:     searchLanguage,
		UILanguage:         uiLanguage,
		SafeSearch:         safeSearch,
		Units:              units,
		Freshness:          freshness,
		Spellcheck:         spellcheck,
		ExtraSnippets:      extraSnippets,
		TextDecorations:    textDecorations,
		MaxLines:           maxLines,
		MaxBytes:           maxBytes,
		Debug:              debug,
		IncludeRawPayload:  includeRawPayload,
		DisableCache:       disableCache,
		DisableThrottle:    disableThrottle,
		IncludeRequestURL:  includeRequestURL,
		Warnings:           warnings,
	}, nil
}

// cacheKey hashes the request/params material that actually varies the
// upstream response into a stable, order-independent lookup key.
func (s *Service) cacheKey(request bravetypes.NormalizedSearchRequest, params bravetypes.FetchSearchParams) string {
	filterValues := make([]string, len(params.ResultFilterValues))
	for i, v := range params.ResultFilterValues {
		filterValues[i] = string(v)
	}

	material := map[string]any{
		"query":                request.Query,
		"search_type":          string(request.SearchType),
		"count":                params.Count,
		"offset":               params.Offset,
		"country":              params.Country,
		"search_language":      params.SearchLanguage,
		"ui_language":          params.UILanguage,
		"safe_search":          params.SafeSearch,
		"freshness":            params.Freshness,
		"result_filter_values": filterValues,
		"units":                params.Units,
		"spellcheck":           params.Spellcheck,
		"extra_snippets":       params.ExtraSnippets,
		"text_decorations":     params.TextDecorations,
	}

	encoded, err := json.Marshal(material)
	if err != nil {
		encoded = nil
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}
