package braveclient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
	"github.com/bravesearch/bravesearchd/internal/textnorm"
	"github.com/bravesearch/bravesearchd/internal/urlkey"
)

const maxErrorDetailRunes = 500

func truncateErrorDetail(text string) string {
	runes := []rune(text)
	if len(runes) <= maxErrorDetailRunes {
		return text
	}
	return string(runes[:maxErrorDetailRunes]) + "…"
}

// ParseBraveErrorMessage extracts a human-readable detail from a Brave
// error-shaped JSON body, falling back to fallback when the body doesn't
// parse or doesn't carry a recognizable error/type field.
func ParseBraveErrorMessage(payloadText, fallback string) string {
	payload, ok := decodeJSONObject(payloadText)
	if !ok {
		return fallback
	}

	if errObj, ok := asObject(payload["error"]); ok {
		if detail, ok := errObj["detail"].(string); ok {
			message := truncateErrorDetail(detail)
			if meta, ok := asObject(errObj["meta"]); ok {
				if errs, ok := meta["errors"].([]any); ok {
					var expected []string
					for _, entry := range errs {
						obj, ok := asObject(entry)
						if !ok {
							continue
						}
						if msg, ok := obj["msg"].(string); ok {
							expected = append(expected, msg)
							continue
						}
						if ctx, ok := asObject(obj["ctx"]); ok {
							if exp, ok := ctx["expected"]; ok {
								expected = append(expected, fmt.Sprintf("%v", exp))
							}
						}
					}
					if joined := strings.Join(expected, "; "); joined != "" {
						message += " (" + truncateErrorDetail(joined) + ")"
					}
				}
			}
			return message
		}
	}

	if kind, ok := payload["type"].(string); ok {
		return truncateErrorDetail(kind)
	}

	return fallback
}

func asObject(value any) (map[string]any, bool) {
	obj, ok := value.(map[string]any)
	return obj, ok
}

func asArray(value any) ([]any, bool) {
	arr, ok := value.([]any)
	return arr, ok
}

func objectsIn(container map[string]any, key string) []map[string]any {
	arr, ok := asArray(container[key])
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range arr {
		if obj, ok := asObject(item); ok {
			out = append(out, obj)
		}
	}
	return out
}

func resultsOf(payload map[string]any, key string) []map[string]any {
	section, ok := asObject(payload[key])
	if !ok {
		return nil
	}
	return objectsIn(section, "results")
}

func collectRawResults(payload map[string]any, section bravetypes.SectionName) []map[string]any {
	switch section {
	case bravetypes.SectionWeb:
		return resultsOf(payload, "web")
	case bravetypes.SectionDiscussions:
		return resultsOf(payload, "discussions")
	case bravetypes.SectionInfobox:
		return resultsOf(payload, "infobox")
	case bravetypes.SectionVideos:
		if nested := resultsOf(payload, "videos"); len(nested) > 0 {
			return nested
		}
		if typeName, _ := payload["type"].(string); typeName == "videos" {
			return objectsIn(payload, "results")
		}
		return nil
	case bravetypes.SectionNews:
		if nested := resultsOf(payload, "news"); len(nested) > 0 {
			return nested
		}
		if typeName, _ := payload["type"].(string); typeName == "news" {
			return objectsIn(payload, "results")
		}
		return nil
	case bravetypes.SectionImages:
		if nested := resultsOf(payload, "images"); len(nested) > 0 {
			return nested
		}
		if typeName, _ := payload["type"].(string); typeName == "images" {
			return objectsIn(payload, "results")
		}
		return nil
	default:
		return nil
	}
}

func toCleanString(value any) *string {
	switch v := value.(type) {
	case string:
		cleaned := textnorm.Clean(v, false)
		if cleaned == "" {
			return nil
		}
		return &cleaned
	case float64:
		cleaned := textnorm.Clean(strconv.FormatFloat(v, 'g', -1, 64), false)
		if cleaned == "" {
			return nil
		}
		return &cleaned
	default:
		return nil
	}
}

func normalizeResult(item map[string]any, source bravetypes.SectionName, preserveDecorations bool) (bravetypes.NormalizedResult, bool) {
	rawTitle, _ := item["title"].(string)
	title := textnorm.Clean(rawTitle, preserveDecorations)

	rawURL, _ := item["url"].(string)
	url := strings.TrimSpace(rawURL)

	if title == "" || url == "" {
		return bravetypes.NormalizedResult{}, false
	}

	primarySnippet, ok := item["description"].(string)
	if !ok {
		primarySnippet, _ = item["snippet"].(string)
	}

	var extraSnippets []string
	if arr, ok := asArray(item["extra_snippets"]); ok {
		for i, entry := range arr {
			if i >= bravetypes.MaxExtraSnippets {
				break
			}
			text, ok := entry.(string)
			if !ok {
				continue
			}
			cleaned := textnorm.Clean(text, preserveDecorations)
			if cleaned != "" {
				extraSnippets = append(extraSnippets, cleaned)
			}
		}
	}

	snippet := textnorm.Clean(primarySnippet, preserveDecorations)

	var sourceName *string
	if profile, ok := asObject(item["profile"]); ok {
		sourceName = toCleanString(profile["name"])
		if sourceName == nil {
			sourceName = toCleanString(profile["long_name"])
		}
	}
	if sourceName == nil {
		sourceName = toCleanString(item["source"])
	}
	if sourceName == nil {
		sourceName = toCleanString(item["source_name"])
	}

	age := toCleanString(item["age"])
	published := toCleanString(item["page_age"])
	itemType := toCleanString(item["type"])
	if itemType != nil && *itemType == "search_result" {
		itemType = nil
	}
	subtype := toCleanString(item["subtype"])

	var duration, creator *string
	if source == bravetypes.SectionVideos {
		if videoObj, ok := asObject(item["video"]); ok {
			duration = toCleanString(videoObj["duration"])
			creator = toCleanString(videoObj["creator"])
		}
	}

	location := toCleanString(item["location"])
	isLive, _ := item["is_live"].(bool)

	return bravetypes.NormalizedResult{
		Title:         title,
		URL:           url,
		Snippet:       snippet,
		ExtraSnippets: extraSnippets,
		Source:        sourceName,
		Age:           age,
		Published:     published,
		ItemType:      itemType,
		Subtype:       subtype,
		Duration:      duration,
		Creator:       creator,
		Location:      location,
		IsLive:        isLive,
	}, true
}

func parseQueryOriginal(payload map[string]any) (string, bool) {
	query, ok := asObject(payload["query"])
	if !ok {
		return "", false
	}
	original, ok := query["original"].(string)
	return original, ok
}

func parseMoreResultsAvailable(payload map[string]any) bool {
	query, ok := asObject(payload["query"])
	if !ok {
		return false
	}
	more, _ := query["more_results_available"].(bool)
	return more
}

// ParseSections extracts, normalizes, dedupes, and limits every configured
// section's results from a decoded Brave response payload.
func ParseSections(payload map[string]any, searchType bravetypes.SearchType, resultFilterValues []bravetypes.ResultFilter, requested int, preserveDecorations bool) bravetypes.ParseSectionsResult {
	normalizedFilters := resultFilterValues
	if len(normalizedFilters) == 0 {
		normalizedFilters = []bravetypes.ResultFilter{bravetypes.FilterWeb}
	}

	configured := bravetypes.SectionSpecsFor(searchType)

	var allowedSections []bravetypes.SectionName
	if searchType == bravetypes.SearchTypeWeb {
		for _, filter := range normalizedFilters {
			allowedSections = append(allowedSections, filter.Section())
		}
	} else if len(configured) > 0 {
		allowedSections = []bravetypes.SectionName{configured[0].Name}
	}

	var warnings []bravetypes.WarningEntry
	var sections []bravetypes.ParsedSection
	seenURLKeys := map[string]bool{}
	duplicateCount := 0

	for _, sectionName := range allowedSections {
		var spec *bravetypes.SectionSpec
		for i := range configured {
			if configured[i].Name == sectionName {
				spec = &configured[i]
				break
			}
		}
		if spec == nil {
			continue
		}

		raw := collectRawResults(payload, sectionName)
		var parsed []bravetypes.NormalizedResult
		for _, entry := range raw {
			if result, ok := normalizeResult(entry, sectionName, preserveDecorations); ok {
				parsed = append(parsed, result)
			}
		}

		var unique []bravetypes.NormalizedResult
		for _, result := range parsed {
			dedupKey := urlkey.NormalizeForDedup(result.URL)
			if seenURLKeys[dedupKey] {
				duplicateCount++
				continue
			}
			seenURLKeys[dedupKey] = true
			unique = append(unique, result)
		}

		limited := unique
		if len(limited) > requested {
			limited = limited[:requested]
		}
		moreAvailable := parseMoreResultsAvailable(payload)
		sectionLimitReached := len(limited) == requested && moreAvailable

		sections = append(sections, bravetypes.ParsedSection{
			Key:                 sectionName,
			Label:               spec.Label,
			Provider:            string(sectionName),
			Results:             limited,
			SectionLimitReached: sectionLimitReached,
		})
	}

	hasRenderableResults := false
	for _, section := range sections {
		if len(section.Results) > 0 {
			hasRenderableResults = true
			break
		}
	}

	if !hasRenderableResults {
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningNoRecognizedSections,
			Message: fmt.Sprintf("No recognized result sections for search_type '%s'.", searchType),
		})
	}

	if duplicateCount > 0 {
		plural := "s"
		if duplicateCount == 1 {
			plural = ""
		}
		warnings = append(warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningDeduplicated,
			Message: fmt.Sprintf("Deduplicated %d duplicate result%s across sections by URL.", duplicateCount, plural),
		})
	}

	hasMore := hasRenderableResults && (parseMoreResultsAvailable(payload) || func() bool {
		for _, section := range sections {
			if section.SectionLimitReached && len(section.Results) == requested {
				return true
			}
		}
		return false
	}())

	return bravetypes.ParseSectionsResult{
		Sections: sections,
		HasMore:  hasMore,
		Warnings: warnings,
	}
}

// QueryEchoOrOriginal returns payload's query.original field, or
// fallbackQuery if absent.
func QueryEchoOrOriginal(payload map[string]any, fallbackQuery string) string {
	if original, ok := parseQueryOriginal(payload); ok {
		return original
	}
	return fallbackQuery
}
