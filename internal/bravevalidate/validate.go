// Package bravevalidate holds the pure parameter validators and
// normalizers for brave_web_search arguments: closed-set membership
// checks, locale alias resolution, and numeric clamping. None of these
// functions read configuration or produce warnings themselves — that
// orchestration lives in bravepipeline, which has the context (and the
// RuntimeConfig) to decide what a rejected value should fall back to.
package bravevalidate

import (
	"regexp"
	"strings"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

var freshnessRe = regexp.MustCompile(`^\d{1,4}[dwmy]$`)

// NormalizeSearchType resolves raw (possibly nil) input to a SearchType,
// falling back to the default when raw is nil or unrecognized.
func NormalizeSearchType(raw *string) bravetypes.SearchType {
	if raw == nil {
		return bravetypes.DefaultSearchType
	}
	if st, ok := bravetypes.SearchTypeFromString(strings.ToLower(strings.TrimSpace(*raw))); ok {
		return st
	}
	return bravetypes.DefaultSearchType
}

// IsValidSearchTypeInput reports whether raw names a recognized search type.
func IsValidSearchTypeInput(raw *string) bool {
	if raw == nil {
		return false
	}
	_, ok := bravetypes.SearchTypeFromString(strings.ToLower(strings.TrimSpace(*raw)))
	return ok
}

// ParseResultFilterValues splits raw result_filter tokens into the accepted
// ResultFilter values (deduped, in first-seen order) and the rejected raw
// tokens (also deduped).
func ParseResultFilterValues(raw []string) (accepted []bravetypes.ResultFilter, rejected []string) {
	seenAccepted := map[bravetypes.ResultFilter]bool{}
	seenRejected := map[string]bool{}

	for _, token := range raw {
		normalized := strings.ToLower(strings.TrimSpace(token))
		if normalized == "" {
			continue
		}
		if filter, ok := bravetypes.ResultFilterFromString(normalized); ok {
			if !seenAccepted[filter] {
				seenAccepted[filter] = true
				accepted = append(accepted, filter)
			}
			continue
		}
		if !seenRejected[normalized] {
			seenRejected[normalized] = true
			rejected = append(rejected, normalized)
		}
	}
	return accepted, rejected
}

// PickLocaleLanguage resolves raw to a recognized search_language value,
// trying the full (possibly hyphenated/underscored) token first and then
// its leading subtag, aliasing "ja" to "jp" either way.
func PickLocaleLanguage(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*raw))
	if normalized == "" {
		return nil
	}

	alias := func(value string) string {
		if value == "ja" {
			return "jp"
		}
		return value
	}

	full := alias(normalized)
	if contains(bravetypes.SearchLanguageOptions, full) {
		return &full
	}

	short := normalized
	if idx := strings.IndexAny(normalized, "-_"); idx >= 0 {
		short = normalized[:idx]
	}
	if short == "" {
		return nil
	}

	shortAliased := alias(short)
	if contains(bravetypes.SearchLanguageOptions, shortAliased) {
		return &shortAliased
	}
	return nil
}

// NormalizeSafeSearch resolves raw to a recognized safe_search value.
func NormalizeSafeSearch(raw *string) *string {
	return normalizeLower(raw, bravetypes.SafeSearchOptions)
}

// NormalizeUnits resolves raw to a recognized units value.
func NormalizeUnits(raw *string) *string {
	return normalizeLower(raw, bravetypes.UnitOptions)
}

// NormalizeFreshness resolves raw to a recognized freshness value: either
// one of the shortcut tokens (pd/pw/pm/py) or an NdU-shaped value like "3w".
func NormalizeFreshness(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.ToLower(strings.TrimSpace(*raw))
	if value == "" {
		return nil
	}
	if contains(bravetypes.FreshnessShortcutOptions, value) {
		return &value
	}
	if freshnessRe.MatchString(value) {
		return &value
	}
	return nil
}

// ClampOffset bounds a raw offset to the max allowed for searchType.
func ClampOffset(raw *int, searchType bravetypes.SearchType) int {
	value := 0
	if raw != nil {
		value = *raw
	}
	maxOffset := bravetypes.MaxOffsetWebNewsVideos
	if searchType == bravetypes.SearchTypeImages {
		maxOffset = bravetypes.MaxOffsetImages
	}
	if value > maxOffset {
		return maxOffset
	}
	if value < 0 {
		return 0
	}
	return value
}

// ToLimitedCount clamps a raw max_results to [1, MaxResults], defaulting to
// DefaultResults when raw is nil.
func ToLimitedCount(raw *int) int {
	value := bravetypes.DefaultResults
	if raw != nil {
		value = *raw
	}
	if value < 1 {
		return 1
	}
	if value > bravetypes.MaxResults {
		return bravetypes.MaxResults
	}
	return value
}

// NormalizeUILanguage resolves raw to a recognized ui_language value. A
// two-part "a-B"/"a_B" token is reshaped to lower-upper before the
// membership check; any other shape is checked as-is (and will simply fail
// membership, since the option table only holds two-part values).
func NormalizeUILanguage(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}

	normalized := strings.ReplaceAll(value, "_", "-")
	parts := strings.Split(normalized, "-")
	candidate := normalized
	if len(parts) == 2 {
		candidate = strings.ToLower(parts[0]) + "-" + strings.ToUpper(parts[1])
	}

	if contains(bravetypes.UILanguageOptions, candidate) {
		return &candidate
	}
	return nil
}

// NormalizeCountry resolves raw to a recognized country value.
func NormalizeCountry(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.ToUpper(strings.TrimSpace(*raw))
	if contains(bravetypes.CountryOptions, value) {
		return &value
	}
	return nil
}

func normalizeLower(raw *string, options []string) *string {
	if raw == nil {
		return nil
	}
	value := strings.ToLower(strings.TrimSpace(*raw))
	if contains(options, value) {
		return &value
	}
	return nil
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
