package bravepipeline

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

type truncationContext struct {
	initialLines      int
	initialBytes      int
	maxLines          int
	maxBytes          int
	removedResults    int
	omittedDebugData  bool
	collapsedWarnings bool
	condensedSummary  bool
	condensedQuery    bool
}

func serializedShape(response *bravetypes.SearchResponse) (lines, bytes int) {
	encoded, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		encoded = []byte("{}")
	}
	text := string(encoded)
	return strings.Count(text, "\n") + 1, len(text)
}

func withinLimits(response *bravetypes.SearchResponse, maxLines, maxBytes int) bool {
	lines, bytes := serializedShape(response)
	return lines <= maxLines && bytes <= maxBytes
}

// enforceOutputLimits shrinks response in place until its pretty-printed
// JSON fits within maxLines/maxBytes, via an ordered cascade: drop results
// from the tail sections first, then debug_data, then warnings, then
// condense the summary, then shorten the query (down to empty if needed),
// then clear sections outright, then clear the summary. Every step
// re-checks the limits before moving to the next.
func enforceOutputLimits(response *bravetypes.SearchResponse, maxLines, maxBytes int) {
	initialLines, initialBytes := serializedShape(response)
	if initialLines <= maxLines && initialBytes <= maxBytes {
		return
	}

	removedResults := 0
	for !withinLimits(response, maxLines, maxBytes) {
		removedAny := false
		for i := len(response.Sections) - 1; i >= 0; i-- {
			section := &response.Sections[i]
			if len(section.Results) > 0 {
				section.Results = section.Results[:len(section.Results)-1]
				removedResults++
				removedAny = true
				break
			}
		}
		if !removedAny {
			break
		}
	}

	omittedDebugData := false
	if !withinLimits(response, maxLines, maxBytes) && response.DebugData != nil {
		response.DebugData = nil
		omittedDebugData = true
	}

	collapsedWarnings := false
	if !withinLimits(response, maxLines, maxBytes) && len(response.Warnings) > 0 {
		response.Warnings = nil
		collapsedWarnings = true
	}

	condensedSummary := false
	if !withinLimits(response, maxLines, maxBytes) {
		response.Summary = "Output truncated by configured limits."
		condensedSummary = true
	}

	condensedQuery := false
	if !withinLimits(response, maxLines, maxBytes) {
		if response.Meta.Query != "" {
			condensedQuery = true
		}
		for !withinLimits(response, maxLines, maxBytes) && response.Meta.Query != "" {
			runes := []rune(response.Meta.Query)
			length := len(runes)
			var nextLen int
			if length > 8 {
				nextLen = length / 2
			} else if length > 0 {
				nextLen = length - 1
			} else {
				nextLen = 0
			}
			response.Meta.Query = string(runes[:nextLen])
		}
	}

	if !withinLimits(response, maxLines, maxBytes) && len(response.Sections) > 0 {
		response.Sections = nil
	}

	if !withinLimits(response, maxLines, maxBytes) && response.Summary != "" {
		response.Summary = ""
	}

	returned := 0
	for _, section := range response.Sections {
		returned += len(section.Results)
	}
	response.Meta.Returned = returned
	if removedResults > 0 {
		response.Meta.HasMore = true
	}

	response.Warnings = append(response.Warnings, buildTruncationWarning(truncationContext{
		initialLines:      initialLines,
		initialBytes:      initialBytes,
		maxLines:          maxLines,
		maxBytes:          maxBytes,
		removedResults:    removedResults,
		omittedDebugData:  omittedDebugData,
		collapsedWarnings: collapsedWarnings,
		condensedSummary:  condensedSummary,
		condensedQuery:    condensedQuery,
	}))

	if !withinLimits(response, maxLines, maxBytes) {
		response.Warnings = response.Warnings[:len(response.Warnings)-1]
		response.Warnings = append(response.Warnings, bravetypes.WarningEntry{
			Code:    bravetypes.WarningOutputTruncated,
			Message: "Output truncated by configured limits.",
		})
	}

	if !withinLimits(response, maxLines, maxBytes) {
		response.Warnings = nil
	}
}

func buildTruncationWarning(ctx truncationContext) bravetypes.WarningEntry {
	var notes []string
	if ctx.removedResults > 0 {
		notes = append(notes, "results")
	}
	if ctx.omittedDebugData {
		notes = append(notes, "debug_data")
	}
	if ctx.collapsedWarnings {
		notes = append(notes, "warnings")
	}
	if ctx.condensedSummary {
		notes = append(notes, "summary")
	}
	if ctx.condensedQuery {
		notes = append(notes, "meta.query")
	}

	details := ""
	if len(notes) > 0 {
		details = " Modified: " + strings.Join(notes, ", ") + "."
	}

	return bravetypes.WarningEntry{
		Code: bravetypes.WarningOutputTruncated,
		Message: "Output truncated by configured limits (" +
			strconv.Itoa(ctx.initialLines) + " -> <= " + strconv.Itoa(ctx.maxLines) + " lines, " +
			strconv.Itoa(ctx.initialBytes) + " -> <= " + strconv.Itoa(ctx.maxBytes) + " bytes, removed " +
			strconv.Itoa(ctx.removedResults) + " results)." + details,
	}
}
