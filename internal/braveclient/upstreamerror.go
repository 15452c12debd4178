package braveclient

import (
	"encoding/json"
	"strconv"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

func decodeJSONObject(text string) (map[string]any, bool) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

// MaybeCapDebugRawPayload caps the raw payload attached to a debug response
// to capBytes, replacing it with a truncated preview object (and recording a
// warning) when its serialized form exceeds the cap.
func MaybeCapDebugRawPayload(payload map[string]any, originalSize, capBytes int) (out any, truncated bool, size *int, warnings []bravetypes.WarningEntry) {
	serialized, err := json.Marshal(payload)
	if err != nil {
		serialized = nil
	}
	if len(serialized) <= capBytes {
		sz := originalSize
		return payload, false, &sz, nil
	}

	warnings = append(warnings, bravetypes.WarningEntry{
		Code: bravetypes.WarningRawPayloadTruncated,
		Message: "Raw payload exceeded debug cap (" +
			strconv.Itoa(len(serialized)) + " bytes > " + strconv.Itoa(capBytes) + " bytes); returning truncated preview object.",
	})

	previewLen := capBytes
	if previewLen > len(serialized) {
		previewLen = len(serialized)
	}
	truncatedPayload := map[string]any{
		"truncated":           true,
		"original_size_bytes": len(serialized),
		"preview":             string(serialized[:previewLen]),
	}
	sz := originalSize
	return truncatedPayload, true, &sz, warnings
}
