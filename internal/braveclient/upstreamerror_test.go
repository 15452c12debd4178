package braveclient

import (
	"testing"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

func TestMaybeCapDebugRawPayloadWithinCap(t *testing.T) {
	payload := map[string]any{"hello": "world"}
	out, truncated, size, warnings := MaybeCapDebugRawPayload(payload, 100, 10_000)
	if truncated {
		t.Error("expected not truncated")
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if size == nil || *size != 100 {
		t.Errorf("size = %v, want 100", size)
	}
	if _, ok := out.(map[string]any); !ok {
		t.Errorf("out = %T, want original payload map", out)
	}
}

func TestMaybeCapDebugRawPayloadExceedsCap(t *testing.T) {
	big := map[string]any{}
	for i := 0; i < 200; i++ {
		big[string(rune('a'+i%26))+string(rune(i))] = "some moderately long value to pad size"
	}
	out, truncated, _, warnings := MaybeCapDebugRawPayload(big, 50_000, 100)
	if !truncated {
		t.Fatal("expected truncated=true")
	}
	if len(warnings) != 1 || warnings[0].Code != bravetypes.WarningRawPayloadTruncated {
		t.Errorf("warnings = %v, want one RAW_PAYLOAD_TRUNCATED warning", warnings)
	}
	preview, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("out = %T, want a preview map", out)
	}
	if preview["truncated"] != true {
		t.Errorf("preview[truncated] = %v, want true", preview["truncated"])
	}
}

func TestDecodeJSONObject(t *testing.T) {
	obj, ok := decodeJSONObject(`{"a":1}`)
	if !ok {
		t.Fatal("expected successful decode")
	}
	if obj["a"] != float64(1) {
		t.Errorf("obj[a] = %v, want float64(1)", obj["a"])
	}
	if _, ok := decodeJSONObject("not json"); ok {
		t.Error("expected decode failure for malformed JSON")
	}
}
