package bravecli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInspectHighlightsValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.json")
	writeFile(t, path, `{"hello":"world","n":1}`)

	var buf bytes.Buffer
	if err := Inspect(path, &buf); err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output = %q, want it to contain the original keys", buf.String())
	}
}

func TestInspectRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.json")
	writeFile(t, path, `not json`)

	var buf bytes.Buffer
	if err := Inspect(path, &buf); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestInspectMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := Inspect(filepath.Join(t.TempDir(), "missing.json"), &buf); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
