package bravecli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bravesearch/bravesearchd/internal/braveconf"
	"github.com/bravesearch/bravesearchd/internal/bravepipeline"
	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

func TestPrintStatusWithoutAPIKey(t *testing.T) {
	cfg, _ := braveconf.Load()
	service := bravepipeline.New(cfg, "test-version")

	var buf bytes.Buffer
	PrintStatus(context.Background(), service, false, &buf)

	out := buf.String()
	if !strings.Contains(out, "bravesearchd status") {
		t.Errorf("output missing heading: %q", out)
	}
	if !strings.Contains(out, "test-version") {
		t.Errorf("output missing server_version: %q", out)
	}
	if !strings.Contains(out, "none") {
		t.Errorf("output missing key_source=none: %q", out)
	}
	if strings.Contains(out, "connectivity probe") {
		t.Error("should not render a probe section without a configured key")
	}
}

func TestPrintStatusWithAPIKey(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveSearchAPIKey, "test-key")
	cfg, _ := braveconf.Load()
	service := bravepipeline.New(cfg, "test-version")

	var buf bytes.Buffer
	PrintStatus(context.Background(), service, false, &buf)

	out := buf.String()
	if !strings.Contains(out, bravetypes.EnvBraveSearchAPIKey) {
		t.Errorf("output missing key_source: %q", out)
	}
	if strings.Contains(out, "connectivity probe") {
		t.Error("should not probe unless requested")
	}
}
