package braveconf

import (
	"testing"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

func TestLoadDefaults(t *testing.T) {
	cfg, warnings := Load()
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings with no settings file: %v", warnings)
	}
	if cfg.OutputLimits.DefaultMaxLines != bravetypes.DefaultMaxLines {
		t.Errorf("DefaultMaxLines = %d, want %d", cfg.OutputLimits.DefaultMaxLines, bravetypes.DefaultMaxLines)
	}
	if cfg.Endpoints.Web != bravetypes.BraveEndpointWeb {
		t.Errorf("Endpoints.Web = %q, want %q", cfg.Endpoints.Web, bravetypes.BraveEndpointWeb)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv(bravetypes.EnvDefaultMaxLines, "50")
	cfg, _ := Load()
	if cfg.OutputLimits.DefaultMaxLines != 50 {
		t.Errorf("DefaultMaxLines = %d, want 50", cfg.OutputLimits.DefaultMaxLines)
	}
}

func TestLoadClampsDefaultWithinMinMax(t *testing.T) {
	t.Setenv(bravetypes.EnvMinMaxLines, "200")
	t.Setenv(bravetypes.EnvMaxMaxLines, "300")
	t.Setenv(bravetypes.EnvDefaultMaxLines, "10")
	cfg, _ := Load()
	if cfg.OutputLimits.DefaultMaxLines != 200 {
		t.Errorf("DefaultMaxLines = %d, want clamped up to 200", cfg.OutputLimits.DefaultMaxLines)
	}
}

func TestLoadAPIKeyFromEnvPrefersCanonicalVar(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveSearchAPIKey, "canonical-key")
	t.Setenv(bravetypes.EnvBraveAPIKey, "legacy-key")
	key := LoadAPIKeyFromEnv()
	if key.Key != "canonical-key" || key.Source != bravetypes.EnvBraveSearchAPIKey {
		t.Errorf("got %+v, want canonical-key from %s", key, bravetypes.EnvBraveSearchAPIKey)
	}
}

func TestLoadAPIKeyFromEnvFallsBackToLegacyVar(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveAPIKey, "legacy-key")
	key := LoadAPIKeyFromEnv()
	if key.Key != "legacy-key" || key.Source != bravetypes.EnvBraveAPIKey {
		t.Errorf("got %+v, want legacy-key from %s", key, bravetypes.EnvBraveAPIKey)
	}
}

func TestLoadAPIKeyFromEnvMissing(t *testing.T) {
	key := LoadAPIKeyFromEnv()
	if key.HasKey() {
		t.Errorf("expected no key, got %+v", key)
	}
}

func TestClampOutputLimits(t *testing.T) {
	cfg := RuntimeConfig{
		OutputLimits: bravetypes.OutputLimitSettings{
			DefaultMaxLines: 120,
			DefaultMaxBytes: 8000,
			MinMaxLines:     20,
			MinMaxBytes:     1000,
			MaxMaxLines:     300,
			MaxMaxBytes:     20000,
		},
	}
	lines, bytes := cfg.ClampOutputLimits(nil, nil)
	if lines != 120 || bytes != 8000 {
		t.Errorf("nil overrides = (%d, %d), want defaults", lines, bytes)
	}

	requestedLines, requestedBytes := 10, 50000
	lines, bytes = cfg.ClampOutputLimits(&requestedLines, &requestedBytes)
	if lines != 20 {
		t.Errorf("lines = %d, want clamped up to min 20", lines)
	}
	if bytes != 20000 {
		t.Errorf("bytes = %d, want clamped down to max 20000", bytes)
	}
}
