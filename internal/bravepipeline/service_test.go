package bravepipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bravesearch/bravesearchd/internal/apierrors"
	"github.com/bravesearch/bravesearchd/internal/braveconf"
	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

func testConfig(webURL string) braveconf.RuntimeConfig {
	cfg, _ := braveconf.Load()
	cfg.Endpoints.Web = webURL
	cfg.Endpoints.News = webURL
	cfg.RetryCount = 0
	cfg.ThrottleRatePerSec = 1000
	cfg.ThrottleBurst = 1000
	cfg.CacheTTLSecs = 60
	return cfg
}

func neverCancelled() bool { return false }

func TestExecuteWebSearchHappyPath(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveSearchAPIKey, "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"query": {"original": "golang"},
			"web": {"results": [{"title": "Go", "url": "https://go.dev"}]}
		}`))
	}))
	defer server.Close()

	svc := New(testConfig(server.URL), "test-version")
	resp, err := svc.ExecuteWebSearch(context.Background(), bravetypes.BraveWebSearchArgs{Query: "golang"}, "trace-1", neverCancelled)
	if err != nil {
		t.Fatalf("ExecuteWebSearch() error = %v", err)
	}
	if resp.Meta.Returned != 1 {
		t.Errorf("Meta.Returned = %d, want 1", resp.Meta.Returned)
	}
	if resp.Meta.TraceID != "trace-1" {
		t.Errorf("Meta.TraceID = %q, want trace-1", resp.Meta.TraceID)
	}
	if resp.Meta.ServerVersion != "test-version" {
		t.Errorf("Meta.ServerVersion = %q, want test-version", resp.Meta.ServerVersion)
	}
	if len(resp.Sections) != 1 || resp.Sections[0].Results[0].Title != "Go" {
		t.Errorf("unexpected sections: %+v", resp.Sections)
	}
}

func TestExecuteWebSearchCachesSecondCall(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveSearchAPIKey, "test-key")

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query": {"original": "golang"}, "web": {"results": [{"title": "Go", "url": "https://go.dev"}]}}`))
	}))
	defer server.Close()

	svc := New(testConfig(server.URL), "test-version")
	args := bravetypes.BraveWebSearchArgs{Query: "golang"}
	if _, err := svc.ExecuteWebSearch(context.Background(), args, "t1", neverCancelled); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.ExecuteWebSearch(context.Background(), args, "t2", neverCancelled); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if hits != 1 {
		t.Errorf("upstream hits = %d, want 1 (second call should be served from cache)", hits)
	}
}

func TestExecuteWebSearchMissingAPIKey(t *testing.T) {
	svc := New(testConfig("http://127.0.0.1:0"), "test-version")
	_, err := svc.ExecuteWebSearch(context.Background(), bravetypes.BraveWebSearchArgs{Query: "golang"}, "trace-1", neverCancelled)
	appErr, ok := err.(*apierrors.AppError)
	if !ok {
		t.Fatalf("err = %T, want *apierrors.AppError", err)
	}
	if appErr.Code() != bravetypes.ErrorMissingAPIKey {
		t.Errorf("Code() = %q, want %q", appErr.Code(), bravetypes.ErrorMissingAPIKey)
	}
}

func TestExecuteWebSearchEmptyQueryRejected(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveSearchAPIKey, "test-key")
	svc := New(testConfig("http://127.0.0.1:0"), "test-version")
	_, err := svc.ExecuteWebSearch(context.Background(), bravetypes.BraveWebSearchArgs{Query: "   "}, "trace-1", neverCancelled)
	appErr, ok := err.(*apierrors.AppError)
	if !ok {
		t.Fatalf("err = %T, want *apierrors.AppError", err)
	}
	if appErr.Code() != bravetypes.ErrorInvalidArgument {
		t.Errorf("Code() = %q, want %q", appErr.Code(), bravetypes.ErrorInvalidArgument)
	}
}

func TestExecuteWebSearchInvalidSearchTypeRejected(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveSearchAPIKey, "test-key")
	svc := New(testConfig("http://127.0.0.1:0"), "test-version")
	bogus := "not-a-type"
	_, err := svc.ExecuteWebSearch(context.Background(), bravetypes.BraveWebSearchArgs{Query: "golang", SearchType: &bogus}, "trace-1", neverCancelled)
	appErr, ok := err.(*apierrors.AppError)
	if !ok {
		t.Fatalf("err = %T, want *apierrors.AppError", err)
	}
	if appErr.Code() != bravetypes.ErrorInvalidArgument {
		t.Errorf("Code() = %q, want %q", appErr.Code(), bravetypes.ErrorInvalidArgument)
	}
}

func TestExecuteWebSearchOffsetCappedWarning(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveSearchAPIKey, "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query": {"original": "golang"}, "web": {"results": []}}`))
	}))
	defer server.Close()

	svc := New(testConfig(server.URL), "test-version")
	hugeOffset := 999999
	resp, err := svc.ExecuteWebSearch(context.Background(), bravetypes.BraveWebSearchArgs{Query: "golang", Offset: &hugeOffset}, "trace-1", neverCancelled)
	if err != nil {
		t.Fatalf("ExecuteWebSearch() error = %v", err)
	}
	found := false
	for _, w := range resp.Warnings {
		if w.Code == bravetypes.WarningOffsetCapped {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an OFFSET_CAPPED warning, got %+v", resp.Warnings)
	}
}

func TestCacheKeyStableAcrossMapOrdering(t *testing.T) {
	svc := New(testConfig("http://127.0.0.1:0"), "test-version")
	request := bravetypes.NormalizedSearchRequest{Query: "golang", SearchType: bravetypes.SearchTypeWeb}
	params := bravetypes.FetchSearchParams{Count: 5}

	key1 := svc.cacheKey(request, params)
	key2 := svc.cacheKey(request, params)
	if key1 != key2 {
		t.Errorf("cacheKey() not deterministic: %q != %q", key1, key2)
	}

	params.Count = 6
	key3 := svc.cacheKey(request, params)
	if key1 == key3 {
		t.Error("cacheKey() did not change when params changed")
	}
}
