package bravemcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bravesearch/bravesearchd/internal/apierrors"
	"github.com/bravesearch/bravesearchd/internal/braveconf"
	"github.com/bravesearch/bravesearchd/internal/bravepipeline"
	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

func TestParseToolArgsEmptyIsNoOp(t *testing.T) {
	var args bravetypes.BraveWebSearchArgs
	if err := parseToolArgs(nil, &args); err != nil {
		t.Fatalf("parseToolArgs(nil) error = %v", err)
	}
}

func TestParseToolArgsRejectsUnknownFields(t *testing.T) {
	var args bravetypes.BraveWebSearchArgs
	raw := json.RawMessage(`{"query":"go","bogus_field":true}`)
	err := parseToolArgs(raw, &args)
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
	if err.Code() != bravetypes.ErrorInvalidArgument {
		t.Errorf("Code() = %q, want %q", err.Code(), bravetypes.ErrorInvalidArgument)
	}
}

func TestParseToolArgsDecodesKnownFields(t *testing.T) {
	var args bravetypes.BraveWebSearchArgs
	raw := json.RawMessage(`{"query":"golang tutorials"}`)
	if err := parseToolArgs(raw, &args); err != nil {
		t.Fatalf("parseToolArgs() error = %v", err)
	}
	if args.Query != "golang tutorials" {
		t.Errorf("Query = %q, want golang tutorials", args.Query)
	}
}

func TestAsAppErrorWrapsPlainError(t *testing.T) {
	wrapped := asAppError(context.DeadlineExceeded)
	if wrapped.Code() != bravetypes.ErrorInternal {
		t.Errorf("Code() = %q, want %q", wrapped.Code(), bravetypes.ErrorInternal)
	}
}

func TestAsAppErrorPassesThroughAppError(t *testing.T) {
	original := apierrors.Upstream("boom")
	if asAppError(original) != original {
		t.Error("expected the original *AppError to pass through unchanged")
	}
}

func TestErrorToolOutputMarksIsError(t *testing.T) {
	result := errorToolOutput(apierrors.InvalidArgument("bad query"), "v1", "trace-1")
	if !result.IsError {
		t.Error("expected IsError=true")
	}
	text, ok := result.Content[0].(*mcpsdk.TextContent)
	if !ok {
		t.Fatalf("Content[0] = %T, want *mcpsdk.TextContent", result.Content[0])
	}
	if !strings.Contains(text.Text, bravetypes.ErrorInvalidArgument) {
		t.Errorf("envelope text = %s, want it to contain %q", text.Text, bravetypes.ErrorInvalidArgument)
	}
}

// setupInMemoryServer builds a real bravemcp.Server backed by svc, registers
// it on an in-memory transport, and returns a connected client session.
func setupInMemoryServer(t *testing.T, svc *bravepipeline.Service) *mcpsdk.ClientSession {
	t.Helper()

	mcpServer := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "bravesearchd-test", Version: "0.0.0"}, nil)
	New(svc).Build(mcpServer)

	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()
	ctx := context.Background()

	if _, err := mcpServer.Connect(ctx, serverTransport, nil); err != nil {
		t.Fatalf("server connect: %v", err)
	}

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestHandleSearchEndToEnd(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveSearchAPIKey, "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query": {"original": "golang"}, "web": {"results": [{"title": "Go", "url": "https://go.dev"}]}}`))
	}))
	defer server.Close()

	cfg, _ := braveconf.Load()
	cfg.Endpoints.Web = server.URL
	cfg.RetryCount = 0
	cfg.ThrottleRatePerSec = 1000
	cfg.ThrottleBurst = 1000

	svc := bravepipeline.New(cfg, "test-version")
	session := setupInMemoryServer(t, svc)

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      bravetypes.ToolBraveWebSearch,
		Arguments: map[string]any{"query": "golang"},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("CallTool() returned an error result: %+v", result.Content)
	}

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	if !ok {
		t.Fatalf("Content[0] = %T, want *mcpsdk.TextContent", result.Content[0])
	}
	var response bravetypes.SearchResponse
	if err := json.Unmarshal([]byte(text.Text), &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if response.Meta.Returned != 1 {
		t.Errorf("Meta.Returned = %d, want 1", response.Meta.Returned)
	}
}

func TestHandleSearchInvalidArgumentEndToEnd(t *testing.T) {
	t.Setenv(bravetypes.EnvBraveSearchAPIKey, "test-key")
	cfg, _ := braveconf.Load()
	svc := bravepipeline.New(cfg, "test-version")
	session := setupInMemoryServer(t, svc)

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      bravetypes.ToolBraveWebSearch,
		Arguments: map[string]any{"query": "   "},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for a blank query")
	}
}

func TestHandleHelpEndToEnd(t *testing.T) {
	cfg, _ := braveconf.Load()
	svc := bravepipeline.New(cfg, "test-version")
	session := setupInMemoryServer(t, svc)

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      bravetypes.ToolBraveWebSearchHelp,
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("CallTool() returned an error result: %+v", result.Content)
	}
}

func TestHandleStatusEndToEnd(t *testing.T) {
	cfg, _ := braveconf.Load()
	svc := bravepipeline.New(cfg, "test-version")
	session := setupInMemoryServer(t, svc)

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      bravetypes.ToolBraveWebSearchStatus,
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("CallTool() returned an error result: %+v", result.Content)
	}
}
