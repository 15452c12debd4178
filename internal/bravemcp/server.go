// Package bravemcp wires the bravepipeline.Service into an MCP server:
// tool schemas, argument decoding, and the error-envelope/JSON-success
// response shapes every tool call returns over stdio.
package bravemcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/google/uuid"

	"github.com/bravesearch/bravesearchd/internal/apierrors"
	"github.com/bravesearch/bravesearchd/internal/bravepipeline"
	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

// Server adapts a bravepipeline.Service onto the MCP tool-call protocol.
type Server struct {
	service *bravepipeline.Service
}

// New creates a Server bound to service.
func New(service *bravepipeline.Service) *Server {
	return &Server{service: service}
}

// Build registers every tool on mcpServer, leaving it ready to Connect over
// a transport.
func (s *Server) Build(mcpServer *mcpsdk.Server) {
	mcpServer.AddTool(&mcpsdk.Tool{
		Name:        bravetypes.ToolBraveWebSearch,
		Description: toolDescriptions[bravetypes.ToolBraveWebSearch],
		InputSchema: searchToolSchema(),
	}, s.handleSearch)

	mcpServer.AddTool(&mcpsdk.Tool{
		Name:        bravetypes.ToolBraveWebSearchHelp,
		Description: toolDescriptions[bravetypes.ToolBraveWebSearchHelp],
		InputSchema: helpToolSchema(),
	}, s.handleHelp)

	mcpServer.AddTool(&mcpsdk.Tool{
		Name:        bravetypes.ToolBraveWebSearchStatus,
		Description: toolDescriptions[bravetypes.ToolBraveWebSearchStatus],
		InputSchema: statusToolSchema(),
	}, s.handleStatus)
}

// Instructions is the server-level usage hint surfaced to MCP clients.
func Instructions() string {
	return "Use brave_web_search for Brave web/news/images/videos queries. Use brave_web_search_help for schema/examples and brave_web_search_status for config/health checks."
}

func (s *Server) handleSearch(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	traceID := uuid.NewString()

	var args bravetypes.BraveWebSearchArgs
	if err := parseToolArgs(req.Params.Arguments, &args); err != nil {
		return errorToolOutput(err, s.service.ServerVersion(), traceID), nil
	}

	isCancelled := func() bool { return ctx.Err() != nil }
	response, err := s.service.ExecuteWebSearch(ctx, args, traceID, isCancelled)
	if err != nil {
		return errorToolOutput(asAppError(err), s.service.ServerVersion(), traceID), nil
	}
	return jsonToolOutput(response)
}

func (s *Server) handleHelp(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	traceID := uuid.NewString()

	var args bravetypes.HelpArgs
	if err := parseToolArgs(req.Params.Arguments, &args); err != nil {
		return errorToolOutput(err, s.service.ServerVersion(), traceID), nil
	}

	var topic *bravetypes.HelpTopic
	if args.Topic != nil {
		t := bravetypes.HelpTopic(*args.Topic)
		topic = &t
	}
	return jsonToolOutput(s.service.Help(topic))
}

func (s *Server) handleStatus(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	traceID := uuid.NewString()

	var args bravetypes.StatusArgs
	if err := parseToolArgs(req.Params.Arguments, &args); err != nil {
		return errorToolOutput(err, s.service.ServerVersion(), traceID), nil
	}

	isCancelled := func() bool { return ctx.Err() != nil }
	return jsonToolOutput(s.service.Status(ctx, args, isCancelled))
}

// parseToolArgs decodes raw (possibly nil/empty, meaning "no arguments")
// JSON into dest, rejecting unknown fields the way the tool schemas do.
func parseToolArgs(raw json.RawMessage, dest any) *apierrors.AppError {
	if len(raw) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return apierrors.InvalidArgumentWithDetails("Invalid arguments for tool call", map[string]any{"reason": err.Error()})
	}
	return nil
}

func asAppError(err error) *apierrors.AppError {
	if appErr, ok := err.(*apierrors.AppError); ok {
		return appErr
	}
	return apierrors.Internal(err.Error())
}

func jsonToolOutput(value any) (*mcpsdk.CallToolResult, error) {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tool response: %w", err)
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(payload)}},
	}, nil
}

func errorToolOutput(err *apierrors.AppError, serverVersion, traceID string) *mcpsdk.CallToolResult {
	envelope := err.ToEnvelope(serverVersion, traceID)
	payload, marshalErr := json.MarshalIndent(envelope, "", "  ")
	if marshalErr != nil {
		payload = []byte(fmt.Sprintf(
			`{"api_version":"v1","error":{"code":%q,"message":%q},"meta":{"trace_id":%q}}`,
			err.Code(), err.Message(), traceID))
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(payload)}},
		IsError: true,
	}
}
