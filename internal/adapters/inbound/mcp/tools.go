package mcp

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/localelint/internal/application"
)

// registerTools registers all localelint MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.CheckService, projectPath string) {
	// 1. localelint_check
	s.AddTool(
		mcplib.NewTool("localelint_check",
			mcplib.WithDescription("Validate translation files against the reference document, persist the results, and return the report as JSON"),
			mcplib.WithString("files",
				mcplib.Description("Comma-separated translation files to validate (default: every file in the translations directory)"),
			),
		),
		handleCheck(svc, projectPath),
	)

	// 2. localelint_validate_document
	s.AddTool(
		mcplib.NewTool("localelint_validate_document",
			mcplib.WithDescription("Validate translation content against the reference without touching disk. Returns missing keys, extra keys, and parse diagnostics."),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("File name of the document, e.g. fr-FR.json; the extension selects the parser"),
			),
			mcplib.WithString("content",
				mcplib.Required(),
				mcplib.Description("Full text of the document"),
			),
		),
		handleValidateDocument(svc, projectPath),
	)

	// 3. localelint_reference_keys
	s.AddTool(
		mcplib.NewTool("localelint_reference_keys",
			mcplib.WithDescription("Returns the keys of the reference document in document order"),
		),
		handleReferenceKeys(svc, projectPath),
	)
}

func handleCheck(svc *application.CheckService, projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		req := application.CheckRequest{}
		if files := request.GetString("files", ""); files != "" {
			req.Files, req.FilesSet = application.SplitFileList(files), true
		}

		result, err := svc.Check(projectPath, req)
		if err != nil {
			return errorResult(fmt.Sprintf("saving validation results failed: %v", err)), nil
		}
		return jsonResult(result.Report)
	}
}

func handleValidateDocument(svc *application.CheckService, projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		content, err := request.RequireString("content")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		summary, err := svc.ValidateDocument(projectPath, file, []byte(content))
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

func handleReferenceKeys(svc *application.CheckService, projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		keys, err := svc.ReferenceKeys(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(keys)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
