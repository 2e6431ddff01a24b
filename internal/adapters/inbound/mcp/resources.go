package mcp

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/localelint/internal/application"
)

const (
	reportURI    = "localelint://report"
	referenceURI = "localelint://reference"
)

// registerResources registers all localelint MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *application.CheckService, projectPath string) {
	// 1. localelint://report - last persisted report
	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Validation Report",
			mcplib.WithResourceDescription("Results of the most recent validation run"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(svc, projectPath),
	)

	// 2. localelint://reference - reference keys
	s.AddResource(
		mcplib.NewResource(
			referenceURI,
			"Reference Keys",
			mcplib.WithResourceDescription("Keys every translation must define, in reference order"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReferenceResource(svc, projectPath),
	)
}

func handleReportResource(svc *application.CheckService, projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := svc.LastReport(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading report: %w", err)
		}
		if report == nil {
			return nil, fmt.Errorf("no validation results yet; run localelint_check first")
		}
		return jsonContents(reportURI, report)
	}
}

func handleReferenceResource(svc *application.CheckService, projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		keys, err := svc.ReferenceKeys(projectPath)
		if err != nil {
			return nil, err
		}
		return jsonContents(referenceURI, keys)
	}
}

func jsonContents(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
