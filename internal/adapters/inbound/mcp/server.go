package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/openkraft/localelint/internal/adapters/outbound/config"
	"github.com/openkraft/localelint/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/localelint/internal/adapters/outbound/history"
	"github.com/openkraft/localelint/internal/adapters/outbound/parser"
	"github.com/openkraft/localelint/internal/adapters/outbound/report"
	"github.com/openkraft/localelint/internal/adapters/outbound/source"
	"github.com/openkraft/localelint/internal/application"
)

// NewLocalelintMCPServer creates a new MCP server with all localelint tools
// and resources registered. The projectPath is the root directory holding
// the reference document and .localelint.yaml.
func NewLocalelintMCPServer(projectPath string, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		"localelint",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	svc := newCheckService(logger)
	registerTools(s, svc, projectPath)
	registerResources(s, svc, projectPath)

	return s
}

func newCheckService(logger *zap.Logger) *application.CheckService {
	return application.NewCheckService(
		config.New(),
		source.New(),
		parser.NewRegistry(),
		report.New(),
		application.WithLogger(logger.Named("mcp")),
		application.WithHistory(history.New()),
		application.WithChangeDetector(gitinfo.New()),
	)
}
