package server

import (
	"context"
	"encoding/json"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"bigocheck/internal/analyzer"
	"bigocheck/internal/logger"
	"bigocheck/internal/syntax"
)

// NewMCPServer builds an MCP server exposing the analyzer as tools.
func NewMCPServer(a *analyzer.Analyzer, version string) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		"bigocheck",
		version,
		mcpserver.WithToolCapabilities(false),
	)
	RegisterTools(s, a)
	return s
}

// ServeMCP serves the tools over stdio until stdin closes.
func ServeMCP(a *analyzer.Analyzer, version string) error {
	logger.SetOutput(os.Stderr)
	logger.Info("serving MCP tools over stdio", "version", version)
	return mcpserver.ServeStdio(NewMCPServer(a, version))
}

// RegisterTools defines the analysis tools on the server.
func RegisterTools(s *mcpserver.MCPServer, a *analyzer.Analyzer) {
	analyzeTool := mcp.NewTool("analyze_complexity",
		mcp.WithDescription("Estimate the asymptotic time and space complexity of every function in one source file. The estimate is a heuristic from loop update shapes, loop nesting and recursion (direct or mutual); it never runs the code. Returns the same JSON document as the HTTP endpoint."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Complete source text of one compilation unit")),
		mcp.WithString("language", mcp.Description("Source language: 'java' or 'go' (default: configured default language)")),
	)
	s.AddTool(analyzeTool, analyzeHandler(a))
}

func analyzeHandler(a *analyzer.Analyzer) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, err := request.RequireString("source")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		lang := request.GetString("language", "")

		resp := a.Respond(syntax.Language(lang), "input", []byte(source))
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return mcp.NewToolResultError("Failed to encode result: " + err.Error()), nil
		}
		if !resp.Success {
			return mcp.NewToolResultError(string(data)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
