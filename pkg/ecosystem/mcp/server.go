// Package mcp exposes project spec validation to agents over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with the spec tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"xcodegen",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("xcodegen/validate",
			mcp.WithDescription("Validate a project spec YAML file and list every violation"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the project spec YAML file")),
			mcp.WithString("disable", mcp.Description("Comma-separated validation categories to disable, e.g. missingConfigFiles,missingTestPlans")),
			mcp.WithString("toolVersion", mcp.Description("Tool version to check against options.minimumXcodeGenVersion")),
			mcp.WithString("where", mcp.Description("Filter expression over violations, e.g. Kind == \"invalidTargetSource\"")),
		),
		HandleValidate,
	)

	s.AddTool(
		mcp.NewTool("xcodegen/schema",
			mcp.WithDescription("Export the JSON Schema of the normalized project model"),
		),
		HandleSchema,
	)

	return s
}
