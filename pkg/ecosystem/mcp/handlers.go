package mcp

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Koagonzalo/XcodeGen/pkg/report"
	"github.com/Koagonzalo/XcodeGen/pkg/spec"
	"github.com/Koagonzalo/XcodeGen/pkg/validate"
)

// HandleValidate implements the xcodegen/validate MCP tool. The result
// is the JSON report; IsError is set when any violation remains.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}
	disable, _ := args["disable"].(string)
	toolVersion, _ := args["toolVersion"].(string)
	where, _ := args["where"].(string)

	sum, errs, err := report.Check(path, report.Request{
		Options:     validate.Options{Disabled: spec.ParseCategories(disable)},
		ToolVersion: toolVersion,
		Where:       where,
	})
	if err != nil {
		return errorResult(err.Error()), nil
	}
	var out bytes.Buffer
	if err := report.Render(&out, report.FormatJSON, sum, errs); err != nil {
		return errorResult(err.Error()), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(out.String())},
		IsError: validate.HasErrors(errs),
	}, nil
}

// HandleSchema implements the xcodegen/schema MCP tool.
func HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := spec.GenerateJSONSchema()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
