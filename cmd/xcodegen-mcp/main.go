// Package main provides the xcodegen-mcp binary, an MCP server that lets
// agents validate project specs.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	gmcp "github.com/Koagonzalo/XcodeGen/pkg/ecosystem/mcp"
)

var version = "dev"

func main() {
	s := gmcp.NewServer(version)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
