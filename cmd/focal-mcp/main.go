package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "focal/internal/adapters/mcp"
	"focal/internal/adapters/sqlite"
	"focal/internal/config"
)

func main() {
	dbFlag := flag.String("db", config.DatabasePath(), "path to the activity database")
	flag.Parse()

	store := sqlite.NewStore()
	if err := store.Open(*dbFlag); err != nil {
		log.Fatalf("focal-mcp: %v", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"focal-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("focal-mcp: %v", err)
	}
}
