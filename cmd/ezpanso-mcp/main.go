package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "ezpanso/internal/adapters/mcp"
	"ezpanso/internal/adapters/sqlite"
	"ezpanso/internal/adapters/yamlstore"
	"ezpanso/internal/application"
	"ezpanso/internal/config"
	"ezpanso/internal/logging"
	"ezpanso/internal/ports"
)

func main() {
	dirFlag := flag.String("dir", config.MatchDir(), "path to the Espanso match directory")
	flag.Parse()

	logging.SetupFileOnly(0)

	store := yamlstore.NewStore()
	session := application.NewSession(store)
	if err := session.Load(*dirFlag); err != nil {
		log.Fatalf("ezpanso-mcp: loading %s: %v", *dirFlag, err)
	}

	// Search falls back to an in-memory scan when the index cannot open
	var idx ports.SnippetIndex
	sqlIdx := sqlite.NewIndex(store)
	if err := sqlIdx.Open(*dirFlag); err == nil {
		if sqlIdx.NeedsFullRebuild() {
			_, err = sqlIdx.SyncFull()
		} else {
			_, err = sqlIdx.SyncIncremental()
		}
		if err == nil {
			idx = sqlIdx
			defer sqlIdx.Close()
		} else {
			sqlIdx.Close()
		}
	}

	mcpServer := server.NewMCPServer(
		"ezpanso-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, session, idx)
	mcpadapter.RegisterWriteTools(mcpServer, session)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("ezpanso-mcp: %v", err)
	}
}
