package main

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "adler/internal/adapters/mcp"
	"adler/internal/adapters/pdf"
	"adler/internal/adapters/storage"
	"adler/internal/adapters/watcher"
	"adler/internal/bootstrap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env, err := bootstrap.Open(ctx, nil)
	if err != nil {
		log.Fatalf("adler-mcp: %v", err)
	}
	defer env.Close()

	// Pick up edits made in the TUI while the server runs
	if path := storage.WatchPath(env.Config); path != "" {
		w, err := watcher.New(path, env.Log, func() { env.Doc.Reload(ctx) })
		if err != nil {
			env.Log.Warn("store watcher disabled", "error", err)
		} else {
			defer w.Stop()
			go w.Start(ctx)
		}
	}

	mcpServer := server.NewMCPServer(
		"adler-mcp",
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

	mcpadapter.RegisterReadTools(mcpServer, env.Doc)
	mcpadapter.RegisterWriteTools(mcpServer, env.Doc, pdf.NewExporter(env.Log), env.Config.ExportDir)

	env.Log.Info("serving mcp over stdio", "backend", env.Config.Backend)
	if err := server.ServeStdio(mcpServer); err != nil {
		env.Log.Error("mcp server stopped", "error", err)
		log.Fatalf("adler-mcp: %v", err)
	}
}
