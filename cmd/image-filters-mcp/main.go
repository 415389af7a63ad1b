package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/image-filters-mcp/internal/config"
	"github.com/ironsheep/image-filters-mcp/internal/logger"
	"github.com/ironsheep/image-filters-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-filters-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-filters-mcp - MCP server for neighborhood filters, halftoning and segmentation")
			fmt.Println()
			fmt.Println("Usage: image-filters-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from .env):")
			fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug       Log level: debug, info, warn, error")
			fmt.Println("  IMAGE_MCP_LOG_FORMAT=json       Log format: console or json")
			fmt.Println("  IMAGE_MCP_OUTPUT_DIR=/path      Base directory for relative output_path values")
			fmt.Println("  IMAGE_MCP_CACHE=off             Disable the decoded image cache")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout is for MCP protocol
	log := logger.New(cfg.LogFormat, cfg.LogLevel)
	log.Debug("main", "starting", map[string]interface{}{
		"version":    Version,
		"build_time": BuildTime,
		"commit":     GitCommit,
		"cache":      cfg.CacheEnabled,
		"output_dir": cfg.OutputDir,
	})

	srv := server.NewWithConfig(cfg, log)
	if err := srv.Run(); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
}
