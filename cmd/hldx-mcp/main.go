package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/hldx/internal/config"
	hldxmcp "github.com/peterkuimelis/hldx/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cards := flag.String("cards", cfg.CardsFile, "card catalog YAML file (default: built-in catalog)")
	flag.Parse()

	cfg.CardsFile = *cards
	// Diagnostics go to stderr; stdout carries the MCP protocol.
	diag := cfg.NewLogger()

	catalog, err := cfg.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load card catalog: %v\n", err)
		os.Exit(1)
	}

	hldxmcp.Configure(cfg.GameConfig(catalog, diag))

	s := server.NewMCPServer("hldx", "1.0.0")
	hldxmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
