package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	dbxmcp "github.com/peterkuimelis/dbx/internal/mcp"
)

func main() {
	setup := flag.String("setup", "", "path to a setup YAML file for new games")
	flag.Parse()

	dbxmcp.SetSetupFile(*setup)

	s := server.NewMCPServer("dbx", "1.0.0")
	dbxmcp.RegisterTools(s, dbxmcp.NewManager())

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
