package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/dbx/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	setup := flag.String("setup", "", "path to a setup YAML file for new games")
	flag.Parse()

	srv := web.NewServer(*setup)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("dbx web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
