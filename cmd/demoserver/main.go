// Command demoserver starts a stand-in court website for trying out case
// lookups without hitting the real court.
// Usage: go run ./cmd/demoserver [port] [layout]
// Default port: 9999, default layout: table
package main

import (
	"log"
	"os"
	"strconv"

	"github.com/raysh454/caselookup/internal/demoserver"
	"github.com/raysh454/caselookup/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()

	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}
	if len(os.Args) > 2 {
		cfg.Layout = demoserver.Layout(os.Args[2])
		if !cfg.Layout.Valid() {
			log.Fatalf("Invalid layout %q, want one of %v", os.Args[2], demoserver.Layouts)
		}
	}

	logger := logging.NewZerologLogger("demoserver", logging.Options{Format: "console"})
	server := demoserver.NewDemoServer(cfg, logger)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
