package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default: discovered)")
	retention := flag.Duration("history-retention", 90*24*time.Hour, "Drop workflow history older than this at startup (0 keeps everything)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("plexdeckd %s\n", version)
		os.Exit(0)
	}

	if err := runServer(*configPath, *retention); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
