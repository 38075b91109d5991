package main

import (
	"fmt"
	"log"
	"os"

	kaksviz "github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool"
	"github.com/MrGhost-Aymen/Ka-Ks-Visualization-Tool/pipeline"
)

func main() {
	registerLogger()
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fatal(err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fatal(err)
	}
	if err := pipeline.Run(cfg); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func registerLogger() {
	kaksviz.Info = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	kaksviz.Warn = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
}
