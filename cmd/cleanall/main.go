package main

import (
	"flag"
	"log"
	"os"

	"emailprep/internal/config"
	"emailprep/internal/csvio"
	"emailprep/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if len(cfg.Cleaner.Files) == 0 {
		log.Fatalf("load config: %v", config.ErrNoInputFiles)
	}

	lg := logger.NewLogger(cfg.Logging.Level)
	p := csvio.NewProcessor(lg)

	batch := p.ProcessAll(cfg.Cleaner.Files, cfg.Cleaner.OutputSuffix)
	if batch.Files == 0 {
		lg.Error("no input files could be processed")
		os.Exit(1)
	}
}
