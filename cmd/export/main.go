package main

import (
	"context"
	"flag"
	"log"

	"emailprep/internal/config"
	"emailprep/internal/gmail"
	"emailprep/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if len(cfg.Export.Labels) == 0 {
		log.Fatal("load config: export.labels must list at least one label")
	}

	lg := logger.NewLogger(cfg.Logging.Level)
	ctx := context.Background()

	client, err := gmail.NewClient(ctx, cfg.Export.Credentials, cfg.Export.Token)
	if err != nil {
		log.Fatalf("gmail client: %v", err)
	}

	var store *gmail.Store
	if cfg.Export.StateDB != "" {
		store, err = gmail.OpenStore(cfg.Export.StateDB)
		if err != nil {
			log.Fatalf("export state: %v", err)
		}
	}

	exporter := gmail.NewExporter(client, store, lg)
	for _, label := range cfg.Export.Labels {
		n, err := exporter.ExportLabel(ctx, label.ID, label.File, cfg.Export.MaxPerLabel)
		if err != nil {
			lg.Error("export failed", "label", label.ID, "error", err)
			continue
		}
		lg.Info("exported", "label", label.ID, "messages", n)
	}
}
