package main

import (
	"fmt"
	"os"

	"emailprep/internal/csvio"
	"emailprep/internal/logger"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: clean <input.csv> <output.csv>")
		os.Exit(1)
	}

	log := logger.NewLogger("info")
	p := csvio.NewProcessor(log)

	stats, err := p.ProcessFile(os.Args[1], os.Args[2])
	if err != nil {
		log.Error("cleaning failed", "input", os.Args[1], "error", err)
		os.Exit(1)
	}
	log.Info("done", "processed", stats.Processed, "skipped", stats.Skipped)
}
