package csvio

import (
	"os"
	"path/filepath"
	"strings"
)

// BatchStats aggregates a run over several input files.
type BatchStats struct {
	Files     int
	Processed int
	Skipped   int
}

// OutputName derives the cleaned filename by inserting suffix before the
// extension: spam_emails.csv -> spam_emails_cleaned.csv.
func OutputName(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// ProcessAll cleans every listed file. Missing inputs are reported and
// skipped; a failing file aborts only itself.
func (p *Processor) ProcessAll(files []string, suffix string) BatchStats {
	var batch BatchStats

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			p.log.Warn("input file not found, skipping", "file", f)
			continue
		}

		out := OutputName(f, suffix)
		stats, err := p.ProcessFile(f, out)
		if err != nil {
			p.log.Error("file processing failed", "file", f, "error", err)
			continue
		}

		batch.Files++
		batch.Processed += stats.Processed
		batch.Skipped += stats.Skipped
		p.logSizes(f, out)
	}

	p.log.Info("batch complete",
		"files", batch.Files,
		"processed", batch.Processed,
		"skipped", batch.Skipped)
	return batch
}

func (p *Processor) logSizes(input, output string) {
	inInfo, err := os.Stat(input)
	if err != nil {
		return
	}
	outInfo, err := os.Stat(output)
	if err != nil {
		return
	}
	p.log.Info("file sizes",
		"input_kb", inInfo.Size()/1024,
		"output_kb", outInfo.Size()/1024)
}
