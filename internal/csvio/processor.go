// Package csvio streams email records from CSV files through the cleaner.
// Each file and each record is its own failure domain: a malformed record is
// skipped and reported, a broken file is abandoned, and siblings continue.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"emailprep/internal/cleaner"
	"emailprep/internal/logger"
	"emailprep/internal/models"
)

// Stats summarizes one file's run.
type Stats struct {
	Processed int
	Skipped   int
}

// Processor reads raw records, cleans subject/sender/body, passes date
// through, and writes the cleaned rows in fixed column order.
type Processor struct {
	cleaner *cleaner.Cleaner
	log     *logger.Logger
}

func NewProcessor(log *logger.Logger) *Processor {
	return &Processor{cleaner: cleaner.New(), log: log}
}

// ProcessFile cleans inputPath into outputPath. It returns an error only for
// file-level failures; record-level failures are counted in Stats.Skipped.
func (p *Processor) ProcessFile(inputPath, outputPath string) (Stats, error) {
	var stats Stats

	in, err := os.Open(inputPath)
	if err != nil {
		return stats, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return stats, fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	// encoding/csv has no field size ceiling, so multi-kilobyte bodies read
	// without truncation. The default field-count check stays on: a row whose
	// width disagrees with the header is a malformed record.
	r := csv.NewReader(in)
	header, err := r.Read()
	if err != nil {
		return stats, fmt.Errorf("read header: %w", err)
	}
	idx := columnIndex(header)

	w := NewRecordWriter(out)
	if err := w.WriteHeader(); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	for row := 1; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.log.Warn("skipping malformed row", "row", row, "error", err)
			stats.Skipped++
			continue
		}

		email := p.cleanRecord(rec, idx, row)
		if err := w.Write(email); err != nil {
			p.log.Warn("skipping row, write failed", "row", row, "error", err)
			stats.Skipped++
			continue
		}

		stats.Processed++
		if stats.Processed%100 == 0 {
			p.log.Info("progress", "processed", stats.Processed)
		}
	}

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	p.log.Info("file cleaned",
		"input", inputPath,
		"processed", stats.Processed,
		"skipped", stats.Skipped)
	return stats, nil
}

func (p *Processor) cleanRecord(rec []string, idx map[string]int, row int) models.Email {
	get := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		// Tolerate undecodable bytes by dropping them.
		return strings.ToValidUTF8(rec[i], "")
	}

	subject := p.cleaner.CleanSubject(get("subject"))
	sender := p.cleaner.CleanSender(get("sender"))
	body := p.cleaner.CleanBody(get("body"))
	for _, f := range []struct {
		name string
		res  cleaner.Result
	}{
		{"subject", subject},
		{"body", body},
	} {
		if f.res.Fallback {
			p.log.Warn("cleaning degraded to trimmed original",
				"row", row, "field", f.name, "error", f.res.Err)
		}
	}

	return models.Email{
		Subject: subject.Text,
		Sender:  sender.Text,
		Body:    body.Text,
		Date:    get("date"),
	}
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}
