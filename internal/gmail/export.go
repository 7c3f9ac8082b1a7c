package gmail

import (
	"context"
	"fmt"
	"os"

	"emailprep/internal/cleaner"
	"emailprep/internal/csvio"
	"emailprep/internal/logger"
	"emailprep/internal/models"
)

// ListMessageIDs pages through every message carrying the given label.
// A max of 0 means no cap.
func (c *Client) ListMessageIDs(ctx context.Context, labelID string, max int64) ([]string, error) {
	var ids []string
	pageToken := ""
	for {
		req := c.svc.Users.Messages.List("me").LabelIds(labelID).MaxResults(500)
		if pageToken != "" {
			req.PageToken(pageToken)
		}
		resp, err := req.Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
			if max > 0 && int64(len(ids)) >= max {
				return ids, nil
			}
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return ids, nil
}

// Fetch retrieves one message and maps it onto the export record schema.
func (c *Client) Fetch(ctx context.Context, id string) (models.Email, error) {
	m, err := c.svc.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return models.Email{}, err
	}

	subject := cleaner.NoSubject
	sender := cleaner.UnknownSender
	date := ""
	if m.Payload != nil {
		for _, h := range m.Payload.Headers {
			switch h.Name {
			case "Subject":
				subject = h.Value
			case "From":
				sender = h.Value
			case "Date":
				date = h.Value
			}
		}
	}

	return models.Email{
		Subject: preClean(subject),
		Sender:  preClean(sender),
		Body:    preClean(extractBody(m.Payload)),
		Date:    preClean(date),
	}, nil
}

// MessageSource lists and fetches labeled messages.
type MessageSource interface {
	ListMessageIDs(ctx context.Context, labelID string, max int64) ([]string, error)
	Fetch(ctx context.Context, id string) (models.Email, error)
}

// Exporter pulls labeled messages and writes them as four-column CSVs.
type Exporter struct {
	client MessageSource
	store  *Store
	log    *logger.Logger
}

// NewExporter wires a message source, an optional export-state store (nil
// disables skip-known-ids), and a logger.
func NewExporter(client MessageSource, store *Store, log *logger.Logger) *Exporter {
	return &Exporter{client: client, store: store, log: log}
}

// ExportLabel writes every message under labelID to outPath. Messages already
// recorded in the state store are skipped; a failing message is logged and
// the export continues.
func (e *Exporter) ExportLabel(ctx context.Context, labelID, outPath string, max int64) (int, error) {
	ids, err := e.client.ListMessageIDs(ctx, labelID, max)
	if err != nil {
		return 0, fmt.Errorf("list %s messages: %w", labelID, err)
	}
	e.log.Info("listed messages", "label", labelID, "count", len(ids))

	// With the state store enabled, known IDs are skipped instead of
	// re-fetched, so the file must be appended to or earlier rows are lost.
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if e.store != nil {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	out, err := os.OpenFile(outPath, flags, 0644)
	if err != nil {
		return 0, fmt.Errorf("open output: %w", err)
	}
	defer out.Close()

	w := csvio.NewRecordWriter(out)
	info, err := out.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat output: %w", err)
	}
	if info.Size() == 0 {
		if err := w.WriteHeader(); err != nil {
			return 0, fmt.Errorf("write header: %w", err)
		}
	}

	exported := 0
	for _, id := range ids {
		if e.store != nil {
			seen, err := e.store.Seen(id)
			if err != nil {
				e.log.Warn("state lookup failed", "id", id, "error", err)
			} else if seen {
				continue
			}
		}

		email, err := e.client.Fetch(ctx, id)
		if err != nil {
			e.log.Warn("fetch failed, skipping message", "id", id, "error", err)
			continue
		}
		if err := w.Write(email); err != nil {
			e.log.Warn("write failed, skipping message", "id", id, "error", err)
			continue
		}
		if e.store != nil {
			if err := e.store.MarkExported(id, labelID); err != nil {
				e.log.Warn("state update failed", "id", id, "error", err)
			}
		}

		exported++
		if exported%100 == 0 {
			e.log.Info("progress", "label", labelID, "exported", exported)
		}
	}

	if err := w.Flush(); err != nil {
		return exported, fmt.Errorf("flush output: %w", err)
	}
	e.log.Info("label exported", "label", labelID, "file", outPath, "exported", exported)
	return exported, nil
}
