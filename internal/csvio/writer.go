package csvio

import (
	"bufio"
	"io"
	"strings"

	"emailprep/internal/models"
)

// RecordWriter writes four-column CSV rows with every field quoted, so bodies
// containing commas or newlines never collide with the delimiter.
type RecordWriter struct {
	w *bufio.Writer
}

func NewRecordWriter(w io.Writer) *RecordWriter {
	return &RecordWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the fixed column order: subject, sender, body, date.
func (rw *RecordWriter) WriteHeader() error {
	return rw.writeRow(models.Columns)
}

func (rw *RecordWriter) Write(e models.Email) error {
	return rw.writeRow([]string{e.Subject, e.Sender, e.Body, e.Date})
}

func (rw *RecordWriter) Flush() error {
	return rw.w.Flush()
}

func (rw *RecordWriter) writeRow(fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := rw.w.WriteString(strings.Join(quoted, ",") + "\n")
	return err
}
