package gmail

import (
	"encoding/base64"
	"regexp"
	"strings"

	"google.golang.org/api/gmail/v1"

	"emailprep/internal/cleaner"
)

// extractBody walks the MIME tree for a best-effort plain text body,
// preferring text/plain parts and falling back to stripped text/html.
func extractBody(p *gmail.MessagePart) string {
	if p == nil {
		return ""
	}
	if plain := findPart(p, "text/plain"); plain != "" {
		return plain
	}
	if h := findPart(p, "text/html"); h != "" {
		if text, err := cleaner.ExtractText(h); err == nil {
			return text
		}
		return h
	}
	return ""
}

func findPart(p *gmail.MessagePart, mimeType string) string {
	if p.MimeType == mimeType && p.Body != nil && p.Body.Data != "" {
		return decodeBody(p.Body.Data)
	}
	for _, part := range p.Parts {
		if s := findPart(part, mimeType); s != "" {
			return s
		}
	}
	return ""
}

// decodeBody decodes base64url payload data. Some payloads arrive in
// standard base64, so that is tried second.
func decodeBody(data string) string {
	if b, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(b)
	}
	if b, err := base64.StdEncoding.DecodeString(data); err == nil {
		return string(b)
	}
	return ""
}

var (
	newlineRunRe  = regexp.MustCompile(`\n+`)
	nonPrintRe    = regexp.MustCompile(`[^\x20-\x7E\n\t]`)
	spacePadRunRe = regexp.MustCompile(` +`)
)

// preClean normalizes line endings, strips non-printable characters, and
// collapses space runs before a field is written to the export CSV. The full
// cleaning pipeline runs later, on the exported files.
func preClean(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = newlineRunRe.ReplaceAllString(s, "\n")
	s = nonPrintRe.ReplaceAllString(s, "")
	s = spacePadRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
