// Package cleaner normalizes raw email text for classifier input. Each field
// runs through a fixed sequence of transformations: markup/entity decoding,
// tag stripping, URL/address/phone redaction, signature-line removal,
// whitespace and punctuation collapsing, and unicode normalization.
package cleaner

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Result is the outcome of cleaning one field. When a stage fails, Text holds
// the original input with surrounding whitespace trimmed and Fallback is set;
// cleaning never returns an error to the caller.
type Result struct {
	Text     string
	Fallback bool
	Err      error
}

// Cleaner applies the normalization pipeline. It holds only immutable
// configuration and is safe to reuse across records.
type Cleaner struct {
	extract func(string) (string, error)
}

// New returns a Cleaner backed by the goquery text extractor.
func New() *Cleaner {
	return NewWithExtractor(ExtractText)
}

// NewWithExtractor returns a Cleaner using a custom markup text extractor.
func NewWithExtractor(extract func(string) (string, error)) *Cleaner {
	return &Cleaner{extract: extract}
}

// CleanBody runs the full pipeline, including signature/footer stripping.
func (c *Cleaner) CleanBody(text string) Result {
	return c.clean(text, true)
}

// CleanSubject strips reply/forward prefixes, then runs the pipeline without
// the line-oriented signature stage. An empty result becomes the sentinel.
func (c *Cleaner) CleanSubject(subject string) Result {
	if subject == "" {
		return Result{Text: NoSubject}
	}
	for {
		stripped := replyPrefixRe.ReplaceAllString(subject, "")
		if stripped == subject {
			break
		}
		subject = stripped
	}
	res := c.clean(subject, false)
	if res.Text == "" {
		res.Text = NoSubject
	}
	return res
}

// CleanSender reduces a "Display Name <address>" composite to the bare
// address. Anything else passes through unchanged; the general pipeline is
// not applied to senders.
func (c *Cleaner) CleanSender(sender string) Result {
	if sender == "" {
		return Result{Text: UnknownSender}
	}
	if m := angleAddrRe.FindStringSubmatch(sender); m != nil {
		return Result{Text: m[1]}
	}
	return Result{Text: sender}
}

func (c *Cleaner) clean(text string, stripSignatures bool) Result {
	if text == "" {
		return Result{}
	}
	out, err := c.run(text, stripSignatures)
	if err != nil {
		return Result{Text: strings.TrimSpace(text), Fallback: true, Err: err}
	}
	return Result{Text: out}
}

// run applies the pipeline stages in their fixed order. Later stages assume
// earlier ones ran: redaction sees decoded text, signature stripping sees the
// original line structure, punctuation collapsing sees collapsed whitespace.
func (c *Cleaner) run(text string, stripSignatures bool) (string, error) {
	t, err := c.decodeMarkup(text)
	if err != nil {
		return "", err
	}
	t = stripTags(t)
	t = redact(t)
	if stripSignatures {
		t = stripSignatureLines(t)
	}
	t = normalizeWhitespace(t)
	t = normalizePunctuation(t)
	t = normalizeUnicode(t)
	return strings.TrimSpace(t), nil
}

// decodeMarkup extracts visible text when the input looks like markup and
// falls back to direct entity substitution otherwise, so that empty or
// malformed non-markup input never goes through a full parse.
func (c *Cleaner) decodeMarkup(text string) (string, error) {
	if strings.Contains(text, "<") && strings.Contains(text, ">") {
		return c.extract(text)
	}
	for _, e := range htmlEntities {
		text = strings.ReplaceAll(text, e.entity, e.repl)
	}
	return text, nil
}

// stripTags is a defensive second pass over whatever tag-shaped substrings
// the parser did not resolve, plus inline CSS comment blocks.
func stripTags(t string) string {
	t = tagRe.ReplaceAllString(t, " ")
	t = scriptRe.ReplaceAllString(t, "")
	t = styleRe.ReplaceAllString(t, "")
	t = cssCommentRe.ReplaceAllString(t, "")
	return t
}

func redact(t string) string {
	t = urlRe.ReplaceAllString(t, "link")
	t = wwwRe.ReplaceAllString(t, "link")
	t = emailRe.ReplaceAllString(t, "email")
	t = phoneRe.ReplaceAllString(t, "phone")
	t = bbLinkRe.ReplaceAllString(t, "link")
	t = anchorRe.ReplaceAllString(t, "link")
	return t
}

func stripSignatureLines(t string) string {
	lines := strings.Split(t, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isSignatureLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isSignatureLine(line string) bool {
	for _, p := range signaturePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// normalizeWhitespace collapses space runs, trims each line, drops lines that
// end up empty, and joins the survivors with single spaces so every field
// comes out as one line.
func normalizeWhitespace(t string) string {
	t = spaceRunRe.ReplaceAllString(t, " ")
	var kept []string
	for _, line := range strings.Split(t, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, " ")
}

func normalizePunctuation(t string) string {
	t = bangRunRe.ReplaceAllString(t, "!")
	t = questionRunRe.ReplaceAllString(t, "?")
	t = dotRunRe.ReplaceAllString(t, ".")
	t = commaRunRe.ReplaceAllString(t, ",")
	return t
}

var typographicReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
	"—", "-", "–", "-",
)

func normalizeUnicode(t string) string {
	t = norm.NFKC.String(t)
	return typographicReplacer.Replace(t)
}
