package cleaner

import "regexp"

// Sentinel values substituted for empty fields.
const (
	NoSubject     = "No Subject"
	UnknownSender = "Unknown Sender"
)

// Entity substitutions applied in order when the input carries no markup.
// Order matters: &amp; decodes before the bracket entities so double-encoded
// text resolves the same way each pass.
var htmlEntities = []struct{ entity, repl string }{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&apos;", "'"},
}

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	cssCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

	urlRe    = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")
	wwwRe    = regexp.MustCompile("www\\.[^\\s<>\"{}|\\\\^`\\[\\]]+")
	emailRe  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe  = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	bbLinkRe = regexp.MustCompile(`(?is)\[link\].*?\[/link\]`)
	anchorRe = regexp.MustCompile(`(?is)<a[^>]*>.*?</a>`)

	spaceRunRe    = regexp.MustCompile(` +`)
	bangRunRe     = regexp.MustCompile(`!{2,}`)
	questionRunRe = regexp.MustCompile(`\?{2,}`)
	dotRunRe      = regexp.MustCompile(`\.{2,}`)
	commaRunRe    = regexp.MustCompile(`,{2,}`)

	// Reply/forward prefix on subjects. The prefix must be followed by a colon
	// or whitespace so ordinary words ("Reminder", "Forward") are untouched.
	replyPrefixRe = regexp.MustCompile(`(?i)^(re|fwd|fw)(\s*:|\s)\s*`)

	// "Display Name <address>" senders.
	angleAddrRe = regexp.MustCompile(`<([^>]+)>`)
)

// Boilerplate signature/footer lines. The bare "--" delimiter must be the
// whole line; every other pattern drops a line on a substring match.
var signaturePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^--\s*$`),
	regexp.MustCompile(`(?i)sent from my iphone`),
	regexp.MustCompile(`(?i)sent from my android`),
	regexp.MustCompile(`(?i)get outlook for (ios|android)`),
	regexp.MustCompile(`(?i)this email was sent from a notification-only address`),
	regexp.MustCompile(`(?i)please do not reply to this email`),
	regexp.MustCompile(`(?i)to unsubscribe`),
	regexp.MustCompile(`(?i)click here to unsubscribe`),
	regexp.MustCompile(`(?i)if you received this email in error`),
	regexp.MustCompile(`(?i)this is an automated message`),
	regexp.MustCompile(`(?i)powered by`),
	regexp.MustCompile(`© \d{4}`),
	regexp.MustCompile(`(?i)all rights reserved`),
	regexp.MustCompile(`(?i)confidentiality notice`),
	regexp.MustCompile(`(?i)this message is intended only for`),
	regexp.MustCompile(`(?i)if you are not the intended recipient`),
}
