package cleaner

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanBody_StripsMarkup(t *testing.T) {
	c := New()

	res := c.CleanBody("<p>Hello <b>world</b></p>\n\nVisit https://example.com now!!!")
	assert.False(t, res.Fallback)
	assert.Equal(t, "Hello world Visit link now!", res.Text)
}

func TestCleanBody_RedactsURLs(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"https", "check https://example.com/path?x=1 out", "check link out"},
		{"http", "see http://example.org today", "see link today"},
		{"bare www", "go to www.example.com for more", "go to link for more"},
		{"bracketed span", "click [link]here now[/link] please", "click link please"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.CleanBody(tt.input)
			assert.Equal(t, tt.want, res.Text)
			assert.NotContains(t, res.Text, "http://")
			assert.NotContains(t, res.Text, "https://")
		})
	}
}

func TestCleanBody_RedactsAddressesAndPhones(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"email address", "write to jane.doe@example.com today", "write to email today"},
		{"plus address", "cc bob+news@mail.example.org too", "cc email too"},
		{"dashed phone", "call 555-123-4567 now", "call phone now"},
		{"dotted phone", "call 555.123.4567 now", "call phone now"},
		{"bare phone", "call 5551234567 now", "call phone now"},
		{"international passes through", "call +44 20 7946 0958 now", "call +44 20 7946 0958 now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.CleanBody(tt.input).Text)
		})
	}
}

func TestCleanBody_CollapsesPunctuation(t *testing.T) {
	c := New()

	tests := []struct {
		input string
		want  string
	}{
		{"Wow!!!", "Wow!"},
		{"Really???", "Really?"},
		{"Wait...", "Wait."},
		{"a,,,b", "a,b"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.CleanBody(tt.input).Text)
	}
}

func TestCleanBody_StripsSignatureLines(t *testing.T) {
	c := New()

	body := strings.Join([]string{
		"Hi team",
		"the report is attached",
		"--",
		"Jane",
		"Sent from my iPhone",
		"To unsubscribe, click below",
		"© 2024 Example Corp",
		"All Rights Reserved",
		"This message is intended only for the addressee",
	}, "\n")

	res := c.CleanBody(body)
	assert.Equal(t, "Hi team the report is attached Jane", res.Text)
}

func TestCleanBody_DecodesEntitiesWithoutParsing(t *testing.T) {
	c := New()

	res := c.CleanBody("Tom &amp; Jerry say &quot;hi&quot; &nbsp; loudly")
	assert.Equal(t, `Tom & Jerry say "hi" loudly`, res.Text)
}

func TestCleanBody_DropsScriptAndStyleContent(t *testing.T) {
	c := New()

	body := "<html><head><style>p { color: red; }</style></head>" +
		"<body><script>var tracking = 1;</script><p>Keep me</p></body></html>"
	assert.Equal(t, "Keep me", c.CleanBody(body).Text)
}

func TestCleanBody_RemovesCSSComments(t *testing.T) {
	c := New()

	assert.Equal(t, "before after", c.CleanBody("before /* hidden rule */ after").Text)
}

func TestCleanBody_NormalizesUnicode(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"compatibility composition", "ﬁle", "file"},
		{"smart quotes", "she said “hello” and ‘bye’", `she said "hello" and 'bye'`},
		{"dashes", "pages 3—5 and 7–9", "pages 3-5 and 7-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.CleanBody(tt.input).Text)
		})
	}
}

func TestCleanBody_Idempotent(t *testing.T) {
	c := New()

	inputs := []string{
		"<p>Hello <b>world</b></p>\n\nVisit https://example.com now!!!",
		"write to jane@example.com or call 555-123-4567",
		"plain text stays plain",
		"Tom &amp; Jerry",
		"line one\n\n\nline two   with   spaces",
	}

	for _, input := range inputs {
		once := c.CleanBody(input).Text
		twice := c.CleanBody(once).Text
		assert.Equal(t, once, twice, "not idempotent for %q", input)
	}
}

func TestCleanBody_EmptyInput(t *testing.T) {
	c := New()

	res := c.CleanBody("")
	assert.Equal(t, "", res.Text)
	assert.False(t, res.Fallback)
}

func TestCleanBody_FallsBackToTrimmedOriginal(t *testing.T) {
	c := NewWithExtractor(func(string) (string, error) {
		return "", errors.New("parse blew up")
	})

	res := c.CleanBody("  <p>Hello</p>  ")
	assert.True(t, res.Fallback)
	require.Error(t, res.Err)
	assert.Equal(t, "<p>Hello</p>", res.Text)
}

func TestCleanSubject(t *testing.T) {
	c := New()

	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{"reply prefix", "RE: Meeting tomorrow", "Meeting tomorrow"},
		{"stacked prefixes", "RE: RE: Meeting tomorrow", "Meeting tomorrow"},
		{"forward prefix", "Fwd: budget", "budget"},
		{"fw prefix", "FW: budget", "budget"},
		{"prefix-like word kept", "Reminder", "Reminder"},
		{"empty subject", "", NoSubject},
		{"prefix only", "RE:", NoSubject},
		{"html in subject", "50% off &amp; free shipping!!!", "50% off & free shipping!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.CleanSubject(tt.subject).Text)
		})
	}
}

func TestCleanSender(t *testing.T) {
	c := New()

	tests := []struct {
		name   string
		sender string
		want   string
	}{
		{"composite", "Jane Doe <jane@example.com>", "jane@example.com"},
		{"bare address passes through", "bob@example.com", "bob@example.com"},
		{"display name only passes through", "Accounts Team", "Accounts Team"},
		{"empty sender", "", UnknownSender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.CleanSender(tt.sender).Text)
		})
	}
}

func TestExtractText(t *testing.T) {
	text, err := ExtractText("<div>a <span>b</span></div>")
	require.NoError(t, err)
	assert.Equal(t, "a b", text)
}
