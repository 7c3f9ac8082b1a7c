package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText parses markup and returns only the human-visible text.
// Script and style subtrees are dropped entirely.
func ExtractText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	return doc.Text(), nil
}
