package amount

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText flattens summaries that arrive with HTML markup or entities
// ("Importe:&nbsp;1.000,00&euro;") into plain text. Text without markup is
// returned unchanged.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	text := doc.Text()
	// Non-breaking spaces from &nbsp; would defeat the \s in the summary patterns.
	return strings.ReplaceAll(text, "\u00a0", " ")
}
