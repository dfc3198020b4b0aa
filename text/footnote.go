package text

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DropFootnotes removes translator footnotes (marker and body) from an
// English verse. The rest of the markup is kept, entities included, so the
// result goes through StripMarkup like any other verse. The input is
// returned unchanged when it has no footnotes or cannot be parsed.
func DropFootnotes(s string) string {
	if !strings.Contains(s, "footnote") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	body := doc.Find("body").First()
	body.Find("sup.footnote-marker").Remove()
	body.Find("i.footnote").Remove()
	out, err := body.Html()
	if err != nil {
		return s
	}
	return quoteUnescaper.Replace(out)
}

// html.Render escapes quotes in text; the source text does not.
var quoteUnescaper = strings.NewReplacer("&#39;", "'", "&#34;", `"`)
