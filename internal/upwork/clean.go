package upwork

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cap on cleaned text sent to the model, keeps the prompt inside context limits
const maxCleanedLen = 20000

// CleanHTML strips chrome (scripts, styles, nav, footer) from a captured job
// page and collapses the remaining text, so the extraction prompt carries the
// posting itself instead of the whole document.
func CleanHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return truncate(collapseSpaces(raw))
	}

	doc.Find("script, style, noscript, iframe, svg, nav, footer, header").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	return truncate(collapseSpaces(text))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	if len(s) > maxCleanedLen {
		return s[:maxCleanedLen]
	}
	return s
}
