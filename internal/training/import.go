package training

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var collapseSpaces = regexp.MustCompile(`[ \t]+`)

// FlattenHTMLTranscript converts an HTML transcript export (telephony
// portals wrap each turn in markup) into the plain line-per-turn format
// the parser expects. Non-HTML input passes through unchanged.
func FlattenHTMLTranscript(raw string) string {
	if !strings.Contains(raw, "<") {
		return raw
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	doc.Find("script, style, head").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	// Leaf block elements become lines so role markers stay at line
	// starts; container blocks are skipped to avoid emitting their text
	// twice.
	var b strings.Builder
	doc.Find("p, div, li, td").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Filter("p, div, li, td").Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	})

	flattened := b.String()
	if strings.TrimSpace(flattened) == "" {
		flattened = doc.Text()
	}

	return collapseSpaces.ReplaceAllString(flattened, " ")
}
