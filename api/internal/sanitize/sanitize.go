// Package sanitize cleans model-generated lecture HTML before it reaches a client.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// tailwind-style class lists only: letters, digits, dash, colon, slash, dot, spaces
var classValue = regexp.MustCompile(`^[a-zA-Z0-9\-:/. ]+$`)

// Sanitizer strips scripts, handlers and styles from lecture HTML while keeping
// the structural markup and box classes the prompt asks for.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(classValue).OnElements(
		"div", "p", "span", "h1", "h2", "h3", "h4", "ul", "ol", "li", "strong", "em", "section",
	)
	p.AllowElements("div", "span", "section")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &Sanitizer{policy: p}
}

func (s *Sanitizer) HTML(fragment string) string {
	return strings.TrimSpace(s.policy.Sanitize(fragment))
}

const (
	blockTags = "h1, h2, h3, h4, h5, h6, p, li, div, section, tr, br"
	// private-use rune marking block ends, so source newlines inside a block don't split it
	blockEnd = "\uE000"
)

// PlainText flattens an HTML fragment to readable text: block elements become
// separate lines and runs of whitespace collapse.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	doc.Find(blockTags).Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(blockEnd)
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), blockEnd) {
		if l := strings.Join(strings.Fields(line), " "); l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}
