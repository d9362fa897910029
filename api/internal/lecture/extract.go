package lecture

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Headline holds the title and subtitle found in a generated fragment.
type Headline struct {
	Title    string
	Subtitle string
}

// ExtractHeadline reads the first <h1> and the first <p>. Missing or empty
// elements come back as "" and the caller applies its own defaults.
func ExtractHeadline(fragment string) Headline {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return Headline{}
	}
	return Headline{
		Title:    collapse(doc.Find("h1").First().Text()),
		Subtitle: collapse(doc.Find("p").First().Text()),
	}
}

func DefaultTitle(topic, grade string) string {
	return topic + " for " + Ordinal(grade) + " Graders"
}

func DefaultSubtitle(topic string) string {
	return "Learn about " + topic + "!"
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
