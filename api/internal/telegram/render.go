package telegram

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"

	"kids-lecture/api/internal/lecture"
)

// Telegram caps a message at 4096 characters; leave room for entities.
const maxMessageLen = 3900

var (
	reSpaces     = regexp.MustCompile(`[ \t\r\n]+`)
	reLineSpaces = regexp.MustCompile(` *\n *`)
	reBlankLines = regexp.MustCompile(`\n{3,}`)
)

// RenderLecture converts a lecture to the HTML subset Telegram accepts.
func RenderLecture(l lecture.Lecture) string {
	var b strings.Builder
	b.WriteString("<b>" + html.EscapeString(l.Title) + "</b>\n")
	if l.Subtitle != "" {
		b.WriteString("<i>" + html.EscapeString(l.Subtitle) + "</i>\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderHTML(l.Content))
	return strings.TrimSpace(b.String())
}

// RenderHTML flattens lecture markup: headings become bold lines, list items
// get bullets and unsupported tags are dropped with their text kept.
func RenderHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return html.EscapeString(fragment)
	}
	doc.Find("script, style, head").Remove()

	var b strings.Builder
	renderChildren(&b, doc.Find("body"))

	out := reLineSpaces.ReplaceAllString(b.String(), "\n")
	out = reBlankLines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

func renderChildren(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		renderNode(b, c)
	})
}

func renderNode(b *strings.Builder, sel *goquery.Selection) {
	n := sel.Get(0)
	switch n.Type {
	case nethtml.TextNode:
		b.WriteString(html.EscapeString(reSpaces.ReplaceAllString(n.Data, " ")))
		return
	case nethtml.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := strings.TrimSpace(reSpaces.ReplaceAllString(sel.Text(), " "))
		b.WriteString("\n\n<b>" + html.EscapeString(text) + "</b>\n")
	case "p", "div", "section":
		b.WriteString("\n")
		renderChildren(b, sel)
		b.WriteString("\n")
	case "ul", "ol":
		b.WriteString("\n")
		renderChildren(b, sel)
		b.WriteString("\n")
	case "li":
		b.WriteString("\n• ")
		renderChildren(b, sel)
	case "br":
		b.WriteString("\n")
	case "strong", "b":
		wrap(b, sel, "b")
	case "em", "i":
		wrap(b, sel, "i")
	case "u":
		wrap(b, sel, "u")
	case "a":
		href, _ := sel.Attr("href")
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			b.WriteString(`<a href="` + html.EscapeString(href) + `">`)
			renderChildren(b, sel)
			b.WriteString("</a>")
			return
		}
		renderChildren(b, sel)
	default:
		renderChildren(b, sel)
	}
}

func wrap(b *strings.Builder, sel *goquery.Selection, tag string) {
	b.WriteString("<" + tag + ">")
	renderChildren(b, sel)
	b.WriteString("</" + tag + ">")
}

// ChunkMessage splits rendered HTML into parts of at most max bytes. It breaks
// between words, preferring a line break in the second half of a part, and
// never inside a tag or an entity. Inline tags open at a break are closed at
// the end of one part and reopened at the start of the next.
func ChunkMessage(text string, max int) []string {
	toks := tokenizeHTML(text, maxInt(max/4, 1))

	var (
		chunks     []string
		cur        strings.Builder
		stack      []openTag
		hasContent bool
		mark       *chunkMark
	)
	start := func() {
		cur.Reset()
		for _, t := range stack {
			cur.WriteString(t.raw)
		}
		hasContent = false
		mark = nil
	}
	emit := func(body string, open []openTag) {
		if s := strings.TrimSpace(body + closeTags(open)); s != "" {
			chunks = append(chunks, s)
		}
	}

	for i := 0; i < len(toks); {
		t := toks[i]
		next := applyTag(stack, t)
		if hasContent && cur.Len()+len(t.raw)+closersLen(next) > max {
			if mark != nil && mark.pos > max/2 {
				emit(cur.String()[:mark.pos], mark.stack)
				stack, i = mark.stack, mark.next
			} else {
				emit(cur.String(), stack)
			}
			start()
			continue
		}
		cur.WriteString(t.raw)
		stack = next
		switch t.kind {
		case tokNewline:
			mark = &chunkMark{pos: cur.Len() - 1, next: i + 1, stack: stack}
		case tokWord, tokEntity:
			hasContent = true
		}
		i++
	}
	if hasContent {
		emit(cur.String(), stack)
	}
	return chunks
}

type tokKind int

const (
	tokWord tokKind = iota
	tokSpace
	tokNewline
	tokEntity
	tokOpen
	tokClose
)

type htmlToken struct {
	kind tokKind
	raw  string
	name string
}

type openTag struct {
	name string
	raw  string
}

// chunkMark is a line break a part may end at.
type chunkMark struct {
	pos   int
	next  int
	stack []openTag
}

func applyTag(stack []openTag, t htmlToken) []openTag {
	switch t.kind {
	case tokOpen:
		return append(stack[:len(stack):len(stack)], openTag{name: t.name, raw: t.raw})
	case tokClose:
		for k := len(stack) - 1; k >= 0; k-- {
			if stack[k].name == t.name {
				return stack[:k]
			}
		}
	}
	return stack
}

func closersLen(stack []openTag) int {
	n := 0
	for _, t := range stack {
		n += len(t.name) + 3
	}
	return n
}

func closeTags(stack []openTag) string {
	var b strings.Builder
	for k := len(stack) - 1; k >= 0; k-- {
		b.WriteString("</" + stack[k].name + ">")
	}
	return b.String()
}

// tokenizeHTML splits Telegram HTML into tags, entities, whitespace and words.
// Words longer than maxWord are cut on rune boundaries.
func tokenizeHTML(s string, maxWord int) []htmlToken {
	var toks []htmlToken
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '<':
			if j := strings.IndexByte(s[i:], '>'); j > 0 {
				raw := s[i : i+j+1]
				toks = append(toks, tagToken(raw))
				i += j + 1
				continue
			}
		case c == '&':
			if j := strings.IndexByte(s[i:], ';'); j > 1 && j <= 10 {
				toks = append(toks, htmlToken{kind: tokEntity, raw: s[i : i+j+1]})
				i += j + 1
				continue
			}
		case c == '\n':
			toks = append(toks, htmlToken{kind: tokNewline, raw: "\n"})
			i++
			continue
		case c == ' ' || c == '\t':
			j := i
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			toks = append(toks, htmlToken{kind: tokSpace, raw: s[i:j]})
			i = j
			continue
		}

		j := i + 1
		for j < len(s) && !strings.ContainsRune("<&\n \t", rune(s[j])) {
			j++
		}
		word := s[i:j]
		for len(word) > maxWord {
			cut := maxWord
			for cut > 0 && !utf8.RuneStart(word[cut]) {
				cut--
			}
			if cut == 0 {
				_, cut = utf8.DecodeRuneInString(word)
			}
			toks = append(toks, htmlToken{kind: tokWord, raw: word[:cut]})
			word = word[cut:]
		}
		if word != "" {
			toks = append(toks, htmlToken{kind: tokWord, raw: word})
		}
		i = j
	}
	return toks
}

func tagToken(raw string) htmlToken {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "<"), ">")
	kind := tokOpen
	if strings.HasPrefix(inner, "/") {
		kind = tokClose
		inner = inner[1:]
	}
	name := inner
	if k := strings.IndexAny(inner, " \t/"); k >= 0 {
		name = inner[:k]
	}
	return htmlToken{kind: kind, raw: raw, name: strings.ToLower(name)}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
