package lecture

import (
	"html/template"
	"regexp"
	"strings"

	"kids-lecture/api/internal/sanitize"
)

var (
	docPolicy   = sanitize.New()
	reFileSpace = regexp.MustCompile(`\s+`)
)

var docTmpl = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 20px; }
  h1 { color: #4F46E5; }
  h2 { color: #4F46E5; margin-top: 20px; }
  h3 { color: #10B981; }
  .lecture-content { margin-top: 20px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Subtitle}}</p>
<div class="lecture-content">
{{.Content}}
</div>
</body>
</html>
`))

// Document renders l as a standalone HTML page for saving. Title and subtitle
// are escaped; content passes through the lecture sanitizer.
func Document(l Lecture) string {
	var b strings.Builder
	_ = docTmpl.Execute(&b, struct {
		Title    string
		Subtitle string
		Content  template.HTML
	}{
		Title:    l.Title,
		Subtitle: l.Subtitle,
		Content:  template.HTML(docPolicy.HTML(l.Content)),
	})
	return b.String()
}

// FileName is the saved document's name: the title with whitespace runs as
// underscores and path separators dropped.
func FileName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(reFileSpace.ReplaceAllString(name, "_"), ".")
	if name == "" {
		name = "lecture"
	}
	return name + ".html"
}
