package lecture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument(t *testing.T) {
	doc := Document(Lecture{
		Title:    "Bees & <Honey>",
		Subtitle: `Why "bees" matter`,
		Content:  `<h2 class="text-xl">Bees</h2><p>Bees dance.</p><script>alert(1)</script>`,
	})

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>Bees &amp; &lt;Honey&gt;</title>")
	assert.Contains(t, doc, "<h1>Bees &amp; &lt;Honey&gt;</h1>")
	assert.Contains(t, doc, "<p>Why &#34;bees&#34; matter</p>")
	assert.Contains(t, doc, `<div class="lecture-content">`)
	assert.Contains(t, doc, `<h2 class="text-xl">Bees</h2><p>Bees dance.</p>`)
	assert.NotContains(t, doc, "<script>")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "The_Water_Cycle_for_3rd_Grade.html", FileName("The Water Cycle for 3rd Grade"))
	assert.Equal(t, "Bees_and_Honey.html", FileName("  Bees \t and\nHoney "))
	assert.Equal(t, "etcpasswd.html", FileName("../etc/passwd"))
	assert.Equal(t, "lecture.html", FileName("   "))
}
